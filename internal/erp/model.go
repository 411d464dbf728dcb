package erp

// InvoiceStatus is the lifecycle state of a customer invoice.
type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "Paid"
	InvoiceDue     InvoiceStatus = "Due"
	InvoiceOverdue InvoiceStatus = "Overdue"
)

// BillStatus is the lifecycle state of a vendor bill.
type BillStatus string

const (
	BillPaid     BillStatus = "Paid"
	BillPending  BillStatus = "Pending"
	BillUpcoming BillStatus = "Upcoming"
)

// ContactType distinguishes customers from vendors in the CRM.
type ContactType string

const (
	ContactCustomer ContactType = "Customer"
	ContactVendor   ContactType = "Vendor"
)

// AccountType is the ledger classification bucket. This is a simple
// profit-and-loss aggregation, not a full chart of accounts.
type AccountType string

const (
	AccountRevenue AccountType = "Revenue"
	AccountExpense AccountType = "Expense"
)

// DealStatus is a CRM pipeline stage.
type DealStatus string

const (
	DealProspect      DealStatus = "Prospect"
	DealQualification DealStatus = "Qualification"
	DealNegotiation   DealStatus = "Negotiation"
	DealWon           DealStatus = "Won"
	DealLost          DealStatus = "Lost"
)

// TaskStatus is a project board column.
type TaskStatus string

const (
	TaskToDo       TaskStatus = "To Do"
	TaskInProgress TaskStatus = "In Progress"
	TaskDone       TaskStatus = "Done"
)

// TaskPriority ranks project tasks.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

// PurchaseOrderStatus is the lifecycle state of a purchase order.
type PurchaseOrderStatus string

const (
	PODraft     PurchaseOrderStatus = "Draft"
	POSent      PurchaseOrderStatus = "Sent"
	POFulfilled PurchaseOrderStatus = "Fulfilled"
)

// SalesOrderStatus is the lifecycle state of a sales order.
type SalesOrderStatus string

const (
	SODraft     SalesOrderStatus = "Draft"
	SOConfirmed SalesOrderStatus = "Confirmed"
	SOShipped   SalesOrderStatus = "Shipped"
)

// LineItem is a single priced quantity of a product or free-text service
// within an invoice. ProductID is empty for free-text items.
type LineItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId,omitempty"`
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"` // Unit price in rupiah
}

// Invoice is a customer-facing bill composed of one or more line items.
// Dates are stored as YYYY-MM-DD strings; imported values pass through
// untouched.
type Invoice struct {
	ID       string        `json:"id"`
	Customer string        `json:"customer"`
	Date     string        `json:"date"`
	DueDate  string        `json:"dueDate"`
	Status   InvoiceStatus `json:"status"`
	Items    []LineItem    `json:"items"`
}

// Total is the invoice amount. The amount is always derived from the line
// items, never stored.
func (inv Invoice) Total() float64 {
	var total float64
	for _, item := range inv.Items {
		total += float64(item.Quantity) * item.Price
	}
	return total
}

// ImportResult is the outcome of one CSV import attempt: the invoices that
// parsed cleanly plus one human-readable error per rejected row. It is
// consumed once by the review step and not persisted.
type ImportResult struct {
	Invoices []Invoice `json:"invoices"`
	Errors   []string  `json:"errors"`
}

// Product is an inventory item.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
	Price    float64 `json:"price"`
}

// Bill is a vendor bill tracked by the purchasing module.
type Bill struct {
	ID      string     `json:"id"`
	Vendor  string     `json:"vendor"`
	Date    string     `json:"date"`
	DueDate string     `json:"dueDate"`
	Amount  float64    `json:"amount"`
	Status  BillStatus `json:"status"`
}

// Contact is a CRM customer or vendor contact.
type Contact struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Company string      `json:"company"`
	Email   string      `json:"email"`
	Phone   string      `json:"phone"`
	Type    ContactType `json:"type"`
}

// Deal is a CRM pipeline opportunity.
type Deal struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Company string     `json:"company"`
	Value   float64    `json:"value"`
	Status  DealStatus `json:"status"`
}

// LedgerEntry is a posted amount against a revenue or expense account.
type LedgerEntry struct {
	ID      string      `json:"id"`
	Date    string      `json:"date"`
	Account string      `json:"account"`
	Type    AccountType `json:"type"`
	Amount  float64     `json:"amount"`
}

// CashFlowEntry is one month of cash in and cash out.
type CashFlowEntry struct {
	Month   string  `json:"month"`
	CashIn  float64 `json:"cashIn"`
	CashOut float64 `json:"cashOut"`
}

// Employee is an HR record.
type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Email      string `json:"email"`
	AvatarURL  string `json:"avatarUrl"`
}

// Task is a project board task.
type Task struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	AssigneeID string       `json:"assigneeId"`
	Status     TaskStatus   `json:"status"`
	Priority   TaskPriority `json:"priority"`
}

// OrderItem is a line on a purchase or sales order.
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// PurchaseOrder is an order placed with a vendor.
type PurchaseOrder struct {
	ID                   string              `json:"id"`
	Vendor               string              `json:"vendor"`
	Date                 string              `json:"date"`
	ExpectedDeliveryDate string              `json:"expectedDeliveryDate"`
	Items                []OrderItem         `json:"items"`
	TotalAmount          float64             `json:"totalAmount"`
	Status               PurchaseOrderStatus `json:"status"`
}

// SalesOrder is an order confirmed with a customer.
type SalesOrder struct {
	ID                   string           `json:"id"`
	Customer             string           `json:"customer"`
	Date                 string           `json:"date"`
	ExpectedDeliveryDate string           `json:"expectedDeliveryDate"`
	Items                []OrderItem      `json:"items"`
	TotalAmount          float64          `json:"totalAmount"`
	Status               SalesOrderStatus `json:"status"`
}

// ChartPoint is one bucket of the income vs expense report.
type ChartPoint struct {
	Name    string  `json:"name"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// JournalLine is one side of a manual journal entry awaiting posting.
type JournalLine struct {
	Account string      `json:"account"`
	Type    AccountType `json:"type"`
	Debit   float64     `json:"debit"`
	Credit  float64     `json:"credit"`
}
