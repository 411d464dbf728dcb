package erp

// Dataset is the full in-memory record set for one process lifetime. It is
// seeded from SeedData at startup and lost on restart.
type Dataset struct {
	Invoices       []Invoice
	Products       []Product
	Bills          []Bill
	Contacts       []Contact
	Deals          []Deal
	Ledger         []LedgerEntry
	CashFlow       []CashFlowEntry
	Employees      []Employee
	Tasks          []Task
	PurchaseOrders []PurchaseOrder
	SalesOrders    []SalesOrder
	Chart          []ChartPoint
}

// SeedData returns the demo dataset the application boots with.
func SeedData() *Dataset {
	return &Dataset{
		Invoices: []Invoice{
			{ID: "INV-001", Customer: "Stark Industries", Date: "2023-10-01", DueDate: "2023-10-31", Status: InvoicePaid, Items: []LineItem{
				{ID: "INV-001-1", SKU: "N/A", Description: "Mark 42 Armor Plating", Quantity: 50, Price: 200000000},
				{ID: "INV-001-2", SKU: "N/A", Description: "Arc Reactor Core", Quantity: 5, Price: 500000000},
			}},
			{ID: "INV-002", Customer: "Wayne Enterprises", Date: "2023-10-05", DueDate: "2023-11-04", Status: InvoiceDue, Items: []LineItem{
				{ID: "INV-002-1", ProductID: "PROD-05", SKU: "TE-5005", Description: "Turbo Encabulator", Quantity: 2, Price: 12500000},
				{ID: "INV-002-2", ProductID: "PROD-04", SKU: "FC-4004", Description: "Flux Capacitor Casing", Quantity: 10, Price: 2800000},
			}},
			{ID: "INV-003", Customer: "Cyberdyne Systems", Date: "2023-09-15", DueDate: "2023-10-15", Status: InvoiceOverdue, Items: []LineItem{
				{ID: "INV-003-1", SKU: "N/A", Description: "T-800 Endoskeleton Chassis", Quantity: 1, Price: 200000000},
				{ID: "INV-003-2", SKU: "N/A", Description: "Neural Net Processor", Quantity: 1, Price: 50075000},
			}},
			{ID: "INV-004", Customer: "Ollivanders Wand Shop", Date: "2023-10-10", DueDate: "2023-11-09", Status: InvoiceDue, Items: []LineItem{
				{ID: "INV-004-1", ProductID: "PROD-03", SKU: "NG-3003", Description: "Nano Gear", Quantity: 100, Price: 185000},
				{ID: "INV-004-2", SKU: "N/A", Description: "Wand Polishing Service", Quantity: 5, Price: 1500000},
			}},
			{ID: "INV-005", Customer: "Acme Corporation", Date: "2023-10-12", DueDate: "2023-10-28", Status: InvoicePaid, Items: []LineItem{
				{ID: "INV-005-1", ProductID: "PROD-01", SKU: "QW-1001", Description: "Quantum Widget", Quantity: 10, Price: 350000},
				{ID: "INV-005-2", ProductID: "PROD-02", SKU: "HS-2002", Description: "Hyper Sprocket", Quantity: 5, Price: 750000},
			}},
			{ID: "INV-006", Customer: "Gekko & Co", Date: "2023-10-20", DueDate: "2023-11-19", Status: InvoiceDue, Items: []LineItem{
				{ID: "INV-006-1", SKU: "N/A", Description: "Suspender Sharpening Service", Quantity: 5, Price: 3500000},
			}},
		},
		Products: []Product{
			{ID: "PROD-01", Name: "Quantum Widget", SKU: "QW-1001", Category: "Widgets", Stock: 150, Price: 350000},
			{ID: "PROD-02", Name: "Hyper Sprocket", SKU: "HS-2002", Category: "Sprockets", Stock: 80, Price: 750000},
			{ID: "PROD-03", Name: "Nano Gear", SKU: "NG-3003", Category: "Gears", Stock: 7, Price: 185000},
			{ID: "PROD-04", Name: "Flux Capacitor Casing", SKU: "FC-4004", Category: "Components", Stock: 25, Price: 2800000},
			{ID: "PROD-05", Name: "Turbo Encabulator", SKU: "TE-5005", Category: "Machinery", Stock: 10, Price: 12500000},
		},
		Bills: []Bill{
			{ID: "BILL-101", Vendor: "Globex Corporation", Date: "2023-10-02", DueDate: "2023-11-01", Amount: 7500000, Status: BillPending},
			{ID: "BILL-102", Vendor: "Initech", Date: "2023-09-28", DueDate: "2023-10-28", Amount: 4500000, Status: BillPaid},
			{ID: "BILL-103", Vendor: "Massive Dynamic", Date: "2023-10-15", DueDate: "2023-11-14", Amount: 12000000, Status: BillUpcoming},
			{ID: "BILL-104", Vendor: "Stark Industries", Date: "2023-10-18", DueDate: "2023-11-17", Amount: 3000000, Status: BillUpcoming},
		},
		Contacts: []Contact{
			{ID: "CUST-001", Name: "Tony Stark", Company: "Stark Industries", Email: "tony@starkind.com", Phone: "555-123-4567", Type: ContactCustomer},
			{ID: "VEND-001", Name: "Hank Scorpio", Company: "Globex Corporation", Email: "h.scorpio@globex.com", Phone: "555-987-6543", Type: ContactVendor},
			{ID: "CUST-002", Name: "Bruce Wayne", Company: "Wayne Enterprises", Email: "bruce@wayne.com", Phone: "555-111-2222", Type: ContactCustomer},
			{ID: "VEND-002", Name: "Bill Lumbergh", Company: "Initech", Email: "bill.lumbergh@initech.com", Phone: "555-888-9999", Type: ContactVendor},
			{ID: "CUST-003", Name: "Wile E. Coyote", Company: "Acme Corporation", Email: "wile@acme.com", Phone: "555-222-3333", Type: ContactCustomer},
		},
		Deals: []Deal{
			{ID: "DEAL-01", Name: "Project Titan Server Upgrade", Company: "Stark Industries", Value: 750000000, Status: DealNegotiation},
			{ID: "DEAL-02", Name: "Annual Batmobile Maintenance", Company: "Wayne Enterprises", Value: 1200000000, Status: DealQualification},
			{ID: "DEAL-03", Name: "Skynet Defense Contract", Company: "Cyberdyne Systems", Value: 2500000000, Status: DealProspect},
			{ID: "DEAL-04", Name: "Explosive Tennis Balls Supply", Company: "Acme Corporation", Value: 50000000, Status: DealWon},
		},
		Ledger: []LedgerEntry{
			{ID: "LED-001", Date: "2023-10-31", Account: "Product Sales", Type: AccountRevenue, Amount: 62000500},
			{ID: "LED-002", Date: "2023-10-25", Account: "Service Revenue", Type: AccountRevenue, Amount: 15000000},
			{ID: "LED-003", Date: "2023-10-28", Account: "Cost of Goods Sold", Type: AccountExpense, Amount: 25000000},
			{ID: "LED-004", Date: "2023-10-30", Account: "Salaries and Wages", Type: AccountExpense, Amount: 32000000},
			{ID: "LED-005", Date: "2023-10-15", Account: "Rent Expense", Type: AccountExpense, Amount: 12000000},
			{ID: "LED-006", Date: "2023-10-10", Account: "Marketing", Type: AccountExpense, Amount: 5500250},
			{ID: "LED-007", Date: "2023-10-05", Account: "Office Supplies", Type: AccountExpense, Amount: 2500000},
		},
		CashFlow: []CashFlowEntry{
			{Month: "Apr", CashIn: 40000000, CashOut: 24000000},
			{Month: "May", CashIn: 45000000, CashOut: 30000000},
			{Month: "Jun", CashIn: 50000000, CashOut: 48000000},
			{Month: "Jul", CashIn: 48000000, CashOut: 38000000},
			{Month: "Aug", CashIn: 55000000, CashOut: 42000000},
			{Month: "Sep", CashIn: 60000000, CashOut: 59000000},
		},
		Employees: []Employee{
			{ID: "EMP-001", Name: "Diana Prince", Role: "Lead Developer", Department: "Engineering", Email: "diana.prince@aurora.ai", AvatarURL: "https://i.pravatar.cc/150?u=emp001"},
			{ID: "EMP-002", Name: "Bruce Banner", Role: "Senior Backend Engineer", Department: "Engineering", Email: "bruce.banner@aurora.ai", AvatarURL: "https://i.pravatar.cc/150?u=emp002"},
			{ID: "EMP-003", Name: "Clark Kent", Role: "Product Manager", Department: "Product", Email: "clark.kent@aurora.ai", AvatarURL: "https://i.pravatar.cc/150?u=emp003"},
			{ID: "EMP-004", Name: "Peter Parker", Role: "Frontend Developer", Department: "Engineering", Email: "peter.parker@aurora.ai", AvatarURL: "https://i.pravatar.cc/150?u=emp004"},
			{ID: "EMP-005", Name: "Wanda Maximoff", Role: "UI/UX Designer", Department: "Design", Email: "wanda.maximoff@aurora.ai", AvatarURL: "https://i.pravatar.cc/150?u=emp005"},
		},
		Tasks: []Task{
			{ID: "TSK-01", Title: "Design new dashboard layout", AssigneeID: "EMP-005", Status: TaskDone, Priority: PriorityHigh},
			{ID: "TSK-02", Title: "Develop API endpoints for CRM", AssigneeID: "EMP-002", Status: TaskDone, Priority: PriorityHigh},
			{ID: "TSK-03", Title: "Implement frontend for dashboard", AssigneeID: "EMP-001", Status: TaskInProgress, Priority: PriorityHigh},
			{ID: "TSK-04", Title: "Integrate new chart library", AssigneeID: "EMP-004", Status: TaskInProgress, Priority: PriorityMedium},
			{ID: "TSK-05", Title: "Test dashboard functionality", AssigneeID: "EMP-001", Status: TaskToDo, Priority: PriorityMedium},
			{ID: "TSK-06", Title: "Write user documentation", AssigneeID: "EMP-003", Status: TaskToDo, Priority: PriorityLow},
		},
		PurchaseOrders: []PurchaseOrder{
			{ID: "PO-001", Vendor: "Globex Corporation", Date: "2023-10-25", ExpectedDeliveryDate: "2023-11-10", TotalAmount: 30650000, Status: POSent, Items: []OrderItem{
				{ProductID: "PROD-01", ProductName: "Quantum Widget", Quantity: 50, UnitPrice: 325000},
				{ProductID: "PROD-02", ProductName: "Hyper Sprocket", Quantity: 20, UnitPrice: 720000},
			}},
			{ID: "PO-002", Vendor: "Massive Dynamic", Date: "2023-10-28", ExpectedDeliveryDate: "2023-11-15", TotalAmount: 27500000, Status: POFulfilled, Items: []OrderItem{
				{ProductID: "PROD-04", ProductName: "Flux Capacitor Casing", Quantity: 10, UnitPrice: 2750000},
			}},
			{ID: "PO-003", Vendor: "Initech", Date: "2023-11-01", ExpectedDeliveryDate: "2023-11-20", TotalAmount: 60000000, Status: PODraft, Items: []OrderItem{
				{ProductID: "PROD-05", ProductName: "Turbo Encabulator", Quantity: 5, UnitPrice: 12000000},
			}},
		},
		SalesOrders: []SalesOrder{
			{ID: "SO-1001", Customer: "Stark Industries", Date: "2023-11-01", ExpectedDeliveryDate: "2023-11-10", TotalAmount: 150000000, Status: SOConfirmed, Items: []OrderItem{
				{ProductID: "PROD-01", ProductName: "Quantum Widget", Quantity: 100, UnitPrice: 350000},
				{ProductID: "PROD-05", ProductName: "Turbo Encabulator", Quantity: 2, UnitPrice: 12500000},
			}},
			{ID: "SO-1002", Customer: "Wayne Enterprises", Date: "2023-11-03", ExpectedDeliveryDate: "2023-11-15", TotalAmount: 7500000, Status: SODraft, Items: []OrderItem{
				{ProductID: "PROD-02", ProductName: "Hyper Sprocket", Quantity: 10, UnitPrice: 750000},
			}},
			{ID: "SO-1003", Customer: "Cyberdyne Systems", Date: "2023-11-05", ExpectedDeliveryDate: "2023-11-20", TotalAmount: 56000000, Status: SOShipped, Items: []OrderItem{
				{ProductID: "PROD-04", ProductName: "Flux Capacitor Casing", Quantity: 20, UnitPrice: 2800000},
			}},
		},
		Chart: []ChartPoint{
			{Name: "Jan", Income: 40000000, Expense: 24000000},
			{Name: "Feb", Income: 30000000, Expense: 13980000},
			{Name: "Mar", Income: 50000000, Expense: 38000000},
			{Name: "Apr", Income: 47800000, Expense: 39080000},
			{Name: "May", Income: 58900000, Expense: 48000000},
			{Name: "Jun", Income: 63900000, Expense: 58000000},
			{Name: "Jul", Income: 74900000, Expense: 63000000},
		},
	}
}
