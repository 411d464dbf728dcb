package erp

import (
	"fmt"
	"sync"
)

// Store holds the process-lifetime record set. All business data is
// in-memory by design and reseeded on every restart. The RWMutex exists
// because net/http serves requests concurrently; there is no cross-request
// transaction discipline beyond it.
type Store struct {
	mu   sync.RWMutex
	data *Dataset
}

// NewStore creates a store over the given dataset. Pass SeedData() for the
// demo dataset.
func NewStore(data *Dataset) *Store {
	if data == nil {
		data = &Dataset{}
	}
	return &Store{data: data}
}

// --- Invoices ---

func (s *Store) ListInvoices() []Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Invoice, len(s.data.Invoices))
	copy(out, s.data.Invoices)
	return out
}

func (s *Store) GetInvoice(id string) (Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inv := range s.data.Invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return Invoice{}, fmt.Errorf("invoice not found: %s", id)
}

// UpsertInvoice replaces the invoice with the same ID or appends a new one.
func (s *Store) UpsertInvoice(inv Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Invoices {
		if s.data.Invoices[i].ID == inv.ID {
			s.data.Invoices[i] = inv
			return
		}
	}
	s.data.Invoices = append(s.data.Invoices, inv)
}

func (s *Store) DeleteInvoice(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Invoices {
		if s.data.Invoices[i].ID == id {
			s.data.Invoices = append(s.data.Invoices[:i], s.data.Invoices[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("invoice not found: %s", id)
}

// --- Products ---

func (s *Store) ListProducts() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.data.Products))
	copy(out, s.data.Products)
	return out
}

func (s *Store) GetProduct(id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.data.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("product not found: %s", id)
}

func (s *Store) UpsertProduct(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Products {
		if s.data.Products[i].ID == p.ID {
			s.data.Products[i] = p
			return
		}
	}
	s.data.Products = append(s.data.Products, p)
}

func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Products {
		if s.data.Products[i].ID == id {
			s.data.Products = append(s.data.Products[:i], s.data.Products[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("product not found: %s", id)
}

// --- Bills ---

func (s *Store) ListBills() []Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Bill, len(s.data.Bills))
	copy(out, s.data.Bills)
	return out
}

func (s *Store) UpsertBill(b Bill) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Bills {
		if s.data.Bills[i].ID == b.ID {
			s.data.Bills[i] = b
			return
		}
	}
	s.data.Bills = append(s.data.Bills, b)
}

func (s *Store) DeleteBill(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Bills {
		if s.data.Bills[i].ID == id {
			s.data.Bills = append(s.data.Bills[:i], s.data.Bills[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("bill not found: %s", id)
}

// --- Contacts ---

func (s *Store) ListContacts() []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Contact, len(s.data.Contacts))
	copy(out, s.data.Contacts)
	return out
}

func (s *Store) UpsertContact(c Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Contacts {
		if s.data.Contacts[i].ID == c.ID {
			s.data.Contacts[i] = c
			return
		}
	}
	s.data.Contacts = append(s.data.Contacts, c)
}

func (s *Store) DeleteContact(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Contacts {
		if s.data.Contacts[i].ID == id {
			s.data.Contacts = append(s.data.Contacts[:i], s.data.Contacts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("contact not found: %s", id)
}

// --- Deals ---

func (s *Store) ListDeals() []Deal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Deal, len(s.data.Deals))
	copy(out, s.data.Deals)
	return out
}

func (s *Store) GetDeal(id string) (Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.data.Deals {
		if d.ID == id {
			return d, nil
		}
	}
	return Deal{}, fmt.Errorf("deal not found: %s", id)
}

func (s *Store) UpsertDeal(d Deal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Deals {
		if s.data.Deals[i].ID == d.ID {
			s.data.Deals[i] = d
			return
		}
	}
	s.data.Deals = append(s.data.Deals, d)
}

func (s *Store) DeleteDeal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Deals {
		if s.data.Deals[i].ID == id {
			s.data.Deals = append(s.data.Deals[:i], s.data.Deals[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("deal not found: %s", id)
}

// --- Employees ---

func (s *Store) ListEmployees() []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Employee, len(s.data.Employees))
	copy(out, s.data.Employees)
	return out
}

func (s *Store) UpsertEmployee(e Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Employees {
		if s.data.Employees[i].ID == e.ID {
			s.data.Employees[i] = e
			return
		}
	}
	s.data.Employees = append(s.data.Employees, e)
}

func (s *Store) DeleteEmployee(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Employees {
		if s.data.Employees[i].ID == id {
			s.data.Employees = append(s.data.Employees[:i], s.data.Employees[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("employee not found: %s", id)
}

// --- Tasks ---

func (s *Store) ListTasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Task, len(s.data.Tasks))
	copy(out, s.data.Tasks)
	return out
}

func (s *Store) UpsertTask(t Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Tasks {
		if s.data.Tasks[i].ID == t.ID {
			s.data.Tasks[i] = t
			return
		}
	}
	s.data.Tasks = append(s.data.Tasks, t)
}

func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Tasks {
		if s.data.Tasks[i].ID == id {
			s.data.Tasks = append(s.data.Tasks[:i], s.data.Tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("task not found: %s", id)
}

// --- Purchase orders ---

func (s *Store) ListPurchaseOrders() []PurchaseOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]PurchaseOrder, len(s.data.PurchaseOrders))
	copy(out, s.data.PurchaseOrders)
	return out
}

func (s *Store) UpsertPurchaseOrder(po PurchaseOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.PurchaseOrders {
		if s.data.PurchaseOrders[i].ID == po.ID {
			s.data.PurchaseOrders[i] = po
			return
		}
	}
	s.data.PurchaseOrders = append(s.data.PurchaseOrders, po)
}

func (s *Store) DeletePurchaseOrder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.PurchaseOrders {
		if s.data.PurchaseOrders[i].ID == id {
			s.data.PurchaseOrders = append(s.data.PurchaseOrders[:i], s.data.PurchaseOrders[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("purchase order not found: %s", id)
}

// --- Sales orders ---

func (s *Store) ListSalesOrders() []SalesOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SalesOrder, len(s.data.SalesOrders))
	copy(out, s.data.SalesOrders)
	return out
}

func (s *Store) UpsertSalesOrder(so SalesOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.SalesOrders {
		if s.data.SalesOrders[i].ID == so.ID {
			s.data.SalesOrders[i] = so
			return
		}
	}
	s.data.SalesOrders = append(s.data.SalesOrders, so)
}

func (s *Store) DeleteSalesOrder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.SalesOrders {
		if s.data.SalesOrders[i].ID == id {
			s.data.SalesOrders = append(s.data.SalesOrders[:i], s.data.SalesOrders[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("sales order not found: %s", id)
}

// --- Ledger, cash flow, chart ---

func (s *Store) ListLedger() []LedgerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]LedgerEntry, len(s.data.Ledger))
	copy(out, s.data.Ledger)
	return out
}

func (s *Store) AppendLedger(entries ...LedgerEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Ledger = append(s.data.Ledger, entries...)
}

func (s *Store) ListCashFlow() []CashFlowEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CashFlowEntry, len(s.data.CashFlow))
	copy(out, s.data.CashFlow)
	return out
}

func (s *Store) ListChart() []ChartPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ChartPoint, len(s.data.Chart))
	copy(out, s.data.Chart)
	return out
}

// Snapshot returns a copy of the whole dataset for AI analysis prompts.
func (s *Store) Snapshot() Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Dataset{
		Invoices:       append([]Invoice(nil), s.data.Invoices...),
		Products:       append([]Product(nil), s.data.Products...),
		Bills:          append([]Bill(nil), s.data.Bills...),
		Contacts:       append([]Contact(nil), s.data.Contacts...),
		Deals:          append([]Deal(nil), s.data.Deals...),
		Ledger:         append([]LedgerEntry(nil), s.data.Ledger...),
		CashFlow:       append([]CashFlowEntry(nil), s.data.CashFlow...),
		Employees:      append([]Employee(nil), s.data.Employees...),
		Tasks:          append([]Task(nil), s.data.Tasks...),
		PurchaseOrders: append([]PurchaseOrder(nil), s.data.PurchaseOrders...),
		SalesOrders:    append([]SalesOrder(nil), s.data.SalesOrders...),
		Chart:          append([]ChartPoint(nil), s.data.Chart...),
	}
}
