package erp

import (
	"fmt"

	"github.com/aurora-ai/aurora-erp/internal/csvio"
)

// ExportTable flattens one module's records into column descriptors and
// rows for the CSV/XLSX serializers. The invoice amount is a computed
// column because the amount is derived, never stored.
func (s *Service) ExportTable(module string) ([]csvio.Column, []map[string]any, error) {
	switch module {
	case "invoices":
		invoices := s.store.ListInvoices()
		rows := make([]map[string]any, 0, len(invoices))
		for _, inv := range invoices {
			rows = append(rows, map[string]any{
				"id":       inv.ID,
				"customer": inv.Customer,
				"date":     inv.Date,
				"dueDate":  inv.DueDate,
				"status":   string(inv.Status),
				"items":    len(inv.Items),
				"total":    inv.Total(),
			})
		}
		cols := []csvio.Column{
			csvio.FieldColumn("id"),
			csvio.FieldColumn("customer"),
			csvio.FieldColumn("date"),
			csvio.FieldColumn("dueDate"),
			csvio.FieldColumn("status"),
			csvio.FieldColumn("items"),
			csvio.ComputedColumn("amount", func(row map[string]any) string {
				return csvio.CellString(row["total"])
			}),
		}
		return cols, rows, nil

	case "products":
		products := s.store.ListProducts()
		rows := make([]map[string]any, 0, len(products))
		for _, p := range products {
			rows = append(rows, map[string]any{
				"id": p.ID, "name": p.Name, "sku": p.SKU,
				"category": p.Category, "stock": p.Stock, "price": p.Price,
			})
		}
		return fieldColumns("id", "name", "sku", "category", "stock", "price"), rows, nil

	case "bills":
		bills := s.store.ListBills()
		rows := make([]map[string]any, 0, len(bills))
		for _, b := range bills {
			rows = append(rows, map[string]any{
				"id": b.ID, "vendor": b.Vendor, "date": b.Date,
				"dueDate": b.DueDate, "amount": b.Amount, "status": string(b.Status),
			})
		}
		return fieldColumns("id", "vendor", "date", "dueDate", "amount", "status"), rows, nil

	case "contacts":
		contacts := s.store.ListContacts()
		rows := make([]map[string]any, 0, len(contacts))
		for _, c := range contacts {
			rows = append(rows, map[string]any{
				"id": c.ID, "name": c.Name, "company": c.Company,
				"email": c.Email, "phone": c.Phone, "type": string(c.Type),
			})
		}
		return fieldColumns("id", "name", "company", "email", "phone", "type"), rows, nil

	case "deals":
		deals := s.store.ListDeals()
		rows := make([]map[string]any, 0, len(deals))
		for _, d := range deals {
			rows = append(rows, map[string]any{
				"id": d.ID, "name": d.Name, "company": d.Company,
				"value": d.Value, "status": string(d.Status),
			})
		}
		return fieldColumns("id", "name", "company", "value", "status"), rows, nil

	case "employees":
		employees := s.store.ListEmployees()
		rows := make([]map[string]any, 0, len(employees))
		for _, e := range employees {
			rows = append(rows, map[string]any{
				"id": e.ID, "name": e.Name, "role": e.Role,
				"department": e.Department, "email": e.Email,
			})
		}
		return fieldColumns("id", "name", "role", "department", "email"), rows, nil

	case "tasks":
		tasks := s.store.ListTasks()
		rows := make([]map[string]any, 0, len(tasks))
		for _, t := range tasks {
			rows = append(rows, map[string]any{
				"id": t.ID, "title": t.Title, "assigneeId": t.AssigneeID,
				"status": string(t.Status), "priority": string(t.Priority),
			})
		}
		return fieldColumns("id", "title", "assigneeId", "status", "priority"), rows, nil

	case "purchase-orders":
		orders := s.store.ListPurchaseOrders()
		rows := make([]map[string]any, 0, len(orders))
		for _, po := range orders {
			rows = append(rows, map[string]any{
				"id": po.ID, "vendor": po.Vendor, "date": po.Date,
				"expectedDeliveryDate": po.ExpectedDeliveryDate,
				"items":                len(po.Items), "totalAmount": po.TotalAmount,
				"status": string(po.Status),
			})
		}
		return fieldColumns("id", "vendor", "date", "expectedDeliveryDate", "items", "totalAmount", "status"), rows, nil

	case "sales-orders":
		orders := s.store.ListSalesOrders()
		rows := make([]map[string]any, 0, len(orders))
		for _, so := range orders {
			rows = append(rows, map[string]any{
				"id": so.ID, "customer": so.Customer, "date": so.Date,
				"expectedDeliveryDate": so.ExpectedDeliveryDate,
				"items":                len(so.Items), "totalAmount": so.TotalAmount,
				"status": string(so.Status),
			})
		}
		return fieldColumns("id", "customer", "date", "expectedDeliveryDate", "items", "totalAmount", "status"), rows, nil

	case "ledger":
		entries := s.store.ListLedger()
		rows := make([]map[string]any, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, map[string]any{
				"id": e.ID, "date": e.Date, "account": e.Account,
				"type": string(e.Type), "amount": e.Amount,
			})
		}
		return fieldColumns("id", "date", "account", "type", "amount"), rows, nil

	case "cashflow":
		entries := s.store.ListCashFlow()
		rows := make([]map[string]any, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, map[string]any{
				"month": e.Month, "cashIn": e.CashIn, "cashOut": e.CashOut,
			})
		}
		return fieldColumns("month", "cashIn", "cashOut"), rows, nil

	default:
		return nil, nil, fmt.Errorf("unknown export module: %s", module)
	}
}

func fieldColumns(keys ...string) []csvio.Column {
	cols := make([]csvio.Column, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, csvio.FieldColumn(k))
	}
	return cols
}
