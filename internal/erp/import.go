package erp

import (
	"fmt"
	"strconv"
	"strings"
)

// requiredImportHeaders are the columns an invoice CSV must carry. The
// optional PriceOverride column replaces the product's default price.
var requiredImportHeaders = []string{"InvoiceID", "Customer", "Date", "DueDate", "ProductID", "Quantity"}

// ParseInvoices turns raw CSV text into invoices grouped by InvoiceID plus a
// list of row-level error messages. Malformed rows are collected as errors
// and skipped; they never abort the import. Only an empty file or a missing
// required header short-circuits the whole attempt with a single error.
//
// Fields are split on commas with no quoting support, a deliberate
// limitation of the import format.
func ParseInvoices(csvText string, products []Product) ImportResult {
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := strings.Split(strings.ReplaceAll(strings.TrimSpace(csvText), "\r", ""), "\n")
	if len(lines) < 2 {
		return ImportResult{Invoices: []Invoice{}, Errors: []string{"CSV file is empty or contains only a header."}}
	}

	headers := splitAndTrim(lines[0])
	for _, required := range requiredImportHeaders {
		if !contains(headers, required) {
			msg := fmt.Sprintf("CSV is missing required header: %s. Expected headers are %s.",
				required, strings.Join(requiredImportHeaders, ", "))
			return ImportResult{Invoices: []Invoice{}, Errors: []string{msg}}
		}
	}

	var (
		errs    []string
		order   []string
		grouped = make(map[string]*Invoice)
	)

	for i, rowStr := range lines[1:] {
		if strings.TrimSpace(rowStr) == "" {
			continue
		}
		lineNo := i + 2 // 1-based, offset past the header row

		values := splitAndTrim(rowStr)
		row := make(map[string]string, len(headers))
		for j, header := range headers {
			if j < len(values) {
				row[header] = values[j]
			}
		}

		if row["InvoiceID"] == "" || row["Customer"] == "" || row["ProductID"] == "" ||
			row["Quantity"] == "" || row["Date"] == "" || row["DueDate"] == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Missing one or more required fields.", lineNo))
			continue
		}

		product, ok := byID[row["ProductID"]]
		if !ok {
			errs = append(errs, fmt.Sprintf("Row %d: Product with ID %q not found in inventory.", lineNo, row["ProductID"]))
			continue
		}

		quantity, qtyErr := strconv.Atoi(row["Quantity"])
		price := product.Price
		var priceErr error
		if override := row["PriceOverride"]; override != "" {
			price, priceErr = strconv.ParseFloat(override, 64)
		}
		if qtyErr != nil || quantity <= 0 || priceErr != nil || price < 0 {
			errs = append(errs, fmt.Sprintf("Row %d: Invalid number for Quantity or Price. Quantity must be positive.", lineNo))
			continue
		}

		item := LineItem{
			ProductID:   product.ID,
			SKU:         product.SKU,
			Description: product.Name,
			Quantity:    quantity,
			Price:       price,
		}

		if inv, ok := grouped[row["InvoiceID"]]; ok {
			// Later rows only contribute line items; the first row's
			// customer and dates win.
			inv.Items = append(inv.Items, item)
		} else {
			grouped[row["InvoiceID"]] = &Invoice{
				ID:       row["InvoiceID"],
				Customer: row["Customer"],
				Date:     row["Date"],
				DueDate:  row["DueDate"],
				Status:   InvoiceDue,
				Items:    []LineItem{item},
			}
			order = append(order, row["InvoiceID"])
		}
	}

	invoices := make([]Invoice, 0, len(order))
	for _, id := range order {
		inv := grouped[id]
		for i := range inv.Items {
			inv.Items[i].ID = fmt.Sprintf("%s-%d", inv.ID, i+1)
		}
		invoices = append(invoices, *inv)
	}

	if errs == nil {
		errs = []string{}
	}
	return ImportResult{Invoices: invoices, Errors: errs}
}

func splitAndTrim(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
