package erp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aurora-ai/aurora-erp/internal/csvio"
	"github.com/aurora-ai/aurora-erp/internal/settings"
)

// assistantErrorMessage is shown to the user whenever a model call fails.
// The underlying error goes to the log, never to the client.
const assistantErrorMessage = "Sorry, I encountered an error. Please try again."

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeAssistantError maps advisor failures onto client responses. A
// disabled advisor is a configuration state, not a model failure, so it
// gets its own status and message.
func writeAssistantError(w http.ResponseWriter, operation string, err error) {
	if errors.Is(err, ErrAIDisabled) {
		writeJSONError(w, http.StatusServiceUnavailable, "AI features are disabled. Configure a Gemini API key to enable them.")
		return
	}
	slog.Error("Assistant request failed", "operation", operation, "error", err)
	writeJSONError(w, http.StatusBadGateway, assistantErrorMessage)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// handleIndex serves the HTML interface
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// --- Sales ---

func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Store().ListInvoices())
}

func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := s.service.Store().GetInvoice(r.PathValue("id"))
	if err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	var inv Invoice
	if !decodeBody(w, r, &inv) {
		return
	}
	if inv.ID == "" {
		inv.ID = s.service.NewID()
	}
	if inv.Status == "" {
		inv.Status = InvoiceDue
	}
	s.service.Store().UpsertInvoice(inv)
	writeJSON(w, http.StatusCreated, inv)
}

func (s *Server) handlePutInvoice(w http.ResponseWriter, r *http.Request) {
	var inv Invoice
	if !decodeBody(w, r, &inv) {
		return
	}
	inv.ID = r.PathValue("id")
	s.service.Store().UpsertInvoice(inv)
	writeJSON(w, http.StatusOK, inv)
}

func (s *Server) handleDeleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Store().DeleteInvoice(r.PathValue("id")); err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleImportInvoices parses uploaded CSV text and returns the review
// payload. Nothing is written to the store until the commit call.
func (s *Server) handleImportInvoices(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Error reading request body")
		return
	}
	result := s.service.ImportInvoices(string(body))
	slog.Info("Parsed invoice import", "invoices", len(result.Invoices), "errors", len(result.Errors))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCommitImport(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Invoices []Invoice `json:"invoices"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	count, err := s.service.CommitImport(payload.Invoices)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Info("Committed invoice import", "count", count)
	writeJSON(w, http.StatusOK, map[string]int{"imported": count})
}

func (s *Server) handleListSalesOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Store().ListSalesOrders())
}

func (s *Server) handleUpsertSalesOrder(w http.ResponseWriter, r *http.Request) {
	var so SalesOrder
	if !decodeBody(w, r, &so) {
		return
	}
	if so.ID == "" {
		so.ID = s.service.NewID()
	}
	s.service.Store().UpsertSalesOrder(so)
	writeJSON(w, http.StatusOK, so)
}

func (s *Server) handleDeleteSalesOrder(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Store().DeleteSalesOrder(r.PathValue("id")); err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- Inventory and purchasing ---

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Store().ListProducts())
}

func (s *Server) handleUpsertProduct(w http.ResponseWriter, r *http.Request) {
	var p Product
	if !decodeBody(w, r, &p) {
		return
	}
	if p.ID == "" {
		p.ID = s.service.NewID()
	}
	s.service.Store().UpsertProduct(p)
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Store().DeleteProduct(r.PathValue("id")); err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Store().ListBills())
}

func (s *Server) handleUpsertBill(w http.ResponseWriter, r *http.Request) {
	var b Bill
	if !decodeBody(w, r, &b) {
		return
	}
	if b.ID == "" {
		b.ID = s.service.NewID()
	}
	s.service.Store().UpsertBill(b)
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Store().DeleteBill(r.PathValue("id")); err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Store().ListPurchaseOrders())
}

func (s *Server) handleUpsertPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var po PurchaseOrder
	if !decodeBody(w, r, &po) {
		return
	}
	if po.ID == "" {
		po.ID = s.service.NewID()
	}
	s.service.Store().UpsertPurchaseOrder(po)
	writeJSON(w, http.StatusOK, po)
}

func (s *Server) handleDeletePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Store().DeletePurchaseOrder(r.PathValue("id")); err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- CRM and HR ---

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Store().ListContacts())
}

func (s *Server) handleUpsertContact(w http.ResponseWriter, r *http.Request) {
	var c Contact
	if !decodeBody(w, r, &c) {
		return
	}
	if c.ID == "" {
		c.ID = s.service.NewID()
	}
	s.service.Store().UpsertContact(c)
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Store().DeleteContact(r.PathValue("id")); err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListDeals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Store().ListDeals())
}

func (s *Server) handleUpsertDeal(w http.ResponseWriter, r *http.Request) {
	var d Deal
	if !decodeBody(w, r, &d) {
		return
	}
	if d.ID == "" {
		d.ID = s.service.NewID()
	}
	s.service.Store().UpsertDeal(d)
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDeal(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Store().DeleteDeal(r.PathValue("id")); err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Store().ListEmployees())
}

func (s *Server) handleUpsertEmployee(w http.ResponseWriter, r *http.Request) {
	var e Employee
	if !decodeBody(w, r, &e) {
		return
	}
	if e.ID == "" {
		e.ID = s.service.NewID()
	}
	s.service.Store().UpsertEmployee(e)
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Store().DeleteEmployee(r.PathValue("id")); err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- Projects ---

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Store().ListTasks())
}

func (s *Server) handleUpsertTask(w http.ResponseWriter, r *http.Request) {
	var t Task
	if !decodeBody(w, r, &t) {
		return
	}
	if t.ID == "" {
		t.ID = s.service.NewID()
	}
	if t.Status == "" {
		t.Status = TaskToDo
	}
	s.service.Store().UpsertTask(t)
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Store().DeleteTask(r.PathValue("id")); err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- Accounting and reports ---

func (s *Server) handleListLedger(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Store().ListLedger())
}

// handlePostJournal posts a manual journal entry. Validation failures come
// back as 422 so the client can show them inline without losing the form.
func (s *Server) handlePostJournal(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Date  string        `json:"date"`
		Lines []JournalLine `json:"lines"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	entries, err := s.service.PostJournal(payload.Date, payload.Lines)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	slog.Info("Posted journal entry", "lines", len(entries))
	writeJSON(w, http.StatusCreated, entries)
}

func (s *Server) handleListCashFlow(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Store().ListCashFlow())
}

func (s *Server) handleListChart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Store().ListChart())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Summary())
}

// handleExport streams a module's records as a spreadsheet download. The
// path carries the module name and format, e.g. /api/export/invoices.csv
// or /api/export/products.xlsx.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	module, format, found := strings.Cut(file, ".")
	if !found || (format != "csv" && format != "xlsx") {
		writeJSONError(w, http.StatusBadRequest, "Export file must end in .csv or .xlsx")
		return
	}

	columns, rows, err := s.service.ExportTable(module)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file))
	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		err = csvio.WriteCSV(w, columns, rows)
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = csvio.WriteXLSX(w, module, columns, rows)
	}
	if err != nil {
		if errors.Is(err, csvio.ErrNoData) {
			// Headers are already partially written; the status still
			// reaches clients that have not begun reading the body.
			writeJSONError(w, http.StatusBadRequest, "no data to export")
			return
		}
		slog.Error("Error writing export", "module", module, "format", format, "error", err)
	}
}

// --- AI assistant ---

func (s *Server) handleAISummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.FinancialSummary(r.Context())
	if err != nil {
		writeAssistantError(w, "summary", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (s *Server) handleAIChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message string `json:"message"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	reply, err := s.service.ChatReply(r.Context(), payload.Message)
	if err != nil {
		writeAssistantError(w, "chat", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) handleAIQuestion(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Question string `json:"question"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	answer, err := s.service.AnswerQuestion(r.Context(), payload.Question)
	if err != nil {
		writeAssistantError(w, "question", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) handleAILeadScore(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		DealID string `json:"dealId"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	score, err := s.service.ScoreDeal(r.Context(), payload.DealID)
	if err != nil {
		writeAssistantError(w, "lead-score", err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

func (s *Server) handleAIForecast(w http.ResponseWriter, r *http.Request) {
	forecast, err := s.service.ForecastCashFlow(r.Context())
	if err != nil {
		writeAssistantError(w, "forecast", err)
		return
	}
	writeJSON(w, http.StatusOK, forecast)
}

func (s *Server) handleAIInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := s.service.ProactiveInsights(r.Context())
	if err != nil {
		writeAssistantError(w, "insights", err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

// handleAIGenerate produces synthetic rows for a module. With ?format=csv
// the rows come back as a CSV download keyed by the requested column names;
// otherwise the response is JSON for in-app preview.
func (s *Server) handleAIGenerate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Module   string   `json:"module"`
		Columns  []string `json:"columns"`
		RowCount int      `json:"rowCount"`
		Rules    string   `json:"rules"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	rows, err := s.service.GenerateRows(r.Context(), payload.Module, payload.Columns, payload.RowCount, payload.Rules)
	if err != nil {
		writeAssistantError(w, "generate", err)
		return
	}

	if r.URL.Query().Get("format") != "csv" {
		writeJSON(w, http.StatusOK, rows)
		return
	}

	columns := make([]csvio.Column, 0, len(payload.Columns))
	for _, name := range payload.Columns {
		columns = append(columns, csvio.Column{Key: name, Header: name, Field: name})
	}
	anyRows := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		converted := make(map[string]any, len(row))
		for k, v := range row {
			converted[k] = v
		}
		anyRows = append(anyRows, converted)
	}
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payload.Module+"-synthetic.csv"))
	if err := csvio.WriteCSV(w, columns, anyRows); err != nil {
		slog.Error("Error writing synthetic CSV", "module", payload.Module, "error", err)
	}
}

// handleAIScanInvoice extracts structured invoice data from an uploaded
// document image or PDF.
func (s *Server) handleAIScanInvoice(w http.ResponseWriter, r *http.Request) {
	// 50MB cap to handle high-resolution phone photos
	maxFormSize := int64(50 << 20)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		message := "Error parsing form"
		if err.Error() == "http: request body too large" {
			message = "File is too large. Maximum size is 50MB. Please compress or resize your document."
		}
		writeJSONError(w, http.StatusBadRequest, message)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "No file was selected. Please choose a file to upload.")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading uploaded file", "error", err)
		writeJSONError(w, http.StatusBadRequest, "Error reading file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	slog.Info("Scanning invoice document", "filename", header.Filename, "size", len(data), "contentType", contentType)

	scanned, err := s.service.ScanInvoice(r.Context(), data, contentType)
	if err != nil {
		writeAssistantError(w, "scan-invoice", err)
		return
	}
	writeJSON(w, http.StatusOK, scanned)
}

func (s *Server) handleAIJournalDraft(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		InvoiceID string `json:"invoiceId"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	draft, err := s.service.DraftJournalFromInvoice(r.Context(), payload.InvoiceID)
	if err != nil {
		writeAssistantError(w, "journal-draft", err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// --- Settings ---

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := s.themes.Theme()
	if err != nil {
		slog.Error("Error loading theme", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, theme)
}

func (s *Server) handlePutTheme(w http.ResponseWriter, r *http.Request) {
	var theme settings.Theme
	if !decodeBody(w, r, &theme) {
		return
	}
	if theme.Primary == "" || theme.DarkBg == "" {
		writeJSONError(w, http.StatusBadRequest, "Both primary and darkBg colors are required")
		return
	}
	if err := s.themes.SaveTheme(theme); err != nil {
		slog.Error("Error saving theme", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, theme)
}
