package erp

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aurora-ai/aurora-erp/internal/settings"
)

// ThemeStore persists the user's saved theme colors.
type ThemeStore interface {
	Theme() (settings.Theme, error)
	SaveTheme(settings.Theme) error
}

// Server handles HTTP requests for the dashboard API.
type Server struct {
	service   *Service
	themes    ThemeStore
	basicAuth BasicAuth
	mux       *http.ServeMux
}

// BasicAuth holds basic authentication credentials. Empty credentials
// disable authentication.
type BasicAuth struct {
	Username string
	Password string
}

// NewServer creates a Server with a default mux.
func NewServer(service *Service, themes ThemeStore, basicAuth BasicAuth) *Server {
	return NewServerWithMux(service, themes, basicAuth, http.NewServeMux())
}

// NewServerWithMux creates a Server with a custom mux for testing.
func NewServerWithMux(service *Service, themes ThemeStore, basicAuth BasicAuth, mux *http.ServeMux) *Server {
	s := &Server{
		service:   service,
		themes:    themes,
		basicAuth: basicAuth,
		mux:       mux,
	}
	s.registerRoutes()
	return s
}

func (s *Server) authenticate(r *http.Request) bool {
	if s.basicAuth.Username == "" && s.basicAuth.Password == "" {
		return true
	}

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Basic ") {
		return false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(auth, "Basic "))
	if err != nil {
		return false
	}
	credentials := strings.SplitN(string(decoded), ":", 2)
	if len(credentials) != 2 {
		return false
	}
	return credentials[0] == s.basicAuth.Username && credentials[1] == s.basicAuth.Password
}

func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authenticate(r) {
			setCORSHeaders(w)
			w.Header().Set("WWW-Authenticate", `Basic realm="Aurora ERP"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// registerRoutes registers all API routes on the server's mux. Routes go
// from most specific to least specific to avoid pattern conflicts.
func (s *Server) registerRoutes() {
	// Sales
	s.mux.HandleFunc("POST /api/invoices/import/commit", s.requireAuth(s.handleCommitImport))
	s.mux.HandleFunc("POST /api/invoices/import", s.requireAuth(s.handleImportInvoices))
	s.mux.HandleFunc("GET /api/invoices/{id}", s.requireAuth(s.handleGetInvoice))
	s.mux.HandleFunc("PUT /api/invoices/{id}", s.requireAuth(s.handlePutInvoice))
	s.mux.HandleFunc("DELETE /api/invoices/{id}", s.requireAuth(s.handleDeleteInvoice))
	s.mux.HandleFunc("GET /api/invoices", s.requireAuth(s.handleListInvoices))
	s.mux.HandleFunc("POST /api/invoices", s.requireAuth(s.handleCreateInvoice))
	s.mux.HandleFunc("GET /api/sales-orders", s.requireAuth(s.handleListSalesOrders))
	s.mux.HandleFunc("POST /api/sales-orders", s.requireAuth(s.handleUpsertSalesOrder))
	s.mux.HandleFunc("DELETE /api/sales-orders/{id}", s.requireAuth(s.handleDeleteSalesOrder))

	// Inventory and purchasing
	s.mux.HandleFunc("GET /api/products", s.requireAuth(s.handleListProducts))
	s.mux.HandleFunc("POST /api/products", s.requireAuth(s.handleUpsertProduct))
	s.mux.HandleFunc("DELETE /api/products/{id}", s.requireAuth(s.handleDeleteProduct))
	s.mux.HandleFunc("GET /api/bills", s.requireAuth(s.handleListBills))
	s.mux.HandleFunc("POST /api/bills", s.requireAuth(s.handleUpsertBill))
	s.mux.HandleFunc("DELETE /api/bills/{id}", s.requireAuth(s.handleDeleteBill))
	s.mux.HandleFunc("GET /api/purchase-orders", s.requireAuth(s.handleListPurchaseOrders))
	s.mux.HandleFunc("POST /api/purchase-orders", s.requireAuth(s.handleUpsertPurchaseOrder))
	s.mux.HandleFunc("DELETE /api/purchase-orders/{id}", s.requireAuth(s.handleDeletePurchaseOrder))

	// CRM and HR
	s.mux.HandleFunc("GET /api/contacts", s.requireAuth(s.handleListContacts))
	s.mux.HandleFunc("POST /api/contacts", s.requireAuth(s.handleUpsertContact))
	s.mux.HandleFunc("DELETE /api/contacts/{id}", s.requireAuth(s.handleDeleteContact))
	s.mux.HandleFunc("GET /api/deals", s.requireAuth(s.handleListDeals))
	s.mux.HandleFunc("POST /api/deals", s.requireAuth(s.handleUpsertDeal))
	s.mux.HandleFunc("DELETE /api/deals/{id}", s.requireAuth(s.handleDeleteDeal))
	s.mux.HandleFunc("GET /api/employees", s.requireAuth(s.handleListEmployees))
	s.mux.HandleFunc("POST /api/employees", s.requireAuth(s.handleUpsertEmployee))
	s.mux.HandleFunc("DELETE /api/employees/{id}", s.requireAuth(s.handleDeleteEmployee))

	// Projects
	s.mux.HandleFunc("GET /api/tasks", s.requireAuth(s.handleListTasks))
	s.mux.HandleFunc("POST /api/tasks", s.requireAuth(s.handleUpsertTask))
	s.mux.HandleFunc("DELETE /api/tasks/{id}", s.requireAuth(s.handleDeleteTask))

	// Accounting and reports
	s.mux.HandleFunc("GET /api/ledger", s.requireAuth(s.handleListLedger))
	s.mux.HandleFunc("POST /api/journal", s.requireAuth(s.handlePostJournal))
	s.mux.HandleFunc("GET /api/cashflow", s.requireAuth(s.handleListCashFlow))
	s.mux.HandleFunc("GET /api/chart", s.requireAuth(s.handleListChart))
	s.mux.HandleFunc("GET /api/dashboard", s.requireAuth(s.handleDashboard))
	s.mux.HandleFunc("GET /api/export/{file}", s.requireAuth(s.handleExport))

	// AI assistant
	s.mux.HandleFunc("POST /api/ai/summary", s.requireAuth(s.handleAISummary))
	s.mux.HandleFunc("POST /api/ai/chat", s.requireAuth(s.handleAIChat))
	s.mux.HandleFunc("POST /api/ai/question", s.requireAuth(s.handleAIQuestion))
	s.mux.HandleFunc("POST /api/ai/lead-score", s.requireAuth(s.handleAILeadScore))
	s.mux.HandleFunc("POST /api/ai/forecast", s.requireAuth(s.handleAIForecast))
	s.mux.HandleFunc("POST /api/ai/insights", s.requireAuth(s.handleAIInsights))
	s.mux.HandleFunc("POST /api/ai/generate", s.requireAuth(s.handleAIGenerate))
	s.mux.HandleFunc("POST /api/ai/scan-invoice", s.requireAuth(s.handleAIScanInvoice))
	s.mux.HandleFunc("POST /api/ai/journal-draft", s.requireAuth(s.handleAIJournalDraft))

	// Settings
	s.mux.HandleFunc("GET /api/settings/theme", s.requireAuth(s.handleGetTheme))
	s.mux.HandleFunc("PUT /api/settings/theme", s.requireAuth(s.handlePutTheme))

	// Landing page
	s.mux.HandleFunc("GET /index.html", s.requireAuth(s.handleIndex))
	s.mux.HandleFunc("GET /", s.requireAuth(s.handleIndex))
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	slog.Info("Starting server", "address", addr)
	return http.ListenAndServe(addr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.corsMiddleware(func(w http.ResponseWriter, r *http.Request) {
			s.mux.ServeHTTP(w, r)
		})(w, r)
	}))
}

// ServeHTTP implements http.Handler for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
