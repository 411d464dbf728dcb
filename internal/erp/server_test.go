package erp

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	"github.com/aurora-ai/aurora-erp/internal/settings"
)

// mockThemeStore is a mock implementation of ThemeStore
type mockThemeStore struct {
	theme   settings.Theme
	saveErr error
	getErr  error
}

func newMockThemeStore() *mockThemeStore {
	return &mockThemeStore{theme: settings.DefaultTheme}
}

func (m *mockThemeStore) Theme() (settings.Theme, error) {
	if m.getErr != nil {
		return settings.Theme{}, m.getErr
	}
	return m.theme, nil
}

func (m *mockThemeStore) SaveTheme(theme settings.Theme) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.theme = theme
	return nil
}

var _ = Describe("Server", func() {
	var (
		store       *Store
		adv         *mockAdvisor
		service     *Service
		themes      *mockThemeStore
		auth        BasicAuth
		server      *Server
		ghttpServer *ghttp.Server
	)

	setupServer := func() {
		if ghttpServer != nil {
			ghttpServer.Close()
		}
		server = NewServerWithMux(service, themes, auth, http.NewServeMux())
		ghttpServer = ghttp.NewServer()
		ghttpServer.AppendHandlers(server.ServeHTTP)
	}

	BeforeEach(func() {
		store = NewStore(SeedData())
		adv = newMockAdvisor()
		themes = newMockThemeStore()
		auth = BasicAuth{}
		service = NewService(store, adv)
		setupServer()
	})

	AfterEach(func() {
		if ghttpServer != nil {
			ghttpServer.Close()
		}
	})

	getJSON := func(path string, v any) *http.Response {
		resp, err := http.Get(ghttpServer.URL() + path)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		if v != nil {
			Expect(json.NewDecoder(resp.Body).Decode(v)).To(Succeed())
		}
		return resp
	}

	postJSON := func(path string, payload any) *http.Response {
		body, err := json.Marshal(payload)
		Expect(err).NotTo(HaveOccurred())
		resp, err := http.Post(ghttpServer.URL()+path, "application/json", bytes.NewReader(body))
		Expect(err).NotTo(HaveOccurred())
		return resp
	}

	Describe("handleIndex", func() {
		It("serves the landing page", func() {
			resp, err := http.Get(ghttpServer.URL() + "/")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(body)).To(ContainSubstring("Aurora ERP"))
		})
	})

	Describe("invoice endpoints", func() {
		It("lists the seeded invoices", func() {
			var invoices []Invoice
			resp := getJSON("/api/invoices", &invoices)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(invoices).To(HaveLen(6))
		})

		It("returns a single invoice by ID", func() {
			var inv Invoice
			resp := getJSON("/api/invoices/INV-002", &inv)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(inv.Customer).To(Equal("Wayne Enterprises"))
		})

		It("returns 404 for an unknown invoice", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/invoices/INV-999")
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})

		It("creates an invoice with a generated ID and Due status", func() {
			resp := postJSON("/api/invoices", Invoice{
				Customer: "New Customer",
				Items:    []LineItem{{ID: "x-1", Quantity: 1, Price: 100}},
			})
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			var created Invoice
			Expect(json.NewDecoder(resp.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).NotTo(BeEmpty())
			Expect(created.Status).To(Equal(InvoiceDue))
		})

		It("deletes an invoice", func() {
			req, err := http.NewRequest("DELETE", ghttpServer.URL()+"/api/invoices/INV-001", nil)
			Expect(err).NotTo(HaveOccurred())
			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(store.ListInvoices()).To(HaveLen(5))
		})
	})

	Describe("handleImportInvoices", func() {
		It("returns the parse result without committing", func() {
			csvText := "InvoiceID,Customer,Date,DueDate,ProductID,Quantity\n" +
				"INV-100,Acme,2024-01-10,2024-02-09,PROD-01,3\n"
			resp, err := http.Post(ghttpServer.URL()+"/api/invoices/import", "text/csv", strings.NewReader(csvText))
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var result ImportResult
			Expect(json.NewDecoder(resp.Body).Decode(&result)).To(Succeed())
			Expect(result.Invoices).To(HaveLen(1))
			Expect(result.Errors).To(BeEmpty())

			_, getErr := store.GetInvoice("INV-100")
			Expect(getErr).To(HaveOccurred())
		})

		It("returns row errors alongside parsed invoices", func() {
			csvText := "InvoiceID,Customer,Date,DueDate,ProductID,Quantity\n" +
				"INV-100,Acme,2024-01-10,2024-02-09,PROD-99,3\n"
			resp, err := http.Post(ghttpServer.URL()+"/api/invoices/import", "text/csv", strings.NewReader(csvText))
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			var result ImportResult
			Expect(json.NewDecoder(resp.Body).Decode(&result)).To(Succeed())
			Expect(result.Errors).To(HaveLen(1))
		})
	})

	Describe("handleCommitImport", func() {
		It("stores reviewed invoices", func() {
			resp := postJSON("/api/invoices/import/commit", map[string]any{
				"invoices": []Invoice{
					{ID: "INV-100", Customer: "Acme", Items: []LineItem{{ID: "INV-100-1", Quantity: 1, Price: 100}}},
				},
			})
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			stored, err := store.GetInvoice("INV-100")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Customer).To(Equal("Acme"))
		})

		It("rejects invoices without line items", func() {
			resp := postJSON("/api/invoices/import/commit", map[string]any{
				"invoices": []Invoice{{ID: "INV-100", Customer: "Acme"}},
			})
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("handlePostJournal", func() {
		It("posts a balanced entry", func() {
			resp := postJSON("/api/journal", map[string]any{
				"date": "2024-01-15",
				"lines": []JournalLine{
					{Account: "Cash", Type: AccountRevenue, Debit: 100},
					{Account: "Sales", Type: AccountRevenue, Credit: 100},
				},
			})
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))
			Expect(store.ListLedger()).To(HaveLen(9))
		})

		It("returns 422 for an unbalanced entry", func() {
			resp := postJSON("/api/journal", map[string]any{
				"lines": []JournalLine{
					{Account: "Cash", Debit: 100},
					{Account: "Sales", Credit: 50},
				},
			})
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusUnprocessableEntity))

			var body map[string]string
			Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
			Expect(body["error"]).To(ContainSubstring("not balanced"))
		})
	})

	Describe("handleDashboard", func() {
		It("returns the headline figures", func() {
			var summary DashboardSummary
			resp := getJSON("/api/dashboard", &summary)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(summary.OpenInvoices).To(Equal(4))
			Expect(summary.CriticalStock).To(Equal(1))
		})
	})

	Describe("handleExport", func() {
		It("serves a CSV attachment", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/export/products.csv")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(ContainSubstring("text/csv"))
			Expect(resp.Header.Get("Content-Disposition")).To(ContainSubstring("products.csv"))

			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(body)).To(HavePrefix("Id,Name,Sku,Category,Stock,Price"))
		})

		It("serves an XLSX attachment", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/export/deals.xlsx")
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(ContainSubstring("spreadsheetml"))
		})

		It("rejects unknown formats", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/export/products.pdf")
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 for an unknown module", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/export/warehouses.csv")
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("AI endpoints", func() {
		It("returns the financial summary", func() {
			resp := postJSON("/api/ai/summary", nil)
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body map[string]string
			Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
			Expect(body["summary"]).To(Equal("All good."))
		})

		It("scores a deal", func() {
			resp := postJSON("/api/ai/lead-score", map[string]string{"dealId": "DEAL-01"})
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body map[string]any
			Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
			Expect(body["score"]).To(Equal(85.0))
		})

		When("the advisor fails", func() {
			BeforeEach(func() {
				adv.err = errors.New("model unavailable")
			})

			It("hides the error behind the fallback message", func() {
				resp := postJSON("/api/ai/chat", map[string]string{"message": "hi"})
				defer resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusBadGateway))

				var body map[string]string
				Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
				Expect(body["error"]).To(Equal("Sorry, I encountered an error. Please try again."))
			})
		})

		When("AI is disabled", func() {
			BeforeEach(func() {
				service = NewService(store, nil)
				setupServer()
			})

			It("returns 503 with a configuration hint", func() {
				resp := postJSON("/api/ai/forecast", nil)
				defer resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusServiceUnavailable))

				var body map[string]string
				Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
				Expect(body["error"]).To(ContainSubstring("disabled"))
			})
		})

		It("downloads synthetic rows as CSV when asked", func() {
			adv.rows = []map[string]string{
				{"Nama Produk": "Widget", "ID Barang/SKU": "SKU-1"},
				{"Nama Produk": "Sprocket", "ID Barang/SKU": "SKU-2"},
			}
			resp := postJSON("/api/ai/generate?format=csv", map[string]any{
				"module":   "inventory",
				"columns":  []string{"Nama Produk", "ID Barang/SKU"},
				"rowCount": 2,
			})
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(ContainSubstring("text/csv"))

			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(body)).To(HavePrefix("Nama Produk,ID Barang/SKU\n"))
			Expect(string(body)).To(ContainSubstring("Widget,SKU-1"))
		})

		It("scans an uploaded invoice document", func() {
			var buf bytes.Buffer
			writer := multipart.NewWriter(&buf)
			part, err := writer.CreateFormFile("file", "invoice.png")
			Expect(err).NotTo(HaveOccurred())
			_, err = part.Write([]byte("fake image data"))
			Expect(err).NotTo(HaveOccurred())
			Expect(writer.Close()).To(Succeed())

			resp, err := http.Post(ghttpServer.URL()+"/api/ai/scan-invoice", writer.FormDataContentType(), &buf)
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body map[string]any
			Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
			Expect(body["vendor_name"]).To(Equal("Globex"))
		})
	})

	Describe("theme endpoints", func() {
		It("returns the default theme", func() {
			var theme settings.Theme
			resp := getJSON("/api/settings/theme", &theme)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(theme).To(Equal(settings.DefaultTheme))
		})

		It("saves a new theme", func() {
			body, err := json.Marshal(settings.Theme{Primary: "#ff0000", DarkBg: "#000000"})
			Expect(err).NotTo(HaveOccurred())
			req, err := http.NewRequest("PUT", ghttpServer.URL()+"/api/settings/theme", bytes.NewReader(body))
			Expect(err).NotTo(HaveOccurred())
			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(themes.theme.Primary).To(Equal("#ff0000"))
		})

		It("rejects a partial theme", func() {
			body, err := json.Marshal(map[string]string{"primary": "#ff0000"})
			Expect(err).NotTo(HaveOccurred())
			req, err := http.NewRequest("PUT", ghttpServer.URL()+"/api/settings/theme", bytes.NewReader(body))
			Expect(err).NotTo(HaveOccurred())
			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("basic auth", func() {
		BeforeEach(func() {
			auth = BasicAuth{Username: "admin", Password: "secret"}
			setupServer()
		})

		It("rejects requests without credentials", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/invoices")
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		})

		It("accepts requests with valid credentials", func() {
			req, err := http.NewRequest("GET", ghttpServer.URL()+"/api/invoices", nil)
			Expect(err).NotTo(HaveOccurred())
			req.SetBasicAuth("admin", "secret")
			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
		})
	})
})
