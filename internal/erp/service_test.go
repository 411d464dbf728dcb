package erp

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aurora-ai/aurora-erp/internal/advisor"
)

// mockAdvisor is a mock implementation of advisor.Advisor
type mockAdvisor struct {
	summary      string
	reply        string
	answer       string
	leadScore    *advisor.LeadScore
	forecast     *advisor.CashFlowForecast
	insights     []advisor.Insight
	rows         []map[string]string
	scanned      *advisor.ScannedInvoice
	draft        *advisor.JournalDraft
	err          error
	lastDealName string
	lastDealVal  float64
	lastPayload  any
}

func newMockAdvisor() *mockAdvisor {
	return &mockAdvisor{
		summary:   "All good.",
		reply:     "Hello!",
		answer:    "42",
		leadScore: &advisor.LeadScore{Score: 85, Action: "Schedule a demo"},
		forecast:  &advisor.CashFlowForecast{Forecast30: 1, Forecast60: 2, Forecast90: 3},
		insights:  []advisor.Insight{{Type: advisor.InsightAnomaly, Title: "t", Description: "d"}},
		rows:      []map[string]string{{"Name": "A"}},
		scanned:   &advisor.ScannedInvoice{VendorName: "Globex", InvoiceID: "GLX-1"},
		draft: &advisor.JournalDraft{
			Entries:  []advisor.GLEntry{{AccountID: "4000", CreditAmount: 100}},
			SourceID: "INV-001",
		},
	}
}

func (m *mockAdvisor) FinancialSummary(ctx context.Context, chartData any) (string, error) {
	m.lastPayload = chartData
	return m.summary, m.err
}

func (m *mockAdvisor) ChatReply(ctx context.Context, userInput string) (string, error) {
	return m.reply, m.err
}

func (m *mockAdvisor) AnswerQuestion(ctx context.Context, question string, contextData any) (string, error) {
	m.lastPayload = contextData
	return m.answer, m.err
}

func (m *mockAdvisor) LeadScore(ctx context.Context, dealName string, dealValue float64) (*advisor.LeadScore, error) {
	m.lastDealName = dealName
	m.lastDealVal = dealValue
	if m.err != nil {
		return nil, m.err
	}
	return m.leadScore, nil
}

func (m *mockAdvisor) Forecast(ctx context.Context, history any) (*advisor.CashFlowForecast, error) {
	m.lastPayload = history
	if m.err != nil {
		return nil, m.err
	}
	return m.forecast, nil
}

func (m *mockAdvisor) Insights(ctx context.Context, snapshot any) ([]advisor.Insight, error) {
	m.lastPayload = snapshot
	if m.err != nil {
		return nil, m.err
	}
	return m.insights, nil
}

func (m *mockAdvisor) SyntheticRows(ctx context.Context, module string, columns []string, rowCount int, rules string) ([]map[string]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

func (m *mockAdvisor) ScanInvoice(ctx context.Context, document []byte, contentType string) (*advisor.ScannedInvoice, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.scanned, nil
}

func (m *mockAdvisor) DraftJournalEntry(ctx context.Context, invoice any) (*advisor.JournalDraft, error) {
	m.lastPayload = invoice
	if m.err != nil {
		return nil, m.err
	}
	return m.draft, nil
}

func (m *mockAdvisor) Close() error {
	return nil
}

// mockIDGenerator is a mock implementation of IDGenerator
type mockIDGenerator struct {
	n int
}

func (m *mockIDGenerator) Generate() string {
	m.n++
	return fmt.Sprintf("test-id-%d", m.n)
}

// mockTimeSource is a mock implementation of TimeSource
type mockTimeSource struct {
	now time.Time
}

func (m *mockTimeSource) Now() time.Time {
	return m.now
}

var _ = Describe("Service", func() {
	var (
		store   *Store
		adv     *mockAdvisor
		idGen   *mockIDGenerator
		timeSrc *mockTimeSource
		service *Service
		ctx     context.Context
	)

	BeforeEach(func() {
		store = NewStore(SeedData())
		adv = newMockAdvisor()
		idGen = &mockIDGenerator{}
		timeSrc = &mockTimeSource{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
		service = NewServiceWithDeps(store, adv, idGen, timeSrc)
		ctx = context.Background()
	})

	Describe("CommitImport", func() {
		var (
			invoices []Invoice
			count    int
			err      error
		)

		BeforeEach(func() {
			invoices = []Invoice{
				{ID: "INV-100", Customer: "Acme", Items: []LineItem{{ID: "INV-100-1", Quantity: 1, Price: 100}}},
			}
		})

		JustBeforeEach(func() {
			count, err = service.CommitImport(invoices)
		})

		When("the invoices are valid", func() {
			It("returns the committed count", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(count).To(Equal(1))
			})

			It("stores the invoice", func() {
				stored, getErr := store.GetInvoice("INV-100")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(stored.Customer).To(Equal("Acme"))
			})

			It("defaults a missing status to Due", func() {
				stored, _ := store.GetInvoice("INV-100")
				Expect(stored.Status).To(Equal(InvoiceDue))
			})
		})

		When("an invoice shares an ID with a stored one", func() {
			BeforeEach(func() {
				invoices[0].ID = "INV-001"
			})

			It("replaces the stored invoice", func() {
				Expect(err).NotTo(HaveOccurred())
				stored, _ := store.GetInvoice("INV-001")
				Expect(stored.Customer).To(Equal("Acme"))
				Expect(store.ListInvoices()).To(HaveLen(6))
			})
		})

		When("an invoice has no ID", func() {
			BeforeEach(func() {
				invoices[0].ID = ""
			})

			It("rejects the whole batch", func() {
				Expect(err).To(MatchError("invoice 1 has no ID"))
				Expect(count).To(BeZero())
			})
		})

		When("an invoice has no line items", func() {
			BeforeEach(func() {
				invoices[0].Items = nil
			})

			It("rejects the whole batch", func() {
				Expect(err).To(MatchError("invoice INV-100 has no line items"))
			})
		})
	})

	Describe("ValidateJournal", func() {
		It("rejects an empty entry", func() {
			Expect(ValidateJournal(nil)).To(MatchError("journal entry has no lines"))
		})

		It("rejects a line without an account", func() {
			err := ValidateJournal([]JournalLine{{Debit: 10}, {Account: "Sales", Credit: 10}})
			Expect(err).To(MatchError("journal line 1 is missing an account"))
		})

		It("rejects unbalanced debits and credits", func() {
			err := ValidateJournal([]JournalLine{
				{Account: "Cash", Debit: 100},
				{Account: "Sales", Credit: 99},
			})
			Expect(err).To(MatchError("journal entry is not balanced: debits 100.00, credits 99.00"))
		})

		It("tolerates sub-cent rounding noise", func() {
			err := ValidateJournal([]JournalLine{
				{Account: "Cash", Debit: 100.001},
				{Account: "Sales", Credit: 100},
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("accepts a balanced entry", func() {
			err := ValidateJournal([]JournalLine{
				{Account: "Cash", Type: AccountRevenue, Debit: 100},
				{Account: "Sales", Type: AccountRevenue, Credit: 100},
			})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("PostJournal", func() {
		var (
			lines   []JournalLine
			date    string
			entries []LedgerEntry
			err     error
		)

		BeforeEach(func() {
			date = ""
			lines = []JournalLine{
				{Account: "Cash", Type: AccountRevenue, Debit: 500},
				{Account: "Sales", Type: AccountRevenue, Credit: 500},
			}
		})

		JustBeforeEach(func() {
			entries, err = service.PostJournal(date, lines)
		})

		When("the entry is balanced", func() {
			It("posts one ledger entry per line", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(entries).To(HaveLen(2))
			})

			It("assigns generated IDs", func() {
				Expect(entries[0].ID).To(Equal("test-id-1"))
				Expect(entries[1].ID).To(Equal("test-id-2"))
			})

			It("defaults the date from the clock", func() {
				Expect(entries[0].Date).To(Equal("2024-01-15"))
			})

			It("uses the non-zero side as the amount", func() {
				Expect(entries[0].Amount).To(Equal(500.0))
				Expect(entries[1].Amount).To(Equal(500.0))
			})

			It("appends to the ledger", func() {
				Expect(store.ListLedger()).To(HaveLen(9))
			})
		})

		When("a date is supplied", func() {
			BeforeEach(func() {
				date = "2023-12-31"
			})

			It("keeps the supplied date", func() {
				Expect(entries[0].Date).To(Equal("2023-12-31"))
			})
		})

		When("the entry is unbalanced", func() {
			BeforeEach(func() {
				lines[1].Credit = 400
			})

			It("returns the validation error and posts nothing", func() {
				Expect(err).To(HaveOccurred())
				Expect(store.ListLedger()).To(HaveLen(7))
			})
		})
	})

	Describe("Summary", func() {
		var summary DashboardSummary

		JustBeforeEach(func() {
			summary = service.Summary()
		})

		It("sums total sales from invoice line items", func() {
			Expect(summary.TotalSales).To(Equal(12853825000.0))
		})

		It("counts unpaid invoices as open", func() {
			Expect(summary.OpenInvoices).To(Equal(4))
		})

		It("counts products below the stock threshold", func() {
			Expect(summary.CriticalStock).To(Equal(1))
		})

		It("counts unfinished high-priority tasks", func() {
			Expect(summary.UrgentTasks).To(Equal(1))
		})
	})

	Describe("ScoreDeal", func() {
		var (
			dealID string
			score  *advisor.LeadScore
			err    error
		)

		BeforeEach(func() {
			dealID = "DEAL-01"
		})

		JustBeforeEach(func() {
			score, err = service.ScoreDeal(ctx, dealID)
		})

		When("the deal exists", func() {
			It("passes the deal name and value to the advisor", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(adv.lastDealName).To(Equal("Project Titan Server Upgrade"))
				Expect(adv.lastDealVal).To(Equal(750000000.0))
			})

			It("returns the advisor's score", func() {
				Expect(score.Score).To(Equal(85.0))
			})
		})

		When("the deal does not exist", func() {
			BeforeEach(func() {
				dealID = "DEAL-99"
			})

			It("returns the lookup error without calling the advisor", func() {
				Expect(err).To(HaveOccurred())
				Expect(adv.lastDealName).To(BeEmpty())
			})
		})

		When("the advisor fails", func() {
			BeforeEach(func() {
				adv.err = errors.New("model error")
			})

			It("wraps the advisor error", func() {
				Expect(err).To(MatchError(ContainSubstring("scoring deal DEAL-01")))
			})
		})
	})

	Describe("GenerateRows", func() {
		It("rejects a row count below 1", func() {
			_, err := service.GenerateRows(ctx, "inventory", []string{"Name"}, 0, "")
			Expect(err).To(MatchError("row count must be between 1 and 100"))
		})

		It("rejects a row count above 100", func() {
			_, err := service.GenerateRows(ctx, "inventory", []string{"Name"}, 101, "")
			Expect(err).To(MatchError("row count must be between 1 and 100"))
		})

		It("passes a valid request through", func() {
			rows, err := service.GenerateRows(ctx, "inventory", []string{"Name"}, 5, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
		})
	})

	Describe("DraftJournalFromInvoice", func() {
		It("sends the invoice with its derived amount", func() {
			draft, err := service.DraftJournalFromInvoice(ctx, "INV-006")
			Expect(err).NotTo(HaveOccurred())
			Expect(draft.SourceID).To(Equal("INV-001"))

			payload, ok := adv.lastPayload.(map[string]any)
			Expect(ok).To(BeTrue())
			Expect(payload["id"]).To(Equal("INV-006"))
			Expect(payload["amount"]).To(Equal(17500000.0))
		})

		It("returns the lookup error for an unknown invoice", func() {
			_, err := service.DraftJournalFromInvoice(ctx, "INV-999")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("without an advisor", func() {
		BeforeEach(func() {
			service = NewServiceWithDeps(store, nil, idGen, timeSrc)
		})

		It("reports AI as disabled for every AI operation", func() {
			_, err := service.FinancialSummary(ctx)
			Expect(err).To(MatchError(ErrAIDisabled))
			_, err = service.ChatReply(ctx, "hi")
			Expect(err).To(MatchError(ErrAIDisabled))
			_, err = service.AnswerQuestion(ctx, "why")
			Expect(err).To(MatchError(ErrAIDisabled))
			_, err = service.ScoreDeal(ctx, "DEAL-01")
			Expect(err).To(MatchError(ErrAIDisabled))
			_, err = service.ForecastCashFlow(ctx)
			Expect(err).To(MatchError(ErrAIDisabled))
			_, err = service.ProactiveInsights(ctx)
			Expect(err).To(MatchError(ErrAIDisabled))
			_, err = service.GenerateRows(ctx, "crm", []string{"Name"}, 5, "")
			Expect(err).To(MatchError(ErrAIDisabled))
			_, err = service.ScanInvoice(ctx, []byte("img"), "image/png")
			Expect(err).To(MatchError(ErrAIDisabled))
			_, err = service.DraftJournalFromInvoice(ctx, "INV-001")
			Expect(err).To(MatchError(ErrAIDisabled))
		})
	})
})
