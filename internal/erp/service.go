package erp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aurora-ai/aurora-erp/internal/advisor"
)

// ErrAIDisabled is returned by AI operations when the service runs without
// a configured advisor. CRUD features are unaffected.
var ErrAIDisabled = errors.New("ai features are disabled")

// IDGenerator generates unique IDs for records created server-side.
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time.
type TimeSource interface {
	Now() time.Time
}

type uuidGenerator struct{}

func (uuidGenerator) Generate() string {
	return uuid.NewString()
}

type defaultTimeSource struct{}

func (defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service holds the domain operations over the store plus the AI advisor.
// advisor may be nil when the binary runs in CRUD-only mode.
type Service struct {
	store       *Store
	advisor     advisor.Advisor
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a Service with the default ID generator and clock.
func NewService(store *Store, adv advisor.Advisor) *Service {
	return &Service{
		store:       store,
		advisor:     adv,
		idGenerator: uuidGenerator{},
		timeSource:  defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a Service with custom dependencies for testing.
func NewServiceWithDeps(store *Store, adv advisor.Advisor, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		store:       store,
		advisor:     adv,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// Store exposes the record store for the plain CRUD handlers.
func (s *Service) Store() *Store {
	return s.store
}

// NewID generates an identifier for records created without one.
func (s *Service) NewID() string {
	return s.idGenerator.Generate()
}

// ImportInvoices parses CSV text against the current product catalog. The
// result is the review payload; nothing is committed yet.
func (s *Service) ImportInvoices(csvText string) ImportResult {
	return ParseInvoices(csvText, s.store.ListProducts())
}

// CommitImport merges reviewed invoices into the store, replacing any
// invoice that shares an ID. It returns the number of committed records.
func (s *Service) CommitImport(invoices []Invoice) (int, error) {
	for i, inv := range invoices {
		if inv.ID == "" {
			return 0, fmt.Errorf("invoice %d has no ID", i+1)
		}
		if len(inv.Items) == 0 {
			return 0, fmt.Errorf("invoice %s has no line items", inv.ID)
		}
	}
	for _, inv := range invoices {
		if inv.Status == "" {
			inv.Status = InvoiceDue
		}
		s.store.UpsertInvoice(inv)
	}
	return len(invoices), nil
}

// ValidateJournal checks a manual journal entry before posting: every line
// needs an account and total debits must equal total credits. Validation
// failures block the save only.
func ValidateJournal(lines []JournalLine) error {
	if len(lines) == 0 {
		return errors.New("journal entry has no lines")
	}
	var debits, credits float64
	for i, line := range lines {
		if line.Account == "" {
			return fmt.Errorf("journal line %d is missing an account", i+1)
		}
		debits += line.Debit
		credits += line.Credit
	}
	if diff := debits - credits; diff > 0.005 || diff < -0.005 {
		return fmt.Errorf("journal entry is not balanced: debits %.2f, credits %.2f", debits, credits)
	}
	return nil
}

// PostJournal validates and posts a manual journal entry to the ledger.
func (s *Service) PostJournal(date string, lines []JournalLine) ([]LedgerEntry, error) {
	if err := ValidateJournal(lines); err != nil {
		return nil, err
	}
	if date == "" {
		date = s.timeSource.Now().Format("2006-01-02")
	}

	entries := make([]LedgerEntry, 0, len(lines))
	for _, line := range lines {
		amount := line.Debit
		if amount == 0 {
			amount = line.Credit
		}
		entryType := line.Type
		if entryType == "" {
			entryType = AccountExpense
		}
		entries = append(entries, LedgerEntry{
			ID:      s.idGenerator.Generate(),
			Date:    date,
			Account: line.Account,
			Type:    entryType,
			Amount:  amount,
		})
	}
	s.store.AppendLedger(entries...)
	return entries, nil
}

// DashboardSummary is the headline figure block on the dashboard.
type DashboardSummary struct {
	TotalSales    float64 `json:"totalSales"`
	OpenInvoices  int     `json:"openInvoices"`
	CriticalStock int     `json:"criticalStock"`
	UrgentTasks   int     `json:"urgentTasks"`
}

const lowStockThreshold = 10

// Summary computes the dashboard headline figures from current records.
func (s *Service) Summary() DashboardSummary {
	var summary DashboardSummary
	for _, inv := range s.store.ListInvoices() {
		summary.TotalSales += inv.Total()
		if inv.Status != InvoicePaid {
			summary.OpenInvoices++
		}
	}
	for _, p := range s.store.ListProducts() {
		if p.Stock < lowStockThreshold {
			summary.CriticalStock++
		}
	}
	for _, t := range s.store.ListTasks() {
		if t.Priority == PriorityHigh && t.Status != TaskDone {
			summary.UrgentTasks++
		}
	}
	return summary
}

// --- AI operations ---
// Each is a one-shot call; errors are returned for the handler to convert
// into a user-facing message.

func (s *Service) FinancialSummary(ctx context.Context) (string, error) {
	if s.advisor == nil {
		return "", ErrAIDisabled
	}
	return s.advisor.FinancialSummary(ctx, s.store.ListChart())
}

func (s *Service) ChatReply(ctx context.Context, input string) (string, error) {
	if s.advisor == nil {
		return "", ErrAIDisabled
	}
	return s.advisor.ChatReply(ctx, input)
}

func (s *Service) AnswerQuestion(ctx context.Context, question string) (string, error) {
	if s.advisor == nil {
		return "", ErrAIDisabled
	}
	return s.advisor.AnswerQuestion(ctx, question, s.store.Snapshot())
}

// ScoreDeal scores the named deal and logs the outcome for the audit trail.
func (s *Service) ScoreDeal(ctx context.Context, dealID string) (*advisor.LeadScore, error) {
	if s.advisor == nil {
		return nil, ErrAIDisabled
	}
	deal, err := s.store.GetDeal(dealID)
	if err != nil {
		return nil, err
	}
	score, err := s.advisor.LeadScore(ctx, deal.Name, deal.Value)
	if err != nil {
		return nil, fmt.Errorf("scoring deal %s: %w", dealID, err)
	}
	slog.Info("Scored deal", "deal", dealID, "score", score.Score)
	return score, nil
}

func (s *Service) ForecastCashFlow(ctx context.Context) (*advisor.CashFlowForecast, error) {
	if s.advisor == nil {
		return nil, ErrAIDisabled
	}
	return s.advisor.Forecast(ctx, s.store.ListCashFlow())
}

func (s *Service) ProactiveInsights(ctx context.Context) ([]advisor.Insight, error) {
	if s.advisor == nil {
		return nil, ErrAIDisabled
	}
	snapshot := s.store.Snapshot()
	// The analysis prompt only needs the commercial records.
	return s.advisor.Insights(ctx, map[string]any{
		"invoices": snapshot.Invoices,
		"products": snapshot.Products,
		"deals":    snapshot.Deals,
		"bills":    snapshot.Bills,
	})
}

func (s *Service) GenerateRows(ctx context.Context, module string, columns []string, rowCount int, rules string) ([]map[string]string, error) {
	if s.advisor == nil {
		return nil, ErrAIDisabled
	}
	if rowCount < 1 || rowCount > 100 {
		return nil, fmt.Errorf("row count must be between 1 and 100")
	}
	return s.advisor.SyntheticRows(ctx, module, columns, rowCount, rules)
}

func (s *Service) ScanInvoice(ctx context.Context, document []byte, contentType string) (*advisor.ScannedInvoice, error) {
	if s.advisor == nil {
		return nil, ErrAIDisabled
	}
	return s.advisor.ScanInvoice(ctx, document, contentType)
}

// DraftJournalFromInvoice asks the model to draft a balanced journal entry
// for a stored invoice. The draft is returned for review, not posted.
func (s *Service) DraftJournalFromInvoice(ctx context.Context, invoiceID string) (*advisor.JournalDraft, error) {
	if s.advisor == nil {
		return nil, ErrAIDisabled
	}
	inv, err := s.store.GetInvoice(invoiceID)
	if err != nil {
		return nil, err
	}
	draft, err := s.advisor.DraftJournalEntry(ctx, map[string]any{
		"id":       inv.ID,
		"customer": inv.Customer,
		"date":     inv.Date,
		"dueDate":  inv.DueDate,
		"items":    inv.Items,
		"amount":   inv.Total(),
	})
	if err != nil {
		return nil, fmt.Errorf("drafting journal entry for %s: %w", invoiceID, err)
	}
	return draft, nil
}
