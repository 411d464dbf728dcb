// Package advisor isolates all interaction with the generative-AI endpoint
// behind typed functions. Every call is a one-shot request -> parse -> typed
// value pipeline: no retries, no caching, no streaming, no conversation
// state. Callers own the user-facing fallback when a call fails.
package advisor

import "context"

// LeadScore is the model's assessment of a sales deal.
type LeadScore struct {
	Score  float64 `json:"score"`
	Action string  `json:"action"`
}

// CashFlowForecast projects cash position 30, 60 and 90 days out. Warning
// is empty when the model sees no downturn.
type CashFlowForecast struct {
	Forecast30 float64 `json:"forecast30"`
	Forecast60 float64 `json:"forecast60"`
	Forecast90 float64 `json:"forecast90"`
	Warning    string  `json:"warning"`
}

// InsightType categorizes a proactive insight.
type InsightType string

const (
	InsightAnomaly     InsightType = "Anomaly"
	InsightOpportunity InsightType = "Opportunity"
	InsightEfficiency  InsightType = "Efficiency"
)

// Insight is one finding from a business-data analysis pass.
type Insight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
}

// ScannedLineItem is one extracted line from an invoice document.
type ScannedLineItem struct {
	Description          string  `json:"description"`
	Amount               float64 `json:"amount"`
	RecommendedGLAccount string  `json:"recommended_gl_account"`
}

// ScannedInvoice is the structured extraction of an invoice image or PDF.
type ScannedInvoice struct {
	DocumentType string            `json:"document_type"`
	VendorName   string            `json:"vendor_name"`
	InvoiceID    string            `json:"invoice_id"`
	InvoiceDate  string            `json:"invoice_date"`
	Currency     string            `json:"currency"`
	TotalAmount  float64           `json:"total_amount"`
	DueDate      string            `json:"due_date"`
	LineItems    []ScannedLineItem `json:"line_items"`
}

// GLEntry is one leg of a drafted journal entry. Exactly one of the two
// amounts is non-zero.
type GLEntry struct {
	AccountID    string  `json:"account_id"`
	DebitAmount  float64 `json:"debit_amount"`
	CreditAmount float64 `json:"credit_amount"`
}

// JournalDraft is the argument payload of a forced
// post_validated_journal_entry tool call.
type JournalDraft struct {
	Entries   []GLEntry `json:"gl_entries"`
	SourceID  string    `json:"transaction_source_id"`
	Rationale string    `json:"ai_rationale"`
}

// Advisor is the AI capability surface the rest of the system talks to.
// Data payloads are passed as any and serialized into the prompt; the
// advisor never reaches back into domain packages.
type Advisor interface {
	// FinancialSummary returns a markdown summary of monthly income/expense data.
	FinancialSummary(ctx context.Context, chartData any) (string, error)
	// ChatReply answers a single chatbot turn. Prior turns are not sent.
	ChatReply(ctx context.Context, userInput string) (string, error)
	// AnswerQuestion answers a free-form question against a business-data snapshot.
	AnswerQuestion(ctx context.Context, question string, contextData any) (string, error)
	// LeadScore scores a deal 0-100 with a suggested next action.
	LeadScore(ctx context.Context, dealName string, dealValue float64) (*LeadScore, error)
	// Forecast projects cash flow from monthly history.
	Forecast(ctx context.Context, history any) (*CashFlowForecast, error)
	// Insights extracts the top categorized findings from a data snapshot.
	Insights(ctx context.Context, snapshot any) ([]Insight, error)
	// SyntheticRows generates fake records for the named module. Keys of the
	// returned rows are the caller's original column names.
	SyntheticRows(ctx context.Context, module string, columns []string, rowCount int, rules string) ([]map[string]string, error)
	// ScanInvoice extracts structured data from an invoice image or PDF.
	ScanInvoice(ctx context.Context, document []byte, contentType string) (*ScannedInvoice, error)
	// DraftJournalEntry asks the model for a balanced journal entry via a
	// forced tool call. A response without the call is an error.
	DraftJournalEntry(ctx context.Context, invoice any) (*JournalDraft, error)
	// Close releases the underlying client.
	Close() error
}
