package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	defaultModel   = "gemini-2.5-flash"
	requestTimeout = 30 * time.Second

	// Data snapshots embedded in prompts are truncated so one oversized
	// module cannot blow the request past the model's context window.
	maxContextChars = 5000
)

// Gemini implements Advisor against the Google Gemini API.
type Gemini struct {
	client    *genai.Client
	modelName string
}

// NewGemini creates a Gemini advisor. The API key is required; its absence
// is a startup failure for every AI-dependent feature.
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = defaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Gemini{client: client, modelName: modelName}, nil
}

// Close closes the underlying client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// FinancialSummary returns a markdown summary of monthly income/expense data.
func (g *Gemini) FinancialSummary(ctx context.Context, chartData any) (string, error) {
	prompt := fmt.Sprintf(`Analyze the following financial data which represents monthly income and expense in IDR.
Provide a concise summary of the financial performance.
Highlight key trends, highest/lowest points, and potential areas for concern or opportunity.
The output should be in simple markdown format. Use ** for headings and * for list items.

Data:
%s`, mustJSON(chartData))

	return g.generateText(ctx, prompt)
}

// ChatReply answers a single chatbot turn. Each turn is an independent
// one-shot prompt; UI-side message history is cosmetic only.
func (g *Gemini) ChatReply(ctx context.Context, userInput string) (string, error) {
	prompt := fmt.Sprintf(`You are an AI assistant for an ERP system.
Answer the user's question concisely based on general business knowledge.
Do not mention that you are an AI.
User's question: %q`, userInput)

	return g.generateText(ctx, prompt)
}

// AnswerQuestion answers a free-form question against a business-data snapshot.
func (g *Gemini) AnswerQuestion(ctx context.Context, question string, contextData any) (string, error) {
	prompt := fmt.Sprintf(`You are an AI business analyst for an ERP system.
Analyze the provided JSON business data to answer the user's question.
Provide a clear, concise, and helpful response.
If the data is insufficient to answer, state that and explain what information is missing.
Format your response using simple markdown (e.g., use ** for bold, * for list items).

User Question: %q

Business Data Context (truncated):
%s`, question, truncate(mustJSON(contextData), maxContextChars))

	return g.generateText(ctx, prompt)
}

// LeadScore scores a deal 0-100 with a suggested next action.
func (g *Gemini) LeadScore(ctx context.Context, dealName string, dealValue float64) (*LeadScore, error) {
	prompt := fmt.Sprintf(`Analyze the following sales deal and provide a lead score (0-100) and a concise next action suggestion.
- Deal Name: %q
- Deal Value: IDR %.0f

Consider factors like deal value and keywords in the name (e.g., 'upgrade', 'maintenance', 'contract' are positive).
Return a JSON object with two keys: "score" (a number) and "action" (a string).`, dealName, dealValue)

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"score":  {Type: genai.TypeNumber, Description: "Lead score from 0 to 100"},
			"action": {Type: genai.TypeString, Description: "Suggested next action for the sales team"},
		},
		Required: []string{"score", "action"},
	}

	text, err := g.generateJSON(ctx, schema, genai.Text(prompt))
	if err != nil {
		return nil, err
	}
	return parseLeadScore(text)
}

// Forecast projects cash flow 30, 60 and 90 days out from monthly history.
func (g *Gemini) Forecast(ctx context.Context, history any) (*CashFlowForecast, error) {
	prompt := fmt.Sprintf(`Based on the following historical cash flow data (in IDR) for the last 6 months, generate a forecast for the next 30, 60, and 90 days.
Also, provide a brief "warning" string if you detect a potential negative cash flow or a significant downturn. If there are no warnings, return an empty string for the warning.

Historical Data:
%s

Return a JSON object with keys: "forecast30", "forecast60", "forecast90" (all numbers), and "warning" (a string).`, mustJSON(history))

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"forecast30": {Type: genai.TypeNumber},
			"forecast60": {Type: genai.TypeNumber},
			"forecast90": {Type: genai.TypeNumber},
			"warning":    {Type: genai.TypeString},
		},
		Required: []string{"forecast30", "forecast60", "forecast90", "warning"},
	}

	text, err := g.generateJSON(ctx, schema, genai.Text(prompt))
	if err != nil {
		return nil, err
	}
	return parseForecast(text)
}

// Insights extracts the top categorized findings from a data snapshot.
func (g *Gemini) Insights(ctx context.Context, snapshot any) ([]Insight, error) {
	prompt := fmt.Sprintf(`You are an expert AI business analyst for an ERP system.
Analyze the provided JSON data which includes invoices, products, deals, and bills.
Identify the top 3-5 most critical or valuable insights. Categorize each insight as one of the following: 'Anomaly', 'Opportunity', or 'Efficiency'.

- 'Anomaly': Unexpected negative trends, significant drops in sales for a product, overdue high-value invoices, etc.
- 'Opportunity': Potential for cross-selling based on customer behavior, deals with high lead scores needing a push, products that could be bundled.
- 'Efficiency': Suggestions for cost savings, vendors that are consistently expensive, etc.

Provide a concise title and a short description for each insight.

Business Data Context:
%s`, truncate(mustJSON(snapshot), maxContextChars))

	schema := &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"type":        {Type: genai.TypeString, Enum: []string{"Anomaly", "Opportunity", "Efficiency"}},
				"title":       {Type: genai.TypeString},
				"description": {Type: genai.TypeString},
			},
			Required: []string{"type", "title", "description"},
		},
	}

	text, err := g.generateJSON(ctx, schema, genai.Text(prompt))
	if err != nil {
		return nil, err
	}
	return parseInsights(text)
}

// SyntheticRows generates rowCount fake records for the named module. Column
// display names are sanitized into schema keys for the request and expanded
// back before the rows are returned.
func (g *Gemini) SyntheticRows(ctx context.Context, module string, columns []string, rowCount int, rules string) ([]map[string]string, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("at least one column is required")
	}
	if rules == "" {
		rules = "Generate realistic and varied data that would be found in a real business."
	}

	keys := sanitizeColumns(columns)
	properties := make(map[string]*genai.Schema, len(keys))
	required := make([]string, 0, len(keys))
	quoted := make([]string, 0, len(keys))
	for _, k := range keys {
		properties[k.Key] = &genai.Schema{
			Type:        genai.TypeString,
			Description: fmt.Sprintf("Synthetic data for column: %s", k.Original),
		}
		required = append(required, k.Key)
		quoted = append(quoted, fmt.Sprintf("%q", k.Key))
	}

	prompt := fmt.Sprintf(`You are an expert synthetic data generator for an ERP system. Your task is to create realistic fake data based on user specifications.
The user wants to generate data for the %q module.

**Specifications:**
- Number of rows to generate: %d
- Special rules and formatting instructions: %q

**Output Instructions:**
1. The output MUST be a valid JSON array of objects.
2. Each object in the array represents a single row of data.
3. Each object MUST contain these exact keys: %s.
4. The value for the key %q should correspond to the column %q, and so on for all columns.
5. Ensure the generated data strictly adheres to all the specified rules. Do not add any extra text or explanations outside of the JSON array.`,
		module, rowCount, rules, strings.Join(quoted, ", "), keys[0].Key, keys[0].Original)

	schema := &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: properties,
			Required:   required,
		},
	}

	text, err := g.generateJSON(ctx, schema, genai.Text(prompt))
	if err != nil {
		return nil, err
	}
	rows, err := parseRows(text)
	if err != nil {
		return nil, err
	}

	// Re-expand sanitized keys to the original display names.
	expanded := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		out := make(map[string]string, len(keys))
		for _, k := range keys {
			out[k.Original] = row[k.Key]
		}
		expanded = append(expanded, out)
	}
	return expanded, nil
}

// ScanInvoice extracts structured data from an invoice image or PDF. The
// document is converted to PNG before upload.
func (g *Gemini) ScanInvoice(ctx context.Context, document []byte, contentType string) (*ScannedInvoice, error) {
	pngData, err := preparePNG(document, contentType)
	if err != nil {
		return nil, err
	}

	prompt := `Analyze this invoice image and extract the following information into a strict JSON format.
Identify the vendor, date, total amount, and line items.
Crucially, recommend a GL Account for each line item (e.g., '5100-Office Supplies', '5200-Cost of Goods Sold', '5300-Utilities').
If the currency is not explicit, infer it from context (default to IDR).`

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"document_type": {Type: genai.TypeString, Enum: []string{"INVOICE"}},
			"vendor_name":   {Type: genai.TypeString},
			"invoice_id":    {Type: genai.TypeString},
			"invoice_date":  {Type: genai.TypeString, Description: "Format YYYY-MM-DD"},
			"currency":      {Type: genai.TypeString, Enum: []string{"IDR", "USD"}},
			"total_amount":  {Type: genai.TypeNumber},
			"due_date":      {Type: genai.TypeString, Description: "Format YYYY-MM-DD"},
			"line_items": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"description":            {Type: genai.TypeString},
						"amount":                 {Type: genai.TypeNumber},
						"recommended_gl_account": {Type: genai.TypeString},
					},
					Required: []string{"description", "amount", "recommended_gl_account"},
				},
			},
		},
		Required: []string{"document_type", "vendor_name", "invoice_id", "invoice_date", "total_amount", "line_items"},
	}

	text, err := g.generateJSON(ctx, schema, genai.ImageData("png", pngData), genai.Text(prompt))
	if err != nil {
		return nil, err
	}
	return parseScannedInvoice(text)
}

// DraftJournalEntry asks the model for a balanced journal entry through a
// forced tool call and returns the call's argument payload.
func (g *Gemini) DraftJournalEntry(ctx context.Context, invoice any) (*JournalDraft, error) {
	prompt := fmt.Sprintf(`Based on this invoice data, generate a balanced journal entry structure.
Invoice: %s

Rules:
1. Debit the appropriate Expense or Asset accounts based on line items.
2. Credit '2000-Accounts Payable' for the total amount.
3. Ensure Total Debit equals Total Credit.
4. Provide a clear rationale.`, mustJSON(invoice))

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	model := g.client.GenerativeModel(g.modelName)
	model.Tools = []*genai.Tool{{FunctionDeclarations: []*genai.FunctionDeclaration{journalEntryTool()}}}
	model.ToolConfig = &genai.ToolConfig{
		FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: genai.FunctionCallingAny},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response from gemini")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		call, ok := part.(genai.FunctionCall)
		if !ok {
			continue
		}
		args, err := json.Marshal(call.Args)
		if err != nil {
			return nil, fmt.Errorf("marshaling tool call args: %w", err)
		}
		var draft JournalDraft
		if err := json.Unmarshal(args, &draft); err != nil {
			return nil, fmt.Errorf("unmarshaling journal draft: %w", err)
		}
		if len(draft.Entries) == 0 {
			return nil, fmt.Errorf("journal draft contains no entries")
		}
		return &draft, nil
	}
	return nil, fmt.Errorf("model returned no tool call")
}

// journalEntryTool declares the single callable the model is forced to
// invoke when drafting a journal entry.
func journalEntryTool() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        "post_validated_journal_entry",
		Description: "Posts a validated journal entry to the ERP backend. Use this when transaction data is verified and ready for the General Ledger.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"gl_entries": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"account_id":    {Type: genai.TypeString, Description: "Unique GL Account ID (e.g., 1100-Kas)"},
							"debit_amount":  {Type: genai.TypeNumber, Description: "Amount to Debit. 0 if Credit."},
							"credit_amount": {Type: genai.TypeNumber, Description: "Amount to Credit. 0 if Debit."},
						},
						Required: []string{"account_id", "debit_amount", "credit_amount"},
					},
				},
				"transaction_source_id": {Type: genai.TypeString, Description: "Source Document ID (e.g., INV-2025001)"},
				"ai_rationale":          {Type: genai.TypeString, Description: "AI explanation for the account classification for audit trail."},
			},
			Required: []string{"gl_entries", "transaction_source_id", "ai_rationale"},
		},
	}
}

// generateText runs a plain prompt and returns the concatenated text parts.
func (g *Gemini) generateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	model := g.client.GenerativeModel(g.modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	return responseText(resp)
}

// generateJSON runs a prompt constrained by a response schema and returns
// the raw response text for the typed parsers.
func (g *Gemini) generateJSON(ctx context.Context, schema *genai.Schema, parts ...genai.Part) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	model := g.client.GenerativeModel(g.modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
