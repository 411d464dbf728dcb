package advisor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// unwrapJSON strips any markdown code fence around a model response and
// returns the outermost JSON object or array. Responses that start directly
// with { or [ pass through unchanged.
func unwrapJSON(text string) (string, error) {
	t := strings.TrimSpace(text)
	t = strings.TrimPrefix(t, "```json")
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	t = strings.TrimSpace(t)

	start := strings.IndexAny(t, "{[")
	if start == -1 {
		return "", fmt.Errorf("no JSON payload in response")
	}

	var end int
	if t[start] == '{' {
		end = strings.LastIndex(t, "}")
	} else {
		end = strings.LastIndex(t, "]")
	}
	if end < start {
		return "", fmt.Errorf("unterminated JSON payload in response")
	}
	return t[start : end+1], nil
}

// parseLeadScore decodes a lead-score response. Both fields are required;
// a response missing either is a validation failure, not a default.
func parseLeadScore(text string) (*LeadScore, error) {
	payload, err := unwrapJSON(text)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Score  *float64 `json:"score"`
		Action *string  `json:"action"`
	}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("unmarshaling lead score: %w", err)
	}
	if raw.Score == nil || raw.Action == nil {
		return nil, fmt.Errorf("lead score response missing score or action")
	}
	return &LeadScore{Score: *raw.Score, Action: *raw.Action}, nil
}

// parseForecast decodes a cash-flow forecast response. All three horizons
// are required; a null or absent warning normalizes to the empty string.
func parseForecast(text string) (*CashFlowForecast, error) {
	payload, err := unwrapJSON(text)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Forecast30 *float64 `json:"forecast30"`
		Forecast60 *float64 `json:"forecast60"`
		Forecast90 *float64 `json:"forecast90"`
		Warning    *string  `json:"warning"`
	}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("unmarshaling forecast: %w", err)
	}
	if raw.Forecast30 == nil || raw.Forecast60 == nil || raw.Forecast90 == nil {
		return nil, fmt.Errorf("forecast response missing one or more horizons")
	}

	forecast := &CashFlowForecast{
		Forecast30: *raw.Forecast30,
		Forecast60: *raw.Forecast60,
		Forecast90: *raw.Forecast90,
	}
	if raw.Warning != nil {
		forecast.Warning = *raw.Warning
	}
	return forecast, nil
}

// parseInsights decodes an insight list and checks every category against
// the closed enum.
func parseInsights(text string) ([]Insight, error) {
	payload, err := unwrapJSON(text)
	if err != nil {
		return nil, err
	}

	var insights []Insight
	if err := json.Unmarshal([]byte(payload), &insights); err != nil {
		return nil, fmt.Errorf("unmarshaling insights: %w", err)
	}
	for i, insight := range insights {
		switch insight.Type {
		case InsightAnomaly, InsightOpportunity, InsightEfficiency:
		default:
			return nil, fmt.Errorf("insight %d has unknown type %q", i, insight.Type)
		}
	}
	return insights, nil
}

// parseRows decodes a synthetic-data response into string-valued rows.
func parseRows(text string) ([]map[string]string, error) {
	payload, err := unwrapJSON(text)
	if err != nil {
		return nil, err
	}

	var raw []map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("unmarshaling synthetic rows: %w", err)
	}

	rows := make([]map[string]string, 0, len(raw))
	for _, r := range raw {
		row := make(map[string]string, len(r))
		for k, v := range r {
			row[k] = cellString(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseScannedInvoice decodes a document-extraction response.
func parseScannedInvoice(text string) (*ScannedInvoice, error) {
	payload, err := unwrapJSON(text)
	if err != nil {
		return nil, err
	}

	var doc ScannedInvoice
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling scanned invoice: %w", err)
	}
	if doc.VendorName == "" || doc.InvoiceID == "" {
		return nil, fmt.Errorf("scanned invoice missing vendor or invoice id")
	}
	return &doc, nil
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// JSON numbers arrive as float64; format without a forced exponent.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprint(val)
	}
}
