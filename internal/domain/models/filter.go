package models

import "strings"

// Filter returns the records whose symbol contains text, ignoring case.
// The result is a new slice in input order; an empty text keeps every record.
func Filter(records []IndicatorResult, text string) []IndicatorResult {
	needle := strings.ToLower(text)
	out := make([]IndicatorResult, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Symbol), needle) {
			out = append(out, r)
		}
	}
	return out
}
