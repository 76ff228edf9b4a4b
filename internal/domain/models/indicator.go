package models

import (
	"encoding/json"
	"math"
)

// IndicatorResult is one record of the precomputed RSI dataset.
type IndicatorResult struct {
	Symbol   string  // exchange pair, e.g. "BTCUSDT"
	Value    float64 // RSI units, expected 0..100; NaN when the upstream sent null
	Category string
}

type indicatorJSON struct {
	Symbol   string   `json:"symbol"`
	Value    *float64 `json:"value"`
	Category string   `json:"category"`
}

// UnmarshalJSON decodes a record; a null or missing value becomes NaN.
func (r *IndicatorResult) UnmarshalJSON(b []byte) error {
	var raw indicatorJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Symbol = raw.Symbol
	r.Category = raw.Category
	if raw.Value == nil {
		r.Value = math.NaN()
	} else {
		r.Value = *raw.Value
	}
	return nil
}

// MarshalJSON encodes a record; non-finite values are written as null.
func (r IndicatorResult) MarshalJSON() ([]byte, error) {
	raw := indicatorJSON{Symbol: r.Symbol, Category: r.Category}
	if !math.IsNaN(r.Value) && !math.IsInf(r.Value, 0) {
		v := r.Value
		raw.Value = &v
	}
	return json.Marshal(raw)
}
