// Package services holds the form engine core: per-entity validation rules,
// derived-field calculators, section gating, dynamic list editing and the
// submission pipeline. Everything here is pure or interface-driven so it can
// be tested without an app instance.
package services

import (
	"math"

	"github.com/shopspring/decimal"
)

// CalcLineTotal returns quantity * rate when both are present and finite.
// An incomplete line yields nil, never 0 or NaN, so a missing input cannot
// masquerade as a real total.
func CalcLineTotal(qty, rate *float64) *float64 {
	if qty == nil || rate == nil {
		return nil
	}
	if !isFinite(*qty) || !isFinite(*rate) {
		return nil
	}
	total := *qty * *rate
	return &total
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// SectionWeight pairs a section's fixed progress weight with its current
// validity. Weights for one entity sum to 100.
type SectionWeight struct {
	SectionID string
	Weight    int
	Valid     bool
}

// CalcFormProgress sums the weights of the currently valid sections and
// clamps the result to [0,100].
func CalcFormProgress(sections []SectionWeight) int {
	progress := 0
	for _, s := range sections {
		if s.Valid {
			progress += s.Weight
		}
	}
	if progress > 100 {
		progress = 100
	}
	if progress < 0 {
		progress = 0
	}
	return progress
}

// StockSummary aggregates stock figures across all locations of an item.
type StockSummary struct {
	Total     float64
	Reserved  float64
	Available float64
}

// CalcAggregateStock sums current, reserved and available stock across the
// given levels. Zero-valued fields simply contribute zero.
func CalcAggregateStock(levels []StockLevel) StockSummary {
	var sum StockSummary
	for _, lvl := range levels {
		sum.Total += lvl.CurrentStock
		sum.Reserved += lvl.ReservedStock
		sum.Available += lvl.AvailableStock
	}
	return sum
}

// BOMTotals holds the order-level aggregate over bill-of-materials lines.
type BOMTotals struct {
	LineCount   int
	PricedCount int
	Subtotal    float64
}

// CalcBOMTotals sums the derived totals of all priced lines. Lines without a
// computed total (missing quantity or rate) are counted but not summed.
// Decimal arithmetic keeps the subtotal exact across many lines.
func CalcBOMTotals(lines []BOMLine) BOMTotals {
	totals := BOMTotals{LineCount: len(lines)}
	sum := decimal.Zero
	for _, line := range lines {
		if line.Total == nil {
			continue
		}
		totals.PricedCount++
		sum = sum.Add(decimal.NewFromFloat(*line.Total))
	}
	totals.Subtotal, _ = sum.Round(2).Float64()
	return totals
}
