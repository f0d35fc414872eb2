package services

import (
	"math"
	"testing"
)

func fp(f float64) *float64 { return &f }

func TestCalcLineTotal(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	tests := []struct {
		name   string
		qty    *float64
		rate   *float64
		expect *float64
	}{
		{"basic multiplication", fp(50), fp(120), fp(6000)},
		{"decimal values", fp(2.5), fp(100.50), fp(251.25)},
		{"zero qty", fp(0), fp(120), fp(0)},
		{"missing qty", nil, fp(120), nil},
		{"missing rate", fp(50), nil, nil},
		{"both missing", nil, nil, nil},
		{"nan qty", &nan, fp(120), nil},
		{"infinite rate", fp(50), &inf, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcLineTotal(tt.qty, tt.rate)
			if (got == nil) != (tt.expect == nil) {
				t.Fatalf("CalcLineTotal = %v, want %v", got, tt.expect)
			}
			if got != nil && math.Abs(*got-*tt.expect) > 0.001 {
				t.Errorf("CalcLineTotal = %v, want %v", *got, *tt.expect)
			}
		})
	}
}

func TestCalcFormProgress(t *testing.T) {
	tests := []struct {
		name     string
		sections []SectionWeight
		expect   int
	}{
		{
			name: "all valid",
			sections: []SectionWeight{
				{SectionID: "basic", Weight: 40, Valid: true},
				{SectionID: "stock", Weight: 40, Valid: true},
				{SectionID: "pricing", Weight: 20, Valid: true},
			},
			expect: 100,
		},
		{
			name: "partial",
			sections: []SectionWeight{
				{SectionID: "basic", Weight: 40, Valid: true},
				{SectionID: "stock", Weight: 40, Valid: false},
				{SectionID: "pricing", Weight: 20, Valid: true},
			},
			expect: 60,
		},
		{
			name: "none valid",
			sections: []SectionWeight{
				{SectionID: "basic", Weight: 40, Valid: false},
				{SectionID: "stock", Weight: 60, Valid: false},
			},
			expect: 0,
		},
		{"empty sections", nil, 0},
		{
			name: "overweight clamps to 100",
			sections: []SectionWeight{
				{SectionID: "a", Weight: 70, Valid: true},
				{SectionID: "b", Weight: 70, Valid: true},
			},
			expect: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcFormProgress(tt.sections)
			if got != tt.expect {
				t.Errorf("CalcFormProgress = %d, want %d", got, tt.expect)
			}
		})
	}
}

func TestCalcAggregateStock(t *testing.T) {
	tests := []struct {
		name   string
		levels []StockLevel
		expect StockSummary
	}{
		{
			name: "two locations",
			levels: []StockLevel{
				{LocationID: "a", CurrentStock: 500, ReservedStock: 100, AvailableStock: 400},
				{LocationID: "b", CurrentStock: 200, ReservedStock: 0, AvailableStock: 200},
			},
			expect: StockSummary{Total: 700, Reserved: 100, Available: 600},
		},
		{"no levels", nil, StockSummary{}},
		{
			name: "zero fields contribute zero",
			levels: []StockLevel{
				{LocationID: "a"},
				{LocationID: "b", CurrentStock: 10, AvailableStock: 10},
			},
			expect: StockSummary{Total: 10, Available: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcAggregateStock(tt.levels)
			if got != tt.expect {
				t.Errorf("CalcAggregateStock = %+v, want %+v", got, tt.expect)
			}
		})
	}
}

func TestCalcBOMTotals(t *testing.T) {
	tests := []struct {
		name           string
		lines          []BOMLine
		expectLines    int
		expectPriced   int
		expectSubtotal float64
	}{
		{
			name: "all priced",
			lines: []BOMLine{
				{Quantity: fp(50), Rate: fp(120), Total: fp(6000)},
				{Quantity: fp(2), Rate: fp(180), Total: fp(360)},
			},
			expectLines:    2,
			expectPriced:   2,
			expectSubtotal: 6360,
		},
		{
			name: "unpriced lines counted but not summed",
			lines: []BOMLine{
				{Quantity: fp(50), Rate: fp(120), Total: fp(6000)},
				{Quantity: fp(5)},
			},
			expectLines:    2,
			expectPriced:   1,
			expectSubtotal: 6000,
		},
		{"empty", nil, 0, 0, 0},
		{
			name: "decimal rounding",
			lines: []BOMLine{
				{Total: fp(0.1)},
				{Total: fp(0.2)},
			},
			expectLines:    2,
			expectPriced:   2,
			expectSubtotal: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcBOMTotals(tt.lines)
			if got.LineCount != tt.expectLines {
				t.Errorf("LineCount = %d, want %d", got.LineCount, tt.expectLines)
			}
			if got.PricedCount != tt.expectPriced {
				t.Errorf("PricedCount = %d, want %d", got.PricedCount, tt.expectPriced)
			}
			if math.Abs(got.Subtotal-tt.expectSubtotal) > 0.0001 {
				t.Errorf("Subtotal = %v, want %v", got.Subtotal, tt.expectSubtotal)
			}
		})
	}
}
