package services

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// InventoryItemDraft backs the inventory item form. Progress weighting is
// 40% basic details, 40% stock levels, 20% pricing.
type InventoryItemDraft struct {
	Name             string `json:"name"`
	SKU              string `json:"sku"`
	Category         string `json:"category"`
	UnitOfMeasure    string `json:"uom"`
	Description      string `json:"description"`
	Specs            string `json:"specs"`
	AlternativeCodes string `json:"alternative_codes"` // comma separated until submit

	StockLevels *ListEditor[StockLevel] // never fewer than one row

	CostPrice    *float64 `json:"cost_price"`
	SellingPrice *float64 `json:"selling_price"`
}

func NewInventoryItemDraft() *InventoryItemDraft {
	return &InventoryItemDraft{
		StockLevels: NewListEditor(NewStockLevel, 1),
	}
}

func (d *InventoryItemDraft) Sections() []Section {
	return []Section{
		{ID: "basic", Title: "Basic details", Weight: 40, Validate: d.ValidateBasic},
		{ID: "stock", Title: "Stock levels", Weight: 40, Validate: d.ValidateStock},
		{ID: "pricing", Title: "Pricing", Weight: 20, Validate: d.ValidatePricing},
	}
}

func (d *InventoryItemDraft) ValidateBasic() map[string]string {
	err := validation.ValidateStruct(d,
		validation.Field(&d.Name, validation.Required.Error("Item name is required")),
		validation.Field(&d.SKU, validation.Required.Error("SKU is required")),
		validation.Field(&d.UnitOfMeasure, validation.Required.Error("Unit of measure is required")),
	)
	return ErrorMap(err)
}

// ValidateStock requires a location on every row and non-negative figures.
// The minimum-one-row rule is enforced by the list editor itself.
func (d *InventoryItemDraft) ValidateStock() map[string]string {
	errs := map[string]string{}
	for i, lvl := range d.StockLevels.Items() {
		if strings.TrimSpace(lvl.LocationID) == "" {
			errs[fmt.Sprintf("stock_levels.%d.location", i)] = "Location is required"
		}
		if lvl.CurrentStock < 0 {
			errs[fmt.Sprintf("stock_levels.%d.current_stock", i)] = "Stock cannot be negative"
		}
		if lvl.ReservedStock < 0 {
			errs[fmt.Sprintf("stock_levels.%d.reserved_stock", i)] = "Reserved stock cannot be negative"
		}
		if lvl.ReservedStock > lvl.CurrentStock {
			errs[fmt.Sprintf("stock_levels.%d.reserved_stock", i)] = "Reserved stock cannot exceed current stock"
		}
	}
	return errs
}

func (d *InventoryItemDraft) ValidatePricing() map[string]string {
	errs := map[string]string{}
	if d.SellingPrice == nil {
		errs["selling_price"] = "Selling price is required"
	} else if *d.SellingPrice < 0 {
		errs["selling_price"] = "Selling price cannot be negative"
	}
	if d.CostPrice != nil && *d.CostPrice < 0 {
		errs["cost_price"] = "Cost price cannot be negative"
	}
	return errs
}

func (d *InventoryItemDraft) SetField(field, raw string) error {
	switch field {
	case "name":
		d.Name = strings.TrimSpace(raw)
	case "sku":
		d.SKU = strings.TrimSpace(raw)
	case "category":
		d.Category = strings.TrimSpace(raw)
	case "uom":
		d.UnitOfMeasure = strings.TrimSpace(raw)
	case "description":
		d.Description = raw
	case "specs":
		d.Specs = raw
	case "alternative_codes":
		d.AlternativeCodes = strings.TrimSpace(raw)
	case "cost_price":
		d.CostPrice = FloatField(raw)
	case "selling_price":
		d.SellingPrice = FloatField(raw)
	default:
		return fmt.Errorf("unknown inventory field %q", field)
	}
	return nil
}

func (d *InventoryItemDraft) ListAppend(list string) (int, error) {
	if list != "stock_levels" {
		return 0, fmt.Errorf("unknown inventory list %q", list)
	}
	return d.StockLevels.Append(), nil
}

func (d *InventoryItemDraft) ListRemove(list string, index int) error {
	if list != "stock_levels" {
		return fmt.Errorf("unknown inventory list %q", list)
	}
	return d.StockLevels.RemoveAt(index)
}

// ListUpdate keeps available stock derived: available = current - reserved.
func (d *InventoryItemDraft) ListUpdate(list string, index int, field, raw string) error {
	if list != "stock_levels" {
		return fmt.Errorf("unknown inventory list %q", list)
	}
	return d.StockLevels.UpdateAt(index, func(lvl *StockLevel) {
		switch field {
		case "location":
			lvl.LocationID = strings.TrimSpace(raw)
		case "current_stock":
			lvl.CurrentStock = FloatOrZero(raw)
		case "reserved_stock":
			lvl.ReservedStock = FloatOrZero(raw)
		}
		lvl.AvailableStock = lvl.CurrentStock - lvl.ReservedStock
	})
}

func (d *InventoryItemDraft) ListLen(list string) (int, error) {
	if list != "stock_levels" {
		return 0, fmt.Errorf("unknown inventory list %q", list)
	}
	return d.StockLevels.Len(), nil
}

// AggregateStock sums the draft's levels across locations.
func (d *InventoryItemDraft) AggregateStock() StockSummary {
	return CalcAggregateStock(d.StockLevels.Items())
}

func (d *InventoryItemDraft) Collect() map[string]any {
	collected := map[string]any{
		"name":              d.Name,
		"sku":               d.SKU,
		"category":          d.Category,
		"uom":               d.UnitOfMeasure,
		"description":       d.Description,
		"specs":             d.Specs,
		"alternative_codes": d.AlternativeCodes,
		"stock_levels":      stockLevelsPayload(d.StockLevels.Items()),
	}
	if d.CostPrice != nil {
		collected["cost_price"] = *d.CostPrice
	}
	if d.SellingPrice != nil {
		collected["selling_price"] = *d.SellingPrice
	}
	return collected
}

func stockLevelsPayload(items []StockLevel) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, lvl := range items {
		out = append(out, map[string]any{
			"location":        lvl.LocationID,
			"current_stock":   lvl.CurrentStock,
			"reserved_stock":  lvl.ReservedStock,
			"available_stock": lvl.AvailableStock,
		})
	}
	return out
}

func (d *InventoryItemDraft) Defaults() map[string]any {
	return map[string]any{
		"status":   "active",
		"category": "general",
	}
}

func (d *InventoryItemDraft) DelimitedFields() []string {
	return []string{"alternative_codes"}
}
