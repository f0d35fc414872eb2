package services

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ServiceOrderDraft backs the service order editor. It runs in free gating:
// every section stays reachable and the full rule set applies at submit.
type ServiceOrderDraft struct {
	Title         string `json:"title"`
	ClientName    string `json:"client_name"`
	SiteAddress   string `json:"site_address"`
	ServiceType   string `json:"service_type"`
	ProjectID     string `json:"project"`
	AssignedTo    string `json:"assigned_to"`
	ScheduledDate string `json:"scheduled_date"`
	Notes         string `json:"notes"`

	BOM          *ListEditor[BOMLine]
	DesignFields *ListEditor[DesignField]
}

func NewServiceOrderDraft() *ServiceOrderDraft {
	return &ServiceOrderDraft{
		BOM:          NewListEditor(NewBOMLine, 0),
		DesignFields: NewListEditor(NewDesignField, 0),
	}
}

func (d *ServiceOrderDraft) Sections() []Section {
	return []Section{
		{ID: "details", Title: "Order details", Weight: 40, Validate: d.ValidateDetails},
		{ID: "design", Title: "Design summary", Weight: 20, Validate: d.ValidateDesign},
		{ID: "bom", Title: "Bill of materials", Weight: 40, Validate: d.ValidateBOM},
	}
}

func (d *ServiceOrderDraft) ValidateDetails() map[string]string {
	err := validation.ValidateStruct(d,
		validation.Field(&d.Title, validation.Required.Error("Order title is required")),
		validation.Field(&d.ClientName, validation.Required.Error("Client name is required")),
	)
	return ErrorMap(err)
}

// ValidateDesign rejects value-only rows; keys identify the design fields.
func (d *ServiceOrderDraft) ValidateDesign() map[string]string {
	errs := map[string]string{}
	for i, f := range d.DesignFields.Items() {
		if strings.TrimSpace(f.Key) == "" && strings.TrimSpace(f.Value) != "" {
			errs[fmt.Sprintf("design_fields.%d.key", i)] = "Field name is required"
		}
	}
	return errs
}

// ValidateBOM requires every quantified line to carry a rate, either from a
// catalog link or entered manually.
func (d *ServiceOrderDraft) ValidateBOM() map[string]string {
	errs := map[string]string{}
	for i, line := range d.BOM.Items() {
		if strings.TrimSpace(line.ItemName) == "" {
			errs[fmt.Sprintf("bom.%d.item", i)] = "Select an item or enter a name"
			continue
		}
		if line.Quantity != nil && line.Rate == nil {
			errs[fmt.Sprintf("bom.%d.rate", i)] = "Rate is required for quantified lines"
		}
		if line.Quantity != nil && *line.Quantity <= 0 {
			errs[fmt.Sprintf("bom.%d.quantity", i)] = "Quantity must be greater than zero"
		}
	}
	return errs
}

func (d *ServiceOrderDraft) SetField(field, raw string) error {
	switch field {
	case "title":
		d.Title = strings.TrimSpace(raw)
	case "client_name":
		d.ClientName = strings.TrimSpace(raw)
	case "site_address":
		d.SiteAddress = strings.TrimSpace(raw)
	case "service_type":
		d.ServiceType = strings.TrimSpace(raw)
	case "project":
		d.ProjectID = strings.TrimSpace(raw)
	case "assigned_to":
		d.AssignedTo = strings.TrimSpace(raw)
	case "scheduled_date":
		d.ScheduledDate = strings.TrimSpace(raw)
	case "notes":
		d.Notes = raw
	default:
		return fmt.Errorf("unknown service order field %q", field)
	}
	return nil
}

func (d *ServiceOrderDraft) ListAppend(list string) (int, error) {
	switch list {
	case "bom":
		return d.BOM.Append(), nil
	case "design_fields":
		return d.DesignFields.Append(), nil
	}
	return 0, fmt.Errorf("unknown service order list %q", list)
}

func (d *ServiceOrderDraft) ListRemove(list string, index int) error {
	switch list {
	case "bom":
		return d.BOM.RemoveAt(index)
	case "design_fields":
		return d.DesignFields.RemoveAt(index)
	}
	return fmt.Errorf("unknown service order list %q", list)
}

// ListUpdate recomputes the derived line total whenever a BOM row changes.
func (d *ServiceOrderDraft) ListUpdate(list string, index int, field, raw string) error {
	switch list {
	case "bom":
		return d.BOM.UpdateAt(index, func(line *BOMLine) {
			switch field {
			case "item_name":
				line.ItemName = strings.TrimSpace(raw)
			case "specs":
				line.Specs = raw
			case "uom":
				line.UnitOfMeasure = strings.TrimSpace(raw)
			case "quantity":
				line.Quantity = FloatField(raw)
			case "rate":
				line.Rate = FloatField(raw)
			}
			line.Recompute()
		})
	case "design_fields":
		return d.DesignFields.UpdateAt(index, func(f *DesignField) {
			switch field {
			case "key":
				f.Key = strings.TrimSpace(raw)
			case "value":
				f.Value = raw
			}
		})
	}
	return fmt.Errorf("unknown service order list %q", list)
}

func (d *ServiceOrderDraft) ListLen(list string) (int, error) {
	switch list {
	case "bom":
		return d.BOM.Len(), nil
	case "design_fields":
		return d.DesignFields.Len(), nil
	}
	return 0, fmt.Errorf("unknown service order list %q", list)
}

// LinkCatalogItem auto-populates a BOM line from a catalog selection in one
// atomic update.
func (d *ServiceOrderDraft) LinkCatalogItem(list string, index int, item CatalogItem) error {
	if list != "bom" {
		return fmt.Errorf("list %q has no catalog links", list)
	}
	return d.BOM.UpdateAt(index, func(line *BOMLine) {
		line.ApplyCatalogItem(item)
	})
}

// ClearCatalogLink resets every auto-populated field on the line.
func (d *ServiceOrderDraft) ClearCatalogLink(list string, index int) error {
	if list != "bom" {
		return fmt.Errorf("list %q has no catalog links", list)
	}
	return d.BOM.UpdateAt(index, func(line *BOMLine) {
		line.ClearCatalogItem()
	})
}

// Totals is the order-level BOM aggregate.
func (d *ServiceOrderDraft) Totals() BOMTotals {
	return CalcBOMTotals(d.BOM.Items())
}

func (d *ServiceOrderDraft) Collect() map[string]any {
	return map[string]any{
		"title":          d.Title,
		"client_name":    d.ClientName,
		"site_address":   d.SiteAddress,
		"service_type":   d.ServiceType,
		"project":        d.ProjectID,
		"assigned_to":    d.AssignedTo,
		"scheduled_date": d.ScheduledDate,
		"notes":          d.Notes,
		"bom_lines":      bomPayload(d.BOM.Items()),
		"design_fields":  designPayload(d.DesignFields.Items()),
		"subtotal":       d.Totals().Subtotal,
	}
}

func bomPayload(items []BOMLine) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, line := range items {
		row := map[string]any{
			"item":      line.ItemID,
			"item_name": line.ItemName,
			"specs":     line.Specs,
			"uom":       line.UnitOfMeasure,
		}
		if line.Quantity != nil {
			row["quantity"] = *line.Quantity
		}
		if line.Rate != nil {
			row["rate"] = *line.Rate
		}
		if line.Total != nil {
			row["total"] = *line.Total
		}
		out = append(out, row)
	}
	return out
}

func designPayload(items []DesignField) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, f := range items {
		out = append(out, map[string]any{"key": f.Key, "value": f.Value})
	}
	return out
}

func (d *ServiceOrderDraft) Defaults() map[string]any {
	return map[string]any{
		"status":       "draft",
		"service_type": "installation",
	}
}

func (d *ServiceOrderDraft) DelimitedFields() []string { return nil }
