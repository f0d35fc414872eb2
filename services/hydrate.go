package services

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cast"
)

// Hydrator is implemented by drafts that can rebuild themselves from a stored
// record export, enabling edit mode.
type Hydrator interface {
	Hydrate(record map[string]any)
}

func recordString(record map[string]any, key string) string {
	return cast.ToString(record[key])
}

func recordBool(record map[string]any, key string) bool {
	return cast.ToBool(record[key])
}

// recordFloat keeps the present/absent distinction: a missing or unparsable
// value stays nil rather than becoming zero.
func recordFloat(record map[string]any, key string) *float64 {
	val, ok := record[key]
	if !ok || val == nil {
		return nil
	}
	f, err := cast.ToFloat64E(val)
	if err != nil {
		return nil
	}
	return &f
}

// recordList decodes a stored JSON column (raw bytes, []any or typed slices)
// into rows through a marshal round trip. Undecodable values yield nil.
func recordList[T any](record map[string]any, key string) []T {
	val, ok := record[key]
	if !ok || val == nil {
		return nil
	}
	data, err := json.Marshal(val)
	if err != nil {
		return nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

// recordStrings handles delimited fields stored as arrays, rejoining them for
// the draft's single-input representation.
func recordStrings(record map[string]any, key string) string {
	return strings.Join(recordList[string](record, key), ", ")
}

func (d *SubcontractorDraft) Hydrate(record map[string]any) {
	d.IsCompany = recordBool(record, "is_company")
	d.CompanyName = recordString(record, "company_name")
	d.FirstName = recordString(record, "first_name")
	d.LastName = recordString(record, "last_name")
	d.Email = recordString(record, "email")
	d.Phone = recordString(record, "phone")
	d.IDNumber = recordString(record, "id_number")
	d.Specialty = recordString(record, "specialty")
	d.Rating = recordFloat(record, "rating")
	d.Notes = recordString(record, "notes")
}

func (d *ProjectDraft) Hydrate(record map[string]any) {
	d.Name = recordString(record, "name")
	d.Code = recordString(record, "code")
	d.ClientName = recordString(record, "client_name")
	d.Description = recordString(record, "description")
	d.ManagerID = recordString(record, "manager")
	d.PlannedStartDate = recordString(record, "planned_start_date")
	d.TargetCompletionDate = recordString(record, "target_completion_date")
	d.Budget = recordFloat(record, "budget")
	d.Milestones.SetItems(recordList[Milestone](record, "milestones"))
	d.Risks.SetItems(recordList[Risk](record, "risks"))
}

func (d *InventoryItemDraft) Hydrate(record map[string]any) {
	d.Name = recordString(record, "name")
	d.SKU = recordString(record, "sku")
	d.Category = recordString(record, "category")
	d.UnitOfMeasure = recordString(record, "uom")
	d.Description = recordString(record, "description")
	d.Specs = recordString(record, "specs")
	d.AlternativeCodes = recordStrings(record, "alternative_codes")
	d.CostPrice = recordFloat(record, "cost_price")
	d.SellingPrice = recordFloat(record, "selling_price")
	d.StockLevels.SetItems(recordList[StockLevel](record, "stock_levels"))
}

func (d *ServiceOrderDraft) Hydrate(record map[string]any) {
	d.Title = recordString(record, "title")
	d.ClientName = recordString(record, "client_name")
	d.SiteAddress = recordString(record, "site_address")
	d.ServiceType = recordString(record, "service_type")
	d.ProjectID = recordString(record, "project")
	d.AssignedTo = recordString(record, "assigned_to")
	d.ScheduledDate = recordString(record, "scheduled_date")
	d.Notes = recordString(record, "notes")

	lines := recordList[BOMLine](record, "bom_lines")
	for i := range lines {
		lines[i].Recompute() // totals are derived, never trusted from storage
	}
	d.BOM.SetItems(lines)
	d.DesignFields.SetItems(recordList[DesignField](record, "design_fields"))
}
