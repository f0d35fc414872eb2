package services

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const dateLayout = "2006-01-02"

// ProjectDraft backs the project creation wizard (strict gating: unreached
// sections stay locked until the preceding ones validate).
type ProjectDraft struct {
	Name                 string   `json:"name"`
	Code                 string   `json:"code"`
	ClientName           string   `json:"client_name"`
	Description          string   `json:"description"`
	ManagerID            string   `json:"manager"`
	PlannedStartDate     string   `json:"planned_start_date"`
	TargetCompletionDate string   `json:"target_completion_date"`
	Budget               *float64 `json:"budget"`

	Milestones *ListEditor[Milestone]
	Risks      *ListEditor[Risk]
}

func NewProjectDraft() *ProjectDraft {
	return &ProjectDraft{
		Milestones: NewListEditor(NewMilestone, 0),
		Risks:      NewListEditor(NewRisk, 0),
	}
}

func (d *ProjectDraft) Sections() []Section {
	return []Section{
		{ID: "details", Title: "Details", Weight: 30, Validate: d.ValidateDetails},
		{ID: "schedule", Title: "Schedule", Weight: 30, Validate: d.ValidateSchedule},
		{ID: "milestones", Title: "Milestones", Weight: 20, Validate: d.ValidateMilestones},
		{ID: "risks", Title: "Risks", Weight: 20, Validate: d.ValidateRisks},
	}
}

func (d *ProjectDraft) ValidateDetails() map[string]string {
	err := validation.ValidateStruct(d,
		validation.Field(&d.Name, validation.Required.Error("Project name is required")),
		validation.Field(&d.ClientName, validation.Required.Error("Client name is required")),
		validation.Field(&d.Budget, validation.Min(0.0).Error("Budget cannot be negative")),
	)
	return ErrorMap(err)
}

// ValidateSchedule requires both dates and a target completion strictly after
// the planned start; the relational error is attached to
// target_completion_date.
func (d *ProjectDraft) ValidateSchedule() map[string]string {
	errs := map[string]string{}
	start, startErr := time.Parse(dateLayout, d.PlannedStartDate)
	if d.PlannedStartDate == "" {
		errs["planned_start_date"] = "Planned start date is required"
	} else if startErr != nil {
		errs["planned_start_date"] = "Invalid date (expected YYYY-MM-DD)"
	}
	target, targetErr := time.Parse(dateLayout, d.TargetCompletionDate)
	if d.TargetCompletionDate == "" {
		errs["target_completion_date"] = "Target completion date is required"
	} else if targetErr != nil {
		errs["target_completion_date"] = "Invalid date (expected YYYY-MM-DD)"
	} else if startErr == nil && !target.After(start) {
		errs["target_completion_date"] = "Target completion must be after the planned start"
	}
	return errs
}

// ValidateMilestones checks each present row; an empty list is fine.
func (d *ProjectDraft) ValidateMilestones() map[string]string {
	errs := map[string]string{}
	for i, m := range d.Milestones.Items() {
		if strings.TrimSpace(m.Title) == "" {
			errs[fmt.Sprintf("milestones.%d.title", i)] = "Milestone title is required"
		}
		if m.DueDate != "" {
			if _, err := time.Parse(dateLayout, m.DueDate); err != nil {
				errs[fmt.Sprintf("milestones.%d.due_date", i)] = "Invalid date (expected YYYY-MM-DD)"
			}
		}
	}
	return errs
}

func (d *ProjectDraft) ValidateRisks() map[string]string {
	errs := map[string]string{}
	for i, r := range d.Risks.Items() {
		if strings.TrimSpace(r.Description) == "" {
			errs[fmt.Sprintf("risks.%d.description", i)] = "Risk description is required"
		}
	}
	return errs
}

func (d *ProjectDraft) SetField(field, raw string) error {
	switch field {
	case "name":
		d.Name = strings.TrimSpace(raw)
	case "code":
		d.Code = strings.TrimSpace(raw)
	case "client_name":
		d.ClientName = strings.TrimSpace(raw)
	case "description":
		d.Description = raw
	case "manager":
		d.ManagerID = strings.TrimSpace(raw)
	case "planned_start_date":
		d.PlannedStartDate = strings.TrimSpace(raw)
	case "target_completion_date":
		d.TargetCompletionDate = strings.TrimSpace(raw)
	case "budget":
		d.Budget = FloatField(raw)
	default:
		return fmt.Errorf("unknown project field %q", field)
	}
	return nil
}

func (d *ProjectDraft) ListAppend(list string) (int, error) {
	switch list {
	case "milestones":
		return d.Milestones.Append(), nil
	case "risks":
		return d.Risks.Append(), nil
	}
	return 0, fmt.Errorf("unknown project list %q", list)
}

func (d *ProjectDraft) ListRemove(list string, index int) error {
	switch list {
	case "milestones":
		return d.Milestones.RemoveAt(index)
	case "risks":
		return d.Risks.RemoveAt(index)
	}
	return fmt.Errorf("unknown project list %q", list)
}

func (d *ProjectDraft) ListUpdate(list string, index int, field, raw string) error {
	switch list {
	case "milestones":
		return d.Milestones.UpdateAt(index, func(m *Milestone) {
			switch field {
			case "title":
				m.Title = strings.TrimSpace(raw)
			case "due_date":
				m.DueDate = strings.TrimSpace(raw)
			case "status":
				m.Status = strings.TrimSpace(raw)
			}
		})
	case "risks":
		return d.Risks.UpdateAt(index, func(r *Risk) {
			switch field {
			case "description":
				r.Description = strings.TrimSpace(raw)
			case "severity":
				r.Severity = strings.TrimSpace(raw)
			case "mitigation":
				r.Mitigation = raw
			}
		})
	}
	return fmt.Errorf("unknown project list %q", list)
}

func (d *ProjectDraft) ListLen(list string) (int, error) {
	switch list {
	case "milestones":
		return d.Milestones.Len(), nil
	case "risks":
		return d.Risks.Len(), nil
	}
	return 0, fmt.Errorf("unknown project list %q", list)
}

func (d *ProjectDraft) Collect() map[string]any {
	collected := map[string]any{
		"name":                   d.Name,
		"code":                   d.Code,
		"client_name":            d.ClientName,
		"description":            d.Description,
		"manager":                d.ManagerID,
		"planned_start_date":     d.PlannedStartDate,
		"target_completion_date": d.TargetCompletionDate,
		"milestones":             milestonesPayload(d.Milestones.Items()),
		"risks":                  risksPayload(d.Risks.Items()),
	}
	if d.Budget != nil {
		collected["budget"] = *d.Budget
	}
	return collected
}

func milestonesPayload(items []Milestone) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, m := range items {
		out = append(out, map[string]any{
			"title":    m.Title,
			"due_date": m.DueDate,
			"status":   m.Status,
		})
	}
	return out
}

func risksPayload(items []Risk) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, r := range items {
		out = append(out, map[string]any{
			"description": r.Description,
			"severity":    r.Severity,
			"mitigation":  r.Mitigation,
		})
	}
	return out
}

func (d *ProjectDraft) Defaults() map[string]any {
	return map[string]any{
		"status": "active",
	}
}

func (d *ProjectDraft) DelimitedFields() []string { return nil }
