package services

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// SubcontractorDraft accumulates the intake form's state across its three
// sections. Company and individual intakes share one draft; IsCompany flips
// which identity fields are required.
type SubcontractorDraft struct {
	IsCompany   bool     `json:"is_company"`
	CompanyName string   `json:"company_name"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	IDNumber    string   `json:"id_number"`
	Specialty   string   `json:"specialty"`
	Rating      *float64 `json:"rating"`
	Notes       string   `json:"notes"`
}

func NewSubcontractorDraft() *SubcontractorDraft {
	return &SubcontractorDraft{}
}

// Sections returns the intake wizard's section set (strict gating).
func (d *SubcontractorDraft) Sections() []Section {
	return []Section{
		{ID: "basic", Title: "Contact", Weight: 40, Validate: d.ValidateBasic},
		{ID: "identity", Title: "Identity", Weight: 40, Validate: d.ValidateIdentity},
		{ID: "professional", Title: "Professional", Weight: 20, Validate: d.ValidateProfessional},
	}
}

// ValidateBasic requires at least one reachable contact channel: email OR
// phone. A present email must be well formed.
func (d *SubcontractorDraft) ValidateBasic() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(d.Email) == "" && strings.TrimSpace(d.Phone) == "" {
		errs["email"] = "Provide an email address or a phone number"
	}
	if strings.TrimSpace(d.Email) != "" {
		if err := validation.Validate(d.Email, is.Email); err != nil {
			errs["email"] = "Invalid email address"
		}
	}
	return errs
}

// ValidateIdentity enforces the company/individual split: a company needs a
// company name, an individual needs first and last name.
func (d *SubcontractorDraft) ValidateIdentity() map[string]string {
	err := validation.ValidateStruct(d,
		validation.Field(&d.CompanyName,
			validation.When(d.IsCompany, validation.Required.Error("Company name is required"))),
		validation.Field(&d.FirstName,
			validation.When(!d.IsCompany, validation.Required.Error("First name is required"))),
		validation.Field(&d.LastName,
			validation.When(!d.IsCompany, validation.Required.Error("Last name is required"))),
	)
	return ErrorMap(err)
}

// ValidateProfessional bounds the optional rating to [1,5]. The check is
// explicit rather than ozzo Min/Max because those treat a zero value as
// empty and would let rating 0 through.
func (d *SubcontractorDraft) ValidateProfessional() map[string]string {
	errs := map[string]string{}
	if d.Rating != nil && (*d.Rating < 1 || *d.Rating > 5) {
		errs["rating"] = "Rating must be between 1 and 5"
	}
	return errs
}

func (d *SubcontractorDraft) SetField(field, raw string) error {
	switch field {
	case "is_company":
		d.IsCompany = BoolField(raw)
	case "company_name":
		d.CompanyName = strings.TrimSpace(raw)
	case "first_name":
		d.FirstName = strings.TrimSpace(raw)
	case "last_name":
		d.LastName = strings.TrimSpace(raw)
	case "email":
		d.Email = strings.TrimSpace(raw)
	case "phone":
		d.Phone = strings.TrimSpace(raw)
	case "id_number":
		d.IDNumber = strings.TrimSpace(raw)
	case "specialty":
		d.Specialty = strings.TrimSpace(raw)
	case "rating":
		d.Rating = FloatField(raw)
	case "notes":
		d.Notes = raw
	default:
		return fmt.Errorf("unknown subcontractor field %q", field)
	}
	return nil
}

func (d *SubcontractorDraft) Collect() map[string]any {
	collected := map[string]any{
		"is_company":   d.IsCompany,
		"company_name": d.CompanyName,
		"first_name":   d.FirstName,
		"last_name":    d.LastName,
		"email":        d.Email,
		"phone":        d.Phone,
		"id_number":    d.IDNumber,
		"specialty":    d.Specialty,
		"notes":        d.Notes,
	}
	if d.Rating != nil {
		collected["rating"] = *d.Rating
	}
	return collected
}

func (d *SubcontractorDraft) Defaults() map[string]any {
	return map[string]any{
		"status":    "active",
		"specialty": "general",
	}
}

func (d *SubcontractorDraft) DelimitedFields() []string { return nil }
