package services

import "testing"

func TestSubcontractorValidateBasic(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		phone       string
		expectField string
	}{
		{"phone only is enough", "", "0722111222", ""},
		{"email only is enough", "john@example.com", "", ""},
		{"both missing", "", "", "email"},
		{"invalid email", "not-an-email", "0722111222", "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewSubcontractorDraft()
			d.Email = tt.email
			d.Phone = tt.phone
			errs := d.ValidateBasic()
			if tt.expectField == "" {
				if len(errs) != 0 {
					t.Errorf("ValidateBasic = %v, want no errors", errs)
				}
				return
			}
			if errs[tt.expectField] == "" {
				t.Errorf("ValidateBasic = %v, want error on %q", errs, tt.expectField)
			}
		})
	}
}

func TestSubcontractorValidateIdentity(t *testing.T) {
	t.Run("individual needs both names", func(t *testing.T) {
		d := NewSubcontractorDraft()
		d.FirstName = "John"
		errs := d.ValidateIdentity()
		if errs["last_name"] == "" {
			t.Errorf("ValidateIdentity = %v, want error on last_name", errs)
		}
		if errs["company_name"] != "" {
			t.Errorf("company_name required for an individual: %v", errs)
		}

		d.LastName = "Kamau"
		if errs := d.ValidateIdentity(); len(errs) != 0 {
			t.Errorf("ValidateIdentity = %v, want no errors", errs)
		}
	})

	t.Run("company needs a company name", func(t *testing.T) {
		d := NewSubcontractorDraft()
		d.IsCompany = true
		errs := d.ValidateIdentity()
		if errs["company_name"] == "" {
			t.Errorf("ValidateIdentity = %v, want error on company_name", errs)
		}
		if errs["first_name"] != "" || errs["last_name"] != "" {
			t.Errorf("personal names required for a company: %v", errs)
		}

		d.CompanyName = "Kamau Electricals Ltd"
		if errs := d.ValidateIdentity(); len(errs) != 0 {
			t.Errorf("ValidateIdentity = %v, want no errors", errs)
		}
	})

	t.Run("toggling the kind flips the rules", func(t *testing.T) {
		d := NewSubcontractorDraft()
		d.IsCompany = true
		d.CompanyName = "Kamau Electricals Ltd"
		if errs := d.ValidateIdentity(); len(errs) != 0 {
			t.Fatalf("company draft invalid: %v", errs)
		}
		d.IsCompany = false
		if errs := d.ValidateIdentity(); errs["first_name"] == "" {
			t.Errorf("ValidateIdentity = %v, want first_name required after toggle", errs)
		}
	})
}

func TestSubcontractorValidateProfessional(t *testing.T) {
	tests := []struct {
		name    string
		rating  *float64
		wantErr bool
	}{
		{"no rating is fine", nil, false},
		{"in range", fp(3.5), false},
		{"at lower bound", fp(1), false},
		{"at upper bound", fp(5), false},
		{"too low", fp(0.5), true},
		{"zero is out of range, not absent", fp(0), true},
		{"negative", fp(-1), true},
		{"too high", fp(5.5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewSubcontractorDraft()
			d.Rating = tt.rating
			errs := d.ValidateProfessional()
			if tt.wantErr && errs["rating"] == "" {
				t.Errorf("ValidateProfessional = %v, want rating error", errs)
			}
			if !tt.wantErr && len(errs) != 0 {
				t.Errorf("ValidateProfessional = %v, want no errors", errs)
			}
		})
	}
}

func TestSubcontractorSetField(t *testing.T) {
	d := NewSubcontractorDraft()
	fields := map[string]string{
		"is_company": "on",
		"first_name": "  John  ",
		"email":      "john@example.com",
		"rating":     "4.5",
	}
	for f, v := range fields {
		if err := d.SetField(f, v); err != nil {
			t.Fatalf("SetField(%q): %v", f, err)
		}
	}
	if !d.IsCompany {
		t.Error("is_company not applied")
	}
	if d.FirstName != "John" {
		t.Errorf("FirstName = %q, want trimmed %q", d.FirstName, "John")
	}
	if d.Rating == nil || *d.Rating != 4.5 {
		t.Errorf("Rating = %v, want 4.5", d.Rating)
	}
	if err := d.SetField("nope", "x"); err == nil {
		t.Error("SetField accepted an unknown field")
	}
}

func TestSubcontractorPayloadDefaults(t *testing.T) {
	d := NewSubcontractorDraft()
	d.FirstName = "John"
	d.LastName = "Kamau"
	d.Phone = "0722111222"

	payload := BuildPayload(d.Defaults(), d.Collect(), d.DelimitedFields()...)
	if payload["status"] != "active" {
		t.Errorf("status = %v, want default active", payload["status"])
	}
	if payload["specialty"] != "general" {
		t.Errorf("specialty = %v, want default general", payload["specialty"])
	}
	if _, ok := payload["email"]; ok {
		t.Error("empty email survived into the payload")
	}
	if _, ok := payload["rating"]; ok {
		t.Error("absent rating survived into the payload")
	}
}
