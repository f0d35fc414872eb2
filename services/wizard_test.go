package services

import "testing"

// sectionsWithValidity builds three weighted sections whose validity is
// toggled through the returned map.
func sectionsWithValidity() (map[string]bool, []Section) {
	valid := map[string]bool{"one": true, "two": true, "three": true}
	validate := func(id, field string) func() map[string]string {
		return func() map[string]string {
			if valid[id] {
				return nil
			}
			return map[string]string{field: "required"}
		}
	}
	return valid, []Section{
		{ID: "one", Title: "One", Weight: 40, Validate: validate("one", "a")},
		{ID: "two", Title: "Two", Weight: 40, Validate: validate("two", "b")},
		{ID: "three", Title: "Three", Weight: 20, Validate: validate("three", "c")},
	}
}

func TestWizardNextBlockedByInvalidSection(t *testing.T) {
	for _, mode := range []GatingMode{GatingStrict, GatingFree} {
		t.Run(string(mode), func(t *testing.T) {
			valid, sections := sectionsWithValidity()
			w := NewWizard(mode, sections...)

			valid["one"] = false
			if w.Next() {
				t.Error("Next succeeded from an invalid section")
			}
			if w.Current() != 0 {
				t.Errorf("Current = %d, want 0", w.Current())
			}

			valid["one"] = true
			if !w.Next() {
				t.Error("Next failed from a valid section")
			}
			if w.Current() != 1 {
				t.Errorf("Current = %d, want 1", w.Current())
			}
		})
	}
}

func TestWizardNextAtEnd(t *testing.T) {
	_, sections := sectionsWithValidity()
	w := NewWizard(GatingFree, sections...)
	w.Next()
	w.Next()
	if w.Current() != 2 {
		t.Fatalf("Current = %d, want 2", w.Current())
	}
	if w.Next() {
		t.Error("Next succeeded past the final section")
	}
}

func TestWizardPrevious(t *testing.T) {
	_, sections := sectionsWithValidity()
	w := NewWizard(GatingStrict, sections...)

	if w.Previous() {
		t.Error("Previous succeeded at section 0")
	}
	w.Next()
	if !w.Previous() {
		t.Error("Previous failed from section 1")
	}
	if w.Current() != 0 {
		t.Errorf("Current = %d, want 0", w.Current())
	}
}

func TestWizardGoToStrict(t *testing.T) {
	_, sections := sectionsWithValidity()
	w := NewWizard(GatingStrict, sections...)

	if w.GoTo(2) {
		t.Error("GoTo reached an unvisited section under strict gating")
	}
	w.Next() // reached = 1
	if !w.GoTo(0) {
		t.Error("GoTo back to a visited section failed")
	}
	if !w.GoTo(1) {
		t.Error("GoTo to the furthest reached section failed")
	}
	if w.GoTo(2) {
		t.Error("GoTo skipped ahead of the reached frontier")
	}
	if w.GoTo(-1) || w.GoTo(3) {
		t.Error("GoTo accepted an out-of-range index")
	}
}

func TestWizardGoToFree(t *testing.T) {
	valid, sections := sectionsWithValidity()
	valid["one"] = false // free mode jumps regardless of validity
	w := NewWizard(GatingFree, sections...)

	if !w.GoTo(2) {
		t.Error("GoTo failed under free gating")
	}
	if w.Current() != 2 {
		t.Errorf("Current = %d, want 2", w.Current())
	}
}

func TestWizardPreviousKeepsLaterState(t *testing.T) {
	// Stepping back then forward again must not reset the reached frontier.
	_, sections := sectionsWithValidity()
	w := NewWizard(GatingStrict, sections...)
	w.Next()
	w.Next()
	w.Previous()
	w.Previous()
	if !w.GoTo(2) {
		t.Error("reached frontier was lost after stepping back")
	}
}

func TestWizardValidateAllMerges(t *testing.T) {
	valid, sections := sectionsWithValidity()
	valid["one"] = false
	valid["three"] = false
	w := NewWizard(GatingFree, sections...)

	errs := w.ValidateAll()
	if len(errs) != 2 {
		t.Fatalf("ValidateAll returned %d errors, want 2", len(errs))
	}
	if errs["a"] == "" || errs["c"] == "" {
		t.Errorf("ValidateAll = %v, want errors on fields a and c", errs)
	}
}

func TestWizardSubmitGuards(t *testing.T) {
	_, sections := sectionsWithValidity()
	w := NewWizard(GatingFree, sections...)

	if w.CanSubmit() {
		t.Error("CanSubmit true before the final section")
	}
	if w.BeginSubmit() {
		t.Error("BeginSubmit succeeded before the final section")
	}

	w.GoTo(2)
	if !w.BeginSubmit() {
		t.Error("BeginSubmit failed on the final section")
	}
	if w.BeginSubmit() {
		t.Error("BeginSubmit succeeded while already in flight")
	}
	w.EndSubmit()
	if !w.CanSubmit() {
		t.Error("CanSubmit false after EndSubmit")
	}
}

func TestWizardProgress(t *testing.T) {
	valid, sections := sectionsWithValidity()
	w := NewWizard(GatingStrict, sections...)

	if got := w.Progress(); got != 100 {
		t.Errorf("Progress = %d, want 100 with all sections valid", got)
	}
	valid["two"] = false
	if got := w.Progress(); got != 60 {
		t.Errorf("Progress = %d, want 60", got)
	}
	valid["one"] = false
	valid["three"] = false
	if got := w.Progress(); got != 0 {
		t.Errorf("Progress = %d, want 0", got)
	}
}
