package services

// GatingMode selects how a wizard treats navigation to sections the user has
// not completed yet. One machine, one policy object; the instantiating form
// picks the mode explicitly and the two are never mixed.
type GatingMode string

const (
	// GatingStrict locks a section until every earlier section has been
	// passed through; jumping is limited to already-reached sections.
	GatingStrict GatingMode = "strict"
	// GatingFree leaves every section reachable and defers full validation
	// to submit time.
	GatingFree GatingMode = "free"
)

// Section is one logical page of a multi-section form. Validate returns a
// field -> message map and never panics; nil or empty means valid.
type Section struct {
	ID       string
	Title    string
	Weight   int
	Validate func() map[string]string
}

// Wizard is the section gating state machine. States are the section indexes
// 0..N-1; there is no terminal state, the final section's submit exits the
// machine. One instance per form session, torn down with it.
type Wizard struct {
	sections   []Section
	current    int
	reached    int
	mode       GatingMode
	submitting bool
}

// NewWizard starts at section 0.
func NewWizard(mode GatingMode, sections ...Section) *Wizard {
	return &Wizard{sections: sections, mode: mode}
}

func (w *Wizard) Current() int        { return w.current }
func (w *Wizard) SectionCount() int   { return len(w.sections) }
func (w *Wizard) Mode() GatingMode    { return w.mode }
func (w *Wizard) Submitting() bool    { return w.submitting }
func (w *Wizard) Sections() []Section { return w.sections }

func (w *Wizard) CurrentSection() Section {
	return w.sections[w.current]
}

// ValidateCurrent runs the current section's rules.
func (w *Wizard) ValidateCurrent() map[string]string {
	return w.validateSection(w.current)
}

func (w *Wizard) validateSection(i int) map[string]string {
	if v := w.sections[i].Validate; v != nil {
		return v()
	}
	return nil
}

// ValidateAll runs every section's rules and merges the error maps.
func (w *Wizard) ValidateAll() map[string]string {
	merged := map[string]string{}
	for i := range w.sections {
		for field, msg := range w.validateSection(i) {
			merged[field] = msg
		}
	}
	return merged
}

// Next advances one section. While the current section has validation errors
// the call is a no-op returning false; inline field errors are the only
// feedback. This gate applies in both modes.
func (w *Wizard) Next() bool {
	if w.current >= len(w.sections)-1 {
		return false
	}
	if len(w.ValidateCurrent()) > 0 {
		return false
	}
	w.current++
	if w.current > w.reached {
		w.reached = w.current
	}
	return true
}

// Previous steps back one section. Always allowed above index 0; data entered
// in later sections is retained.
func (w *Wizard) Previous() bool {
	if w.current == 0 {
		return false
	}
	w.current--
	return true
}

// GoTo jumps to section i. GatingStrict only permits sections that have been
// reached already; GatingFree permits any section.
func (w *Wizard) GoTo(i int) bool {
	if i < 0 || i >= len(w.sections) {
		return false
	}
	if w.mode == GatingStrict && i > w.reached {
		return false
	}
	w.current = i
	return true
}

// CanSubmit reports whether a submission may start: final section reached and
// nothing already in flight.
func (w *Wizard) CanSubmit() bool {
	return w.current == len(w.sections)-1 && !w.submitting
}

// BeginSubmit marks a submission in flight. The submit control stays disabled
// until EndSubmit.
func (w *Wizard) BeginSubmit() bool {
	if !w.CanSubmit() {
		return false
	}
	w.submitting = true
	return true
}

// EndSubmit re-enables submission after the attempt resolves.
func (w *Wizard) EndSubmit() { w.submitting = false }

// Progress is the weighted completion percentage across all sections.
func (w *Wizard) Progress() int {
	weights := make([]SectionWeight, len(w.sections))
	for i, s := range w.sections {
		weights[i] = SectionWeight{
			SectionID: s.ID,
			Weight:    s.Weight,
			Valid:     len(w.validateSection(i)) == 0,
		}
	}
	return CalcFormProgress(weights)
}
