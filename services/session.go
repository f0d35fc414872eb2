package services

import (
	"sync"

	"github.com/google/uuid"
)

// FormDraft is the per-entity state a wizard drives. Each draft owns its
// section definitions, accepts loosely typed field updates, and knows how to
// shape itself into an API payload.
type FormDraft interface {
	Sections() []Section
	SetField(field, raw string) error
	Collect() map[string]any
	Defaults() map[string]any
	DelimitedFields() []string
}

// ListHost is implemented by drafts owning dynamic list collections.
type ListHost interface {
	ListAppend(list string) (int, error)
	ListRemove(list string, index int) error
	ListUpdate(list string, index int, field, raw string) error
	ListLen(list string) (int, error)
}

// CatalogLinker is implemented by drafts with catalog-linked line items.
type CatalogLinker interface {
	LinkCatalogItem(list string, index int, item CatalogItem) error
	ClearCatalogLink(list string, index int) error
}

// FormSession is one open form dialog: an isolated draft, its wizard and the
// reference data loaded at open. Sessions never share state; closing one
// discards everything unless a submission already committed.
type FormSession struct {
	ID         string
	EntityKind string
	RecordID   string // empty on create, set when hydrated for edit
	Draft      FormDraft
	Refs       *ReferenceSet

	mu     sync.Mutex
	wizard *Wizard
	closed bool
}

// NewFormSession wires a draft to a fresh wizard in the given gating mode.
func NewFormSession(kind string, draft FormDraft, mode GatingMode, refs *ReferenceSet) *FormSession {
	return &FormSession{
		ID:         uuid.NewString(),
		EntityKind: kind,
		Draft:      draft,
		Refs:       refs,
		wizard:     NewWizard(mode, draft.Sections()...),
	}
}

func (s *FormSession) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard.Current()
}

func (s *FormSession) SectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard.SectionCount()
}

func (s *FormSession) Mode() GatingMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard.Mode()
}

func (s *FormSession) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard.Next()
}

func (s *FormSession) Previous() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard.Previous()
}

func (s *FormSession) GoTo(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard.GoTo(i)
}

func (s *FormSession) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard.Progress()
}

func (s *FormSession) ValidateCurrent() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard.ValidateCurrent()
}

func (s *FormSession) ValidateAll() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard.ValidateAll()
}

// SetField applies one loosely typed field update to the draft.
func (s *FormSession) SetField(field, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Draft.SetField(field, raw)
}

// List mutations go through the session so they take the same lock as
// SetField and the validators; touching the draft's ListHost directly would
// race with concurrent requests on the session.
func (s *FormSession) ListAppend(list string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	host, ok := s.Draft.(ListHost)
	if !ok {
		return 0, ErrNoListSections
	}
	return host.ListAppend(list)
}

func (s *FormSession) ListRemove(list string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	host, ok := s.Draft.(ListHost)
	if !ok {
		return ErrNoListSections
	}
	return host.ListRemove(list, index)
}

func (s *FormSession) ListUpdate(list string, index int, field, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	host, ok := s.Draft.(ListHost)
	if !ok {
		return ErrNoListSections
	}
	return host.ListUpdate(list, index, field, raw)
}

func (s *FormSession) LinkCatalogItem(list string, index int, item CatalogItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	linker, ok := s.Draft.(CatalogLinker)
	if !ok {
		return ErrNoCatalogLinks
	}
	return linker.LinkCatalogItem(list, index, item)
}

func (s *FormSession) ClearCatalogLink(list string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	linker, ok := s.Draft.(CatalogLinker)
	if !ok {
		return ErrNoCatalogLinks
	}
	return linker.ClearCatalogLink(list, index)
}

// ReadDraft runs fn with the session lock held, for derived read-outs that
// inspect the draft directly (aggregates, totals, section listings).
func (s *FormSession) ReadDraft(fn func(FormDraft)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.Draft)
}

// BuildPayload shapes the accumulated draft state into the API payload.
func (s *FormSession) BuildPayload() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildPayload(s.Draft.Defaults(), s.Draft.Collect(), s.Draft.DelimitedFields()...)
}

// Close marks the session discarded. Idempotent; an in-flight submission
// observes it through Closed and skips its post-success state updates.
func (s *FormSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *FormSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// beginSubmit atomically checks and sets the in-flight flag. It enforces the
// single-flight and final-section rules before any work starts.
func (s *FormSession) beginSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.wizard.Submitting() {
		return ErrSubmitInFlight
	}
	if s.wizard.Current() != s.wizard.SectionCount()-1 {
		return ErrNotFinalSection
	}
	s.wizard.BeginSubmit()
	return nil
}

func (s *FormSession) endSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wizard.EndSubmit()
}

// finishSubmit marks the session done after a committed submission: local
// state is discarded by closing the session.
func (s *FormSession) finishSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// SessionStore is a mutex-guarded registry of open form sessions. Each open
// dialog owns exactly one entry; removal closes the session.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*FormSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*FormSession)}
}

func (st *SessionStore) Put(s *FormSession) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

func (st *SessionStore) Get(id string) (*FormSession, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Remove closes and drops a session. Unknown ids are a no-op.
func (st *SessionStore) Remove(id string) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	if ok {
		delete(st.sessions, id)
	}
	st.mu.Unlock()
	if ok {
		s.Close()
	}
}

func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
