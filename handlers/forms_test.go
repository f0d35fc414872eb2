package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/pocketbase/pocketbase"

	"fieldops/services"
	"fieldops/store"
	"fieldops/testhelpers"
)

type formFixture struct {
	app      *pocketbase.PocketBase
	sessions *services.SessionStore
	st       *store.Store
}

func newFormFixture(t *testing.T) *formFixture {
	t.Helper()
	app := testhelpers.NewTestApp(t)
	return &formFixture{
		app:      app,
		sessions: services.NewSessionStore(),
		st:       store.New(app),
	}
}

// openForm opens a session for the given entity and returns its id.
func (f *formFixture) openForm(t *testing.T, entity string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/forms/"+entity, nil)
	req.SetPathValue("entity", entity)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(f.app, req, rec)

	if err := HandleFormOpen(f.app, f.sessions, f.st)(e); err != nil {
		t.Fatalf("HandleFormOpen: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("open status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	id, _ := body["session_id"].(string)
	if id == "" {
		t.Fatal("no session_id in response")
	}
	return id
}

// setValues posts field values to the session.
func (f *formFixture) setValues(t *testing.T, sessionID string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := newFormRequest(http.MethodPatch, "/forms/sessions/"+sessionID+"/values", values)
	req.SetPathValue("id", sessionID)
	rec := httptest.NewRecorder()
	if err := HandleFormSetValues(f.sessions)(newTestRequestEvent(f.app, req, rec)); err != nil {
		t.Fatalf("HandleFormSetValues: %v", err)
	}
	return rec
}

func (f *formFixture) next(t *testing.T, sessionID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/forms/sessions/"+sessionID+"/next", nil)
	req.SetPathValue("id", sessionID)
	rec := httptest.NewRecorder()
	if err := HandleFormNext(f.sessions)(newTestRequestEvent(f.app, req, rec)); err != nil {
		t.Fatalf("HandleFormNext: %v", err)
	}
	return rec
}

func TestFormOpenUnknownEntity(t *testing.T) {
	f := newFormFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/forms/gadget", nil)
	req.SetPathValue("entity", "gadget")
	rec := httptest.NewRecorder()

	HandleFormOpen(f.app, f.sessions, f.st)(newTestRequestEvent(f.app, req, rec))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestFormOpenReturnsSections(t *testing.T) {
	f := newFormFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/forms/subcontractor", nil)
	req.SetPathValue("entity", "subcontractor")
	rec := httptest.NewRecorder()
	if err := HandleFormOpen(f.app, f.sessions, f.st)(newTestRequestEvent(f.app, req, rec)); err != nil {
		t.Fatalf("HandleFormOpen: %v", err)
	}

	body := decodeBody(t, rec)
	sections, ok := body["sections"].([]any)
	if !ok || len(sections) != 3 {
		t.Errorf("sections = %v, want 3", body["sections"])
	}
	if body["mode"] != "strict" {
		t.Errorf("mode = %v, want strict", body["mode"])
	}
	if body["current"] != 0.0 {
		t.Errorf("current = %v, want 0", body["current"])
	}
}

func TestFormNextGating(t *testing.T) {
	f := newFormFixture(t)
	id := f.openForm(t, "subcontractor")

	// Contact section empty: no email, no phone.
	rec := f.next(t, id)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("next status = %d, want 422", rec.Code)
	}
	body := decodeBody(t, rec)
	errs, _ := body["errors"].(map[string]any)
	if errs["email"] == nil {
		t.Errorf("errors = %v, want email error", errs)
	}

	f.setValues(t, id, url.Values{"phone": {"0722111222"}})
	rec = f.next(t, id)
	if rec.Code != http.StatusOK {
		t.Fatalf("next status = %d after fixing, want 200", rec.Code)
	}
	if body := decodeBody(t, rec); body["current"] != 1.0 {
		t.Errorf("current = %v, want 1", body["current"])
	}
}

func TestFormNextAtFinalSection(t *testing.T) {
	f := newFormFixture(t)
	id := f.openForm(t, "subcontractor")

	f.setValues(t, id, url.Values{
		"first_name": {"John"},
		"last_name":  {"Kamau"},
		"phone":      {"0722111222"},
	})
	f.next(t, id)
	f.next(t, id)

	// Already on the last section; another next is refused, not a silent 200.
	rec := f.next(t, id)
	if rec.Code != http.StatusConflict {
		t.Errorf("next status = %d, want 409 on the final section", rec.Code)
	}
	sess, _ := f.sessions.Get(id)
	if sess.Current() != 2 {
		t.Errorf("current = %d, want unchanged 2", sess.Current())
	}
}

func TestFormGoToStrictGating(t *testing.T) {
	f := newFormFixture(t)
	id := f.openForm(t, "subcontractor")

	req := httptest.NewRequest(http.MethodPost, "/forms/sessions/"+id+"/goto/2", nil)
	req.SetPathValue("id", id)
	req.SetPathValue("index", "2")
	rec := httptest.NewRecorder()
	HandleFormGoTo(f.sessions)(newTestRequestEvent(f.app, req, rec))
	if rec.Code != http.StatusConflict {
		t.Errorf("goto status = %d, want 409 under strict gating", rec.Code)
	}
}

func TestFormGoToFreeGating(t *testing.T) {
	f := newFormFixture(t)
	id := f.openForm(t, "service_order")

	req := httptest.NewRequest(http.MethodPost, "/forms/sessions/"+id+"/goto/2", nil)
	req.SetPathValue("id", id)
	req.SetPathValue("index", "2")
	rec := httptest.NewRecorder()
	if err := HandleFormGoTo(f.sessions)(newTestRequestEvent(f.app, req, rec)); err != nil {
		t.Fatalf("HandleFormGoTo: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("goto status = %d, want 200 under free gating", rec.Code)
	}
}

func TestFormSetValuesUnknownField(t *testing.T) {
	f := newFormFixture(t)
	id := f.openForm(t, "subcontractor")

	req := newFormRequest(http.MethodPatch, "/forms/sessions/"+id+"/values",
		url.Values{"bogus": {"x"}})
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	HandleFormSetValues(f.sessions)(newTestRequestEvent(f.app, req, rec))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for an unknown field", rec.Code)
	}
}

func TestFormSessionNotFound(t *testing.T) {
	f := newFormFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/forms/sessions/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	HandleFormState(f.sessions)(newTestRequestEvent(f.app, req, rec))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestFormSubmitRequiresActingUser(t *testing.T) {
	f := newFormFixture(t)
	id := f.openForm(t, "subcontractor")

	req := httptest.NewRequest(http.MethodPost, "/forms/sessions/"+id+"/submit", nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	HandleFormSubmit(f.app, f.sessions, f.st)(newTestRequestEvent(f.app, req, rec))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without an acting user", rec.Code)
	}
}

func TestFormSubmitFromEarlierSection(t *testing.T) {
	f := newFormFixture(t)
	id := f.openForm(t, "subcontractor")

	req := withActingUser(httptest.NewRequest(http.MethodPost, "/forms/sessions/"+id+"/submit", nil), "user_1", "Grace")
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	HandleFormSubmit(f.app, f.sessions, f.st)(newTestRequestEvent(f.app, req, rec))
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 before the final section", rec.Code)
	}
}

func TestFormSubmitCreatesRecord(t *testing.T) {
	f := newFormFixture(t)
	id := f.openForm(t, "subcontractor")

	f.setValues(t, id, url.Values{
		"first_name": {"John"},
		"last_name":  {"Kamau"},
		"phone":      {"0722111222"},
	})
	f.next(t, id)
	f.next(t, id)

	req := withActingUser(httptest.NewRequest(http.MethodPost, "/forms/sessions/"+id+"/submit", nil), "user_1", "Grace")
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	if err := HandleFormSubmit(f.app, f.sessions, f.st)(newTestRequestEvent(f.app, req, rec)); err != nil {
		t.Fatalf("HandleFormSubmit: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("submit status = %d, body %s", rec.Code, rec.Body.String())
	}

	// Session removed after the committed submission.
	if _, ok := f.sessions.Get(id); ok {
		t.Error("session still registered after submit")
	}

	records, err := f.app.FindAllRecords("subcontractors")
	if err != nil {
		t.Fatalf("find subcontractors: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	saved := records[0]
	if saved.GetString("first_name") != "John" {
		t.Errorf("first_name = %q", saved.GetString("first_name"))
	}
	if saved.GetString("status") != "active" {
		t.Errorf("status = %q, want default active", saved.GetString("status"))
	}
	if saved.GetString("specialty") != "general" {
		t.Errorf("specialty = %q, want default general", saved.GetString("specialty"))
	}
	if saved.GetString("updated_by") != "user_1" {
		t.Errorf("updated_by = %q, want explicit acting user", saved.GetString("updated_by"))
	}
}

func TestFormSubmitValidationFailure(t *testing.T) {
	f := newFormFixture(t)
	id := f.openForm(t, "service_order")

	// Jump to the end with required details still blank (free gating).
	req := httptest.NewRequest(http.MethodPost, "/forms/sessions/"+id+"/goto/2", nil)
	req.SetPathValue("id", id)
	req.SetPathValue("index", "2")
	HandleFormGoTo(f.sessions)(newTestRequestEvent(f.app, req, httptest.NewRecorder()))

	subReq := withActingUser(httptest.NewRequest(http.MethodPost, "/forms/sessions/"+id+"/submit", nil), "user_1", "Grace")
	subReq.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	HandleFormSubmit(f.app, f.sessions, f.st)(newTestRequestEvent(f.app, subReq, rec))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	body := decodeBody(t, rec)
	errs, _ := body["errors"].(map[string]any)
	if errs["title"] == nil {
		t.Errorf("errors = %v, want title error", errs)
	}

	// Session stays open with its state intact for a retry.
	if _, ok := f.sessions.Get(id); !ok {
		t.Error("session removed after a rejected submit")
	}
	if records, _ := f.app.FindAllRecords("service_orders"); len(records) != 0 {
		t.Error("a record was created despite validation failure")
	}
}

func TestFormCloseDiscardsState(t *testing.T) {
	f := newFormFixture(t)
	id := f.openForm(t, "subcontractor")

	req := httptest.NewRequest(http.MethodDelete, "/forms/sessions/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	if err := HandleFormClose(f.sessions)(newTestRequestEvent(f.app, req, rec)); err != nil {
		t.Fatalf("HandleFormClose: %v", err)
	}
	if _, ok := f.sessions.Get(id); ok {
		t.Error("session retrievable after close")
	}
}
