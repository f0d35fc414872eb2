package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fieldops/services"
	"fieldops/store"
)

// formSpec binds an entity kind to its draft constructor, gating mode and the
// reference data its selectors need.
type formSpec struct {
	mode     services.GatingMode
	refKinds []services.ReferenceKind
	catalog  bool
	newDraft func() services.FormDraft
}

var formSpecs = map[string]formSpec{
	"subcontractor": {
		mode:     services.GatingStrict,
		newDraft: func() services.FormDraft { return services.NewSubcontractorDraft() },
	},
	"inventory_item": {
		mode:     services.GatingStrict,
		refKinds: []services.ReferenceKind{services.RefWarehouses, services.RefLocations},
		newDraft: func() services.FormDraft { return services.NewInventoryItemDraft() },
	},
	"project": {
		mode:     services.GatingStrict,
		refKinds: []services.ReferenceKind{services.RefUsers, services.RefSubcontractors},
		newDraft: func() services.FormDraft { return services.NewProjectDraft() },
	},
	"service_order": {
		mode:     services.GatingFree,
		refKinds: []services.ReferenceKind{services.RefUsers, services.RefSubcontractors, services.RefProjects, services.RefLocations},
		catalog:  true,
		newDraft: func() services.FormDraft { return services.NewServiceOrderDraft() },
	},
}

// toastNotifier adapts the submission pipeline's feedback onto the response's
// toast headers.
type toastNotifier struct {
	e *core.RequestEvent
}

func (n toastNotifier) Notify(level, message string) {
	SetToast(n.e, level, message)
}

// HandleFormOpen creates a form session for an entity kind, optionally
// hydrated from an existing record (?id=). Reference lookups that fail leave
// their selectors empty and surface as warnings; the form still opens.
func HandleFormOpen(app *pocketbase.PocketBase, sessions *services.SessionStore, st *store.Store) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		entity := e.Request.PathValue("entity")
		spec, ok := formSpecs[entity]
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Unknown form type")
		}

		draft := spec.newDraft()
		recordID := e.Request.URL.Query().Get("id")
		if recordID != "" {
			record, err := st.FetchByID(e.Request.Context(), entity, recordID)
			if err != nil {
				log.Printf("forms: could not load %s %s for editing: %v", entity, recordID, err)
				return ErrorToast(e, http.StatusNotFound, "Record not found")
			}
			if h, ok := draft.(services.Hydrator); ok {
				h.Hydrate(record)
			}
		}

		refs := services.LoadReferences(e.Request.Context(), st, spec.catalog, spec.refKinds...)
		sess := services.NewFormSession(entity, draft, spec.mode, refs)
		sess.RecordID = recordID
		sessions.Put(sess)

		if len(refs.Warnings) > 0 {
			SetToast(e, "warning", refs.Warnings[0])
		}
		return e.JSON(http.StatusOK, sessionState(sess))
	}
}

// HandleFormState returns the current wizard state of a session.
func HandleFormState(sessions *services.SessionStore) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := findSession(e, sessions)
		if err != nil {
			return err
		}
		return e.JSON(http.StatusOK, sessionState(sess))
	}
}

// HandleFormClose discards a session and all its entered state. An in-flight
// submission observes the close and skips its post-success updates.
func HandleFormClose(sessions *services.SessionStore) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sessions.Remove(e.Request.PathValue("id"))
		return e.JSON(http.StatusOK, map[string]string{"status": "closed"})
	}
}

// HandleFormSetValues applies posted field values to the draft and returns
// the refreshed validation state of the current section.
func HandleFormSetValues(sessions *services.SessionStore) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := findSession(e, sessions)
		if err != nil {
			return err
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		for field, values := range e.Request.PostForm {
			if len(values) == 0 {
				continue
			}
			if err := sess.SetField(field, values[0]); err != nil {
				return ErrorToast(e, http.StatusBadRequest, err.Error())
			}
		}
		return e.JSON(http.StatusOK, map[string]any{
			"errors":   sess.ValidateCurrent(),
			"progress": sess.Progress(),
		})
	}
}

// HandleFormNext advances the wizard. Moving forward past an invalid section
// is refused in every gating mode; the response carries the blocking errors.
func HandleFormNext(sessions *services.SessionStore) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := findSession(e, sessions)
		if err != nil {
			return err
		}
		if errs := sess.ValidateCurrent(); len(errs) > 0 {
			return FieldErrors(e, errs)
		}
		if !sess.Next() {
			return ErrorToast(e, http.StatusConflict, "Already on the final section")
		}
		return e.JSON(http.StatusOK, sessionState(sess))
	}
}

// HandleFormPrevious steps back one section. Always allowed; nothing entered
// is lost.
func HandleFormPrevious(sessions *services.SessionStore) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := findSession(e, sessions)
		if err != nil {
			return err
		}
		sess.Previous()
		return e.JSON(http.StatusOK, sessionState(sess))
	}
}

// HandleFormGoTo jumps to a section by index. Strict gating refuses targets
// beyond the furthest section already reached.
func HandleFormGoTo(sessions *services.SessionStore) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := findSession(e, sessions)
		if err != nil {
			return err
		}
		index, err := strconv.Atoi(e.Request.PathValue("index"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid section index")
		}
		if !sess.GoTo(index) {
			return ErrorToast(e, http.StatusConflict, "Complete the earlier sections first")
		}
		return e.JSON(http.StatusOK, sessionState(sess))
	}
}

// HandleFormSubmit runs the submission pipeline: full validation, payload
// assembly and exactly one save call. Failures leave the session's entered
// state intact for a manual retry.
func HandleFormSubmit(app *pocketbase.PocketBase, sessions *services.SessionStore, st *store.Store) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := findSession(e, sessions)
		if err != nil {
			return err
		}
		acting, err := requireActingUser(e)
		if err != nil {
			return err
		}

		submitter := &services.Submitter{
			Writer:   st,
			Notifier: toastNotifier{e},
			OnChanged: func(kind string) {
				SetDataChanged(e, kind)
			},
		}
		if err := submitter.Submit(e.Request.Context(), sess, acting.ID); err != nil {
			var vErr *services.ValidationError
			var sErr *services.SubmissionError
			switch {
			case errors.As(err, &vErr):
				return e.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": vErr.Fields})
			case errors.Is(err, services.ErrSubmitInFlight):
				return ErrorToast(e, http.StatusConflict, "A submission is already in progress")
			case errors.Is(err, services.ErrNotFinalSection):
				return ErrorToast(e, http.StatusConflict, "Complete all sections before submitting")
			case errors.Is(err, services.ErrSessionClosed):
				return ErrorToast(e, http.StatusGone, "This form has been closed")
			case errors.As(err, &sErr):
				return e.JSON(http.StatusBadGateway, map[string]string{"error": sErr.Message()})
			default:
				return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
		}

		sessions.Remove(sess.ID)
		return e.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}
}

func findSession(e *core.RequestEvent, sessions *services.SessionStore) (*services.FormSession, error) {
	sess, ok := sessions.Get(e.Request.PathValue("id"))
	if !ok {
		if err := ErrorToast(e, http.StatusNotFound, "Form session not found"); err != nil {
			return nil, err
		}
		return nil, errors.New("form session not found")
	}
	return sess, nil
}

// sessionState is the wizard snapshot every form endpoint responds with.
// Draft reads go through ReadDraft so they hold the session lock alongside
// any concurrent field or list updates.
func sessionState(sess *services.FormSession) map[string]any {
	state := map[string]any{
		"session_id": sess.ID,
		"entity":     sess.EntityKind,
		"record_id":  sess.RecordID,
		"mode":       string(sess.Mode()),
		"current":    sess.Current(),
		"progress":   sess.Progress(),
		"errors":     sess.ValidateCurrent(),
	}
	sess.ReadDraft(func(draft services.FormDraft) {
		sections := []map[string]any{}
		for i, sec := range draft.Sections() {
			sections = append(sections, map[string]any{
				"index":  i,
				"id":     sec.ID,
				"title":  sec.Title,
				"weight": sec.Weight,
			})
		}
		state["sections"] = sections
		if d, ok := draft.(*services.InventoryItemDraft); ok {
			state["aggregate_stock"] = d.AggregateStock()
		}
		if d, ok := draft.(*services.ServiceOrderDraft); ok {
			state["totals"] = d.Totals()
		}
	})
	if sess.Refs != nil {
		state["references"] = sess.Refs.Lists
		state["warnings"] = sess.Refs.Warnings
	}
	return state
}
