package services

import (
	"context"
	"log"
	"time"
)

// EntityWriter is the mutation side of the external API client. Mutations are
// not idempotent and are never retried automatically.
type EntityWriter interface {
	Create(ctx context.Context, kind string, payload map[string]any) (string, error)
	Update(ctx context.Context, kind, id string, payload map[string]any) error
	Delete(ctx context.Context, kind, id string) error
}

// Notifier surfaces user-visible feedback. Handlers adapt it onto toasts.
type Notifier interface {
	Notify(level, message string)
}

// DefaultSubmitTimeout bounds the single mutation call of a submission.
// Exceeding it is a recoverable failure, surfaced like any other.
const DefaultSubmitTimeout = 15 * time.Second

// Submitter assembles final payloads and resolves create/update outcomes.
type Submitter struct {
	Writer   EntityWriter
	Notifier Notifier
	Timeout  time.Duration
	// OnChanged tells the spawning list view to re-fetch after a committed
	// submission. No full page reloads.
	OnChanged func(kind string)
}

// Submit runs the submission pipeline for a session: validate everything,
// build the payload, make exactly one mutation call, resolve the outcome.
// actingUser is the explicit acting-user id stamped onto the payload; there
// is no implicit current-user fallback. A failed call leaves all entered
// state intact so the user can correct and retry manually.
func (s *Submitter) Submit(ctx context.Context, sess *FormSession, actingUser string) error {
	if err := sess.beginSubmit(); err != nil {
		return err
	}
	defer sess.endSubmit()

	if errs := sess.ValidateAll(); len(errs) > 0 {
		s.notify("warning", "Please fix the errors below")
		return &ValidationError{Fields: errs}
	}

	payload := sess.BuildPayload()
	if actingUser != "" {
		payload["updated_by"] = actingUser
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var err error
	if sess.RecordID == "" {
		_, err = s.Writer.Create(callCtx, sess.EntityKind, payload)
	} else {
		err = s.Writer.Update(callCtx, sess.EntityKind, sess.RecordID, payload)
	}
	if err != nil {
		log.Printf("submit: %s save failed: %v", sess.EntityKind, err)
		subErr := &SubmissionError{Err: err}
		s.notify("error", subErr.Message())
		return subErr
	}

	// Stale-response guard: a session dismissed while the call was in flight
	// gets no further state updates and triggers no refresh.
	if sess.Closed() {
		return nil
	}

	sess.finishSubmit()
	if s.OnChanged != nil {
		s.OnChanged(sess.EntityKind)
	}
	s.notify("success", "Saved successfully")
	return nil
}

func (s *Submitter) notify(level, message string) {
	if s.Notifier != nil {
		s.Notifier.Notify(level, message)
	}
}
