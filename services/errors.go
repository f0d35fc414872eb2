package services

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Submission guard sentinels. Both leave all entered state untouched.
var (
	ErrSubmitInFlight  = errors.New("a submission is already in flight")
	ErrNotFinalSection = errors.New("submit is only available from the final section")
	ErrSessionClosed   = errors.New("the form session has been closed")
)

// List capability sentinels, returned when a session's draft does not carry
// the requested dynamic-list behavior.
var (
	ErrNoListSections = errors.New("this form has no list sections")
	ErrNoCatalogLinks = errors.New("this form has no catalog-linked lists")
)

// ValidationError carries the merged field error map of a rejected submit.
// It blocks the submission locally; nothing is sent to the API.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// SubmissionError wraps a failed create/update/delete call.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string { return "submission failed: " + e.Err.Error() }
func (e *SubmissionError) Unwrap() error { return e.Err }

// Message returns the server's message when it carries one, else a generic
// fallback suitable for a toast.
func (e *SubmissionError) Message() string {
	if e.Err != nil && strings.TrimSpace(e.Err.Error()) != "" {
		return e.Err.Error()
	}
	return "Something went wrong. Please try again."
}

// ErrorMap flattens an ozzo-validation error into field -> message form.
// Validation never panics or throws past this point: any non-field error is
// attached to the pseudo-field "_form".
func ErrorMap(err error) map[string]string {
	if err == nil {
		return map[string]string{}
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for field, ferr := range verrs {
			out[field] = ferr.Error()
		}
		return out
	}
	return map[string]string{"_form": err.Error()}
}
