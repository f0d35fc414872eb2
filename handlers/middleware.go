package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const actingUserKey contextKey = "actingUser"

// ActingUser identifies who is performing mutations in this request. It is
// always passed explicitly to the services that need it.
type ActingUser struct {
	ID   string
	Name string
}

// GetActingUser extracts the resolved acting user from the request context.
func GetActingUser(r *http.Request) *ActingUser {
	if val, ok := r.Context().Value(actingUserKey).(*ActingUser); ok {
		return val
	}
	return nil
}

// ActingUserMiddleware resolves the X-Acting-User header (or acting_user
// cookie) against the staff collection and stores the result in the request
// context. An unknown id is dropped with a log line, never an error: only
// the mutating endpoints insist on a user, and they check for themselves.
func ActingUserMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID := e.Request.Header.Get("X-Acting-User")
		if userID == "" {
			if cookie, err := e.Request.Cookie("acting_user"); err == nil {
				userID = cookie.Value
			}
		}

		var acting *ActingUser
		if userID != "" {
			rec, err := app.FindRecordById("staff", userID)
			if err != nil {
				log.Printf("middleware: acting user %s not found: %v", userID, err)
			} else {
				acting = &ActingUser{ID: rec.Id, Name: rec.GetString("name")}
			}
		}

		ctx := context.WithValue(e.Request.Context(), actingUserKey, acting)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

// requireActingUser is the guard mutating endpoints call before committing.
func requireActingUser(e *core.RequestEvent) (*ActingUser, error) {
	acting := GetActingUser(e.Request)
	if acting == nil {
		if err := ErrorToast(e, http.StatusUnauthorized, "An acting user is required for this operation"); err != nil {
			return nil, err
		}
		return nil, errors.New("an acting user is required for this operation")
	}
	return acting, nil
}
