// Package handlers wires the form engine and entity CRUD onto PocketBase
// routes. Responses are JSON; user feedback travels as HTMX trigger headers
// so the front end can toast without parsing bodies.
package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"
)

// SetToast queues a toast notification on the response via the HX-Trigger
// header, merging with any triggers already set. A short-lived flash cookie
// carries the toast across non-HTMX redirects.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	setTrigger(e, "showToast", map[string]string{
		"message": message,
		"type":    toastType,
	})

	cookieVal, err := json.Marshal(map[string]string{"message": message, "type": toastType})
	if err == nil {
		http.SetCookie(e.Response, &http.Cookie{
			Name:     "flash_toast",
			Value:    url.QueryEscape(string(cookieVal)),
			Path:     "/",
			MaxAge:   10,
			HttpOnly: false, // JS needs to read it
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// SetDataChanged fires the event a list view subscribes to for a targeted
// re-fetch after a committed submission. No full page reloads.
func SetDataChanged(e *core.RequestEvent, kind string) {
	setTrigger(e, "dataChanged", map[string]string{"kind": kind})
}

// setTrigger merges one event into the response's HX-Trigger JSON object.
func setTrigger(e *core.RequestEvent, name string, payload any) {
	triggers := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &triggers); err != nil {
			log.Printf("toast: existing HX-Trigger is not valid JSON, overwriting: %v", err)
			triggers = map[string]any{}
		}
	}
	triggers[name] = payload
	data, err := json.Marshal(triggers)
	if err != nil {
		log.Printf("toast: failed to marshal HX-Trigger JSON: %v", err)
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))
}

// ErrorToast sets an error toast and returns a JSON error body. HX-Reswap:
// none keeps HTMX from swapping the body into the DOM.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.JSON(statusCode, map[string]string{"error": message})
}

// FieldErrors returns a 422 with the validation error map; the toast nudges
// the user toward the inline messages.
func FieldErrors(e *core.RequestEvent, errs map[string]string) error {
	SetToast(e, "warning", "Please fix the errors below")
	return e.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": errs})
}
