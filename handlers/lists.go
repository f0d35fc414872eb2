package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase/core"

	"fieldops/services"
)

func listIndex(e *core.RequestEvent) (int, error) {
	index, err := strconv.Atoi(e.Request.PathValue("index"))
	if err != nil || index < 0 {
		return 0, ErrorToast(e, http.StatusBadRequest, "Invalid row index")
	}
	return index, nil
}

// HandleListAppend adds a fresh row to a named list and returns its index.
// Mutations go through the session so they hold its lock alongside field
// updates and validation.
func HandleListAppend(sessions *services.SessionStore) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := findSession(e, sessions)
		if err != nil {
			return err
		}
		index, err := sess.ListAppend(e.Request.PathValue("list"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}
		return e.JSON(http.StatusOK, map[string]any{
			"index":    index,
			"progress": sess.Progress(),
		})
	}
}

// HandleListRemove deletes a row by index. Rows below the list's configured
// minimum are refused; later rows shift down.
func HandleListRemove(sessions *services.SessionStore) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := findSession(e, sessions)
		if err != nil {
			return err
		}
		index, err := listIndex(e)
		if err != nil {
			return err
		}
		if err := sess.ListRemove(e.Request.PathValue("list"), index); err != nil {
			if errors.Is(err, services.ErrNoListSections) {
				return ErrorToast(e, http.StatusBadRequest, err.Error())
			}
			return ErrorToast(e, http.StatusConflict, err.Error())
		}
		return e.JSON(http.StatusOK, map[string]any{
			"errors":   sess.ValidateCurrent(),
			"progress": sess.Progress(),
		})
	}
}

// HandleListUpdate applies posted field values to one row. Derived fields
// (line totals, available stock) refresh as part of the same update.
func HandleListUpdate(sessions *services.SessionStore) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := findSession(e, sessions)
		if err != nil {
			return err
		}
		index, err := listIndex(e)
		if err != nil {
			return err
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		list := e.Request.PathValue("list")
		for field, values := range e.Request.PostForm {
			if len(values) == 0 {
				continue
			}
			if err := sess.ListUpdate(list, index, field, values[0]); err != nil {
				return ErrorToast(e, http.StatusBadRequest, err.Error())
			}
		}
		return e.JSON(http.StatusOK, map[string]any{
			"errors":   sess.ValidateCurrent(),
			"progress": sess.Progress(),
		})
	}
}

// HandleCatalogLink fills a BOM row from the catalog entry posted as item_id.
// Name, specs, unit and rate arrive in one update, with the total derived.
func HandleCatalogLink(sessions *services.SessionStore) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := findSession(e, sessions)
		if err != nil {
			return err
		}
		index, err := listIndex(e)
		if err != nil {
			return err
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		itemID := e.Request.PostForm.Get("item_id")
		if sess.Refs == nil {
			return ErrorToast(e, http.StatusConflict, "The inventory catalog is not available")
		}
		item, found := sess.Refs.FindCatalogItem(itemID)
		if !found {
			return ErrorToast(e, http.StatusNotFound, "Catalog item not found")
		}
		if err := sess.LinkCatalogItem(e.Request.PathValue("list"), index, item); err != nil {
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}
		return e.JSON(http.StatusOK, map[string]any{
			"errors":   sess.ValidateCurrent(),
			"progress": sess.Progress(),
		})
	}
}

// HandleCatalogClear unlinks a BOM row, resetting every auto-filled field so
// nothing stale survives. The entered quantity is kept.
func HandleCatalogClear(sessions *services.SessionStore) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := findSession(e, sessions)
		if err != nil {
			return err
		}
		index, err := listIndex(e)
		if err != nil {
			return err
		}
		if err := sess.ClearCatalogLink(e.Request.PathValue("list"), index); err != nil {
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}
		return e.JSON(http.StatusOK, map[string]any{
			"errors":   sess.ValidateCurrent(),
			"progress": sess.Progress(),
		})
	}
}
