package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"fieldops/services"
	"fieldops/store"
)

// HandleStockAdjust applies a signed stock quantity change to one
// item/location level. The acting user is stamped onto the audit row.
func HandleStockAdjust(st *store.Store) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		acting, err := requireActingUser(e)
		if err != nil {
			return err
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		form := e.Request.PostForm

		adj := services.StockAdjustment{
			ItemID:      form.Get("item"),
			LocationID:  form.Get("location"),
			Quantity:    services.FloatOrZero(form.Get("quantity")),
			Reason:      form.Get("reason"),
			PerformedBy: acting.ID,
			DocumentRef: form.Get("document_ref"),
		}
		if err := st.AdjustStock(e.Request.Context(), adj); err != nil {
			var vErr *services.ValidationError
			if errors.As(err, &vErr) {
				return FieldErrors(e, vErr.Fields)
			}
			log.Printf("stock: adjustment failed: %v", err)
			return ErrorToast(e, http.StatusConflict, err.Error())
		}

		SetDataChanged(e, "inventory_item")
		SetToast(e, "success", "Stock adjusted")
		return e.JSON(http.StatusOK, map[string]string{"status": "adjusted"})
	}
}

// HandleReservedStockUpdate moves stock in or out of reservation for one
// item/location level.
func HandleReservedStockUpdate(st *store.Store) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		acting, err := requireActingUser(e)
		if err != nil {
			return err
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		form := e.Request.PostForm

		change := services.ReservationChange{
			ItemID:      form.Get("item"),
			LocationID:  form.Get("location"),
			Action:      services.ReservationAction(form.Get("action")),
			Quantity:    services.FloatOrZero(form.Get("quantity")),
			PerformedBy: acting.ID,
			Notes:       form.Get("notes"),
		}
		if err := st.UpdateReservedStock(e.Request.Context(), change); err != nil {
			var vErr *services.ValidationError
			if errors.As(err, &vErr) {
				return FieldErrors(e, vErr.Fields)
			}
			log.Printf("stock: reservation update failed: %v", err)
			return ErrorToast(e, http.StatusConflict, err.Error())
		}

		SetDataChanged(e, "inventory_item")
		SetToast(e, "success", "Reserved stock updated")
		return e.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}
}

// HandleStockLevels returns the persisted per-location levels of one item
// plus the cross-location aggregate.
func HandleStockLevels(st *store.Store) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")
		levels, err := st.StockLevels(e.Request.Context(), itemID)
		if err != nil {
			log.Printf("stock: list levels failed: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not load stock levels")
		}
		return e.JSON(http.StatusOK, map[string]any{
			"levels":    levels,
			"aggregate": services.CalcAggregateStock(levels),
		})
	}
}
