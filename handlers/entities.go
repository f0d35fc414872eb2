package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fieldops/store"
)

// Entity kinds exposed over the read/delete endpoints, mapped to their
// collections. Writes go through the form engine only.
var listCollections = map[string]string{
	"subcontractors":  "subcontractors",
	"inventory-items": "inventory_items",
	"warehouses":      "warehouses",
	"suppliers":       "suppliers",
	"projects":        "projects",
	"service-orders":  "service_orders",
}

// Path slugs mapped to the writer's entity kinds.
var kindForSlug = map[string]string{
	"subcontractors":  "subcontractor",
	"inventory-items": "inventory_item",
	"warehouses":      "warehouse",
	"suppliers":       "supplier",
	"projects":        "project",
	"service-orders":  "service_order",
}

// HandleEntityList returns every record of one entity collection.
func HandleEntityList(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		collection, ok := listCollections[e.Request.PathValue("entity")]
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Unknown entity type")
		}
		records, err := app.FindAllRecords(collection)
		if err != nil {
			log.Printf("entities: list %s failed: %v", collection, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not load records")
		}
		rows := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			rows = append(rows, rec.PublicExport())
		}
		return e.JSON(http.StatusOK, map[string]any{"items": rows})
	}
}

// HandleEntityGet returns one record by id.
func HandleEntityGet(st *store.Store) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		kind, ok := kindForSlug[e.Request.PathValue("entity")]
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Unknown entity type")
		}
		record, err := st.FetchByID(e.Request.Context(), kind, e.Request.PathValue("recordId"))
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Record not found")
		}
		return e.JSON(http.StatusOK, record)
	}
}

// HandleEntityDelete removes one record. Requires an acting user.
func HandleEntityDelete(st *store.Store) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		kind, ok := kindForSlug[e.Request.PathValue("entity")]
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Unknown entity type")
		}
		if _, err := requireActingUser(e); err != nil {
			return err
		}
		if err := st.Delete(e.Request.Context(), kind, e.Request.PathValue("recordId")); err != nil {
			log.Printf("entities: delete %s failed: %v", kind, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not delete the record")
		}
		SetDataChanged(e, kind)
		SetToast(e, "success", "Deleted successfully")
		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}
