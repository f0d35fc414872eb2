package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"fieldops/services"
	"fieldops/store"
)

// HandleReferenceList serves one lookup collection as selector rows, for
// views that need reference data outside a form session.
func HandleReferenceList(st *store.Store) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		kind := services.ReferenceKind(e.Request.PathValue("kind"))
		rows, err := st.ListReference(e.Request.Context(), kind)
		if err != nil {
			log.Printf("refdata: list %s failed: %v", kind, err)
			return ErrorToast(e, http.StatusNotFound, "Unknown reference kind")
		}
		return e.JSON(http.StatusOK, map[string]any{"items": rows})
	}
}

// HandleCatalogList serves the inventory catalog for BOM item pickers.
func HandleCatalogList(st *store.Store) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		items, err := st.ListCatalog(e.Request.Context())
		if err != nil {
			log.Printf("refdata: list catalog failed: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not load the inventory catalog")
		}
		return e.JSON(http.StatusOK, map[string]any{"items": items})
	}
}

// HandleDropdownOptions serves the static option sets the forms render.
func HandleDropdownOptions() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string]any{
			"uom":                  services.UOMOptions,
			"service_type":         services.ServiceTypeOptions,
			"project_status":       services.ProjectStatusOptions,
			"service_order_status": services.ServiceOrderStatusOptions,
			"severity":             services.SeverityOptions,
			"specialty":            services.SpecialtyOptions,
		})
	}
}
