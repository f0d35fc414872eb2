package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fieldops/collections"
	"fieldops/handlers"
	"fieldops/services"
	"fieldops/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	app := pocketbase.New()
	sessions := services.NewSessionStore()
	st := store.New(app)

	// Create collections and seed reference data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Resolve the acting user globally; mutating endpoints enforce it
		se.Router.BindFunc(handlers.ActingUserMiddleware(app))

		// ── Form sessions ────────────────────────────────────────
		se.Router.POST("/forms/{entity}", handlers.HandleFormOpen(app, sessions, st))
		se.Router.GET("/forms/sessions/{id}", handlers.HandleFormState(sessions))
		se.Router.DELETE("/forms/sessions/{id}", handlers.HandleFormClose(sessions))
		se.Router.PATCH("/forms/sessions/{id}/values", handlers.HandleFormSetValues(sessions))

		// Wizard navigation
		se.Router.POST("/forms/sessions/{id}/next", handlers.HandleFormNext(sessions))
		se.Router.POST("/forms/sessions/{id}/previous", handlers.HandleFormPrevious(sessions))
		se.Router.POST("/forms/sessions/{id}/goto/{index}", handlers.HandleFormGoTo(sessions))

		// Dynamic list rows
		se.Router.POST("/forms/sessions/{id}/lists/{list}/rows", handlers.HandleListAppend(sessions))
		se.Router.DELETE("/forms/sessions/{id}/lists/{list}/rows/{index}", handlers.HandleListRemove(sessions))
		se.Router.PATCH("/forms/sessions/{id}/lists/{list}/rows/{index}", handlers.HandleListUpdate(sessions))
		se.Router.POST("/forms/sessions/{id}/lists/{list}/rows/{index}/link", handlers.HandleCatalogLink(sessions))
		se.Router.DELETE("/forms/sessions/{id}/lists/{list}/rows/{index}/link", handlers.HandleCatalogClear(sessions))

		// Submission
		se.Router.POST("/forms/sessions/{id}/submit", handlers.HandleFormSubmit(app, sessions, st))

		// ── Entity read/delete ───────────────────────────────────
		se.Router.GET("/api/entities/{entity}", handlers.HandleEntityList(app))
		se.Router.GET("/api/entities/{entity}/{recordId}", handlers.HandleEntityGet(st))
		se.Router.DELETE("/api/entities/{entity}/{recordId}", handlers.HandleEntityDelete(st))

		// ── Stock operations ─────────────────────────────────────
		se.Router.GET("/api/stock/{itemId}/levels", handlers.HandleStockLevels(st))
		se.Router.POST("/api/stock/adjust", handlers.HandleStockAdjust(st))
		se.Router.POST("/api/stock/reserve", handlers.HandleReservedStockUpdate(st))

		// ── Reference data ───────────────────────────────────────
		se.Router.GET("/api/refdata/{kind}", handlers.HandleReferenceList(st))
		se.Router.GET("/api/catalog", handlers.HandleCatalogList(st))
		se.Router.GET("/api/options", handlers.HandleDropdownOptions())

		// ── Exports ──────────────────────────────────────────────
		se.Router.GET("/reports/stock/excel", handlers.HandleStockReportExcel(app, st))
		se.Router.GET("/api/entities/service-orders/{recordId}/export/pdf", handlers.HandleServiceOrderPDF(app))

		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/api/entities/projects")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
