package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fieldops/services"
	"fieldops/store"
)

// HandleStockReportExcel builds the all-items stock levels workbook.
func HandleStockReportExcel(app *pocketbase.PocketBase, st *store.Store) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		locationNames := map[string]string{}
		if locations, err := app.FindAllRecords("locations"); err == nil {
			for _, rec := range locations {
				locationNames[rec.Id] = rec.GetString("name")
			}
		} else {
			log.Printf("exports: could not load locations: %v", err)
		}

		items, err := app.FindAllRecords("inventory_items")
		if err != nil {
			log.Printf("exports: could not load inventory items: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not build the stock report")
		}

		var rows []services.StockReportRow
		for _, item := range items {
			levels, err := st.StockLevels(e.Request.Context(), item.Id)
			if err != nil {
				log.Printf("exports: could not load levels for %s: %v", item.Id, err)
				continue
			}
			for _, lvl := range levels {
				name := locationNames[lvl.LocationID]
				if name == "" {
					name = lvl.LocationID
				}
				rows = append(rows, services.StockReportRow{
					ItemName:     item.GetString("name"),
					SKU:          item.GetString("sku"),
					UOM:          item.GetString("uom"),
					LocationName: name,
					Current:      lvl.CurrentStock,
					Reserved:     lvl.ReservedStock,
					Available:    lvl.AvailableStock,
				})
			}
		}

		content, err := services.GenerateStockReport(services.StockReportData{
			Title:       "Stock Levels Report",
			GeneratedAt: time.Now(),
			Rows:        rows,
		})
		if err != nil {
			log.Printf("exports: stock report generation failed: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not build the stock report")
		}

		filename := fmt.Sprintf("stock-levels-%s.xlsx", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		return e.Blob(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
	}
}

// HandleServiceOrderPDF renders one service order as a PDF document.
func HandleServiceOrderPDF(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		orderID := e.Request.PathValue("recordId")
		rec, err := app.FindRecordById("service_orders", orderID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Service order not found")
		}

		var lines []services.BOMLine
		if raw := rec.GetString("bom_lines"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &lines); err != nil {
				log.Printf("exports: order %s has undecodable BOM lines: %v", orderID, err)
			}
		}
		for i := range lines {
			lines[i].Recompute()
		}

		content, err := services.GenerateServiceOrderPDF(&services.ServiceOrderExport{
			OrderNumber:   rec.Id,
			Title:         rec.GetString("title"),
			ClientName:    rec.GetString("client_name"),
			SiteAddress:   rec.GetString("site_address"),
			ServiceType:   rec.GetString("service_type"),
			ScheduledDate: rec.GetString("scheduled_date"),
			AssignedTo:    rec.GetString("assigned_to"),
			Lines:         lines,
			Totals:        services.CalcBOMTotals(lines),
			Notes:         rec.GetString("notes"),
		})
		if err != nil {
			log.Printf("exports: PDF generation for %s failed: %v", orderID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not build the PDF")
		}

		filename := fmt.Sprintf("service-order-%s.pdf", orderID)
		e.Response.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		return e.Blob(http.StatusOK, "application/pdf", content)
	}
}
