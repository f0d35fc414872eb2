package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// StockReportRow is one item/location pair of the stock report.
type StockReportRow struct {
	ItemName     string
	SKU          string
	UOM          string
	LocationName string
	Current      float64
	Reserved     float64
	Available    float64
}

// StockReportData feeds the Excel stock report.
type StockReportData struct {
	Title       string
	GeneratedAt time.Time
	Rows        []StockReportRow
}

// GenerateStockReport builds the stock levels workbook and returns the file
// contents as a byte slice.
func GenerateStockReport(data StockReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := data.Title
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Stock"
	}
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G"}
	widths := []float64{32, 16, 10, 24, 12, 12, 12}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	if err := f.SetCellValue(sheetName, "A1", data.Title); err != nil {
		return nil, fmt.Errorf("set title: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", titleStyle); err != nil {
		return nil, fmt.Errorf("style title: %w", err)
	}
	if !data.GeneratedAt.IsZero() {
		if err := f.SetCellValue(sheetName, "A2", "Generated "+data.GeneratedAt.Format("02 Jan 2006 15:04")); err != nil {
			return nil, fmt.Errorf("set generated at: %w", err)
		}
	}

	headers := []string{"Item", "SKU", "UoM", "Location", "Current", "Reserved", "Available"}
	headerRow := 4
	for i, h := range headers {
		cell := fmt.Sprintf("%s%d", columns[i], headerRow)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("set header %s: %w", h, err)
		}
	}
	if err := f.SetCellStyle(sheetName,
		fmt.Sprintf("A%d", headerRow), fmt.Sprintf("G%d", headerRow), headerStyle); err != nil {
		return nil, fmt.Errorf("style header row: %w", err)
	}

	var totalCurrent, totalReserved, totalAvailable float64
	rowNum := headerRow
	for _, row := range data.Rows {
		rowNum++
		values := []any{row.ItemName, row.SKU, row.UOM, row.LocationName, row.Current, row.Reserved, row.Available}
		for i, v := range values {
			cell := fmt.Sprintf("%s%d", columns[i], rowNum)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("set row %d col %s: %w", rowNum, columns[i], err)
			}
		}
		totalCurrent += row.Current
		totalReserved += row.Reserved
		totalAvailable += row.Available
	}

	rowNum++
	if err := f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowNum), "Total"); err != nil {
		return nil, fmt.Errorf("set total label: %w", err)
	}
	totals := []any{totalCurrent, totalReserved, totalAvailable}
	for i, v := range totals {
		cell := fmt.Sprintf("%s%d", columns[4+i], rowNum)
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return nil, fmt.Errorf("set total col %s: %w", columns[4+i], err)
		}
	}
	if err := f.SetCellStyle(sheetName,
		fmt.Sprintf("D%d", rowNum), fmt.Sprintf("G%d", rowNum), totalStyle); err != nil {
		return nil, fmt.Errorf("style total row: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
