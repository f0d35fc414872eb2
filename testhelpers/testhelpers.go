// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fieldops/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestStaff creates a staff record and returns it.
func CreateTestStaff(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("staff")
	if err != nil {
		t.Fatalf("failed to find staff collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("role", "operations")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test staff: %v", err)
	}

	return record
}

// CreateTestWarehouse creates a warehouse record and returns it.
func CreateTestWarehouse(t *testing.T, app *pocketbase.PocketBase, name, code string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("warehouses")
	if err != nil {
		t.Fatalf("failed to find warehouses collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("code", code)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test warehouse: %v", err)
	}

	return record
}

// CreateTestLocation creates a location record inside a warehouse.
func CreateTestLocation(t *testing.T, app *pocketbase.PocketBase, warehouseID, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("locations")
	if err != nil {
		t.Fatalf("failed to find locations collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("warehouse", warehouseID)
	record.Set("name", name)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test location: %v", err)
	}

	return record
}

// CreateTestItem creates an inventory item record and returns it.
func CreateTestItem(t *testing.T, app *pocketbase.PocketBase, name, sku string, sellingPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("inventory_items")
	if err != nil {
		t.Fatalf("failed to find inventory_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("sku", sku)
	record.Set("uom", "Nos")
	record.Set("selling_price", sellingPrice)
	record.Set("status", "active")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test item: %v", err)
	}

	return record
}

// CreateTestStockLevel creates a stock level row for an item at a location.
func CreateTestStockLevel(t *testing.T, app *pocketbase.PocketBase, itemID, locationID string, current, reserved float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("stock_levels")
	if err != nil {
		t.Fatalf("failed to find stock_levels collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("item", itemID)
	record.Set("location", locationID)
	record.Set("current_stock", current)
	record.Set("reserved_stock", reserved)
	record.Set("available_stock", current-reserved)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test stock level: %v", err)
	}

	return record
}

// CreateTestServiceOrder creates a service order record and returns it.
func CreateTestServiceOrder(t *testing.T, app *pocketbase.PocketBase, title, client string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("service_orders")
	if err != nil {
		t.Fatalf("failed to find service_orders collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("title", title)
	record.Set("client_name", client)
	record.Set("status", "draft")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test service order: %v", err)
	}

	return record
}

// CreateTestSubcontractor creates an individual subcontractor record.
func CreateTestSubcontractor(t *testing.T, app *pocketbase.PocketBase, firstName, lastName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("subcontractors")
	if err != nil {
		t.Fatalf("failed to find subcontractors collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("is_company", false)
	record.Set("first_name", firstName)
	record.Set("last_name", lastName)
	record.Set("phone", "0722000000")
	record.Set("status", "active")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test subcontractor: %v", err)
	}

	return record
}
