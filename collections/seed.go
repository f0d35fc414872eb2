package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type staffDef struct {
	name  string
	email string
	role  string
}

type warehouseDef struct {
	name      string
	code      string
	address   string
	locations []locationDef
}

type locationDef struct {
	name string
	code string
}

type supplierDef struct {
	name          string
	contactPerson string
	phone         string
}

type itemDef struct {
	name         string
	sku          string
	category     string
	uom          string
	specs        string
	costPrice    float64
	sellingPrice float64
	stock        map[string]float64 // location code -> current stock
}

var seedStaff = []staffDef{
	{"Grace Wanjiru", "grace@fieldops.local", "operations"},
	{"Peter Otieno", "peter@fieldops.local", "stores"},
}

var seedWarehouses = []warehouseDef{
	{"Nairobi Central", "NBO", "Industrial Area, Nairobi", []locationDef{
		{"Main Floor", "NBO-A"},
		{"Cage", "NBO-B"},
	}},
	{"Mombasa Depot", "MBA", "Shimanzi, Mombasa", []locationDef{
		{"Yard", "MBA-A"},
	}},
}

var seedSuppliers = []supplierDef{
	{"EastAfri Cables Ltd", "J. Mwangi", "0722000111"},
	{"Coastal Hardware", "A. Said", "0733000222"},
}

var seedItems = []itemDef{
	{"Cable", "CBL-001", "electrical", "Meters", "2.5mm twin with earth", 95, 120,
		map[string]float64{"NBO-A": 500, "MBA-A": 200}},
	{"Conduit Pipe", "CND-020", "electrical", "Nos", "20mm PVC, 3m length", 120, 180,
		map[string]float64{"NBO-A": 140}},
	{"Distribution Board", "DB-008", "electrical", "Nos", "8-way, surface mount", 3200, 4500,
		map[string]float64{"NBO-B": 25}},
	{"Cement", "CEM-050", "construction", "Bag", "50kg Portland", 620, 780,
		map[string]float64{"NBO-A": 60, "MBA-A": 80}},
}

// Seed inserts the reference data the forms look up. It is a no-op once the
// staff collection has rows.
func Seed(app *pocketbase.PocketBase) error {
	existing, err := app.FindAllRecords("staff")
	if err != nil {
		return fmt.Errorf("check staff records: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	staffCol, err := app.FindCollectionByNameOrId("staff")
	if err != nil {
		return fmt.Errorf("find staff collection: %w", err)
	}
	for _, def := range seedStaff {
		rec := core.NewRecord(staffCol)
		rec.Set("name", def.name)
		rec.Set("email", def.email)
		rec.Set("role", def.role)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed staff %q: %w", def.name, err)
		}
	}

	warehouseCol, err := app.FindCollectionByNameOrId("warehouses")
	if err != nil {
		return fmt.Errorf("find warehouses collection: %w", err)
	}
	locationCol, err := app.FindCollectionByNameOrId("locations")
	if err != nil {
		return fmt.Errorf("find locations collection: %w", err)
	}
	locationIDs := map[string]string{} // location code -> record id
	for _, def := range seedWarehouses {
		wh := core.NewRecord(warehouseCol)
		wh.Set("name", def.name)
		wh.Set("code", def.code)
		wh.Set("address", def.address)
		if err := app.Save(wh); err != nil {
			return fmt.Errorf("seed warehouse %q: %w", def.name, err)
		}
		for _, loc := range def.locations {
			rec := core.NewRecord(locationCol)
			rec.Set("warehouse", wh.Id)
			rec.Set("name", loc.name)
			rec.Set("code", loc.code)
			if err := app.Save(rec); err != nil {
				return fmt.Errorf("seed location %q: %w", loc.name, err)
			}
			locationIDs[loc.code] = rec.Id
		}
	}

	supplierCol, err := app.FindCollectionByNameOrId("suppliers")
	if err != nil {
		return fmt.Errorf("find suppliers collection: %w", err)
	}
	for _, def := range seedSuppliers {
		rec := core.NewRecord(supplierCol)
		rec.Set("name", def.name)
		rec.Set("contact_person", def.contactPerson)
		rec.Set("phone", def.phone)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed supplier %q: %w", def.name, err)
		}
	}

	itemCol, err := app.FindCollectionByNameOrId("inventory_items")
	if err != nil {
		return fmt.Errorf("find inventory_items collection: %w", err)
	}
	levelCol, err := app.FindCollectionByNameOrId("stock_levels")
	if err != nil {
		return fmt.Errorf("find stock_levels collection: %w", err)
	}
	for _, def := range seedItems {
		item := core.NewRecord(itemCol)
		item.Set("name", def.name)
		item.Set("sku", def.sku)
		item.Set("category", def.category)
		item.Set("uom", def.uom)
		item.Set("specs", def.specs)
		item.Set("cost_price", def.costPrice)
		item.Set("selling_price", def.sellingPrice)
		item.Set("status", "active")
		if err := app.Save(item); err != nil {
			return fmt.Errorf("seed item %q: %w", def.name, err)
		}
		for locCode, qty := range def.stock {
			locID, ok := locationIDs[locCode]
			if !ok {
				continue
			}
			lvl := core.NewRecord(levelCol)
			lvl.Set("item", item.Id)
			lvl.Set("location", locID)
			lvl.Set("current_stock", qty)
			lvl.Set("reserved_stock", 0)
			lvl.Set("available_stock", qty)
			if err := app.Save(lvl); err != nil {
				return fmt.Errorf("seed stock level %s/%s: %w", def.sku, locCode, err)
			}
		}
	}

	return nil
}
