// Package collections programmatically creates the application's PocketBase
// collections and seeds the reference data the forms look up.
package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup ensures every collection exists. Safe to run on each startup.
func Setup(app *pocketbase.PocketBase) {
	staff := ensureCollection(app, "staff", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.EmailField{Name: "email"})
		c.Fields.Add(&core.TextField{Name: "role"})
	})

	warehouses := ensureCollection(app, "warehouses", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "code"})
		c.Fields.Add(&core.TextField{Name: "address"})
	})

	locations := ensureCollection(app, "locations", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "warehouse",
			Required:      true,
			CollectionId:  warehouses.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "code"})
	})

	ensureCollection(app, "suppliers", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "contact_person"})
		c.Fields.Add(&core.EmailField{Name: "email"})
		c.Fields.Add(&core.TextField{Name: "phone"})
	})

	inventoryItems := ensureCollection(app, "inventory_items", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "sku", Required: true})
		c.Fields.Add(&core.TextField{Name: "category"})
		c.Fields.Add(&core.TextField{Name: "uom", Required: true})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.TextField{Name: "specs"})
		c.Fields.Add(&core.JSONField{Name: "alternative_codes"})
		c.Fields.Add(&core.JSONField{Name: "stock_levels"})
		c.Fields.Add(&core.NumberField{Name: "cost_price"})
		c.Fields.Add(&core.NumberField{Name: "selling_price"})
		c.Fields.Add(&core.TextField{Name: "status"})
		c.Fields.Add(&core.TextField{Name: "updated_by"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "stock_levels", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "item",
			Required:      true,
			CollectionId:  inventoryItems.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "location",
			Required:      true,
			CollectionId:  locations.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "current_stock"})
		c.Fields.Add(&core.NumberField{Name: "reserved_stock"})
		c.Fields.Add(&core.NumberField{Name: "available_stock"})
	})

	ensureCollection(app, "stock_adjustments", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:         "item",
			Required:     true,
			CollectionId: inventoryItems.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "location",
			Required:     true,
			CollectionId: locations.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true})
		c.Fields.Add(&core.TextField{Name: "reason", Required: true})
		c.Fields.Add(&core.TextField{Name: "performed_by", Required: true})
		c.Fields.Add(&core.TextField{Name: "document_ref"})
		c.Fields.Add(&core.TextField{Name: "notes"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "subcontractors", func(c *core.Collection) {
		c.Fields.Add(&core.BoolField{Name: "is_company"})
		c.Fields.Add(&core.TextField{Name: "company_name"})
		c.Fields.Add(&core.TextField{Name: "first_name"})
		c.Fields.Add(&core.TextField{Name: "last_name"})
		c.Fields.Add(&core.EmailField{Name: "email"})
		c.Fields.Add(&core.TextField{Name: "phone"})
		c.Fields.Add(&core.TextField{Name: "id_number"})
		c.Fields.Add(&core.TextField{Name: "specialty"})
		c.Fields.Add(&core.NumberField{Name: "rating"})
		c.Fields.Add(&core.TextField{Name: "notes"})
		c.Fields.Add(&core.TextField{Name: "status"})
		c.Fields.Add(&core.TextField{Name: "updated_by"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "code"})
		c.Fields.Add(&core.TextField{Name: "client_name"})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.RelationField{
			Name:         "manager",
			CollectionId: staff.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "planned_start_date"})
		c.Fields.Add(&core.TextField{Name: "target_completion_date"})
		c.Fields.Add(&core.NumberField{Name: "budget"})
		c.Fields.Add(&core.JSONField{Name: "milestones"})
		c.Fields.Add(&core.JSONField{Name: "risks"})
		c.Fields.Add(&core.TextField{Name: "status"})
		c.Fields.Add(&core.TextField{Name: "updated_by"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "service_orders", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "client_name"})
		c.Fields.Add(&core.TextField{Name: "site_address"})
		c.Fields.Add(&core.TextField{Name: "service_type"})
		c.Fields.Add(&core.RelationField{
			Name:         "project",
			CollectionId: projects.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "assigned_to"})
		c.Fields.Add(&core.TextField{Name: "scheduled_date"})
		c.Fields.Add(&core.JSONField{Name: "bom_lines"})
		c.Fields.Add(&core.JSONField{Name: "design_fields"})
		c.Fields.Add(&core.NumberField{Name: "subtotal"})
		c.Fields.Add(&core.TextField{Name: "notes"})
		c.Fields.Add(&core.TextField{Name: "status"})
		c.Fields.Add(&core.TextField{Name: "updated_by"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection returns the existing collection by name or creates a new
// base collection populated through addFields.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
