// Package store adapts PocketBase records to the service layer's
// EntityWriter and ReferenceSource interfaces, and implements the
// specialized stock mutations.
package store

import (
	"context"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"fieldops/services"
)

// Store persists entities in the embedded PocketBase database.
type Store struct {
	app *pocketbase.PocketBase
}

func New(app *pocketbase.PocketBase) *Store {
	return &Store{app: app}
}

// Entity kinds accepted by the writer, mapped to their collections.
var collectionFor = map[string]string{
	"subcontractor":  "subcontractors",
	"inventory_item": "inventory_items",
	"warehouse":      "warehouses",
	"supplier":       "suppliers",
	"project":        "projects",
	"service_order":  "service_orders",
}

func (s *Store) collectionName(kind string) (string, error) {
	name, ok := collectionFor[kind]
	if !ok {
		return "", fmt.Errorf("unknown entity kind %q", kind)
	}
	return name, nil
}

// Create inserts one record and returns its id.
func (s *Store) Create(ctx context.Context, kind string, payload map[string]any) (string, error) {
	name, err := s.collectionName(kind)
	if err != nil {
		return "", err
	}
	col, err := s.app.FindCollectionByNameOrId(name)
	if err != nil {
		return "", fmt.Errorf("find collection %s: %w", name, err)
	}
	record := core.NewRecord(col)
	record.Load(payload)
	if err := s.app.Save(record); err != nil {
		return "", fmt.Errorf("save %s: %w", kind, err)
	}
	return record.Id, nil
}

// Update applies the payload over an existing record.
func (s *Store) Update(ctx context.Context, kind, id string, payload map[string]any) error {
	name, err := s.collectionName(kind)
	if err != nil {
		return err
	}
	record, err := s.app.FindRecordById(name, id)
	if err != nil {
		return fmt.Errorf("find %s %s: %w", kind, id, err)
	}
	record.Load(payload)
	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("save %s %s: %w", kind, id, err)
	}
	return nil
}

// Delete removes one record.
func (s *Store) Delete(ctx context.Context, kind, id string) error {
	name, err := s.collectionName(kind)
	if err != nil {
		return err
	}
	record, err := s.app.FindRecordById(name, id)
	if err != nil {
		return fmt.Errorf("find %s %s: %w", kind, id, err)
	}
	if err := s.app.Delete(record); err != nil {
		return fmt.Errorf("delete %s %s: %w", kind, id, err)
	}
	return nil
}

// FetchByID hydrates an edit form from a persisted record.
func (s *Store) FetchByID(ctx context.Context, kind, id string) (map[string]any, error) {
	name, err := s.collectionName(kind)
	if err != nil {
		return nil, err
	}
	record, err := s.app.FindRecordById(name, id)
	if err != nil {
		return nil, fmt.Errorf("find %s %s: %w", kind, id, err)
	}
	return record.PublicExport(), nil
}

// Reference lookup collections, mapped to collection name + label field.
var referenceFor = map[services.ReferenceKind]struct {
	collection string
	labelField string
}{
	services.RefUsers:          {"staff", "name"},
	services.RefSubcontractors: {"subcontractors", "display_name"},
	services.RefWarehouses:     {"warehouses", "name"},
	services.RefLocations:      {"locations", "name"},
	services.RefServiceOrders:  {"service_orders", "title"},
	services.RefSuppliers:      {"suppliers", "name"},
	services.RefProjects:       {"projects", "name"},
}

// ListReference returns the minimal selector rows for one lookup kind.
func (s *Store) ListReference(ctx context.Context, kind services.ReferenceKind) ([]services.BasicInfo, error) {
	ref, ok := referenceFor[kind]
	if !ok {
		return nil, fmt.Errorf("unknown reference kind %q", kind)
	}
	records, err := s.app.FindAllRecords(ref.collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", ref.collection, err)
	}
	rows := make([]services.BasicInfo, 0, len(records))
	for _, rec := range records {
		label := rec.GetString(ref.labelField)
		if label == "" && kind == services.RefSubcontractors {
			label = subcontractorLabel(rec)
		}
		rows = append(rows, services.BasicInfo{ID: rec.Id, Label: label})
	}
	return rows, nil
}

func subcontractorLabel(rec *core.Record) string {
	if rec.GetBool("is_company") {
		return rec.GetString("company_name")
	}
	return rec.GetString("first_name") + " " + rec.GetString("last_name")
}

// ListCatalog returns the inventory catalog with the fields a BOM line
// auto-fills from. A missing selling price stays nil so downstream totals
// remain unset rather than zero.
func (s *Store) ListCatalog(ctx context.Context) ([]services.CatalogItem, error) {
	records, err := s.app.FindAllRecords("inventory_items")
	if err != nil {
		return nil, fmt.Errorf("list inventory_items: %w", err)
	}
	items := make([]services.CatalogItem, 0, len(records))
	for _, rec := range records {
		item := services.CatalogItem{
			ID:            rec.Id,
			Name:          rec.GetString("name"),
			SKU:           rec.GetString("sku"),
			Specs:         rec.GetString("specs"),
			UnitOfMeasure: rec.GetString("uom"),
		}
		if raw := rec.Get("selling_price"); raw != nil {
			price := cast.ToFloat64(raw)
			item.SellingPrice = &price
		}
		items = append(items, item)
	}
	return items, nil
}

// StockLevels lists the persisted per-location levels of one item.
func (s *Store) StockLevels(ctx context.Context, itemID string) ([]services.StockLevel, error) {
	records, err := s.app.FindRecordsByFilter(
		"stock_levels",
		"item = {:item}",
		"", 0, 0,
		map[string]any{"item": itemID},
	)
	if err != nil {
		return nil, fmt.Errorf("list stock levels for %s: %w", itemID, err)
	}
	levels := make([]services.StockLevel, 0, len(records))
	for _, rec := range records {
		levels = append(levels, services.StockLevel{
			LocationID:     rec.GetString("location"),
			CurrentStock:   rec.GetFloat("current_stock"),
			ReservedStock:  rec.GetFloat("reserved_stock"),
			AvailableStock: rec.GetFloat("available_stock"),
		})
	}
	return levels, nil
}

func (s *Store) findStockLevel(itemID, locationID string) (*core.Record, error) {
	records, err := s.app.FindRecordsByFilter(
		"stock_levels",
		"item = {:item} && location = {:location}",
		"", 1, 0,
		map[string]any{"item": itemID, "location": locationID},
	)
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return records[0], nil
}

// AdjustStock applies a signed quantity change to one item/location level and
// records the adjustment in the audit trail. The level may not go negative.
func (s *Store) AdjustStock(ctx context.Context, adj services.StockAdjustment) error {
	if errs := adj.Validate(); len(errs) > 0 {
		return &services.ValidationError{Fields: errs}
	}

	level, err := s.findStockLevel(adj.ItemID, adj.LocationID)
	if err != nil {
		return fmt.Errorf("find stock level: %w", err)
	}
	if level == nil {
		if adj.Quantity < 0 {
			return fmt.Errorf("no stock of item %s at location %s", adj.ItemID, adj.LocationID)
		}
		col, err := s.app.FindCollectionByNameOrId("stock_levels")
		if err != nil {
			return fmt.Errorf("find stock_levels collection: %w", err)
		}
		level = core.NewRecord(col)
		level.Set("item", adj.ItemID)
		level.Set("location", adj.LocationID)
	}

	current := level.GetFloat("current_stock") + adj.Quantity
	if current < 0 {
		return fmt.Errorf("adjustment would leave %.2f units; stock cannot go negative", current)
	}
	reserved := level.GetFloat("reserved_stock")
	level.Set("current_stock", current)
	level.Set("available_stock", current-reserved)
	if err := s.app.Save(level); err != nil {
		return fmt.Errorf("save stock level: %w", err)
	}

	s.recordAdjustment(adj.ItemID, adj.LocationID, adj.Quantity, adj.Reason, adj.PerformedBy, adj.DocumentRef, "")
	return nil
}

// UpdateReservedStock moves a quantity in or out of reservation for one
// item/location level. Reserved stock stays within [0, current].
func (s *Store) UpdateReservedStock(ctx context.Context, ch services.ReservationChange) error {
	if errs := ch.Validate(); len(errs) > 0 {
		return &services.ValidationError{Fields: errs}
	}

	level, err := s.findStockLevel(ch.ItemID, ch.LocationID)
	if err != nil {
		return fmt.Errorf("find stock level: %w", err)
	}
	if level == nil {
		return fmt.Errorf("no stock of item %s at location %s", ch.ItemID, ch.LocationID)
	}

	delta := ch.Quantity
	if ch.Action == services.ReserveDecrease {
		delta = -delta
	}
	current := level.GetFloat("current_stock")
	reserved := level.GetFloat("reserved_stock") + delta
	if reserved < 0 {
		return fmt.Errorf("cannot release more than is reserved")
	}
	if reserved > current {
		return fmt.Errorf("cannot reserve more than current stock (%.2f)", current)
	}
	level.Set("reserved_stock", reserved)
	level.Set("available_stock", current-reserved)
	if err := s.app.Save(level); err != nil {
		return fmt.Errorf("save stock level: %w", err)
	}

	s.recordAdjustment(ch.ItemID, ch.LocationID, delta, "reservation "+string(ch.Action), ch.PerformedBy, "", ch.Notes)
	return nil
}

// recordAdjustment appends one audit row. Failures are logged, not fatal:
// the level change itself has already committed.
func (s *Store) recordAdjustment(itemID, locationID string, qty float64, reason, performedBy, documentRef, notes string) {
	col, err := s.app.FindCollectionByNameOrId("stock_adjustments")
	if err != nil {
		log.Printf("store: could not find stock_adjustments collection: %v", err)
		return
	}
	rec := core.NewRecord(col)
	rec.Set("item", itemID)
	rec.Set("location", locationID)
	rec.Set("quantity", qty)
	rec.Set("reason", reason)
	rec.Set("performed_by", performedBy)
	rec.Set("document_ref", documentRef)
	rec.Set("notes", notes)
	if err := s.app.Save(rec); err != nil {
		log.Printf("store: could not record stock adjustment: %v", err)
	}
}
