package services

import (
	"context"
	"fmt"
	"log"
	"time"
)

// ReferenceKind names one read-only lookup collection.
type ReferenceKind string

const (
	RefUsers          ReferenceKind = "users"
	RefSubcontractors ReferenceKind = "subcontractors"
	RefWarehouses     ReferenceKind = "warehouses"
	RefLocations      ReferenceKind = "locations"
	RefServiceOrders  ReferenceKind = "service_orders"
	RefSuppliers      ReferenceKind = "suppliers"
	RefProjects       ReferenceKind = "projects"
)

// BasicInfo is the minimal row shape a selector needs.
type BasicInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ReferenceSource provides the lookup collections. The PocketBase store
// implements it; tests supply fakes.
type ReferenceSource interface {
	ListReference(ctx context.Context, kind ReferenceKind) ([]BasicInfo, error)
	ListCatalog(ctx context.Context) ([]CatalogItem, error)
}

// ReferenceSet holds the lookups one form session works from. It is loaded
// once at form-open and read-only afterwards.
type ReferenceSet struct {
	Lists    map[ReferenceKind][]BasicInfo
	Catalog  []CatalogItem
	Warnings []string
}

// FindCatalogItem looks up an inventory catalog entry by id.
func (rs *ReferenceSet) FindCatalogItem(id string) (CatalogItem, bool) {
	for _, item := range rs.Catalog {
		if item.ID == id {
			return item, true
		}
	}
	return CatalogItem{}, false
}

// DefaultLoadTimeout bounds a single reference fetch at form-open.
const DefaultLoadTimeout = 10 * time.Second

// LoadReferences fetches each requested lookup kind once. A failed kind is
// non-blocking: its list stays empty and a warning is recorded so the form
// still opens with freeform fields usable.
func LoadReferences(ctx context.Context, src ReferenceSource, withCatalog bool, kinds ...ReferenceKind) *ReferenceSet {
	set := &ReferenceSet{Lists: make(map[ReferenceKind][]BasicInfo, len(kinds))}
	for _, kind := range kinds {
		kctx, cancel := context.WithTimeout(ctx, DefaultLoadTimeout)
		rows, err := src.ListReference(kctx, kind)
		cancel()
		if err != nil {
			log.Printf("refdata: could not load %s: %v", kind, err)
			set.Lists[kind] = nil
			set.Warnings = append(set.Warnings, fmt.Sprintf("Could not load %s", kind))
			continue
		}
		set.Lists[kind] = rows
	}
	if withCatalog {
		cctx, cancel := context.WithTimeout(ctx, DefaultLoadTimeout)
		catalog, err := src.ListCatalog(cctx)
		cancel()
		if err != nil {
			log.Printf("refdata: could not load inventory catalog: %v", err)
			set.Warnings = append(set.Warnings, "Could not load inventory catalog")
		} else {
			set.Catalog = catalog
		}
	}
	return set
}
