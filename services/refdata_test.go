package services

import (
	"context"
	"errors"
	"testing"
)

// fakeRefSource serves canned lookups and fails the kinds listed in bad.
type fakeRefSource struct {
	lists       map[ReferenceKind][]BasicInfo
	catalog     []CatalogItem
	bad         map[ReferenceKind]bool
	catalogFail bool
}

func (s *fakeRefSource) ListReference(ctx context.Context, kind ReferenceKind) ([]BasicInfo, error) {
	if s.bad[kind] {
		return nil, errors.New("backend unavailable")
	}
	return s.lists[kind], nil
}

func (s *fakeRefSource) ListCatalog(ctx context.Context) ([]CatalogItem, error) {
	if s.catalogFail {
		return nil, errors.New("backend unavailable")
	}
	return s.catalog, nil
}

func TestLoadReferences(t *testing.T) {
	src := &fakeRefSource{
		lists: map[ReferenceKind][]BasicInfo{
			RefWarehouses: {{ID: "wh_1", Label: "Nairobi Central"}},
			RefLocations:  {{ID: "loc_1", Label: "Main Floor"}},
		},
		catalog: []CatalogItem{cableItem()},
	}

	set := LoadReferences(context.Background(), src, true, RefWarehouses, RefLocations)
	if len(set.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", set.Warnings)
	}
	if len(set.Lists[RefWarehouses]) != 1 || len(set.Lists[RefLocations]) != 1 {
		t.Errorf("Lists = %v, want both kinds loaded", set.Lists)
	}
	if len(set.Catalog) != 1 {
		t.Errorf("Catalog = %v, want one item", set.Catalog)
	}
}

func TestLoadReferencesToleratesFailures(t *testing.T) {
	src := &fakeRefSource{
		lists: map[ReferenceKind][]BasicInfo{
			RefWarehouses: {{ID: "wh_1", Label: "Nairobi Central"}},
		},
		bad: map[ReferenceKind]bool{RefLocations: true},
	}

	set := LoadReferences(context.Background(), src, false, RefWarehouses, RefLocations)
	if len(set.Lists[RefWarehouses]) != 1 {
		t.Error("healthy kind was not loaded")
	}
	if len(set.Lists[RefLocations]) != 0 {
		t.Error("failed kind should stay empty")
	}
	if len(set.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one entry for the failed kind", set.Warnings)
	}
}

func TestLoadReferencesCatalogFailure(t *testing.T) {
	src := &fakeRefSource{catalogFail: true}
	set := LoadReferences(context.Background(), src, true)
	if len(set.Catalog) != 0 {
		t.Error("catalog loaded despite failure")
	}
	if len(set.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one entry", set.Warnings)
	}
}

func TestFindCatalogItem(t *testing.T) {
	set := &ReferenceSet{Catalog: []CatalogItem{cableItem()}}
	if _, found := set.FindCatalogItem("itm_cable"); !found {
		t.Error("known item not found")
	}
	if _, found := set.FindCatalogItem("missing"); found {
		t.Error("unknown item reported as found")
	}
}
