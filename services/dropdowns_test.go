package services

import "testing"

func TestDropdownOptionsNonEmpty(t *testing.T) {
	sets := map[string][]string{
		"uom":                  UOMOptions,
		"service_type":         ServiceTypeOptions,
		"project_status":       ProjectStatusOptions,
		"service_order_status": ServiceOrderStatusOptions,
		"severity":             SeverityOptions,
		"specialty":            SpecialtyOptions,
	}
	for name, opts := range sets {
		if len(opts) == 0 {
			t.Errorf("%s options are empty", name)
		}
		seen := map[string]bool{}
		for _, o := range opts {
			if seen[o] {
				t.Errorf("%s contains duplicate %q", name, o)
			}
			seen[o] = true
		}
	}
}

func TestUOMContainsCommonUnits(t *testing.T) {
	want := map[string]bool{"Nos": false, "Meters": false, "Bag": false}
	for _, o := range UOMOptions {
		if _, ok := want[o]; ok {
			want[o] = true
		}
	}
	for unit, found := range want {
		if !found {
			t.Errorf("UOMOptions missing %q", unit)
		}
	}
}
