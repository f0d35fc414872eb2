package services

import (
	"strings"

	"github.com/spf13/cast"
)

// BuildPayload assembles the final API-shaped object from accumulated section
// state. Collected values are laid over the entity's defaults template so the
// API always receives a complete object even when optional sections were
// skipped. Empty strings and nils are stripped: the API distinguishes
// "absent" from "empty string". Fields named in delimited arrive as
// comma-separated strings and are normalized into real arrays.
func BuildPayload(defaults, collected map[string]any, delimited ...string) map[string]any {
	payload := make(map[string]any, len(defaults)+len(collected))
	for k, v := range defaults {
		if !absent(v) {
			payload[k] = v
		}
	}
	// Absent collected values are skipped rather than set, so a field the user
	// left blank falls back to its default instead of erasing it.
	for k, v := range collected {
		if !absent(v) {
			payload[k] = v
		}
	}
	for _, field := range delimited {
		if s, ok := payload[field].(string); ok {
			payload[field] = SplitDelimited(s)
		}
	}
	return payload
}

func absent(v any) bool {
	switch tv := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(tv) == ""
	}
	return false
}

// SplitDelimited turns a comma-separated string into a trimmed array,
// dropping empty entries.
func SplitDelimited(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FloatField reads a loosely typed numeric form value. Blank and unparseable
// inputs come back as nil rather than zero, so downstream derived totals can
// tell "not entered" from "entered 0".
func FloatField(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return nil
	}
	return &f
}

// FloatOrZero reads a numeric form value, treating blank or invalid input
// as zero. Used for stock figures where missing means zero.
func FloatOrZero(raw string) float64 {
	return cast.ToFloat64(strings.TrimSpace(raw))
}

// BoolField reads a checkbox-style form value ("on", "true", "1", ...).
func BoolField(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "on" {
		return true
	}
	return cast.ToBool(raw)
}
