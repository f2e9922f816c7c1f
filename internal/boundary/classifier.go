// Package boundary classifies resolved addresses against the configured
// municipal boundary and derives a human-readable area name.
package boundary

import "strings"

// UnknownArea is returned when no locality field is present in the address.
const UnknownArea = "Unknown"

// areaFields is the priority order for area resolution; the first present,
// non-empty field wins.
var areaFields = []string{"suburb", "neighbourhood", "locality", "village", "city_district", "county", "road"}

// boundaryFields are the address fields concatenated for the city check.
var boundaryFields = []string{"city", "town", "village", "state_district", "county", "state"}

// ResolveArea returns the most specific locality name present in the resolved
// address, or UnknownArea when none of the known fields is set. Deterministic
// for a given address.
func ResolveArea(address map[string]string) string {
	for _, f := range areaFields {
		if v := address[f]; v != "" {
			return v
		}
	}
	return UnknownArea
}

// WithinCity reports whether the resolved address lies inside the configured
// city, by testing whether any alias occurs as a substring of the joined
// locality fields. Aliases must be lowercase; the comparison is
// case-insensitive on the address side.
func WithinCity(address map[string]string, aliases []string) bool {
	parts := make([]string, 0, len(boundaryFields))
	for _, f := range boundaryFields {
		if v := address[f]; v != "" {
			parts = append(parts, v)
		}
	}
	searchable := strings.ToLower(strings.Join(parts, " "))
	for _, alias := range aliases {
		if alias != "" && strings.Contains(searchable, alias) {
			return true
		}
	}
	return false
}
