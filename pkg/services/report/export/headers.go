package export

import (
	"sort"

	"golang.org/x/exp/maps"
)

// Snapshot rows round-trip through JSON objects, which do not preserve
// column order. preferredOrder pins the known report columns so reloaded
// snapshots export with stable headers; unknown keys follow
// alphabetically.
var preferredOrder = map[string]int{
	"indicator_id":      0,
	"indicator_code":    1,
	"indicator_name":    2,
	"project_id":        3,
	"project_name":      4,
	"organization_id":   5,
	"organization_name": 6,
	"period_start":      7,
	"period_end":        8,
	"total_value":       9,
	"entries":           10,
	"value":             11,
}

// Headers derives a deterministic column order for a decoded row.
func Headers(values map[string]any) []string {
	keys := maps.Keys(values)
	sort.Slice(keys, func(i, j int) bool {
		pi, iKnown := preferredOrder[keys[i]]
		pj, jKnown := preferredOrder[keys[j]]
		switch {
		case iKnown && jKnown:
			return pi < pj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
