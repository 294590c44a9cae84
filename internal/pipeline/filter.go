package pipeline

import "houserocket/server/internal/models"

// Filter narrows the worth table to a selection of condition labels and
// zipcodes. An empty set does not filter on that attribute.
type Filter struct {
	Conditions []string
	Zipcodes   []int
}

func (f Filter) IsZero() bool {
	return len(f.Conditions) == 0 && len(f.Zipcodes) == 0
}

// Apply returns the rows matching the filter, preserving order.
func (f Filter) Apply(rows []models.WorthRow) []models.WorthRow {
	if f.IsZero() {
		return rows
	}

	conditions := make(map[string]bool, len(f.Conditions))
	for _, c := range f.Conditions {
		conditions[c] = true
	}
	zipcodes := make(map[int]bool, len(f.Zipcodes))
	for _, z := range f.Zipcodes {
		zipcodes[z] = true
	}

	out := make([]models.WorthRow, 0, len(rows))
	for _, r := range rows {
		if len(conditions) > 0 && !conditions[r.ConditionName] {
			continue
		}
		if len(zipcodes) > 0 && !zipcodes[r.Zipcode] {
			continue
		}
		out = append(out, r)
	}
	return out
}
