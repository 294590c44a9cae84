package pipeline

import "houserocket/server/internal/models"

// OutlierBedrooms is the bedroom count of a known bad record in the dataset.
const OutlierBedrooms = 33

// Clean drops repeated ids, keeping the last occurrence at its own position,
// then removes the bedroom outlier. The input is not modified.
func Clean(listings []models.Listing) []models.Listing {
	last := make(map[int64]int, len(listings))
	for i, l := range listings {
		last[l.ID] = i
	}

	cleaned := make([]models.Listing, 0, len(last))
	for i, l := range listings {
		if last[l.ID] != i {
			continue
		}
		if l.Bedrooms == OutlierBedrooms {
			continue
		}
		cleaned = append(cleaned, l)
	}
	return cleaned
}
