package pipeline

import (
	"slices"

	"houserocket/server/internal/models"
)

// ZipBaseline maps a zipcode to the median price of its listings.
type ZipBaseline map[int]float64

// SeasonKey identifies a (zipcode, season) group.
type SeasonKey struct {
	Zipcode int
	Season  models.Season
}

// SeasonalBaseline maps a (zipcode, season) group to its median price.
type SeasonalBaseline map[SeasonKey]float64

// MedianByZip returns the median price per zipcode. Zipcodes with no
// listings have no entry.
func MedianByZip(rows []models.EnrichedListing) ZipBaseline {
	groups := make(map[int][]float64)
	for _, r := range rows {
		groups[r.Zipcode] = append(groups[r.Zipcode], r.Price)
	}

	baseline := make(ZipBaseline, len(groups))
	for zip, prices := range groups {
		baseline[zip] = median(prices)
	}
	return baseline
}

// MedianByZipSeason returns the median price per (zipcode, season).
func MedianByZipSeason(rows []models.EnrichedListing) SeasonalBaseline {
	groups := make(map[SeasonKey][]float64)
	for _, r := range rows {
		key := SeasonKey{Zipcode: r.Zipcode, Season: r.Season}
		groups[key] = append(groups[key], r.Price)
	}

	baseline := make(SeasonalBaseline, len(groups))
	for key, prices := range groups {
		baseline[key] = median(prices)
	}
	return baseline
}

// median averages the two middle values for even-sized groups.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
