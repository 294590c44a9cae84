package pipeline

import (
	"cmp"
	"slices"

	"houserocket/server/internal/models"
)

// MinCondition is the lowest condition ordinal a buy candidate may have.
const MinCondition = 3

// Verdict classifies a listing against its zipcode median.
func Verdict(price float64, condition int, medianPrice float64) models.Status {
	if price < medianPrice && condition >= MinCondition {
		return models.StatusWorth
	}
	return models.StatusNotWorth
}

// Classify joins every listing with its zipcode median and assigns a status.
// Rows come back grouped by ascending zipcode, input order within a zipcode.
// A listing whose zipcode is missing from the baseline is not worth buying.
func Classify(rows []models.EnrichedListing, baseline ZipBaseline) []models.WorthRow {
	out := make([]models.WorthRow, len(rows))
	for i, r := range rows {
		m, ok := baseline[r.Zipcode]
		status := models.StatusNotWorth
		if ok {
			status = Verdict(r.Price, r.Condition, m)
		}
		out[i] = models.WorthRow{EnrichedListing: r, PriceMedian: m, Status: status}
	}

	slices.SortStableFunc(out, func(a, b models.WorthRow) int {
		return cmp.Compare(a.Zipcode, b.Zipcode)
	})
	return out
}

// SelectWorth keeps the worth rows, stably sorted by condition label
// (alphabetically) and then price.
func SelectWorth(rows []models.WorthRow) []models.WorthRow {
	worth := make([]models.WorthRow, 0)
	for _, r := range rows {
		if r.Status == models.StatusWorth {
			worth = append(worth, r)
		}
	}

	slices.SortStableFunc(worth, func(a, b models.WorthRow) int {
		if c := cmp.Compare(a.ConditionName, b.ConditionName); c != 0 {
			return c
		}
		return cmp.Compare(a.Price, b.Price)
	})
	return worth
}
