package pipeline

import (
	"fmt"
	"strings"
	"time"

	"houserocket/server/internal/models"
)

const (
	ageThreshold      = 1955
	bathroomThreshold = 3.0
)

var dateLayouts = []string{
	"20060102T150405",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"20060102",
	"1/2/2006",
}

// ParseSaleDate accepts the date encodings found in the King County exports.
func ParseSaleDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

func AgeBucket(yearBuilt int) string {
	if yearBuilt > ageThreshold {
		return "> 1955"
	}
	return "< 1955"
}

func BasementLabel(sqftBasement int) string {
	if sqftBasement > 0 {
		return "yes"
	}
	return "no"
}

func BathroomBucket(bathrooms float64) string {
	if bathrooms >= bathroomThreshold {
		return "> 3"
	}
	return "< 3"
}

func WaterfrontLabel(waterfront int) string {
	if waterfront == 1 {
		return "yes"
	}
	return "no"
}

// SeasonOf buckets a sale month. May and August fall through to winter
// because the month ranges are strict on both ends.
func SeasonOf(month int) models.Season {
	switch {
	case month > 5 && month < 8:
		return models.SeasonSummer
	case month > 2 && month < 5:
		return models.SeasonSpring
	case month > 8 && month < 12:
		return models.SeasonFall
	default:
		return models.SeasonWinter
	}
}

// ConditionName maps the 1-5 condition ordinal to its label. Anything
// outside 1-4 is labelled excellent.
func ConditionName(condition int) string {
	switch condition {
	case 1:
		return "worn-out"
	case 2:
		return "fair"
	case 3:
		return "average"
	case 4:
		return "good"
	default:
		return "excellent"
	}
}

func GradeName(grade int) string {
	switch {
	case grade <= 3:
		return "low-quality"
	case grade <= 6:
		return "simple"
	case grade < 10:
		return "fair"
	default:
		return "high-quality"
	}
}

// Enrich derives the categorical attributes of a single listing.
func Enrich(l models.Listing) (models.EnrichedListing, error) {
	sold, err := ParseSaleDate(l.Date)
	if err != nil {
		return models.EnrichedListing{}, fmt.Errorf("listing %d: %w", l.ID, err)
	}

	l.Date = sold.Format("2006-01-02")
	return models.EnrichedListing{
		Listing:           l,
		YearOld:           AgeBucket(l.YearBuilt),
		Basement:          BasementLabel(l.SqftBasement),
		Year:              sold.Year(),
		Month:             int(sold.Month()),
		DescribeBathrooms: BathroomBucket(l.Bathrooms),
		WaterfrontLabel:   WaterfrontLabel(l.Waterfront),
		Season:            SeasonOf(int(sold.Month())),
		ConditionName:     ConditionName(l.Condition),
		GradeName:         GradeName(l.Grade),
	}, nil
}

// Derive enriches every listing, one output row per input row. A single
// unparseable date fails the whole batch.
func Derive(listings []models.Listing) ([]models.EnrichedListing, error) {
	enriched := make([]models.EnrichedListing, len(listings))
	for i, l := range listings {
		e, err := Enrich(l)
		if err != nil {
			return nil, err
		}
		enriched[i] = e
	}
	return enriched, nil
}
