// Package pipeline turns raw listings into the worth-buying and profitability reports.
package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidDate   = errors.New("invalid sale date")
)

// RequiredColumns lists the source columns every listings table must carry.
var RequiredColumns = []string{
	"id", "date", "price", "bedrooms", "bathrooms", "sqft_living", "sqft_basement",
	"floors", "waterfront", "condition", "grade", "yr_built", "zipcode", "lat", "long",
}

// ValidateColumns checks a header row against RequiredColumns.
func ValidateColumns(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}
