package pipeline

import "houserocket/server/internal/models"

const (
	// HighMarkup applies when the price is at or below the seasonal median.
	HighMarkup = 1.30
	// LowMarkup applies when the price is above the seasonal median.
	LowMarkup = 1.10
)

// SalePrice returns the hypothetical resale price for a purchase price.
func SalePrice(price, seasonalMedian float64) float64 {
	if price <= seasonalMedian {
		return price * HighMarkup
	}
	return price * LowMarkup
}

// Estimate prices every worth row against its (zipcode, season) median.
// Rows without a seasonal baseline are dropped; order is preserved.
func Estimate(worth []models.WorthRow, seasonal SeasonalBaseline) []models.ProfitRow {
	out := make([]models.ProfitRow, 0, len(worth))
	for _, w := range worth {
		m, ok := seasonal[SeasonKey{Zipcode: w.Zipcode, Season: w.Season}]
		if !ok {
			continue
		}
		sale := SalePrice(w.Price, m)
		out = append(out, models.ProfitRow{
			WorthRow:          w,
			PriceMedianSeason: m,
			SalePrice:         sale,
			Profit:            sale - w.Price,
		})
	}
	return out
}
