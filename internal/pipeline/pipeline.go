package pipeline

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"houserocket/server/internal/models"
)

const DefaultOverviewRows = 10

// Options tunes a pipeline run. Zero values select the defaults.
type Options struct {
	OverviewRows int
	Filter       Filter
	Attributes   []string
}

// Run executes the full pipeline over raw listings: clean, derive, classify
// against zipcode medians, filter, estimate profit against seasonal medians
// and rank attributes. Either every table is produced or an error is returned.
func Run(listings []models.Listing, opts Options) (*models.Report, error) {
	if opts.OverviewRows <= 0 {
		opts.OverviewRows = DefaultOverviewRows
	}
	if len(opts.Attributes) == 0 {
		opts.Attributes = DefaultAttributes
	}

	enriched, err := Derive(Clean(listings))
	if err != nil {
		return nil, fmt.Errorf("failed to derive features: %w", err)
	}

	worth := opts.Filter.Apply(SelectWorth(Classify(enriched, MedianByZip(enriched))))
	profits := Estimate(worth, MedianByZipSeason(enriched))

	ranking, err := Rank(profits, opts.Attributes)
	if err != nil {
		return nil, fmt.Errorf("failed to rank attributes: %w", err)
	}

	return &models.Report{
		Enriched:      enriched,
		Overview:      enriched[:min(opts.OverviewRows, len(enriched))],
		Worth:         worth,
		Profitability: profits,
		Ranking:       ranking.Rows,
		Breakdown:     ranking.Breakdown,
		Summary:       summarize(len(enriched), worth, profits),
	}, nil
}

func summarize(total int, worth []models.WorthRow, profits []models.ProfitRow) models.Summary {
	var profit float64
	for _, p := range profits {
		profit += p.Profit
	}
	return models.Summary{
		ListingsTotal:      total,
		WorthTotal:         len(worth),
		TotalProfit:        profit,
		TotalProfitDisplay: FormatCurrency(profit),
	}
}

// FormatCurrency renders an amount as "US $ 1,234.56".
func FormatCurrency(amount float64) string {
	return message.NewPrinter(language.English).Sprintf("US $ %.2f", amount)
}
