package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"houserocket/server/internal/models"
)

func TestRun_ThreeListingsOneZipcode(t *testing.T) {
	listings := []models.Listing{
		testListing(1, 98103, 100000, 5),
		testListing(2, 98103, 150000, 5),
		testListing(3, 98103, 200000, 2),
	}

	report, err := Run(listings, Options{})
	require.NoError(t, err)

	require.Len(t, report.Worth, 1)
	assert.Equal(t, int64(1), report.Worth[0].ID)
	assert.Equal(t, 150000.0, report.Worth[0].PriceMedian)

	require.Len(t, report.Profitability, 1)
	p := report.Profitability[0]
	assert.Equal(t, 150000.0, p.PriceMedianSeason)
	assert.InDelta(t, 130000.0, p.SalePrice, 1e-6)
	assert.InDelta(t, 30000.0, p.Profit, 1e-6)

	assert.Len(t, report.Ranking, len(DefaultAttributes))
	assert.Equal(t, "98103", report.Ranking[0].Condition)

	assert.Equal(t, 3, report.Summary.ListingsTotal)
	assert.Equal(t, 1, report.Summary.WorthTotal)
	assert.InDelta(t, 30000.0, report.Summary.TotalProfit, 1e-6)
	assert.Equal(t, "US $ 30,000.00", report.Summary.TotalProfitDisplay)
}

func TestRun_CleansBeforeAggregating(t *testing.T) {
	outlier := testListing(4, 98103, 1, 5)
	outlier.Bedrooms = OutlierBedrooms

	listings := []models.Listing{
		testListing(1, 98103, 900000, 5),
		testListing(2, 98103, 150000, 5),
		testListing(1, 98103, 100000, 5),
		outlier,
	}

	report, err := Run(listings, Options{})
	require.NoError(t, err)
	assert.Len(t, report.Enriched, 2)
	require.Len(t, report.Worth, 1)
	assert.Equal(t, int64(1), report.Worth[0].ID)
	assert.Equal(t, 125000.0, report.Worth[0].PriceMedian)
}

func TestRun_OverviewLimit(t *testing.T) {
	var listings []models.Listing
	for i := 0; i < 15; i++ {
		listings = append(listings, testListing(int64(i), 98001, float64(100000+i), 3))
	}

	report, err := Run(listings, Options{})
	require.NoError(t, err)
	assert.Len(t, report.Overview, DefaultOverviewRows)
	assert.Len(t, report.Enriched, 15)

	report, err = Run(listings, Options{OverviewRows: 3})
	require.NoError(t, err)
	assert.Len(t, report.Overview, 3)
}

func TestRun_FilterAppliesBeforeProfitability(t *testing.T) {
	listings := []models.Listing{
		testListing(1, 98001, 100000, 3),
		testListing(2, 98001, 300000, 3),
		testListing(3, 98002, 100000, 4),
		testListing(4, 98002, 300000, 4),
	}

	report, err := Run(listings, Options{Filter: Filter{Zipcodes: []int{98002}}})
	require.NoError(t, err)
	require.Len(t, report.Worth, 1)
	assert.Equal(t, int64(3), report.Worth[0].ID)
	require.Len(t, report.Profitability, 1)
	assert.Equal(t, int64(3), report.Profitability[0].ID)
	assert.Equal(t, 1, report.Summary.WorthTotal)
}

func TestRun_InvalidDateIsFatal(t *testing.T) {
	bad := testListing(1, 98001, 100, 3)
	bad.Date = "13/45/2014"

	report, err := Run([]models.Listing{bad}, Options{})
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Nil(t, report)
}

func TestRun_UnknownAttribute(t *testing.T) {
	_, err := Run([]models.Listing{testListing(1, 98001, 100, 3)}, Options{Attributes: []string{"view"}})
	assert.Error(t, err)
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "US $ 1,234,567.89", FormatCurrency(1234567.891))
	assert.Equal(t, "US $ 0.00", FormatCurrency(0))
}
