package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowJSON(t *testing.T) {
	worth := WorthRow{
		EnrichedListing: EnrichedListing{
			Listing:       Listing{ID: 7, Zipcode: 98103, Price: 100000, Bedrooms: 3},
			Season:        SeasonSummer,
			ConditionName: "good",
		},
		PriceMedian: 150000,
		Status:      StatusWorth,
	}
	profit := ProfitRow{WorthRow: worth, PriceMedianSeason: 150000, SalePrice: 130000, Profit: 30000}

	tests := []struct {
		name     string
		row      any
		expected string
	}{
		{
			name:     "Worth row",
			row:      worth,
			expected: `{"id":7,"zipcode":98103,"price":100000,"price_median":150000,"condition_name":"good"}`,
		},
		{
			name: "Profit row",
			row:  profit,
			expected: `{"id":7,"zipcode":98103,"price":100000,"season":"summer","price_median_season":150000,
				"condition_name":"good","sale_price":130000,"profit":30000}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.row)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestReportJSON_HidesEnriched(t *testing.T) {
	report := Report{
		Enriched: []EnrichedListing{{Listing: Listing{ID: 1}}},
		Summary:  Summary{ListingsTotal: 1, TotalProfitDisplay: "US $ 0.00"},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "Enriched")
	assert.Contains(t, decoded, "summary")
}
