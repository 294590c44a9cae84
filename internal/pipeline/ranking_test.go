package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"houserocket/server/internal/models"
)

func profitRow(id int64, zipcode int, bathrooms float64, profit float64) models.ProfitRow {
	r := models.ProfitRow{Profit: profit}
	r.ID = id
	r.Zipcode = zipcode
	r.Bedrooms = 3
	r.Bathrooms = bathrooms
	r.Season = models.SeasonSummer
	r.ConditionName = "average"
	return r
}

func TestRank_PicksLargestSum(t *testing.T) {
	rows := []models.ProfitRow{
		profitRow(1, 98001, 1, 100),
		profitRow(2, 98002, 1, 150),
		profitRow(3, 98003, 1, 40),
		profitRow(4, 98002, 1, 100),
	}

	ranking, err := Rank(rows, []string{"zipcode"})
	require.NoError(t, err)
	require.Len(t, ranking.Rows, 1)

	assert.Equal(t, models.RankRow{
		Attribute:       "zipcode",
		Condition:       "98002",
		PropertiesTotal: 2,
		Profit:          250,
	}, ranking.Rows[0])

	require.Len(t, ranking.Breakdown, 1)
	assert.Equal(t, []models.GroupProfit{
		{Value: "98001", Profit: 100},
		{Value: "98002", Profit: 250},
		{Value: "98003", Profit: 40},
	}, ranking.Breakdown[0].Groups)
}

func TestRank_TieGoesToFirstKey(t *testing.T) {
	rows := []models.ProfitRow{
		profitRow(1, 98005, 1, 100),
		profitRow(2, 98004, 1, 100),
	}

	ranking, err := Rank(rows, []string{"zipcode"})
	require.NoError(t, err)
	assert.Equal(t, "98004", ranking.Rows[0].Condition)
}

func TestRank_NumericOrderForBathrooms(t *testing.T) {
	rows := []models.ProfitRow{
		profitRow(1, 98001, 10, 10),
		profitRow(2, 98001, 2.5, 10),
		profitRow(3, 98001, 3, 10),
	}

	ranking, err := Rank(rows, []string{"bathrooms"})
	require.NoError(t, err)

	values := make([]string, 0, 3)
	for _, g := range ranking.Breakdown[0].Groups {
		values = append(values, g.Value)
	}
	assert.Equal(t, []string{"2.5", "3.0", "10.0"}, values)
	assert.Equal(t, "2.5", ranking.Rows[0].Condition)
}

func TestRank_DefaultAttributes(t *testing.T) {
	rows := []models.ProfitRow{profitRow(1, 98001, 2, 500)}

	ranking, err := Rank(rows, DefaultAttributes)
	require.NoError(t, err)
	require.Len(t, ranking.Rows, len(DefaultAttributes))

	expected := []string{"98001", "3", "2.0", "summer", "average"}
	for i, row := range ranking.Rows {
		assert.Equal(t, DefaultAttributes[i], row.Attribute)
		assert.Equal(t, expected[i], row.Condition)
		assert.Equal(t, 1, row.PropertiesTotal)
		assert.Equal(t, 500.0, row.Profit)
	}
}

func TestRank_EmptyTable(t *testing.T) {
	ranking, err := Rank(nil, DefaultAttributes)
	require.NoError(t, err)
	assert.Empty(t, ranking.Rows)
	assert.Len(t, ranking.Breakdown, len(DefaultAttributes))
}

func TestRank_UnknownAttribute(t *testing.T) {
	_, err := Rank(nil, []string{"sqft_lot"})
	assert.Error(t, err)
}
