package pipeline

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"houserocket/server/internal/models"
)

// DefaultAttributes are the attributes ranked in every report, in output order.
var DefaultAttributes = []string{"zipcode", "bedrooms", "bathrooms", "season", "condition_name"}

type groupKey struct {
	num   float64
	label string
}

type attribute struct {
	numeric bool
	key     func(models.ProfitRow) groupKey
}

var attributes = map[string]attribute{
	"zipcode": {numeric: true, key: func(r models.ProfitRow) groupKey {
		return groupKey{num: float64(r.Zipcode), label: strconv.Itoa(r.Zipcode)}
	}},
	"bedrooms": {numeric: true, key: func(r models.ProfitRow) groupKey {
		return groupKey{num: float64(r.Bedrooms), label: strconv.Itoa(r.Bedrooms)}
	}},
	"bathrooms": {numeric: true, key: func(r models.ProfitRow) groupKey {
		return groupKey{num: r.Bathrooms, label: floatLabel(r.Bathrooms)}
	}},
	"season": {key: func(r models.ProfitRow) groupKey {
		return groupKey{label: string(r.Season)}
	}},
	"condition_name": {key: func(r models.ProfitRow) groupKey {
		return groupKey{label: r.ConditionName}
	}},
}

// floatLabel renders whole numbers with a trailing ".0" so 3 baths reads "3.0".
func floatLabel(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Ranking is the best-attribute summary together with the grouped sums it
// was picked from.
type Ranking struct {
	Rows      []models.RankRow
	Breakdown []models.AttributeProfit
}

// Rank groups the profitability rows by each attribute, sums profit per value
// and picks the value with the largest sum. Groups are ordered by their key
// (numerically for numeric attributes); on a tie the first group in that
// order wins. An empty table yields no rows.
func Rank(rows []models.ProfitRow, names []string) (Ranking, error) {
	ranking := Ranking{Rows: []models.RankRow{}, Breakdown: []models.AttributeProfit{}}
	for _, name := range names {
		attr, ok := attributes[name]
		if !ok {
			return Ranking{}, fmt.Errorf("unknown ranking attribute %q", name)
		}

		groups := groupProfit(rows, attr)
		breakdown := models.AttributeProfit{Attribute: name, Groups: make([]models.GroupProfit, len(groups))}
		for i, g := range groups {
			breakdown.Groups[i] = models.GroupProfit{Value: g.key.label, Profit: g.profit}
		}
		ranking.Breakdown = append(ranking.Breakdown, breakdown)

		if len(groups) == 0 {
			continue
		}
		best := groups[0]
		for _, g := range groups[1:] {
			if g.profit > best.profit {
				best = g
			}
		}

		row := models.RankRow{Attribute: name, Condition: best.key.label}
		for _, r := range rows {
			if attr.key(r).label == best.key.label {
				row.PropertiesTotal++
				row.Profit += r.Profit
			}
		}
		ranking.Rows = append(ranking.Rows, row)
	}
	return ranking, nil
}

type group struct {
	key    groupKey
	profit float64
}

func groupProfit(rows []models.ProfitRow, attr attribute) []group {
	index := make(map[string]int)
	var groups []group
	for _, r := range rows {
		k := attr.key(r)
		i, ok := index[k.label]
		if !ok {
			i = len(groups)
			index[k.label] = i
			groups = append(groups, group{key: k})
		}
		groups[i].profit += r.Profit
	}

	slices.SortFunc(groups, func(a, b group) int {
		if attr.numeric {
			return cmp.Compare(a.key.num, b.key.num)
		}
		return cmp.Compare(a.key.label, b.key.label)
	})
	return groups
}
