package models

import "encoding/json"

// Status is the buy verdict for a listing.
type Status string

const (
	StatusWorth    Status = "worth"
	StatusNotWorth Status = "not worth"
)

// WorthRow is an enriched listing joined with its zipcode median price.
type WorthRow struct {
	EnrichedListing
	PriceMedian float64
	Status      Status
}

// MarshalJSON emits the worth-buying table columns.
func (w WorthRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID            int64   `json:"id"`
		Zipcode       int     `json:"zipcode"`
		Price         float64 `json:"price"`
		PriceMedian   float64 `json:"price_median"`
		ConditionName string  `json:"condition_name"`
	}{w.ID, w.Zipcode, w.Price, w.PriceMedian, w.ConditionName})
}

// ProfitRow is a worth-buying listing with its estimated resale price.
type ProfitRow struct {
	WorthRow
	PriceMedianSeason float64
	SalePrice         float64
	Profit            float64
}

// MarshalJSON emits the profitability table columns.
func (p ProfitRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID                int64   `json:"id"`
		Zipcode           int     `json:"zipcode"`
		Price             float64 `json:"price"`
		Season            Season  `json:"season"`
		PriceMedianSeason float64 `json:"price_median_season"`
		ConditionName     string  `json:"condition_name"`
		SalePrice         float64 `json:"sale_price"`
		Profit            float64 `json:"profit"`
	}{p.ID, p.Zipcode, p.Price, p.Season, p.PriceMedianSeason, p.ConditionName, p.SalePrice, p.Profit})
}

// RankRow summarises the most profitable value of one attribute.
type RankRow struct {
	Attribute       string  `json:"attribute"`
	Condition       string  `json:"condition"`
	PropertiesTotal int     `json:"properties_total"`
	Profit          float64 `json:"profit"`
}

// GroupProfit is the summed profit of one attribute value.
type GroupProfit struct {
	Value  string  `json:"value"`
	Profit float64 `json:"profit"`
}

// AttributeProfit holds the grouped profit sums of one attribute in key order.
type AttributeProfit struct {
	Attribute string        `json:"attribute"`
	Groups    []GroupProfit `json:"groups"`
}

type Summary struct {
	ListingsTotal      int     `json:"listings_total"`
	WorthTotal         int     `json:"worth_total"`
	TotalProfit        float64 `json:"total_profit"`
	TotalProfitDisplay string  `json:"total_profit_display"`
}

// Report is the full output of one pipeline run.
type Report struct {
	Enriched      []EnrichedListing `json:"-"`
	Overview      []EnrichedListing `json:"overview"`
	Worth         []WorthRow        `json:"worth"`
	Profitability []ProfitRow       `json:"profitability"`
	Ranking       []RankRow         `json:"ranking"`
	Breakdown     []AttributeProfit `json:"breakdown"`
	Summary       Summary           `json:"summary"`
}
