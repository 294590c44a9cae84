package models

// Listing is one King County house sale as it appears in the source data.
type Listing struct {
	ID           int64   `json:"id" csv:"id"`
	Date         string  `json:"date" csv:"date"`
	Price        float64 `json:"price" csv:"price"`
	Bedrooms     int     `json:"bedrooms" csv:"bedrooms"`
	Bathrooms    float64 `json:"bathrooms" csv:"bathrooms"`
	SqftLiving   int     `json:"sqft_living" csv:"sqft_living"`
	SqftBasement int     `json:"sqft_basement" csv:"sqft_basement"`
	Floors       float64 `json:"floors" csv:"floors"`
	Waterfront   int     `json:"waterfront" csv:"waterfront"`
	Condition    int     `json:"condition" csv:"condition"`
	Grade        int     `json:"grade" csv:"grade"`
	YearBuilt    int     `json:"yr_built" csv:"yr_built"`
	Zipcode      int     `json:"zipcode" csv:"zipcode"`
	Lat          float64 `json:"lat" csv:"lat"`
	Long         float64 `json:"long" csv:"long"`
}

// Season is the sale season bucket derived from the sale month.
type Season string

const (
	SeasonSummer Season = "summer"
	SeasonSpring Season = "spring"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

// EnrichedListing is a listing plus the categorical attributes derived from it.
// Date holds the normalised YYYY-MM-DD form.
type EnrichedListing struct {
	Listing
	YearOld           string `json:"yr_old"`
	Basement          string `json:"basement"`
	Year              int    `json:"year"`
	Month             int    `json:"month"`
	DescribeBathrooms string `json:"describe_bathrooms"`
	WaterfrontLabel   string `json:"waterfront_"`
	Season            Season `json:"season"`
	ConditionName     string `json:"condition_name"`
	GradeName         string `json:"grade_name"`
}
