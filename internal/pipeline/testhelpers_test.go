package pipeline

import "houserocket/server/internal/models"

func testListing(id int64, zipcode int, price float64, condition int) models.Listing {
	return models.Listing{
		ID:        id,
		Date:      "20140612T000000",
		Price:     price,
		Bedrooms:  3,
		Bathrooms: 2.25,
		Condition: condition,
		Grade:     7,
		YearBuilt: 1990,
		Zipcode:   zipcode,
		Lat:       47.5,
		Long:      -122.2,
	}
}

func enrichAll(listings ...models.Listing) []models.EnrichedListing {
	enriched, err := Derive(listings)
	if err != nil {
		panic(err)
	}
	return enriched
}
