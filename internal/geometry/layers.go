// Package geometry builds the map layers served to the dashboard: listing
// markers and zipcode choropleths over the region boundary collection.
package geometry

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"houserocket/server/internal/models"
)

// ZipProperty is the boundary feature property holding the zipcode.
const ZipProperty = "ZIP"

type Center struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

type MapLayer struct {
	Name     string                     `json:"name"`
	Legend   string                     `json:"legend,omitempty"`
	Center   Center                     `json:"center"`
	Features *geojson.FeatureCollection `json:"features"`
}

type point struct {
	lat, long float64
}

// meanCenter averages the coordinates, like the map centring in the reports.
func meanCenter(points []point) Center {
	if len(points) == 0 {
		return Center{}
	}
	var c Center
	for _, p := range points {
		c.Lat += p.lat
		c.Long += p.long
	}
	c.Lat /= float64(len(points))
	c.Long /= float64(len(points))
	return c
}

func markerLayer(name string, points []point, props []geojson.Properties) *MapLayer {
	fc := geojson.NewFeatureCollection()
	mp := make(orb.MultiPoint, 0, len(points))
	for i, p := range points {
		pt := orb.Point{p.long, p.lat}
		f := geojson.NewFeature(pt)
		f.Properties = props[i]
		fc.Append(f)
		mp = append(mp, pt)
	}
	if len(mp) > 0 {
		fc.BBox = geojson.NewBBox(mp.Bound())
	}

	return &MapLayer{
		Name:     name,
		Center:   meanCenter(points),
		Features: fc,
	}
}

// DensityMarkers places one marker per listing.
func DensityMarkers(rows []models.EnrichedListing) *MapLayer {
	points := make([]point, len(rows))
	props := make([]geojson.Properties, len(rows))
	for i, r := range rows {
		points[i] = point{r.Lat, r.Long}
		props[i] = geojson.Properties{
			"id":          r.ID,
			"price":       r.Price,
			"date":        r.Date,
			"sqft_living": r.SqftLiving,
			"bedrooms":    r.Bedrooms,
			"bathrooms":   r.Bathrooms,
			"yr_built":    r.YearBuilt,
			"popup": fmt.Sprintf("Sold US$ %.2f on: %s. Features: %d sqft, %d bedrooms, %.2f bathrooms, year built: %d",
				r.Price, r.Date, r.SqftLiving, r.Bedrooms, r.Bathrooms, r.YearBuilt),
		}
	}
	return markerLayer("density", points, props)
}

// SelectedMarkers places one marker per profitable listing.
func SelectedMarkers(rows []models.ProfitRow) *MapLayer {
	points := make([]point, len(rows))
	props := make([]geojson.Properties, len(rows))
	for i, r := range rows {
		points[i] = point{r.Lat, r.Long}
		props[i] = geojson.Properties{
			"id":          r.ID,
			"price":       r.Price,
			"sale_price":  r.SalePrice,
			"profit":      r.Profit,
			"sqft_living": r.SqftLiving,
			"bedrooms":    r.Bedrooms,
			"bathrooms":   r.Bathrooms,
			"yr_built":    r.YearBuilt,
			"popup": fmt.Sprintf("Buy price US$ %.2f | Sell price US$ %.2f with profit of US$ %.2f. Features: %d sqft, %d bedrooms, %.2f bathrooms, year built: %d",
				r.Price, r.SalePrice, r.Profit, r.SqftLiving, r.Bedrooms, r.Bathrooms, r.YearBuilt),
		}
	}
	return markerLayer("selected", points, props)
}
