package geometry

import (
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"houserocket/server/internal/models"
)

// ZipOf reads the zipcode of a boundary feature. The property may be encoded
// as a number or a string.
func ZipOf(f *geojson.Feature) (int, bool) {
	switch v := f.Properties[ZipProperty].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		zip, err := strconv.Atoi(v)
		return zip, err == nil
	}
	return 0, false
}

type meanAcc struct {
	sum   float64
	count int
}

// meanByZip averages value per zipcode.
func meanByZip[T any](rows []T, zip func(T) int, value func(T) float64) map[int]float64 {
	acc := make(map[int]*meanAcc)
	for _, r := range rows {
		z := zip(r)
		a, ok := acc[z]
		if !ok {
			a = &meanAcc{}
			acc[z] = a
		}
		a.sum += value(r)
		a.count++
	}

	means := make(map[int]float64, len(acc))
	for z, a := range acc {
		means[z] = a.sum / float64(a.count)
	}
	return means
}

// choropleth keeps the boundary features whose zipcode has a value and
// annotates copies of them with it. The boundary collection is not modified.
func choropleth(name, legend, key string, boundaries *geojson.FeatureCollection, values map[int]float64, center Center) *MapLayer {
	fc := geojson.NewFeatureCollection()
	var bound orb.Bound
	hasBound := false
	if boundaries != nil {
		for _, f := range boundaries.Features {
			zip, ok := ZipOf(f)
			if !ok {
				continue
			}
			v, ok := values[zip]
			if !ok {
				continue
			}

			out := geojson.NewFeature(f.Geometry)
			out.ID = f.ID
			out.Properties = f.Properties.Clone()
			out.Properties[key] = v
			fc.Append(out)

			if f.Geometry == nil {
				continue
			}
			if hasBound {
				bound = bound.Union(f.Geometry.Bound())
			} else {
				bound, hasBound = f.Geometry.Bound(), true
			}
		}
	}
	if hasBound {
		fc.BBox = geojson.NewBBox(bound)
	}

	return &MapLayer{Name: name, Legend: legend, Center: center, Features: fc}
}

// PriceChoropleth annotates each boundary with the mean listing price of its zipcode.
func PriceChoropleth(boundaries *geojson.FeatureCollection, rows []models.EnrichedListing) *MapLayer {
	means := meanByZip(rows,
		func(r models.EnrichedListing) int { return r.Zipcode },
		func(r models.EnrichedListing) float64 { return r.Price })

	points := make([]point, len(rows))
	for i, r := range rows {
		points[i] = point{r.Lat, r.Long}
	}
	return choropleth("price", "AVG PRICE", "PRICE", boundaries, means, meanCenter(points))
}

// ProfitChoropleth annotates each boundary with the mean estimated profit of its zipcode.
func ProfitChoropleth(boundaries *geojson.FeatureCollection, rows []models.ProfitRow) *MapLayer {
	means := meanByZip(rows,
		func(r models.ProfitRow) int { return r.Zipcode },
		func(r models.ProfitRow) float64 { return r.Profit })

	points := make([]point, len(rows))
	for i, r := range rows {
		points[i] = point{r.Lat, r.Long}
	}
	return choropleth("profit", "AVG PROFIT", "PROFIT", boundaries, means, meanCenter(points))
}
