package geometry

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"houserocket/server/internal/models"
)

func enriched(id int64, zipcode int, price, lat, long float64) models.EnrichedListing {
	var e models.EnrichedListing
	e.ID = id
	e.Zipcode = zipcode
	e.Price = price
	e.Lat = lat
	e.Long = long
	e.Date = "2014-10-13"
	return e
}

func square(minX, minY float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{minX, minY}, {minX + 1, minY}, {minX + 1, minY + 1}, {minX, minY + 1}, {minX, minY},
	}}
}

func testBoundaries() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	a := geojson.NewFeature(square(0, 0))
	a.Properties = geojson.Properties{"ZIP": float64(98001), "NAME": "Auburn"}
	fc.Append(a)

	b := geojson.NewFeature(square(5, 5))
	b.Properties = geojson.Properties{"ZIP": "98002"}
	fc.Append(b)

	c := geojson.NewFeature(square(10, 10))
	c.Properties = geojson.Properties{"ZIP": float64(98999)}
	fc.Append(c)

	return fc
}

func TestZipOf(t *testing.T) {
	fc := testBoundaries()

	zip, ok := ZipOf(fc.Features[0])
	assert.True(t, ok)
	assert.Equal(t, 98001, zip)

	zip, ok = ZipOf(fc.Features[1])
	assert.True(t, ok)
	assert.Equal(t, 98002, zip)

	_, ok = ZipOf(geojson.NewFeature(orb.Point{0, 0}))
	assert.False(t, ok)
}

func TestDensityMarkers(t *testing.T) {
	rows := []models.EnrichedListing{
		enriched(1, 98001, 100000, 47.0, -122.0),
		enriched(2, 98002, 200000, 48.0, -121.0),
	}

	layer := DensityMarkers(rows)
	assert.Equal(t, "density", layer.Name)
	assert.InDelta(t, 47.5, layer.Center.Lat, 1e-9)
	assert.InDelta(t, -121.5, layer.Center.Long, 1e-9)

	require.Len(t, layer.Features.Features, 2)
	f := layer.Features.Features[0]
	assert.Equal(t, orb.Point{-122.0, 47.0}, f.Geometry)
	assert.Equal(t, 100000.0, f.Properties["price"])
	assert.Contains(t, f.Properties["popup"], "Sold US$ 100000.00 on: 2014-10-13")
	assert.Len(t, layer.Features.BBox, 4)
}

func TestMarkers_Empty(t *testing.T) {
	layer := SelectedMarkers(nil)
	assert.Equal(t, Center{}, layer.Center)
	assert.Empty(t, layer.Features.Features)
	assert.Nil(t, layer.Features.BBox)
}

func TestPriceChoropleth(t *testing.T) {
	boundaries := testBoundaries()
	rows := []models.EnrichedListing{
		enriched(1, 98001, 100000, 47.0, -122.0),
		enriched(2, 98001, 300000, 47.0, -122.0),
		enriched(3, 98002, 500000, 47.0, -122.0),
	}

	layer := PriceChoropleth(boundaries, rows)
	assert.Equal(t, "AVG PRICE", layer.Legend)
	require.Len(t, layer.Features.Features, 2, "zipcodes without listings are left out")

	assert.Equal(t, 200000.0, layer.Features.Features[0].Properties["PRICE"])
	assert.Equal(t, "Auburn", layer.Features.Features[0].Properties["NAME"])
	assert.Equal(t, 500000.0, layer.Features.Features[1].Properties["PRICE"])
	assert.Equal(t, geojson.NewBBox(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{6, 6}}), layer.Features.BBox)

	_, touched := boundaries.Features[0].Properties["PRICE"]
	assert.False(t, touched, "boundary collection must not be modified")
}

func TestProfitChoropleth(t *testing.T) {
	var r1, r2 models.ProfitRow
	r1.Zipcode, r1.Profit = 98002, 30000
	r2.Zipcode, r2.Profit = 98002, 10000

	layer := ProfitChoropleth(testBoundaries(), []models.ProfitRow{r1, r2})
	assert.Equal(t, "AVG PROFIT", layer.Legend)
	require.Len(t, layer.Features.Features, 1)
	assert.Equal(t, 20000.0, layer.Features.Features[0].Properties["PROFIT"])
}

func TestChoropleth_NilBoundaries(t *testing.T) {
	layer := PriceChoropleth(nil, []models.EnrichedListing{enriched(1, 98001, 1, 0, 0)})
	assert.Empty(t, layer.Features.Features)
}

func TestMapLayer_JSON(t *testing.T) {
	layer := DensityMarkers([]models.EnrichedListing{enriched(1, 98001, 1, 47, -122)})
	data, err := json.Marshal(layer)
	require.NoError(t, err)

	var decoded struct {
		Name     string `json:"name"`
		Center   Center `json:"center"`
		Features struct {
			Type string `json:"type"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "density", decoded.Name)
	assert.Equal(t, "FeatureCollection", decoded.Features.Type)
	assert.Equal(t, 47.0, decoded.Center.Lat)
}
