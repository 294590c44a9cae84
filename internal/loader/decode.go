package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"
	"github.com/paulmach/orb/geojson"

	"houserocket/server/internal/models"
	"houserocket/server/internal/pipeline"
)

// DecodeListings reads a listings CSV. The header must carry every column in
// pipeline.RequiredColumns; extra columns are ignored.
func DecodeListings(r io.Reader) ([]models.Listing, error) {
	reader := csv.NewReader(r)

	dec, err := csvutil.NewDecoder(reader)
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty listings file", pipeline.ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if err := pipeline.ValidateColumns(dec.Header()); err != nil {
		return nil, err
	}

	var listings []models.Listing
	for row := 2; ; row++ {
		var l models.Listing
		if err := dec.Decode(&l); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to decode row %d: %w", row, err)
		}
		listings = append(listings, l)
	}
	return listings, nil
}

// DecodeBoundaries reads a GeoJSON FeatureCollection of region polygons.
func DecodeBoundaries(r io.Reader) (*geojson.FeatureCollection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read boundaries: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse boundaries: %w", err)
	}
	return fc, nil
}
