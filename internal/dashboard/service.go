// Package dashboard runs the report pipeline against the configured sources.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"houserocket/server/config"
	"houserocket/server/internal/geometry"
	"houserocket/server/internal/metrics"
	"houserocket/server/internal/models"
	"houserocket/server/internal/pipeline"
)

var ErrUnknownLayer = errors.New("unknown map layer")

// Layer names served by Service.Layer.
const (
	LayerDensity  = "density"
	LayerPrice    = "price"
	LayerSelected = "selected"
	LayerProfit   = "profit"
)

// Sources provides cached listings and boundaries.
type Sources interface {
	Listings(ctx context.Context, path string) ([]models.Listing, error)
	Boundaries(ctx context.Context, path string) (*geojson.FeatureCollection, error)
	Invalidate(paths ...string)
}

// Query is a caller's selection. Zero values use the configured defaults.
type Query struct {
	Filter       pipeline.Filter
	OverviewRows int
}

type Service struct {
	sources Sources
	config  *config.Config
	logger  *logrus.Logger
}

func NewService(sources Sources, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		sources: sources,
		config:  cfg,
		logger:  logger,
	}
}

// Report loads the listings and runs the whole pipeline for q.
func (s *Service) Report(ctx context.Context, q Query) (report *models.Report, err error) {
	start := time.Now()
	defer func() { metrics.ObserveRun(start, err) }()

	listings, err := s.sources.Listings(ctx, s.config.Sources.ListingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}

	rows := q.OverviewRows
	if rows <= 0 {
		rows = s.config.Report.OverviewRows
	}

	report, err = pipeline.Run(listings, pipeline.Options{
		OverviewRows: rows,
		Filter:       q.Filter,
	})
	if err != nil {
		return nil, err
	}
	metrics.WorthListings.Set(float64(len(report.Worth)))

	s.logger.WithFields(logrus.Fields{
		"listings": report.Summary.ListingsTotal,
		"worth":    report.Summary.WorthTotal,
		"selected": len(report.Profitability),
		"filtered": !q.Filter.IsZero(),
		"duration": time.Since(start).String(),
	}).Debug("Built report")

	return report, nil
}

// Layer builds the named map layer for q.
func (s *Service) Layer(ctx context.Context, name string, q Query) (*geometry.MapLayer, error) {
	switch name {
	case LayerDensity, LayerPrice, LayerSelected, LayerProfit:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownLayer, name)
	}

	report, err := s.Report(ctx, q)
	if err != nil {
		return nil, err
	}

	switch name {
	case LayerDensity:
		return geometry.DensityMarkers(report.Enriched), nil
	case LayerSelected:
		return geometry.SelectedMarkers(report.Profitability), nil
	}

	boundaries, err := s.sources.Boundaries(ctx, s.config.Sources.GeofileURL)
	if err != nil {
		return nil, fmt.Errorf("failed to load boundaries: %w", err)
	}
	if name == LayerPrice {
		return geometry.PriceChoropleth(boundaries, report.Enriched), nil
	}
	return geometry.ProfitChoropleth(boundaries, report.Profitability), nil
}

// Invalidate drops every cached source.
func (s *Service) Invalidate() {
	s.sources.Invalidate()
}

// Warm loads both sources into the cache.
func (s *Service) Warm(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.sources.Listings(gctx, s.config.Sources.ListingsPath)
		return err
	})
	g.Go(func() error {
		_, err := s.sources.Boundaries(gctx, s.config.Sources.GeofileURL)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to warm sources: %w", err)
	}
	return nil
}
