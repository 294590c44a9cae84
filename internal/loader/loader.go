// Package loader reads listings and region boundaries from files, URLs or the
// listings database and keeps them in a process-wide cache keyed by source.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"houserocket/server/internal/database"
	"houserocket/server/internal/metrics"
	"houserocket/server/internal/models"
)

const sqliteScheme = "sqlite://"

var (
	ErrUnsupportedSource = errors.New("unsupported source")
	ErrBadStatus         = errors.New("unexpected response status")
)

// Loader caches decoded sources by path until they are invalidated. Cached
// values are never modified: listings are handed out as copies and
// boundaries must be treated as read-only by callers.
type Loader struct {
	logger *logrus.Logger
	client *http.Client

	mu         sync.RWMutex
	listings   map[string][]models.Listing
	boundaries map[string]*geojson.FeatureCollection
}

// Sources is the pair of inputs a dashboard run needs.
type Sources struct {
	Listings   []models.Listing
	Boundaries *geojson.FeatureCollection
}

func NewLoader(client *http.Client, logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	return &Loader{
		logger:     logger,
		client:     client,
		listings:   make(map[string][]models.Listing),
		boundaries: make(map[string]*geojson.FeatureCollection),
	}
}

// Listings returns the listings stored at path, loading them on first use.
// path is a local file, an http(s) URL or sqlite://<database file>.
func (l *Loader) Listings(ctx context.Context, path string) ([]models.Listing, error) {
	l.mu.RLock()
	cached, ok := l.listings[path]
	l.mu.RUnlock()
	if ok {
		metrics.SourceLoads.WithLabelValues("listings", "hit").Inc()
		return slices.Clone(cached), nil
	}
	metrics.SourceLoads.WithLabelValues("listings", "miss").Inc()

	start := time.Now()
	listings, err := l.readListings(ctx, path)
	if err != nil {
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"source":   path,
		"rows":     len(listings),
		"duration": time.Since(start).String(),
	}).Info("Loaded listings")

	l.mu.Lock()
	l.listings[path] = listings
	l.mu.Unlock()

	return slices.Clone(listings), nil
}

// Boundaries returns the region boundary collection stored at path.
func (l *Loader) Boundaries(ctx context.Context, path string) (*geojson.FeatureCollection, error) {
	l.mu.RLock()
	cached, ok := l.boundaries[path]
	l.mu.RUnlock()
	if ok {
		metrics.SourceLoads.WithLabelValues("boundaries", "hit").Inc()
		return cached, nil
	}
	metrics.SourceLoads.WithLabelValues("boundaries", "miss").Inc()

	rc, err := l.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	fc, err := DecodeBoundaries(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	l.logger.WithFields(logrus.Fields{
		"source":   path,
		"features": len(fc.Features),
	}).Info("Loaded boundaries")

	l.mu.Lock()
	l.boundaries[path] = fc
	l.mu.Unlock()

	return fc, nil
}

// Load fetches the listings and the boundaries concurrently.
func (l *Loader) Load(ctx context.Context, listingsPath, boundariesPath string) (*Sources, error) {
	var sources Sources
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		listings, err := l.Listings(gctx, listingsPath)
		if err != nil {
			return err
		}
		sources.Listings = listings
		return nil
	})
	g.Go(func() error {
		fc, err := l.Boundaries(gctx, boundariesPath)
		if err != nil {
			return err
		}
		sources.Boundaries = fc
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &sources, nil
}

// Invalidate drops the given sources from the cache, or every source when
// called without arguments.
func (l *Loader) Invalidate(paths ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(paths) == 0 {
		l.listings = make(map[string][]models.Listing)
		l.boundaries = make(map[string]*geojson.FeatureCollection)
		l.logger.Info("Invalidated all cached sources")
		return
	}
	for _, p := range paths {
		delete(l.listings, p)
		delete(l.boundaries, p)
	}
	l.logger.WithField("sources", paths).Info("Invalidated cached sources")
}

func (l *Loader) readListings(ctx context.Context, path string) ([]models.Listing, error) {
	if dbPath, ok := strings.CutPrefix(path, sqliteScheme); ok {
		db, err := database.NewDatabase(dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open listings database: %w", err)
		}
		defer db.Close()
		return db.GetAllListings(ctx)
	}

	rc, err := l.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	listings, err := DecodeListings(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return listings, nil
}

func (l *Loader) open(ctx context.Context, path string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "HouseRocket Dashboard/1.0")

		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %s returned %d", ErrBadStatus, path, resp.StatusCode)
		}
		return resp.Body, nil
	case strings.HasPrefix(path, sqliteScheme):
		return nil, fmt.Errorf("%w: %s does not hold a GeoJSON document", ErrUnsupportedSource, path)
	case strings.Contains(path, "://") && !strings.HasPrefix(path, "file://"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, path)
	}

	f, err := os.Open(strings.TrimPrefix(path, "file://"))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}
