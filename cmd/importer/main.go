// Command importer copies a listings CSV into the listings database so the
// server can read it back through a sqlite:// source.
package main

import (
	"context"
	"flag"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"houserocket/server/config"
	"houserocket/server/internal/database"
	"houserocket/server/internal/loader"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	source := flag.String("source", cfg.Sources.ListingsPath, "listings CSV file or URL")
	dbPath := flag.String("db", cfg.Database.Path, "target database file")
	flag.Parse()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize logger")
	}

	ctx := context.Background()
	start := time.Now()

	listings, err := loader.NewLoader(&http.Client{Timeout: cfg.HTTPTimeout()}, logger).Listings(ctx, *source)
	if err != nil {
		logger.WithError(err).Fatal("Failed to read listings")
	}

	logger.Infof("Using database at: %s", *dbPath)
	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	if err := db.ReplaceListings(ctx, listings); err != nil {
		logger.WithError(err).Fatal("Failed to store listings")
	}

	logger.WithFields(logrus.Fields{
		"source":   *source,
		"database": *dbPath,
		"rows":     len(listings),
		"duration": time.Since(start).String(),
	}).Info("Import completed")
}
