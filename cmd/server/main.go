package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"houserocket/server/config"
	"houserocket/server/internal/api"
	"houserocket/server/internal/dashboard"
	"houserocket/server/internal/loader"
	"houserocket/server/internal/scheduler"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize logger")
	}

	logger.WithFields(logrus.Fields{
		"listings":   cfg.Sources.ListingsPath,
		"boundaries": cfg.Sources.GeofileURL,
	}).Info("Using data sources")

	// Initialize source cache and dashboard
	sources := loader.NewLoader(&http.Client{Timeout: cfg.HTTPTimeout()}, logger)
	service := dashboard.NewService(sources, cfg, logger)

	// Load sources in the background so the first request is served from cache
	sched := scheduler.NewScheduler(service, cfg.Scheduler.RefreshSchedule, cfg.HTTPTimeout()*2, logger)
	sched.Warmup()
	if err := sched.Start(); err != nil {
		logger.WithError(err).Fatal("Failed to start scheduler")
	}
	defer sched.Stop()

	// Initialize router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, service, cfg.Server.CORSOrigins, logger)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := http.ListenAndServe(":"+cfg.Server.Port, router); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
