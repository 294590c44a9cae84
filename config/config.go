package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/sirupsen/logrus"
)

// DefaultGeofileURL is the King County zipcode boundary GeoJSON.
const DefaultGeofileURL = "https://opendata.arcgis.com/datasets/83fc2e72903343aabff6de8cb445b81c_2.geojson"

type Config struct {
	Server struct {
		Port string `env:"SERVER_PORT" envDefault:"5250"`

		// Allowed CORS origins, comma separated
		CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	}

	Sources struct {
		// Listings CSV: a file path, an http(s) URL or sqlite://<db path>
		ListingsPath string `env:"LISTINGS_PATH" envDefault:"kc_house_data.csv"`

		// Zipcode boundaries GeoJSON: a file path or an http(s) URL
		GeofileURL string `env:"GEOFILE_URL" envDefault:"https://opendata.arcgis.com/datasets/83fc2e72903343aabff6de8cb445b81c_2.geojson"`

		// Timeout for remote source downloads (in seconds)
		HTTPTimeout int `env:"HTTP_TIMEOUT_SECONDS" envDefault:"30"`
	}

	Report struct {
		// Rows shown in the data overview
		OverviewRows int `env:"OVERVIEW_ROWS" envDefault:"10"`
	}

	Scheduler struct {
		// Cron spec for cache refresh; empty disables the scheduler
		RefreshSchedule string `env:"REFRESH_SCHEDULE"`
	}

	Database struct {
		// Listings database written by the importer
		Path string `env:"DATABASE_PATH" envDefault:"houserocket.db"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL" envDefault:"info"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// HTTPTimeout returns the remote source timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.Sources.HTTPTimeout) * time.Second
}

// NewLogger builds the JSON logger used by every component.
func NewLogger(c *Config) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)
	return logger, nil
}
