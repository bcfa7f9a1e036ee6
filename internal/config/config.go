package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the pipeline and API configuration. Values come from an
// optional YAML file, overridden by environment variables; a .env file
// is loaded first when present.
type Config struct {
	TripsPath          string `yaml:"trips_path" validate:"required"`
	StationsPath       string `yaml:"stations_path" validate:"required"`
	CustomStationsPath string `yaml:"custom_stations_path" validate:"required"`
	SpendingPath       string `yaml:"spending_path"`
	JourneysDir        string `yaml:"journeys_dir"`
	ReportDir          string `yaml:"report_dir"`

	HTTPAddr    string `yaml:"http_addr" validate:"required"`
	JWTSecret   string `yaml:"jwt_secret" validate:"required"`
	DatabaseURL string `yaml:"database_url"`
	Timezone    string `yaml:"timezone" validate:"required"`
}

// Location resolves the configured home timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load reads configuration from CONFIG_PATH (default config.yml, when
// present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr: ":8080",
		Timezone: "Europe/Paris",
	}

	path := getenvDefault("CONFIG_PATH", "config.yml")
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// config file is optional; env vars can carry everything
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	overrideString(&cfg.TripsPath, "TRIPS_PATH")
	overrideString(&cfg.StationsPath, "STATIONS_PATH")
	overrideString(&cfg.CustomStationsPath, "CUSTOM_STATIONS_PATH")
	overrideString(&cfg.SpendingPath, "SPENDING_PATH")
	overrideString(&cfg.JourneysDir, "JOURNEYS_DIR")
	overrideString(&cfg.ReportDir, "REPORT_DIR")
	overrideString(&cfg.HTTPAddr, "HTTP_ADDR")
	overrideString(&cfg.JWTSecret, "AUTH_JWT_SECRET")
	overrideString(&cfg.DatabaseURL, "DATABASE_URL")
	overrideString(&cfg.Timezone, "TZ_HOME")

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func overrideString(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
