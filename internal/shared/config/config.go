package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"

	appenv "github.com/andrasnagy-data/oceanpro/internal/shared/env"
)

const productionMode = "production"

type (
	// Config holds application configuration
	Config struct {
		Server Server
		App    App

		reader *appenv.Reader
	}

	// Server holds settings read straight from the process environment.
	Server struct {
		Version   string `env:"VERSION" envDefault:"0.1.0"`
		SentryDSN string `env:"SENTRY_DSN"`
	}

	// App mirrors the values resolved by the env reader, typed.
	App struct {
		APIBase            string   `env:"API_BASE"`
		BackendURL         string   `env:"BACKEND_URL"`
		FrontendURL        string   `env:"FRONTEND_URL"`
		WSURL              string   `env:"WS_URL"`
		Environment        string   `env:"ENV"`
		TelemetryDisabled  bool     `env:"TELEMETRY_DISABLED"`
		EnableSourceMaps   bool     `env:"ENABLE_SOURCE_MAPS"`
		Port               int      `env:"PORT"`
		TrustProxy         bool     `env:"TRUST_PROXY"`
		LogLevel           string   `env:"LOG_LEVEL"`
		HealthcheckPath    string   `env:"HEALTHCHECK_PATH"`
		FeatureFlags       []string `env:"FEATURE_FLAGS" envSeparator:","`
		ExperimentsEnabled bool     `env:"EXPERIMENTS_ENABLED"`
	}
)

// NewConfig parses process-only settings from the environment and the app
// settings from the reader's snapshot.
func NewConfig(reader *appenv.Reader) (*Config, error) {
	cfg := &Config{reader: reader}
	if err := env.Parse(&cfg.Server); err != nil {
		return nil, err
	}

	err := env.ParseWithOptions(&cfg.App, env.Options{
		Environment: reader.All(),
		Prefix:      appenv.Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("parse app settings: %w", err)
	}

	cfg.App.APIBase = reader.APIBase()
	cfg.App.BackendURL = reader.BackendURL()
	return cfg, nil
}

// Reader exposes the env reader the config was built from.
func (c *Config) Reader() *appenv.Reader {
	return c.reader
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == productionMode
}

// TelemetryEnabled reports whether errors and logs should be shipped to Sentry.
func (c *Config) TelemetryEnabled() bool {
	return c.IsProduction() && c.Server.SentryDSN != "" && !c.App.TelemetryDisabled
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

// Features returns the enabled feature flags. Flags are ignored unless
// experiments are switched on.
func (c *Config) Features() []string {
	if !c.App.ExperimentsEnabled {
		return nil
	}
	features := make([]string, 0, len(c.App.FeatureFlags))
	for _, f := range c.App.FeatureFlags {
		if f = strings.TrimSpace(f); f != "" && !slices.Contains(features, f) {
			features = append(features, f)
		}
	}
	return features
}

func (c *Config) FeatureEnabled(name string) bool {
	return slices.Contains(c.Features(), name)
}
