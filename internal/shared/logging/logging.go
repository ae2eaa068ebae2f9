package logging

import (
	"io"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryzerolog "github.com/getsentry/sentry-go/zerolog"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/andrasnagy-data/oceanpro/internal/shared/config"
)

// NewLogger creates a zerolog logger with pretty console output for development or
// JSON output for production, and returns an optional Sentry writer (nil unless telemetry is enabled)
func NewLogger(cfg *config.Config) (zerolog.Logger, *sentryzerolog.Writer) {
	zerolog.SetGlobalLevel(parseLevel(cfg.App.LogLevel))

	if !cfg.TelemetryEnabled() {
		return newLogger(consoleWriter(os.Stderr), cfg), nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Server.SentryDSN,
		Environment:      cfg.App.Environment,
		Release:          cfg.Server.Version,
		AttachStacktrace: true,
		EnableTracing:    true,
		TracesSampler: sentry.TracesSampler(func(ctx sentry.SamplingContext) float64 {
			if ctx.Span.Name == "GET "+cfg.App.HealthcheckPath {
				return 0.0
			}
			return 1.0
		}),
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize Sentry, using console only")
		return newLogger(consoleWriter(os.Stderr), cfg), nil
	}

	sentryWriter, err := sentryzerolog.New(sentryzerolog.Config{
		Options: sentryzerolog.Options{
			Levels:          []zerolog.Level{zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel},
			WithBreadcrumbs: true,
			FlushTimeout:    3 * time.Second,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize Sentry writer, using console only")
		return newLogger(consoleWriter(os.Stderr), cfg), nil
	}

	// Production: JSON output to stderr + Sentry writer
	multiWriter := zerolog.MultiLevelWriter(os.Stderr, sentryWriter)

	return newLogger(multiWriter, cfg).
		With().
		Str("version", cfg.Server.Version).
		Str("environment", cfg.App.Environment).
		Logger(), sentryWriter
}

func parseLevel(raw string) zerolog.Level {
	level, err := zerolog.ParseLevel(raw)
	if err != nil || raw == "" {
		// Default to info level if parsing fails
		return zerolog.InfoLevel
	}
	return level
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    false,
	}
}

// newLogger annotates records with the caller only when source maps are enabled.
func newLogger(w io.Writer, cfg *config.Config) zerolog.Logger {
	ctx := zerolog.New(w).With().Timestamp()
	if cfg.App.EnableSourceMaps {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}
