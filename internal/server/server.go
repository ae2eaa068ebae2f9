package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	sentryzerolog "github.com/getsentry/sentry-go/zerolog"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"go.uber.org/fx"

	"github.com/andrasnagy-data/oceanpro/internal/components/login"
	"github.com/andrasnagy-data/oceanpro/internal/shared/config"
	"github.com/andrasnagy-data/oceanpro/internal/shared/middleware"
)

const shutdownTimeout = 30 * time.Second

type (
	// Server represents the HTTP server with all dependencies
	Server struct {
		server       *http.Server
		config       *config.Config
		logger       zerolog.Logger
		sentryWriter *sentryzerolog.Writer
	}

	params struct {
		fx.In

		Config        *config.Config
		Logger        zerolog.Logger
		HealthHandler http.HandlerFunc
		SentryWriter  *sentryzerolog.Writer `optional:"true"`
		LoginRouter   chi.Router            `name:"loginRouter"`
	}

	// envResponse is the client-facing view of the resolved configuration.
	envResponse struct {
		Values   map[string]string `json:"values"`
		Features []string          `json:"features"`
	}
)

func NewServer(p params) *Server {
	r := chi.NewRouter()

	if p.Config.TelemetryEnabled() {
		sentryHandler := sentryhttp.New(sentryhttp.Options{Repanic: false})

		// Recover only when telemetry is on
		r.Use(sentryHandler.Handle)
	}

	if p.Config.App.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}

	// Middleware
	r.Use(hlog.NewHandler(p.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("url", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("HTTP request")
	}))
	r.Use(hlog.RequestIDHandler("req_id", "Request-Id"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{p.Config.App.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "HX-Request", "HX-Current-URL", "HX-Target", "HX-Trigger"},
		ExposedHeaders:   []string{"HX-Redirect"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.HTMX)

	// Routes
	r.Get(p.Config.App.HealthcheckPath, p.HealthHandler)
	r.Get(p.Config.App.APIBase+"/env", newEnvHandler(p.Config))

	r.Get("/", middleware.RedirectTo(login.MountPath))
	r.Mount(login.MountPath, p.LoginRouter)
	r.NotFound(middleware.RedirectTo("/"))

	server := &http.Server{
		Addr:              p.Config.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		config:       p.Config,
		logger:       p.Logger,
		server:       server,
		sentryWriter: p.SentryWriter,
	}
}

// Register hooks the server into the fx lifecycle.
func Register(lc fx.Lifecycle, s *Server) {
	s.Start(lc)
}

func (s *Server) Start(lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: s.start,
		OnStop:  s.stop,
	})
}

// Handler exposes the routed handler chain.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// start starts the HTTP server
func (s *Server) start(_ context.Context) error {
	s.logger.Info().
		Str("addr", s.server.Addr).
		Str("environment", s.config.App.Environment).
		Bool("sentry_enabled", s.config.TelemetryEnabled()).
		Strs("features", s.config.Features()).
		Msg("Starting HTTP server")
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("Server failed to start")
		}
	}()

	s.logger.Info().Msg("HTTP server started")
	return nil
}

// stop gracefully shuts down the HTTP server
func (s *Server) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	s.logger.Info().Msg("Shutting down HTTP server...")

	if s.config.TelemetryEnabled() {
		s.logger.Info().Msg("Flushing Sentry client and writer")
		if s.sentryWriter != nil {
			s.sentryWriter.Close()
		}
		sentry.Flush(2 * time.Second)
	}

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error during server shutdown")
		return err
	}

	s.logger.Info().Msg("HTTP server shutdown completed")
	return nil
}

func newEnvHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		features := cfg.Features()
		if features == nil {
			features = []string{}
		}
		writeJSON(w, r, http.StatusOK, envResponse{
			Values:   cfg.Reader().All(),
			Features: features,
		})
	}
}
