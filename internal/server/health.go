package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/andrasnagy-data/oceanpro/internal/shared/config"
)

type (
	// HealthSrvc reports process liveness. There are no downstream
	// dependencies to check.
	HealthSrvc struct {
		version string
		started time.Time
		now     func() time.Time
	}

	// HealthResponse represents the response structure for health check endpoint
	HealthResponse struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
		Version   string    `json:"version"`
		Uptime    string    `json:"uptime"`
	}
)

func NewHealthHandler(srvc *HealthSrvc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := hlog.FromRequest(r)

		response := srvc.check()
		logger.Debug().Msg("Healthcheck ok")

		writeJSON(w, r, http.StatusOK, response)
	}
}

func NewHealthSrvc(cfg *config.Config) *HealthSrvc {
	return &HealthSrvc{
		version: cfg.Server.Version,
		started: time.Now(),
		now:     time.Now,
	}
}

func (s *HealthSrvc) check() HealthResponse {
	now := s.now()
	return HealthResponse{
		Status:    "serving",
		Timestamp: now.UTC(),
		Version:   s.version,
		Uptime:    now.Sub(s.started).Truncate(time.Second).String(),
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to encode response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
