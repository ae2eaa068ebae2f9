package env

import (
	"maps"
	"os"
)

// Prefix is shared by every variable the reader resolves.
const Prefix = "APP_"

const (
	KeyAPIBase            = Prefix + "API_BASE"
	KeyBackendURL         = Prefix + "BACKEND_URL"
	KeyFrontendURL        = Prefix + "FRONTEND_URL"
	KeyWSURL              = Prefix + "WS_URL"
	KeyRunMode            = Prefix + "ENV"
	KeyTelemetryDisabled  = Prefix + "TELEMETRY_DISABLED"
	KeyEnableSourceMaps   = Prefix + "ENABLE_SOURCE_MAPS"
	KeyPort               = Prefix + "PORT"
	KeyTrustProxy         = Prefix + "TRUST_PROXY"
	KeyLogLevel           = Prefix + "LOG_LEVEL"
	KeyHealthcheckPath    = Prefix + "HEALTHCHECK_PATH"
	KeyFeatureFlags       = Prefix + "FEATURE_FLAGS"
	KeyExperimentsEnabled = Prefix + "EXPERIMENTS_ENABLED"
)

const (
	defaultAPIBase    = "/api"
	defaultBackendURL = "http://localhost:4000"
)

// defaults lists every key the reader knows about together with its literal fallback.
var defaults = []struct {
	key   string
	value string
}{
	{KeyAPIBase, defaultAPIBase},
	{KeyBackendURL, defaultBackendURL},
	{KeyFrontendURL, "http://localhost:3000"},
	{KeyWSURL, "ws://localhost:4000"},
	{KeyRunMode, "development"},
	{KeyTelemetryDisabled, "1"},
	{KeyEnableSourceMaps, "true"},
	{KeyPort, "3000"},
	{KeyTrustProxy, "false"},
	{KeyLogLevel, "info"},
	{KeyHealthcheckPath, "/healthz"},
	{KeyFeatureFlags, ""},
	{KeyExperimentsEnabled, "false"},
}

type (
	// Provider is a single configuration source. A key that is present with an
	// empty value still counts as present.
	Provider interface {
		Lookup(key string) (string, bool)
	}

	// MapProvider serves values from an in-memory map, typically client overrides.
	MapProvider map[string]string

	// ProcessProvider serves values from the process environment.
	ProcessProvider struct{}

	// Snapshot is the resolved key/value set.
	Snapshot map[string]string

	// Reader resolves the enumerated keys once and never changes afterwards.
	Reader struct {
		snapshot Snapshot
	}
)

func (m MapProvider) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (ProcessProvider) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Keys returns the enumerated configuration keys in declaration order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for _, d := range defaults {
		keys = append(keys, d.key)
	}
	return keys
}

// New resolves every key by asking the providers in order. The first provider
// holding the key wins; when none does, the literal default is used. Nil
// providers are skipped.
func New(providers ...Provider) *Reader {
	snapshot := make(Snapshot, len(defaults))
	for _, d := range defaults {
		snapshot[d.key] = resolve(d.key, d.value, providers)
	}
	return &Reader{snapshot: snapshot}
}

func resolve(key, fallback string, providers []Provider) string {
	for _, p := range providers {
		if p == nil {
			continue
		}
		if v, ok := p.Lookup(key); ok {
			return v
		}
	}
	return fallback
}

// Get returns the resolved value of key. The boolean is false for keys outside
// the enumerated set.
func (r *Reader) Get(key string) (string, bool) {
	v, ok := r.snapshot[key]
	return v, ok
}

// All returns a copy of the resolved values.
func (r *Reader) All() Snapshot {
	return maps.Clone(r.snapshot)
}

// APIBase returns the API base path, falling back to /api when the resolved value is empty.
func (r *Reader) APIBase() string {
	if v := r.snapshot[KeyAPIBase]; v != "" {
		return v
	}
	return defaultAPIBase
}

// BackendURL returns the backend URL, falling back to the local default when the resolved value is empty.
func (r *Reader) BackendURL() string {
	if v := r.snapshot[KeyBackendURL]; v != "" {
		return v
	}
	return defaultBackendURL
}
