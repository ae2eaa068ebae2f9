package middleware

import (
	"context"
	"net/http"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const htmxKey contextKey = "htmx"

// HTMX marks requests coming from htmx so handlers can answer with fragments
// and HX-* headers instead of full pages and plain redirects.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithHTMX(r.Context(), r.Header.Get("HX-Request") == "true")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithHTMX marks the context as belonging to an htmx request
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, htmxKey, is)
}

// IsHTMX reports whether the request was issued by htmx
func IsHTMX(ctx context.Context) bool {
	is, _ := ctx.Value(htmxKey).(bool)
	return is
}

// Redirect sends the client to target, using HX-Redirect for htmx requests so
// the browser performs a full navigation.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r.Context()) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
