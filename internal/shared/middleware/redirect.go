package middleware

import "net/http"

// RedirectTo returns a handler that always redirects to target. It backs the
// root route, which leads to the login screen, and the catch-all route.
func RedirectTo(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		Redirect(w, r, target)
	}
}
