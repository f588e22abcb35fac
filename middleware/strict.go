package middleware

import (
	"net/http"
)

// RequireSession rejects requests that do not carry the identifier of a stored
// session. It must run inside [Sessions].
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := FromContext(r.Context())
		if sess == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if sess.IsNew() {
			// Nothing to persist for a rejected anonymous request.
			sess.discard()
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
