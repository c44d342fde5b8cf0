package http

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

// APIKeyMiddleware rejects requests that do not carry the service api key in
// the api-secret header. A missing header is a 400, a wrong key a 401.
func APIKeyMiddleware(apiKey string, logger *log.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("api-secret")
			if key == "" {
				writeError(w, http.StatusBadRequest, "API key necessária")
				return
			}
			if key != apiKey {
				logger.WithField("path", r.URL.Path).Warn("request with invalid api key")
				writeError(w, http.StatusUnauthorized, "Credenciais invalidas")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// adminOnly wraps a handler behind the UserGroup header; only the Admin group
// may reach it. Catalog mutations use this.
func adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		group := r.Header.Get("UserGroup")
		if group == "" {
			writeError(w, http.StatusBadRequest, "Missing User Group")
			return
		}
		if group != "Admin" {
			writeError(w, http.StatusUnauthorized, "Credenciais invalidas")
			return
		}
		next(w, r)
	}
}
