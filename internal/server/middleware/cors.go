package middleware

import (
	"net/http"
	"strings"
)

// apiMethods lists the methods the arbscan API actually serves. The API has
// no PUT endpoints; watchlist entries are immutable once created.
const apiMethods = "GET, POST, DELETE, OPTIONS"

// apiHeaders lists the request headers the API accepts cross-origin,
// including both authentication carriers.
const apiHeaders = "Content-Type, Authorization, X-API-Key"

// CORS returns middleware that answers preflight requests and sets CORS
// headers for browser dashboards. An empty allow-list permits any origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" && originAllowed(allowedOrigins, origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", apiMethods)
				w.Header().Set("Access-Control-Allow-Headers", apiHeaders)
				w.Header().Set("Access-Control-Max-Age", "86400")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowed []string, origin string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, o := range allowed {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}
