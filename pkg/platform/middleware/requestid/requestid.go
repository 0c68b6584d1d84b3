// Package requestid assigns each request a correlation ID for log lines and
// error reports. An inbound X-Request-ID is honored so IDs survive proxies.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"licibit/pkg/requestcontext"
)

const headerName = "X-Request-ID"

// Middleware ensures every request context carries a request ID and echoes
// it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerName)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set(headerName, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
