// Package requesttime provides middleware for request-scoped time.
// All lifecycle decisions within a single HTTP request (is the tender still
// open, how much time remains) observe the same "now", so a deadline cannot
// expire halfway through handling one request.
package requesttime

import (
	"net/http"
	"time"

	"licibit/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request and
// stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
