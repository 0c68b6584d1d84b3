package testutil

import (
	"net/http"
	"time"

	id "licibit/pkg/domain"
	"licibit/pkg/requestcontext"
)

// AsUser stamps an authenticated session onto the request, the way the gate
// middleware would for a logged-in caller.
func AsUser(req *http.Request, userID id.UserID, role id.Role) *http.Request {
	return req.WithContext(requestcontext.WithSession(req.Context(), userID, role))
}

// AtTime pins the request-scoped clock so deadline behavior is deterministic.
func AtTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
