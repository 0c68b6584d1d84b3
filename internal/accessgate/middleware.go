package accessgate

import (
	"log/slog"
	"net/http"

	"licibit/pkg/requestcontext"
)

const (
	loginPath   = "/login"
	landingPath = "/"
)

// Middleware runs the gate on every request. The session resolution is the
// single awaited collaborator call; everything after it is pure table work.
func Middleware(table *Table, resolver SessionResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			session, err := resolver.Resolve(ctx, r)
			if err != nil {
				// Fail closed: an unreachable session provider is treated
				// as "no session", never as a pass.
				logger.WarnContext(ctx, "session resolution failed, treating as anonymous",
					"error", err,
					"path", r.URL.Path,
					"request_id", requestcontext.RequestID(ctx),
				)
				session = nil
			}

			policy := table.Classify(r.URL.Path)
			switch Decide(policy, session) {
			case DecisionAllow:
				if session != nil {
					ctx = requestcontext.WithSession(ctx, session.UserID, session.Role)
				}
				next.ServeHTTP(w, r.WithContext(ctx))
			case DecisionRedirectLogin:
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
			case DecisionRedirectHome:
				logger.InfoContext(ctx, "role mismatch, redirecting to landing",
					"path", r.URL.Path,
					"role", session.Role,
					"request_id", requestcontext.RequestID(ctx),
				)
				http.Redirect(w, r, landingPath, http.StatusSeeOther)
			}
		})
	}
}
