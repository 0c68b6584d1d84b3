package accessgate

import (
	"context"
	"net/http"

	id "licibit/pkg/domain"
)

// Session is the caller identity the gate consults. It is resolved once per
// request by an external collaborator and passed explicitly - never read
// from ambient globals.
type Session struct {
	UserID id.UserID
	Role   id.Role
}

// SessionResolver resolves the request's session. A nil session with a nil
// error means "no caller identity". Resolution failures (collaborator down,
// timeout) are reported as errors; the gate treats them exactly like an
// absent session.
type SessionResolver interface {
	Resolve(ctx context.Context, r *http.Request) (*Session, error)
}

// Decision is the gate's per-request verdict.
type Decision int

const (
	// DecisionAllow lets the request through.
	DecisionAllow Decision = iota
	// DecisionRedirectLogin sends the caller to the login surface.
	DecisionRedirectLogin
	// DecisionRedirectHome soft-redirects to the neutral landing page. Used
	// when a valid session simply lacks the required role - not an error.
	DecisionRedirectHome
)

// Decide applies the policy decision table to a resolved session.
func Decide(policy Policy, session *Session) Decision {
	switch policy.Access {
	case AccessPublic:
		return DecisionAllow
	case AccessAuthenticated:
		if session == nil {
			return DecisionRedirectLogin
		}
		return DecisionAllow
	case AccessRole:
		if session == nil {
			return DecisionRedirectLogin
		}
		if session.Role != policy.Role {
			return DecisionRedirectHome
		}
		return DecisionAllow
	default:
		// Unknown access class fails closed.
		return DecisionRedirectLogin
	}
}
