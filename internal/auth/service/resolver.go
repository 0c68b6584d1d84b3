package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"licibit/internal/accessgate"
	"licibit/pkg/platform/sentinel"
)

// SessionCookie carries the token for browser clients; API clients send a
// Bearer header instead. Both resolve identically.
const SessionCookie = "licibit_session"

// GateResolver adapts the auth service to the access gate's resolver
// interface: extract the token from the request, resolve it, map the result
// to the gate's session shape.
type GateResolver struct {
	auth *Service
}

func NewGateResolver(auth *Service) *GateResolver {
	return &GateResolver{auth: auth}
}

func (r *GateResolver) Resolve(ctx context.Context, req *http.Request) (*accessgate.Session, error) {
	token := tokenFromRequest(req)
	if token == "" {
		return nil, nil
	}
	session, err := r.auth.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) || errors.Is(err, sentinel.ErrExpired) {
			// A stale or revoked token is simply an anonymous caller.
			return nil, nil
		}
		return nil, err
	}
	return &accessgate.Session{UserID: session.UserID, Role: session.Role}, nil
}

func tokenFromRequest(req *http.Request) string {
	if auth := req.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return token
		}
	}
	if cookie, err := req.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}
