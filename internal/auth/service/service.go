// Package service implements login, logout, and session resolution. It is
// the concrete session provider behind the access gate.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/bcrypt"

	"licibit/internal/auth/models"
	"licibit/internal/auth/store"
	id "licibit/pkg/domain"
	dErrors "licibit/pkg/domain-errors"
	emailpkg "licibit/pkg/email"
	"licibit/pkg/platform/middleware/metadata"
	"licibit/pkg/platform/sentinel"
	"licibit/pkg/requestcontext"
)

var tracer = otel.Tracer("licibit/auth")

// UserStore is the persistence surface for accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
}

// Service issues and resolves sessions.
type Service struct {
	users      UserStore
	sessions   store.SessionStore
	signingKey []byte
	sessionTTL time.Duration
}

func New(users UserStore, sessions store.SessionStore, signingKey []byte, sessionTTL time.Duration) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		signingKey: signingKey,
		sessionTTL: sessionTTL,
	}
}

// sessionClaims is the JWT payload. The session ID (sid) lets logout revoke
// tokens before expiry; the role rides along so the gate does not need a
// user lookup per request.
type sessionClaims struct {
	Role string `json:"role"`
	SID  string `json:"sid"`
	jwt.RegisteredClaims
}

// Register creates an account with one of the two marketplace roles.
func (s *Service) Register(ctx context.Context, email, password, companyName string, role id.Role) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "auth.Register")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, dErrors.New(dErrors.CodeBadRequest, "a valid email is required")
	}
	if len(password) < 8 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "password must be at least 8 characters")
	}
	if !role.Valid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "role must be constructora or proveedor")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		companyName = emailpkg.DeriveCompanyName(email)
	}

	user := &models.User{
		ID:           id.UserID(uuid.New()),
		Email:        email,
		CompanyName:  companyName,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    requestcontext.Now(ctx),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "email is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}
	return user, nil
}

// Login verifies credentials, records a session, and returns a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	ctx, span := tracer.Start(ctx, "auth.Login")
	defer span.End()

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Same error as a bad password so probes cannot enumerate accounts.
			return "", nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return "", nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "user lookup failed")
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	now := requestcontext.Now(ctx)
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		Device:    metadata.GetDevice(ctx),
		IPAddress: metadata.GetClientIP(ctx),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "failed to record session")
	}

	claims := sessionClaims{
		Role: string(user.Role),
		SID:  session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign session token")
	}
	return token, user, nil
}

// Resolve validates a token and returns the live session behind it.
// A revoked or expired session resolves to sentinel.ErrNotFound /
// sentinel.ErrExpired; the gate treats any error as "no session".
func (s *Service) Resolve(ctx context.Context, token string) (*models.Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, sentinel.ErrNotFound
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.SID == "" {
		return nil, sentinel.ErrNotFound
	}

	session, err := s.sessions.Find(ctx, claims.SID)
	if err != nil {
		return nil, err
	}
	if session.Expired(requestcontext.Now(ctx)) {
		return nil, sentinel.ErrExpired
	}
	return session, nil
}

// Logout revokes the session behind the token. Invalid tokens are ignored;
// logout never fails the user out of logging out.
func (s *Service) Logout(ctx context.Context, token string) error {
	session, err := s.Resolve(ctx, token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, session.ID)
}
