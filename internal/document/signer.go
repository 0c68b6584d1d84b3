package document

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "licibit/pkg/domain-errors"
)

// Signer issues and verifies time-limited download tokens bound to a single
// blob path. Uses its own HMAC key, separate from the session token key.
type Signer struct {
	key []byte
	ttl time.Duration
}

func NewSigner(key []byte, ttl time.Duration) *Signer {
	return &Signer{key: key, ttl: ttl}
}

type downloadClaims struct {
	Path string `json:"path"`
	jwt.RegisteredClaims
}

// Sign returns a token authorizing downloads of path until now+ttl.
func (s *Signer) Sign(path string, now time.Time) (string, error) {
	claims := downloadClaims{
		Path: path,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Verify checks the token's signature, expiry, and path binding.
func (s *Signer) Verify(path, token string, now time.Time) error {
	var claims downloadClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !parsed.Valid {
		return dErrors.New(dErrors.CodeForbidden, "download link is invalid or expired")
	}
	if claims.Path != path {
		return dErrors.New(dErrors.CodeForbidden, "download link does not match this document")
	}
	return nil
}
