package models

import (
	"time"

	id "licibit/pkg/domain"
)

// User is a registered account. The password never leaves bcrypt form.
type User struct {
	ID           id.UserID `json:"id"`
	Email        string    `json:"email"`
	CompanyName  string    `json:"company_name"`
	Role         id.Role   `json:"role"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is a server-side login record. The JWT carries the session ID so
// logout can revoke tokens before their expiry.
type Session struct {
	ID        string    `json:"id"`
	UserID    id.UserID `json:"user_id"`
	Role      id.Role   `json:"role"`
	Device    string    `json:"device,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its lifetime.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
