package store

import (
	"context"
	"strings"
	"sync"

	"licibit/internal/auth/models"
	id "licibit/pkg/domain"
	"licibit/pkg/platform/sentinel"
)

// InMemoryUsers is the in-memory user store used for development and tests.
type InMemoryUsers struct {
	mu      sync.RWMutex
	byID    map[id.UserID]*models.User
	byEmail map[string]*models.User
}

func NewInMemoryUsers() *InMemoryUsers {
	return &InMemoryUsers{
		byID:    make(map[id.UserID]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

// Create adds a user, enforcing case-insensitive email uniqueness.
func (s *InMemoryUsers) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, exists := s.byEmail[key]; exists {
		return sentinel.ErrConflict
	}
	u := *user
	s.byID[user.ID] = &u
	s.byEmail[key] = &u
	return nil
}

func (s *InMemoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (s *InMemoryUsers) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byID[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	u := *user
	return &u, nil
}

// InMemorySessions stores login sessions keyed by session ID.
type InMemorySessions struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewInMemorySessions() *InMemorySessions {
	return &InMemorySessions{sessions: make(map[string]*models.Session)}
}

func (s *InMemorySessions) Create(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.ID]; exists {
		return sentinel.ErrConflict
	}
	copy := *session
	s.sessions[session.ID] = &copy
	return nil
}

func (s *InMemorySessions) Find(_ context.Context, sessionID string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copy := *session
	return &copy, nil
}

// Delete revokes a session. Deleting an absent session is not an error;
// logout must be idempotent.
func (s *InMemorySessions) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
