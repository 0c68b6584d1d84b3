package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"licibit/internal/auth/models"
	"licibit/internal/platform/redis"
)

const sessionKeyPrefix = "session:"

// SessionCache is a read-through Redis cache in front of a session store.
// The gate resolves a session on every request; without the cache each page
// hit costs a store roundtrip.
type SessionCache struct {
	client *redis.Client
	next   SessionStore
	ttl    time.Duration
}

// SessionStore is the persistence surface the cache wraps.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Find(ctx context.Context, sessionID string) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// NewSessionCache wraps next with a Redis layer. A nil client disables
// caching transparently.
func NewSessionCache(client *redis.Client, next SessionStore, ttl time.Duration) SessionStore {
	if client == nil {
		return next
	}
	return &SessionCache{client: client, next: next, ttl: ttl}
}

func (c *SessionCache) Create(ctx context.Context, session *models.Session) error {
	if err := c.next.Create(ctx, session); err != nil {
		return err
	}
	c.put(ctx, session)
	return nil
}

func (c *SessionCache) Find(ctx context.Context, sessionID string) (*models.Session, error) {
	raw, err := c.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err == nil {
		var session models.Session
		if unmarshalErr := json.Unmarshal(raw, &session); unmarshalErr == nil {
			return &session, nil
		}
		// Corrupt cache entry: fall through to the store.
	} else if !errors.Is(err, goredis.Nil) {
		// Redis being down must not take sessions down with it.
		return c.next.Find(ctx, sessionID)
	}

	session, err := c.next.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.put(ctx, session)
	return session, nil
}

func (c *SessionCache) Delete(ctx context.Context, sessionID string) error {
	// Evict first so a crash between the two steps leaves the cache cold,
	// not stale.
	c.client.Del(ctx, sessionKeyPrefix+sessionID)
	return c.next.Delete(ctx, sessionID)
}

func (c *SessionCache) put(ctx context.Context, session *models.Session) {
	raw, err := json.Marshal(session)
	if err != nil {
		return
	}
	c.client.Set(ctx, sessionKeyPrefix+session.ID, raw, c.ttl)
}
