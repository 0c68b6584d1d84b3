package notify

import (
	"context"
	"sync"
	"time"
)

// MemoryOutbox is the in-memory outbox used for development and tests.
type MemoryOutbox struct {
	mu      sync.Mutex
	nextID  int64
	entries []*Notification
}

func NewMemoryOutbox() *MemoryOutbox {
	return &MemoryOutbox{nextID: 1}
}

func (s *MemoryOutbox) Enqueue(_ context.Context, n *Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *n
	c.ID = s.nextID
	s.nextID++
	s.entries = append(s.entries, &c)
	n.ID = c.ID
	return nil
}

func (s *MemoryOutbox) Pending(_ context.Context, limit int) ([]*Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Notification
	for _, entry := range s.entries {
		if entry.DispatchedAt != nil {
			continue
		}
		c := *entry
		out = append(out, &c)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryOutbox) MarkDispatched(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, entry := range s.entries {
		for _, dispatched := range ids {
			if entry.ID == dispatched {
				t := now
				entry.DispatchedAt = &t
			}
		}
	}
	return nil
}
