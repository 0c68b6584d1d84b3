package store

import (
	"context"
	"sync"

	"licibit/internal/tender/models"
	id "licibit/pkg/domain"
	"licibit/pkg/platform/sentinel"
)

// InMemory is the in-memory tender store used for development and tests.
type InMemory struct {
	mu      sync.RWMutex
	tenders map[id.TenderID]*models.Tender
}

func NewInMemory() *InMemory {
	return &InMemory{tenders: make(map[id.TenderID]*models.Tender)}
}

func (s *InMemory) Create(_ context.Context, tender *models.Tender) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tenders[tender.ID]; exists {
		return sentinel.ErrConflict
	}
	t := *tender
	s.tenders[tender.ID] = &t
	return nil
}

func (s *InMemory) FindByID(_ context.Context, tenderID id.TenderID) (*models.Tender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tender, ok := s.tenders[tenderID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	t := *tender
	return &t, nil
}

// Execute atomically runs validate then mutate on a tender while holding the
// store lock, so a concurrent edit cannot slip between the check and the
// write. Returns the mutated copy.
func (s *InMemory) Execute(_ context.Context, tenderID id.TenderID, validate func(*models.Tender) error, mutate func(*models.Tender)) (*models.Tender, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tender, ok := s.tenders[tenderID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(tender); err != nil {
		return nil, err
	}
	mutate(tender)
	t := *tender
	return &t, nil
}

// List returns all tenders in insertion-independent order. Filtering happens
// in the service so the activity and selection predicates stay in one place.
func (s *InMemory) List(_ context.Context) ([]*models.Tender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Tender, 0, len(s.tenders))
	for _, tender := range s.tenders {
		t := *tender
		out = append(out, &t)
	}
	return out, nil
}

// ListByOwner returns the issuer's own tenders.
func (s *InMemory) ListByOwner(_ context.Context, owner id.UserID) ([]*models.Tender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Tender
	for _, tender := range s.tenders {
		if tender.OwnerID == owner {
			t := *tender
			out = append(out, &t)
		}
	}
	return out, nil
}
