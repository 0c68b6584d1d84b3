// Package store provides proposal persistence. The memory variant backs
// development and unit tests; the postgres variant is the production store.
package store

import (
	"context"
	"sync"

	"licibit/internal/proposal/models"
	id "licibit/pkg/domain"
	"licibit/pkg/platform/sentinel"
)

// InMemory is the in-memory proposal store.
type InMemory struct {
	mu        sync.RWMutex
	proposals map[id.ProposalID]*models.Proposal
}

func NewInMemory() *InMemory {
	return &InMemory{proposals: make(map[id.ProposalID]*models.Proposal)}
}

func (s *InMemory) Create(_ context.Context, proposal *models.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.proposals[proposal.ID]; exists {
		return sentinel.ErrConflict
	}
	for _, existing := range s.proposals {
		if existing.TenderID == proposal.TenderID && existing.SupplierID == proposal.SupplierID {
			return sentinel.ErrConflict
		}
	}
	s.proposals[proposal.ID] = clone(proposal)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, proposalID id.ProposalID) (*models.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	proposal, ok := s.proposals[proposalID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(proposal), nil
}

// Execute atomically runs validate then mutate on a proposal while holding
// the store lock. Returns the mutated copy.
func (s *InMemory) Execute(_ context.Context, proposalID id.ProposalID, validate func(*models.Proposal) error, mutate func(*models.Proposal)) (*models.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	proposal, ok := s.proposals[proposalID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(proposal); err != nil {
		return nil, err
	}
	mutate(proposal)
	return clone(proposal), nil
}

func (s *InMemory) ListByTender(_ context.Context, tenderID id.TenderID) ([]*models.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Proposal
	for _, proposal := range s.proposals {
		if proposal.TenderID == tenderID {
			out = append(out, clone(proposal))
		}
	}
	return out, nil
}

func (s *InMemory) ListBySupplier(_ context.Context, supplier id.UserID) ([]*models.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Proposal
	for _, proposal := range s.proposals {
		if proposal.SupplierID == supplier {
			out = append(out, clone(proposal))
		}
	}
	return out, nil
}

func clone(p *models.Proposal) *models.Proposal {
	c := *p
	if p.Documents != nil {
		c.Documents = make([]models.DocumentRef, len(p.Documents))
		copy(c.Documents, p.Documents)
	}
	return &c
}
