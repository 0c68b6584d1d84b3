package models

import (
	"strings"
	"time"

	id "licibit/pkg/domain"
	dErrors "licibit/pkg/domain-errors"
)

// State is the lifecycle state of a proposal.
type State string

const (
	// StateSent is the initial state, set at creation and never chosen by
	// the caller.
	StateSent     State = "sent"
	StateAccepted State = "accepted"
	StateRejected State = "rejected"
)

// Valid reports whether s is a known state.
func (s State) Valid() bool {
	return s == StateSent || s == StateAccepted || s == StateRejected
}

// Decision reports whether s is a state an issuer may transition to.
// Clients never set sent manually.
func (s State) Decision() bool {
	return s == StateAccepted || s == StateRejected
}

// CanTransitionTo validates a state change. Accepted and rejected may
// flip-flop without bound (the original design lets an issuer correct a
// mis-click); sent is left exactly once and never re-entered.
func (s State) CanTransitionTo(next State) bool {
	return next.Decision()
}

// DocumentRef is a reference to a file owned by the proposal. The blob
// itself lives in the document store; the proposal only carries the key.
type DocumentRef struct {
	ID       id.DocumentID `json:"id"`
	Path     string        `json:"path"`
	FileName string        `json:"file_name"`
}

// Proposal is a supplier's quote against a tender.
//
// Invariants:
//   - References exactly one tender and one submitting supplier
//   - Created only while the tender is open; state starts at sent
//   - State is mutable only by the tender's owning issuer
//   - Attached documents are owned children; their lifecycle follows the proposal
type Proposal struct {
	ID         id.ProposalID `json:"id"`
	TenderID   id.TenderID   `json:"tender_id"`
	SupplierID id.UserID     `json:"supplier_id"`
	State      State         `json:"state"`
	Note       string        `json:"note"`
	Documents  []DocumentRef `json:"documents"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// NewProposal constructs a proposal in the sent state. Openness of the
// tender is the service's responsibility; the model only enforces shape.
func NewProposal(proposalID id.ProposalID, tenderID id.TenderID, supplier id.UserID, note string, documents []DocumentRef, now time.Time) (*Proposal, error) {
	if tenderID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tender reference is required")
	}
	if supplier.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "submitting supplier is required")
	}
	return &Proposal{
		ID:         proposalID,
		TenderID:   tenderID,
		SupplierID: supplier,
		State:      StateSent,
		Note:       strings.TrimSpace(note),
		Documents:  documents,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// CanTransition checks whether the proposal may move to next.
// Use with ApplyTransition in store Execute callbacks.
func (p *Proposal) CanTransition(next State) error {
	if !next.Decision() {
		return dErrors.New(dErrors.CodeInvalidState, "proposal state must be accepted or rejected")
	}
	if !p.State.CanTransitionTo(next) {
		return dErrors.New(dErrors.CodeInvalidState, "transition not permitted from current state")
	}
	return nil
}

// ApplyTransition moves the proposal to next. Call CanTransition first.
func (p *Proposal) ApplyTransition(next State, now time.Time) {
	p.State = next
	p.UpdatedAt = now
}
