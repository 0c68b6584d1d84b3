package models

import (
	"strings"
	"time"

	id "licibit/pkg/domain"
	dErrors "licibit/pkg/domain-errors"
)

// Tender is the aggregate root for a published request for quotes.
//
// Invariants:
//   - Name is non-empty and at most 200 characters
//   - Category is a single non-empty label (catalog or ad-hoc)
//   - Only the owning issuer mutates a tender
//   - Tenders are never deleted, only deactivated
//
// Openness is derived, never stored: a tender accepts proposals iff the
// owner-set Active flag is up AND the closing deadline has not passed.
// Every screen that needs this answer must go through IsOpen - deriving it
// from the flag alone or the deadline alone gives wrong answers near the
// deadline and after deactivation.
type Tender struct {
	ID              id.TenderID `json:"id"`
	OwnerID         id.UserID   `json:"owner_id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Category        string      `json:"category"`
	Active          bool        `json:"active"`
	ClosingDeadline time.Time   `json:"closing_deadline"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// IsOpen is the single source of truth for whether the tender accepts
// proposals at the given instant. Pure predicate, never errors.
func (t *Tender) IsOpen(now time.Time) bool {
	return t.Active && now.Before(t.ClosingDeadline)
}

// NewTender validates and constructs a tender owned by issuer.
func NewTender(tenderID id.TenderID, issuer id.UserID, name, description, category string, closingDeadline, now time.Time) (*Tender, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tender name is required")
	}
	if len(name) > 200 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tender name must be 200 characters or less")
	}
	if strings.TrimSpace(category) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tender category is required")
	}
	if closingDeadline.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "closing deadline is required")
	}
	if !closingDeadline.After(now) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "closing deadline must be in the future")
	}
	return &Tender{
		ID:              tenderID,
		OwnerID:         issuer,
		Name:            name,
		Description:     strings.TrimSpace(description),
		Category:        category,
		Active:          true,
		ClosingDeadline: closingDeadline,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// OwnedBy reports whether issuer owns this tender. Ownership gates every
// mutation and the proposal decision flow; it is business logic layered on
// top of the path-level access policy, not part of it.
func (t *Tender) OwnedBy(issuer id.UserID) bool {
	return t.OwnerID == issuer
}

// ApplyEdit updates the owner-editable fields. Callers must have verified
// ownership first.
func (t *Tender) ApplyEdit(name, description, category string, closingDeadline time.Time, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "tender name is required")
	}
	if len(name) > 200 {
		return dErrors.New(dErrors.CodeBadRequest, "tender name must be 200 characters or less")
	}
	if strings.TrimSpace(category) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "tender category is required")
	}
	if closingDeadline.IsZero() {
		return dErrors.New(dErrors.CodeBadRequest, "closing deadline is required")
	}
	t.Name = name
	t.Description = strings.TrimSpace(description)
	t.Category = category
	t.ClosingDeadline = closingDeadline
	t.UpdatedAt = now
	return nil
}

// SetActive raises or lowers the owner-set activity flag. Deactivation is
// the only way a tender leaves listings; there is no delete.
func (t *Tender) SetActive(active bool, now time.Time) {
	t.Active = active
	t.UpdatedAt = now
}

// StatusFilter narrows listings by derived activity.
type StatusFilter string

const (
	StatusAll      StatusFilter = "all"
	StatusActive   StatusFilter = "active"
	StatusInactive StatusFilter = "inactive"
)

// Valid reports whether f is a known filter value.
func (f StatusFilter) Valid() bool {
	return f == StatusAll || f == StatusActive || f == StatusInactive
}

// Matches evaluates the filter against the tender's derived openness.
func (f StatusFilter) Matches(t *Tender, now time.Time) bool {
	switch f {
	case StatusActive:
		return t.IsOpen(now)
	case StatusInactive:
		return !t.IsOpen(now)
	default:
		return true
	}
}
