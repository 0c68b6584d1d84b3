// Package domain defines typed identifiers and shared domain vocabulary.
//
// Every aggregate gets its own UUID-backed ID type so the compiler rejects
// cross-aggregate mixups (passing a TenderID where a ProposalID is expected).
package domain

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"

	dErrors "licibit/pkg/domain-errors"
)

// Typed identifiers for the marketplace aggregates.
type (
	UserID     uuid.UUID
	TenderID   uuid.UUID
	ProposalID uuid.UUID
	DocumentID uuid.UUID
)

func (id UserID) String() string     { return uuid.UUID(id).String() }
func (id TenderID) String() string   { return uuid.UUID(id).String() }
func (id ProposalID) String() string { return uuid.UUID(id).String() }
func (id DocumentID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsZero() bool     { return uuid.UUID(id) == uuid.Nil }
func (id TenderID) IsZero() bool   { return uuid.UUID(id) == uuid.Nil }
func (id ProposalID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }
func (id DocumentID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// Text marshaling keeps IDs as canonical UUID strings on the wire.

func (id UserID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id TenderID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }
func (id ProposalID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id DocumentID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	parsed, err := ParseUserID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *TenderID) UnmarshalText(b []byte) error {
	parsed, err := ParseTenderID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ProposalID) UnmarshalText(b []byte) error {
	parsed, err := ParseProposalID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *DocumentID) UnmarshalText(b []byte) error {
	parsed, err := ParseDocumentID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// SQL round-trips go through the underlying uuid type.

func (id UserID) Value() (driver.Value, error)     { return id.String(), nil }
func (id TenderID) Value() (driver.Value, error)   { return id.String(), nil }
func (id ProposalID) Value() (driver.Value, error) { return id.String(), nil }
func (id DocumentID) Value() (driver.Value, error) { return id.String(), nil }

func (id *UserID) Scan(src any) error     { return (*uuid.UUID)(id).Scan(src) }
func (id *TenderID) Scan(src any) error   { return (*uuid.UUID)(id).Scan(src) }
func (id *ProposalID) Scan(src any) error { return (*uuid.UUID)(id).Scan(src) }
func (id *DocumentID) Scan(src any) error { return (*uuid.UUID)(id).Scan(src) }

// parseUUID enforces the shared invariant: IDs must be valid, non-nil UUIDs.
func parseUUID(raw, kind string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("%s id is required", kind))
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("%s id is not a valid UUID", kind))
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("%s id cannot be the nil UUID", kind))
	}
	return parsed, nil
}

func ParseUserID(raw string) (UserID, error) {
	parsed, err := parseUUID(raw, "user")
	return UserID(parsed), err
}

func ParseTenderID(raw string) (TenderID, error) {
	parsed, err := parseUUID(raw, "tender")
	return TenderID(parsed), err
}

func ParseProposalID(raw string) (ProposalID, error) {
	parsed, err := parseUUID(raw, "proposal")
	return ProposalID(parsed), err
}

func ParseDocumentID(raw string) (DocumentID, error) {
	parsed, err := parseUUID(raw, "document")
	return DocumentID(parsed), err
}
