// Package notify carries proposal events to suppliers and issuers. Events
// are enqueued in a durable outbox in the same database as the domain write,
// then relayed to the message broker by a background worker, so a broker
// outage never loses a notification.
package notify

import (
	"encoding/json"
	"time"

	id "licibit/pkg/domain"
)

// Kind classifies a notification.
type Kind string

const (
	KindProposalSubmitted Kind = "proposal_submitted"
	KindProposalDecided   Kind = "proposal_decided"
)

// Notification is one outbox entry. ID is assigned by the store.
type Notification struct {
	ID           int64           `json:"id"`
	Kind         Kind            `json:"kind"`
	RecipientID  id.UserID       `json:"recipient_id"`
	Payload      json.RawMessage `json:"payload"`
	CreatedAt    time.Time       `json:"created_at"`
	DispatchedAt *time.Time      `json:"dispatched_at,omitempty"`
}

// Payload is the structured body placed on the wire.
type Payload struct {
	TenderID     id.TenderID   `json:"tender_id"`
	TenderName   string        `json:"tender_name"`
	ProposalID   id.ProposalID `json:"proposal_id"`
	State        string        `json:"state"`
	Message      string        `json:"message"`
	WhatsAppLink string        `json:"whatsapp_link"`
}
