package notify

import (
	"context"
	"encoding/json"
	"fmt"

	proposalmodels "licibit/internal/proposal/models"
	tendermodels "licibit/internal/tender/models"
	id "licibit/pkg/domain"
	"licibit/pkg/requestcontext"
)

// Service composes notifications and enqueues them in the outbox. It
// implements the proposal service's Notifier.
type Service struct {
	outbox   OutboxStore
	composer *Composer
}

func NewService(outbox OutboxStore, composer *Composer) *Service {
	return &Service{outbox: outbox, composer: composer}
}

// ProposalSubmitted tells the tender's issuer a new quote arrived.
func (s *Service) ProposalSubmitted(ctx context.Context, tender *tendermodels.Tender, proposal *proposalmodels.Proposal) error {
	message := s.composer.SubmittedMessage(tender)
	return s.enqueue(ctx, KindProposalSubmitted, tender, proposal, tender.OwnerID, message)
}

// ProposalDecided tells the supplier the issuer decided on their quote.
func (s *Service) ProposalDecided(ctx context.Context, tender *tendermodels.Tender, proposal *proposalmodels.Proposal) error {
	message := s.composer.DecidedMessage(tender, proposal.State)
	return s.enqueue(ctx, KindProposalDecided, tender, proposal, proposal.SupplierID, message)
}

func (s *Service) enqueue(ctx context.Context, kind Kind, tender *tendermodels.Tender, proposal *proposalmodels.Proposal, recipient id.UserID, message string) error {
	payload, err := json.Marshal(Payload{
		TenderID:     tender.ID,
		TenderName:   tender.Name,
		ProposalID:   proposal.ID,
		State:        string(proposal.State),
		Message:      message,
		WhatsAppLink: s.composer.WhatsAppLink(message),
	})
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	return s.outbox.Enqueue(ctx, &Notification{
		Kind:        kind,
		RecipientID: recipient,
		Payload:     payload,
		CreatedAt:   requestcontext.Now(ctx),
	})
}
