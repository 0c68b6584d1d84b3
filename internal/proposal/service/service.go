// Package service implements the proposal lifecycle: submission against open
// tenders and the issuer decision flow.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	proposalmetrics "licibit/internal/proposal/metrics"
	"licibit/internal/proposal/models"
	tendermodels "licibit/internal/tender/models"
	id "licibit/pkg/domain"
	dErrors "licibit/pkg/domain-errors"
	"licibit/pkg/platform/sentinel"
	"licibit/pkg/requestcontext"
)

var tracer = otel.Tracer("licibit/proposal")

// ProposalStore is the persistence surface for proposals.
type ProposalStore interface {
	Create(ctx context.Context, proposal *models.Proposal) error
	FindByID(ctx context.Context, proposalID id.ProposalID) (*models.Proposal, error)
	Execute(ctx context.Context, proposalID id.ProposalID, validate func(*models.Proposal) error, mutate func(*models.Proposal)) (*models.Proposal, error)
	ListByTender(ctx context.Context, tenderID id.TenderID) ([]*models.Proposal, error)
	ListBySupplier(ctx context.Context, supplier id.UserID) ([]*models.Proposal, error)
}

// TenderReader is the read-only view of tenders the proposal flow needs:
// openness at submission time and ownership at decision time.
type TenderReader interface {
	FindByID(ctx context.Context, tenderID id.TenderID) (*tendermodels.Tender, error)
}

// Notifier is told about proposal events after they are durably stored.
//
//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks
type Notifier interface {
	ProposalSubmitted(ctx context.Context, tender *tendermodels.Tender, proposal *models.Proposal) error
	ProposalDecided(ctx context.Context, tender *tendermodels.Tender, proposal *models.Proposal) error
}

// Service owns proposal business rules.
type Service struct {
	proposals ProposalStore
	tenders   TenderReader
	notifier  Notifier
	metrics   *proposalmetrics.Metrics
	logger    *slog.Logger
}

func New(proposals ProposalStore, tenders TenderReader, notifier Notifier, metrics *proposalmetrics.Metrics, logger *slog.Logger) *Service {
	return &Service{proposals: proposals, tenders: tenders, notifier: notifier, metrics: metrics, logger: logger}
}

// SubmitInput carries the supplier-supplied fields of a new proposal.
type SubmitInput struct {
	TenderID  id.TenderID
	Note      string
	Documents []models.DocumentRef
}

// Submit creates a proposal in the sent state. The tender must be open at
// the request's instant; a closed tender rejects with a distinct code so
// clients can tell "too late" from "bad input".
func (s *Service) Submit(ctx context.Context, supplier id.UserID, in SubmitInput) (*models.Proposal, error) {
	ctx, span := tracer.Start(ctx, "proposal.Submit")
	defer span.End()

	if supplier.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	tender, err := s.tenders.FindByID(ctx, in.TenderID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "tender not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tender")
	}

	now := requestcontext.Now(ctx)
	if !tender.IsOpen(now) {
		s.incrBlocked()
		return nil, dErrors.New(dErrors.CodeTenderClosed, "tender is no longer accepting proposals")
	}
	if tender.OwnedBy(supplier) {
		return nil, dErrors.New(dErrors.CodeForbidden, "issuers cannot quote their own tenders")
	}

	proposal, err := models.NewProposal(id.ProposalID(uuid.New()), tender.ID, supplier, in.Note, in.Documents, now)
	if err != nil {
		return nil, err
	}
	if err := s.proposals.Create(ctx, proposal); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "a proposal for this tender already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store proposal")
	}
	s.incrSubmitted()

	// The write is durable; notification failure must not undo it.
	if err := s.notifier.ProposalSubmitted(ctx, tender, proposal); err != nil {
		s.logger.Error("proposal submitted notification failed",
			"proposal_id", proposal.ID, "error", err)
	}
	return proposal, nil
}

// Transition applies an issuer decision. Only the owner of the referenced
// tender may decide; accepted and rejected may flip without bound, sent is
// never re-entered.
func (s *Service) Transition(ctx context.Context, issuer id.UserID, proposalID id.ProposalID, next models.State) (*models.Proposal, error) {
	ctx, span := tracer.Start(ctx, "proposal.Transition")
	defer span.End()

	now := requestcontext.Now(ctx)
	var tender *tendermodels.Tender
	proposal, err := s.proposals.Execute(ctx, proposalID,
		func(p *models.Proposal) error {
			var err error
			tender, err = s.tenders.FindByID(ctx, p.TenderID)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tender")
			}
			if !tender.OwnedBy(issuer) {
				return dErrors.New(dErrors.CodeUnauthorized, "only the tender owner may decide on proposals")
			}
			return p.CanTransition(next)
		},
		func(p *models.Proposal) {
			p.ApplyTransition(next, now)
		},
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "proposal not found")
		}
		var de *dErrors.Error
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to transition proposal")
	}
	s.incrDecision(next)

	if err := s.notifier.ProposalDecided(ctx, tender, proposal); err != nil {
		s.logger.Error("proposal decided notification failed",
			"proposal_id", proposal.ID, "error", err)
	}
	return proposal, nil
}

// Get returns one proposal. Visible to the submitting supplier and to the
// owner of the referenced tender, nobody else.
func (s *Service) Get(ctx context.Context, caller id.UserID, proposalID id.ProposalID) (*models.Proposal, error) {
	proposal, err := s.proposals.FindByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "proposal not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load proposal")
	}
	if proposal.SupplierID == caller {
		return proposal, nil
	}
	tender, err := s.tenders.FindByID(ctx, proposal.TenderID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tender")
	}
	if !tender.OwnedBy(caller) {
		return nil, dErrors.New(dErrors.CodeForbidden, "proposal is not visible to this user")
	}
	return proposal, nil
}

// ListByTender returns a tender's proposals for its owning issuer.
func (s *Service) ListByTender(ctx context.Context, issuer id.UserID, tenderID id.TenderID) ([]*models.Proposal, error) {
	tender, err := s.tenders.FindByID(ctx, tenderID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "tender not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tender")
	}
	if !tender.OwnedBy(issuer) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "only the tender owner may list its proposals")
	}
	proposals, err := s.proposals.ListByTender(ctx, tenderID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list proposals")
	}
	return proposals, nil
}

// ListBySupplier returns the supplier's own proposals.
func (s *Service) ListBySupplier(ctx context.Context, supplier id.UserID) ([]*models.Proposal, error) {
	proposals, err := s.proposals.ListBySupplier(ctx, supplier)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list proposals")
	}
	return proposals, nil
}

func (s *Service) incrSubmitted() {
	if s.metrics != nil {
		s.metrics.ProposalsSubmitted.Inc()
	}
}

func (s *Service) incrBlocked() {
	if s.metrics != nil {
		s.metrics.SubmissionsBlocked.Inc()
	}
}

func (s *Service) incrDecision(next models.State) {
	if s.metrics != nil {
		s.metrics.ProposalDecisions.WithLabelValues(string(next)).Inc()
	}
}
