// Package service orchestrates the tender lifecycle: publication, owner
// edits, deactivation, and the filtered listings every screen shares.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	tendermetrics "licibit/internal/tender/metrics"
	"licibit/internal/tender/models"
	"licibit/internal/taxonomy"
	id "licibit/pkg/domain"
	dErrors "licibit/pkg/domain-errors"
	"licibit/pkg/platform/sentinel"
	"licibit/pkg/requestcontext"
)

var tracer = otel.Tracer("licibit/tender")

// TenderStore is the persistence surface for tenders.
type TenderStore interface {
	Create(ctx context.Context, tender *models.Tender) error
	FindByID(ctx context.Context, tenderID id.TenderID) (*models.Tender, error)
	Execute(ctx context.Context, tenderID id.TenderID, validate func(*models.Tender) error, mutate func(*models.Tender)) (*models.Tender, error)
	List(ctx context.Context) ([]*models.Tender, error)
	ListByOwner(ctx context.Context, owner id.UserID) ([]*models.Tender, error)
}

// Service owns tender business rules.
type Service struct {
	tenders TenderStore
	catalog taxonomy.Taxonomy
	metrics *tendermetrics.Metrics
}

func New(tenders TenderStore, catalog taxonomy.Taxonomy, metrics *tendermetrics.Metrics) *Service {
	return &Service{tenders: tenders, catalog: catalog, metrics: metrics}
}

// CreateInput carries the issuer-supplied fields of a new tender.
type CreateInput struct {
	Name            string
	Description     string
	Category        string
	ClosingDeadline time.Time
}

// Create publishes a new tender owned by issuer. The category may be any
// catalog label or an ad-hoc one; ad-hoc labels are kept as-is and never
// written back into the catalog.
func (s *Service) Create(ctx context.Context, issuer id.UserID, in CreateInput) (*models.Tender, error) {
	ctx, span := tracer.Start(ctx, "tender.Create")
	defer span.End()

	if issuer.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	now := requestcontext.Now(ctx)
	tender, err := models.NewTender(
		id.TenderID(uuid.New()), issuer,
		in.Name, in.Description, in.Category,
		in.ClosingDeadline, now,
	)
	if err != nil {
		return nil, err
	}
	if err := s.tenders.Create(ctx, tender); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store tender")
	}
	s.incrCreated()
	return tender, nil
}

// Get returns one tender with its countdown rendered at request time.
func (s *Service) Get(ctx context.Context, tenderID id.TenderID) (*models.Tender, models.Countdown, error) {
	tender, err := s.tenders.FindByID(ctx, tenderID)
	if err != nil {
		return nil, models.Countdown{}, wrapTenderErr(err)
	}
	now := requestcontext.Now(ctx)
	return tender, models.Remaining(now, tender.ClosingDeadline), nil
}

// EditInput carries the owner-editable fields.
type EditInput struct {
	Name            string
	Description     string
	Category        string
	ClosingDeadline time.Time
	Active          bool
}

// Edit updates a tender. Only the owning issuer may edit.
func (s *Service) Edit(ctx context.Context, issuer id.UserID, tenderID id.TenderID, in EditInput) (*models.Tender, error) {
	ctx, span := tracer.Start(ctx, "tender.Edit")
	defer span.End()

	now := requestcontext.Now(ctx)
	tender, err := s.tenders.Execute(ctx, tenderID,
		func(t *models.Tender) error {
			if !t.OwnedBy(issuer) {
				return dErrors.New(dErrors.CodeUnauthorized, "only the owning issuer may edit a tender")
			}
			// Validate against a copy so a rejected edit leaves the record untouched.
			probe := *t
			return probe.ApplyEdit(in.Name, in.Description, in.Category, in.ClosingDeadline, now)
		},
		func(t *models.Tender) {
			_ = t.ApplyEdit(in.Name, in.Description, in.Category, in.ClosingDeadline, now)
			t.SetActive(in.Active, now)
		},
	)
	if err != nil {
		return nil, wrapTenderErr(err)
	}
	return tender, nil
}

// Deactivate lowers the activity flag. Tenders are never deleted.
func (s *Service) Deactivate(ctx context.Context, issuer id.UserID, tenderID id.TenderID) (*models.Tender, error) {
	ctx, span := tracer.Start(ctx, "tender.Deactivate")
	defer span.End()

	now := requestcontext.Now(ctx)
	tender, err := s.tenders.Execute(ctx, tenderID,
		func(t *models.Tender) error {
			if !t.OwnedBy(issuer) {
				return dErrors.New(dErrors.CodeUnauthorized, "only the owning issuer may deactivate a tender")
			}
			return nil
		},
		func(t *models.Tender) {
			t.SetActive(false, now)
		},
	)
	if err != nil {
		return nil, wrapTenderErr(err)
	}
	s.incrDeactivated()
	return tender, nil
}

// ListFilter narrows the public listing. Zero value lists everything.
type ListFilter struct {
	SelectedLabels []string
	Status         models.StatusFilter
}

// Listing is one row of a filtered listing, countdown included so cards can
// render without a second roundtrip.
type Listing struct {
	Tender    *models.Tender   `json:"tender"`
	IsOpen    bool             `json:"is_open"`
	Countdown models.Countdown `json:"countdown"`
}

// List returns the visible set for a listing screen: the intersection of the
// selected-label predicate and the status predicate, both evaluated at
// request time.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Listing, error) {
	ctx, span := tracer.Start(ctx, "tender.List")
	defer span.End()

	status := filter.Status
	if status == "" {
		status = models.StatusAll
	}
	if !status.Valid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "status must be all, active, or inactive")
	}

	tenders, err := s.tenders.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tenders")
	}

	now := requestcontext.Now(ctx)
	listings := make([]Listing, 0, len(tenders))
	for _, tender := range tenders {
		if !taxonomy.MatchesSelection(tender.Category, filter.SelectedLabels) {
			continue
		}
		if !status.Matches(tender, now) {
			continue
		}
		listings = append(listings, Listing{
			Tender:    tender,
			IsOpen:    tender.IsOpen(now),
			Countdown: models.Remaining(now, tender.ClosingDeadline),
		})
	}
	s.incrListing()
	return listings, nil
}

// ListOwn returns the issuer's own tenders, open or not.
func (s *Service) ListOwn(ctx context.Context, issuer id.UserID) ([]Listing, error) {
	tenders, err := s.tenders.ListByOwner(ctx, issuer)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list own tenders")
	}
	now := requestcontext.Now(ctx)
	listings := make([]Listing, 0, len(tenders))
	for _, tender := range tenders {
		listings = append(listings, Listing{
			Tender:    tender,
			IsOpen:    tender.IsOpen(now),
			Countdown: models.Remaining(now, tender.ClosingDeadline),
		})
	}
	return listings, nil
}

// Browse filters the specialization catalog for the taxonomy UI.
func (s *Service) Browse(query string) taxonomy.Taxonomy {
	return s.catalog.Browse(query)
}

func wrapTenderErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "tender not found")
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "tender operation failed")
}

func (s *Service) incrCreated() {
	if s.metrics != nil {
		s.metrics.TendersCreated.Inc()
	}
}

func (s *Service) incrDeactivated() {
	if s.metrics != nil {
		s.metrics.TendersDeactivated.Inc()
	}
}

func (s *Service) incrListing() {
	if s.metrics != nil {
		s.metrics.ListingQueries.Inc()
	}
}
