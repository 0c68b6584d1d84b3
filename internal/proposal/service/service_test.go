package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"licibit/internal/proposal/models"
	"licibit/internal/proposal/service/mocks"
	"licibit/internal/proposal/store"
	tendermodels "licibit/internal/tender/models"
	tenderstore "licibit/internal/tender/store"
	id "licibit/pkg/domain"
	dErrors "licibit/pkg/domain-errors"
	"licibit/pkg/requestcontext"
)

type fixture struct {
	svc      *Service
	tenders  *tenderstore.InMemory
	notifier *mocks.MockNotifier
	issuer   id.UserID
	supplier id.UserID
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	tenders := tenderstore.NewInMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		svc:      New(store.NewInMemory(), tenders, notifier, nil, logger),
		tenders:  tenders,
		notifier: notifier,
		issuer:   id.UserID(uuid.New()),
		supplier: id.UserID(uuid.New()),
		now:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), f.now)
}

func (f *fixture) openTender(t *testing.T) *tendermodels.Tender {
	t.Helper()
	tender, err := tendermodels.NewTender(
		id.TenderID(uuid.New()), f.issuer,
		"Obra", "detalle", "Pintura en muros",
		f.now.Add(48*time.Hour), f.now,
	)
	require.NoError(t, err)
	require.NoError(t, f.tenders.Create(context.Background(), tender))
	return tender
}

func TestSubmit(t *testing.T) {
	f := newFixture(t)
	tender := f.openTender(t)

	f.notifier.EXPECT().
		ProposalSubmitted(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)

	proposal, err := f.svc.Submit(f.ctx(), f.supplier, SubmitInput{
		TenderID: tender.ID,
		Note:     "Cotización adjunta",
		Documents: []models.DocumentRef{
			{ID: id.DocumentID(uuid.New()), Path: "quotes/q1.pdf", FileName: "q1.pdf"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StateSent, proposal.State)
	assert.Equal(t, f.supplier, proposal.SupplierID)
	assert.Len(t, proposal.Documents, 1)
}

func TestSubmit_ClosedTender(t *testing.T) {
	t.Run("deactivated", func(t *testing.T) {
		f := newFixture(t)
		tender := f.openTender(t)
		_, err := f.tenders.Execute(context.Background(), tender.ID,
			func(*tendermodels.Tender) error { return nil },
			func(tt *tendermodels.Tender) { tt.SetActive(false, f.now) },
		)
		require.NoError(t, err)

		_, err = f.svc.Submit(f.ctx(), f.supplier, SubmitInput{TenderID: tender.ID})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTenderClosed))
	})

	t.Run("deadline passed", func(t *testing.T) {
		f := newFixture(t)
		tender := f.openTender(t)
		f.now = f.now.Add(72 * time.Hour)

		_, err := f.svc.Submit(f.ctx(), f.supplier, SubmitInput{TenderID: tender.ID})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTenderClosed))
	})

	t.Run("exactly at deadline", func(t *testing.T) {
		f := newFixture(t)
		tender := f.openTender(t)
		f.now = tender.ClosingDeadline

		_, err := f.svc.Submit(f.ctx(), f.supplier, SubmitInput{TenderID: tender.ID})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTenderClosed))
	})
}

func TestSubmit_NoNotificationWhenBlocked(t *testing.T) {
	f := newFixture(t)
	tender := f.openTender(t)
	f.now = f.now.Add(72 * time.Hour)

	// No EXPECT set: any notifier call fails the test.
	_, err := f.svc.Submit(f.ctx(), f.supplier, SubmitInput{TenderID: tender.ID})
	require.Error(t, err)
}

func TestSubmit_UnknownTender(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Submit(f.ctx(), f.supplier, SubmitInput{TenderID: id.TenderID(uuid.New())})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestSubmit_OwnTenderForbidden(t *testing.T) {
	f := newFixture(t)
	tender := f.openTender(t)

	_, err := f.svc.Submit(f.ctx(), f.issuer, SubmitInput{TenderID: tender.ID})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestSubmit_DuplicateConflicts(t *testing.T) {
	f := newFixture(t)
	tender := f.openTender(t)

	f.notifier.EXPECT().
		ProposalSubmitted(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)

	_, err := f.svc.Submit(f.ctx(), f.supplier, SubmitInput{TenderID: tender.ID})
	require.NoError(t, err)

	_, err = f.svc.Submit(f.ctx(), f.supplier, SubmitInput{TenderID: tender.ID})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestSubmit_NotificationFailureDoesNotUndoWrite(t *testing.T) {
	f := newFixture(t)
	tender := f.openTender(t)

	f.notifier.EXPECT().
		ProposalSubmitted(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	proposal, err := f.svc.Submit(f.ctx(), f.supplier, SubmitInput{TenderID: tender.ID})
	require.NoError(t, err)

	stored, err := f.svc.Get(f.ctx(), f.supplier, proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateSent, stored.State)
}

func submit(t *testing.T, f *fixture, tender *tendermodels.Tender) *models.Proposal {
	t.Helper()
	f.notifier.EXPECT().
		ProposalSubmitted(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	proposal, err := f.svc.Submit(f.ctx(), f.supplier, SubmitInput{TenderID: tender.ID})
	require.NoError(t, err)
	return proposal
}

func TestTransition(t *testing.T) {
	f := newFixture(t)
	tender := f.openTender(t)
	proposal := submit(t, f, tender)

	f.notifier.EXPECT().
		ProposalDecided(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)

	updated, err := f.svc.Transition(f.ctx(), f.issuer, proposal.ID, models.StateAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.StateAccepted, updated.State)
}

func TestTransition_FlipFlop(t *testing.T) {
	f := newFixture(t)
	tender := f.openTender(t)
	proposal := submit(t, f, tender)

	f.notifier.EXPECT().
		ProposalDecided(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(4)

	for _, next := range []models.State{
		models.StateAccepted, models.StateRejected, models.StateAccepted, models.StateAccepted,
	} {
		updated, err := f.svc.Transition(f.ctx(), f.issuer, proposal.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.State)
	}
}

func TestTransition_NeverBackToSent(t *testing.T) {
	f := newFixture(t)
	tender := f.openTender(t)
	proposal := submit(t, f, tender)

	_, err := f.svc.Transition(f.ctx(), f.issuer, proposal.ID, models.StateSent)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestTransition_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	tender := f.openTender(t)
	proposal := submit(t, f, tender)

	// No ProposalDecided EXPECT: a rejected transition must not notify.
	_, err := f.svc.Transition(f.ctx(), f.supplier, proposal.ID, models.StateAccepted)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

	stored, err := f.svc.Get(f.ctx(), f.supplier, proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateSent, stored.State)
}

func TestTransition_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Transition(f.ctx(), f.issuer, id.ProposalID(uuid.New()), models.StateAccepted)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestTransition_AllowedAfterTenderCloses(t *testing.T) {
	f := newFixture(t)
	tender := f.openTender(t)
	proposal := submit(t, f, tender)

	// Decisions remain possible after the deadline; only submissions stop.
	f.now = f.now.Add(72 * time.Hour)
	f.notifier.EXPECT().
		ProposalDecided(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	updated, err := f.svc.Transition(f.ctx(), f.issuer, proposal.ID, models.StateRejected)
	require.NoError(t, err)
	assert.Equal(t, models.StateRejected, updated.State)
}

func TestGet_Visibility(t *testing.T) {
	f := newFixture(t)
	tender := f.openTender(t)
	proposal := submit(t, f, tender)

	_, err := f.svc.Get(f.ctx(), f.supplier, proposal.ID)
	assert.NoError(t, err, "submitting supplier sees the proposal")

	_, err = f.svc.Get(f.ctx(), f.issuer, proposal.ID)
	assert.NoError(t, err, "tender owner sees the proposal")

	_, err = f.svc.Get(f.ctx(), id.UserID(uuid.New()), proposal.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestListByTender_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	tender := f.openTender(t)
	submit(t, f, tender)

	proposals, err := f.svc.ListByTender(f.ctx(), f.issuer, tender.ID)
	require.NoError(t, err)
	assert.Len(t, proposals, 1)

	_, err = f.svc.ListByTender(f.ctx(), f.supplier, tender.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestListBySupplier(t *testing.T) {
	f := newFixture(t)
	tender := f.openTender(t)
	submit(t, f, tender)

	mine, err := f.svc.ListBySupplier(f.ctx(), f.supplier)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	none, err := f.svc.ListBySupplier(f.ctx(), id.UserID(uuid.New()))
	require.NoError(t, err)
	assert.Empty(t, none)
}
