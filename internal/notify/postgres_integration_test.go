//go:build integration

package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"licibit/internal/notify"
	id "licibit/pkg/domain"
	"licibit/pkg/platform/tx"
	"licibit/pkg/testutil/containers"
)

type PostgresOutboxSuite struct {
	suite.Suite
	pg     *containers.PostgresContainer
	outbox *notify.PostgresOutbox
}

func TestPostgresOutboxSuite(t *testing.T) {
	suite.Run(t, new(PostgresOutboxSuite))
}

func (s *PostgresOutboxSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.outbox = notify.NewPostgresOutbox(s.pg.DB)
}

func (s *PostgresOutboxSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(context.Background(), "notification_outbox"))
}

func (s *PostgresOutboxSuite) entry() *notify.Notification {
	return &notify.Notification{
		Kind:        notify.KindProposalSubmitted,
		RecipientID: id.UserID(uuid.New()),
		Payload:     []byte(`{"tender_name":"Bodega Norte"}`),
		CreatedAt:   time.Now().UTC(),
	}
}

func (s *PostgresOutboxSuite) TestEnqueueAndDrainLifecycle() {
	ctx := context.Background()

	first := s.entry()
	second := s.entry()
	s.Require().NoError(s.outbox.Enqueue(ctx, first))
	s.Require().NoError(s.outbox.Enqueue(ctx, second))
	s.Require().NotZero(first.ID)
	s.Require().Greater(second.ID, first.ID)

	pending, err := s.outbox.Pending(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Equal(first.ID, pending[0].ID)
	s.Equal(first.RecipientID, pending[0].RecipientID)
	s.JSONEq(`{"tender_name":"Bodega Norte"}`, string(pending[0].Payload))

	s.Require().NoError(s.outbox.MarkDispatched(ctx, []int64{first.ID}))

	pending, err = s.outbox.Pending(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal(second.ID, pending[0].ID)
}

func (s *PostgresOutboxSuite) TestPendingRespectsLimit() {
	ctx := context.Background()
	for range 5 {
		s.Require().NoError(s.outbox.Enqueue(ctx, s.entry()))
	}

	pending, err := s.outbox.Pending(ctx, 3)
	s.Require().NoError(err)
	s.Len(pending, 3)
}

// An entry enqueued inside a caller transaction must disappear when the
// transaction rolls back and survive when it commits.
func (s *PostgresOutboxSuite) TestEnqueueJoinsAmbientTransaction() {
	ctx := context.Background()

	rollback, err := s.pg.DB.BeginTx(ctx, nil)
	s.Require().NoError(err)
	s.Require().NoError(s.outbox.Enqueue(tx.WithTx(ctx, rollback), s.entry()))
	s.Require().NoError(rollback.Rollback())

	pending, err := s.outbox.Pending(ctx, 10)
	s.Require().NoError(err)
	s.Empty(pending)

	commit, err := s.pg.DB.BeginTx(ctx, nil)
	s.Require().NoError(err)
	kept := s.entry()
	s.Require().NoError(s.outbox.Enqueue(tx.WithTx(ctx, commit), kept))
	s.Require().NoError(commit.Commit())

	pending, err = s.outbox.Pending(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal(kept.ID, pending[0].ID)
}
