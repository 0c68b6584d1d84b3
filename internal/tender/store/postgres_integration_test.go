//go:build integration

package store_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"licibit/internal/tender/models"
	"licibit/internal/tender/store"
	id "licibit/pkg/domain"
	"licibit/pkg/platform/sentinel"
	"licibit/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
	owner    id.UserID
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.Pool)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	// Truncate in dependency order
	err := s.postgres.TruncateTables(ctx, "proposal_documents", "proposals", "tenders", "sessions", "users")
	s.Require().NoError(err)

	s.owner = id.UserID(uuid.New())
	_, err = s.postgres.DB.ExecContext(ctx, `
		INSERT INTO users (id, email, company_name, role, password_hash, created_at)
		VALUES ($1, $2, 'Constructora Test', 'constructora', 'x', NOW())`,
		s.owner.String(), uuid.NewString()+"@example.com")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newTender(name string) *models.Tender {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Tender{
		ID:              id.TenderID(uuid.New()),
		OwnerID:         s.owner,
		Name:            name,
		Description:     "detalle",
		Category:        "Pintura en muros",
		Active:          true,
		ClosingDeadline: now.Add(48 * time.Hour),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	tender := s.newTender("Fachada norte")

	s.Require().NoError(s.store.Create(ctx, tender))

	found, err := s.store.FindByID(ctx, tender.ID)
	s.Require().NoError(err)
	s.Equal(tender.Name, found.Name)
	s.Equal(tender.OwnerID, found.OwnerID)
	s.True(found.ClosingDeadline.Equal(tender.ClosingDeadline))
}

func (s *PostgresStoreSuite) TestFindNotFound() {
	_, err := s.store.FindByID(context.Background(), id.TenderID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestExecuteValidateFailureRollsBack() {
	ctx := context.Background()
	tender := s.newTender("Inmutable")
	s.Require().NoError(s.store.Create(ctx, tender))

	wantErr := sentinel.ErrInvalidState
	_, err := s.store.Execute(ctx, tender.ID,
		func(*models.Tender) error { return wantErr },
		func(t *models.Tender) { t.Name = "should not persist" },
	)
	s.ErrorIs(err, wantErr)

	found, err := s.store.FindByID(ctx, tender.ID)
	s.Require().NoError(err)
	s.Equal("Inmutable", found.Name)
}

func (s *PostgresStoreSuite) TestExecuteConcurrentSerializes() {
	ctx := context.Background()
	tender := s.newTender("Concurrente")
	s.Require().NoError(s.store.Create(ctx, tender))

	const goroutines = 20
	var wg sync.WaitGroup
	var failures atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Execute(ctx, tender.ID,
				func(*models.Tender) error { return nil },
				func(t *models.Tender) { t.SetActive(!t.Active, time.Now()) },
			)
			if err != nil {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(0), failures.Load(), "row lock should serialize, not fail")

	// Even number of toggles lands back on active.
	found, err := s.store.FindByID(ctx, tender.ID)
	s.Require().NoError(err)
	s.True(found.Active)
}

func (s *PostgresStoreSuite) TestListOrdering() {
	ctx := context.Background()

	older := s.newTender("Antigua")
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	s.Require().NoError(s.store.Create(ctx, older))
	newer := s.newTender("Reciente")
	s.Require().NoError(s.store.Create(ctx, newer))

	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("Reciente", all[0].Name)
	s.Equal("Antigua", all[1].Name)
}

func (s *PostgresStoreSuite) TestListByOwner() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newTender("Mía")))

	mine, err := s.store.ListByOwner(ctx, s.owner)
	s.Require().NoError(err)
	s.Len(mine, 1)

	none, err := s.store.ListByOwner(ctx, id.UserID(uuid.New()))
	s.Require().NoError(err)
	s.Empty(none)
}
