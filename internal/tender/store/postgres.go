package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"licibit/internal/tender/models"
	id "licibit/pkg/domain"
	"licibit/pkg/platform/sentinel"
)

// Postgres persists tenders in PostgreSQL via a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const tenderColumns = `id, owner_id, name, description, category, active, closing_deadline, created_at, updated_at`

func scanTender(row pgx.Row) (*models.Tender, error) {
	var t models.Tender
	err := row.Scan(&t.ID, &t.OwnerID, &t.Name, &t.Description, &t.Category, &t.Active, &t.ClosingDeadline, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan tender: %w", err)
	}
	return &t, nil
}

func (s *Postgres) Create(ctx context.Context, tender *models.Tender) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tenders (`+tenderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		tender.ID, tender.OwnerID, tender.Name, tender.Description, tender.Category,
		tender.Active, tender.ClosingDeadline, tender.CreatedAt, tender.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tender: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, tenderID id.TenderID) (*models.Tender, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+tenderColumns+` FROM tenders WHERE id = $1`, tenderID)
	return scanTender(row)
}

// Execute runs validate then mutate inside a transaction holding FOR UPDATE
// on the row, mirroring the memory store's locking semantics.
func (s *Postgres) Execute(ctx context.Context, tenderID id.TenderID, validate func(*models.Tender) error, mutate func(*models.Tender)) (*models.Tender, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+tenderColumns+` FROM tenders WHERE id = $1 FOR UPDATE`, tenderID)
	tender, err := scanTender(row)
	if err != nil {
		return nil, err
	}
	if err := validate(tender); err != nil {
		return nil, err
	}
	mutate(tender)

	_, err = tx.Exec(ctx, `
		UPDATE tenders
		SET name = $2, description = $3, category = $4, active = $5, closing_deadline = $6, updated_at = $7
		WHERE id = $1`,
		tender.ID, tender.Name, tender.Description, tender.Category, tender.Active,
		tender.ClosingDeadline, tender.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update tender: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return tender, nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Tender, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+tenderColumns+` FROM tenders ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list tenders: %w", err)
	}
	defer rows.Close()
	return collectTenders(rows)
}

func (s *Postgres) ListByOwner(ctx context.Context, owner id.UserID) ([]*models.Tender, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+tenderColumns+` FROM tenders WHERE owner_id = $1 ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list tenders by owner: %w", err)
	}
	defer rows.Close()
	return collectTenders(rows)
}

func collectTenders(rows pgx.Rows) ([]*models.Tender, error) {
	var out []*models.Tender
	for rows.Next() {
		tender, err := scanTender(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tender)
	}
	return out, rows.Err()
}
