package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"licibit/internal/proposal/models"
	id "licibit/pkg/domain"
	"licibit/pkg/platform/sentinel"
)

// Postgres persists proposals and their document references in PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const proposalColumns = `id, tender_id, supplier_id, state, note, created_at, updated_at`

const uniqueViolation = "23505"

func scanProposal(row pgx.Row) (*models.Proposal, error) {
	var p models.Proposal
	err := row.Scan(&p.ID, &p.TenderID, &p.SupplierID, &p.State, &p.Note, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan proposal: %w", err)
	}
	return &p, nil
}

// Create inserts the proposal and its document references in one transaction.
// The (tender, supplier) unique constraint maps to ErrConflict.
func (s *Postgres) Create(ctx context.Context, proposal *models.Proposal) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO proposals (`+proposalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		proposal.ID, proposal.TenderID, proposal.SupplierID, proposal.State,
		proposal.Note, proposal.CreatedAt, proposal.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert proposal: %w", err)
	}

	for _, doc := range proposal.Documents {
		_, err = tx.Exec(ctx, `
			INSERT INTO proposal_documents (id, proposal_id, path, file_name)
			VALUES ($1, $2, $3, $4)`,
			doc.ID, proposal.ID, doc.Path, doc.FileName,
		)
		if err != nil {
			return fmt.Errorf("insert proposal document: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (s *Postgres) FindByID(ctx context.Context, proposalID id.ProposalID) (*models.Proposal, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+proposalColumns+` FROM proposals WHERE id = $1`, proposalID)
	proposal, err := scanProposal(row)
	if err != nil {
		return nil, err
	}
	if err := s.attachDocuments(ctx, proposal); err != nil {
		return nil, err
	}
	return proposal, nil
}

// Execute runs validate then mutate inside a transaction holding FOR UPDATE
// on the proposal row, so concurrent decisions on the same proposal serialize.
func (s *Postgres) Execute(ctx context.Context, proposalID id.ProposalID, validate func(*models.Proposal) error, mutate func(*models.Proposal)) (*models.Proposal, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+proposalColumns+` FROM proposals WHERE id = $1 FOR UPDATE`, proposalID)
	proposal, err := scanProposal(row)
	if err != nil {
		return nil, err
	}
	if err := validate(proposal); err != nil {
		return nil, err
	}
	mutate(proposal)

	_, err = tx.Exec(ctx, `
		UPDATE proposals SET state = $2, note = $3, updated_at = $4 WHERE id = $1`,
		proposal.ID, proposal.State, proposal.Note, proposal.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update proposal: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	if err := s.attachDocuments(ctx, proposal); err != nil {
		return nil, err
	}
	return proposal, nil
}

func (s *Postgres) ListByTender(ctx context.Context, tenderID id.TenderID) ([]*models.Proposal, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+proposalColumns+` FROM proposals WHERE tender_id = $1 ORDER BY created_at DESC`, tenderID)
	if err != nil {
		return nil, fmt.Errorf("list proposals by tender: %w", err)
	}
	defer rows.Close()
	return s.collect(ctx, rows)
}

func (s *Postgres) ListBySupplier(ctx context.Context, supplier id.UserID) ([]*models.Proposal, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+proposalColumns+` FROM proposals WHERE supplier_id = $1 ORDER BY created_at DESC`, supplier)
	if err != nil {
		return nil, fmt.Errorf("list proposals by supplier: %w", err)
	}
	defer rows.Close()
	return s.collect(ctx, rows)
}

func (s *Postgres) collect(ctx context.Context, rows pgx.Rows) ([]*models.Proposal, error) {
	var out []*models.Proposal
	for rows.Next() {
		proposal, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, proposal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, proposal := range out {
		if err := s.attachDocuments(ctx, proposal); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Postgres) attachDocuments(ctx context.Context, proposal *models.Proposal) error {
	rows, err := s.pool.Query(ctx, `
		SELECT id, path, file_name FROM proposal_documents WHERE proposal_id = $1`, proposal.ID)
	if err != nil {
		return fmt.Errorf("list proposal documents: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var doc models.DocumentRef
		if err := rows.Scan(&doc.ID, &doc.Path, &doc.FileName); err != nil {
			return fmt.Errorf("scan proposal document: %w", err)
		}
		proposal.Documents = append(proposal.Documents, doc)
	}
	return rows.Err()
}
