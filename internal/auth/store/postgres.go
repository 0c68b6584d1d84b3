package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"licibit/internal/auth/models"
	id "licibit/pkg/domain"
	"licibit/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresUsers persists accounts in PostgreSQL.
type PostgresUsers struct {
	pool *pgxpool.Pool
}

func NewPostgresUsers(pool *pgxpool.Pool) *PostgresUsers {
	return &PostgresUsers{pool: pool}
}

const userColumns = `id, email, company_name, role, password_hash, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	var hash string
	err := row.Scan(&u.ID, &u.Email, &u.CompanyName, &u.Role, &hash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.PasswordHash = []byte(hash)
	return &u, nil
}

// Create inserts a user. The case-insensitive unique email index maps to
// ErrConflict.
func (s *PostgresUsers) Create(ctx context.Context, user *models.User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.CompanyName, user.Role, string(user.PasswordHash), user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
	return scanUser(row)
}

func (s *PostgresUsers) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	return scanUser(row)
}

// PostgresSessions persists login sessions in PostgreSQL.
type PostgresSessions struct {
	pool *pgxpool.Pool
}

func NewPostgresSessions(pool *pgxpool.Pool) *PostgresSessions {
	return &PostgresSessions{pool: pool}
}

func (s *PostgresSessions) Create(ctx context.Context, session *models.Session) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessions (id, user_id, role, device, ip_address, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		session.ID, session.UserID, session.Role, session.Device,
		session.IPAddress, session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *PostgresSessions) Find(ctx context.Context, sessionID string) (*models.Session, error) {
	var session models.Session
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, role, device, ip_address, created_at, expires_at
		FROM sessions WHERE id = $1`, sessionID).
		Scan(&session.ID, &session.UserID, &session.Role, &session.Device,
			&session.IPAddress, &session.CreatedAt, &session.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	return &session, nil
}

// Delete revokes a session. Deleting an absent session is not an error.
func (s *PostgresSessions) Delete(ctx context.Context, sessionID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
