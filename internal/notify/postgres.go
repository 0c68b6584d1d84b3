package notify

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"licibit/pkg/platform/tx"
)

// PostgresOutbox persists the outbox via database/sql. It deliberately uses
// a separate handle from the pgx domain stores so the relay's polling load
// stays off the request-serving pool.
type PostgresOutbox struct {
	db *sql.DB
}

func NewPostgresOutbox(db *sql.DB) *PostgresOutbox {
	return &PostgresOutbox{db: db}
}

// Enqueue inserts an outbox entry. When the context carries a transaction
// the insert joins it, so an event commits or rolls back with the domain
// write it belongs to.
func (s *PostgresOutbox) Enqueue(ctx context.Context, n *Notification) error {
	var row *sql.Row
	query := `
		INSERT INTO notification_outbox (kind, recipient_id, payload, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if ambient, ok := tx.From(ctx); ok {
		row = ambient.QueryRowContext(ctx, query, string(n.Kind), n.RecipientID.String(), []byte(n.Payload), n.CreatedAt)
	} else {
		row = s.db.QueryRowContext(ctx, query, string(n.Kind), n.RecipientID.String(), []byte(n.Payload), n.CreatedAt)
	}
	if err := row.Scan(&n.ID); err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}
	return nil
}

// Pending returns undispatched entries oldest first. The relay runs as a
// single worker per deployment; delivery is at-least-once either way since
// marking happens after the publish.
func (s *PostgresOutbox) Pending(ctx context.Context, limit int) ([]*Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, recipient_id, payload, created_at
		FROM notification_outbox
		WHERE dispatched_at IS NULL
		ORDER BY id
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending notifications: %w", err)
	}
	defer rows.Close()

	var out []*Notification
	for rows.Next() {
		var n Notification
		var recipient string
		if err := rows.Scan(&n.ID, &n.Kind, &recipient, &n.Payload, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if err := n.RecipientID.UnmarshalText([]byte(recipient)); err != nil {
			return nil, fmt.Errorf("parse recipient: %w", err)
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}

func (s *PostgresOutbox) MarkDispatched(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE notification_outbox SET dispatched_at = $1 WHERE id = ANY($2)`,
		time.Now(), pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("mark notifications dispatched: %w", err)
	}
	return nil
}
