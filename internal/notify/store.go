package notify

import "context"

// OutboxStore persists notifications until the relay dispatches them.
type OutboxStore interface {
	Enqueue(ctx context.Context, n *Notification) error
	Pending(ctx context.Context, limit int) ([]*Notification, error)
	MarkDispatched(ctx context.Context, ids []int64) error
}
