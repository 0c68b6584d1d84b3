package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Publisher puts a notification on the broker. Satisfied by the Kafka client.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// Relay drains the outbox to the broker. One instance runs per deployment,
// started from main next to the HTTP server.
type Relay struct {
	outbox    OutboxStore
	publisher Publisher
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

func NewRelay(outbox OutboxStore, publisher Publisher, logger *slog.Logger) *Relay {
	return &Relay{
		outbox:    outbox,
		publisher: publisher,
		logger:    logger,
		interval:  5 * time.Second,
		batchSize: 100,
	}
}

// Run polls until ctx is cancelled. Publish errors leave the entry pending
// for the next tick; delivery is at-least-once.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.DrainOnce(ctx); err != nil {
				r.logger.Error("outbox drain failed", "error", err)
			}
		}
	}
}

// DrainOnce publishes one batch of pending notifications and marks the
// delivered ones dispatched.
func (r *Relay) DrainOnce(ctx context.Context) error {
	pending, err := r.outbox.Pending(ctx, r.batchSize)
	if err != nil {
		return fmt.Errorf("load pending: %w", err)
	}

	var delivered []int64
	for _, n := range pending {
		value, err := json.Marshal(n)
		if err != nil {
			r.logger.Error("notification marshal failed", "id", n.ID, "error", err)
			continue
		}
		if err := r.publisher.Publish(ctx, n.RecipientID.String(), value); err != nil {
			r.logger.Warn("notification publish failed, will retry", "id", n.ID, "error", err)
			break
		}
		delivered = append(delivered, n.ID)
	}

	if len(delivered) == 0 {
		return nil
	}
	return r.outbox.MarkDispatched(ctx, delivered)
}
