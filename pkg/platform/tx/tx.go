// Package tx carries a database/sql transaction through context so a store
// write can join a transaction opened by its caller.
package tx

import (
	"context"
	"database/sql"
)

type ctxKey struct{}

var txKey = ctxKey{}

// WithTx stores a transaction in the context for downstream stores.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts the ambient transaction, if any.
func From(ctx context.Context) (*sql.Tx, bool) {
	t, ok := ctx.Value(txKey).(*sql.Tx)
	return t, ok
}
