package duckdb

import (
	"context"
	"database/sql"
)

type txKey struct{}

// WithTransaction threads a transaction through a request context so
// store writes inside an atomic batch share it.
func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetTransaction returns the ambient transaction, or nil when the
// caller is not inside one.
func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}
