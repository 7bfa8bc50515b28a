package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx, so repository methods
// can run standalone or inside a service-owned transaction.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ErrNoRows re-exports pgx.ErrNoRows for callers that don't import pgx.
var ErrNoRows = pgx.ErrNoRows

// IsNoRows reports whether err is a row-not-found error.
func IsNoRows(err error) bool { return errors.Is(err, pgx.ErrNoRows) }
