package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUnconfigured is returned by every operation on the Disabled store.
var ErrUnconfigured = errors.New("datastore is not configured")

// Disabled is a null-object Querier used when DB_DSN is absent. The process
// still boots and serves requests; every query fails with ErrUnconfigured,
// which read-aggregation callers degrade to empty defaults.
type Disabled struct{}

func (Disabled) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, ErrUnconfigured
}

func (Disabled) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return errRow{}
}

func (Disabled) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, ErrUnconfigured
}

type errRow struct{}

func (errRow) Scan(dest ...any) error { return ErrUnconfigured }
