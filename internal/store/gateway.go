// Package store is the persistence gateway for customer records.
//
// It is the only place that knows about the customers table layout. Callers
// see core.Record values; column names never leak past this package.
package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tradescout/tradescout/internal/core"
)

// Gateway is the persistence boundary for customers.
//
// Failures of the backend, including an unknown id on GetByID and Update, are
// reported as *core.TransportError. Create and Update trim their input and
// reject invalid values with core.ValidationErrors before any I/O.
type Gateway interface {
	List(ctx context.Context) ([]core.Record, error)
	GetByID(ctx context.Context, id string) (core.Record, error)
	Create(ctx context.Context, in core.Input) (core.Record, error)
	Update(ctx context.Context, id string, in core.Input) (core.Record, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, f core.SearchFilters) ([]core.Record, error)
	TestConnection(ctx context.Context) bool
}

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

var (
	_ Gateway = (*Postgres)(nil)
	_ Gateway = (*Memory)(nil)
)
