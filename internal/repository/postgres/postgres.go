package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Schema describes how one entity maps onto its table. Every entity plugs
// into the generic Repository through a Schema; nothing else about an entity
// is visible to the data-access layer.
type Schema[T any] struct {
	// Table is the fully qualified table name.
	Table string
	// PK is the primary key column, used as the conflict target for upserts.
	PK string
	// Columns lists all columns in the order used for inserts and selects.
	Columns []string
	// Scan materializes one row, read in Columns order.
	Scan func(row pgx.Row) (T, error)
	// Values produces insert arguments aligned with Columns.
	Values func(entity T) []any
}
