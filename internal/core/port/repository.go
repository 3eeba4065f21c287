package port

import "context"

// Filter is an opaque equality filter forwarded to the store as-is. Keys are
// column names in the entity's table; the repository never interprets values
// beyond binding them as query arguments.
type Filter map[string]any

// Order describes a single ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

// Criteria is the query descriptor passed from controllers to repositories.
// Controllers build it from request parameters and hand it through opaquely.
type Criteria struct {
	Filter  Filter
	OrderBy []Order
	Limit   int
	Offset  int
}

// Aggregation selects aggregate functions to compute over matching rows.
type Aggregation struct {
	Filter Filter
	Count  bool
	Sum    []string
	Avg    []string
	Min    []string
	Max    []string
}

// AggregateResult carries the computed aggregates keyed by column.
type AggregateResult struct {
	Count int64
	Sum   map[string]float64
	Avg   map[string]float64
	Min   map[string]any
	Max   map[string]any
}

// GroupSpec describes a GROUP BY query: grouping columns plus a row count.
type GroupSpec struct {
	Filter  Filter
	By      []string
	OrderBy []Order
	Limit   int
}

// Group is one grouped result row.
type Group struct {
	Keys  map[string]any
	Count int64
}

// Repository is the uniform data-access contract every entity implements.
// Implementations forward criteria and data opaquely to the backing store and
// only tag results with the entity's Go type; there is no business logic at
// this layer.
type Repository[T any] interface {
	FindUnique(ctx context.Context, filter Filter) (*T, error)
	FindFirst(ctx context.Context, criteria Criteria) (*T, error)
	FindMany(ctx context.Context, criteria Criteria) ([]T, error)
	Create(ctx context.Context, entity T) (*T, error)
	Update(ctx context.Context, filter Filter, data map[string]any) (*T, error)
	Upsert(ctx context.Context, entity T, update map[string]any) (*T, error)
	Delete(ctx context.Context, filter Filter) (*T, error)
	DeleteMany(ctx context.Context, filter Filter) (int64, error)
	UpdateMany(ctx context.Context, filter Filter, data map[string]any) (int64, error)
	Aggregate(ctx context.Context, spec Aggregation) (*AggregateResult, error)
	GroupBy(ctx context.Context, spec GroupSpec) ([]Group, error)
}
