package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/covenantlab/contract-platform/internal/core/port"
	"github.com/covenantlab/contract-platform/internal/repository"
)

// Repository is the single PostgreSQL implementation of port.Repository. It
// is instantiated once per entity with that entity's Schema; every entity in
// the system goes through this exact code path with zero deviation.
type Repository[T any] struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
	schema  Schema[T]
	columns map[string]struct{}
}

// NewRepository constructs a repository backed by any executor that satisfies
// pgExecutor (a pool, a transaction, or a mock).
func NewRepository[T any](exec pgExecutor, schema Schema[T]) *Repository[T] {
	columns := make(map[string]struct{}, len(schema.Columns))
	for _, col := range schema.Columns {
		columns[col] = struct{}{}
	}

	repo := &Repository[T]{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		schema:  schema,
		columns: columns,
	}
	if pool, ok := exec.(*pgxpool.Pool); ok {
		repo.pool = pool
	}
	return repo
}

// WithTx returns a repository instance that executes statements within the
// supplied transaction.
func (r *Repository[T]) WithTx(tx pgx.Tx) *Repository[T] {
	if tx == nil {
		return r
	}
	return &Repository[T]{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
		schema:  r.schema,
		columns: r.columns,
	}
}

// checkColumns rejects any name the schema does not declare as a column.
// Filter keys, update keys, and ordering columns end up in SQL text, not in
// bind parameters, so they are never taken from the caller verbatim.
func (r *Repository[T]) checkColumns(names ...string) error {
	for _, name := range names {
		if _, ok := r.columns[name]; !ok {
			return fmt.Errorf("%w: %q is not a column of %s", repository.ErrInvalidField, name, r.schema.Table)
		}
	}
	return nil
}

func (r *Repository[T]) checkFilter(filter port.Filter) error {
	for key := range filter {
		if err := r.checkColumns(key); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository[T]) checkData(data map[string]any) error {
	for key := range data {
		if err := r.checkColumns(key); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository[T]) checkCriteria(criteria port.Criteria) error {
	if err := r.checkFilter(criteria.Filter); err != nil {
		return err
	}
	for _, order := range criteria.OrderBy {
		if err := r.checkColumns(order.Column); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository[T]) selectBuilder() squirrel.SelectBuilder {
	return r.builder.
		Select(r.schema.Columns...).
		From(r.schema.Table)
}

func applyCriteria(query squirrel.SelectBuilder, criteria port.Criteria) squirrel.SelectBuilder {
	if len(criteria.Filter) > 0 {
		query = query.Where(squirrel.Eq(criteria.Filter))
	}
	for _, order := range criteria.OrderBy {
		direction := "ASC"
		if order.Desc {
			direction = "DESC"
		}
		query = query.OrderBy(fmt.Sprintf("%s %s", order.Column, direction))
	}
	if criteria.Limit > 0 {
		query = query.Limit(uint64(criteria.Limit))
	}
	if criteria.Offset > 0 {
		query = query.Offset(uint64(criteria.Offset))
	}
	return query
}

// FindUnique retrieves the single row matching the filter, or nil when none
// does.
func (r *Repository[T]) FindUnique(ctx context.Context, filter port.Filter) (*T, error) {
	return r.FindFirst(ctx, port.Criteria{Filter: filter})
}

// FindFirst retrieves the first row matching the criteria, or nil when none
// does.
func (r *Repository[T]) FindFirst(ctx context.Context, criteria port.Criteria) (*T, error) {
	criteria.Limit = 1
	criteria.Offset = 0

	if err := r.checkCriteria(criteria); err != nil {
		return nil, err
	}

	stmt, args, err := applyCriteria(r.selectBuilder(), criteria).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s sql: %w", r.schema.Table, err)
	}

	entity, err := r.schema.Scan(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan %s: %w", r.schema.Table, err)
	}

	return &entity, nil
}

// FindMany retrieves all rows matching the criteria, fully materialized.
func (r *Repository[T]) FindMany(ctx context.Context, criteria port.Criteria) ([]T, error) {
	if err := r.checkCriteria(criteria); err != nil {
		return nil, err
	}

	stmt, args, err := applyCriteria(r.selectBuilder(), criteria).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s sql: %w", r.schema.Table, err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", r.schema.Table, err)
	}
	defer rows.Close()

	entities := make([]T, 0)
	for rows.Next() {
		entity, err := r.schema.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.schema.Table, err)
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", r.schema.Table, err)
	}

	return entities, nil
}

// Create inserts a new row and returns it as persisted.
func (r *Repository[T]) Create(ctx context.Context, entity T) (*T, error) {
	stmt, args, err := r.builder.
		Insert(r.schema.Table).
		Columns(r.schema.Columns...).
		Values(r.schema.Values(entity)...).
		Suffix("RETURNING " + strings.Join(r.schema.Columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert %s sql: %w", r.schema.Table, err)
	}

	created, err := r.schema.Scan(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", r.schema.Table, err)
	}

	return &created, nil
}

// Update modifies the row matching the filter and returns the updated row.
// Fails with repository.ErrNotFound when no row matches.
func (r *Repository[T]) Update(ctx context.Context, filter port.Filter, data map[string]any) (*T, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("update %s: no fields to update", r.schema.Table)
	}
	if err := r.checkFilter(filter); err != nil {
		return nil, err
	}
	if err := r.checkData(data); err != nil {
		return nil, err
	}

	stmt, args, err := r.builder.
		Update(r.schema.Table).
		SetMap(data).
		Where(squirrel.Eq(filter)).
		Suffix("RETURNING " + strings.Join(r.schema.Columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update %s sql: %w", r.schema.Table, err)
	}

	updated, err := r.schema.Scan(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update %s: %w", r.schema.Table, err)
	}

	return &updated, nil
}

// Upsert inserts the entity or, when a row with the same primary key already
// exists, applies the update map to it. An empty update map rewrites every
// non-key column from the incoming entity.
func (r *Repository[T]) Upsert(ctx context.Context, entity T, update map[string]any) (*T, error) {
	if err := r.checkData(update); err != nil {
		return nil, err
	}

	suffix, suffixArgs := r.conflictClause(update)

	stmt, args, err := r.builder.
		Insert(r.schema.Table).
		Columns(r.schema.Columns...).
		Values(r.schema.Values(entity)...).
		Suffix(suffix, suffixArgs...).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert %s sql: %w", r.schema.Table, err)
	}

	upserted, err := r.schema.Scan(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		return nil, fmt.Errorf("upsert %s: %w", r.schema.Table, err)
	}

	return &upserted, nil
}

func (r *Repository[T]) conflictClause(update map[string]any) (string, []any) {
	assignments := make([]string, 0, len(update))
	args := make([]any, 0, len(update))

	if len(update) == 0 {
		for _, col := range r.schema.Columns {
			if col == r.schema.PK {
				continue
			}
			assignments = append(assignments, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
	} else {
		keys := make([]string, 0, len(update))
		for key := range update {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			assignments = append(assignments, key+" = ?")
			args = append(args, update[key])
		}
	}

	suffix := fmt.Sprintf(
		"ON CONFLICT (%s) DO UPDATE SET %s RETURNING %s",
		r.schema.PK,
		strings.Join(assignments, ", "),
		strings.Join(r.schema.Columns, ", "),
	)

	return suffix, args
}

// Delete removes the row matching the filter and returns it. Fails with
// repository.ErrNotFound when no row matches.
func (r *Repository[T]) Delete(ctx context.Context, filter port.Filter) (*T, error) {
	if err := r.checkFilter(filter); err != nil {
		return nil, err
	}

	stmt, args, err := r.builder.
		Delete(r.schema.Table).
		Where(squirrel.Eq(filter)).
		Suffix("RETURNING " + strings.Join(r.schema.Columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete %s sql: %w", r.schema.Table, err)
	}

	deleted, err := r.schema.Scan(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("delete %s: %w", r.schema.Table, err)
	}

	return &deleted, nil
}

// DeleteMany removes all rows matching the filter and returns the count.
func (r *Repository[T]) DeleteMany(ctx context.Context, filter port.Filter) (int64, error) {
	if err := r.checkFilter(filter); err != nil {
		return 0, err
	}

	query := r.builder.Delete(r.schema.Table)
	if len(filter) > 0 {
		query = query.Where(squirrel.Eq(filter))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete many %s sql: %w", r.schema.Table, err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("delete many %s: %w", r.schema.Table, err)
	}

	return ct.RowsAffected(), nil
}

// UpdateMany applies the data map to all rows matching the filter and returns
// the count of affected rows.
func (r *Repository[T]) UpdateMany(ctx context.Context, filter port.Filter, data map[string]any) (int64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("update many %s: no fields to update", r.schema.Table)
	}
	if err := r.checkFilter(filter); err != nil {
		return 0, err
	}
	if err := r.checkData(data); err != nil {
		return 0, err
	}

	query := r.builder.Update(r.schema.Table).SetMap(data)
	if len(filter) > 0 {
		query = query.Where(squirrel.Eq(filter))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update many %s sql: %w", r.schema.Table, err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("update many %s: %w", r.schema.Table, err)
	}

	return ct.RowsAffected(), nil
}

// Aggregate computes the requested aggregates over rows matching the filter.
func (r *Repository[T]) Aggregate(ctx context.Context, spec port.Aggregation) (*port.AggregateResult, error) {
	if err := r.checkFilter(spec.Filter); err != nil {
		return nil, err
	}
	if err := r.checkColumns(spec.Sum...); err != nil {
		return nil, err
	}
	if err := r.checkColumns(spec.Avg...); err != nil {
		return nil, err
	}
	if err := r.checkColumns(spec.Min...); err != nil {
		return nil, err
	}
	if err := r.checkColumns(spec.Max...); err != nil {
		return nil, err
	}

	expressions := make([]string, 0, 1+len(spec.Sum)+len(spec.Avg)+len(spec.Min)+len(spec.Max))
	if spec.Count {
		expressions = append(expressions, "COUNT(*)")
	}
	for _, col := range spec.Sum {
		expressions = append(expressions, fmt.Sprintf("SUM(%s)", col))
	}
	for _, col := range spec.Avg {
		expressions = append(expressions, fmt.Sprintf("AVG(%s)", col))
	}
	for _, col := range spec.Min {
		expressions = append(expressions, fmt.Sprintf("MIN(%s)", col))
	}
	for _, col := range spec.Max {
		expressions = append(expressions, fmt.Sprintf("MAX(%s)", col))
	}
	if len(expressions) == 0 {
		return nil, fmt.Errorf("aggregate %s: no aggregations requested", r.schema.Table)
	}

	query := r.builder.Select(expressions...).From(r.schema.Table)
	if len(spec.Filter) > 0 {
		query = query.Where(squirrel.Eq(spec.Filter))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build aggregate %s sql: %w", r.schema.Table, err)
	}

	var (
		count int64
		sums  = make([]sql.NullFloat64, len(spec.Sum))
		avgs  = make([]sql.NullFloat64, len(spec.Avg))
		mins  = make([]any, len(spec.Min))
		maxs  = make([]any, len(spec.Max))
	)

	dests := make([]any, 0, len(expressions))
	if spec.Count {
		dests = append(dests, &count)
	}
	for i := range sums {
		dests = append(dests, &sums[i])
	}
	for i := range avgs {
		dests = append(dests, &avgs[i])
	}
	for i := range mins {
		dests = append(dests, &mins[i])
	}
	for i := range maxs {
		dests = append(dests, &maxs[i])
	}

	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(dests...); err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", r.schema.Table, err)
	}

	result := &port.AggregateResult{Count: count}
	if len(spec.Sum) > 0 {
		result.Sum = make(map[string]float64, len(spec.Sum))
		for i, col := range spec.Sum {
			if sums[i].Valid {
				result.Sum[col] = sums[i].Float64
			}
		}
	}
	if len(spec.Avg) > 0 {
		result.Avg = make(map[string]float64, len(spec.Avg))
		for i, col := range spec.Avg {
			if avgs[i].Valid {
				result.Avg[col] = avgs[i].Float64
			}
		}
	}
	if len(spec.Min) > 0 {
		result.Min = make(map[string]any, len(spec.Min))
		for i, col := range spec.Min {
			result.Min[col] = mins[i]
		}
	}
	if len(spec.Max) > 0 {
		result.Max = make(map[string]any, len(spec.Max))
		for i, col := range spec.Max {
			result.Max[col] = maxs[i]
		}
	}

	return result, nil
}

// GroupBy groups rows by the requested columns and counts each group.
func (r *Repository[T]) GroupBy(ctx context.Context, spec port.GroupSpec) ([]port.Group, error) {
	if len(spec.By) == 0 {
		return nil, fmt.Errorf("group by %s: no grouping columns", r.schema.Table)
	}
	if err := r.checkFilter(spec.Filter); err != nil {
		return nil, err
	}
	if err := r.checkColumns(spec.By...); err != nil {
		return nil, err
	}
	for _, order := range spec.OrderBy {
		if err := r.checkColumns(order.Column); err != nil {
			return nil, err
		}
	}

	expressions := append([]string{}, spec.By...)
	expressions = append(expressions, "COUNT(*)")

	query := r.builder.Select(expressions...).From(r.schema.Table)
	if len(spec.Filter) > 0 {
		query = query.Where(squirrel.Eq(spec.Filter))
	}
	query = query.GroupBy(spec.By...)
	for _, order := range spec.OrderBy {
		direction := "ASC"
		if order.Desc {
			direction = "DESC"
		}
		query = query.OrderBy(fmt.Sprintf("%s %s", order.Column, direction))
	}
	if spec.Limit > 0 {
		query = query.Limit(uint64(spec.Limit))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build group by %s sql: %w", r.schema.Table, err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("group by %s: %w", r.schema.Table, err)
	}
	defer rows.Close()

	groups := make([]port.Group, 0)
	for rows.Next() {
		keys := make([]any, len(spec.By))
		dests := make([]any, 0, len(spec.By)+1)
		for i := range keys {
			dests = append(dests, &keys[i])
		}
		var count int64
		dests = append(dests, &count)

		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("scan group %s: %w", r.schema.Table, err)
		}

		group := port.Group{Keys: make(map[string]any, len(spec.By)), Count: count}
		for i, col := range spec.By {
			group.Keys[col] = keys[i]
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups %s: %w", r.schema.Table, err)
	}

	return groups, nil
}

var _ port.Repository[struct{}] = (*Repository[struct{}])(nil)
