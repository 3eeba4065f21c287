package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/covenantlab/contract-platform/internal/core/domain"
	"github.com/covenantlab/contract-platform/internal/core/port"
	"github.com/covenantlab/contract-platform/internal/repository"
)

var userColumns = []string{
	"id", "name", "email", "password_hash", "role", "wallet_address", "created_at", "updated_at",
}

func userRow(id, email string, createdAt time.Time) *pgxmock.Rows {
	return pgxmock.NewRows(userColumns).
		AddRow(id, "Someone", email, "salt:hash", domain.RoleViewer, (*string)(nil), createdAt, (*time.Time)(nil))
}

func TestRepository_FindUnique(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRepository(mock, UserSchema())
	createdAt := time.Now().UTC()

	mock.ExpectQuery(`SELECT .* FROM clm\.users WHERE email = \$1 LIMIT 1`).
		WithArgs("a@x.com").
		WillReturnRows(userRow("user-1", "a@x.com", createdAt))

	user, err := repo.FindUnique(context.Background(), port.Filter{"email": "a@x.com"})
	if err != nil {
		t.Fatalf("FindUnique returned error: %v", err)
	}
	if user == nil || user.ID != "user-1" {
		t.Fatalf("expected user-1, got %+v", user)
	}
	if user.Role != domain.RoleViewer {
		t.Fatalf("expected role VIEWER, got %s", user.Role)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRepository_FindUnique_NoRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRepository(mock, UserSchema())

	mock.ExpectQuery(`SELECT .* FROM clm\.users`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(userColumns))

	user, err := repo.FindUnique(context.Background(), port.Filter{"id": "missing"})
	if err != nil {
		t.Fatalf("FindUnique returned error: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil for missing row, got %+v", user)
	}
}

func TestRepository_FindMany(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRepository(mock, UserSchema())
	createdAt := time.Now().UTC()

	rows := pgxmock.NewRows(userColumns).
		AddRow("user-1", "A", "a@x.com", "salt:hash", domain.RoleViewer, (*string)(nil), createdAt, (*time.Time)(nil)).
		AddRow("user-2", "B", "b@x.com", "salt:hash", domain.RoleAdmin, (*string)(nil), createdAt, (*time.Time)(nil))

	mock.ExpectQuery(`SELECT .* FROM clm\.users ORDER BY created_at DESC LIMIT 10`).
		WillReturnRows(rows)

	users, err := repo.FindMany(context.Background(), port.Criteria{
		OrderBy: []port.Order{{Column: "created_at", Desc: true}},
		Limit:   10,
	})
	if err != nil {
		t.Fatalf("FindMany returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[1].Role != domain.RoleAdmin {
		t.Fatalf("expected second user to be ADMIN, got %s", users[1].Role)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRepository(mock, UserSchema())
	createdAt := time.Now().UTC()

	user := domain.User{
		ID:           "user-1",
		Name:         "Someone",
		Email:        "a@x.com",
		PasswordHash: "salt:hash",
		Role:         domain.RoleViewer,
		CreatedAt:    createdAt,
	}

	mock.ExpectQuery(`INSERT INTO clm\.users .* RETURNING`).
		WithArgs(user.ID, user.Name, user.Email, user.PasswordHash, user.Role, (*string)(nil), user.CreatedAt, (*time.Time)(nil)).
		WillReturnRows(userRow("user-1", "a@x.com", createdAt))

	created, err := repo.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != "user-1" || created.Email != "a@x.com" {
		t.Fatalf("created row mismatch: %+v", created)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRepository_Update_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRepository(mock, UserSchema())

	mock.ExpectQuery(`UPDATE clm\.users SET name = \$1 WHERE id = \$2 RETURNING`).
		WithArgs("Renamed", "missing").
		WillReturnRows(pgxmock.NewRows(userColumns))

	_, err = repo.Update(context.Background(), port.Filter{"id": "missing"}, map[string]any{"name": "Renamed"})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_Upsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRepository(mock, UserSchema())
	createdAt := time.Now().UTC()

	user := domain.User{
		ID:           "user-1",
		Name:         "Someone",
		Email:        "a@x.com",
		PasswordHash: "salt:hash",
		Role:         domain.RoleViewer,
		CreatedAt:    createdAt,
	}

	// An empty update map rewrites every non-key column from the incoming
	// row.
	mock.ExpectQuery(`INSERT INTO clm\.users .* ON CONFLICT \(id\) DO UPDATE SET name = EXCLUDED\.name, email = EXCLUDED\.email, password_hash = EXCLUDED\.password_hash, role = EXCLUDED\.role, wallet_address = EXCLUDED\.wallet_address, created_at = EXCLUDED\.created_at, updated_at = EXCLUDED\.updated_at RETURNING`).
		WithArgs(user.ID, user.Name, user.Email, user.PasswordHash, user.Role, (*string)(nil), user.CreatedAt, (*time.Time)(nil)).
		WillReturnRows(userRow("user-1", "a@x.com", createdAt))

	upserted, err := repo.Upsert(context.Background(), user, nil)
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if upserted.ID != "user-1" {
		t.Fatalf("upserted row mismatch: %+v", upserted)
	}

	// A non-empty update map assigns exactly its keys, sorted, with the
	// values bound after the insert values.
	mock.ExpectQuery(`INSERT INTO clm\.users .* ON CONFLICT \(id\) DO UPDATE SET email = \$9, name = \$10 RETURNING`).
		WithArgs(user.ID, user.Name, user.Email, user.PasswordHash, user.Role, (*string)(nil), user.CreatedAt, (*time.Time)(nil), "b@x.com", "Renamed").
		WillReturnRows(userRow("user-1", "b@x.com", createdAt))

	upserted, err = repo.Upsert(context.Background(), user, map[string]any{
		"name":  "Renamed",
		"email": "b@x.com",
	})
	if err != nil {
		t.Fatalf("Upsert with update map returned error: %v", err)
	}
	if upserted.Email != "b@x.com" {
		t.Fatalf("expected updated email, got %+v", upserted)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRepository_RejectsUnknownColumns(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRepository(mock, UserSchema())
	ctx := context.Background()

	// Map keys become SQL identifiers. A key smuggling SQL text must fail
	// before any statement reaches the database; no query is expected on
	// the mock.
	hostile := `id = id OR 1=1 --`

	if _, err := repo.FindMany(ctx, port.Criteria{Filter: port.Filter{hostile: "x"}}); !errors.Is(err, repository.ErrInvalidField) {
		t.Fatalf("FindMany: expected ErrInvalidField, got %v", err)
	}
	if _, err := repo.FindMany(ctx, port.Criteria{OrderBy: []port.Order{{Column: "created_at; DROP TABLE clm.users"}}}); !errors.Is(err, repository.ErrInvalidField) {
		t.Fatalf("FindMany order: expected ErrInvalidField, got %v", err)
	}
	if _, err := repo.Update(ctx, port.Filter{"id": "user-1"}, map[string]any{hostile: "x"}); !errors.Is(err, repository.ErrInvalidField) {
		t.Fatalf("Update data: expected ErrInvalidField, got %v", err)
	}
	if _, err := repo.Update(ctx, port.Filter{hostile: "x"}, map[string]any{"name": "A"}); !errors.Is(err, repository.ErrInvalidField) {
		t.Fatalf("Update filter: expected ErrInvalidField, got %v", err)
	}
	if _, err := repo.Upsert(ctx, domain.User{}, map[string]any{hostile: "x"}); !errors.Is(err, repository.ErrInvalidField) {
		t.Fatalf("Upsert: expected ErrInvalidField, got %v", err)
	}
	if _, err := repo.Delete(ctx, port.Filter{hostile: "x"}); !errors.Is(err, repository.ErrInvalidField) {
		t.Fatalf("Delete: expected ErrInvalidField, got %v", err)
	}
	if _, err := repo.DeleteMany(ctx, port.Filter{hostile: "x"}); !errors.Is(err, repository.ErrInvalidField) {
		t.Fatalf("DeleteMany: expected ErrInvalidField, got %v", err)
	}
	if _, err := repo.UpdateMany(ctx, port.Filter{hostile: "x"}, map[string]any{"name": "A"}); !errors.Is(err, repository.ErrInvalidField) {
		t.Fatalf("UpdateMany: expected ErrInvalidField, got %v", err)
	}
	if _, err := repo.Aggregate(ctx, port.Aggregation{Sum: []string{"SUM(1)) --"}}); !errors.Is(err, repository.ErrInvalidField) {
		t.Fatalf("Aggregate: expected ErrInvalidField, got %v", err)
	}
	if _, err := repo.GroupBy(ctx, port.GroupSpec{By: []string{hostile}}); !errors.Is(err, repository.ErrInvalidField) {
		t.Fatalf("GroupBy: expected ErrInvalidField, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("a statement reached the database: %v", err)
	}
}

func TestRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRepository(mock, UserSchema())
	createdAt := time.Now().UTC()

	mock.ExpectQuery(`DELETE FROM clm\.users WHERE id = \$1 RETURNING`).
		WithArgs("user-1").
		WillReturnRows(userRow("user-1", "a@x.com", createdAt))

	deleted, err := repo.Delete(context.Background(), port.Filter{"id": "user-1"})
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted.ID != "user-1" {
		t.Fatalf("expected deleted user-1, got %+v", deleted)
	}

	mock.ExpectQuery(`DELETE FROM clm\.users WHERE id = \$1 RETURNING`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(userColumns))

	if _, err := repo.Delete(context.Background(), port.Filter{"id": "user-1"}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestRepository_DeleteMany(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRepository(mock, UserSchema())

	mock.ExpectExec(`DELETE FROM clm\.users WHERE role = \$1`).
		WithArgs("VIEWER").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	count, err := repo.DeleteMany(context.Background(), port.Filter{"role": "VIEWER"})
	if err != nil {
		t.Fatalf("DeleteMany returned error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 deleted rows, got %d", count)
	}
}

func TestRepository_UpdateMany(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRepository(mock, UserSchema())

	mock.ExpectExec(`UPDATE clm\.users SET role = \$1 WHERE role = \$2`).
		WithArgs("MEMBER", "VIEWER").
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	count, err := repo.UpdateMany(context.Background(), port.Filter{"role": "VIEWER"}, map[string]any{"role": "MEMBER"})
	if err != nil {
		t.Fatalf("UpdateMany returned error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 updated rows, got %d", count)
	}
}

func TestRepository_Aggregate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRepository(mock, AttachmentSchema())

	rows := pgxmock.NewRows([]string{"count", "sum"}).AddRow(int64(4), float64(2048))
	mock.ExpectQuery(`SELECT COUNT\(\*\), SUM\(size\) FROM clm\.attachments WHERE contract_id = \$1`).
		WithArgs("contract-1").
		WillReturnRows(rows)

	result, err := repo.Aggregate(context.Background(), port.Aggregation{
		Filter: port.Filter{"contract_id": "contract-1"},
		Count:  true,
		Sum:    []string{"size"},
	})
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if result.Count != 4 {
		t.Fatalf("expected count 4, got %d", result.Count)
	}
	if result.Sum["size"] != 2048 {
		t.Fatalf("expected sum 2048, got %f", result.Sum["size"])
	}
}

func TestRepository_GroupBy(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewRepository(mock, ContractSchema())

	rows := pgxmock.NewRows([]string{"status", "count"}).
		AddRow("DRAFT", int64(5)).
		AddRow("ACTIVE", int64(2))

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM clm\.contracts GROUP BY status`).
		WillReturnRows(rows)

	groups, err := repo.GroupBy(context.Background(), port.GroupSpec{By: []string{"status"}})
	if err != nil {
		t.Fatalf("GroupBy returned error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Keys["status"] != "DRAFT" || groups[0].Count != 5 {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
}
