package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v2"
	"go.uber.org/zap"

	"github.com/covenantlab/contract-platform/internal/core/domain"
	"github.com/covenantlab/contract-platform/internal/infra/config"
	"github.com/covenantlab/contract-platform/internal/infra/security"
	"github.com/covenantlab/contract-platform/internal/repository/postgres"
)

func newTestDeps(t *testing.T) (Dependencies, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool returned error: %v", err)
	}
	t.Cleanup(mock.Close)

	codec, err := security.NewTokenCodec("test-secret", "contract-platform", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenCodec returned error: %v", err)
	}

	deps := Dependencies{
		Config: &config.AppConfig{
			App: config.AppSettings{Name: "contract-platform", Env: "test"},
		},
		Logger:       zap.NewNop(),
		TokenCodec:   codec,
		Repositories: postgres.NewRepositories(mock),
	}

	return deps, mock
}

func issueToken(t *testing.T, codec *security.TokenCodec, role domain.Role) string {
	t.Helper()

	token, err := codec.Issue(domain.Principal{ID: "user-1", Email: "user@example.com", Role: role})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	return token
}

func TestHealthEndpoint(t *testing.T) {
	deps, _ := newTestDeps(t)
	router := Register(deps)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Fatalf("unexpected health payload %v", resp)
	}
}

func TestGuardedRouteRequiresToken(t *testing.T) {
	deps, _ := newTestDeps(t)
	router := Register(deps)

	req := httptest.NewRequest(http.MethodGet, "/api/contracts/some-id", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestListRequiresViewerRole(t *testing.T) {
	deps, _ := newTestDeps(t)
	router := Register(deps)

	// Strict equality: an ADMIN token is rejected on a VIEWER route.
	token := issueToken(t, deps.TokenCodec, domain.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/contracts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestGetAbsentEntityReturnsNull(t *testing.T) {
	deps, mock := newTestDeps(t)
	router := Register(deps)

	mock.ExpectQuery("SELECT .+ FROM clm.contracts WHERE id = \\$1").
		WithArgs("no-such-id").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "title", "description", "content", "status",
			"organization_id", "template_id", "created_by_id", "created_at", "updated_at",
		}))

	token := issueToken(t, deps.TokenCodec, domain.RoleViewer)

	req := httptest.NewRequest(http.MethodGet, "/api/contracts/no-such-id", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body := rec.Body.String(); body != "null" {
		t.Fatalf("expected null body, got %q", body)
	}
}

func TestSignupRouteIsPublic(t *testing.T) {
	deps, _ := newTestDeps(t)
	router := Register(deps)

	// No Authorization header: the route must not 401. The nil account
	// service is never reached because binding fails first.
	req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code == http.StatusUnauthorized {
		t.Fatal("signup must not require a token")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on empty body, got %d", rec.Code)
	}
}
