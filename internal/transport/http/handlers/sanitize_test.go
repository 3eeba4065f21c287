package handlers

import (
	"reflect"
	"testing"
	"time"

	"github.com/covenantlab/contract-platform/internal/core/domain"
)

func TestSanitizeStripsPasswordAtAnyDepth(t *testing.T) {
	payload := map[string]any{
		"user": map[string]any{
			"email":    "alice@example.com",
			"password": "hash",
			"profile": map[string]any{
				"passwordHash": "hash",
				"nickname":     "alice",
			},
		},
		"items": []any{
			map[string]any{"password": "hash", "id": "1"},
		},
	}

	got := Sanitize(payload)

	want := map[string]any{
		"user": map[string]any{
			"email": "alice@example.com",
			"profile": map[string]any{
				"nickname": "alice",
			},
		},
		"items": []any{
			map[string]any{"id": "1"},
		},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected sanitized payload: %#v", got)
	}
}

func TestSanitizeUserStruct(t *testing.T) {
	user := domain.User{
		ID:           "user-1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "argon2-hash",
		Role:         domain.RoleMember,
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	got, ok := Sanitize(user).(map[string]any)
	if !ok {
		t.Fatalf("expected map result, got %T", Sanitize(user))
	}

	if _, present := got["password"]; present {
		t.Fatal("password key must be stripped")
	}
	if got["email"] != "alice@example.com" {
		t.Fatalf("unexpected email %v", got["email"])
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	payload := map[string]any{"password": "hash", "id": "1"}

	once := Sanitize(payload)
	twice := Sanitize(once)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("sanitize is not idempotent: %#v vs %#v", once, twice)
	}
}

func TestSanitizePrimitivesPassThrough(t *testing.T) {
	if got := Sanitize("plain"); got != "plain" {
		t.Fatalf("unexpected result %v", got)
	}
	if got := Sanitize(nil); got != nil {
		t.Fatalf("unexpected result %v", got)
	}
	if got := Sanitize(float64(42)); got != float64(42) {
		t.Fatalf("unexpected result %v", got)
	}
}
