package security

import (
	"errors"
	"testing"
	"time"

	"github.com/covenantlab/contract-platform/internal/core/domain"
)

func newTestCodec(t *testing.T, secret string) *TokenCodec {
	t.Helper()

	codec, err := NewTokenCodec(secret, "contract-platform", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	return codec
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t, "test-secret")

	principal := domain.Principal{
		ID:    "user-1",
		Email: "a@x.com",
		Role:  domain.RoleAdmin,
	}

	token, err := codec.Issue(principal)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	verified, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if verified != principal {
		t.Fatalf("principal mismatch: issued %+v, verified %+v", principal, verified)
	}
}

func TestTokenCodec_RejectsEmptySecret(t *testing.T) {
	if _, err := NewTokenCodec("", "contract-platform", time.Hour); !errors.Is(err, ErrSecretMissing) {
		t.Fatalf("expected ErrSecretMissing, got %v", err)
	}
	if _, err := NewTokenCodec("   ", "contract-platform", time.Hour); !errors.Is(err, ErrSecretMissing) {
		t.Fatalf("expected ErrSecretMissing for blank secret, got %v", err)
	}
}

func TestTokenCodec_RejectsExpiredToken(t *testing.T) {
	codec := newTestCodec(t, "test-secret")

	issuedAt := time.Now().UTC().Add(-2 * time.Hour)
	token, err := codec.IssueAt(domain.Principal{ID: "user-1", Role: domain.RoleViewer}, issuedAt)
	if err != nil {
		t.Fatalf("IssueAt returned error: %v", err)
	}

	if _, err := codec.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenCodec_RejectsWrongSecret(t *testing.T) {
	codec := newTestCodec(t, "test-secret")
	other := newTestCodec(t, "other-secret")

	token, err := codec.Issue(domain.Principal{ID: "user-1", Role: domain.RoleViewer})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenCodec_RejectsGarbage(t *testing.T) {
	codec := newTestCodec(t, "test-secret")

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}
