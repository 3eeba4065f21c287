package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	uuid "github.com/google/uuid"

	"github.com/covenantlab/contract-platform/internal/core/domain"
)

// ErrInvalidToken is returned for every verification failure: bad signature,
// malformed structure, or expiry. Callers are not told which, so a rejected
// response never leaks why a token failed.
var ErrInvalidToken = errors.New("security: invalid token")

// ErrSecretMissing indicates the codec was constructed without a signing
// secret. Misconfiguration is a hard startup error, never a silent default.
var ErrSecretMissing = errors.New("security: signing secret is required")

const defaultTokenTTL = 24 * time.Hour

// sessionClaims embeds the principal fields alongside registered claims.
type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HMAC-signed session tokens. It is pure
// computation: no clock state beyond time.Now, no storage.
type TokenCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenCodec constructs a codec for the supplied secret. An empty secret
// is rejected outright.
func NewTokenCodec(secret, issuer string, ttl time.Duration) (*TokenCodec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretMissing
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenCodec{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// TTL reports the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a session token embedding the principal and an expiry.
func (c *TokenCodec) Issue(principal domain.Principal) (string, error) {
	return c.IssueAt(principal, time.Now().UTC())
}

// IssueAt signs a session token with an explicit issue time. Exposed so that
// expiry behaviour is testable without sleeping.
func (c *TokenCodec) IssueAt(principal domain.Principal, now time.Time) (string, error) {
	if strings.TrimSpace(principal.ID) == "" {
		return "", fmt.Errorf("security: principal id is required")
	}

	claims := sessionClaims{
		Email: principal.Email,
		Role:  string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("security: sign token: %w", err)
	}

	return signed, nil
}

// Verify validates the signature and expiry of a session token and
// reconstructs the Principal it carries. Every failure mode collapses to
// ErrInvalidToken.
func (c *TokenCodec) Verify(token string) (domain.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Principal{}, ErrInvalidToken
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithIssuer(c.issuer))
	if err != nil || parsed == nil || !parsed.Valid {
		return domain.Principal{}, ErrInvalidToken
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return domain.Principal{}, ErrInvalidToken
	}

	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return domain.Principal{}, ErrInvalidToken
	}

	return domain.Principal{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  role,
	}, nil
}
