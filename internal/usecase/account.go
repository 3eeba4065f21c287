package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/covenantlab/contract-platform/internal/core/domain"
	"github.com/covenantlab/contract-platform/internal/core/port"
	"github.com/covenantlab/contract-platform/internal/infra/logger"
	"github.com/covenantlab/contract-platform/internal/infra/security"
)

var (
	// ErrUserExists indicates a signup collided with an existing email.
	ErrUserExists = errors.New("user already exists")
	// ErrUnknownEmail indicates no account matches the login email.
	ErrUnknownEmail = errors.New("unknown email")
	// ErrPasswordNotSet indicates the account has no usable password hash.
	ErrPasswordNotSet = errors.New("password not set")
	// ErrInvalidCredentials indicates the password did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AccountService handles signup and credential login for the users resource.
type AccountService struct {
	users     port.Repository[domain.User]
	codec     *security.TokenCodec
	publisher port.EventPublisher
	log       *zap.Logger
	now       func() time.Time
}

// NewAccountService constructs an account service.
func NewAccountService(users port.Repository[domain.User], codec *security.TokenCodec, publisher port.EventPublisher, log *zap.Logger) *AccountService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AccountService{
		users:     users,
		codec:     codec,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// WithClock injects a custom clock, primarily for tests.
func (s *AccountService) WithClock(now func() time.Time) *AccountService {
	if now != nil {
		s.now = now
	}
	return s
}

// SignUpInput carries the decoded signup payload.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// SignUp creates a new account. A duplicate email yields ErrUserExists.
//
// An empty password is accepted and stored as an empty hash, matching the
// long-standing permissive signup behavior; the account is unusable for
// login until a password is set, and the condition is logged.
func (s *AccountService) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	email := strings.TrimSpace(input.Email)

	existing, err := s.users.FindFirst(ctx, port.Criteria{Filter: port.Filter{"email": email}})
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	passwordHash := ""
	if input.Password != "" {
		passwordHash, err = security.HashPassword(input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	} else {
		s.log.Warn("signup with empty password, storing empty hash",
			zap.String("email", logger.MaskEmail(email)))
	}

	role := input.Role
	if role == "" {
		role = domain.RoleMember
	}

	now := s.now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.publishSignedUp(ctx, *created)

	return created, nil
}

// LoginResult bundles the authenticated user with a fresh session token.
type LoginResult struct {
	User  domain.User
	Token string
}

// Login verifies credentials and issues a session token. Unknown email,
// unset password, and wrong password are distinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)

	user, err := s.users.FindFirst(ctx, port.Criteria{Filter: port.Filter{"email": email}})
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if user == nil {
		return nil, ErrUnknownEmail
	}

	if user.PasswordHash == "" {
		return nil, ErrPasswordNotSet
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.codec.Issue(domain.Principal{ID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.publishLoggedIn(ctx, *user)

	return &LoginResult{User: *user, Token: token}, nil
}

func (s *AccountService) publishSignedUp(ctx context.Context, user domain.User) {
	if s.publisher == nil {
		return
	}

	event := domain.UserSignedUpEvent{
		EventID:   uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
	if err := s.publisher.PublishUserSignedUp(ctx, event); err != nil {
		s.log.Warn("publish signed up event failed", zap.Error(err))
	}

	audit := domain.AuditRecordedEvent{
		EventID:    uuid.NewString(),
		ActorID:    &user.ID,
		Action:     "user.signup",
		Resource:   "users",
		ResourceID: &user.ID,
		RecordedAt: s.now().UTC(),
	}
	if err := s.publisher.PublishAuditRecorded(ctx, audit); err != nil {
		s.log.Warn("publish audit event failed", zap.Error(err))
	}
}

func (s *AccountService) publishLoggedIn(ctx context.Context, user domain.User) {
	if s.publisher == nil {
		return
	}

	event := domain.UserLoggedInEvent{
		EventID:    uuid.NewString(),
		UserID:     user.ID,
		Email:      user.Email,
		LoggedInAt: s.now().UTC(),
	}
	if err := s.publisher.PublishUserLoggedIn(ctx, event); err != nil {
		s.log.Warn("publish logged in event failed", zap.Error(err))
	}

	audit := domain.AuditRecordedEvent{
		EventID:    uuid.NewString(),
		ActorID:    &user.ID,
		Action:     "user.login",
		Resource:   "users",
		ResourceID: &user.ID,
		RecordedAt: s.now().UTC(),
	}
	if err := s.publisher.PublishAuditRecorded(ctx, audit); err != nil {
		s.log.Warn("publish audit event failed", zap.Error(err))
	}
}
