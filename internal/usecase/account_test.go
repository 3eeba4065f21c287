package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/covenantlab/contract-platform/internal/core/domain"
	"github.com/covenantlab/contract-platform/internal/core/port"
	"github.com/covenantlab/contract-platform/internal/infra/security"
)

type stubUserRepo struct {
	findFirstFn func(ctx context.Context, criteria port.Criteria) (*domain.User, error)
	createFn    func(ctx context.Context, user domain.User) (*domain.User, error)
}

func (s *stubUserRepo) FindUnique(ctx context.Context, filter port.Filter) (*domain.User, error) {
	return nil, nil
}

func (s *stubUserRepo) FindFirst(ctx context.Context, criteria port.Criteria) (*domain.User, error) {
	if s.findFirstFn != nil {
		return s.findFirstFn(ctx, criteria)
	}
	return nil, nil
}

func (s *stubUserRepo) FindMany(ctx context.Context, criteria port.Criteria) ([]domain.User, error) {
	return nil, nil
}

func (s *stubUserRepo) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return &user, nil
}

func (s *stubUserRepo) Update(ctx context.Context, filter port.Filter, data map[string]any) (*domain.User, error) {
	return nil, nil
}

func (s *stubUserRepo) Upsert(ctx context.Context, user domain.User, update map[string]any) (*domain.User, error) {
	return nil, nil
}

func (s *stubUserRepo) Delete(ctx context.Context, filter port.Filter) (*domain.User, error) {
	return nil, nil
}

func (s *stubUserRepo) DeleteMany(ctx context.Context, filter port.Filter) (int64, error) {
	return 0, nil
}

func (s *stubUserRepo) UpdateMany(ctx context.Context, filter port.Filter, data map[string]any) (int64, error) {
	return 0, nil
}

func (s *stubUserRepo) Aggregate(ctx context.Context, spec port.Aggregation) (*port.AggregateResult, error) {
	return nil, nil
}

func (s *stubUserRepo) GroupBy(ctx context.Context, spec port.GroupSpec) ([]port.Group, error) {
	return nil, nil
}

type recordingPublisher struct {
	signedUp []domain.UserSignedUpEvent
	loggedIn []domain.UserLoggedInEvent
	audits   []domain.AuditRecordedEvent
}

func (p *recordingPublisher) PublishUserSignedUp(_ context.Context, event domain.UserSignedUpEvent) error {
	p.signedUp = append(p.signedUp, event)
	return nil
}

func (p *recordingPublisher) PublishUserLoggedIn(_ context.Context, event domain.UserLoggedInEvent) error {
	p.loggedIn = append(p.loggedIn, event)
	return nil
}

func (p *recordingPublisher) PublishAuditRecorded(_ context.Context, event domain.AuditRecordedEvent) error {
	p.audits = append(p.audits, event)
	return nil
}

func newAccountService(t *testing.T, repo *stubUserRepo, publisher port.EventPublisher) *AccountService {
	t.Helper()

	codec, err := security.NewTokenCodec("test-secret", "contract-platform", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenCodec returned error: %v", err)
	}

	return NewAccountService(repo, codec, publisher, zaptest.NewLogger(t))
}

func TestSignUpCreatesUser(t *testing.T) {
	var created *domain.User
	repo := &stubUserRepo{
		createFn: func(_ context.Context, user domain.User) (*domain.User, error) {
			created = &user
			return &user, nil
		},
	}
	publisher := &recordingPublisher{}
	svc := newAccountService(t, repo, publisher)

	user, err := svc.SignUp(context.Background(), SignUpInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse battery staple",
	})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}

	if user.ID == "" {
		t.Fatal("expected generated user id")
	}
	if user.Role != domain.RoleMember {
		t.Fatalf("expected default MEMBER role, got %s", user.Role)
	}
	if created == nil || created.PasswordHash == "" {
		t.Fatal("expected password hash to be stored")
	}
	if created.PasswordHash == "correct horse battery staple" {
		t.Fatal("password must not be stored in plain text")
	}

	if len(publisher.signedUp) != 1 {
		t.Fatalf("expected one signed up event, got %d", len(publisher.signedUp))
	}
	if len(publisher.audits) != 1 {
		t.Fatalf("expected one audit event, got %d", len(publisher.audits))
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	repo := &stubUserRepo{
		findFirstFn: func(_ context.Context, _ port.Criteria) (*domain.User, error) {
			return &domain.User{ID: "existing", Email: "alice@example.com"}, nil
		},
	}
	svc := newAccountService(t, repo, &recordingPublisher{})

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "pw",
	})
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestSignUpEmptyPasswordStoresEmptyHash(t *testing.T) {
	var created *domain.User
	repo := &stubUserRepo{
		createFn: func(_ context.Context, user domain.User) (*domain.User, error) {
			created = &user
			return &user, nil
		},
	}
	svc := newAccountService(t, repo, &recordingPublisher{})

	if _, err := svc.SignUp(context.Background(), SignUpInput{
		Name:  "Bob",
		Email: "bob@example.com",
	}); err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}

	if created == nil || created.PasswordHash != "" {
		t.Fatalf("expected empty stored hash, got %+v", created)
	}
}

func TestLoginSuccess(t *testing.T) {
	hash, err := security.HashPassword("secret-pw")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	repo := &stubUserRepo{
		findFirstFn: func(_ context.Context, _ port.Criteria) (*domain.User, error) {
			return &domain.User{
				ID:           "user-1",
				Email:        "alice@example.com",
				PasswordHash: hash,
				Role:         domain.RoleAdmin,
			}, nil
		},
	}
	publisher := &recordingPublisher{}
	svc := newAccountService(t, repo, publisher)

	result, err := svc.Login(context.Background(), "alice@example.com", "secret-pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if result.Token == "" {
		t.Fatal("expected issued token")
	}
	if result.User.ID != "user-1" {
		t.Fatalf("unexpected user %+v", result.User)
	}
	if len(publisher.loggedIn) != 1 {
		t.Fatalf("expected one logged in event, got %d", len(publisher.loggedIn))
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAccountService(t, &stubUserRepo{}, &recordingPublisher{})

	_, err := svc.Login(context.Background(), "ghost@example.com", "pw")
	if !errors.Is(err, ErrUnknownEmail) {
		t.Fatalf("expected ErrUnknownEmail, got %v", err)
	}
}

func TestLoginPasswordNotSet(t *testing.T) {
	repo := &stubUserRepo{
		findFirstFn: func(_ context.Context, _ port.Criteria) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: "bob@example.com"}, nil
		},
	}
	svc := newAccountService(t, repo, &recordingPublisher{})

	_, err := svc.Login(context.Background(), "bob@example.com", "")
	if !errors.Is(err, ErrPasswordNotSet) {
		t.Fatalf("expected ErrPasswordNotSet, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := security.HashPassword("right-pw")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	repo := &stubUserRepo{
		findFirstFn: func(_ context.Context, _ port.Criteria) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: "alice@example.com", PasswordHash: hash}, nil
		},
	}
	svc := newAccountService(t, repo, &recordingPublisher{})

	_, err = svc.Login(context.Background(), "alice@example.com", "wrong-pw")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
