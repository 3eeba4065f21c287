package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/covenantlab/contract-platform/internal/core/domain"
	"github.com/covenantlab/contract-platform/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for
// development environments without a broker.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType, userID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("Stub event published",
		zap.String("event_type", eventType),
		zap.String("user_id", userID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishUserSignedUp logs user.signed_up events.
func (p *StubPublisher) PublishUserSignedUp(_ context.Context, event domain.UserSignedUpEvent) error {
	payload := map[string]any{
		"user_id":    event.UserID,
		"email":      event.Email,
		"role":       event.Role,
		"created_at": event.CreatedAt,
		"metadata":   event.Metadata,
	}
	p.logEvent("user.signed_up", event.UserID, event.CreatedAt, payload)
	return nil
}

// PublishUserLoggedIn logs user.logged_in events.
func (p *StubPublisher) PublishUserLoggedIn(_ context.Context, event domain.UserLoggedInEvent) error {
	payload := map[string]any{
		"user_id":      event.UserID,
		"email":        event.Email,
		"ip_address":   event.IP,
		"logged_in_at": event.LoggedInAt,
		"metadata":     event.Metadata,
	}
	p.logEvent("user.logged_in", event.UserID, event.LoggedInAt, payload)
	return nil
}

// PublishAuditRecorded logs audit.recorded events.
func (p *StubPublisher) PublishAuditRecorded(_ context.Context, event domain.AuditRecordedEvent) error {
	payload := map[string]any{
		"actor_id":    event.ActorID,
		"action":      event.Action,
		"resource":    event.Resource,
		"resource_id": event.ResourceID,
		"recorded_at": event.RecordedAt,
		"metadata":    event.Metadata,
	}

	actorID := ""
	if event.ActorID != nil {
		actorID = *event.ActorID
	}
	p.logEvent("audit.recorded", actorID, event.RecordedAt, payload)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
