package port

import (
	"context"

	"github.com/covenantlab/contract-platform/internal/core/domain"
)

// EventPublisher publishes account and audit events to the message bus.
type EventPublisher interface {
	PublishUserSignedUp(ctx context.Context, event domain.UserSignedUpEvent) error
	PublishUserLoggedIn(ctx context.Context, event domain.UserLoggedInEvent) error
	PublishAuditRecorded(ctx context.Context, event domain.AuditRecordedEvent) error
}
