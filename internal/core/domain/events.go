package domain

import "time"

// UserSignedUpEvent is emitted after a successful account creation.
type UserSignedUpEvent struct {
	EventID   string
	UserID    string
	Email     string
	Role      Role
	CreatedAt time.Time
	Metadata  map[string]any
}

// UserLoggedInEvent is emitted after a successful credential login.
type UserLoggedInEvent struct {
	EventID    string
	UserID     string
	Email      string
	IP         *string
	LoggedInAt time.Time
	Metadata   map[string]any
}

// AuditRecordedEvent mirrors an audit log row onto the message bus so that
// downstream consumers do not need to poll the audit table.
type AuditRecordedEvent struct {
	EventID    string
	ActorID    *string
	Action     string
	Resource   string
	ResourceID *string
	RecordedAt time.Time
	Metadata   map[string]any
}
