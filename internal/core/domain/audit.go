package domain

import "time"

// AuditLog records who did what to which resource.
type AuditLog struct {
	ID         string         `json:"id"`
	ActorID    *string        `json:"actorId,omitempty"`
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	ResourceID *string        `json:"resourceId,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// SystemConfig is a single key/value configuration row.
type SystemConfig struct {
	ID        string     `json:"id"`
	Key       string     `json:"key"`
	Value     string     `json:"value"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
