package domain

import "time"

// ContractStatus enumerates the lifecycle states of a contract.
type ContractStatus string

const (
	ContractStatusDraft     ContractStatus = "DRAFT"
	ContractStatusPending   ContractStatus = "PENDING_SIGNATURE"
	ContractStatusActive    ContractStatus = "ACTIVE"
	ContractStatusCompleted ContractStatus = "COMPLETED"
	ContractStatusArchived  ContractStatus = "ARCHIVED"
)

// Contract is the central entity of the platform.
type Contract struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	Content        string         `json:"content,omitempty"`
	Status         ContractStatus `json:"status"`
	OrganizationID string         `json:"organizationId"`
	TemplateID     *string        `json:"templateId,omitempty"`
	CreatedByID    string         `json:"createdById"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      *time.Time     `json:"updatedAt,omitempty"`
}

// Signature records a party's signature over a contract.
type Signature struct {
	ID            string     `json:"id"`
	ContractID    string     `json:"contractId"`
	UserID        string     `json:"userId"`
	SignatureHash string     `json:"signatureHash"`
	Status        string     `json:"status"`
	SignedAt      *time.Time `json:"signedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Attachment is a file reference associated with a contract.
type Attachment struct {
	ID          string    `json:"id"`
	ContractID  string    `json:"contractId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
}
