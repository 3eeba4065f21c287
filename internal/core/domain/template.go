package domain

import "time"

// ContractTemplate groups reusable contract documents under a category.
type ContractTemplate struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// TemplateVersion is one immutable revision of a template's document body.
type TemplateVersion struct {
	ID          string     `json:"id"`
	TemplateID  string     `json:"templateId"`
	Version     int        `json:"version"`
	Content     string     `json:"content"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
