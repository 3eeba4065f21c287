package domain

import "time"

// User mirrors the persisted representation in the users table.
//
// PasswordHash deliberately serializes under the "password" key: outbound
// payloads are expected to pass through the response sanitizer, which strips
// that key at any nesting depth before the payload leaves the handler.
type User struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"password,omitempty"`
	Role          Role       `json:"role"`
	WalletAddress *string    `json:"walletAddress,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}
