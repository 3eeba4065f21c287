package domain

import "strings"

// Role classifies a principal for authorization purposes. Routes declare a
// required role and the comparison is strict equality: an ADMIN is not a
// VIEWER, and no hierarchy is implied anywhere in the pipeline.
type Role string

const (
	RoleViewer Role = "VIEWER"
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
	RoleOwner  Role = "OWNER"
)

// ParseRole normalizes a raw role string to a known Role.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleViewer:
		return RoleViewer, true
	case RoleMember:
		return RoleMember, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleOwner:
		return RoleOwner, true
	}
	return "", false
}

// Principal is the authenticated identity reconstructed from a verified
// session token. It lives for exactly one request and is never persisted.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
