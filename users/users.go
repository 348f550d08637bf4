package users

import (
	"fmt"
)

// RoleType represents a marketplace role. The role decides which endpoints the
// backend permits and which dashboard the account is routed to.
type RoleType string

const (
	RoleStudent       RoleType = "student"       // Browses rooms, creates bookings, pays
	RoleProvider      RoleType = "provider"      // Lists rooms, approves or rejects bookings
	RoleAdministrator RoleType = "administrator" // Backend-side administration
)

// User is the account record returned by the backend on registration and
// login. It is replaced wholesale on every login and never mutated field by
// field on the client.
type User struct {
	ID       int64    `json:"id,omitempty"`       // Unique identifier assigned by the backend
	Username string   `json:"username,omitempty"` // Display identity
	Email    string   `json:"email,omitempty"`    // Contact address
	Role     RoleType `json:"role,omitempty"`     // Marketplace role
}

// Valid reports whether the role is one the marketplace recognises.
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleProvider, RoleAdministrator:
		return true
	}
	return false
}

// ParseRole converts a string into a RoleType, rejecting unknown values.
func ParseRole(s string) (RoleType, error) {
	role := RoleType(s)
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}
