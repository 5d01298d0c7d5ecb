package domain

import "fmt"

// Role is the closed set of principals the system knows about.
// Jobseekers and employers live in their own tables; admin is a
// configuration-level credential with no identity row.
type Role string

const (
	RoleJobseeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// ParseRole converts a wire-level role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleJobseeker, RoleEmployer, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("invalid role %q: %w", s, ErrBadRequest)
	}
}

// ParseIdentityRole is ParseRole restricted to roles backed by an
// identity table. Admin has no identity row and is rejected.
func ParseIdentityRole(s string) (Role, error) {
	switch Role(s) {
	case RoleJobseeker, RoleEmployer:
		return Role(s), nil
	default:
		return "", fmt.Errorf("invalid role %q: %w", s, ErrBadRequest)
	}
}
