package domain

import "fmt"

// Role determines which operations an identity may perform.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleUser:
		return true
	default:
		return false
	}
}

// ParseRole converts s into a Role. An empty string yields RoleUser.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleUser, nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", NewValidationError(fmt.Sprintf("invalid role %q: must be admin, user, or owner", s))
	}
	return r, nil
}

// Identity is a verified caller.
type Identity struct {
	UserID string
	Role   Role
}

// Authorize decides whether identity may run an operation restricted to
// permitted. A nil identity is unauthenticated; an empty permitted set admits
// any authenticated identity. Roles do not inherit from each other.
func Authorize(identity *Identity, permitted ...Role) error {
	if identity == nil || identity.UserID == "" || !identity.Role.Valid() {
		return ErrUnauthenticated
	}
	if len(permitted) == 0 {
		return nil
	}
	for _, r := range permitted {
		if r == identity.Role {
			return nil
		}
	}
	return ErrForbidden
}
