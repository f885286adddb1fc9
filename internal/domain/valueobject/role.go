package valueobject

import "inkpress/internal/domain/apperr"

// Role is an authorization role, one of "admin" or "user".
type Role struct {
	value string
}

var (
	RoleAdmin = Role{value: "admin"}
	RoleUser  = Role{value: "user"}
)

func NewRole(value string) (Role, error) {
	switch value {
	case "admin":
		return RoleAdmin, nil
	case "user":
		return RoleUser, nil
	case "":
		return Role{}, apperr.Validation("Role is required")
	}
	return Role{}, apperr.Validation("Invalid role, must be one of: admin, user")
}

func (r Role) String() string { return r.value }

func (r Role) Equals(other Role) bool { return r.value == other.value }

func (r Role) IsAdmin() bool { return r.value == "admin" }

func (r Role) IsZero() bool { return r.value == "" }
