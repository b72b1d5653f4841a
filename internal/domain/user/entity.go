package user

import "time"

type Role string

const (
	RoleEmployee  Role = "EMPLOYEE"   // Regular employee
	RoleManager   Role = "MANAGER"    // Can approve leave and attendance corrections
	RoleAdmin     Role = "ADMIN"      // Full access, including delete overrides
	RoleITSupport Role = "IT_SUPPORT" // Account maintenance, no leave decisions
)

func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin, RoleITSupport:
		return true
	}
	return false
}

type User struct {
	ID         string
	Email      string
	FullName   string
	Role       Role
	Department *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Actor is the acting user materialized from the auth collaborator's claims.
// Authorization predicates take it instead of a raw user id so that the
// privilege decision is an explicit role check, not an identity comparison.
type Actor struct {
	ID   string
	Role Role
}

// IsPrivileged reports whether the actor may decide on other users' requests.
// IT_SUPPORT maintains accounts but has no say in leave decisions.
func (a Actor) IsPrivileged() bool {
	return a.Role == RoleAdmin || a.Role == RoleManager
}

// IsAdmin reports whether the actor holds the admin override.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
