package domain

import "fmt"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleClient  Role = "client"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleClient:
		return true
	}
	return false
}

// Actor is the already authenticated caller of an operation.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Manages reports whether the actor is the assigned manager of shop.
func (a Actor) Manages(shop *Shop) bool {
	return a.Role == RoleManager && shop != nil && shop.ManagerID != "" && shop.ManagerID == a.ID
}

func (a Actor) RequireAdmin() error {
	if !a.IsAdmin() {
		return fmt.Errorf("%w: administrator role required", ErrForbidden)
	}
	return nil
}
