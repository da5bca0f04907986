package model

import "time"

type Role string

const (
	RoleUser           Role = "user"
	RoleAdmin          Role = "admin"
	RoleSuperAdmin     Role = "super_admin"
	RoleMainAdmin      Role = "main_admin"
	RoleSuperVera      Role = "superVera"
	RoleStorageManager Role = "storage_manager"
)

// Elevated reports whether the role is granted permissions beyond a
// booking's owner (rejecting, deleting, cancelling confirmed bookings).
func (r Role) Elevated() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin, RoleMainAdmin, RoleSuperVera, RoleStorageManager:
		return true
	}
	return false
}

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Actor is the authenticated caller of a lifecycle operation.
type Actor struct {
	ID   int64
	Role Role
}

func (a Actor) Elevated() bool { return a.Role.Elevated() }
