package domain

import "time"

// Role enumerates account roles. Values are part of the wire contract.
type Role string

const (
	RoleUsuario Role = "usuario"
	RoleAgente  Role = "agente"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the three known values.
func (r Role) Valid() bool {
	switch r {
	case RoleUsuario, RoleAgente, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role carries agent-level privileges.
func (r Role) IsStaff() bool {
	return r == RoleAgente || r == RoleAdmin
}

// User is the account model for everyone who signs in: end-users,
// agents and administrators.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	LastAccessAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
