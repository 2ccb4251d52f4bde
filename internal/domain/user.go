package domain

import "time"

// Role enumerates the authorization levels embedded in session tokens.
type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RoleChefProjet    Role = "CHEF_PROJET"
	RolePiloteQualite Role = "PILOTE_QUALITE"
)

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is the domain model for application accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
