package model

import "time"

// User roles.  Clients book rooms, owners list them, admins moderate
// the marketplace.  The role is embedded in the JWT access token and
// enforced by middleware.
const (
	RoleClient = "CLIENT"
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
)

// User represents an account on the marketplace.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique, stored lower-cased.
//  PasswordHash – bcrypt hash of the password.
//  Role         – one of the Role* constants above.
//  IsActive     – deactivated accounts cannot authenticate.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
