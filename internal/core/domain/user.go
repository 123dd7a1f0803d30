package domain

import (
	"strings"
	"time"
)

// Role is the closed set of authorization roles.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is a member of the role enumeration.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// ParseRole normalises a raw string into a Role. ok is false when the value
// is not a member of the enumeration.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", false
	}
	return r, true
}

// MinPasswordLength is the minimum accepted plaintext password length.
const MinPasswordLength = 8

// User models an account in the system. Password holds a bcrypt hash once
// persisted; it is never rendered in JSON.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      Role      `json:"role" gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// userFields is every addressable field name on User, including the
// immutable ones. Update payloads naming anything else are malformed.
var userFields = map[string]struct{}{
	"id":         {},
	"email":      {},
	"password":   {},
	"role":       {},
	"created_at": {},
	"updated_at": {},
}

// IsUserField reports whether name addresses a field that exists on User.
func IsUserField(name string) bool {
	_, ok := userFields[name]
	return ok
}

// ProfileUpdatableFields is the mutable-field allow-list for self-service
// profile updates. Password is deliberately absent: changing it requires the
// verified-old-password path, never the generic update pipeline.
var ProfileUpdatableFields = []string{"email"}

// AdminUpdatableFields is the mutable-field allow-list for administrative
// user updates.
var AdminUpdatableFields = []string{"email", "password", "role"}
