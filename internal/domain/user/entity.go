package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleDonor Role = "donor"
	RoleAgent Role = "agent"
)

// ParseRole returns the Role for s, or false when s is outside the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleDonor, RoleAgent:
		return Role(s), true
	}
	return "", false
}

func (r Role) String() string {
	return string(r)
}

// User represents a user entity in the domain
type User struct {
	ID             uuid.UUID
	FirstName      string
	LastName       string
	Email          string
	PasswordHashed string
	Role           Role
	Gender         *string
	Address        *string
	Phone          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName joins first and last name for display and email salutations.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// PasswordResetToken represents a single-use password reset token entity
type PasswordResetToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// IsExpired checks if the reset token is past its expiry.
func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
