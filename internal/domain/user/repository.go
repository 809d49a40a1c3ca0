package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for user repository operations
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByRole(ctx context.Context, role Role) ([]*User, error)
	// FirstByRole returns any one user holding role, ErrAdminNotFound /
	// ErrAgentNotFound style sentinels when none exists.
	FirstByRole(ctx context.Context, role Role) (*User, error)
	CountByRole(ctx context.Context, role Role) (int64, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	CreatePasswordResetToken(ctx context.Context, token *PasswordResetToken) error
	GetPasswordResetToken(ctx context.Context, token string) (*PasswordResetToken, error)
	MarkTokenAsUsed(ctx context.Context, tokenID uuid.UUID) error
}
