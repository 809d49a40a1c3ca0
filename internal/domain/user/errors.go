package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidUserRole   = errors.New("invalid user role")
	ErrAgentNotFound     = errors.New("agent not found")
	ErrAdminNotFound     = errors.New("no admin account configured")

	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenExpired   = errors.New("token has expired")
	ErrResetTokenUsed = errors.New("reset token has already been used")
)
