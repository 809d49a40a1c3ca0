package user

import (
	"time"

	domainUser "donation-hub/internal/domain/user"

	"github.com/google/uuid"
)

type SignupRequest struct {
	FirstName       string `json:"first_name" validate:"required,min=2,max=100"`
	LastName        string `json:"last_name" validate:"required,min=1,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"required,user_role"`
	SecurityKey     string `json:"security_key" validate:"omitempty"`
}

// SignupResponse hands back the opaque token that keys the pending signup
// until the OTP is verified.
type SignupResponse struct {
	SignupToken string `json:"signup_token"`
	ExpiresIn   int64  `json:"expires_in_seconds"`
}

type VerifyOTPRequest struct {
	SignupToken string `json:"signup_token" validate:"required"`
	OTP         string `json:"otp" validate:"required,len=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type UpdateProfileRequest struct {
	FirstName string  `json:"first_name" validate:"required,min=2,max=100"`
	LastName  string  `json:"last_name" validate:"required,min=1,max=100"`
	Gender    *string `json:"gender" validate:"omitempty,oneof=male female"`
	Address   *string `json:"address" validate:"omitempty,max=500"`
	Phone     string  `json:"phone" validate:"required,phone"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Gender    *string   `json:"gender"`
	Address   *string   `json:"address"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	User        *UserResponse `json:"user"`
	AccessToken string        `json:"access_token"`
	ExpiresAt   time.Time     `json:"expires_at"`
	// RedirectTo tells the client where to land after login, honoring a
	// preserved pre-login destination when one was supplied.
	RedirectTo string `json:"redirect_to"`
}

func ToUserResponse(u *domainUser.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      string(u.Role),
		Gender:    u.Gender,
		Address:   u.Address,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}
