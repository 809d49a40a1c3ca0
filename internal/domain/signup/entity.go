package signup

import "errors"

// PendingSignup is a not-yet-persisted registration awaiting OTP
// verification. The password is already hashed before it enters the store;
// the plaintext never leaves the signup request.
type PendingSignup struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	PasswordHashed string `json:"password_hashed"`
	Role           string `json:"role"`
	OTP            string `json:"otp"`
}

var (
	ErrNotFound = errors.New("pending signup not found or expired")
)
