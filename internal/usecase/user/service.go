package user

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"donation-hub/internal/config"
	"donation-hub/internal/domain/signup"
	domainUser "donation-hub/internal/domain/user"
	"donation-hub/internal/logger"
	"donation-hub/internal/notification"
	appErrors "donation-hub/pkg/errors"
	"donation-hub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the signup/OTP, login, profile and password reset
// use cases.
type Service struct {
	userRepo    domainUser.Repository
	signupStore signup.Store
	dispatcher  notification.Dispatcher
	config      *config.Config
}

func NewService(
	userRepo domainUser.Repository,
	signupStore signup.Store,
	dispatcher notification.Dispatcher,
	cfg *config.Config,
) *Service {
	return &Service{
		userRepo:    userRepo,
		signupStore: signupStore,
		dispatcher:  dispatcher,
		config:      cfg,
	}
}

// Signup validates the registration, holds it as a pending signup keyed by an
// opaque token and emails the OTP. No user record exists until VerifyOTP
// succeeds. Admin signups must present the shared security key up front,
// before an OTP is ever issued.
func (s *Service) Signup(ctx context.Context, req *SignupRequest) (*SignupResponse, error) {
	req.FirstName = utils.SanitizeString(req.FirstName)
	req.LastName = utils.SanitizeString(req.LastName)
	req.Email = utils.SanitizeEmail(req.Email)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	role, ok := domainUser.ParseRole(req.Role)
	if !ok {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid role", domainUser.ErrInvalidUserRole)
	}

	if role == domainUser.RoleAdmin {
		if s.config.Signup.AdminSecurityKey == "" ||
			subtle.ConstantTimeCompare([]byte(req.SecurityKey), []byte(s.config.Signup.AdminSecurityKey)) != 1 {
			logger.Warn("Admin signup with invalid security key",
				zap.String("email", req.Email),
				zap.String("event", "signup_invalid_security_key"),
			)
			return nil, appErrors.NewAppError(appErrors.CodeAuthorization,
				"Invalid security key for admin role", appErrors.ErrInvalidSecurityKey)
		}
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		logger.Warn("Signup attempt with existing email",
			zap.String("email", req.Email),
			zap.String("event", "signup_duplicate_email"),
		)
		return nil, appErrors.NewAppError(appErrors.CodeConflict,
			"This email is already registered", appErrors.ErrUserAlreadyExists)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateRandomToken(32)
	if err != nil {
		return nil, err
	}

	pending := &signup.PendingSignup{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PasswordHashed: hashedPassword,
		Role:           string(role),
		OTP:            otp,
	}

	ttl := s.config.Signup.OTPTTL
	if err := s.signupStore.Put(ctx, token, pending, ttl); err != nil {
		return nil, fmt.Errorf("failed to store pending signup: %w", err)
	}

	subject, body := notification.OTPMessage(otp)
	if err := s.dispatcher.Send(req.Email, subject, body); err != nil {
		// Without the OTP the signup cannot be verified, so a failed send is
		// a hard failure here, unlike lifecycle notifications.
		_ = s.signupStore.Delete(ctx, token)
		return nil, appErrors.NewAppError(appErrors.CodeExternal,
			"Failed to send verification email", err)
	}

	logger.Info("Signup OTP issued",
		zap.String("email", req.Email),
		zap.String("role", string(role)),
		zap.Duration("ttl", ttl),
		zap.String("event", "signup_otp_issued"),
	)

	return &SignupResponse{
		SignupToken: token,
		ExpiresIn:   int64(ttl.Seconds()),
	}, nil
}

// VerifyOTP matches the submitted code against the pending signup and only
// then persists the user. The stored password is already hashed; plaintext
// never reaches this method.
func (s *Service) VerifyOTP(ctx context.Context, req *VerifyOTPRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	pending, err := s.signupStore.Get(ctx, req.SignupToken)
	if err != nil {
		if errors.Is(err, signup.ErrNotFound) {
			return nil, appErrors.NewAppError(appErrors.CodeAuthentication,
				"Signup session has expired, please sign up again", appErrors.ErrSignupExpired)
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(req.OTP), []byte(pending.OTP)) != 1 {
		logger.Warn("OTP mismatch",
			zap.String("email", pending.Email),
			zap.String("event", "signup_otp_mismatch"),
		)
		return nil, appErrors.NewAppError(appErrors.CodeAuthentication,
			"Invalid OTP", appErrors.ErrInvalidOTP)
	}

	role, _ := domainUser.ParseRole(pending.Role)
	u := &domainUser.User{
		FirstName:      pending.FirstName,
		LastName:       pending.LastName,
		Email:          pending.Email,
		PasswordHashed: pending.PasswordHashed,
		Role:           role,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			return nil, appErrors.NewAppError(appErrors.CodeConflict,
				"This email is already registered", appErrors.ErrUserAlreadyExists)
		}
		return nil, err
	}

	if err := s.signupStore.Delete(ctx, req.SignupToken); err != nil {
		logger.Warn("Failed to clear pending signup",
			zap.String("email", pending.Email),
			zap.Error(err),
		)
	}

	logger.Info("User registered",
		zap.String("user_id", u.ID.String()),
		zap.String("email", u.Email),
		zap.String("role", string(u.Role)),
		zap.String("event", "user_registered"),
	)

	return ToUserResponse(u), nil
}

// Login verifies credentials and issues a session token. redirectTo, when
// non-empty, is the preserved pre-login destination; otherwise the caller is
// sent to its role dashboard.
func (s *Service) Login(ctx context.Context, req *LoginRequest, redirectTo string) (*AuthResponse, error) {
	req.Email = utils.SanitizeEmail(req.Email)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "login_user_not_found"),
			)
			return nil, appErrors.NewAppError(appErrors.CodeAuthentication,
				"Invalid email or password", appErrors.ErrInvalidCredentials)
		}
		return nil, err
	}

	if !utils.CheckPassword(u.PasswordHashed, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", u.ID.String()),
			zap.String("event", "login_invalid_password"),
		)
		return nil, appErrors.NewAppError(appErrors.CodeAuthentication,
			"Invalid email or password", appErrors.ErrInvalidCredentials)
	}

	token, err := utils.GenerateToken(u.ID, u.Email, string(u.Role), s.config.JWT.Secret, s.config.JWT.ExpiryHours)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if redirectTo == "" {
		redirectTo = fmt.Sprintf("/%s/dashboard", u.Role)
	}

	logger.Info("User logged in",
		zap.String("user_id", u.ID.String()),
		zap.String("role", string(u.Role)),
		zap.String("event", "login_success"),
	)

	return &AuthResponse{
		User:        ToUserResponse(u),
		AccessToken: token,
		ExpiresAt:   time.Now().Add(time.Duration(s.config.JWT.ExpiryHours) * time.Hour),
		RedirectTo:  redirectTo,
	}, nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.NewAppError(appErrors.CodeNotFound, "User not found", err)
		}
		return nil, err
	}

	return ToUserResponse(u), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	req.FirstName = utils.SanitizeString(req.FirstName)
	req.LastName = utils.SanitizeString(req.LastName)
	req.Phone = utils.SanitizePhone(req.Phone)
	if req.Address != nil {
		addr := utils.SanitizeText(*req.Address)
		req.Address = &addr
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.NewAppError(appErrors.CodeNotFound, "User not found", err)
		}
		return nil, err
	}

	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.Gender = req.Gender
	u.Address = req.Address
	phone := req.Phone
	u.Phone = &phone

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("Profile updated",
		zap.String("user_id", userID.String()),
		zap.String("event", "profile_updated"),
	)

	return ToUserResponse(u), nil
}

// GetAgents returns the agent roster for the admin assignment view.
func (s *Service) GetAgents(ctx context.Context) ([]*UserResponse, error) {
	agents, err := s.userRepo.GetByRole(ctx, domainUser.RoleAgent)
	if err != nil {
		return nil, err
	}

	responses := make([]*UserResponse, len(agents))
	for i, a := range agents {
		responses[i] = ToUserResponse(a)
	}

	return responses, nil
}

// ForgotPassword issues a single-use reset token and emails a reset link.
// A non-existent email is deliberately indistinguishable from success.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	req.Email = utils.SanitizeEmail(req.Email)

	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Info("Password reset requested for non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "password_reset_unknown_email"),
			)
			return nil // Don't reveal if user exists
		}
		return fmt.Errorf("failed to retrieve user: %w", err)
	}

	token, err := utils.GenerateRandomToken(32)
	if err != nil {
		return err
	}

	resetToken := &domainUser.PasswordResetToken{
		UserID:    u.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.config.Signup.ResetTokenTTL),
		Used:      false,
	}

	if err := s.userRepo.CreatePasswordResetToken(ctx, resetToken); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/auth/reset-password?token=%s", s.config.Server.BaseURL, token)
	subject, body := notification.PasswordResetMessage(u.FirstName, resetLink)
	if err := s.dispatcher.Send(u.Email, subject, body); err != nil {
		return appErrors.NewAppError(appErrors.CodeExternal,
			"Failed to send reset email", err)
	}

	logger.Info("Password reset token generated",
		zap.String("user_id", u.ID.String()),
		zap.Time("expires_at", resetToken.ExpiresAt),
		zap.String("event", "password_reset_token_generated"),
	)

	return nil
}

func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	token, err := s.userRepo.GetPasswordResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, domainUser.ErrTokenInvalid) {
			return appErrors.NewAppError(appErrors.CodeAuthentication,
				"Invalid or expired token", appErrors.ErrInvalidToken)
		}
		return err
	}

	if token.Used {
		return appErrors.NewAppError(appErrors.CodeAuthentication,
			"Reset token has already been used", appErrors.ErrResetTokenUsed)
	}
	if token.IsExpired() {
		return appErrors.NewAppError(appErrors.CodeAuthentication,
			"Token has expired", appErrors.ErrTokenExpired)
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, token.UserID, hashedPassword); err != nil {
		return err
	}

	if err := s.userRepo.MarkTokenAsUsed(ctx, token.ID); err != nil {
		logger.Warn("Failed to mark reset token as used",
			zap.String("token_id", token.ID.String()),
			zap.Error(err),
		)
	}

	logger.Info("Password reset completed",
		zap.String("user_id", token.UserID.String()),
		zap.String("event", "password_reset_completed"),
	)

	return nil
}
