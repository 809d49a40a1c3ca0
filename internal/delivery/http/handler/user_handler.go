package handler

import (
	"net/http"

	"donation-hub/internal/config"
	"donation-hub/internal/middleware"
	"donation-hub/internal/usecase/user"
	"donation-hub/pkg/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the auth flows (signup/OTP, login, password reset) and
// the per-role profile endpoints.
type UserHandler struct {
	service *user.Service
	config  *config.Config
}

func NewUserHandler(service *user.Service, cfg *config.Config) *UserHandler {
	return &UserHandler{service: service, config: cfg}
}

func (h *UserHandler) SignupForm(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Signup", gin.H{
		"roles": []string{"donor", "agent", "admin"},
	})
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req user.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "OTP has been sent to your email", resp)
}

func (h *UserHandler) VerifyOTPForm(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Verify OTP", gin.H{
		"signup_token": c.Query("signup_token"),
	})
}

func (h *UserHandler) VerifyOTP(c *gin.Context) {
	var req user.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.VerifyOTP(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Account verified, you can now log in", resp)
}

func (h *UserHandler) LoginForm(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Login", gin.H{
		"redirect": c.Query("redirect"),
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req, c.Query("redirect"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	secure := h.config.Server.Environment == "production"
	c.SetCookie(middleware.SessionCookieName, resp.AccessToken,
		h.config.JWT.ExpiryHours*3600, "/", "", secure, true)

	utils.SuccessResponse(c, http.StatusOK, "Logged in successfully", resp)
}

func (h *UserHandler) Logout(c *gin.Context) {
	secure := h.config.Server.Environment == "production"
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", secure, true)

	utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", gin.H{
		"redirect_to": "/",
	})
}

func (h *UserHandler) ForgotPasswordForm(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Forgot password", nil)
}

func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req user.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	// Same answer whether or not the email exists.
	utils.SuccessResponse(c, http.StatusOK,
		"If that email is registered, a reset link has been sent", nil)
}

func (h *UserHandler) ResetPasswordForm(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Reset password", gin.H{
		"token": c.Query("token"),
	})
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req user.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password has been reset, please log in", nil)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", resp)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", resp)
}
