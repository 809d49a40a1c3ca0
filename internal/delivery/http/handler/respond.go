package handler

import (
	"errors"
	"net/http"

	domainDonation "donation-hub/internal/domain/donation"
	domainUser "donation-hub/internal/domain/user"
	"donation-hub/internal/logger"
	"donation-hub/internal/middleware"
	donationUC "donation-hub/internal/usecase/donation"
	appErrors "donation-hub/pkg/errors"
	"donation-hub/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// respondWithError maps service errors onto HTTP statuses. Unexpected errors
// are logged with the request ID and surface as a generic 500.
func respondWithError(c *gin.Context, err error) {
	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case appErrors.CodeValidation:
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
		case appErrors.CodeAuthentication:
			utils.ErrorResponse(c, http.StatusUnauthorized, appErr.Message)
		case appErrors.CodeAuthorization:
			utils.ErrorResponse(c, http.StatusForbidden, appErr.Message)
		case appErrors.CodeNotFound:
			utils.ErrorResponse(c, http.StatusNotFound, appErr.Message)
		case appErrors.CodeConflict:
			utils.ErrorResponse(c, http.StatusConflict, appErr.Message)
		case appErrors.CodeExternal:
			utils.ErrorResponse(c, http.StatusBadGateway, appErr.Message)
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, appErr.Message)
		}
		return
	}

	switch {
	case errors.Is(err, domainDonation.ErrDonationNotFound),
		errors.Is(err, domainUser.ErrUserNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domainDonation.ErrStatusConflict):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	default:
		logger.Error("Unhandled error in request",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// currentUserID pulls the authenticated user ID set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}

	id, ok := v.(uuid.UUID)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid user ID format")
		return uuid.Nil, false
	}

	return id, true
}

func currentActor(c *gin.Context) (donationUC.Actor, bool) {
	id, ok := currentUserID(c)
	if !ok {
		return donationUC.Actor{}, false
	}

	role, ok := domainUser.ParseRole(c.GetString("role"))
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid role in context")
		return donationUC.Actor{}, false
	}

	return donationUC.Actor{ID: id, Role: role}, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid donation ID")
		return uuid.Nil, false
	}
	return id, true
}

// respondTransition reports a completed lifecycle transition, downgrading to
// a warning response when a best-effort notification failed.
func respondTransition(c *gin.Context, status int, message string, result *donationUC.TransitionResult) {
	if result.Notified {
		utils.SuccessResponse(c, status, message, result.Donation)
		return
	}
	utils.DegradedResponse(c, status, message, result.NotifyError, result.Donation)
}
