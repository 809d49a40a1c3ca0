package handler

import (
	"net/http"

	"donation-hub/internal/usecase/donation"
	"donation-hub/internal/usecase/user"
	"donation-hub/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DonorHandler serves the donor-facing donation endpoints.
type DonorHandler struct {
	donations *donation.Service
	users     *user.Service
}

func NewDonorHandler(donations *donation.Service, users *user.Service) *DonorHandler {
	return &DonorHandler{donations: donations, users: users}
}

func (h *DonorHandler) Dashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.donations.DonorDashboard(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Dashboard retrieved successfully", resp)
}

// DonateForm prefills the donation form with the donor's saved contact info.
func (h *DonorHandler) DonateForm(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Donate", gin.H{
		"donor": profile,
	})
}

func (h *DonorHandler) Donate(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req donation.SubmitDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.donations.Submit(c.Request.Context(), actor, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondTransition(c, http.StatusCreated, "Donation request submitted successfully", result)
}

func (h *DonorHandler) PendingDonations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.donations.ListForDonor(c.Request.Context(), userID, false)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Pending donations retrieved successfully", resp)
}

func (h *DonorHandler) PreviousDonations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.donations.ListForDonor(c.Request.Context(), userID, true)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Previous donations retrieved successfully", resp)
}

func (h *DonorHandler) DeleteRejected(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	donationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.donations.DeleteRejected(c.Request.Context(), actor, donationID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Donation deleted successfully", nil)
}
