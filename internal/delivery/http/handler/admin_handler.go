package handler

import (
	"net/http"

	domainDonation "donation-hub/internal/domain/donation"
	"donation-hub/internal/usecase/contact"
	"donation-hub/internal/usecase/donation"
	"donation-hub/internal/usecase/user"
	"donation-hub/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin donation management endpoints.
type AdminHandler struct {
	donations *donation.Service
	users     *user.Service
	contacts  *contact.Service
}

func NewAdminHandler(donations *donation.Service, users *user.Service, contacts *contact.Service) *AdminHandler {
	return &AdminHandler{donations: donations, users: users, contacts: contacts}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	resp, err := h.donations.AdminDashboard(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Dashboard retrieved successfully", resp)
}

// PendingDonations lists everything still in flight: submitted, accepted and
// assigned but not yet collected.
func (h *AdminHandler) PendingDonations(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	resp, err := h.donations.ListForAdmin(c.Request.Context(), actor, []domainDonation.Status{
		domainDonation.StatusPending,
		domainDonation.StatusAccepted,
		domainDonation.StatusAssigned,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Pending donations retrieved successfully", resp)
}

func (h *AdminHandler) PreviousDonations(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	resp, err := h.donations.ListForAdmin(c.Request.Context(), actor, []domainDonation.Status{
		domainDonation.StatusCollected,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Previous donations retrieved successfully", resp)
}

func (h *AdminHandler) AllDonations(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	resp, err := h.donations.ListForAdmin(c.Request.Context(), actor, nil)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Donations retrieved successfully", resp)
}

func (h *AdminHandler) ViewDonation(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	donationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.donations.GetForAdmin(c.Request.Context(), actor, donationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Donation retrieved successfully", resp)
}

func (h *AdminHandler) AcceptDonation(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	donationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.donations.Accept(c.Request.Context(), actor, donationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondTransition(c, http.StatusOK, "Donation accepted successfully", result)
}

func (h *AdminHandler) RejectDonation(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	donationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.donations.Reject(c.Request.Context(), actor, donationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondTransition(c, http.StatusOK, "Donation rejected successfully", result)
}

// AssignForm returns the donation alongside the agent roster for the
// assignment view.
func (h *AdminHandler) AssignForm(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	donationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	d, err := h.donations.GetForAdmin(c.Request.Context(), actor, donationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	agents, err := h.users.GetAgents(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assign agent", gin.H{
		"donation": d,
		"agents":   agents,
	})
}

func (h *AdminHandler) AssignAgent(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	donationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req donation.AssignAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.donations.Assign(c.Request.Context(), actor, donationID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondTransition(c, http.StatusOK, "Agent assigned successfully", result)
}

func (h *AdminHandler) Agents(c *gin.Context) {
	agents, err := h.users.GetAgents(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Agents retrieved successfully", agents)
}

func (h *AdminHandler) ContactMessages(c *gin.Context) {
	messages, err := h.contacts.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Contact messages retrieved successfully", messages)
}
