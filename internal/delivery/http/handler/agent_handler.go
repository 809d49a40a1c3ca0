package handler

import (
	"net/http"

	"donation-hub/internal/usecase/donation"
	"donation-hub/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AgentHandler serves the agent collection endpoints.
type AgentHandler struct {
	donations *donation.Service
}

func NewAgentHandler(donations *donation.Service) *AgentHandler {
	return &AgentHandler{donations: donations}
}

func (h *AgentHandler) Dashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.donations.AgentDashboard(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Dashboard retrieved successfully", resp)
}

func (h *AgentHandler) PendingCollections(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.donations.ListForAgent(c.Request.Context(), userID, false)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Pending collections retrieved successfully", resp)
}

func (h *AgentHandler) PreviousCollections(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.donations.ListForAgent(c.Request.Context(), userID, true)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Previous collections retrieved successfully", resp)
}

func (h *AgentHandler) ViewCollection(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	donationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.donations.GetForAgent(c.Request.Context(), actor, donationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Collection retrieved successfully", resp)
}

func (h *AgentHandler) Collect(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	donationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.donations.Collect(c.Request.Context(), actor, donationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondTransition(c, http.StatusOK, "Donation marked as collected", result)
}
