package handler

import (
	"net/http"

	"donation-hub/internal/usecase/contact"
	"donation-hub/pkg/utils"

	"github.com/gin-gonic/gin"
)

// HomeHandler serves the public pages and the contact form.
type HomeHandler struct {
	contacts *contact.Service
}

func NewHomeHandler(contacts *contact.Service) *HomeHandler {
	return &HomeHandler{contacts: contacts}
}

func (h *HomeHandler) Home(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Welcome to Donation Hub", gin.H{
		"service": "donation-hub",
		"links": gin.H{
			"about_us":   "/home/about-us",
			"mission":    "/home/mission",
			"contact_us": "/home/contact-us",
			"login":      "/auth/login",
			"signup":     "/auth/signup",
		},
	})
}

func (h *HomeHandler) AboutUs(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "About us", gin.H{
		"description": "Donation Hub connects food donors with collection agents " +
			"so that surplus food reaches people who need it instead of going to waste.",
	})
}

func (h *HomeHandler) Mission(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Our mission", gin.H{
		"mission": "Reduce food waste and hunger by coordinating donors, " +
			"administrators and collection agents through a single platform.",
	})
}

func (h *HomeHandler) ContactUsForm(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Contact us", nil)
}

func (h *HomeHandler) SubmitContact(c *gin.Context) {
	var req contact.SubmitMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.contacts.Submit(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Message sent successfully", resp)
}
