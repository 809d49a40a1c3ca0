package contact

import (
	"time"

	domainContact "donation-hub/internal/domain/contact"

	"github.com/google/uuid"
)

type SubmitMessageRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Mobile  string `json:"mobile_no" validate:"required,phone"`
	Message string `json:"message" validate:"required,min=5,max=2000"`
}

type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile_no"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func ToMessageResponse(m *domainContact.Message) *MessageResponse {
	return &MessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Mobile:    m.Mobile,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}
