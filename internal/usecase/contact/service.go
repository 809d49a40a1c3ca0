package contact

import (
	"context"

	domainContact "donation-hub/internal/domain/contact"
	"donation-hub/internal/logger"
	appErrors "donation-hub/pkg/errors"
	"donation-hub/pkg/utils"

	"go.uber.org/zap"
)

// Service persists contact-form submissions.
type Service struct {
	contactRepo domainContact.Repository
}

func NewService(contactRepo domainContact.Repository) *Service {
	return &Service{contactRepo: contactRepo}
}

func (s *Service) Submit(ctx context.Context, req *SubmitMessageRequest) (*MessageResponse, error) {
	req.Name = utils.SanitizeString(req.Name)
	req.Email = utils.SanitizeEmail(req.Email)
	req.Mobile = utils.SanitizePhone(req.Mobile)
	req.Message = utils.SanitizeText(req.Message)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	m := &domainContact.Message{
		Name:    req.Name,
		Email:   req.Email,
		Mobile:  req.Mobile,
		Message: req.Message,
	}

	if err := s.contactRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	logger.Info("Contact message received",
		zap.String("message_id", m.ID.String()),
		zap.String("event", "contact_message_received"),
	)

	return ToMessageResponse(m), nil
}

func (s *Service) List(ctx context.Context) ([]*MessageResponse, error) {
	messages, err := s.contactRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = ToMessageResponse(m)
	}

	return responses, nil
}
