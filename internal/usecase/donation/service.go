package donation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainDonation "donation-hub/internal/domain/donation"
	domainUser "donation-hub/internal/domain/user"
	"donation-hub/internal/logger"
	"donation-hub/internal/notification"
	appErrors "donation-hub/pkg/errors"
	"donation-hub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the donation lifecycle engine. It is the only place that may
// change a donation's status. Every transition runs authorize -> validate ->
// mutate -> notify; notification failures never roll back the mutation, they
// degrade the result instead.
type Service struct {
	donationRepo domainDonation.Repository
	userRepo     domainUser.Repository
	dispatcher   notification.Dispatcher
}

func NewService(
	donationRepo domainDonation.Repository,
	userRepo domainUser.Repository,
	dispatcher notification.Dispatcher,
) *Service {
	return &Service{
		donationRepo: donationRepo,
		userRepo:     userRepo,
		dispatcher:   dispatcher,
	}
}

// Submit creates a new pending donation owned by the acting donor and
// notifies the admin.
func (s *Service) Submit(ctx context.Context, actor Actor, req *SubmitDonationRequest) (*TransitionResult, error) {
	if err := Authorize(actor.Role, ActionSubmit); err != nil {
		return nil, err
	}

	req.FoodType = utils.SanitizeString(req.FoodType)
	req.Quantity = utils.SanitizeString(req.Quantity)
	req.Phone = utils.SanitizePhone(req.Phone)
	req.Address = utils.SanitizeText(req.Address)
	if req.Description != nil {
		desc := utils.SanitizeText(*req.Description)
		req.Description = &desc
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	d := &domainDonation.Donation{
		DonorID:     actor.ID,
		Status:      domainDonation.StatusPending,
		FoodType:    req.FoodType,
		Quantity:    req.Quantity,
		Description: req.Description,
		Phone:       req.Phone,
		Address:     req.Address,
	}

	if err := s.donationRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	created, err := s.donationRepo.GetByID(ctx, d.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Donation submitted",
		zap.String("donation_id", created.ID.String()),
		zap.String("donor_id", actor.ID.String()),
		zap.String("event", "donation_submitted"),
	)

	result := &TransitionResult{Donation: ToDonationResponse(created), Notified: true}

	admin, err := s.userRepo.FirstByRole(ctx, domainUser.RoleAdmin)
	if err != nil {
		s.recordNotifyFailure(result, "admin lookup failed", err)
	} else {
		donorName := created.ID.String()
		if created.Donor != nil {
			donorName = created.Donor.FirstName + " " + created.Donor.LastName
		}
		subject, body := notification.DonationSubmittedMessage(donorName, created.ID.String())
		s.send(result, admin.Email, subject, body, "donation_submitted_notice")
	}

	return result, nil
}

// Accept moves a donation to accepted. Accepting an already accepted
// donation is a no-op success.
func (s *Service) Accept(ctx context.Context, actor Actor, donationID uuid.UUID) (*TransitionResult, error) {
	return s.decide(ctx, actor, donationID, ActionAccept, domainDonation.StatusAccepted)
}

// Reject moves a donation to rejected. The record stays visible to the donor
// until the donor deletes it.
func (s *Service) Reject(ctx context.Context, actor Actor, donationID uuid.UUID) (*TransitionResult, error) {
	return s.decide(ctx, actor, donationID, ActionReject, domainDonation.StatusRejected)
}

func (s *Service) decide(ctx context.Context, actor Actor, donationID uuid.UUID, action Action, next domainDonation.Status) (*TransitionResult, error) {
	if err := Authorize(actor.Role, action); err != nil {
		return nil, err
	}

	d, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, s.wrapRepoErr(err)
	}

	if err := ValidateStatusTransition(d.Status, next); err != nil {
		return nil, err
	}

	if err := s.donationRepo.UpdateStatusFrom(ctx, donationID, PriorStatuses(next), next); err != nil {
		return nil, s.wrapRepoErr(err)
	}

	updated, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, s.wrapRepoErr(err)
	}

	logger.Info("Donation decision recorded",
		zap.String("donation_id", donationID.String()),
		zap.String("admin_id", actor.ID.String()),
		zap.String("status", string(next)),
		zap.String("event", "donation_"+string(next)),
	)

	result := &TransitionResult{Donation: ToDonationResponse(updated), Notified: true}

	if updated.Donor != nil {
		var subject, body string
		if next == domainDonation.StatusAccepted {
			subject, body = notification.DonationAcceptedMessage(updated.Donor.FirstName)
		} else {
			subject, body = notification.DonationRejectedMessage(updated.Donor.FirstName)
		}
		s.send(result, updated.Donor.Email, subject, body, "donation_decision_notice")
	} else {
		s.recordNotifyFailure(result, "donor not loaded", domainUser.ErrUserNotFound)
	}

	return result, nil
}

// Assign attaches an agent and an optional admin message to an accepted
// donation and notifies both the agent and the donor.
func (s *Service) Assign(ctx context.Context, actor Actor, donationID uuid.UUID, req *AssignAgentRequest) (*TransitionResult, error) {
	if err := Authorize(actor.Role, ActionAssign); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	agent, err := s.userRepo.GetByID(ctx, req.AgentID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.NewAppError(appErrors.CodeNotFound, "Agent not found", domainUser.ErrAgentNotFound)
		}
		return nil, err
	}
	if agent.Role != domainUser.RoleAgent {
		return nil, appErrors.NewAppError(appErrors.CodeNotFound,
			fmt.Sprintf("User %s is not an agent", req.AgentID), domainUser.ErrAgentNotFound)
	}

	d, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, s.wrapRepoErr(err)
	}

	if err := ValidateStatusTransition(d.Status, domainDonation.StatusAssigned); err != nil {
		return nil, err
	}

	if err := s.donationRepo.AssignAgent(ctx, donationID, agent.ID, req.Message); err != nil {
		return nil, s.wrapRepoErr(err)
	}

	updated, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, s.wrapRepoErr(err)
	}

	logger.Info("Agent assigned to donation",
		zap.String("donation_id", donationID.String()),
		zap.String("admin_id", actor.ID.String()),
		zap.String("agent_id", agent.ID.String()),
		zap.String("event", "donation_assigned"),
	)

	result := &TransitionResult{Donation: ToDonationResponse(updated), Notified: true}

	adminMsg := ""
	if req.Message != nil {
		adminMsg = *req.Message
	}
	subject, body := notification.AgentAssignedMessage(agent.FirstName, updated.Address, adminMsg)
	s.send(result, agent.Email, subject, body, "agent_assignment_notice")

	if updated.Donor != nil {
		subject, body = notification.DonorAssignedMessage(updated.Donor.FirstName, agent.FullName())
		s.send(result, updated.Donor.Email, subject, body, "donor_assignment_notice")
	} else {
		s.recordNotifyFailure(result, "donor not loaded", domainUser.ErrUserNotFound)
	}

	return result, nil
}

// Collect marks an assigned donation as collected by its agent and notifies
// the donor and the admin. A missing admin account degrades the result but
// does not block the state change.
func (s *Service) Collect(ctx context.Context, actor Actor, donationID uuid.UUID) (*TransitionResult, error) {
	if err := Authorize(actor.Role, ActionCollect); err != nil {
		return nil, err
	}

	d, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, s.wrapRepoErr(err)
	}

	if d.AgentID == nil || *d.AgentID != actor.ID {
		return nil, appErrors.NewAppError(appErrors.CodeAuthorization,
			"Donation is not assigned to this agent", domainDonation.ErrNotAssignedAgent)
	}

	if err := ValidateStatusTransition(d.Status, domainDonation.StatusCollected); err != nil {
		return nil, err
	}

	collectedAt := time.Now()
	if err := s.donationRepo.MarkCollected(ctx, donationID, collectedAt); err != nil {
		return nil, s.wrapRepoErr(err)
	}

	updated, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, s.wrapRepoErr(err)
	}

	logger.Info("Donation collected",
		zap.String("donation_id", donationID.String()),
		zap.String("agent_id", actor.ID.String()),
		zap.String("event", "donation_collected"),
	)

	result := &TransitionResult{Donation: ToDonationResponse(updated), Notified: true}

	donorName := ""
	if updated.Donor != nil {
		donorName = updated.Donor.FirstName + " " + updated.Donor.LastName
		subject, body := notification.DonationCollectedDonorMessage(updated.Donor.FirstName)
		s.send(result, updated.Donor.Email, subject, body, "donation_collected_donor_notice")
	} else {
		s.recordNotifyFailure(result, "donor not loaded", domainUser.ErrUserNotFound)
	}

	admin, err := s.userRepo.FirstByRole(ctx, domainUser.RoleAdmin)
	if err != nil {
		// Notification is best-effort: log and continue without blocking the
		// state change.
		s.recordNotifyFailure(result, "admin not configured", err)
	} else {
		subject, body := notification.DonationCollectedAdminMessage(donorName, updated.ID.String())
		s.send(result, admin.Email, subject, body, "donation_collected_admin_notice")
	}

	return result, nil
}

// DeleteRejected hard-deletes a rejected donation. Deletion is scoped to the
// owning donor and the rejected status.
func (s *Service) DeleteRejected(ctx context.Context, actor Actor, donationID uuid.UUID) error {
	if err := Authorize(actor.Role, ActionDeleteRejected); err != nil {
		return err
	}

	d, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return s.wrapRepoErr(err)
	}

	if d.DonorID != actor.ID {
		return appErrors.NewAppError(appErrors.CodeAuthorization,
			"Donation does not belong to this donor", domainDonation.ErrNotOwner)
	}
	if d.Status != domainDonation.StatusRejected {
		return appErrors.NewAppError(appErrors.CodeConflict,
			"Only rejected donations can be deleted", domainDonation.ErrInvalidTransition)
	}

	if err := s.donationRepo.DeleteRejected(ctx, donationID, actor.ID); err != nil {
		return s.wrapRepoErr(err)
	}

	logger.Info("Rejected donation deleted",
		zap.String("donation_id", donationID.String()),
		zap.String("donor_id", actor.ID.String()),
		zap.String("event", "donation_deleted"),
	)

	return nil
}

// Query operations

func (s *Service) ListForDonor(ctx context.Context, donorID uuid.UUID, previous bool) ([]*DonationResponse, error) {
	filter := &domainDonation.Filter{DonorID: &donorID}
	if previous {
		filter.Statuses = []domainDonation.Status{domainDonation.StatusCollected}
	} else {
		filter.Statuses = []domainDonation.Status{
			domainDonation.StatusPending,
			domainDonation.StatusAccepted,
			domainDonation.StatusRejected,
			domainDonation.StatusAssigned,
		}
	}

	donations, err := s.donationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return ToDonationResponses(donations), nil
}

func (s *Service) ListForAdmin(ctx context.Context, actor Actor, statuses []domainDonation.Status) ([]*DonationResponse, error) {
	if err := Authorize(actor.Role, ActionViewAll); err != nil {
		return nil, err
	}

	donations, err := s.donationRepo.List(ctx, &domainDonation.Filter{Statuses: statuses})
	if err != nil {
		return nil, err
	}

	return ToDonationResponses(donations), nil
}

func (s *Service) GetForAdmin(ctx context.Context, actor Actor, donationID uuid.UUID) (*DonationResponse, error) {
	if err := Authorize(actor.Role, ActionViewAll); err != nil {
		return nil, err
	}

	d, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, s.wrapRepoErr(err)
	}

	return ToDonationResponse(d), nil
}

func (s *Service) ListForAgent(ctx context.Context, agentID uuid.UUID, previous bool) ([]*DonationResponse, error) {
	filter := &domainDonation.Filter{AgentID: &agentID}
	if previous {
		filter.Statuses = []domainDonation.Status{domainDonation.StatusCollected}
	} else {
		filter.Statuses = []domainDonation.Status{domainDonation.StatusAssigned}
	}

	donations, err := s.donationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return ToDonationResponses(donations), nil
}

func (s *Service) GetForAgent(ctx context.Context, actor Actor, donationID uuid.UUID) (*DonationResponse, error) {
	if err := Authorize(actor.Role, ActionViewAssigned); err != nil {
		return nil, err
	}

	d, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, s.wrapRepoErr(err)
	}

	if d.AgentID == nil || *d.AgentID != actor.ID {
		return nil, appErrors.NewAppError(appErrors.CodeAuthorization,
			"Donation is not assigned to this agent", domainDonation.ErrNotAssignedAgent)
	}

	return ToDonationResponse(d), nil
}

// Dashboards

func (s *Service) AdminDashboard(ctx context.Context, actor Actor) (*AdminDashboardResponse, error) {
	if err := Authorize(actor.Role, ActionViewAll); err != nil {
		return nil, err
	}

	numAdmins, err := s.userRepo.CountByRole(ctx, domainUser.RoleAdmin)
	if err != nil {
		return nil, err
	}
	numDonors, err := s.userRepo.CountByRole(ctx, domainUser.RoleDonor)
	if err != nil {
		return nil, err
	}
	numAgents, err := s.userRepo.CountByRole(ctx, domainUser.RoleAgent)
	if err != nil {
		return nil, err
	}

	counts, err := s.donationRepo.CountByStatus(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &AdminDashboardResponse{
		NumAdmins:             numAdmins,
		NumDonors:             numDonors,
		NumAgents:             numAgents,
		NumPendingDonations:   counts.Pending,
		NumAcceptedDonations:  counts.Accepted,
		NumAssignedDonations:  counts.Assigned,
		NumCollectedDonations: counts.Collected,
	}, nil
}

func (s *Service) DonorDashboard(ctx context.Context, donorID uuid.UUID) (*DonorDashboardResponse, error) {
	counts, err := s.donationRepo.CountByStatus(ctx, &domainDonation.Filter{DonorID: &donorID})
	if err != nil {
		return nil, err
	}

	return &DonorDashboardResponse{
		NumPendingDonations:   counts.Pending,
		NumAcceptedDonations:  counts.Accepted,
		NumAssignedDonations:  counts.Assigned,
		NumCollectedDonations: counts.Collected,
	}, nil
}

func (s *Service) AgentDashboard(ctx context.Context, agentID uuid.UUID) (*AgentDashboardResponse, error) {
	counts, err := s.donationRepo.CountByStatus(ctx, &domainDonation.Filter{AgentID: &agentID})
	if err != nil {
		return nil, err
	}

	return &AgentDashboardResponse{
		NumAssignedDonations:  counts.Assigned,
		NumCollectedDonations: counts.Collected,
	}, nil
}

// send dispatches one best-effort notification and downgrades the result on
// failure.
func (s *Service) send(result *TransitionResult, to, subject, body, event string) {
	if err := s.dispatcher.Send(to, subject, body); err != nil {
		logger.Warn("Notification dispatch failed",
			zap.String("recipient", to),
			zap.String("event", event),
			zap.Error(err),
		)
		s.recordNotifyFailure(result, "failed to notify "+to, err)
	}
}

func (s *Service) recordNotifyFailure(result *TransitionResult, msg string, err error) {
	result.Notified = false
	detail := fmt.Sprintf("%s: %v", msg, err)
	if result.NotifyError == "" {
		result.NotifyError = detail
	} else {
		result.NotifyError = strings.Join([]string{result.NotifyError, detail}, "; ")
	}
}

func (s *Service) wrapRepoErr(err error) error {
	switch {
	case errors.Is(err, domainDonation.ErrDonationNotFound):
		return appErrors.NewAppError(appErrors.CodeNotFound, "Donation not found", err)
	case errors.Is(err, domainDonation.ErrStatusConflict):
		return appErrors.NewAppError(appErrors.CodeConflict,
			"Donation status changed concurrently", err)
	}
	return err
}
