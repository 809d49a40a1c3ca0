package donation

import (
	"time"

	domainDonation "donation-hub/internal/domain/donation"
	domainUser "donation-hub/internal/domain/user"

	"github.com/google/uuid"
)

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role domainUser.Role
}

// Request DTOs
type SubmitDonationRequest struct {
	FoodType    string  `json:"food_type" validate:"required,min=2,max=100"`
	Quantity    string  `json:"quantity" validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Phone       string  `json:"phone" validate:"required,phone"`
	Address     string  `json:"address" validate:"required,min=5"`
}

type AssignAgentRequest struct {
	AgentID uuid.UUID `json:"agent_id" validate:"required"`
	Message *string   `json:"message" validate:"omitempty,max=500"`
}

// Response DTOs
type PartyInfo struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
}

type DonationResponse struct {
	ID     uuid.UUID             `json:"id"`
	Status domainDonation.Status `json:"status"`

	Donor *PartyInfo `json:"donor,omitempty"`
	Agent *PartyInfo `json:"agent,omitempty"`

	FoodType    string  `json:"food_type"`
	Quantity    string  `json:"quantity"`
	Description *string `json:"description"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`

	AdminToAgentMsg *string `json:"admin_to_agent_msg,omitempty"`

	CollectedAt *time.Time `json:"collected_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TransitionResult is the tagged outcome of a lifecycle transition: the
// state change succeeded, and Notified tells whether the accompanying
// notifications were delivered. NotifyError carries the degraded-success
// detail for the presentation layer.
type TransitionResult struct {
	Donation    *DonationResponse `json:"donation"`
	Notified    bool              `json:"notified"`
	NotifyError string            `json:"notify_error,omitempty"`
}

// Dashboard DTOs
type AdminDashboardResponse struct {
	NumAdmins             int64 `json:"num_admins"`
	NumDonors             int64 `json:"num_donors"`
	NumAgents             int64 `json:"num_agents"`
	NumPendingDonations   int64 `json:"num_pending_donations"`
	NumAcceptedDonations  int64 `json:"num_accepted_donations"`
	NumAssignedDonations  int64 `json:"num_assigned_donations"`
	NumCollectedDonations int64 `json:"num_collected_donations"`
}

type DonorDashboardResponse struct {
	NumPendingDonations   int64 `json:"num_pending_donations"`
	NumAcceptedDonations  int64 `json:"num_accepted_donations"`
	NumAssignedDonations  int64 `json:"num_assigned_donations"`
	NumCollectedDonations int64 `json:"num_collected_donations"`
}

type AgentDashboardResponse struct {
	NumAssignedDonations  int64 `json:"num_assigned_donations"`
	NumCollectedDonations int64 `json:"num_collected_donations"`
}

func ToDonationResponse(d *domainDonation.Donation) *DonationResponse {
	if d == nil {
		return nil
	}

	resp := &DonationResponse{
		ID:              d.ID,
		Status:          d.Status,
		FoodType:        d.FoodType,
		Quantity:        d.Quantity,
		Description:     d.Description,
		Phone:           d.Phone,
		Address:         d.Address,
		AdminToAgentMsg: d.AdminToAgentMsg,
		CollectedAt:     d.CollectedAt,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}

	if d.Donor != nil {
		resp.Donor = &PartyInfo{
			ID:        d.Donor.ID,
			FirstName: d.Donor.FirstName,
			LastName:  d.Donor.LastName,
			Email:     d.Donor.Email,
			Phone:     d.Donor.Phone,
		}
	}
	if d.Agent != nil {
		resp.Agent = &PartyInfo{
			ID:        d.Agent.ID,
			FirstName: d.Agent.FirstName,
			LastName:  d.Agent.LastName,
			Email:     d.Agent.Email,
			Phone:     d.Agent.Phone,
		}
	}

	return resp
}

func ToDonationResponses(donations []*domainDonation.Donation) []*DonationResponse {
	responses := make([]*DonationResponse, len(donations))
	for i, d := range donations {
		responses[i] = ToDonationResponse(d)
	}
	return responses
}
