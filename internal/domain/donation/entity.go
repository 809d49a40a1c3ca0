package donation

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the status of a donation
type Status string

const (
	StatusPending   Status = "pending"   // Donor submits donation
	StatusAccepted  Status = "accepted"  // Admin approves
	StatusRejected  Status = "rejected"  // Admin declines
	StatusAssigned  Status = "assigned"  // Admin dispatches an agent
	StatusCollected Status = "collected" // Agent picks up, terminal
)

// Donation represents one donation lifecycle instance in the domain.
// AgentID is set if and only if status is assigned or collected.
type Donation struct {
	ID uuid.UUID

	// Parties
	DonorID uuid.UUID
	AgentID *uuid.UUID

	Status Status

	// Food details
	FoodType    string
	Quantity    string
	Description *string

	// Pickup details
	Phone   string
	Address string

	// Admin instruction forwarded to the assigned agent
	AdminToAgentMsg *string

	CollectedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Populated relations
	Donor *DonorInfo
	Agent *AgentInfo
}

// DonorInfo carries the donor fields needed for listings and notifications.
type DonorInfo struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Phone     *string
}

// AgentInfo carries the agent fields needed for listings and notifications.
type AgentInfo struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Phone     *string
}

// StatusCounts aggregates donations per status for dashboards.
type StatusCounts struct {
	Pending   int64
	Accepted  int64
	Rejected  int64
	Assigned  int64
	Collected int64
}
