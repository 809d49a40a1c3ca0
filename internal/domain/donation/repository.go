package donation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for donation repository operations.
// Transition methods are conditional updates keyed on the expected prior
// status; they return ErrStatusConflict when no row matched, so lost updates
// between two concurrent actors surface instead of silently overwriting.
type Repository interface {
	Create(ctx context.Context, d *Donation) error
	GetByID(ctx context.Context, donationID uuid.UUID) (*Donation, error)
	List(ctx context.Context, filter *Filter) ([]*Donation, error)

	// UpdateStatusFrom moves donationID from one of the expected statuses to
	// next.
	UpdateStatusFrom(ctx context.Context, donationID uuid.UUID, expected []Status, next Status) error
	// AssignAgent moves an accepted donation to assigned, attaching the agent
	// and the admin message.
	AssignAgent(ctx context.Context, donationID, agentID uuid.UUID, message *string) error
	// MarkCollected moves an assigned donation to collected and stamps the
	// collection time.
	MarkCollected(ctx context.Context, donationID uuid.UUID, collectedAt time.Time) error
	// DeleteRejected hard-deletes a rejected donation owned by donorID.
	DeleteRejected(ctx context.Context, donationID, donorID uuid.UUID) error

	CountByStatus(ctx context.Context, filter *Filter) (*StatusCounts, error)
}

// Filter represents filtering options for listing donations
type Filter struct {
	DonorID  *uuid.UUID
	AgentID  *uuid.UUID
	Statuses []Status
}
