package donation

import "errors"

var (
	ErrDonationNotFound  = errors.New("donation not found")
	ErrInvalidStatus     = errors.New("invalid donation status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStatusConflict    = errors.New("donation status changed concurrently")
	ErrNotOwner          = errors.New("donation does not belong to this user")
	ErrNotAssignedAgent  = errors.New("donation is not assigned to this agent")
)
