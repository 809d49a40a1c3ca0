package donation

import (
	"fmt"

	domainDonation "donation-hub/internal/domain/donation"
	appErrors "donation-hub/pkg/errors"
)

// State machine for donation status transitions. Movement is monotonic:
// the only backward edge is the explicit reject decision, and re-accepting
// an already accepted donation is treated as a no-op success.
var validTransitions = map[domainDonation.Status][]domainDonation.Status{
	domainDonation.StatusPending: {
		domainDonation.StatusAccepted,
		domainDonation.StatusRejected,
	},
	domainDonation.StatusAccepted: {
		domainDonation.StatusAccepted, // idempotent re-accept
		domainDonation.StatusRejected,
		domainDonation.StatusAssigned,
	},
	domainDonation.StatusRejected: {
		// Deletable by the owning donor, no further transitions
	},
	domainDonation.StatusAssigned: {
		domainDonation.StatusCollected,
	},
	domainDonation.StatusCollected: {
		// Terminal state - no transitions
	},
}

// ValidateStatusTransition checks if status transition is allowed
func ValidateStatusTransition(currentStatus, newStatus domainDonation.Status) error {
	allowedStatuses, exists := validTransitions[currentStatus]
	if !exists {
		return appErrors.NewAppError(
			appErrors.CodeConflict,
			fmt.Sprintf("Unknown current status: %s", currentStatus),
			domainDonation.ErrInvalidStatus,
		)
	}

	for _, allowed := range allowedStatuses {
		if newStatus == allowed {
			return nil
		}
	}

	return appErrors.NewAppError(
		appErrors.CodeConflict,
		fmt.Sprintf("Cannot transition from %s to %s", currentStatus, newStatus),
		domainDonation.ErrInvalidTransition,
	)
}

// GetAllowedTransitions returns allowed next statuses
func GetAllowedTransitions(currentStatus domainDonation.Status) []domainDonation.Status {
	return validTransitions[currentStatus]
}

// PriorStatuses returns every status from which targetStatus is reachable.
// Repositories use the list as the expected-status set of a conditional
// update, so a concurrent transition surfaces as a conflict.
func PriorStatuses(targetStatus domainDonation.Status) []domainDonation.Status {
	var priors []domainDonation.Status
	for from, nexts := range validTransitions {
		for _, next := range nexts {
			if next == targetStatus {
				priors = append(priors, from)
			}
		}
	}
	return priors
}
