package donation

import (
	"fmt"

	domainUser "donation-hub/internal/domain/user"
	appErrors "donation-hub/pkg/errors"
)

// Action enumerates every role-gated donation operation.
type Action string

const (
	ActionSubmit         Action = "submit"
	ActionAccept         Action = "accept"
	ActionReject         Action = "reject"
	ActionAssign         Action = "assign"
	ActionCollect        Action = "collect"
	ActionDeleteRejected Action = "delete_rejected"
	ActionViewAll        Action = "view_all"
	ActionViewOwn        Action = "view_own"
	ActionViewAssigned   Action = "view_assigned"
)

// rolePermissions is the authorization rule set: (role, action) -> allow.
// Ownership conditions (donor owns the donation, agent is the assigned one)
// are enforced by the service on top of this table.
var rolePermissions = map[domainUser.Role]map[Action]bool{
	domainUser.RoleAdmin: {
		ActionAccept:  true,
		ActionReject:  true,
		ActionAssign:  true,
		ActionViewAll: true,
	},
	domainUser.RoleDonor: {
		ActionSubmit:         true,
		ActionViewOwn:        true,
		ActionDeleteRejected: true,
	},
	domainUser.RoleAgent: {
		ActionCollect:      true,
		ActionViewAssigned: true,
	},
}

// Authorize maps (actor role, requested action) to allow/deny, independent
// of HTTP concerns.
func Authorize(role domainUser.Role, action Action) error {
	perms, known := rolePermissions[role]
	if !known {
		return appErrors.NewAppError(
			appErrors.CodeAuthorization,
			fmt.Sprintf("Unknown role: %s", role),
			appErrors.ErrInsufficientPermissions,
		)
	}

	if !perms[action] {
		return appErrors.NewAppError(
			appErrors.CodeAuthorization,
			fmt.Sprintf("Role %s may not %s", role, action),
			appErrors.ErrInsufficientPermissions,
		)
	}

	return nil
}
