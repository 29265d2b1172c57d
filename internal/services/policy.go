package services

import "akun/internal/models"

// Action names a protected operation for the authorization policy.
type Action string

const (
	ActionReadProfile   Action = "read_profile"
	ActionListDirectory Action = "list_directory"
)

// Decision is the outcome of an authorization check. When Allowed,
// TargetID names the account the caller may read: for self-scoped
// access it is the caller's own ID regardless of what was requested.
type Decision struct {
	Allowed  bool
	TargetID string
}

// Authorize applies the role policy for an identity requesting an
// action, optionally against a target account.
//
// Profile reads: Admins with an explicit target read that account;
// everyone else (Staff, or Admin without a target) reads their own.
// Directory listing: Admins only.
func Authorize(identity Identity, action Action, targetID string) Decision {
	switch action {
	case ActionReadProfile:
		if identity.Role == models.RoleAdmin && targetID != "" {
			return Decision{Allowed: true, TargetID: targetID}
		}
		return Decision{Allowed: true, TargetID: identity.ID}
	case ActionListDirectory:
		return Decision{Allowed: identity.Role == models.RoleAdmin}
	}
	return Decision{}
}
