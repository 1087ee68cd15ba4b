// Package auth implements the session principal and the authorization guard
// applied by every mutating operation.
package auth

import "jobportal/internal/models"

// Principal is the authenticated user bound to a session.
type Principal struct {
	UserID uint   `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Guard decides whether a principal may perform an action. Rules are checked
// in a fixed order and the first failing rule wins: authentication, then
// role, then ownership.
type Guard struct{}

// Authenticated denies when there is no resolvable principal.
func (Guard) Authenticated(p *Principal) error {
	if p == nil {
		return models.NewAuthError("Please login first")
	}
	return nil
}

// RequireRole denies unauthenticated principals and principals holding a
// different role. denyMessage is the role-mismatch message shown to the caller.
func (g Guard) RequireRole(p *Principal, role, denyMessage string) error {
	if err := g.Authenticated(p); err != nil {
		return err
	}
	if p.Role != role {
		return models.NewForbiddenError(denyMessage)
	}
	return nil
}

// RequireOwner denies unauthenticated principals and principals that do not
// own the target resource. For applications the owner is the employer of the
// referenced job, so callers pass the job's employer ID here.
func (g Guard) RequireOwner(p *Principal, ownerID uint, denyMessage string) error {
	if err := g.Authenticated(p); err != nil {
		return err
	}
	if p.UserID != ownerID {
		return models.NewForbiddenError(denyMessage)
	}
	return nil
}
