package services

import (
	"errors"

	"akun/internal/apperr"
	"akun/internal/models"
	"akun/internal/repositories"
)

// UserService handles profile reads and the admin directory listing.
// All access runs through the authorization policy in policy.go.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetProfile returns the account the identity is allowed to read for
// the requested target. Staff always get their own account back, an
// Admin naming a target gets that account or NotFound.
func (s *UserService) GetProfile(identity Identity, targetID string) (*models.User, error) {
	decision := Authorize(identity, ActionReadProfile, targetID)
	if !decision.Allowed {
		return nil, apperr.Wrap(apperr.ErrForbidden, "profile access denied")
	}

	user, err := s.userRepo.GetByID(decision.TargetID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "user %s not found", decision.TargetID)
		}
		return nil, apperr.Wrap(apperr.ErrInternal, "failed to fetch user: %v", err)
	}
	return user, nil
}

// ListUsers returns all accounts matching the filter. Admins only;
// an empty result set reports NotFound.
func (s *UserService) ListUsers(identity Identity, filter repositories.UserFilter) ([]models.User, error) {
	if decision := Authorize(identity, ActionListDirectory, ""); !decision.Allowed {
		return nil, apperr.Wrap(apperr.ErrForbidden, "directory access requires the Admin role")
	}

	users, err := s.userRepo.Find(filter)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrInternal, "failed to list users: %v", err)
	}
	if len(users) == 0 {
		return nil, apperr.Wrap(apperr.ErrNotFound, "no users matched the filter")
	}
	return users, nil
}
