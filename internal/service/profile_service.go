package service

import (
	"context"
	"strings"

	"jobportal/internal/auth"
	"jobportal/internal/middleware"
	"jobportal/internal/models"
	"jobportal/internal/repository"
	"jobportal/internal/session"
)

// ProfileService handles the merged user-plus-profile view and its updates.
type ProfileService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	sessions session.Store
	guard    auth.Guard
}

func NewProfileService(users repository.UserRepository, profiles repository.ProfileRepository, sessions session.Store, guard auth.Guard) *ProfileService {
	return &ProfileService{users: users, profiles: profiles, sessions: sessions, guard: guard}
}

// Get returns the public user fields merged with the profile extension.
// A user without a profile row reads as empty extension fields.
func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.ProfileView, error) {
	if userID == 0 {
		return nil, models.NewValidationError("User ID required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User not found")
	}

	view := &models.ProfileView{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		view.Bio = profile.Bio
		view.Address = profile.Address
		view.Website = profile.Website
		view.Github = profile.Github
		view.Linkedin = profile.Linkedin
	}
	return view, nil
}

// UpdateProfileInput carries the profile form fields.
type UpdateProfileInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio"`
	Address  string `json:"address"`
	Website  string `json:"website"`
	Github   string `json:"github"`
	Linkedin string `json:"linkedin"`
}

// Update writes name and phone to the user row, upserts the profile row, and
// refreshes the session so the cached display name tracks the change.
func (s *ProfileService) Update(ctx context.Context, p *auth.Principal, token string, in UpdateProfileInput) error {
	if err := s.guard.Authenticated(p); err != nil {
		return err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.NewValidationError("Name is required")
	}

	if err := s.users.UpdateContact(ctx, p.UserID, name, strings.TrimSpace(in.Phone)); err != nil {
		return err
	}

	profile := &models.Profile{
		UserID:   p.UserID,
		Bio:      strings.TrimSpace(in.Bio),
		Address:  strings.TrimSpace(in.Address),
		Website:  strings.TrimSpace(in.Website),
		Github:   strings.TrimSpace(in.Github),
		Linkedin: strings.TrimSpace(in.Linkedin),
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return err
	}

	if token != "" {
		refreshed := auth.Principal{UserID: p.UserID, Name: name, Role: p.Role}
		if err := s.sessions.Refresh(ctx, token, refreshed); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to refresh session after profile update",
				"user_id", p.UserID, "error", err)
		}
	}
	return nil
}
