package server

import (
	"jobportal/internal/models"
	"jobportal/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile returns the caller's merged user-plus-profile view.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	var userID uint
	if p := s.principal(c); p != nil {
		userID = p.UserID
	}

	view, err := s.profileService.Get(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, "Profile retrieved", view)
}

// GetProfile returns any user's profile view. Profiles are public.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	// A malformed ID falls through as zero and fails as "User ID required".
	var userID uint
	if id, err := c.ParamsInt("userId"); err == nil && id > 0 {
		userID = uint(id)
	}

	view, err := s.profileService.Get(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, "Profile retrieved", view)
}

// UpdateProfile writes the caller's name, phone and profile extension, then
// refreshes the session so the cached display name stays current.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var in service.UpdateProfileInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if err := s.profileService.Update(c.UserContext(), s.principal(c), s.sessionToken(c), in); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, "Profile updated successfully", nil)
}
