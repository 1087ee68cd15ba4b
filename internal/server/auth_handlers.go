package server

import (
	"jobportal/internal/models"
	"jobportal/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register creates an account and logs the new user straight in.
func (s *Server) Register(c *fiber.Ctx) error {
	var in service.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	principal, token, err := s.authService.Register(c.UserContext(), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.setSessionCookie(c, token)
	return models.Respond(c, "Registration successful", principal)
}

// Login verifies credentials and establishes a session.
func (s *Server) Login(c *fiber.Ctx) error {
	var in service.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	principal, token, err := s.authService.Login(c.UserContext(), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.setSessionCookie(c, token)
	return models.Respond(c, "Login successful", principal)
}

// Logout destroys the current session. Succeeds even without one.
func (s *Server) Logout(c *fiber.Ctx) error {
	token := c.Cookies(s.config.SessionCookie)
	if err := s.authService.Logout(c.UserContext(), token); err != nil {
		return models.RespondWithError(c, err)
	}

	s.clearSessionCookie(c)
	return models.Respond(c, "Logged out successfully", nil)
}

// CheckAuth reports the current principal. An unauthenticated check is a
// negative envelope, not an error.
func (s *Server) CheckAuth(c *fiber.Ctx) error {
	p := s.principal(c)
	if p == nil {
		return models.RespondNegative(c, "Not authenticated", nil)
	}
	return models.Respond(c, "Authenticated", p)
}
