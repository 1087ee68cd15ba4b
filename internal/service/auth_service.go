// Package service holds the business logic between handlers and repositories.
// Services receive the session principal explicitly and run every access
// decision through the shared guard.
package service

import (
	"context"
	"strings"

	"jobportal/internal/auth"
	"jobportal/internal/models"
	"jobportal/internal/repository"
	"jobportal/internal/session"
	"jobportal/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and logout.
type AuthService struct {
	users    repository.UserRepository
	sessions session.Store
}

func NewAuthService(users repository.UserRepository, sessions session.Store) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates the account and immediately establishes a session, so a
// new user is logged in without a second round trip.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*auth.Principal, string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	if name == "" || email == "" || in.Password == "" {
		return nil, "", models.NewValidationError("All fields are required")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}

	role := in.Role
	if role == "" {
		role = models.RoleJobSeeker
	}
	if !models.ValidRole(role) {
		return nil, "", models.NewValidationError("Invalid role")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", models.NewConflictError("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	principal := auth.Principal{UserID: user.ID, Name: user.Name, Role: user.Role}
	token, err := s.sessions.Create(ctx, principal)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return &principal, token, nil
}

// LoginInput carries the login form fields.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and establishes a session. Unknown email and
// wrong password fail with the same message so the response does not leak
// which part was wrong.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*auth.Principal, string, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, "", models.NewValidationError("Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", models.NewAuthError("Invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return nil, "", models.NewAuthError("Invalid email or password")
	}

	principal := auth.Principal{UserID: user.ID, Name: user.Name, Role: user.Role}
	token, err := s.sessions.Create(ctx, principal)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return &principal, token, nil
}

// Logout destroys the session behind the given token. Destroying an unknown
// token is a no-op; logout always succeeds from the caller's point of view.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, token); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
