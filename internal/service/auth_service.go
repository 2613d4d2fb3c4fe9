package service

import (
	"context"

	"travel_journal/internal/models"
	"travel_journal/internal/repository"
)

// LoginInput is the login form.
type LoginInput struct {
	Identifier string `json:"identifier" validate:"required,email"`
	Password   string `json:"password" validate:"min=6"`
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"min=3"`
	Password string `json:"password" validate:"min=6"`
}

// AuthService validates credentials locally and exchanges them with the backend.
// It does not touch the session; the tab stores the response.
type AuthService struct {
	validator *Validator
	repo      repository.Authorization
}

func NewAuthService(v *Validator, repo repository.Authorization) *AuthService {
	return &AuthService{validator: v, repo: repo}
}

func (s *AuthService) ValidateLogin(in LoginInput) FieldErrors {
	return s.validator.Struct(in)
}

func (s *AuthService) ValidateRegister(in RegisterInput) FieldErrors {
	return s.validator.Struct(in)
}

// Login returns the token and user for valid credentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (models.AuthResponse, error) {
	if err := s.ValidateLogin(in).asError("login"); err != nil {
		return models.AuthResponse{}, err
	}
	return s.repo.Login(ctx, in.Identifier, in.Password)
}

// Register creates the account and returns its first token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.AuthResponse, error) {
	if err := s.ValidateRegister(in).asError("register"); err != nil {
		return models.AuthResponse{}, err
	}
	return s.repo.Register(ctx, in.Email, in.Username, in.Password)
}
