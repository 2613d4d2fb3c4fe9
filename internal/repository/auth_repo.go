package repository

import (
	"context"
	"net/http"

	"travel_journal/internal/models"
)

type AuthREST struct {
	b *backend
}

func NewAuthREST(b *backend) *AuthREST {
	return &AuthREST{b: b}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*AuthREST)(nil)

const (
	registerPath = "/auth/local/register"
	loginPath    = "/auth/local"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Register creates an account; duplicate e-mail or username fails with ErrAuth.
func (r *AuthREST) Register(ctx context.Context, email, username, password string) (models.AuthResponse, error) {
	return r.post(ctx, opRegister, registerPath, registerRequest{Email: email, Username: username, Password: password})
}

// Login exchanges credentials for a JWT; bad credentials fail with ErrAuth.
func (r *AuthREST) Login(ctx context.Context, identifier, password string) (models.AuthResponse, error) {
	return r.post(ctx, opLogin, loginPath, loginRequest{Identifier: identifier, Password: password})
}

func (r *AuthREST) post(ctx context.Context, op, path string, payload any) (models.AuthResponse, error) {
	body, err := jsonBody(payload)
	if err != nil {
		return models.AuthResponse{}, err
	}
	var out models.AuthResponse
	if err := r.b.do(ctx, call{op: op, method: http.MethodPost, path: path, body: body}, &out); err != nil {
		return models.AuthResponse{}, err
	}
	return out, nil
}
