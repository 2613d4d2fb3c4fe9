package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	tj "travel_journal"
)

func TestAuthREST_Login(t *testing.T) {
	var gotPath string
	var gotBody loginRequest
	repo := newTestRepo(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, map[string]any{
			"jwt":  "jwt-token",
			"user": map[string]any{"id": 7, "username": "alice", "email": "alice@example.com"},
		})
	})

	resp, err := repo.Auth.Login(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if gotPath != "/api/auth/local" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotBody.Identifier != "alice@example.com" || gotBody.Password != "secret1" {
		t.Fatalf("body = %+v", gotBody)
	}
	if resp.JWT != "jwt-token" || resp.User.ID != 7 || resp.User.Username != "alice" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestAuthREST_LoginBadCredentials(t *testing.T) {
	repo := newTestRepo(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeBackendError(w, http.StatusBadRequest, "ValidationError", "Invalid identifier or password")
	})

	_, err := repo.Auth.Login(context.Background(), "a@b.c", "wrongpw")
	if !errors.Is(err, tj.ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
	if tj.UserMessage(err) != "Invalid identifier or password" {
		t.Fatalf("message = %q", tj.UserMessage(err))
	}
}

func TestAuthREST_RegisterDuplicate(t *testing.T) {
	var gotBody registerRequest
	repo := newTestRepo(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/local/register" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeBackendError(w, http.StatusBadRequest, "ApplicationError", "Email or Username are already taken")
	})

	_, err := repo.Auth.Register(context.Background(), "a@b.c", "alice", "secret1")
	if !errors.Is(err, tj.ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
	if gotBody.Email != "a@b.c" || gotBody.Username != "alice" {
		t.Fatalf("body = %+v", gotBody)
	}
}
