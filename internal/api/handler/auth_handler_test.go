package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/identity-squad/user-api/internal/core/domain"
)

type stubAuthService struct {
	loginFn func(email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(email, password)
}

func TestAuthHandler_Login(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "pass1234" {
				return "", nil, domain.ErrInvalidCredentials
			}
			return "signed-token", sampleUser(), nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"pass1234"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Token != "signed-token" {
		t.Fatalf("unexpected token: %q", body.Token)
	}
	if _, present := body.User["password_hash"]; present {
		t.Fatalf("response leaks the password hash: %v", body.User)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	})

	c, _ := newTestContext(http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials passed through, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(string, string) (string, *domain.User, error) {
			t.Fatal("service must not be called on invalid payload")
			return "", nil, nil
		},
	})

	c, _ := newTestContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com"}`)
	err := h.Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
