package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hmsv1/hospital-system/internal/core/domain"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, identifier, secret string) (*domain.Session, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, identifier, secret string) (*domain.Session, error) {
	return s.authenticateFn(ctx, identifier, secret)
}

func doctorSession() *domain.Session {
	return &domain.Session{
		Token: "5f0c8a7e2b9d4c61a3e8f1b2c7d9e0a4",
		Identity: domain.Identity{
			ID:       2,
			Username: "doctor",
			Role:     domain.RoleDoctor,
			Name:     "Dr. John Smith",
			Email:    "doctor@hospital.com",
		},
	}
}

func newLoginContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, identifier, secret string) (*domain.Session, error) {
			if identifier != "doctor@hospital.com" || secret != "doctor123" {
				t.Fatalf("unexpected args: %q %q", identifier, secret)
			}
			return doctorSession(), nil
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	c, rec := newLoginContext(`{"identifier":"doctor@hospital.com","secret":"doctor123"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "5f0c8a7e2b9d4c61a3e8f1b2c7d9e0a4" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	if resp["message"] != "Login successful" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}

	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "doctor" || user["role"] != "DOCTOR" || user["email"] != "doctor@hospital.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if len(user) != 5 {
		t.Fatalf("user must carry exactly id, username, role, name, email: %+v", user)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response leaks a secret field: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_LegacyFieldNames(t *testing.T) {
	cases := map[string]string{
		`{"email":"doctor@hospital.com","password":"doctor123"}`: "doctor@hospital.com",
		`{"username":"doctor","password":"doctor123"}`:           "doctor",
	}
	for body, wantIdentifier := range cases {
		stub := &stubAuthService{
			authenticateFn: func(ctx context.Context, identifier, secret string) (*domain.Session, error) {
				if identifier != wantIdentifier || secret != "doctor123" {
					t.Fatalf("body %s: unexpected args %q %q", body, identifier, secret)
				}
				return doctorSession(), nil
			},
		}
		c, rec := newLoginContext(body)
		if err := NewAuthHandler(stub, zerolog.Nop()).Login(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}
}

func TestAuthHandler_Login_PropagatesServiceErrors(t *testing.T) {
	for _, want := range []error{domain.ErrInvalidCredentials, domain.ErrMalformedRequest, domain.ErrDependencyFailure} {
		stub := &stubAuthService{
			authenticateFn: func(ctx context.Context, identifier, secret string) (*domain.Session, error) {
				return nil, want
			},
		}
		c, rec := newLoginContext(`{"identifier":"ghost","secret":"x"}`)
		err := NewAuthHandler(stub, zerolog.Nop()).Login(c)
		if !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
		if rec.Body.Len() != 0 {
			t.Fatalf("handler must leave rendering to the error handler, wrote %q", rec.Body.String())
		}
	}
}

func TestAuthHandler_Login_EmptyFieldsReachService(t *testing.T) {
	called := false
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, identifier, secret string) (*domain.Session, error) {
			called = true
			if identifier != "" || secret != "" {
				t.Fatalf("unexpected args: %q %q", identifier, secret)
			}
			return nil, domain.ErrMalformedRequest
		},
	}
	c, _ := newLoginContext(`{}`)
	err := NewAuthHandler(stub, zerolog.Nop()).Login(c)
	if !called || !errors.Is(err, domain.ErrMalformedRequest) {
		t.Fatalf("expected malformed request from service, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, identifier, secret string) (*domain.Session, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newLoginContext("not-json")
	err := NewAuthHandler(stub, zerolog.Nop()).Login(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session_id", "0d6f3c2e")

	if err := NewAuthHandler(&stubAuthService{}, zerolog.Nop()).Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Logged out successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
