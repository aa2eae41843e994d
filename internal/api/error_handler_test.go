package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"

	"github.com/hmsv1/hospital-system/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	dependency := oops.Code("AUTH_DEPENDENCY_FAILURE").With("lookup", "email").
		Wrap(fmt.Errorf("find account by email: %w: %w", domain.ErrDependencyFailure, errors.New("dial tcp: refused")))

	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, `{"error":"invalid credentials"}`},
		{"malformed", domain.ErrMalformedRequest, http.StatusBadRequest, `{"error":"identifier and secret are required"}`},
		{"dependency", dependency, http.StatusServiceUnavailable, `{"error":"service unavailable"}`},
		{"not found", domain.ErrAccountNotFound, http.StatusNotFound, `{"error":"account not found"}`},
		{"exists", domain.ErrAccountExists, http.StatusConflict, `{"error":"account already exists"}`},
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest, `{"error":"invalid role"}`},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, `{"error":"invalid payload"}`},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), rec)

			h(tc.err, c)

			assert.Equal(t, tc.code, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
			assert.NotContains(t, rec.Body.String(), "dial tcp")
		})
	}
}
