package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hmsv1/hospital-system/internal/core/domain"
	"github.com/hmsv1/hospital-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// loginRequest accepts the canonical {identifier, secret} pair. The older
// {email|username, password} field names are still honoured.
type loginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`

	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

func (r loginRequest) credentials() (identifier, secret string) {
	identifier = firstNonBlank(r.Identifier, r.Email, r.Username)
	secret = r.Secret
	if secret == "" {
		secret = r.Password
	}
	return identifier, secret
}

type loginResponse struct {
	Token   string          `json:"token"`
	User    domain.Identity `json:"user"`
	Message string          `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login authenticates a staff member by email or username and returns a
// session token with the caller's identity.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Identifier (email or username) and secret"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	identifier, secret := req.credentials()
	session, err := h.authService.Authenticate(c.Request().Context(), identifier, secret)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:   session.Token,
		User:    session.Identity,
		Message: "Login successful",
	})
}

// Logout acknowledges the end of a session. Tokens carry no server-side
// state, so the client simply discards its token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if id := sessionID(c); id != "" {
		h.log.Debug().Str("session_id", id).Msg("session closed by client")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
