package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestao-empresarial/management-system/internal/api/metrics"
	"github.com/gestao-empresarial/management-system/internal/core/domain"
	"github.com/gestao-empresarial/management-system/internal/core/ports"
)

const (
	msgMissingField       = "Usuário e senha são obrigatórios"
	msgInvalidCredentials = "Credenciais inválidas"
	msgBadPayload         = "invalid payload"
)

type AuthHandler struct {
	authService ports.AuthService
	metrics     *metrics.Metrics
}

func NewAuthHandler(authService ports.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{authService: authService, metrics: m}
}

// Login authenticates an operator and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  loginResponse
// @Failure      401   {object}  loginResponse
// @Failure      503   {object}  errorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		// same envelope as the other failures, but not mistaken for empty fields
		h.metrics.LoginAttempts.WithLabelValues(metrics.LoginBadPayload).Inc()
		return c.JSON(http.StatusBadRequest, loginResponse{Message: msgBadPayload})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, domain.ErrMissingField):
		h.metrics.LoginAttempts.WithLabelValues(metrics.LoginMissingField).Inc()
		return c.JSON(http.StatusBadRequest, loginResponse{Message: msgMissingField})
	case errors.Is(err, domain.ErrInvalidCredentials):
		h.metrics.LoginAttempts.WithLabelValues(metrics.LoginInvalid).Inc()
		return c.JSON(http.StatusUnauthorized, loginResponse{Message: msgInvalidCredentials})
	case err != nil:
		h.metrics.LoginAttempts.WithLabelValues(metrics.LoginError).Inc()
		return err
	}

	h.metrics.LoginAttempts.WithLabelValues(metrics.LoginSuccess).Inc()
	return c.JSON(http.StatusOK, loginResponse{Success: true, User: user, Token: token})
}
