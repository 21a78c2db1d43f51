package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-kv/internal/application/dto"
	"github.com/jhoicas/inventario-kv/internal/application/ports"
	"github.com/jhoicas/inventario-kv/internal/domain"
	"github.com/jhoicas/inventario-kv/pkg/logger"
)

// TokenHandler endpoints compatibles con GoTrue para el proveedor local, montados en /auth/v1.
// El cliente usa el mismo adaptador contra Supabase o contra este servicio.
type TokenHandler struct {
	authn ports.PasswordAuthenticator
	log   *logger.Logger
}

// NewTokenHandler construye el handler.
func NewTokenHandler(authn ports.PasswordAuthenticator, log *logger.Logger) *TokenHandler {
	return &TokenHandler{authn: authn, log: log}
}

// Token godoc
// @Summary      Login por password (proveedor local)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        grant_type  query  string                    true  "password"
// @Param        body        body   dto.PasswordGrantRequest  true  "email, password"
// @Success      200  {object}  dto.TokenResponse
// @Failure      400  {object}  dto.AuthErrorResponse
// @Router       /auth/v1/token [post]
func (h *TokenHandler) Token(c *fiber.Ctx) error {
	if c.Query("grant_type") != "password" {
		return grantError(c, "unsupported_grant_type", "Only the password grant is supported")
	}
	var in dto.PasswordGrantRequest
	if err := decodeJSON(c, &in); err != nil || in.Email == "" || in.Password == "" {
		return grantError(c, "invalid_request", "email and password are required")
	}
	out, err := h.authn.SignInWithPassword(c.UserContext(), in.Email, in.Password)
	if err != nil {
		var idErr *domain.IdentityError
		if errors.As(err, &idErr) {
			return grantError(c, "invalid_grant", idErr.Message)
		}
		h.log.Error().Err(err).Str("request_id", RequestIDFromContext(c)).Msg("login local")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.AuthErrorResponse{Error: "server_error", ErrorDescription: msgInternal})
	}
	return c.JSON(out)
}

// Logout los tokens locales no tienen estado en servidor; la sesión termina en el cliente.
// @Summary      Logout (proveedor local)
// @Tags         auth
// @Success      204
// @Router       /auth/v1/logout [post]
func (h *TokenHandler) Logout(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func grantError(c *fiber.Ctx, code, description string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.AuthErrorResponse{Error: code, ErrorDescription: description})
}
