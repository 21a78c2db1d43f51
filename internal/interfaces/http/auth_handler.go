package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-kv/internal/application/auth"
	"github.com/jhoicas/inventario-kv/internal/application/dto"
	"github.com/jhoicas/inventario-kv/pkg/logger"
)

// AuthHandler registro de usuarios delegado al proveedor de identidad.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Signup godoc
// @Summary      Registrar usuario
// @Description  Crea el usuario con email confirmado. Los rechazos del proveedor se devuelven con su mensaje.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignupRequest  true  "email, password, name"
// @Success      200   {object}  dto.SignupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := decodeJSON(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Signup(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().Str("user_id", out.User.ID).Msg("usuario registrado")
	return c.JSON(out)
}
