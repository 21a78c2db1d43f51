package http

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-kv/internal/application/dto"
	"github.com/jhoicas/inventario-kv/internal/domain"
	"github.com/jhoicas/inventario-kv/pkg/logger"
)

const msgInternal = "Internal server error"

// writeError traduce errores de dominio a status HTTP. Los errores internos nunca exponen detalle.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var idErr *domain.IdentityError
	switch {
	case errors.As(err, &idErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: idErr.Message, Code: "IDENTITY_REJECTED"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Missing or invalid fields", Code: "VALIDATION"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized", Code: "UNAUTHORIZED"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Product not found", Code: "NOT_FOUND"})
	}
	log.Error().Err(err).
		Str("request_id", RequestIDFromContext(c)).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: msgInternal, Code: "INTERNAL"})
}

// decodeJSON lee el cuerpo como JSON sin depender del Content-Type. Cuerpo vacío o malformado es ErrInvalidInput.
func decodeJSON(c *fiber.Ctx, v any) error {
	body := c.Body()
	if len(body) == 0 {
		return domain.ErrInvalidInput
	}
	if err := json.Unmarshal(body, v); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}
