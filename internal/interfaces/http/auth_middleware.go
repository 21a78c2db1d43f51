package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-kv/internal/application/auth"
	"github.com/jhoicas/inventario-kv/internal/application/dto"
	"github.com/jhoicas/inventario-kv/internal/application/ports"
	"github.com/jhoicas/inventario-kv/pkg/logger"
	"github.com/jhoicas/inventario-kv/pkg/metrics"
)

// Locals keys de la identidad verificada en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalName   = "name"
)

// AuthMiddleware exige "Authorization: Bearer <token>" y verifica el token con el proveedor de identidad.
// Sin header se responde 401 antes de tocar el storage. No hay reintentos.
func AuthMiddleware(uc *auth.AuthUseCase, m *metrics.Metrics, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			m.RecordAuth("missing_token")
			return unauthorized(c, "MISSING_TOKEN")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.RecordAuth("malformed_header")
			return unauthorized(c, "INVALID_TOKEN")
		}
		token := strings.TrimSpace(parts[1])
		if token == "" {
			m.RecordAuth("missing_token")
			return unauthorized(c, "MISSING_TOKEN")
		}
		id, err := uc.Authenticate(c.UserContext(), token)
		if err != nil {
			m.RecordAuth("rejected")
			log.Debug().Err(errors.Unwrap(err)).Str("request_id", RequestIDFromContext(c)).Msg("token rechazado")
			return unauthorized(c, "INVALID_TOKEN")
		}
		m.RecordAuth("")
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalEmail, id.Email)
		c.Locals(LocalName, id.Name)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, code string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized", Code: code})
}

// OwnerFromContext devuelve el owner de la petición. Es la única fuente del ownerId para los handlers.
func OwnerFromContext(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// IdentityFromContext devuelve la identidad verificada completa.
func IdentityFromContext(c *fiber.Ctx) *ports.Identity {
	owner := OwnerFromContext(c)
	if owner == "" {
		return nil
	}
	email, _ := c.Locals(LocalEmail).(string)
	name, _ := c.Locals(LocalName).(string)
	return &ports.Identity{UserID: owner, Email: email, Name: name}
}
