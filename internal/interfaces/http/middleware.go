package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/inventario-kv/pkg/logger"
	"github.com/jhoicas/inventario-kv/pkg/metrics"
)

const (
	HeaderRequestID = "X-Request-ID"
	LocalRequestID  = "request_id"
)

// RequestID reutiliza el X-Request-ID entrante o genera uno nuevo y lo devuelve en la respuesta.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Locals(LocalRequestID, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

// RequestIDFromContext id de la petición actual.
func RequestIDFromContext(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}

// RequestLogger registra método, ruta, status y latencia de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("request_id", RequestIDFromContext(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http")
		return err
	}
}

// Metrics cuenta peticiones y su duración. Se etiqueta con la ruta registrada para no disparar la cardinalidad.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		path := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())
		m.HTTPRequestsTotal.WithLabelValues(c.Method(), path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Method(), path, status).Observe(time.Since(start).Seconds())
		return err
	}
}
