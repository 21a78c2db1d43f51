package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventario-kv/internal/application/auth"
	"github.com/jhoicas/inventario-kv/internal/application/dto"
	"github.com/jhoicas/inventario-kv/internal/application/ports"
	"github.com/jhoicas/inventario-kv/internal/application/report"
	"github.com/jhoicas/inventario-kv/internal/application/usecase"
	"github.com/jhoicas/inventario-kv/pkg/logger"
	"github.com/jhoicas/inventario-kv/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	InventoryUC *usecase.InventoryUseCase
	ReportUC    *report.ReportUseCase
	// PasswordAuth solo con el proveedor local; nil deja sin montar /auth/v1.
	PasswordAuth ports.PasswordAuthenticator
	Metrics      *metrics.Metrics
	Logger       *logger.Logger
	Prefix       string
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	prefix := deps.Prefix
	if prefix == "" {
		prefix = "/api"
	}

	app.Use(RequestID())
	app.Use(RequestLogger(log.Component("http")))
	if deps.Metrics != nil {
		app.Use(Metrics(deps.Metrics))
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	if deps.PasswordAuth != nil {
		tokenHandler := NewTokenHandler(deps.PasswordAuth, log)
		gotrue := app.Group("/auth/v1")
		gotrue.Post("/token", tokenHandler.Token)
		gotrue.Post("/logout", tokenHandler.Logout)
	}

	api := app.Group(prefix)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok"})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/signup", authHandler.Signup)

	// Rutas protegidas (requieren Bearer Token)
	requireAuth := AuthMiddleware(deps.AuthUC, deps.Metrics, log)

	products := api.Group("/products", requireAuth)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.Metrics, log)
	products.Get("/", inventoryHandler.List)
	products.Post("/", inventoryHandler.Create)
	products.Put("/:id", inventoryHandler.UpdateQuantity)
	products.Delete("/:id", inventoryHandler.Delete)

	if deps.ReportUC != nil {
		reports := api.Group("/reports", requireAuth)
		reportHandler := NewReportHandler(deps.ReportUC, deps.Metrics, log)
		reports.Get("/inventory", reportHandler.Inventory)
	}
}
