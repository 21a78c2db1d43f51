package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/inventario-kv/docs"
	"github.com/jhoicas/inventario-kv/internal/application/auth"
	"github.com/jhoicas/inventario-kv/internal/application/ports"
	"github.com/jhoicas/inventario-kv/internal/application/report"
	"github.com/jhoicas/inventario-kv/internal/application/usecase"
	"github.com/jhoicas/inventario-kv/internal/domain/repository"
	"github.com/jhoicas/inventario-kv/internal/infrastructure/kv"
	"github.com/jhoicas/inventario-kv/internal/infrastructure/localauth"
	"github.com/jhoicas/inventario-kv/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventario-kv/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-kv/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-kv/internal/infrastructure/rediskv"
	"github.com/jhoicas/inventario-kv/internal/infrastructure/supabase"
	httpRouter "github.com/jhoicas/inventario-kv/internal/interfaces/http"
	"github.com/jhoicas/inventario-kv/pkg/config"
	"github.com/jhoicas/inventario-kv/pkg/logger"
	"github.com/jhoicas/inventario-kv/pkg/metrics"
)

// @title                       Inventario KV API
// @version                     1.0
// @description                 Inventario por usuario sobre un store clave-valor.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("identity", cfg.Identity.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	m := metrics.New(cfg.Metrics.Prefix)

	store, closeStore := openStore(ctx, cfg, log)
	defer closeStore()
	store = kv.Instrument(store, m)

	itemRepo := kv.NewItemRepository(store)

	var (
		verifier     ports.IdentityVerifier
		provider     ports.IdentityProvider
		passwordAuth ports.PasswordAuthenticator
	)
	switch cfg.Identity.Driver {
	case config.IdentitySupabase:
		// Verify usa la anon key como apikey; el alta de usuarios requiere la service role key.
		verifier = supabase.NewAuthClient(cfg.Identity.SupabaseURL, cfg.Identity.AnonKey, cfg.Identity.Timeout)
		provider = supabase.NewAuthClient(cfg.Identity.SupabaseURL, cfg.Identity.ServiceRoleKey, cfg.Identity.Timeout)
	default:
		local := localauth.NewProvider(kv.NewUserRepository(store), localauth.Config{
			Secret:     cfg.JWT.Secret,
			Issuer:     cfg.JWT.Issuer,
			ExpMinutes: cfg.JWT.Expiration,
		})
		verifier, provider, passwordAuth = local, local, local
	}

	authUC := auth.NewAuthUseCase(verifier, provider)
	inventoryUC := usecase.NewInventoryUseCase(itemRepo)
	reportUC := report.NewReportUseCase(itemRepo, infrapdf.NewMarotoReportRenderer())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID, apikey",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario KV API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		InventoryUC:  inventoryUC,
		ReportUC:     reportUC,
		PasswordAuth: passwordAuth,
		Metrics:      m,
		Logger:       log,
		Prefix:       cfg.HTTP.Prefix,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStore abre el backend clave-valor configurado y devuelve su función de cierre.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.KeyValueStore, func()) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		store := postgres.NewKVStore(pool, cfg.DB.KVTable)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("crear tabla clave-valor")
		}
		return store, pool.Close
	case config.StoreRedis:
		client, err := rediskv.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		return rediskv.NewKVStore(client), func() { _ = client.Close() }
	default:
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		return memory.NewKVStore(), func() {}
	}
}
