package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/jhoicas/mf-comercial/internal/application/analytics"
	"github.com/jhoicas/mf-comercial/internal/application/console"
	"github.com/jhoicas/mf-comercial/internal/application/dto"
	"github.com/jhoicas/mf-comercial/internal/domain/repository"
	"github.com/jhoicas/mf-comercial/internal/infrastructure/kvstore"
	infrapdf "github.com/jhoicas/mf-comercial/internal/infrastructure/pdf"
	"github.com/jhoicas/mf-comercial/internal/infrastructure/persistence"
	"github.com/jhoicas/mf-comercial/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/mf-comercial/internal/interfaces/http"
	"github.com/jhoicas/mf-comercial/pkg/config"
	"github.com/jhoicas/mf-comercial/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("almacenamiento clave-valor")
	}
	defer closeStore()

	repo := persistence.NewConsoleRepository(store, cfg.Store.Prefix, log)
	consoleUC := console.NewUseCase(ctx, repo, console.Config{
		Location:  cfg.App.Location(),
		Plant:     cfg.Console.DefaultPlant,
		Requester: cfg.Console.DefaultRequester,
	}, log)

	// PDF: informe de KPI comerciales del periodo
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	dashboardUC := appanalytics.NewDashboardUseCase(consoleUC, pdfGenerator, cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "MF Comercial API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ConsoleUC:   consoleUC,
		DashboardUC: dashboardUC,
		Validate:    dto.NewValidator(),
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

// openStore abre el backend clave-valor según STORE_DRIVER.
// La función devuelta libera la conexión.
func openStore(ctx context.Context, cfg *config.Config) (repository.KVStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreRedis:
		client, err := kvstore.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return kvstore.NewRedisStore(client), func() { _ = client.Close() }, nil
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		kv := postgres.NewKVStoreRepository(pool)
		if err := kv.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("crear tabla kv_store: %w", err)
		}
		return kv, pool.Close, nil
	default:
		return kvstore.NewMemoryStore(), func() {}, nil
	}
}
