package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tu-usuario/gestion-backoffice/internal/application/auth"
	"github.com/tu-usuario/gestion-backoffice/internal/application/usecase"
	"github.com/tu-usuario/gestion-backoffice/internal/infrastructure/backendapi"
	infraexcel "github.com/tu-usuario/gestion-backoffice/internal/infrastructure/excel"
	"github.com/tu-usuario/gestion-backoffice/internal/infrastructure/metrics"
	infrapdf "github.com/tu-usuario/gestion-backoffice/internal/infrastructure/pdf"
	"github.com/tu-usuario/gestion-backoffice/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/gestion-backoffice/internal/interfaces/http"
	"github.com/tu-usuario/gestion-backoffice/pkg/config"
	"github.com/tu-usuario/gestion-backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando aplicación")

	if err := postgres.Migrate(cfg.DB); err != nil {
		log.Fatal().Err(err).Msg("migraciones de PostgreSQL")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	sessions := postgres.NewSessionRepository(pool)
	obs := metrics.NewBackend()
	client := backendapi.NewClient(cfg.Backend, log, obs)

	pageUC := usecase.NewPageUseCase(client, cfg.Locale.Default, log)
	authUC := auth.NewAuthUseCase(client, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	documentUC := usecase.NewDocumentUseCase(client, infrapdf.NewMarotoDocumentGenerator(), log)
	exportUC := usecase.NewExportUseCase(pageUC, infraexcel.NewExporter(), log)

	// Un 401 del backend invalida la sesión completa: fila en DB y
	// colecciones en memoria. El navegador verá SESSION_EXPIRED en la
	// siguiente petición.
	client.OnUnauthorized(func(ctx context.Context, sessionID string) {
		if err := sessions.Delete(ctx, sessionID); err != nil {
			log.Error().Err(err).Str("session", sessionID).Msg("invalidar sesión tras 401 del backend")
		}
		pageUC.CloseSession(sessionID)
	})

	// Limpieza periódica de sesiones vencidas.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := sessions.DeleteExpired(context.Background()); err != nil {
				log.Error().Err(err).Msg("purgar sesiones vencidas")
			} else if n > 0 {
				log.Info().Int64("sesiones", n).Msg("sesiones vencidas purgadas")
			}
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestión Backoffice API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		PageUC:     pageUC,
		DocumentUC: documentUC,
		ExportUC:   exportUC,
		Sessions:   sessions,
		JWTSecret:  cfg.JWT.Secret,
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
