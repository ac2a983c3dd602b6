package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/EmiliaOsaba/Entregable2-Osaba/docs"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/application/auth"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/application/storefront"
	infrapdf "github.com/EmiliaOsaba/Entregable2-Osaba/internal/infrastructure/pdf"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/infrastructure/storage"
	httpRouter "github.com/EmiliaOsaba/Entregable2-Osaba/internal/interfaces/http"
	"github.com/EmiliaOsaba/Entregable2-Osaba/pkg/config"
	"github.com/EmiliaOsaba/Entregable2-Osaba/pkg/logger"
)

// @title                       Mini Tienda API
// @version                     1.0
// @description                 Tienda de demostración: catálogo, carrito con reserva de stock y checkout simulado por sesión.
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
		Str("storage", cfg.Storage.Driver).
		Bool("checkout_restock", cfg.Checkout.Restock).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		if cfg.App.Env != "development" {
			log.Fatal().Msg("JWT_SECRET es obligatorio fuera de development")
		}
		cfg.JWT.Secret = "mini-tienda-dev-secret"
		log.Warn().Msg("JWT_SECRET vacío: se usa un secreto de desarrollo")
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	svc := storefront.NewService(
		backend.State,
		backend.Receipts,
		infrapdf.NewReceiptGenerator(cfg.App.Name),
		storefront.Config{RestockOnCheckout: cfg.Checkout.Restock},
		log,
	)
	sessionUC := auth.NewSessionUseCase(svc, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Mini Tienda API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		SessionUC:   sessionUC,
		Storefront:  svc,
		JWTSecret:   cfg.JWT.Secret,
		ServiceName: cfg.App.Name,
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
