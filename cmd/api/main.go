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

	"github.com/facturasur/caf-console/internal/application/console"
	"github.com/facturasur/caf-console/internal/infrastructure/memory"
	"github.com/facturasur/caf-console/internal/infrastructure/remote"
	httpRouter "github.com/facturasur/caf-console/internal/interfaces/http"
	"github.com/facturasur/caf-console/pkg/config"
	"github.com/facturasur/caf-console/pkg/logger"
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
		Str("remote", cfg.Remote.BaseURL).
		Msg("iniciando consola CAF")

	// Camino remoto: sin REMOTE_BASE_URL la consola corre en modo demo y
	// toda operación se sirve desde el dataset de respaldo.
	var (
		gateway console.Gateway
		prober  console.Prober
	)
	if cfg.Remote.BaseURL != "" {
		client := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.Timeout, cfg.Remote.ProbeTimeout)
		gateway = client
		prober = client
	} else {
		log.Warn().Msg("sin gateway remoto configurado: modo demo con datos de respaldo")
	}

	storeOpts := []memory.Option{}
	if !cfg.Fallback.SimulateLatency() {
		storeOpts = append(storeOpts, memory.WithoutLatency())
	}
	store := memory.NewStore(storeOpts...)

	facade := console.New(gateway, prober, store, log.Component("facade"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    1 << 20, // los CAF reales pesan unos pocos KB
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CAF Console API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Facade:  facade,
		AppName: cfg.App.Name,
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

	log.Info().Msg("consola detenida")
}
