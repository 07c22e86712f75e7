package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/bundle-orders/internal/application/catalog"
	"github.com/jhoicas/bundle-orders/internal/application/inventory"
	"github.com/jhoicas/bundle-orders/internal/application/notification"
	"github.com/jhoicas/bundle-orders/internal/application/order"
	"github.com/jhoicas/bundle-orders/internal/infrastructure/mail"
	"github.com/jhoicas/bundle-orders/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/bundle-orders/internal/interfaces/http"
	"github.com/jhoicas/bundle-orders/pkg/config"
	"github.com/jhoicas/bundle-orders/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	systemRepo := postgres.NewSystemRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Sin SMTP configurado las alertas solo quedan en el log
	var notifier notification.Notifier
	if cfg.Mail.Enabled() {
		notifier = mail.NewSMTPNotifier(cfg.Mail)
		log.Info().Str("smtp_host", cfg.Mail.Host).Str("to", cfg.Mail.To).Msg("alertas de stock bajo por correo")
	} else {
		notifier = mail.NewLogNotifier(log)
		log.Warn().Msg("SMTP no configurado, alertas de stock bajo solo en log")
	}
	dispatcher := notification.NewDispatcher(notifier, cfg.Notify.QueueSize, log)

	ledger := inventory.NewLedger()
	bundleCatalog := catalog.NewBundleCatalog(systemRepo)
	placeOrderUC := order.NewPlaceOrderUseCase(txRunner, bundleCatalog, ledger, dispatcher, orderRepo)
	replenishmentUC := inventory.NewReplenishmentUseCase(txRunner, ledger, productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bundle Orders API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		PlaceOrder:    placeOrderUC,
		Catalog:       bundleCatalog,
		Replenishment: replenishmentUC,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(gctx)
	})
	g.Go(func() error {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("servidor finalizado con error")
		os.Exit(1)
	}
	log.Info().Msg("aplicación detenida")
}
