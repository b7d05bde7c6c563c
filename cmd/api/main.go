package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gharkeseva/gharseva-api/internal/application/auth"
	"github.com/gharkeseva/gharseva-api/internal/application/booking"
	"github.com/gharkeseva/gharseva-api/internal/application/catalog"
	"github.com/gharkeseva/gharseva-api/internal/application/dashboard"
	"github.com/gharkeseva/gharseva-api/internal/application/directory"
	apppayment "github.com/gharkeseva/gharseva-api/internal/application/payment"
	"github.com/gharkeseva/gharseva-api/internal/domain/category"
	"github.com/gharkeseva/gharseva-api/internal/infrastructure/email"
	"github.com/gharkeseva/gharseva-api/internal/infrastructure/mq"
	infrapayment "github.com/gharkeseva/gharseva-api/internal/infrastructure/payment"
	"github.com/gharkeseva/gharseva-api/internal/infrastructure/postgres"
	httpRouter "github.com/gharkeseva/gharseva-api/internal/interfaces/http"
	"github.com/gharkeseva/gharseva-api/internal/realtime"
	"github.com/gharkeseva/gharseva-api/pkg/config"
	"github.com/gharkeseva/gharseva-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	reg := category.NewRegistry()
	vendorDir := postgres.NewVendorDirectory(pool, reg)
	serviceCatalog := postgres.NewServiceCatalog(pool, reg)
	bookingRepo := postgres.NewBookingRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	adminRepo := postgres.NewAdminRepository(pool)
	seqRepo := postgres.NewSequenceRepository(pool)

	resolver := directory.NewResolver(vendorDir, reg, log)

	// Event mirror is optional; without AMQP_URL the bus serves only
	// in-process websocket subscribers.
	var pub realtime.EventPublisher
	if cfg.AMQP.URL != "" {
		amqpPub, err := mq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("AMQP connection")
		}
		defer amqpPub.Close()
		pub = amqpPub
	}

	hub := realtime.NewHub()
	bus := realtime.NewBus(hub, resolver, pub, log)

	var mailer booking.Mailer
	if cfg.SMTP.Enabled() {
		mailer = email.NewMailer(cfg.SMTP)
	} else {
		log.Warn().Msg("SMTP not configured, booking confirmations disabled")
	}

	var gateway apppayment.Gateway
	if cfg.Razorpay.Enabled() {
		gateway = infrapayment.NewRazorpayGateway(cfg.Razorpay)
	} else {
		log.Warn().Msg("payment gateway not configured, order creation disabled")
	}

	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}
	authUC := auth.NewUseCase(customerRepo, adminRepo, vendorDir, resolver, seqRepo, reg, bus, jwtCfg, log)
	bookingUC := booking.NewUseCase(bookingRepo, customerRepo, seqRepo, resolver, bus, mailer, log)
	catalogUC := catalog.NewUseCase(serviceCatalog, seqRepo, reg, log)
	dashboardUC := dashboard.NewUseCase(bookingRepo, customerRepo, resolver)
	paymentUC := apppayment.NewUseCase(gateway)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		BookingUC:   bookingUC,
		CatalogUC:   catalogUC,
		DashboardUC: dashboardUC,
		PaymentUC:   paymentUC,
		Resolver:    resolver,
		Bus:         bus,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
