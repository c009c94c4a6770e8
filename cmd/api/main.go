package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/epartment/society-backend/internal/auth"
	"github.com/epartment/society-backend/internal/billing"
	"github.com/epartment/society-backend/internal/config"
	"github.com/epartment/society-backend/internal/httpapi"
	"github.com/epartment/society-backend/internal/ledger"
	"github.com/epartment/society-backend/internal/notify"
	"github.com/epartment/society-backend/internal/receipts"
	"github.com/epartment/society-backend/internal/router"
	"github.com/epartment/society-backend/internal/summary"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.Env == "dev" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating pgx pool")
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		logger.Fatal().Err(err).Msg("error pinging database")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(router.CorsMiddleware(cfg.CORSOrigin))
	app.Use(requestLogger(logger))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	secret := []byte(cfg.JWTSecret)
	authMW := auth.Middleware(secret, pool)

	ledgerRepo := ledger.NewRepository(pool)
	ledgerHandler := ledger.NewHandler(ledger.NewService(ledgerRepo), ledgerRepo)
	summaryHandler := summary.NewHandler(ledgerRepo)

	var notifier receipts.Notifier
	twilio := notify.NewTwilioClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom)
	if twilio.Configured() {
		notifier = twilio
	} else {
		logger.Warn().Msg("twilio not configured, receipt notifications disabled")
	}
	receiptsRepo := receipts.NewRepository(pool)
	receiptsHandler := receipts.NewHandler(receiptsRepo, ledgerRepo, notifier, logger)

	razorpay := billing.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	billingSvc := billing.NewService(razorpay, billing.NewPgStore(pool), cfg.RazorpayKeySecret, logger)
	billingHandler := billing.NewHandler(billingSvc)

	r := &router.Router{
		AuthHandler:     &httpapi.AuthHandler{DB: pool, JWTSecret: secret},
		SocietyHandler:  &httpapi.SocietyHandler{DB: pool},
		LedgerHandler:   ledgerHandler,
		SummaryHandler:  summaryHandler,
		ReceiptsHandler: receiptsHandler,
		BillingHandler:  billingHandler,
		AuthMW:          authMW,
		WriteLimit:      router.RateLimitWrite(cfg.RateLimitWriteMax),
	}
	r.RegisterRoutes(app)

	logger.Info().Str("port", cfg.Port).Msg("listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func requestLogger(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}
