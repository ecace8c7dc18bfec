package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/luzfilms/luzfilms-backend/api/routes"
	"github.com/luzfilms/luzfilms-backend/internal/agenda"
	"github.com/luzfilms/luzfilms-backend/internal/events"
	"github.com/luzfilms/luzfilms-backend/internal/notifications"
	"github.com/luzfilms/luzfilms-backend/internal/payments"
	"github.com/luzfilms/luzfilms-backend/internal/quotes"
	stripewebhook "github.com/luzfilms/luzfilms-backend/internal/webhooks/stripe"
	"github.com/luzfilms/luzfilms-backend/pkg/config"
	"github.com/luzfilms/luzfilms-backend/pkg/db"
	"github.com/luzfilms/luzfilms-backend/pkg/logger"
	"github.com/luzfilms/luzfilms-backend/pkg/metrics"
	"github.com/luzfilms/luzfilms-backend/pkg/migrate"
	"github.com/luzfilms/luzfilms-backend/pkg/redis"
	"github.com/luzfilms/luzfilms-backend/pkg/stripe"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to initialize stripe", err)
		os.Exit(1)
	}

	paymentRepo := payments.NewRepository(dbClient.DB())
	quoteRepo := quotes.NewRepository(dbClient.DB())
	eventRepo := events.NewRepository(dbClient.DB())
	agendaRepo := agenda.NewRepository(dbClient.DB())
	notificationRepo := notifications.NewRepository(dbClient.DB())

	notifier, err := notifications.NewService(notificationRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	paymentService, err := payments.NewService(payments.ServiceParams{
		PaymentRepo: paymentRepo,
		QuoteRepo:   quoteRepo,
		Stripe:      payments.NewStripeClient(stripeClient),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create payment service", err)
		os.Exit(1)
	}

	webhookService, err := stripewebhook.NewService(stripewebhook.ServiceParams{
		PaymentRepo:       paymentRepo,
		QuoteRepo:         quoteRepo,
		EventRepo:         eventRepo,
		AgendaRepo:        agendaRepo,
		Notifier:          notifier,
		StageResolver:     events.NewStageResolver(eventRepo),
		TransactionRunner: dbClient,
		Logger:            logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook service", err)
		os.Exit(1)
	}

	webhookGuard, err := stripewebhook.NewIdempotencyGuard(redisClient, cfg.Webhook.IdempotencyTTL, "stripe-webhook")
	if err != nil {
		logg.Error(context.Background(), "failed to create idempotency guard", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	webhookMetrics := metrics.NewWebhookMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":        cfg.App.Env,
		"addr":       addr,
		"stripe_env": stripeClient.Environment(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			stripeClient,
			paymentService,
			notificationRepo,
			webhookService,
			webhookGuard,
			webhookMetrics,
			registry,
		),
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			cleanup(ctx, logg, dbClient, redisClient)
			os.Exit(1)
		}
	case <-stop:
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}

	cleanup(ctx, logg, dbClient, redisClient)
}

func cleanup(ctx context.Context, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client) {
	err := multierr.Combine(
		dbClient.Close(),
		redisClient.Close(),
	)
	if err != nil {
		logg.Error(ctx, "error closing resources", err)
	}
}
