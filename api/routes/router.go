package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luzfilms/luzfilms-backend/api/controllers"
	webhookcontrollers "github.com/luzfilms/luzfilms-backend/api/controllers/webhooks"
	"github.com/luzfilms/luzfilms-backend/api/middleware"
	"github.com/luzfilms/luzfilms-backend/internal/notifications"
	"github.com/luzfilms/luzfilms-backend/internal/payments"
	stripewebhook "github.com/luzfilms/luzfilms-backend/internal/webhooks/stripe"
	"github.com/luzfilms/luzfilms-backend/pkg/config"
	"github.com/luzfilms/luzfilms-backend/pkg/db"
	"github.com/luzfilms/luzfilms-backend/pkg/logger"
	"github.com/luzfilms/luzfilms-backend/pkg/metrics"
	"github.com/luzfilms/luzfilms-backend/pkg/redis"
	"github.com/luzfilms/luzfilms-backend/pkg/stripe"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	stripeClient *stripe.Client,
	paymentService *payments.Service,
	notificationRepo notifications.Repository,
	webhookService *stripewebhook.Service,
	webhookGuard *stripewebhook.IdempotencyGuard,
	webhookMetrics *metrics.WebhookMetrics,
	promGatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if promGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/stripe", webhookcontrollers.StripeWebhook(webhookService, stripeClient, webhookGuard, webhookMetrics, logg))
	})

	r.Route("/api/v1/payments", func(r chi.Router) {
		r.Post("/intent", controllers.PaymentIntentCreate(paymentService, logg))
	})

	r.Route("/api/v1/notifications", func(r chi.Router) {
		r.Get("/", controllers.ListNotifications(notificationRepo, logg))
		r.Post("/{notificationId}/read", controllers.MarkNotificationRead(notificationRepo, logg))
	})

	return r
}
