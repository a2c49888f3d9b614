package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oakline/backoffice-backend/api/controllers"
	ordercontrollers "github.com/oakline/backoffice-backend/api/controllers/orders"
	"github.com/oakline/backoffice-backend/api/middleware"
	"github.com/oakline/backoffice-backend/internal/orders"
	"github.com/oakline/backoffice-backend/internal/rma"
	"github.com/oakline/backoffice-backend/internal/shipping"
	"github.com/oakline/backoffice-backend/pkg/config"
	"github.com/oakline/backoffice-backend/pkg/db"
	"github.com/oakline/backoffice-backend/pkg/logger"
	"github.com/oakline/backoffice-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	ordersSvc orders.Service,
	shippingSvc shipping.Service,
	submitter *rma.Submitter,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(middleware.Idempotency(redisClient, logg, cfg.Modification.IdempotencyTTL))

		r.Route("/{orderId}", func(r chi.Router) {
			r.Get("/", ordercontrollers.Detail(ordersSvc, logg))
			r.Get("/returnable-items", ordercontrollers.ReturnableItems(ordersSvc, logg))
			r.Get("/timeline", ordercontrollers.Timeline(ordersSvc, logg))
			r.Get("/shipping-options", ordercontrollers.ShippingOptions(ordersSvc, shippingSvc, logg))
			r.Post("/balance", ordercontrollers.Balance(ordersSvc, logg))
			r.Post("/notes", ordercontrollers.CreateNote(ordersSvc, logg))
			r.Post("/swaps", ordercontrollers.CreateSwap(ordersSvc, submitter, logg))
			r.Post("/returns", ordercontrollers.CreateReturn(ordersSvc, submitter, logg))
			r.Post("/claims", ordercontrollers.CreateClaim(ordersSvc, submitter, logg))
		})
	})

	return r
}
