package controller

import (
	"time"

	"github.com/cassiomorais/stripe-integration/internal/infrastructure/config"
	"github.com/cassiomorais/stripe-integration/internal/infrastructure/observability"
	customMW "github.com/cassiomorais/stripe-integration/internal/middleware"
	"github.com/cassiomorais/stripe-integration/internal/repository/postgres"
	"github.com/cassiomorais/stripe-integration/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	Pool              *pgxpool.Pool
	RedisClient       *redis.Client
	Customers         *service.CustomerService
	PaymentMethods    *service.PaymentMethodService
	Products          *service.ProductService
	Prices            *service.PriceService
	Subscriptions     *service.SubscriptionService
	PaymentIntents    *service.PaymentIntentService
	IdempotencyRepo   *postgres.IdempotencyRepository
	IdempotencyTTL    time.Duration
	Mirror            MirrorReader
	Metrics           *observability.Metrics
	CORSConfig        config.CORSConfig
	RequestsPerMinute int
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(customMW.SecurityHeaders())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.Metrics(deps.Metrics))
	if deps.RequestsPerMinute > 0 {
		r.Use(customMW.RateLimit(deps.RequestsPerMinute))
	}

	healthH := NewHealthController(deps.Pool, deps.RedisClient)
	customerH := NewCustomerController(deps.Customers)
	paymentMethodH := NewPaymentMethodController(deps.PaymentMethods)
	productH := NewProductController(deps.Products)
	priceH := NewPriceController(deps.Prices)
	subscriptionH := NewSubscriptionController(deps.Subscriptions)
	paymentIntentH := NewPaymentIntentController(deps.PaymentIntents)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	// Mirror reads for debugging and reporting; never part of the
	// public API surface.
	if deps.Mirror != nil {
		mirrorH := NewMirrorController(deps.Mirror)
		r.Route("/internal/mirror", func(r chi.Router) {
			r.Get("/{resource}", mirrorH.ListByCustomer)
			r.Get("/{resource}/{id}", mirrorH.Get)
		})
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating endpoints.
		idempotencyMW := customMW.Idempotency(deps.IdempotencyRepo, deps.IdempotencyTTL)

		// Customers
		r.With(idempotencyMW).Post("/customers", customerH.Create)
		r.Get("/customers", customerH.List)
		r.Get("/customers/{id}", customerH.Get)
		r.Put("/customers/{id}", customerH.Update)
		r.Delete("/customers/{id}", customerH.Delete)

		// Customer-scoped payment method reads and default selection
		r.Get("/customers/{customerID}/payment-methods", paymentMethodH.List)
		r.Get("/customers/{customerID}/payment-methods/{id}", paymentMethodH.Get)
		r.Put("/customers/{customerID}/payment-methods/{id}/default", paymentMethodH.SetDefault)

		// Payment methods
		r.With(idempotencyMW).Post("/payment-methods", paymentMethodH.Create)
		r.Put("/payment-methods/{id}", paymentMethodH.Update)
		r.Delete("/payment-methods/{id}", paymentMethodH.Detach)

		// Products
		r.With(idempotencyMW).Post("/products", productH.Create)
		r.Get("/products", productH.List)
		r.Get("/products/{id}", productH.Get)
		r.Put("/products/{id}", productH.Update)
		r.Delete("/products/{id}", productH.Delete)
		r.Get("/products/{id}/prices", priceH.ListForProduct)

		// Prices
		r.With(idempotencyMW).Post("/prices", priceH.Create)
		r.Get("/prices", priceH.List)
		r.Get("/prices/{id}", priceH.Get)
		r.Put("/prices/{id}", priceH.Update)

		// Subscriptions
		r.With(idempotencyMW).Post("/subscriptions", subscriptionH.Create)
		r.Get("/subscriptions", subscriptionH.List)
		r.Get("/subscriptions/{id}", subscriptionH.Get)
		r.Put("/subscriptions/{id}", subscriptionH.Update)
		r.Delete("/subscriptions/{id}", subscriptionH.Cancel)

		// Payment intents
		r.With(idempotencyMW).Post("/customers/{customerID}/payment-intents", paymentIntentH.Create)
		r.Get("/customers/{customerID}/payment-intents", paymentIntentH.List)
		r.Get("/customers/{customerID}/payment-intents/{id}", paymentIntentH.Get)
	})

	return r
}
