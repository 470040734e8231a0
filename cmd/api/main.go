package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cassiomorais/stripe-integration/internal/bootstrap"
	"github.com/cassiomorais/stripe-integration/internal/controller"
	infraRedis "github.com/cassiomorais/stripe-integration/internal/infrastructure/redis"
	"github.com/cassiomorais/stripe-integration/internal/providers/stripe"
	"github.com/cassiomorais/stripe-integration/internal/repository/postgres"
	"github.com/cassiomorais/stripe-integration/internal/service"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, "stripe-adapter-api", "stripe_adapter")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// --- Infrastructure ---
	idempotencyRepo := postgres.NewIdempotencyRepository(app.Pool)
	mirrorRepo := postgres.NewMirrorRepository(app.Pool)
	producer := infraRedis.NewStreamProducer(app.Redis).WithMetrics(app.Metrics)

	gateway := stripe.New(app.Config.Stripe.SecretKey, app.Logger, app.Metrics, stripe.Options{
		BreakerThreshold: app.Config.Stripe.CircuitBreakerThreshold,
		BreakerTimeout:   app.Config.Stripe.CircuitBreakerTimeout,
	})

	// --- Services ---
	customers := service.NewCustomerService(gateway, producer, app.Logger)
	paymentMethods := service.NewPaymentMethodService(gateway, producer, app.Logger)
	products := service.NewProductService(gateway, producer, app.Logger)
	prices := service.NewPriceService(gateway, producer, app.Logger)
	subscriptions := service.NewSubscriptionService(gateway, producer, app.Logger)
	paymentIntents := service.NewPaymentIntentService(gateway, producer, app.Logger)

	// --- Build router ---
	router := controller.NewRouter(controller.RouterDeps{
		Pool:              app.Pool,
		RedisClient:       app.Redis,
		Customers:         customers,
		PaymentMethods:    paymentMethods,
		Products:          products,
		Prices:            prices,
		Subscriptions:     subscriptions,
		PaymentIntents:    paymentIntents,
		IdempotencyRepo:   idempotencyRepo,
		IdempotencyTTL:    app.Config.Worker.IdempotencyTTL,
		Mirror:            mirrorRepo,
		Metrics:           app.Metrics,
		CORSConfig:        app.Config.Server.CORS,
		RequestsPerMinute: app.Config.Server.RequestsPerMinute,
	})

	// --- HTTP server ---
	addr := fmt.Sprintf(":%d", app.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	go func() {
		app.Logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	app.Logger.Info().Msg("Server exited")
}
