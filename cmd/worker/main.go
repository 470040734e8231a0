package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cassiomorais/stripe-integration/internal/bootstrap"
	infraRedis "github.com/cassiomorais/stripe-integration/internal/infrastructure/redis"
	"github.com/cassiomorais/stripe-integration/internal/repository/postgres"
	"github.com/cassiomorais/stripe-integration/internal/worker"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := bootstrap.New(ctx, "stripe-adapter-worker", "stripe_adapter_worker")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// --- Repositories ---
	mirrorRepo := postgres.NewMirrorRepository(app.Pool)
	idempotencyRepo := postgres.NewIdempotencyRepository(app.Pool)
	streamProducer := infraRedis.NewStreamProducer(app.Redis).WithMetrics(app.Metrics)

	// --- Mirror stream consumer ---
	workerCfg := app.Config.Worker
	consumer := infraRedis.NewStreamConsumer(
		app.Redis,
		infraRedis.MirrorStream,
		workerCfg.ConsumerGroup,
		app.Config.InstanceID,
		workerCfg.BatchSize,
		workerCfg.BlockDuration,
	)
	if err := consumer.CreateGroup(ctx); err != nil {
		app.Logger.Error().Err(err).Msg("Failed to create consumer group (may already exist)")
	}

	syncer := worker.NewMirrorSyncer(consumer, streamProducer, mirrorRepo, app.Metrics, app.Logger, worker.Options{
		ClaimMinIdle: workerCfg.ClaimMinIdle,
	})

	app.Logger.Info().
		Str("stream", infraRedis.MirrorStream).
		Str("group", workerCfg.ConsumerGroup).
		Str("consumer", app.Config.InstanceID).
		Msg("Worker started, listening for messages...")

	// Signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Mirror syncer (reads from Redis Streams, writes the local mirror).
	g.Go(func() error {
		return syncer.Run(gCtx)
	})

	// 2. Idempotency key cleanup, guarded by a distributed lock so only
	// one worker instance runs it.
	g.Go(func() error {
		return runIdempotencyCleanup(gCtx, app, idempotencyRepo)
	})

	// 3. Wait for shutdown signal.
	g.Go(func() error {
		select {
		case <-gCtx.Done():
			return gCtx.Err()
		case <-quit:
			app.Logger.Info().Msg("Shutting down worker...")
			cancel()
			return nil
		}
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		app.Logger.Error().Err(err).Msg("Worker error")
	}
	app.Logger.Info().Msg("Worker exited")
}

func runIdempotencyCleanup(ctx context.Context, app *bootstrap.App, repo *postgres.IdempotencyRepository) error {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		lock := infraRedis.NewDistributedLock(app.Redis, "idempotency:cleanup", 5*time.Minute)
		acquired, err := lock.Acquire(ctx)
		if err != nil || !acquired {
			continue
		}

		deleted, err := repo.Cleanup(ctx)
		if err != nil {
			app.Logger.Error().Err(err).Msg("Idempotency cleanup failed")
		} else if deleted > 0 {
			app.Logger.Info().Int64("deleted", deleted).Msg("Expired idempotency keys removed")
		}

		lock.Release(ctx)
	}
}
