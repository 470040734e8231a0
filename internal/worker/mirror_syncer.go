package worker

import (
	"context"
	"time"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	"github.com/cassiomorais/stripe-integration/internal/infrastructure/observability"
	infraRedis "github.com/cassiomorais/stripe-integration/internal/infrastructure/redis"
	"github.com/cassiomorais/stripe-integration/internal/repository/postgres"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// claimBatchSize caps how many pending entries one reclaim pass handles.
const claimBatchSize = 100

// EventSource reads and manages group-delivered stream messages.
// *infraRedis.StreamConsumer satisfies it.
type EventSource interface {
	Read(ctx context.Context) ([]goredis.XStream, error)
	Ack(ctx context.Context, messageID string) error
	Pending(ctx context.Context, minIdle time.Duration, count int64) ([]goredis.XPendingExt, error)
	Claim(ctx context.Context, minIdle time.Duration, messageIDs []string) ([]goredis.XMessage, error)
}

// DeadLetterSink parks events the worker gave up on.
type DeadLetterSink interface {
	PublishToDLQ(ctx context.Context, messageID, reason string, values map[string]any) error
}

// MirrorStore applies mirror events to local storage.
type MirrorStore interface {
	Upsert(ctx context.Context, record *postgres.MirrorRecord) error
	Delete(ctx context.Context, resource, id string) error
}

// MirrorSyncer consumes mirror events and applies them to the local
// provider_mirror table. Events are acked after being applied; an event
// that cannot be decoded goes to the DLQ instead of blocking the group.
// Failed applies stay in the pending list and are reclaimed on a timer,
// up to MaxDeliveries attempts before being parked in the DLQ.
type MirrorSyncer struct {
	consumer EventSource
	producer DeadLetterSink
	repo     MirrorStore
	metrics  *observability.Metrics
	logger   zerolog.Logger

	claimMinIdle  time.Duration
	maxDeliveries int64
}

type Options struct {
	// ClaimMinIdle is how long a pending entry must sit idle before a
	// reclaim pass picks it up. Also sets the pass cadence.
	ClaimMinIdle time.Duration
	// MaxDeliveries is the delivery budget per event; once exhausted
	// the event goes to the DLQ instead of being retried again.
	MaxDeliveries int64
}

func NewMirrorSyncer(
	consumer EventSource,
	producer DeadLetterSink,
	repo MirrorStore,
	metrics *observability.Metrics,
	logger zerolog.Logger,
	opts Options,
) *MirrorSyncer {
	claimMinIdle := opts.ClaimMinIdle
	if claimMinIdle <= 0 {
		claimMinIdle = time.Minute
	}
	maxDeliveries := opts.MaxDeliveries
	if maxDeliveries <= 0 {
		maxDeliveries = 5
	}

	return &MirrorSyncer{
		consumer:      consumer,
		producer:      producer,
		repo:          repo,
		metrics:       metrics,
		logger:        logger.With().Str("component", "mirror_syncer").Logger(),
		claimMinIdle:  claimMinIdle,
		maxDeliveries: maxDeliveries,
	}
}

// Run consumes until the context is canceled, interleaving reads of new
// messages with periodic reclaims of stale pending entries.
func (s *MirrorSyncer) Run(ctx context.Context) error {
	nextClaim := time.Now().Add(s.claimMinIdle)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if time.Now().After(nextClaim) {
			s.reclaim(ctx)
			nextClaim = time.Now().Add(s.claimMinIdle)
		}

		streams, err := s.consumer.Read(ctx)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to read from stream")
			time.Sleep(1 * time.Second)
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				s.handle(ctx, msg)
			}
		}
	}
}

func (s *MirrorSyncer) handle(ctx context.Context, msg goredis.XMessage) {
	start := time.Now()

	event, err := infraRedis.MirrorEventFromMessage(msg)
	if err != nil {
		s.logger.Error().Err(err).Str("message_id", msg.ID).Msg("Undecodable mirror event")
		s.park(ctx, msg, err.Error())
		return
	}

	if err := s.apply(ctx, event); err != nil {
		// Left unacked; the reclaim pass retries it once it has been
		// idle for claimMinIdle.
		s.logger.Error().Err(err).
			Str("resource", event.Resource).
			Str("id", event.ID).
			Msg("Failed to apply mirror event")
		s.record("error", start)
		return
	}

	s.consumer.Ack(ctx, msg.ID)
	s.record("success", start)
}

// reclaim claims pending entries idle past the threshold and retries
// them, parking any that have exhausted their delivery budget.
func (s *MirrorSyncer) reclaim(ctx context.Context) {
	pending, err := s.consumer.Pending(ctx, s.claimMinIdle, claimBatchSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read pending entries")
		return
	}
	if len(pending) == 0 {
		return
	}

	deliveries := make(map[string]int64, len(pending))
	ids := make([]string, 0, len(pending))
	for _, entry := range pending {
		deliveries[entry.ID] = entry.RetryCount
		ids = append(ids, entry.ID)
	}

	messages, err := s.consumer.Claim(ctx, s.claimMinIdle, ids)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to claim pending messages")
		return
	}

	for _, msg := range messages {
		if deliveries[msg.ID] >= s.maxDeliveries {
			s.park(ctx, msg, "delivery attempts exhausted")
			continue
		}
		s.handle(ctx, msg)
	}
}

// park moves a message to the DLQ and acks it. If the DLQ publish fails
// the message stays pending and a later reclaim pass tries again.
func (s *MirrorSyncer) park(ctx context.Context, msg goredis.XMessage, reason string) {
	start := time.Now()

	if err := s.producer.PublishToDLQ(ctx, msg.ID, reason, msg.Values); err != nil {
		s.logger.Error().Err(err).Str("message_id", msg.ID).Msg("Failed to park message in DLQ")
		s.record("error", start)
		return
	}

	s.logger.Warn().Str("message_id", msg.ID).Str("reason", reason).Msg("Mirror event parked in DLQ")
	s.consumer.Ack(ctx, msg.ID)
	s.record("dlq", start)
}

func (s *MirrorSyncer) apply(ctx context.Context, event billing.MirrorEvent) error {
	switch event.Action {
	case billing.MirrorActionDeleted:
		return s.repo.Delete(ctx, event.Resource, event.ID)
	default:
		return s.repo.Upsert(ctx, &postgres.MirrorRecord{
			Resource:   event.Resource,
			ID:         event.ID,
			CustomerID: event.CustomerID,
			Payload:    event.Payload,
			UpdatedAt:  time.Unix(event.OccurredAt, 0),
		})
	}
}

func (s *MirrorSyncer) record(status string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.WorkerMessagesProcessed.WithLabelValues(infraRedis.MirrorStream, status).Inc()
	s.metrics.WorkerProcessingDuration.WithLabelValues(infraRedis.MirrorStream).Observe(time.Since(start).Seconds())
}
