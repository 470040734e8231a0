package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	"github.com/cassiomorais/stripe-integration/internal/infrastructure/observability"
	"github.com/redis/go-redis/v9"
)

const (
	// MirrorStream carries provider write events to the mirror-sync
	// worker.
	MirrorStream = "mirror:sync"
	// MirrorDLQStream receives events the worker gave up on.
	MirrorDLQStream = "mirror:dlq"
)

type StreamProducer struct {
	client  *redis.Client
	metrics *observability.Metrics
}

func NewStreamProducer(client *redis.Client) *StreamProducer {
	return &StreamProducer{client: client}
}

// WithMetrics enables publish counters on the producer.
func (p *StreamProducer) WithMetrics(m *observability.Metrics) *StreamProducer {
	p.metrics = m
	return p
}

// PublishMirrorEvent appends a mirror event to the sync stream.
func (p *StreamProducer) PublishMirrorEvent(ctx context.Context, event billing.MirrorEvent) error {
	args := &redis.XAddArgs{
		Stream: MirrorStream,
		Values: map[string]any{
			"resource":    event.Resource,
			"action":      event.Action,
			"id":          event.ID,
			"customer_id": event.CustomerID,
			"payload":     string(event.Payload),
			"occurred_at": event.OccurredAt,
		},
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		if p.metrics != nil {
			p.metrics.MirrorEventsPublished.WithLabelValues(event.Resource, "error").Inc()
		}
		return fmt.Errorf("failed to publish mirror event: %w", err)
	}
	if p.metrics != nil {
		p.metrics.MirrorEventsPublished.WithLabelValues(event.Resource, "published").Inc()
	}
	return nil
}

// PublishToDLQ parks an unprocessable message with the failure reason.
func (p *StreamProducer) PublishToDLQ(ctx context.Context, messageID, reason string, values map[string]any) error {
	payload, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal DLQ data: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: MirrorDLQStream,
		Values: map[string]any{
			"message_id": messageID,
			"reason":     reason,
			"payload":    string(payload),
			"timestamp":  time.Now().Unix(),
		},
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish to DLQ: %w", err)
	}
	return nil
}

// MirrorEventFromMessage decodes a stream message back into an event.
func MirrorEventFromMessage(msg redis.XMessage) (billing.MirrorEvent, error) {
	event := billing.MirrorEvent{}

	str := func(key string) string {
		v, _ := msg.Values[key].(string)
		return v
	}

	event.Resource = str("resource")
	event.Action = str("action")
	event.ID = str("id")
	event.CustomerID = str("customer_id")
	if raw := str("payload"); raw != "" {
		event.Payload = json.RawMessage(raw)
	}
	if ts := str("occurred_at"); ts != "" {
		occurred, err := strconv.ParseInt(ts, 10, 64)
		if err != nil {
			return event, fmt.Errorf("invalid occurred_at %q: %w", ts, err)
		}
		event.OccurredAt = occurred
	}

	if event.Resource == "" || event.Action == "" || event.ID == "" {
		return event, fmt.Errorf("mirror event missing required fields: %v", msg.Values)
	}
	return event, nil
}

type StreamConsumer struct {
	client        *redis.Client
	stream        string
	group         string
	consumer      string
	batchSize     int64
	blockDuration time.Duration
}

func NewStreamConsumer(
	client *redis.Client,
	stream string,
	group string,
	consumer string,
	batchSize int64,
	blockDuration time.Duration,
) *StreamConsumer {
	return &StreamConsumer{
		client:        client,
		stream:        stream,
		group:         group,
		consumer:      consumer,
		batchSize:     batchSize,
		blockDuration: blockDuration,
	}
}

func (c *StreamConsumer) CreateGroup(ctx context.Context) error {
	// Create stream if it doesn't exist
	const busyGroupMsg = "BUSYGROUP"
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), busyGroupMsg) {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}

func (c *StreamConsumer) Read(ctx context.Context) ([]redis.XStream, error) {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.group,
		Consumer: c.consumer,
		Streams:  []string{c.stream, ">"},
		Count:    c.batchSize,
		Block:    c.blockDuration,
	}).Result()

	if err != nil {
		if err == redis.Nil {
			// No new messages
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read from stream: %w", err)
	}

	return streams, nil
}

func (c *StreamConsumer) Ack(ctx context.Context, messageID string) error {
	err := c.client.XAck(ctx, c.stream, c.group, messageID).Err()
	if err != nil {
		return fmt.Errorf("failed to ack message: %w", err)
	}
	return nil
}

// Pending lists entries in the group's pending list that have been idle
// for at least minIdle. RetryCount on each entry is the delivery count.
func (c *StreamConsumer) Pending(ctx context.Context, minIdle time.Duration, count int64) ([]redis.XPendingExt, error) {
	entries, err := c.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: c.stream,
		Group:  c.group,
		Start:  "-",
		End:    "+",
		Count:  count,
		Idle:   minIdle,
	}).Result()

	if err != nil {
		return nil, fmt.Errorf("failed to read pending entries: %w", err)
	}

	return entries, nil
}

func (c *StreamConsumer) Claim(ctx context.Context, minIdleTime time.Duration, messageIDs []string) ([]redis.XMessage, error) {
	messages, err := c.client.XClaim(ctx, &redis.XClaimArgs{
		Stream:   c.stream,
		Group:    c.group,
		Consumer: c.consumer,
		MinIdle:  minIdleTime,
		Messages: messageIDs,
	}).Result()

	if err != nil {
		return nil, fmt.Errorf("failed to claim messages: %w", err)
	}

	return messages, nil
}
