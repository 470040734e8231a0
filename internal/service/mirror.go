package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	"github.com/rs/zerolog"
)

// MirrorPublisher emits mirror sync events after successful provider
// writes. Implemented by the redis stream producer.
type MirrorPublisher interface {
	PublishMirrorEvent(ctx context.Context, event billing.MirrorEvent) error
}

// mirrorNotifier is embedded by every service. Publish failures are
// logged and swallowed: the write already succeeded at the provider and
// must not be reported as failed because the mirror pipeline hiccuped.
type mirrorNotifier struct {
	publisher MirrorPublisher
	logger    zerolog.Logger
}

func (n *mirrorNotifier) notifyUpserted(ctx context.Context, resource, id, customerID string, payload any) {
	n.notify(ctx, resource, billing.MirrorActionUpserted, id, customerID, payload)
}

func (n *mirrorNotifier) notifyDeleted(ctx context.Context, resource, id, customerID string) {
	n.notify(ctx, resource, billing.MirrorActionDeleted, id, customerID, nil)
}

func (n *mirrorNotifier) notify(ctx context.Context, resource, action, id, customerID string, payload any) {
	if n.publisher == nil {
		return
	}

	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			n.logger.Warn().Err(err).Str("resource", resource).Str("id", id).Msg("mirror payload marshal failed")
			return
		}
		raw = b
	}

	event := billing.MirrorEvent{
		Resource:   resource,
		Action:     action,
		ID:         id,
		CustomerID: customerID,
		Payload:    raw,
		OccurredAt: time.Now().Unix(),
	}
	if err := n.publisher.PublishMirrorEvent(ctx, event); err != nil {
		n.logger.Warn().Err(err).Str("resource", resource).Str("id", id).Msg("mirror event publish failed")
	}
}
