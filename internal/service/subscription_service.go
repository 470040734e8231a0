package service

import (
	"context"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	domainErrors "github.com/cassiomorais/stripe-integration/internal/domain/errors"
	"github.com/cassiomorais/stripe-integration/internal/providers"
	"github.com/rs/zerolog"
)

// SubscriptionService manages provider-side subscriptions.
type SubscriptionService struct {
	gateway providers.Gateway
	mirrorNotifier
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(gateway providers.Gateway, publisher MirrorPublisher, logger zerolog.Logger) *SubscriptionService {
	return &SubscriptionService{
		gateway:        gateway,
		mirrorNotifier: mirrorNotifier{publisher: publisher, logger: logger.With().Str("service", "subscription").Logger()},
	}
}

func (s *SubscriptionService) Create(ctx context.Context, req billing.CreateSubscriptionRequest) (billing.Subscription, error) {
	res, err := s.gateway.CreateSubscription(ctx, providers.SubscriptionCreateParams(req))
	if err != nil {
		return billing.Subscription{}, domainErrors.WithOp("subscription.create", err)
	}

	sub := providers.SubscriptionFromResource(res)
	s.notifyUpserted(ctx, billing.ResourceSubscription, sub.ID, sub.CustomerID, sub)
	return sub, nil
}

func (s *SubscriptionService) Get(ctx context.Context, id string) (billing.Subscription, error) {
	res, err := s.gateway.RetrieveSubscription(ctx, id)
	if err != nil {
		return billing.Subscription{}, domainErrors.WithOp("subscription.get", err)
	}
	return providers.SubscriptionFromResource(res), nil
}

// Update replaces the subscription's item set only when the request
// carries items; an empty item list leaves the current items untouched.
func (s *SubscriptionService) Update(ctx context.Context, req billing.UpdateSubscriptionRequest) (billing.Subscription, error) {
	res, err := s.gateway.UpdateSubscription(ctx, req.ID, providers.SubscriptionUpdateParams(req))
	if err != nil {
		return billing.Subscription{}, domainErrors.WithOp("subscription.update", err)
	}

	sub := providers.SubscriptionFromResource(res)
	s.notifyUpserted(ctx, billing.ResourceSubscription, sub.ID, sub.CustomerID, sub)
	return sub, nil
}

// Cancel requests cancellation and returns the subscription in whatever
// status the provider reports afterwards.
func (s *SubscriptionService) Cancel(ctx context.Context, id string) (billing.Subscription, error) {
	res, err := s.gateway.CancelSubscription(ctx, id)
	if err != nil {
		return billing.Subscription{}, domainErrors.WithOp("subscription.cancel", err)
	}

	sub := providers.SubscriptionFromResource(res)
	s.notifyUpserted(ctx, billing.ResourceSubscription, sub.ID, sub.CustomerID, sub)
	return sub, nil
}

func (s *SubscriptionService) List(ctx context.Context, req billing.ListSubscriptionsRequest) ([]billing.Subscription, error) {
	res, err := s.gateway.ListSubscriptions(ctx, providers.SubscriptionListParams(req))
	if err != nil {
		return nil, domainErrors.WithOp("subscription.list", err)
	}

	out := make([]billing.Subscription, 0, len(res))
	for _, sub := range res {
		out = append(out, providers.SubscriptionFromResource(sub))
	}
	return out, nil
}
