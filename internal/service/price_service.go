package service

import (
	"context"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	domainErrors "github.com/cassiomorais/stripe-integration/internal/domain/errors"
	"github.com/cassiomorais/stripe-integration/internal/providers"
	"github.com/rs/zerolog"
)

// PriceService manages provider-side prices. Currency and unit amount
// are immutable after creation; updates only touch nickname and active.
type PriceService struct {
	gateway providers.Gateway
	mirrorNotifier
}

// NewPriceService creates a new PriceService.
func NewPriceService(gateway providers.Gateway, publisher MirrorPublisher, logger zerolog.Logger) *PriceService {
	return &PriceService{
		gateway:        gateway,
		mirrorNotifier: mirrorNotifier{publisher: publisher, logger: logger.With().Str("service", "price").Logger()},
	}
}

func (s *PriceService) Create(ctx context.Context, req billing.CreatePriceRequest) (billing.Price, error) {
	res, err := s.gateway.CreatePrice(ctx, providers.PriceCreateParams(req))
	if err != nil {
		return billing.Price{}, domainErrors.WithOp("price.create", err)
	}

	p := providers.PriceFromResource(res)
	s.notifyUpserted(ctx, billing.ResourcePrice, p.ID, "", p)
	return p, nil
}

func (s *PriceService) Get(ctx context.Context, id string) (billing.Price, error) {
	res, err := s.gateway.RetrievePrice(ctx, id)
	if err != nil {
		return billing.Price{}, domainErrors.WithOp("price.get", err)
	}
	return providers.PriceFromResource(res), nil
}

func (s *PriceService) Update(ctx context.Context, req billing.UpdatePriceRequest) (billing.Price, error) {
	res, err := s.gateway.UpdatePrice(ctx, req.ID, providers.PriceUpdateParams(req))
	if err != nil {
		return billing.Price{}, domainErrors.WithOp("price.update", err)
	}

	p := providers.PriceFromResource(res)
	s.notifyUpserted(ctx, billing.ResourcePrice, p.ID, "", p)
	return p, nil
}

func (s *PriceService) List(ctx context.Context, req billing.ListPricesRequest) ([]billing.Price, error) {
	res, err := s.gateway.ListPrices(ctx, providers.PriceListParams(req))
	if err != nil {
		return nil, domainErrors.WithOp("price.list", err)
	}

	out := make([]billing.Price, 0, len(res))
	for _, p := range res {
		out = append(out, providers.PriceFromResource(p))
	}
	return out, nil
}
