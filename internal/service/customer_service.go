package service

import (
	"context"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	domainErrors "github.com/cassiomorais/stripe-integration/internal/domain/errors"
	"github.com/cassiomorais/stripe-integration/internal/providers"
	"github.com/rs/zerolog"
)

// CustomerService manages provider-side customer records. No customer
// state is kept locally; every read goes to the provider.
type CustomerService struct {
	gateway providers.Gateway
	mirrorNotifier
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(gateway providers.Gateway, publisher MirrorPublisher, logger zerolog.Logger) *CustomerService {
	return &CustomerService{
		gateway:        gateway,
		mirrorNotifier: mirrorNotifier{publisher: publisher, logger: logger.With().Str("service", "customer").Logger()},
	}
}

func (s *CustomerService) Create(ctx context.Context, req billing.CreateCustomerRequest) (billing.Customer, error) {
	res, err := s.gateway.CreateCustomer(ctx, providers.CustomerCreateParams(req))
	if err != nil {
		return billing.Customer{}, domainErrors.WithOp("customer.create", err)
	}

	c := providers.CustomerFromResource(res)
	s.notifyUpserted(ctx, billing.ResourceCustomer, c.ID, c.ID, c)
	return c, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (billing.Customer, error) {
	res, err := s.gateway.RetrieveCustomer(ctx, id)
	if err != nil {
		return billing.Customer{}, domainErrors.WithOp("customer.get", err)
	}
	return providers.CustomerFromResource(res), nil
}

func (s *CustomerService) Update(ctx context.Context, req billing.UpdateCustomerRequest) (billing.Customer, error) {
	res, err := s.gateway.UpdateCustomer(ctx, req.ID, providers.CustomerUpdateParams(req))
	if err != nil {
		return billing.Customer{}, domainErrors.WithOp("customer.update", err)
	}

	c := providers.CustomerFromResource(res)
	s.notifyUpserted(ctx, billing.ResourceCustomer, c.ID, c.ID, c)
	return c, nil
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if err := s.gateway.DeleteCustomer(ctx, id); err != nil {
		return domainErrors.WithOp("customer.delete", err)
	}

	s.notifyDeleted(ctx, billing.ResourceCustomer, id, id)
	return nil
}

func (s *CustomerService) List(ctx context.Context, page billing.ListPage) ([]billing.Customer, error) {
	res, err := s.gateway.ListCustomers(ctx, providers.CustomerListParams(page))
	if err != nil {
		return nil, domainErrors.WithOp("customer.list", err)
	}

	out := make([]billing.Customer, 0, len(res))
	for _, c := range res {
		out = append(out, providers.CustomerFromResource(c))
	}
	return out, nil
}
