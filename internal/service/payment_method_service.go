package service

import (
	"context"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	domainErrors "github.com/cassiomorais/stripe-integration/internal/domain/errors"
	"github.com/cassiomorais/stripe-integration/internal/providers"
	"github.com/rs/zerolog"
)

// PaymentMethodService composes the multi-step card flows. The composed
// operations are not transactional: a failure mid-sequence surfaces the
// failing step's error and leaves earlier provider writes in place.
type PaymentMethodService struct {
	gateway providers.Gateway
	mirrorNotifier
}

// NewPaymentMethodService creates a new PaymentMethodService.
func NewPaymentMethodService(gateway providers.Gateway, publisher MirrorPublisher, logger zerolog.Logger) *PaymentMethodService {
	return &PaymentMethodService{
		gateway:        gateway,
		mirrorNotifier: mirrorNotifier{publisher: publisher, logger: logger.With().Str("service", "payment_method").Logger()},
	}
}

// Create builds a card payment method and attaches it to the customer.
// Billing details are taken from the owning customer's profile, so the
// customer is fetched first; an unknown customer fails the whole flow
// before anything is written.
func (s *PaymentMethodService) Create(ctx context.Context, req billing.CreatePaymentMethodRequest) (billing.PaymentMethod, error) {
	const op = "payment_method.create"

	ownerRes, err := s.gateway.RetrieveCustomer(ctx, req.CustomerID)
	if err != nil {
		return billing.PaymentMethod{}, domainErrors.WithOp(op, err)
	}
	owner := providers.CustomerFromResource(ownerRes)

	created, err := s.gateway.CreatePaymentMethod(ctx, providers.PaymentMethodCreateParams(owner, req))
	if err != nil {
		return billing.PaymentMethod{}, domainErrors.WithOp(op, err)
	}

	attached, err := s.gateway.AttachPaymentMethod(ctx, created.ID, req.CustomerID)
	if err != nil {
		return billing.PaymentMethod{}, domainErrors.WithOp(op, err)
	}

	pm := providers.PaymentMethodFromResource(attached)
	s.notifyUpserted(ctx, billing.ResourcePaymentMethod, pm.ID, req.CustomerID, pm)
	return pm, nil
}

// Get retrieves a payment method scoped to a customer. A method that
// exists but belongs to someone else is an ownership mismatch, not a
// not-found, so the caller can tell the two apart.
func (s *PaymentMethodService) Get(ctx context.Context, customerID, id string) (billing.PaymentMethod, error) {
	const op = "payment_method.get"

	res, err := s.gateway.RetrievePaymentMethod(ctx, id)
	if err != nil {
		return billing.PaymentMethod{}, domainErrors.WithOp(op, err)
	}

	pm := providers.PaymentMethodFromResource(res)
	if pm.CustomerID != customerID {
		return billing.PaymentMethod{}, domainErrors.OwnershipMismatch(op, "payment method "+id+" does not belong to customer "+customerID)
	}
	return pm, nil
}

func (s *PaymentMethodService) Update(ctx context.Context, req billing.UpdatePaymentMethodRequest) (billing.PaymentMethod, error) {
	res, err := s.gateway.UpdatePaymentMethod(ctx, req.ID, providers.PaymentMethodUpdateParams(req))
	if err != nil {
		return billing.PaymentMethod{}, domainErrors.WithOp("payment_method.update", err)
	}

	pm := providers.PaymentMethodFromResource(res)
	s.notifyUpserted(ctx, billing.ResourcePaymentMethod, pm.ID, pm.CustomerID, pm)
	return pm, nil
}

// Detach removes a payment method from its customer.
func (s *PaymentMethodService) Detach(ctx context.Context, id string) (billing.PaymentMethod, error) {
	res, err := s.gateway.DetachPaymentMethod(ctx, id)
	if err != nil {
		return billing.PaymentMethod{}, domainErrors.WithOp("payment_method.detach", err)
	}

	pm := providers.PaymentMethodFromResource(res)
	s.notifyDeleted(ctx, billing.ResourcePaymentMethod, pm.ID, pm.CustomerID)
	return pm, nil
}

// List returns the card payment methods attached to a customer.
func (s *PaymentMethodService) List(ctx context.Context, customerID string, page billing.ListPage) ([]billing.PaymentMethod, error) {
	res, err := s.gateway.ListCustomerPaymentMethods(ctx, providers.CustomerPaymentMethodListParams(customerID, page))
	if err != nil {
		return nil, domainErrors.WithOp("payment_method.list", err)
	}

	out := make([]billing.PaymentMethod, 0, len(res))
	for _, pm := range res {
		out = append(out, providers.PaymentMethodFromResource(pm))
	}
	return out, nil
}

// SetDefault makes the payment method the customer's invoice default.
// Ownership is verified before the customer is touched; on mismatch no
// customer update is issued. The returned DTO is the payment method as
// read in the first step, not the updated customer.
func (s *PaymentMethodService) SetDefault(ctx context.Context, customerID, paymentMethodID string) (billing.PaymentMethod, error) {
	const op = "payment_method.set_default"

	res, err := s.gateway.RetrievePaymentMethod(ctx, paymentMethodID)
	if err != nil {
		return billing.PaymentMethod{}, domainErrors.WithOp(op, err)
	}

	pm := providers.PaymentMethodFromResource(res)
	if pm.CustomerID != customerID {
		return billing.PaymentMethod{}, domainErrors.OwnershipMismatch(op, "payment method "+paymentMethodID+" does not belong to customer "+customerID)
	}

	if _, err := s.gateway.RetrieveCustomer(ctx, customerID); err != nil {
		return billing.PaymentMethod{}, domainErrors.WithOp(op, err)
	}

	updated, err := s.gateway.UpdateCustomer(ctx, customerID, providers.DefaultPaymentMethodParams(paymentMethodID))
	if err != nil {
		return billing.PaymentMethod{}, domainErrors.WithOp(op, err)
	}

	s.notifyUpserted(ctx, billing.ResourceCustomer, customerID, customerID, providers.CustomerFromResource(updated))
	return pm, nil
}
