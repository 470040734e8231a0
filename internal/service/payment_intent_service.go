package service

import (
	"context"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	domainErrors "github.com/cassiomorais/stripe-integration/internal/domain/errors"
	"github.com/cassiomorais/stripe-integration/internal/providers"
	"github.com/rs/zerolog"
)

// PaymentIntentService creates and reads charges against a customer's
// default payment method.
type PaymentIntentService struct {
	gateway providers.Gateway
	mirrorNotifier
}

// NewPaymentIntentService creates a new PaymentIntentService.
func NewPaymentIntentService(gateway providers.Gateway, publisher MirrorPublisher, logger zerolog.Logger) *PaymentIntentService {
	return &PaymentIntentService{
		gateway:        gateway,
		mirrorNotifier: mirrorNotifier{publisher: publisher, logger: logger.With().Str("service", "payment_intent").Logger()},
	}
}

// Create charges the customer's default payment method, confirming
// immediately. A customer without a default payment method fails the
// precondition before any intent is created at the provider.
func (s *PaymentIntentService) Create(ctx context.Context, req billing.CreatePaymentIntentRequest) (billing.PaymentIntent, error) {
	const op = "payment_intent.create"

	customerRes, err := s.gateway.RetrieveCustomer(ctx, req.CustomerID)
	if err != nil {
		return billing.PaymentIntent{}, domainErrors.WithOp(op, err)
	}

	customer := providers.CustomerFromResource(customerRes)
	if customer.DefaultPaymentMethodID == nil || *customer.DefaultPaymentMethodID == "" {
		return billing.PaymentIntent{}, domainErrors.PreconditionFailed(op, "customer "+req.CustomerID+" has no default payment method")
	}

	res, err := s.gateway.CreatePaymentIntent(ctx, providers.PaymentIntentCreateParams(req, *customer.DefaultPaymentMethodID))
	if err != nil {
		return billing.PaymentIntent{}, domainErrors.WithOp(op, err)
	}

	pi := providers.PaymentIntentFromResource(res)
	s.notifyUpserted(ctx, billing.ResourcePaymentIntent, pi.ID, req.CustomerID, pi)
	return pi, nil
}

// Get retrieves a payment intent scoped to a customer. Intents belonging
// to a different customer are reported as an ownership mismatch.
func (s *PaymentIntentService) Get(ctx context.Context, customerID, id string) (billing.PaymentIntent, error) {
	const op = "payment_intent.get"

	res, err := s.gateway.RetrievePaymentIntent(ctx, id)
	if err != nil {
		return billing.PaymentIntent{}, domainErrors.WithOp(op, err)
	}

	pi := providers.PaymentIntentFromResource(res)
	if pi.CustomerID != customerID {
		return billing.PaymentIntent{}, domainErrors.OwnershipMismatch(op, "payment intent "+id+" does not belong to customer "+customerID)
	}
	return pi, nil
}

func (s *PaymentIntentService) List(ctx context.Context, customerID string, page billing.ListPage) ([]billing.PaymentIntent, error) {
	res, err := s.gateway.ListPaymentIntents(ctx, providers.PaymentIntentListParams(customerID, page))
	if err != nil {
		return nil, domainErrors.WithOp("payment_intent.list", err)
	}

	out := make([]billing.PaymentIntent, 0, len(res))
	for _, pi := range res {
		out = append(out, providers.PaymentIntentFromResource(pi))
	}
	return out, nil
}
