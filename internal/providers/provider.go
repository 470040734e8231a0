package providers

import (
	"context"

	"github.com/stripe/stripe-go/v79"
)

// Gateway is the per-resource operation surface against the payment
// provider. Every method performs exactly one round trip; composition
// of several calls into one logical operation is the service layer's
// job. Implementations normalize provider failures to the domain error
// taxonomy before returning.
//
// Parameter and resource types come straight from the provider's
// published schema (stripe-go); the mapper converts them to and from
// internal DTOs so field names are never re-derived by hand.
type Gateway interface {
	// Customers
	CreateCustomer(ctx context.Context, params *stripe.CustomerParams) (*stripe.Customer, error)
	RetrieveCustomer(ctx context.Context, id string) (*stripe.Customer, error)
	UpdateCustomer(ctx context.Context, id string, params *stripe.CustomerParams) (*stripe.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	ListCustomers(ctx context.Context, params *stripe.CustomerListParams) ([]*stripe.Customer, error)

	// Payment methods
	CreatePaymentMethod(ctx context.Context, params *stripe.PaymentMethodParams) (*stripe.PaymentMethod, error)
	RetrievePaymentMethod(ctx context.Context, id string) (*stripe.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, id string, params *stripe.PaymentMethodParams) (*stripe.PaymentMethod, error)
	AttachPaymentMethod(ctx context.Context, id, customerID string) (*stripe.PaymentMethod, error)
	DetachPaymentMethod(ctx context.Context, id string) (*stripe.PaymentMethod, error)
	ListCustomerPaymentMethods(ctx context.Context, params *stripe.CustomerListPaymentMethodsParams) ([]*stripe.PaymentMethod, error)

	// Products
	CreateProduct(ctx context.Context, params *stripe.ProductParams) (*stripe.Product, error)
	RetrieveProduct(ctx context.Context, id string) (*stripe.Product, error)
	UpdateProduct(ctx context.Context, id string, params *stripe.ProductParams) (*stripe.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, params *stripe.ProductListParams) ([]*stripe.Product, error)

	// Prices
	CreatePrice(ctx context.Context, params *stripe.PriceParams) (*stripe.Price, error)
	RetrievePrice(ctx context.Context, id string) (*stripe.Price, error)
	UpdatePrice(ctx context.Context, id string, params *stripe.PriceParams) (*stripe.Price, error)
	ListPrices(ctx context.Context, params *stripe.PriceListParams) ([]*stripe.Price, error)

	// Subscriptions
	CreateSubscription(ctx context.Context, params *stripe.SubscriptionParams) (*stripe.Subscription, error)
	RetrieveSubscription(ctx context.Context, id string) (*stripe.Subscription, error)
	UpdateSubscription(ctx context.Context, id string, params *stripe.SubscriptionParams) (*stripe.Subscription, error)
	CancelSubscription(ctx context.Context, id string) (*stripe.Subscription, error)
	ListSubscriptions(ctx context.Context, params *stripe.SubscriptionListParams) ([]*stripe.Subscription, error)

	// Payment intents
	CreatePaymentIntent(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error)
	ListPaymentIntents(ctx context.Context, params *stripe.PaymentIntentListParams) ([]*stripe.PaymentIntent, error)
}
