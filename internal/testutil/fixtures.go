package testutil

import (
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
)

// NewID mints a provider-style identifier like "cus_9f86d081..." from a
// prefix and a random suffix.
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

// NewTestCustomer builds a customer resource the way the provider
// returns it.
func NewTestCustomer(email, name string) *stripe.Customer {
	return &stripe.Customer{
		ID:    NewID("cus"),
		Email: email,
		Name:  name,
	}
}

// NewTestCustomerWithDefault builds a customer carrying a default
// payment method in its invoice settings.
func NewTestCustomerWithDefault(email, name, paymentMethodID string) *stripe.Customer {
	c := NewTestCustomer(email, name)
	c.InvoiceSettings = &stripe.CustomerInvoiceSettings{
		DefaultPaymentMethod: &stripe.PaymentMethod{ID: paymentMethodID},
	}
	return c
}

// NewTestCard builds an attached card payment method.
func NewTestCard(customerID string) *stripe.PaymentMethod {
	pm := &stripe.PaymentMethod{
		ID:   NewID("pm"),
		Type: stripe.PaymentMethodTypeCard,
		Card: &stripe.PaymentMethodCard{
			Brand:    stripe.PaymentMethodCardBrandVisa,
			Last4:    "4242",
			ExpMonth: 12,
			ExpYear:  2030,
			Funding:  stripe.CardFundingCredit,
		},
	}
	if customerID != "" {
		pm.Customer = &stripe.Customer{ID: customerID}
	}
	return pm
}

func NewTestProduct(name string) *stripe.Product {
	return &stripe.Product{
		ID:     NewID("prod"),
		Name:   name,
		Active: true,
	}
}

func NewTestPrice(productID string, unitAmount int64, currency string) *stripe.Price {
	return &stripe.Price{
		ID:         NewID("price"),
		Product:    &stripe.Product{ID: productID},
		UnitAmount: unitAmount,
		Currency:   stripe.Currency(currency),
		Active:     true,
		Type:       stripe.PriceTypeOneTime,
	}
}

func NewTestSubscription(customerID, priceID string) *stripe.Subscription {
	return &stripe.Subscription{
		ID:       NewID("sub"),
		Status:   stripe.SubscriptionStatusActive,
		Customer: &stripe.Customer{ID: customerID},
		Currency: stripe.CurrencyUSD,
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{
				{Price: &stripe.Price{ID: priceID}, Quantity: 1},
			},
		},
	}
}

func NewTestPaymentIntent(customerID, paymentMethodID string, amount int64) *stripe.PaymentIntent {
	return &stripe.PaymentIntent{
		ID:            NewID("pi"),
		Amount:        amount,
		Currency:      stripe.CurrencyUSD,
		Status:        stripe.PaymentIntentStatusSucceeded,
		Customer:      &stripe.Customer{ID: customerID},
		PaymentMethod: &stripe.PaymentMethod{ID: paymentMethodID},
	}
}
