package service

import (
	"context"
	"testing"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	domainErrors "github.com/cassiomorais/stripe-integration/internal/domain/errors"
	"github.com/cassiomorais/stripe-integration/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPaymentIntentService() (*PaymentIntentService, *testutil.MockGateway) {
	gateway := testutil.NewMockGateway()
	svc := NewPaymentIntentService(gateway, testutil.NewMockMirrorPublisher(), zerolog.Nop())
	return svc, gateway
}

func TestPaymentIntentCreate_ChargesDefaultPaymentMethod(t *testing.T) {
	svc, gateway := setupPaymentIntentService()

	customer := testutil.NewTestCustomerWithDefault("ada@example.com", "Ada Lovelace", "pm_default")
	gateway.SeedCustomer(customer)

	pi, err := svc.Create(context.Background(), billing.CreatePaymentIntentRequest{
		CustomerID: customer.ID,
		Amount:     2500,
		Currency:   "usd",
	})

	require.NoError(t, err)
	assert.Equal(t, "pm_default", pi.PaymentMethodID)
	assert.Equal(t, int64(2500), pi.Amount)
	assert.Equal(t, 1, gateway.CallCount("CreatePaymentIntent"))
}

func TestPaymentIntentCreate_NoDefaultFailsWithoutProviderWrite(t *testing.T) {
	svc, gateway := setupPaymentIntentService()

	customer := testutil.NewTestCustomer("ada@example.com", "Ada Lovelace")
	gateway.SeedCustomer(customer)

	_, err := svc.Create(context.Background(), billing.CreatePaymentIntentRequest{
		CustomerID: customer.ID,
		Amount:     2500,
		Currency:   "usd",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrPreconditionFailed)
	// The precondition check must short-circuit before any intent is
	// created at the provider.
	assert.Equal(t, 0, gateway.CallCount("CreatePaymentIntent"))
}

func TestPaymentIntentCreate_UnknownCustomer(t *testing.T) {
	svc, gateway := setupPaymentIntentService()

	_, err := svc.Create(context.Background(), billing.CreatePaymentIntentRequest{
		CustomerID: "cus_missing",
		Amount:     100,
		Currency:   "usd",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
	assert.Equal(t, 0, gateway.CallCount("CreatePaymentIntent"))
}

func TestPaymentIntentGet_OwnershipMismatch(t *testing.T) {
	svc, gateway := setupPaymentIntentService()

	pi := testutil.NewTestPaymentIntent("cus_owner", "pm_1", 500)
	gateway.SeedPaymentIntent(pi)

	_, err := svc.Get(context.Background(), "cus_other", pi.ID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrOwnershipMismatch)
}

func TestPaymentIntentGet_Owned(t *testing.T) {
	svc, gateway := setupPaymentIntentService()

	pi := testutil.NewTestPaymentIntent("cus_owner", "pm_1", 500)
	gateway.SeedPaymentIntent(pi)

	got, err := svc.Get(context.Background(), "cus_owner", pi.ID)

	require.NoError(t, err)
	assert.Equal(t, pi.ID, got.ID)
	assert.Equal(t, "succeeded", got.Status)
}
