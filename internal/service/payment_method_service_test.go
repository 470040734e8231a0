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

func setupPaymentMethodService() (*PaymentMethodService, *testutil.MockGateway, *testutil.MockMirrorPublisher) {
	gateway := testutil.NewMockGateway()
	publisher := testutil.NewMockMirrorPublisher()
	svc := NewPaymentMethodService(gateway, publisher, zerolog.Nop())
	return svc, gateway, publisher
}

func TestPaymentMethodCreate_CreatesAndAttaches(t *testing.T) {
	svc, gateway, publisher := setupPaymentMethodService()

	owner := testutil.NewTestCustomer("ada@example.com", "Ada Lovelace")
	gateway.SeedCustomer(owner)

	pm, err := svc.Create(context.Background(), billing.CreatePaymentMethodRequest{
		CustomerID: owner.ID,
		CardNumber: "4242424242424242",
		ExpMonth:   12,
		ExpYear:    2030,
		CVC:        "123",
	})

	require.NoError(t, err)
	assert.Equal(t, owner.ID, pm.CustomerID)
	assert.Equal(t, 1, gateway.CallCount("RetrieveCustomer"))
	assert.Equal(t, 1, gateway.CallCount("CreatePaymentMethod"))
	assert.Equal(t, 1, gateway.CallCount("AttachPaymentMethod"))

	// Billing details were taken from the owner's profile.
	require.NotNil(t, pm.BillingDetails)
	require.NotNil(t, pm.BillingDetails.Email)
	assert.Equal(t, "ada@example.com", *pm.BillingDetails.Email)

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, billing.ResourcePaymentMethod, events[0].Resource)
	assert.Equal(t, billing.MirrorActionUpserted, events[0].Action)
}

func TestPaymentMethodCreate_UnknownCustomerFailsBeforeCreate(t *testing.T) {
	svc, gateway, _ := setupPaymentMethodService()

	_, err := svc.Create(context.Background(), billing.CreatePaymentMethodRequest{
		CustomerID: "cus_missing",
		CardNumber: "4242424242424242",
		ExpMonth:   12,
		ExpYear:    2030,
		CVC:        "123",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
	assert.Equal(t, 0, gateway.CallCount("CreatePaymentMethod"))
	assert.Equal(t, 0, gateway.CallCount("AttachPaymentMethod"))
}

func TestPaymentMethodGet_OwnershipMismatch(t *testing.T) {
	svc, gateway, _ := setupPaymentMethodService()

	pm := testutil.NewTestCard("cus_owner")
	gateway.SeedPaymentMethod(pm)

	_, err := svc.Get(context.Background(), "cus_other", pm.ID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrOwnershipMismatch)
	assert.NotErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestPaymentMethodGet_OwnedByCaller(t *testing.T) {
	svc, gateway, _ := setupPaymentMethodService()

	pm := testutil.NewTestCard("cus_owner")
	gateway.SeedPaymentMethod(pm)

	got, err := svc.Get(context.Background(), "cus_owner", pm.ID)

	require.NoError(t, err)
	assert.Equal(t, pm.ID, got.ID)
	assert.Equal(t, "cus_owner", got.CustomerID)
}

func TestPaymentMethodSetDefault_ReturnsPaymentMethodNotCustomer(t *testing.T) {
	svc, gateway, _ := setupPaymentMethodService()

	owner := testutil.NewTestCustomer("ada@example.com", "Ada Lovelace")
	gateway.SeedCustomer(owner)
	pm := testutil.NewTestCard(owner.ID)
	gateway.SeedPaymentMethod(pm)

	got, err := svc.SetDefault(context.Background(), owner.ID, pm.ID)

	require.NoError(t, err)
	assert.Equal(t, pm.ID, got.ID)
	assert.Equal(t, 1, gateway.CallCount("UpdateCustomer"))
}

func TestPaymentMethodSetDefault_MismatchIssuesNoCustomerUpdate(t *testing.T) {
	svc, gateway, _ := setupPaymentMethodService()

	owner := testutil.NewTestCustomer("ada@example.com", "Ada Lovelace")
	gateway.SeedCustomer(owner)
	pm := testutil.NewTestCard("cus_someone_else")
	gateway.SeedPaymentMethod(pm)

	_, err := svc.SetDefault(context.Background(), owner.ID, pm.ID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrOwnershipMismatch)
	assert.Equal(t, 0, gateway.CallCount("UpdateCustomer"))
}

func TestPaymentMethodDetach_PublishesDeletion(t *testing.T) {
	svc, gateway, publisher := setupPaymentMethodService()

	pm := testutil.NewTestCard("cus_owner")
	gateway.SeedPaymentMethod(pm)

	_, err := svc.Detach(context.Background(), pm.ID)

	require.NoError(t, err)
	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, billing.MirrorActionDeleted, events[0].Action)
	assert.Equal(t, pm.ID, events[0].ID)
}

func TestPaymentMethodList_EmptyCustomer(t *testing.T) {
	svc, _, _ := setupPaymentMethodService()

	methods, err := svc.List(context.Background(), "cus_nobody", billing.ListPage{})

	require.NoError(t, err)
	assert.Empty(t, methods)
}
