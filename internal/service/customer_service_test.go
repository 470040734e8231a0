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
	"github.com/stripe/stripe-go/v79"
)

func setupCustomerService() (*CustomerService, *testutil.MockGateway, *testutil.MockMirrorPublisher) {
	gateway := testutil.NewMockGateway()
	publisher := testutil.NewMockMirrorPublisher()
	svc := NewCustomerService(gateway, publisher, zerolog.Nop())
	return svc, gateway, publisher
}

func TestCustomerCreate_PublishesMirrorEvent(t *testing.T) {
	svc, _, publisher := setupCustomerService()

	c, err := svc.Create(context.Background(), billing.CreateCustomerRequest{
		Email: "ada@example.com",
		Name:  "Ada Lovelace",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "ada@example.com", c.Email)

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, billing.ResourceCustomer, events[0].Resource)
	assert.Equal(t, c.ID, events[0].ID)
}

func TestCustomerCreate_SucceedsWhenMirrorPublishFails(t *testing.T) {
	gateway := testutil.NewMockGateway()
	publisher := testutil.NewMockMirrorPublisher()
	publisher.PublishMirrorEventFunc = func(ctx context.Context, event billing.MirrorEvent) error {
		return assert.AnError
	}
	svc := NewCustomerService(gateway, publisher, zerolog.Nop())

	_, err := svc.Create(context.Background(), billing.CreateCustomerRequest{
		Email: "ada@example.com",
		Name:  "Ada Lovelace",
	})

	// Mirror publishing is best effort; the provider write already
	// happened and must be reported as success.
	require.NoError(t, err)
}

func TestCustomerGet_NotFound(t *testing.T) {
	svc, _, _ := setupCustomerService()

	_, err := svc.Get(context.Background(), "cus_missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	var opErr *domainErrors.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "customer.get", opErr.Op)
}

func TestCustomerUpdate_PartialFields(t *testing.T) {
	svc, gateway, _ := setupCustomerService()

	existing := testutil.NewTestCustomer("ada@example.com", "Ada Lovelace")
	gateway.SeedCustomer(existing)

	updated, err := svc.Update(context.Background(), billing.UpdateCustomerRequest{
		ID:   existing.ID,
		Name: stripe.String("Countess Lovelace"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Countess Lovelace", updated.Name)
	// Untouched field keeps its provider-side value.
	assert.Equal(t, "ada@example.com", updated.Email)
}

func TestCustomerDelete_PublishesDeletion(t *testing.T) {
	svc, gateway, publisher := setupCustomerService()

	existing := testutil.NewTestCustomer("ada@example.com", "Ada Lovelace")
	gateway.SeedCustomer(existing)

	err := svc.Delete(context.Background(), existing.ID)

	require.NoError(t, err)
	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, billing.MirrorActionDeleted, events[0].Action)

	_, err = svc.Get(context.Background(), existing.ID)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestCustomerList(t *testing.T) {
	svc, gateway, _ := setupCustomerService()

	gateway.SeedCustomer(testutil.NewTestCustomer("a@example.com", "A"))
	gateway.SeedCustomer(testutil.NewTestCustomer("b@example.com", "B"))

	customers, err := svc.List(context.Background(), billing.ListPage{})

	require.NoError(t, err)
	assert.Len(t, customers, 2)
}
