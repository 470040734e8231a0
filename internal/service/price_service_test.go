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

func setupPriceService() (*PriceService, *testutil.MockGateway, *testutil.MockMirrorPublisher) {
	gateway := testutil.NewMockGateway()
	publisher := testutil.NewMockMirrorPublisher()
	svc := NewPriceService(gateway, publisher, zerolog.Nop())
	return svc, gateway, publisher
}

func TestPriceCreate_OneTime(t *testing.T) {
	svc, _, _ := setupPriceService()

	p, err := svc.Create(context.Background(), billing.CreatePriceRequest{
		ProductID:  "prod_123",
		Currency:   "usd",
		UnitAmount: 1500,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "prod_123", p.ProductID)
	assert.Equal(t, "one_time", p.Type)
	assert.Nil(t, p.Recurring)
}

func TestPriceCreate_Recurring(t *testing.T) {
	svc, _, _ := setupPriceService()

	p, err := svc.Create(context.Background(), billing.CreatePriceRequest{
		ProductID:  "prod_123",
		Currency:   "usd",
		UnitAmount: 2900,
		Recurring: &billing.RecurringParams{
			Interval:      "month",
			IntervalCount: 1,
			UsageType:     "licensed",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "recurring", p.Type)
	require.NotNil(t, p.Recurring)
	assert.Equal(t, "month", p.Recurring.Interval)
	assert.Equal(t, int64(1), p.Recurring.IntervalCount)
}

func TestPriceUpdate_NicknameAndActiveOnly(t *testing.T) {
	svc, _, _ := setupPriceService()

	created, err := svc.Create(context.Background(), billing.CreatePriceRequest{
		ProductID:  "prod_123",
		Currency:   "usd",
		UnitAmount: 1500,
	})
	require.NoError(t, err)

	nickname := "launch pricing"
	inactive := false
	updated, err := svc.Update(context.Background(), billing.UpdatePriceRequest{
		ID:       created.ID,
		Nickname: &nickname,
		Active:   &inactive,
	})

	require.NoError(t, err)
	assert.Equal(t, &nickname, updated.Nickname)
	assert.False(t, updated.Active)
	assert.Equal(t, created.UnitAmount, updated.UnitAmount)
	assert.Equal(t, created.Currency, updated.Currency)
}

func TestPriceList_FiltersByProduct(t *testing.T) {
	svc, _, _ := setupPriceService()

	_, err := svc.Create(context.Background(), billing.CreatePriceRequest{
		ProductID: "prod_a", Currency: "usd", UnitAmount: 1000,
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), billing.CreatePriceRequest{
		ProductID: "prod_b", Currency: "usd", UnitAmount: 2000,
	})
	require.NoError(t, err)

	prices, err := svc.List(context.Background(), billing.ListPricesRequest{ProductID: "prod_a"})

	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, "prod_a", prices[0].ProductID)
}

func TestPriceGet_NotFound(t *testing.T) {
	svc, _, _ := setupPriceService()

	_, err := svc.Get(context.Background(), "price_missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}
