package stripe

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	"github.com/cassiomorais/stripe-integration/internal/providers"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// setupStubGateway points the gateway's SDK client at a local test server
// so round trips and query strings can be observed.
func setupStubGateway(t *testing.T, handler http.Handler) *Gateway {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})

	g := New("sk_test_stub", zerolog.Nop(), nil, Options{})
	g.api = &client.API{}
	g.api.Init("sk_test_stub", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
	return g
}

// A bounded list must cost exactly one provider round trip even when the
// provider reports more pages. The SDK iterator follows has_more unless
// told otherwise, which would turn limit=1 into a full-collection walk.
func TestListCustomers_OneRoundTripPerPage(t *testing.T) {
	var requests atomic.Int64
	g := setupStubGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"object":"list","url":"/v1/customers","has_more":true,"data":[{"id":"cus_%d","object":"customer","email":"a@example.com"}]}`, n)
	}))

	limit := int64(1)
	out, err := g.ListCustomers(context.Background(), providers.CustomerListParams(billing.ListPage{Limit: &limit}))

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "cus_1", out[0].ID)
	assert.Equal(t, int64(1), requests.Load())
}

func TestListCustomers_CursorsForwardedVerbatim(t *testing.T) {
	var gotQuery url.Values
	g := setupStubGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"object":"list","url":"/v1/customers","has_more":false,"data":[]}`)
	}))

	limit := int64(25)
	_, err := g.ListCustomers(context.Background(), providers.CustomerListParams(billing.ListPage{
		Limit:         &limit,
		StartingAfter: stripe.String("cus_cursor"),
	}))

	require.NoError(t, err)
	assert.Equal(t, "25", gotQuery.Get("limit"))
	assert.Equal(t, "cus_cursor", gotQuery.Get("starting_after"))
	assert.Empty(t, gotQuery.Get("ending_before"))
}

// Params handed to the gateway without going through the builders still
// get pinned to a single page.
func TestListPrices_BareParamsStillSinglePage(t *testing.T) {
	var requests atomic.Int64
	g := setupStubGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"object":"list","url":"/v1/prices","has_more":true,"data":[{"id":"price_%d","object":"price","unit_amount":500,"currency":"usd"}]}`, n)
	}))

	out, err := g.ListPrices(context.Background(), &stripe.PriceListParams{})

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), requests.Load())
}
