package stripe

import (
	"context"
	"time"

	"github.com/cassiomorais/stripe-integration/internal/infrastructure/observability"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Gateway implements providers.Gateway against the Stripe API. It holds
// the only copy of the secret key, initialized once at startup. A single
// circuit breaker guards all calls: when Stripe is failing hard we fail
// fast instead of queueing requests, but nothing is ever retried.
type Gateway struct {
	api     *client.API
	logger  zerolog.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer
	breaker *gobreaker.CircuitBreaker[any]
}

type Options struct {
	// BreakerThreshold is the minimum request count before the failure
	// ratio can trip the breaker.
	BreakerThreshold uint32
	// BreakerTimeout is how long the breaker stays open before probing.
	BreakerTimeout time.Duration
}

// New creates a Gateway authenticated with the given secret key. The key
// is scoped to this instance, never assigned to the SDK's global state.
func New(secretKey string, logger zerolog.Logger, metrics *observability.Metrics, opts Options) *Gateway {
	api := &client.API{}
	api.Init(secretKey, nil)

	threshold := opts.BreakerThreshold
	if threshold == 0 {
		threshold = 10
	}
	timeout := opts.BreakerTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	g := &Gateway{
		api:     api,
		logger:  logger.With().Str("component", "stripe_gateway").Logger(),
		metrics: metrics,
		tracer:  otel.Tracer("stripe-gateway"),
	}
	g.breaker = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:     "stripe",
		Interval: 60 * time.Second,
		Timeout:  timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= threshold && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if metrics != nil {
				metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
			}
			g.logger.Warn().Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
	return g
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// call funnels every remote operation through the breaker, records
// metrics and a span, and normalizes failures to the domain taxonomy.
func call[T any](ctx context.Context, g *Gateway, resource, verb string, fn func() (T, error)) (T, error) {
	op := "stripe." + resource + "." + verb

	_, span := g.tracer.Start(ctx, op)
	defer span.End()

	start := time.Now()
	res, err := g.breaker.Execute(func() (any, error) {
		return fn()
	})
	elapsed := time.Since(start)

	if g.metrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		g.metrics.ProviderRequestsTotal.WithLabelValues(resource, verb, outcome).Inc()
		g.metrics.ProviderRequestDuration.WithLabelValues(resource, verb).Observe(elapsed.Seconds())
		g.metrics.CircuitBreakerRequests.WithLabelValues("stripe", outcome).Inc()
	}

	if err != nil {
		g.logger.Error().Err(err).Str("op", op).Dur("elapsed", elapsed).Msg("provider call failed")
		var zero T
		return zero, normalizeError(op, err)
	}

	out, ok := res.(T)
	if !ok {
		// Execute returned the breaker's zero value; should not happen
		// on the success path.
		var zero T
		return zero, nil
	}
	return out, nil
}

func params(ctx context.Context) stripe.Params {
	return stripe.Params{Context: ctx}
}

// --- Customers ---

func (g *Gateway) CreateCustomer(ctx context.Context, p *stripe.CustomerParams) (*stripe.Customer, error) {
	p.Context = ctx
	return call(ctx, g, "customer", "create", func() (*stripe.Customer, error) {
		return g.api.Customers.New(p)
	})
}

func (g *Gateway) RetrieveCustomer(ctx context.Context, id string) (*stripe.Customer, error) {
	return call(ctx, g, "customer", "retrieve", func() (*stripe.Customer, error) {
		return g.api.Customers.Get(id, &stripe.CustomerParams{Params: params(ctx)})
	})
}

func (g *Gateway) UpdateCustomer(ctx context.Context, id string, p *stripe.CustomerParams) (*stripe.Customer, error) {
	p.Context = ctx
	return call(ctx, g, "customer", "update", func() (*stripe.Customer, error) {
		return g.api.Customers.Update(id, p)
	})
}

func (g *Gateway) DeleteCustomer(ctx context.Context, id string) error {
	_, err := call(ctx, g, "customer", "delete", func() (*stripe.Customer, error) {
		return g.api.Customers.Del(id, &stripe.CustomerParams{Params: params(ctx)})
	})
	return err
}

func (g *Gateway) ListCustomers(ctx context.Context, p *stripe.CustomerListParams) ([]*stripe.Customer, error) {
	p.Context = ctx
	p.Single = true
	return call(ctx, g, "customer", "list", func() ([]*stripe.Customer, error) {
		var out []*stripe.Customer
		iter := g.api.Customers.List(p)
		for iter.Next() {
			out = append(out, iter.Customer())
		}
		return out, iter.Err()
	})
}

// --- Payment methods ---

func (g *Gateway) CreatePaymentMethod(ctx context.Context, p *stripe.PaymentMethodParams) (*stripe.PaymentMethod, error) {
	p.Context = ctx
	return call(ctx, g, "payment_method", "create", func() (*stripe.PaymentMethod, error) {
		return g.api.PaymentMethods.New(p)
	})
}

func (g *Gateway) RetrievePaymentMethod(ctx context.Context, id string) (*stripe.PaymentMethod, error) {
	return call(ctx, g, "payment_method", "retrieve", func() (*stripe.PaymentMethod, error) {
		return g.api.PaymentMethods.Get(id, &stripe.PaymentMethodParams{Params: params(ctx)})
	})
}

func (g *Gateway) UpdatePaymentMethod(ctx context.Context, id string, p *stripe.PaymentMethodParams) (*stripe.PaymentMethod, error) {
	p.Context = ctx
	return call(ctx, g, "payment_method", "update", func() (*stripe.PaymentMethod, error) {
		return g.api.PaymentMethods.Update(id, p)
	})
}

func (g *Gateway) AttachPaymentMethod(ctx context.Context, id, customerID string) (*stripe.PaymentMethod, error) {
	return call(ctx, g, "payment_method", "attach", func() (*stripe.PaymentMethod, error) {
		return g.api.PaymentMethods.Attach(id, &stripe.PaymentMethodAttachParams{
			Params:   params(ctx),
			Customer: stripe.String(customerID),
		})
	})
}

func (g *Gateway) DetachPaymentMethod(ctx context.Context, id string) (*stripe.PaymentMethod, error) {
	return call(ctx, g, "payment_method", "detach", func() (*stripe.PaymentMethod, error) {
		return g.api.PaymentMethods.Detach(id, &stripe.PaymentMethodDetachParams{Params: params(ctx)})
	})
}

func (g *Gateway) ListCustomerPaymentMethods(ctx context.Context, p *stripe.CustomerListPaymentMethodsParams) ([]*stripe.PaymentMethod, error) {
	p.Context = ctx
	p.Single = true
	return call(ctx, g, "payment_method", "list", func() ([]*stripe.PaymentMethod, error) {
		var out []*stripe.PaymentMethod
		iter := g.api.Customers.ListPaymentMethods(p)
		for iter.Next() {
			out = append(out, iter.PaymentMethod())
		}
		return out, iter.Err()
	})
}

// --- Products ---

func (g *Gateway) CreateProduct(ctx context.Context, p *stripe.ProductParams) (*stripe.Product, error) {
	p.Context = ctx
	return call(ctx, g, "product", "create", func() (*stripe.Product, error) {
		return g.api.Products.New(p)
	})
}

func (g *Gateway) RetrieveProduct(ctx context.Context, id string) (*stripe.Product, error) {
	return call(ctx, g, "product", "retrieve", func() (*stripe.Product, error) {
		return g.api.Products.Get(id, &stripe.ProductParams{Params: params(ctx)})
	})
}

func (g *Gateway) UpdateProduct(ctx context.Context, id string, p *stripe.ProductParams) (*stripe.Product, error) {
	p.Context = ctx
	return call(ctx, g, "product", "update", func() (*stripe.Product, error) {
		return g.api.Products.Update(id, p)
	})
}

func (g *Gateway) DeleteProduct(ctx context.Context, id string) error {
	_, err := call(ctx, g, "product", "delete", func() (*stripe.Product, error) {
		return g.api.Products.Del(id, &stripe.ProductParams{Params: params(ctx)})
	})
	return err
}

func (g *Gateway) ListProducts(ctx context.Context, p *stripe.ProductListParams) ([]*stripe.Product, error) {
	p.Context = ctx
	p.Single = true
	return call(ctx, g, "product", "list", func() ([]*stripe.Product, error) {
		var out []*stripe.Product
		iter := g.api.Products.List(p)
		for iter.Next() {
			out = append(out, iter.Product())
		}
		return out, iter.Err()
	})
}

// --- Prices ---

func (g *Gateway) CreatePrice(ctx context.Context, p *stripe.PriceParams) (*stripe.Price, error) {
	p.Context = ctx
	return call(ctx, g, "price", "create", func() (*stripe.Price, error) {
		return g.api.Prices.New(p)
	})
}

func (g *Gateway) RetrievePrice(ctx context.Context, id string) (*stripe.Price, error) {
	return call(ctx, g, "price", "retrieve", func() (*stripe.Price, error) {
		return g.api.Prices.Get(id, &stripe.PriceParams{Params: params(ctx)})
	})
}

func (g *Gateway) UpdatePrice(ctx context.Context, id string, p *stripe.PriceParams) (*stripe.Price, error) {
	p.Context = ctx
	return call(ctx, g, "price", "update", func() (*stripe.Price, error) {
		return g.api.Prices.Update(id, p)
	})
}

func (g *Gateway) ListPrices(ctx context.Context, p *stripe.PriceListParams) ([]*stripe.Price, error) {
	p.Context = ctx
	p.Single = true
	return call(ctx, g, "price", "list", func() ([]*stripe.Price, error) {
		var out []*stripe.Price
		iter := g.api.Prices.List(p)
		for iter.Next() {
			out = append(out, iter.Price())
		}
		return out, iter.Err()
	})
}

// --- Subscriptions ---

func (g *Gateway) CreateSubscription(ctx context.Context, p *stripe.SubscriptionParams) (*stripe.Subscription, error) {
	p.Context = ctx
	return call(ctx, g, "subscription", "create", func() (*stripe.Subscription, error) {
		return g.api.Subscriptions.New(p)
	})
}

func (g *Gateway) RetrieveSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	return call(ctx, g, "subscription", "retrieve", func() (*stripe.Subscription, error) {
		return g.api.Subscriptions.Get(id, &stripe.SubscriptionParams{Params: params(ctx)})
	})
}

func (g *Gateway) UpdateSubscription(ctx context.Context, id string, p *stripe.SubscriptionParams) (*stripe.Subscription, error) {
	p.Context = ctx
	return call(ctx, g, "subscription", "update", func() (*stripe.Subscription, error) {
		return g.api.Subscriptions.Update(id, p)
	})
}

// CancelSubscription requests the provider perform the transition to
// canceled; whatever status comes back is reflected as-is.
func (g *Gateway) CancelSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	return call(ctx, g, "subscription", "cancel", func() (*stripe.Subscription, error) {
		return g.api.Subscriptions.Cancel(id, &stripe.SubscriptionCancelParams{Params: params(ctx)})
	})
}

func (g *Gateway) ListSubscriptions(ctx context.Context, p *stripe.SubscriptionListParams) ([]*stripe.Subscription, error) {
	p.Context = ctx
	p.Single = true
	return call(ctx, g, "subscription", "list", func() ([]*stripe.Subscription, error) {
		var out []*stripe.Subscription
		iter := g.api.Subscriptions.List(p)
		for iter.Next() {
			out = append(out, iter.Subscription())
		}
		return out, iter.Err()
	})
}

// --- Payment intents ---

func (g *Gateway) CreatePaymentIntent(ctx context.Context, p *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	p.Context = ctx
	return call(ctx, g, "payment_intent", "create", func() (*stripe.PaymentIntent, error) {
		return g.api.PaymentIntents.New(p)
	})
}

func (g *Gateway) RetrievePaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error) {
	return call(ctx, g, "payment_intent", "retrieve", func() (*stripe.PaymentIntent, error) {
		return g.api.PaymentIntents.Get(id, &stripe.PaymentIntentParams{Params: params(ctx)})
	})
}

func (g *Gateway) ListPaymentIntents(ctx context.Context, p *stripe.PaymentIntentListParams) ([]*stripe.PaymentIntent, error) {
	p.Context = ctx
	p.Single = true
	return call(ctx, g, "payment_intent", "list", func() ([]*stripe.PaymentIntent, error) {
		var out []*stripe.PaymentIntent
		iter := g.api.PaymentIntents.List(p)
		for iter.Next() {
			out = append(out, iter.PaymentIntent())
		}
		return out, iter.Err()
	})
}
