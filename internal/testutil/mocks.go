package testutil

import (
	"context"
	"sync"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	domainErrors "github.com/cassiomorais/stripe-integration/internal/domain/errors"
	"github.com/stripe/stripe-go/v79"
)

// MockGateway is an in-memory implementation of providers.Gateway. The
// default behavior stores resources in maps and mints provider-style
// ids; any method can be overridden through its Func field. Every call
// is counted so tests can assert which remote operations ran.
type MockGateway struct {
	mu              sync.Mutex
	customers       map[string]*stripe.Customer
	paymentMethods  map[string]*stripe.PaymentMethod
	products        map[string]*stripe.Product
	prices          map[string]*stripe.Price
	subscriptions   map[string]*stripe.Subscription
	paymentIntents  map[string]*stripe.PaymentIntent
	calls           map[string]int

	CreateCustomerFunc   func(ctx context.Context, params *stripe.CustomerParams) (*stripe.Customer, error)
	RetrieveCustomerFunc func(ctx context.Context, id string) (*stripe.Customer, error)
	UpdateCustomerFunc   func(ctx context.Context, id string, params *stripe.CustomerParams) (*stripe.Customer, error)
	DeleteCustomerFunc   func(ctx context.Context, id string) error
	ListCustomersFunc    func(ctx context.Context, params *stripe.CustomerListParams) ([]*stripe.Customer, error)

	CreatePaymentMethodFunc        func(ctx context.Context, params *stripe.PaymentMethodParams) (*stripe.PaymentMethod, error)
	RetrievePaymentMethodFunc      func(ctx context.Context, id string) (*stripe.PaymentMethod, error)
	UpdatePaymentMethodFunc        func(ctx context.Context, id string, params *stripe.PaymentMethodParams) (*stripe.PaymentMethod, error)
	AttachPaymentMethodFunc        func(ctx context.Context, id, customerID string) (*stripe.PaymentMethod, error)
	DetachPaymentMethodFunc        func(ctx context.Context, id string) (*stripe.PaymentMethod, error)
	ListCustomerPaymentMethodsFunc func(ctx context.Context, params *stripe.CustomerListPaymentMethodsParams) ([]*stripe.PaymentMethod, error)

	CreateProductFunc   func(ctx context.Context, params *stripe.ProductParams) (*stripe.Product, error)
	RetrieveProductFunc func(ctx context.Context, id string) (*stripe.Product, error)
	UpdateProductFunc   func(ctx context.Context, id string, params *stripe.ProductParams) (*stripe.Product, error)
	DeleteProductFunc   func(ctx context.Context, id string) error
	ListProductsFunc    func(ctx context.Context, params *stripe.ProductListParams) ([]*stripe.Product, error)

	CreatePriceFunc   func(ctx context.Context, params *stripe.PriceParams) (*stripe.Price, error)
	RetrievePriceFunc func(ctx context.Context, id string) (*stripe.Price, error)
	UpdatePriceFunc   func(ctx context.Context, id string, params *stripe.PriceParams) (*stripe.Price, error)
	ListPricesFunc    func(ctx context.Context, params *stripe.PriceListParams) ([]*stripe.Price, error)

	CreateSubscriptionFunc   func(ctx context.Context, params *stripe.SubscriptionParams) (*stripe.Subscription, error)
	RetrieveSubscriptionFunc func(ctx context.Context, id string) (*stripe.Subscription, error)
	UpdateSubscriptionFunc   func(ctx context.Context, id string, params *stripe.SubscriptionParams) (*stripe.Subscription, error)
	CancelSubscriptionFunc   func(ctx context.Context, id string) (*stripe.Subscription, error)
	ListSubscriptionsFunc    func(ctx context.Context, params *stripe.SubscriptionListParams) ([]*stripe.Subscription, error)

	CreatePaymentIntentFunc   func(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	RetrievePaymentIntentFunc func(ctx context.Context, id string) (*stripe.PaymentIntent, error)
	ListPaymentIntentsFunc    func(ctx context.Context, params *stripe.PaymentIntentListParams) ([]*stripe.PaymentIntent, error)
}

func NewMockGateway() *MockGateway {
	return &MockGateway{
		customers:      make(map[string]*stripe.Customer),
		paymentMethods: make(map[string]*stripe.PaymentMethod),
		products:       make(map[string]*stripe.Product),
		prices:         make(map[string]*stripe.Price),
		subscriptions:  make(map[string]*stripe.Subscription),
		paymentIntents: make(map[string]*stripe.PaymentIntent),
		calls:          make(map[string]int),
	}
}

// CallCount reports how many times a gateway method ran, e.g.
// CallCount("CreatePaymentIntent").
func (m *MockGateway) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockGateway) record(method string) {
	m.mu.Lock()
	m.calls[method]++
	m.mu.Unlock()
}

// SeedCustomer stores a customer directly, bypassing create.
func (m *MockGateway) SeedCustomer(c *stripe.Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[c.ID] = c
}

// SeedPaymentMethod stores a payment method directly.
func (m *MockGateway) SeedPaymentMethod(pm *stripe.PaymentMethod) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paymentMethods[pm.ID] = pm
}

// SeedPaymentIntent stores a payment intent directly.
func (m *MockGateway) SeedPaymentIntent(pi *stripe.PaymentIntent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paymentIntents[pi.ID] = pi
}

// --- Customers ---

func (m *MockGateway) CreateCustomer(ctx context.Context, params *stripe.CustomerParams) (*stripe.Customer, error) {
	m.record("CreateCustomer")
	if m.CreateCustomerFunc != nil {
		return m.CreateCustomerFunc(ctx, params)
	}
	c := &stripe.Customer{ID: NewID("cus")}
	if params.Email != nil {
		c.Email = *params.Email
	}
	if params.Name != nil {
		c.Name = *params.Name
	}
	if params.Phone != nil {
		c.Phone = *params.Phone
	}
	m.mu.Lock()
	m.customers[c.ID] = c
	m.mu.Unlock()
	return c, nil
}

func (m *MockGateway) RetrieveCustomer(ctx context.Context, id string) (*stripe.Customer, error) {
	m.record("RetrieveCustomer")
	if m.RetrieveCustomerFunc != nil {
		return m.RetrieveCustomerFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, domainErrors.NotFound("stripe.customer.retrieve", "No such customer: '"+id+"'")
	}
	return c, nil
}

func (m *MockGateway) UpdateCustomer(ctx context.Context, id string, params *stripe.CustomerParams) (*stripe.Customer, error) {
	m.record("UpdateCustomer")
	if m.UpdateCustomerFunc != nil {
		return m.UpdateCustomerFunc(ctx, id, params)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, domainErrors.NotFound("stripe.customer.update", "No such customer: '"+id+"'")
	}
	if params.Email != nil {
		c.Email = *params.Email
	}
	if params.Name != nil {
		c.Name = *params.Name
	}
	if params.Phone != nil {
		c.Phone = *params.Phone
	}
	if params.InvoiceSettings != nil && params.InvoiceSettings.DefaultPaymentMethod != nil {
		c.InvoiceSettings = &stripe.CustomerInvoiceSettings{
			DefaultPaymentMethod: &stripe.PaymentMethod{ID: *params.InvoiceSettings.DefaultPaymentMethod},
		}
	}
	return c, nil
}

func (m *MockGateway) DeleteCustomer(ctx context.Context, id string) error {
	m.record("DeleteCustomer")
	if m.DeleteCustomerFunc != nil {
		return m.DeleteCustomerFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[id]; !ok {
		return domainErrors.NotFound("stripe.customer.delete", "No such customer: '"+id+"'")
	}
	delete(m.customers, id)
	return nil
}

func (m *MockGateway) ListCustomers(ctx context.Context, params *stripe.CustomerListParams) ([]*stripe.Customer, error) {
	m.record("ListCustomers")
	if m.ListCustomersFunc != nil {
		return m.ListCustomersFunc(ctx, params)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*stripe.Customer, 0, len(m.customers))
	for _, c := range m.customers {
		out = append(out, c)
	}
	return out, nil
}

// --- Payment methods ---

func (m *MockGateway) CreatePaymentMethod(ctx context.Context, params *stripe.PaymentMethodParams) (*stripe.PaymentMethod, error) {
	m.record("CreatePaymentMethod")
	if m.CreatePaymentMethodFunc != nil {
		return m.CreatePaymentMethodFunc(ctx, params)
	}
	pm := &stripe.PaymentMethod{ID: NewID("pm"), Type: stripe.PaymentMethodTypeCard}
	if params.Card != nil {
		pm.Card = &stripe.PaymentMethodCard{Brand: stripe.PaymentMethodCardBrandVisa, Last4: "4242"}
		if params.Card.ExpMonth != nil {
			pm.Card.ExpMonth = *params.Card.ExpMonth
		}
		if params.Card.ExpYear != nil {
			pm.Card.ExpYear = *params.Card.ExpYear
		}
	}
	if params.BillingDetails != nil {
		pm.BillingDetails = &stripe.PaymentMethodBillingDetails{}
		if params.BillingDetails.Email != nil {
			pm.BillingDetails.Email = *params.BillingDetails.Email
		}
		if params.BillingDetails.Name != nil {
			pm.BillingDetails.Name = *params.BillingDetails.Name
		}
	}
	m.mu.Lock()
	m.paymentMethods[pm.ID] = pm
	m.mu.Unlock()
	return pm, nil
}

func (m *MockGateway) RetrievePaymentMethod(ctx context.Context, id string) (*stripe.PaymentMethod, error) {
	m.record("RetrievePaymentMethod")
	if m.RetrievePaymentMethodFunc != nil {
		return m.RetrievePaymentMethodFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	pm, ok := m.paymentMethods[id]
	if !ok {
		return nil, domainErrors.NotFound("stripe.payment_method.retrieve", "No such payment method: '"+id+"'")
	}
	return pm, nil
}

func (m *MockGateway) UpdatePaymentMethod(ctx context.Context, id string, params *stripe.PaymentMethodParams) (*stripe.PaymentMethod, error) {
	m.record("UpdatePaymentMethod")
	if m.UpdatePaymentMethodFunc != nil {
		return m.UpdatePaymentMethodFunc(ctx, id, params)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	pm, ok := m.paymentMethods[id]
	if !ok {
		return nil, domainErrors.NotFound("stripe.payment_method.update", "No such payment method: '"+id+"'")
	}
	if params.Card != nil && pm.Card != nil {
		if params.Card.ExpMonth != nil {
			pm.Card.ExpMonth = *params.Card.ExpMonth
		}
		if params.Card.ExpYear != nil {
			pm.Card.ExpYear = *params.Card.ExpYear
		}
	}
	return pm, nil
}

func (m *MockGateway) AttachPaymentMethod(ctx context.Context, id, customerID string) (*stripe.PaymentMethod, error) {
	m.record("AttachPaymentMethod")
	if m.AttachPaymentMethodFunc != nil {
		return m.AttachPaymentMethodFunc(ctx, id, customerID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	pm, ok := m.paymentMethods[id]
	if !ok {
		return nil, domainErrors.NotFound("stripe.payment_method.attach", "No such payment method: '"+id+"'")
	}
	pm.Customer = &stripe.Customer{ID: customerID}
	return pm, nil
}

func (m *MockGateway) DetachPaymentMethod(ctx context.Context, id string) (*stripe.PaymentMethod, error) {
	m.record("DetachPaymentMethod")
	if m.DetachPaymentMethodFunc != nil {
		return m.DetachPaymentMethodFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	pm, ok := m.paymentMethods[id]
	if !ok {
		return nil, domainErrors.NotFound("stripe.payment_method.detach", "No such payment method: '"+id+"'")
	}
	pm.Customer = nil
	return pm, nil
}

func (m *MockGateway) ListCustomerPaymentMethods(ctx context.Context, params *stripe.CustomerListPaymentMethodsParams) ([]*stripe.PaymentMethod, error) {
	m.record("ListCustomerPaymentMethods")
	if m.ListCustomerPaymentMethodsFunc != nil {
		return m.ListCustomerPaymentMethodsFunc(ctx, params)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*stripe.PaymentMethod
	for _, pm := range m.paymentMethods {
		if pm.Customer != nil && params.Customer != nil && pm.Customer.ID == *params.Customer {
			out = append(out, pm)
		}
	}
	return out, nil
}

// --- Products ---

func (m *MockGateway) CreateProduct(ctx context.Context, params *stripe.ProductParams) (*stripe.Product, error) {
	m.record("CreateProduct")
	if m.CreateProductFunc != nil {
		return m.CreateProductFunc(ctx, params)
	}
	p := &stripe.Product{ID: NewID("prod"), Active: true}
	if params.Name != nil {
		p.Name = *params.Name
	}
	if params.Description != nil {
		p.Description = *params.Description
	}
	if params.Active != nil {
		p.Active = *params.Active
	}
	if params.Shippable != nil {
		p.Shippable = *params.Shippable
	}
	m.mu.Lock()
	m.products[p.ID] = p
	m.mu.Unlock()
	return p, nil
}

func (m *MockGateway) RetrieveProduct(ctx context.Context, id string) (*stripe.Product, error) {
	m.record("RetrieveProduct")
	if m.RetrieveProductFunc != nil {
		return m.RetrieveProductFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, domainErrors.NotFound("stripe.product.retrieve", "No such product: '"+id+"'")
	}
	return p, nil
}

func (m *MockGateway) UpdateProduct(ctx context.Context, id string, params *stripe.ProductParams) (*stripe.Product, error) {
	m.record("UpdateProduct")
	if m.UpdateProductFunc != nil {
		return m.UpdateProductFunc(ctx, id, params)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, domainErrors.NotFound("stripe.product.update", "No such product: '"+id+"'")
	}
	if params.Name != nil {
		p.Name = *params.Name
	}
	if params.Description != nil {
		p.Description = *params.Description
	}
	if params.Active != nil {
		p.Active = *params.Active
	}
	return p, nil
}

func (m *MockGateway) DeleteProduct(ctx context.Context, id string) error {
	m.record("DeleteProduct")
	if m.DeleteProductFunc != nil {
		return m.DeleteProductFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return domainErrors.NotFound("stripe.product.delete", "No such product: '"+id+"'")
	}
	delete(m.products, id)
	return nil
}

func (m *MockGateway) ListProducts(ctx context.Context, params *stripe.ProductListParams) ([]*stripe.Product, error) {
	m.record("ListProducts")
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx, params)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*stripe.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

// --- Prices ---

func (m *MockGateway) CreatePrice(ctx context.Context, params *stripe.PriceParams) (*stripe.Price, error) {
	m.record("CreatePrice")
	if m.CreatePriceFunc != nil {
		return m.CreatePriceFunc(ctx, params)
	}
	p := &stripe.Price{ID: NewID("price"), Active: true, Type: stripe.PriceTypeOneTime}
	if params.Product != nil {
		p.Product = &stripe.Product{ID: *params.Product}
	}
	if params.Currency != nil {
		p.Currency = stripe.Currency(*params.Currency)
	}
	if params.UnitAmount != nil {
		p.UnitAmount = *params.UnitAmount
	}
	if params.Nickname != nil {
		p.Nickname = *params.Nickname
	}
	if params.Recurring != nil {
		p.Type = stripe.PriceTypeRecurring
		p.Recurring = &stripe.PriceRecurring{}
		if params.Recurring.Interval != nil {
			p.Recurring.Interval = stripe.PriceRecurringInterval(*params.Recurring.Interval)
		}
		if params.Recurring.IntervalCount != nil {
			p.Recurring.IntervalCount = *params.Recurring.IntervalCount
		}
		if params.Recurring.UsageType != nil {
			p.Recurring.UsageType = stripe.PriceRecurringUsageType(*params.Recurring.UsageType)
		}
	}
	m.mu.Lock()
	m.prices[p.ID] = p
	m.mu.Unlock()
	return p, nil
}

func (m *MockGateway) RetrievePrice(ctx context.Context, id string) (*stripe.Price, error) {
	m.record("RetrievePrice")
	if m.RetrievePriceFunc != nil {
		return m.RetrievePriceFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prices[id]
	if !ok {
		return nil, domainErrors.NotFound("stripe.price.retrieve", "No such price: '"+id+"'")
	}
	return p, nil
}

func (m *MockGateway) UpdatePrice(ctx context.Context, id string, params *stripe.PriceParams) (*stripe.Price, error) {
	m.record("UpdatePrice")
	if m.UpdatePriceFunc != nil {
		return m.UpdatePriceFunc(ctx, id, params)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prices[id]
	if !ok {
		return nil, domainErrors.NotFound("stripe.price.update", "No such price: '"+id+"'")
	}
	if params.Active != nil {
		p.Active = *params.Active
	}
	if params.Nickname != nil {
		p.Nickname = *params.Nickname
	}
	return p, nil
}

func (m *MockGateway) ListPrices(ctx context.Context, params *stripe.PriceListParams) ([]*stripe.Price, error) {
	m.record("ListPrices")
	if m.ListPricesFunc != nil {
		return m.ListPricesFunc(ctx, params)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*stripe.Price
	for _, p := range m.prices {
		if params.Product != nil && (p.Product == nil || p.Product.ID != *params.Product) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// --- Subscriptions ---

func (m *MockGateway) CreateSubscription(ctx context.Context, params *stripe.SubscriptionParams) (*stripe.Subscription, error) {
	m.record("CreateSubscription")
	if m.CreateSubscriptionFunc != nil {
		return m.CreateSubscriptionFunc(ctx, params)
	}
	sub := &stripe.Subscription{ID: NewID("sub"), Status: stripe.SubscriptionStatusActive}
	if params.Customer != nil {
		sub.Customer = &stripe.Customer{ID: *params.Customer}
	}
	if params.Currency != nil {
		sub.Currency = stripe.Currency(*params.Currency)
	}
	if len(params.Items) > 0 {
		sub.Items = &stripe.SubscriptionItemList{}
		for _, item := range params.Items {
			si := &stripe.SubscriptionItem{}
			if item.Price != nil {
				si.Price = &stripe.Price{ID: *item.Price}
			}
			if item.Quantity != nil {
				si.Quantity = *item.Quantity
			}
			sub.Items.Data = append(sub.Items.Data, si)
		}
	}
	m.mu.Lock()
	m.subscriptions[sub.ID] = sub
	m.mu.Unlock()
	return sub, nil
}

func (m *MockGateway) RetrieveSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	m.record("RetrieveSubscription")
	if m.RetrieveSubscriptionFunc != nil {
		return m.RetrieveSubscriptionFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subscriptions[id]
	if !ok {
		return nil, domainErrors.NotFound("stripe.subscription.retrieve", "No such subscription: '"+id+"'")
	}
	return sub, nil
}

func (m *MockGateway) UpdateSubscription(ctx context.Context, id string, params *stripe.SubscriptionParams) (*stripe.Subscription, error) {
	m.record("UpdateSubscription")
	if m.UpdateSubscriptionFunc != nil {
		return m.UpdateSubscriptionFunc(ctx, id, params)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subscriptions[id]
	if !ok {
		return nil, domainErrors.NotFound("stripe.subscription.update", "No such subscription: '"+id+"'")
	}
	if params.Description != nil {
		sub.Description = *params.Description
	}
	if params.CancelAtPeriodEnd != nil {
		sub.CancelAtPeriodEnd = *params.CancelAtPeriodEnd
	}
	return sub, nil
}

func (m *MockGateway) CancelSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	m.record("CancelSubscription")
	if m.CancelSubscriptionFunc != nil {
		return m.CancelSubscriptionFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subscriptions[id]
	if !ok {
		return nil, domainErrors.NotFound("stripe.subscription.cancel", "No such subscription: '"+id+"'")
	}
	sub.Status = stripe.SubscriptionStatusCanceled
	return sub, nil
}

func (m *MockGateway) ListSubscriptions(ctx context.Context, params *stripe.SubscriptionListParams) ([]*stripe.Subscription, error) {
	m.record("ListSubscriptions")
	if m.ListSubscriptionsFunc != nil {
		return m.ListSubscriptionsFunc(ctx, params)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*stripe.Subscription
	for _, sub := range m.subscriptions {
		if params.Customer != nil && (sub.Customer == nil || sub.Customer.ID != *params.Customer) {
			continue
		}
		out = append(out, sub)
	}
	return out, nil
}

// --- Payment intents ---

func (m *MockGateway) CreatePaymentIntent(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	m.record("CreatePaymentIntent")
	if m.CreatePaymentIntentFunc != nil {
		return m.CreatePaymentIntentFunc(ctx, params)
	}
	pi := &stripe.PaymentIntent{ID: NewID("pi"), Status: stripe.PaymentIntentStatusSucceeded}
	if params.Amount != nil {
		pi.Amount = *params.Amount
	}
	if params.Currency != nil {
		pi.Currency = stripe.Currency(*params.Currency)
	}
	if params.Customer != nil {
		pi.Customer = &stripe.Customer{ID: *params.Customer}
	}
	if params.PaymentMethod != nil {
		pi.PaymentMethod = &stripe.PaymentMethod{ID: *params.PaymentMethod}
	}
	m.mu.Lock()
	m.paymentIntents[pi.ID] = pi
	m.mu.Unlock()
	return pi, nil
}

func (m *MockGateway) RetrievePaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error) {
	m.record("RetrievePaymentIntent")
	if m.RetrievePaymentIntentFunc != nil {
		return m.RetrievePaymentIntentFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	pi, ok := m.paymentIntents[id]
	if !ok {
		return nil, domainErrors.NotFound("stripe.payment_intent.retrieve", "No such payment_intent: '"+id+"'")
	}
	return pi, nil
}

func (m *MockGateway) ListPaymentIntents(ctx context.Context, params *stripe.PaymentIntentListParams) ([]*stripe.PaymentIntent, error) {
	m.record("ListPaymentIntents")
	if m.ListPaymentIntentsFunc != nil {
		return m.ListPaymentIntentsFunc(ctx, params)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*stripe.PaymentIntent
	for _, pi := range m.paymentIntents {
		if params.Customer != nil && (pi.Customer == nil || pi.Customer.ID != *params.Customer) {
			continue
		}
		out = append(out, pi)
	}
	return out, nil
}

// --- Mirror publisher mock ---

// MockMirrorPublisher records published mirror events.
type MockMirrorPublisher struct {
	mu     sync.Mutex
	events []billing.MirrorEvent

	PublishMirrorEventFunc func(ctx context.Context, event billing.MirrorEvent) error
}

func NewMockMirrorPublisher() *MockMirrorPublisher {
	return &MockMirrorPublisher{}
}

func (m *MockMirrorPublisher) PublishMirrorEvent(ctx context.Context, event billing.MirrorEvent) error {
	if m.PublishMirrorEventFunc != nil {
		return m.PublishMirrorEventFunc(ctx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (m *MockMirrorPublisher) Events() []billing.MirrorEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]billing.MirrorEvent, len(m.events))
	copy(out, m.events)
	return out
}
