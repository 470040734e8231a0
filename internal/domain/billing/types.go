package billing

// Mirror DTOs of provider resources. Identity is always provider-assigned;
// this package never invents IDs. Optional fields are pointers so partial
// updates can distinguish "absent" from "zero".

// Customer mirrors the provider customer resource.
type Customer struct {
	ID                     string  `json:"id"`
	Email                  string  `json:"email"`
	Name                   string  `json:"name"`
	Phone                  *string `json:"phone"`
	DefaultPaymentMethodID *string `json:"default_payment_method_id,omitempty"`
}

// Address is the billing address sub-object.
type Address struct {
	City       *string `json:"city,omitempty"`
	Country    *string `json:"country,omitempty"`
	State      *string `json:"state,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
}

// BillingDetails groups the contact information attached to a payment method.
type BillingDetails struct {
	Address *Address `json:"address,omitempty"`
	Email   *string  `json:"email,omitempty"`
	Name    *string  `json:"name,omitempty"`
	Phone   *string  `json:"phone,omitempty"`
}

// Card holds the non-sensitive card attributes the provider exposes.
type Card struct {
	Brand    string `json:"brand"`
	Country  string `json:"country,omitempty"`
	ExpMonth int64  `json:"exp_month"`
	ExpYear  int64  `json:"exp_year"`
	Last4    string `json:"last4"`
	Funding  string `json:"funding,omitempty"`
}

// PaymentMethod mirrors the provider payment method resource.
type PaymentMethod struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customer_id"`
	Type           string          `json:"type"`
	BillingDetails *BillingDetails `json:"billing_details,omitempty"`
	Card           *Card           `json:"card,omitempty"`
}

// Product mirrors the provider product resource.
type Product struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    *string  `json:"description,omitempty"`
	Active         bool     `json:"active"`
	Shippable      bool     `json:"shippable"`
	DefaultPriceID *string  `json:"default_price_id,omitempty"`
	Images         []string `json:"images,omitempty"`
}

// Recurring describes the billing cadence of a recurring price.
type Recurring struct {
	Interval      string `json:"interval"`
	IntervalCount int64  `json:"interval_count"`
	UsageType     string `json:"usage_type"`
}

// Price mirrors the provider price resource. Currency and unit amount are
// immutable once created; only active and nickname accept updates.
type Price struct {
	ID         string     `json:"id"`
	ProductID  string     `json:"product_id"`
	Type       string     `json:"type"`
	Nickname   *string    `json:"nickname,omitempty"`
	Currency   string     `json:"currency"`
	Active     bool       `json:"active"`
	UnitAmount int64      `json:"unit_amount"`
	Recurring  *Recurring `json:"recurring,omitempty"`
}

// SubscriptionItem is one (price, quantity) entry of a subscription.
type SubscriptionItem struct {
	PriceID  string `json:"price_id" validate:"required"`
	Quantity int64  `json:"quantity" validate:"required,gt=0"`
}

// Subscription mirrors the provider subscription resource. Status is
// provider-owned; the adapter observes transitions but never makes them.
type Subscription struct {
	ID                     string             `json:"id"`
	CustomerID             string             `json:"customer_id"`
	Status                 string             `json:"status"`
	Currency               string             `json:"currency"`
	Description            *string            `json:"description,omitempty"`
	Items                  []SubscriptionItem `json:"items"`
	CancelAt               *int64             `json:"cancel_at,omitempty"`
	CancelAtPeriodEnd      bool               `json:"cancel_at_period_end"`
	CurrentPeriodStart     int64              `json:"current_period_start"`
	CurrentPeriodEnd       int64              `json:"current_period_end"`
	DefaultPaymentMethodID *string            `json:"default_payment_method_id,omitempty"`
}

// PaymentIntent mirrors the provider payment intent resource.
type PaymentIntent struct {
	ID              string `json:"id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Status          string `json:"status"`
	CustomerID      string `json:"customer_id"`
	PaymentMethodID string `json:"payment_method_id"`
}
