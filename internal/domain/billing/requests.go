package billing

// Request DTOs consumed by the orchestration layer. Controllers decode
// and validate these; orchestration assumes they passed validation.
// Pointer fields mean "not supplied": the mapper omits them from provider
// parameters instead of sending explicit nulls.

// ListPage carries the provider's cursor pagination contract. The cursors
// are opaque and mutually exclusive; the provider enforces exclusivity,
// the adapter just forwards whatever was supplied.
type ListPage struct {
	Limit         *int64  `json:"limit,omitempty"`
	StartingAfter *string `json:"starting_after,omitempty"`
	EndingBefore  *string `json:"ending_before,omitempty"`
}

type CreateCustomerRequest struct {
	Email string  `json:"email" validate:"required,email"`
	Name  string  `json:"name" validate:"required"`
	Phone *string `json:"phone,omitempty"`
}

type UpdateCustomerRequest struct {
	ID    string  `json:"-"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type CreatePaymentMethodRequest struct {
	CustomerID string   `json:"customer_id" validate:"required"`
	CardNumber string   `json:"card_number" validate:"required,credit_card"`
	ExpMonth   int64    `json:"exp_month" validate:"required,min=1,max=12"`
	ExpYear    int64    `json:"exp_year" validate:"required,min=2000"`
	CVC        string   `json:"cvc" validate:"required,len=3"`
	Address    *Address `json:"address,omitempty"`
}

type UpdatePaymentMethodRequest struct {
	ID       string   `json:"-"`
	ExpMonth *int64   `json:"exp_month,omitempty" validate:"omitempty,min=1,max=12"`
	ExpYear  *int64   `json:"exp_year,omitempty" validate:"omitempty,min=2000"`
	Address  *Address `json:"address,omitempty"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
	Shippable   *bool   `json:"shippable,omitempty"`
}

type UpdateProductRequest struct {
	ID             string   `json:"-"`
	Name           *string  `json:"name,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Active         *bool    `json:"active,omitempty"`
	Shippable      *bool    `json:"shippable,omitempty"`
	Images         []string `json:"images,omitempty"`
	DefaultPriceID *string  `json:"default_price_id,omitempty"`
}

type ListProductsRequest struct {
	Active    *bool `json:"active,omitempty"`
	Shippable *bool `json:"shippable,omitempty"`
	ListPage
}

type RecurringParams struct {
	Interval      string `json:"interval" validate:"required,oneof=day week month year"`
	IntervalCount int64  `json:"interval_count" validate:"required,gt=0"`
	UsageType     string `json:"usage_type" validate:"required,oneof=licensed metered"`
}

type CreatePriceRequest struct {
	ProductID  string           `json:"product_id" validate:"required"`
	Currency   string           `json:"currency" validate:"required,len=3"`
	UnitAmount int64            `json:"unit_amount" validate:"required,gt=0"`
	Nickname   *string          `json:"nickname,omitempty"`
	Active     *bool            `json:"active,omitempty"`
	Recurring  *RecurringParams `json:"recurring,omitempty"`
}

// UpdatePriceRequest covers the only mutable price fields. Currency and
// unit amount are immutable on the provider side.
type UpdatePriceRequest struct {
	ID       string  `json:"-"`
	Active   *bool   `json:"active,omitempty"`
	Nickname *string `json:"nickname,omitempty"`
}

type ListPricesRequest struct {
	ProductID string  `json:"product_id,omitempty"`
	Active    *bool   `json:"active,omitempty"`
	Type      *string `json:"type,omitempty" validate:"omitempty,oneof=one_time recurring"`
	ListPage
}

type CreateSubscriptionRequest struct {
	CustomerID             string             `json:"customer_id" validate:"required"`
	Currency               *string            `json:"currency,omitempty" validate:"omitempty,len=3"`
	Description            *string            `json:"description,omitempty"`
	Items                  []SubscriptionItem `json:"items" validate:"required,min=1,dive"`
	CancelAt               *int64             `json:"cancel_at,omitempty"`
	CancelAtPeriodEnd      *bool              `json:"cancel_at_period_end,omitempty"`
	DefaultPaymentMethodID *string            `json:"default_payment_method_id,omitempty"`
}

// UpdateSubscriptionRequest replaces the item set when Items is non-empty.
type UpdateSubscriptionRequest struct {
	ID                     string             `json:"-"`
	Description            *string            `json:"description,omitempty"`
	Items                  []SubscriptionItem `json:"items,omitempty" validate:"omitempty,dive"`
	CancelAt               *int64             `json:"cancel_at,omitempty"`
	CancelAtPeriodEnd      *bool              `json:"cancel_at_period_end,omitempty"`
	DefaultPaymentMethodID *string            `json:"default_payment_method_id,omitempty"`
}

type ListSubscriptionsRequest struct {
	CustomerID string  `json:"customer_id" validate:"required"`
	Status     *string `json:"status,omitempty"`
	ListPage
}

type CreatePaymentIntentRequest struct {
	CustomerID string `json:"-"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	Currency   string `json:"currency" validate:"required,len=3"`
}
