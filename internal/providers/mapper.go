package providers

import (
	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	"github.com/stripe/stripe-go/v79"
)

// Mapper functions are pure and total: DTO→params builders emit only the
// fields present in the request (absent fields are omitted, never sent as
// explicit nulls), and resource→DTO converters define a mapping for every
// provider field a DTO consumes, including nested sub-objects.

// --- Pagination ---

// applyListPage forwards the provider's cursor contract verbatim. Cursor
// mutual-exclusivity is the provider's to enforce, not ours. Single keeps
// the SDK iterator on one page: without it the iterator follows has_more
// and a bounded list turns into a full-collection walk.
func applyListPage(dst *stripe.ListParams, page billing.ListPage) {
	dst.Limit = page.Limit
	dst.StartingAfter = page.StartingAfter
	dst.EndingBefore = page.EndingBefore
	dst.Single = true
}

// --- Customer ---

func CustomerCreateParams(req billing.CreateCustomerRequest) *stripe.CustomerParams {
	params := &stripe.CustomerParams{
		Email: stripe.String(req.Email),
		Name:  stripe.String(req.Name),
	}
	if req.Phone != nil {
		params.Phone = req.Phone
	}
	return params
}

func CustomerUpdateParams(req billing.UpdateCustomerRequest) *stripe.CustomerParams {
	params := &stripe.CustomerParams{}
	params.Email = req.Email
	params.Name = req.Name
	params.Phone = req.Phone
	return params
}

// DefaultPaymentMethodParams builds the invoice-settings update that makes
// the given payment method the customer's default.
func DefaultPaymentMethodParams(paymentMethodID string) *stripe.CustomerParams {
	return &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(paymentMethodID),
		},
	}
}

func CustomerListParams(page billing.ListPage) *stripe.CustomerListParams {
	params := &stripe.CustomerListParams{}
	applyListPage(&params.ListParams, page)
	return params
}

func CustomerFromResource(c *stripe.Customer) billing.Customer {
	dto := billing.Customer{
		ID:    c.ID,
		Email: c.Email,
		Name:  c.Name,
	}
	if c.Phone != "" {
		dto.Phone = stripe.String(c.Phone)
	}
	if pm := defaultPaymentMethodID(c); pm != "" {
		dto.DefaultPaymentMethodID = stripe.String(pm)
	}
	return dto
}

// defaultPaymentMethodID digs the default payment method id out of the
// customer's invoice settings; empty when none is configured.
func defaultPaymentMethodID(c *stripe.Customer) string {
	if c.InvoiceSettings == nil || c.InvoiceSettings.DefaultPaymentMethod == nil {
		return ""
	}
	return c.InvoiceSettings.DefaultPaymentMethod.ID
}

// --- Payment method ---

// PaymentMethodCreateParams builds card creation parameters. Contact
// fields come from the owning customer's profile, the address from the
// request; a nil address yields no address sub-object at all.
func PaymentMethodCreateParams(owner billing.Customer, req billing.CreatePaymentMethodRequest) *stripe.PaymentMethodParams {
	params := &stripe.PaymentMethodParams{
		Type: stripe.String("card"),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(req.CardNumber),
			ExpMonth: stripe.Int64(req.ExpMonth),
			ExpYear:  stripe.Int64(req.ExpYear),
			CVC:      stripe.String(req.CVC),
		},
		BillingDetails: &stripe.PaymentMethodBillingDetailsParams{
			Email: stripe.String(owner.Email),
			Name:  stripe.String(owner.Name),
			Phone: owner.Phone,
		},
	}
	if req.Address != nil {
		params.BillingDetails.Address = addressParams(req.Address)
	}
	return params
}

func PaymentMethodUpdateParams(req billing.UpdatePaymentMethodRequest) *stripe.PaymentMethodParams {
	params := &stripe.PaymentMethodParams{}
	if req.ExpMonth != nil || req.ExpYear != nil {
		params.Card = &stripe.PaymentMethodCardParams{
			ExpMonth: req.ExpMonth,
			ExpYear:  req.ExpYear,
		}
	}
	if req.Address != nil {
		params.BillingDetails = &stripe.PaymentMethodBillingDetailsParams{
			Address: addressParams(req.Address),
		}
	}
	return params
}

func addressParams(a *billing.Address) *stripe.AddressParams {
	return &stripe.AddressParams{
		City:       a.City,
		Country:    a.Country,
		State:      a.State,
		PostalCode: a.PostalCode,
	}
}

func CustomerPaymentMethodListParams(customerID string, page billing.ListPage) *stripe.CustomerListPaymentMethodsParams {
	params := &stripe.CustomerListPaymentMethodsParams{
		Customer: stripe.String(customerID),
		Type:     stripe.String("card"),
	}
	applyListPage(&params.ListParams, page)
	return params
}

func PaymentMethodFromResource(pm *stripe.PaymentMethod) billing.PaymentMethod {
	dto := billing.PaymentMethod{
		ID:   pm.ID,
		Type: string(pm.Type),
	}
	if pm.Customer != nil {
		dto.CustomerID = pm.Customer.ID
	}
	if pm.BillingDetails != nil {
		dto.BillingDetails = billingDetailsFromResource(pm.BillingDetails)
	}
	if pm.Card != nil {
		dto.Card = &billing.Card{
			Brand:    string(pm.Card.Brand),
			Country:  pm.Card.Country,
			ExpMonth: pm.Card.ExpMonth,
			ExpYear:  pm.Card.ExpYear,
			Last4:    pm.Card.Last4,
			Funding:  string(pm.Card.Funding),
		}
	}
	return dto
}

func billingDetailsFromResource(bd *stripe.PaymentMethodBillingDetails) *billing.BillingDetails {
	dto := &billing.BillingDetails{}
	if bd.Email != "" {
		dto.Email = stripe.String(bd.Email)
	}
	if bd.Name != "" {
		dto.Name = stripe.String(bd.Name)
	}
	if bd.Phone != "" {
		dto.Phone = stripe.String(bd.Phone)
	}
	if bd.Address != nil {
		dto.Address = addressFromResource(bd.Address)
	}
	return dto
}

func addressFromResource(a *stripe.Address) *billing.Address {
	dto := &billing.Address{}
	if a.City != "" {
		dto.City = stripe.String(a.City)
	}
	if a.Country != "" {
		dto.Country = stripe.String(a.Country)
	}
	if a.State != "" {
		dto.State = stripe.String(a.State)
	}
	if a.PostalCode != "" {
		dto.PostalCode = stripe.String(a.PostalCode)
	}
	return dto
}

// --- Product ---

func ProductCreateParams(req billing.CreateProductRequest) *stripe.ProductParams {
	params := &stripe.ProductParams{
		Name: stripe.String(req.Name),
	}
	params.Description = req.Description
	params.Active = req.Active
	params.Shippable = req.Shippable
	return params
}

func ProductUpdateParams(req billing.UpdateProductRequest) *stripe.ProductParams {
	params := &stripe.ProductParams{}
	params.Name = req.Name
	params.Description = req.Description
	params.Active = req.Active
	params.Shippable = req.Shippable
	params.DefaultPrice = req.DefaultPriceID
	if len(req.Images) > 0 {
		params.Images = stripe.StringSlice(req.Images)
	}
	return params
}

func ProductListParams(req billing.ListProductsRequest) *stripe.ProductListParams {
	params := &stripe.ProductListParams{}
	params.Active = req.Active
	params.Shippable = req.Shippable
	applyListPage(&params.ListParams, req.ListPage)
	return params
}

func ProductFromResource(p *stripe.Product) billing.Product {
	dto := billing.Product{
		ID:        p.ID,
		Name:      p.Name,
		Active:    p.Active,
		Shippable: p.Shippable,
		Images:    p.Images,
	}
	if p.Description != "" {
		dto.Description = stripe.String(p.Description)
	}
	if p.DefaultPrice != nil {
		dto.DefaultPriceID = stripe.String(p.DefaultPrice.ID)
	}
	return dto
}

// --- Price ---

func PriceCreateParams(req billing.CreatePriceRequest) *stripe.PriceParams {
	params := &stripe.PriceParams{
		Product:    stripe.String(req.ProductID),
		Currency:   stripe.String(req.Currency),
		UnitAmount: stripe.Int64(req.UnitAmount),
	}
	params.Nickname = req.Nickname
	params.Active = req.Active
	if req.Recurring != nil {
		params.Recurring = &stripe.PriceRecurringParams{
			Interval:      stripe.String(req.Recurring.Interval),
			IntervalCount: stripe.Int64(req.Recurring.IntervalCount),
			UsageType:     stripe.String(req.Recurring.UsageType),
		}
	}
	return params
}

func PriceUpdateParams(req billing.UpdatePriceRequest) *stripe.PriceParams {
	params := &stripe.PriceParams{}
	params.Active = req.Active
	params.Nickname = req.Nickname
	return params
}

func PriceListParams(req billing.ListPricesRequest) *stripe.PriceListParams {
	params := &stripe.PriceListParams{}
	if req.ProductID != "" {
		params.Product = stripe.String(req.ProductID)
	}
	params.Active = req.Active
	params.Type = req.Type
	applyListPage(&params.ListParams, req.ListPage)
	return params
}

func PriceFromResource(p *stripe.Price) billing.Price {
	dto := billing.Price{
		ID:         p.ID,
		Type:       string(p.Type),
		Currency:   string(p.Currency),
		Active:     p.Active,
		UnitAmount: p.UnitAmount,
	}
	if p.Product != nil {
		dto.ProductID = p.Product.ID
	}
	if p.Nickname != "" {
		dto.Nickname = stripe.String(p.Nickname)
	}
	if p.Recurring != nil {
		dto.Recurring = &billing.Recurring{
			Interval:      string(p.Recurring.Interval),
			IntervalCount: p.Recurring.IntervalCount,
			UsageType:     string(p.Recurring.UsageType),
		}
	}
	return dto
}

// --- Subscription ---

func SubscriptionCreateParams(req billing.CreateSubscriptionRequest) *stripe.SubscriptionParams {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(req.CustomerID),
	}
	params.Currency = req.Currency
	params.Description = req.Description
	params.CancelAt = req.CancelAt
	params.CancelAtPeriodEnd = req.CancelAtPeriodEnd
	params.DefaultPaymentMethod = req.DefaultPaymentMethodID
	params.Items = subscriptionItemsParams(req.Items)
	return params
}

func SubscriptionUpdateParams(req billing.UpdateSubscriptionRequest) *stripe.SubscriptionParams {
	params := &stripe.SubscriptionParams{}
	params.Description = req.Description
	params.CancelAt = req.CancelAt
	params.CancelAtPeriodEnd = req.CancelAtPeriodEnd
	params.DefaultPaymentMethod = req.DefaultPaymentMethodID
	if len(req.Items) > 0 {
		params.Items = subscriptionItemsParams(req.Items)
	}
	return params
}

func subscriptionItemsParams(items []billing.SubscriptionItem) []*stripe.SubscriptionItemsParams {
	out := make([]*stripe.SubscriptionItemsParams, 0, len(items))
	for _, item := range items {
		out = append(out, &stripe.SubscriptionItemsParams{
			Price:    stripe.String(item.PriceID),
			Quantity: stripe.Int64(item.Quantity),
		})
	}
	return out
}

func SubscriptionListParams(req billing.ListSubscriptionsRequest) *stripe.SubscriptionListParams {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(req.CustomerID),
	}
	params.Status = req.Status
	applyListPage(&params.ListParams, req.ListPage)
	return params
}

func SubscriptionFromResource(s *stripe.Subscription) billing.Subscription {
	dto := billing.Subscription{
		ID:                 s.ID,
		Status:             string(s.Status),
		Currency:           string(s.Currency),
		CancelAtPeriodEnd:  s.CancelAtPeriodEnd,
		CurrentPeriodStart: s.CurrentPeriodStart,
		CurrentPeriodEnd:   s.CurrentPeriodEnd,
	}
	if s.Customer != nil {
		dto.CustomerID = s.Customer.ID
	}
	if s.Description != "" {
		dto.Description = stripe.String(s.Description)
	}
	if s.CancelAt != 0 {
		dto.CancelAt = stripe.Int64(s.CancelAt)
	}
	if s.DefaultPaymentMethod != nil {
		dto.DefaultPaymentMethodID = stripe.String(s.DefaultPaymentMethod.ID)
	}
	if s.Items != nil {
		dto.Items = make([]billing.SubscriptionItem, 0, len(s.Items.Data))
		for _, item := range s.Items.Data {
			entry := billing.SubscriptionItem{Quantity: item.Quantity}
			if item.Price != nil {
				entry.PriceID = item.Price.ID
			}
			dto.Items = append(dto.Items, entry)
		}
	}
	return dto
}

// --- Payment intent ---

// PaymentIntentCreateParams builds a confirmed intent against the
// customer's default payment method, resolved by the caller beforehand.
func PaymentIntentCreateParams(req billing.CreatePaymentIntentRequest, paymentMethodID string) *stripe.PaymentIntentParams {
	return &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.Amount),
		Currency:      stripe.String(req.Currency),
		Customer:      stripe.String(req.CustomerID),
		PaymentMethod: stripe.String(paymentMethodID),
		Confirm:       stripe.Bool(true),
	}
}

func PaymentIntentListParams(customerID string, page billing.ListPage) *stripe.PaymentIntentListParams {
	params := &stripe.PaymentIntentListParams{
		Customer: stripe.String(customerID),
	}
	applyListPage(&params.ListParams, page)
	return params
}

func PaymentIntentFromResource(pi *stripe.PaymentIntent) billing.PaymentIntent {
	dto := billing.PaymentIntent{
		ID:       pi.ID,
		Amount:   pi.Amount,
		Currency: string(pi.Currency),
		Status:   string(pi.Status),
	}
	if pi.Customer != nil {
		dto.CustomerID = pi.Customer.ID
	}
	if pi.PaymentMethod != nil {
		dto.PaymentMethodID = pi.PaymentMethod.ID
	}
	return dto
}
