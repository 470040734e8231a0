package billing

import "encoding/json"

// Mirror event actions.
const (
	MirrorActionUpserted = "upserted"
	MirrorActionDeleted  = "deleted"
)

// Mirrored resource names, also used as metric and stream labels.
const (
	ResourceCustomer      = "customer"
	ResourcePaymentMethod = "payment_method"
	ResourceProduct       = "product"
	ResourcePrice         = "price"
	ResourceSubscription  = "subscription"
	ResourcePaymentIntent = "payment_intent"
)

// MirrorEvent describes a provider-side write to be reflected into the
// local read mirror. Delivery is best effort: the provider remains the
// source of truth and a lost event only leaves the mirror stale.
type MirrorEvent struct {
	Resource   string          `json:"resource"`
	Action     string          `json:"action"`
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt int64           `json:"occurred_at"`
}
