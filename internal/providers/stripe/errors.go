package stripe

import (
	"errors"
	"net/http"

	domainErrors "github.com/cassiomorais/stripe-integration/internal/domain/errors"
	"github.com/sony/gobreaker/v2"
	"github.com/stripe/stripe-go/v79"
)

// normalizeError translates SDK and breaker failures into the domain
// taxonomy. Provider messages are kept verbatim so callers see the
// upstream diagnostic, but the concrete SDK error never escapes.
func normalizeError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return domainErrors.Provider(op, "provider temporarily unavailable: circuit open")
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		msg := stripeErr.Msg
		if msg == "" {
			msg = string(stripeErr.Code)
		}
		if stripeErr.HTTPStatusCode == http.StatusNotFound || stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return domainErrors.NotFound(op, msg)
		}
		return domainErrors.Provider(op, msg)
	}

	return domainErrors.Provider(op, err.Error())
}
