package stripe

import (
	"errors"
	"testing"

	domainErrors "github.com/cassiomorais/stripe-integration/internal/domain/errors"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
)

func TestNormalizeError_Nil(t *testing.T) {
	assert.NoError(t, normalizeError("stripe.customer.retrieve", nil))
}

func TestNormalizeError_404BecomesNotFound(t *testing.T) {
	err := normalizeError("stripe.customer.retrieve", &stripe.Error{
		HTTPStatusCode: 404,
		Msg:            "No such customer: 'cus_missing'",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	var opErr *domainErrors.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "No such customer: 'cus_missing'", opErr.Message)
	assert.Equal(t, "stripe.customer.retrieve", opErr.Op)
}

func TestNormalizeError_ResourceMissingCode(t *testing.T) {
	err := normalizeError("stripe.payment_method.retrieve", &stripe.Error{
		HTTPStatusCode: 400,
		Code:           stripe.ErrorCodeResourceMissing,
		Msg:            "No such payment method",
	})

	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestNormalizeError_ProviderFailurePreservesMessage(t *testing.T) {
	err := normalizeError("stripe.payment_intent.create", &stripe.Error{
		HTTPStatusCode: 402,
		Code:           stripe.ErrorCodeCardDeclined,
		Msg:            "Your card was declined.",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrProviderUnavailable)
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestNormalizeError_EmptyMessageFallsBackToCode(t *testing.T) {
	err := normalizeError("stripe.customer.create", &stripe.Error{
		HTTPStatusCode: 500,
		Code:           stripe.ErrorCodeProcessingError,
	})

	assert.Contains(t, err.Error(), string(stripe.ErrorCodeProcessingError))
}

func TestNormalizeError_BreakerOpen(t *testing.T) {
	for _, breakerErr := range []error{gobreaker.ErrOpenState, gobreaker.ErrTooManyRequests} {
		err := normalizeError("stripe.customer.retrieve", breakerErr)
		assert.ErrorIs(t, err, domainErrors.ErrProviderUnavailable)
	}
}

func TestNormalizeError_UnknownErrorBecomesProvider(t *testing.T) {
	err := normalizeError("stripe.product.list", errors.New("connection reset"))

	assert.ErrorIs(t, err, domainErrors.ErrProviderUnavailable)
	assert.Contains(t, err.Error(), "connection reset")
}
