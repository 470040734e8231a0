package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationError_IsMatchesKind(t *testing.T) {
	err := NotFound("customer.get", "No such customer")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrOwnershipMismatch)
}

func TestOperationError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handling request: %w", PreconditionFailed("payment_intent.create", "no default payment method"))

	assert.ErrorIs(t, err, ErrPreconditionFailed)

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "payment_intent.create", opErr.Op)
}

func TestWithOp_RestampsOperation(t *testing.T) {
	gatewayErr := NotFound("stripe.customer.retrieve", "No such customer: 'cus_1'")

	err := WithOp("payment_method.create", gatewayErr)

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "payment_method.create", opErr.Op)
	assert.Equal(t, "No such customer: 'cus_1'", opErr.Message)
	// The kind is preserved across the re-stamp.
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWithOp_ForeignErrorBecomesProvider(t *testing.T) {
	err := WithOp("customer.list", errors.New("dial tcp: timeout"))

	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Contains(t, err.Error(), "dial tcp: timeout")
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("email", "required")

	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "email")
}

func TestOperationError_Format(t *testing.T) {
	err := OwnershipMismatch("payment_method.get", "pm_1 does not belong to cus_2")
	assert.Equal(t, "payment_method.get: pm_1 does not belong to cus_2", err.Error())
}
