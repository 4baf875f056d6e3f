package errors

import (
	stdErrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"takeout/domain/cart"
	"takeout/domain/order"
	"takeout/domain/shared"
)

func TestFromDomainErrorClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code ErrorCode
	}{
		{"order not found", order.NewNotFoundError("abc"), CodeOrderNotFound},
		{"not cancellable", order.NewNotCancellableError("abc", order.StatusConfirmed), CodeOrderNotCancellable},
		{"invalid transition", order.NewStatusInvalidError("abc", order.StatusPendingPayment, order.StatusCompleted), CodeInvalidOrderState},
		{"stale order", order.NewStaleOrderError("abc"), CodeConflict},
		{"empty cart", cart.NewEmptyCartError("user-1"), CodeEmptyCart},
		{"unclassified", stdErrors.New("boom"), CodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := FromDomainError(tc.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tc.code, appErr.Code)
		})
	}
}

func TestFromDomainErrorPassesThroughAppError(t *testing.T) {
	original := New(CodeBadRequest, "bad input")
	assert.Same(t, original, FromDomainError(original))
}

func TestFromDomainErrorNil(t *testing.T) {
	assert.Nil(t, FromDomainError(nil))
}

func TestInternalMessageIsOpaque(t *testing.T) {
	appErr := FromDomainError(stdErrors.New("password=hunter2 leaked"))
	assert.Equal(t, "internal server error", appErr.Message)
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := order.NewStaleOrderError("abc")
	appErr := FromDomainError(cause)

	assert.ErrorIs(t, appErr, order.ErrStaleOrder)
	assert.ErrorIs(t, appErr, shared.ErrConflict)
}

func TestIs(t *testing.T) {
	err := New(CodeEmptyCart, "empty")
	assert.True(t, Is(err, CodeEmptyCart))
	assert.False(t, Is(err, CodeConflict))
	assert.False(t, Is(stdErrors.New("plain"), CodeEmptyCart))
}
