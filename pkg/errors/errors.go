// Package errors defines application-level error codes and the mapping
// from domain errors to them. Codes are stable strings the calling layer
// can switch on; HTTP status mapping lives in the API layer only.
package errors

import (
	"errors"
	"fmt"

	"takeout/domain/address"
	"takeout/domain/cart"
	"takeout/domain/order"
	"takeout/domain/payment"
	"takeout/domain/shared"
	"takeout/domain/user"
)

// ErrorCode is a stable, user-facing error identifier.
type ErrorCode string

const (
	// Generic codes
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest ErrorCode = "BAD_REQUEST"
	CodeNotFound   ErrorCode = "NOT_FOUND"
	CodeConflict   ErrorCode = "CONFLICT"
	CodeValidation ErrorCode = "VALIDATION_ERROR"

	// Order lifecycle codes
	CodeOrderNotFound       ErrorCode = "ORDER_NOT_FOUND"
	CodeAddressNotFound     ErrorCode = "ADDRESS_NOT_FOUND"
	CodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	CodeEmptyCart           ErrorCode = "EMPTY_CART"
	CodeAlreadyPaid         ErrorCode = "ALREADY_PAID"
	CodeOrderNotCancellable ErrorCode = "ORDER_NOT_CANCELLABLE"
	CodeInvalidOrderState   ErrorCode = "INVALID_ORDER_STATE"
)

// AppError carries a code, a user-visible message and the wrapped cause.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches a code and a message to an underlying error.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// BadRequest creates a BAD_REQUEST error.
func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

// Is checks whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromDomainError converts a domain error into an AppError with a stable
// code. Classification is by errors.Is on the subdomain sentinels first,
// then on the shared sentinels; anything unclassified is an internal error
// whose real message is logged but never shown to the caller.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return Wrap(err, CodeOrderNotFound, "order not found")
	case errors.Is(err, address.ErrAddressNotFound):
		return Wrap(err, CodeAddressNotFound, "address not found")
	case errors.Is(err, user.ErrUserNotFound):
		return Wrap(err, CodeUserNotFound, "user not found")
	case errors.Is(err, cart.ErrEmptyCart):
		return Wrap(err, CodeEmptyCart, "shopping cart is empty")
	case errors.Is(err, payment.ErrAlreadyPaid):
		return Wrap(err, CodeAlreadyPaid, "order has already been paid")
	case errors.Is(err, order.ErrOrderNotCancellable):
		return Wrap(err, CodeOrderNotCancellable, "order can no longer be cancelled")
	case errors.Is(err, order.ErrOrderStatusInvalid):
		return Wrap(err, CodeInvalidOrderState, "order status does not permit this operation")
	case errors.Is(err, order.ErrStaleOrder), errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, "the order was modified concurrently, please retry")
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, shared.ErrPreconditionFailed):
		return Wrap(err, CodeBadRequest, err.Error())
	case errors.Is(err, shared.ErrInvalidState):
		return Wrap(err, CodeInvalidOrderState, err.Error())
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}
