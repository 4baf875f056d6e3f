/*
Package shared holds the building blocks common to every subdomain:
sentinel errors with lazy stack capture, the Money value object, domain
event contracts and the unit-of-work abstraction.

Error design:
1. Sentinel errors support errors.Is() checks without string matching.
2. DomainError captures the stack at creation time but formats it lazily.
3. Domain errors carry no transport concepts (no HTTP status codes).
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Sentinel errors. Subdomains wrap these so callers can classify a failure
// with errors.Is() regardless of which entity produced it.
var (
	// ErrNotFound a referenced entity is absent
	ErrNotFound = errors.New("not found")

	// ErrPreconditionFailed a business precondition was violated
	// (empty cart, payment already settled, order past the cancellable window)
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrInvalidState the operation is not permitted from the current state
	ErrInvalidState = errors.New("invalid state")

	// ErrConflict concurrent modification; the caller lost a status race
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput parameter validation failed
	ErrInvalidInput = errors.New("invalid input")
)

// DomainError is a structured error carrying business context and the stack
// of its creation point. It supports errors.Is() through Unwrap.
type DomainError struct {
	// Err is the underlying sentinel, used by errors.Is()
	Err error

	// Entity names the entity the error belongs to ("order", "cart", ...)
	Entity string

	// Message is the human readable description
	Message string

	// Field optionally names the offending field
	Field string

	// stack holds raw frames captured at creation, formatted on demand
	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured frames. Only called when a log line is emitted.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack captures the current call stack.
// skip is usually 3: runtime.Callers, CaptureStack, NewXxxError.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders raw frames, dropping runtime internals, at most 10 frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewNotFoundError creates a "not found" domain error.
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewPreconditionError creates a "precondition failed" domain error.
func NewPreconditionError(entity, message string) error {
	return &DomainError{
		Err:     ErrPreconditionFailed,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a "conflict" domain error.
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a "validation failed" domain error.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// Stacker is implemented by errors that carry a creation-point stack.
// The API layer uses it to log where an error was raised.
type Stacker interface {
	Stack() []string
}
