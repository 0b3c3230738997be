package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates that a debit would drive an account balance negative.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidAmount indicates a non-positive movement amount.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrInvalidRequest indicates a movement request that is missing a required
// account reference, or a transfer between identical accounts.
var ErrInvalidRequest = errors.New("invalid transaction request")

// ErrInvalidState indicates an operation not permitted for the resource's
// current status, e.g. deleting a completed transaction.
var ErrInvalidState = errors.New("operation not allowed in current state")

// AppError wraps a lower-level failure with a status code and message.
// Repositories use it for storage errors that have no sentinel mapping.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
