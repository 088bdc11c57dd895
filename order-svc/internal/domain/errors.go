package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the services wraps exactly one of them.
var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrNotFound                = errors.New("not found")
	ErrConflict                = errors.New("conflict")
	ErrPersistence             = errors.New("persistence failure")
	ErrCustomizationIncomplete = errors.New("required customization not selected")
	ErrUnauthorized            = errors.New("unauthorized")
)

var (
	ErrEmptyCart           = fmt.Errorf("%w: cart is empty", ErrInvalidInput)
	ErrInvalidPriceInput   = fmt.Errorf("%w: price must be a finite number", ErrInvalidInput)
	ErrInvalidTransition   = fmt.Errorf("%w: status transition not allowed", ErrConflict)
	ErrTableInactive       = fmt.Errorf("%w: table is not active", ErrInvalidInput)
	ErrOrderCreationFailed = fmt.Errorf("%w: order creation failed", ErrPersistence)
)

func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func NotFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}
