package services

import (
	"errors"
	"fmt"
)

// ErrEmptyBasket is returned by Checkout when the user has no basket or the
// basket has no lines. Both cases are reported the same way.
var ErrEmptyBasket = errors.New("basket is empty")

// NotFoundError reports a missing referenced resource (product, size,
// basket line, favorite, order).
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// InvalidInputError reports missing or malformed input.
type InvalidInputError struct {
	Detail string
}

func (e *InvalidInputError) Error() string {
	return e.Detail
}

// InsufficientStockError aborts a checkout when a line asks for more than
// the stock row holds. The whole transaction rolls back.
type InsufficientStockError struct {
	Product   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s: available %d, requested %d",
		e.Product, e.Available, e.Requested)
}

// ProtectedError blocks deleting reference data that basket or order lines
// still point at.
type ProtectedError struct {
	Resource string
	Detail   string
}

func (e *ProtectedError) Error() string {
	return e.Resource + " cannot be deleted: " + e.Detail
}

// InvalidTransitionError reports a disallowed order status change.
type InvalidTransitionError struct {
	From, To string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change order status from %s to %s", e.From, e.To)
}
