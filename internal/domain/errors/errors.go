package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrForbidden          = errors.New("forbidden")

	ErrNoSession          = errors.New("no active checkout session")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrScheduleMissing    = errors.New("restaurant fee schedule not loaded")
	ErrAddressMissing     = errors.New("delivery address not selected")
	ErrPaymentMissing     = errors.New("payment method not selected")
	ErrInvalidLineItem    = errors.New("invalid line item index")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidPayment     = errors.New("invalid payment method")
	ErrInvalidAddress     = errors.New("invalid delivery address")
	ErrItemUnavailable    = errors.New("menu item unavailable")
	ErrRestaurantClosed   = errors.New("restaurant is not accepting orders")
	ErrOrderInProgress    = errors.New("order submission already in progress")
	ErrBackendUnavailable = errors.New("backend unavailable, please retry")

	ErrUnknownStatus        = errors.New("unknown order status")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	ErrStatusConflict       = errors.New("order status changed concurrently")

	ErrSearchSuperseded = errors.New("search superseded by a newer request")
)

// BelowMinimumError reports a cart whose subtotal does not reach the restaurant minimum.
type BelowMinimumError struct {
	// Shortfall is expressed in minor currency units.
	Shortfall int64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("order below restaurant minimum by %d.%02d", e.Shortfall/100, e.Shortfall%100)
}
