// Package errors defines the typed errors shared by the pricing core, the
// services and the API layer. Callers match them with errors.As.
package errors

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/storefront/internal/domain"
)

// ErrNotFound is returned when a resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when the caller could not be identified
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return "unauthorized: " + e.Message
}

// ErrForbidden is returned when an identified principal may not perform an action
type ErrForbidden struct {
	Action string
}

func (e *ErrForbidden) Error() string {
	return "forbidden: " + e.Action
}

// ErrConflict is returned when a compare-and-swap write lost a race
type ErrConflict struct {
	Resource string
	ID       string
}

func (e *ErrConflict) Error() string {
	return fmt.Sprintf("%s %s was modified concurrently", e.Resource, e.ID)
}

// ErrValidation reports an invalid input field
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ErrInvalidStateTransition is returned when an order status change is not allowed
type ErrInvalidStateTransition struct {
	From domain.OrderStatus
	To   domain.OrderStatus
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// ErrInvalidQuantity is returned for a non-positive line quantity
type ErrInvalidQuantity struct {
	Quantity int
}

func (e *ErrInvalidQuantity) Error() string {
	return fmt.Sprintf("invalid quantity %d: must be greater than zero", e.Quantity)
}

// ErrInvalidTierData is returned for malformed bulk pricing tiers
type ErrInvalidTierData struct {
	Index  int
	Reason string
}

func (e *ErrInvalidTierData) Error() string {
	return fmt.Sprintf("invalid bulk pricing tier %d: %s", e.Index, e.Reason)
}

// ErrInvalidRate is returned for a non-positive exchange rate
type ErrInvalidRate struct {
	Rate decimal.Decimal
}

func (e *ErrInvalidRate) Error() string {
	return fmt.Sprintf("invalid exchange rate %s: must be positive", e.Rate.String())
}

// ErrNoShippingAvailable is returned when no shipping method can serve a cart
type ErrNoShippingAvailable struct {
	CountryCode string
	MethodID    string
}

func (e *ErrNoShippingAvailable) Error() string {
	if e.MethodID != "" {
		return fmt.Sprintf("shipping method %s is not available to %s", e.MethodID, e.CountryCode)
	}
	return "no shipping available to " + e.CountryCode
}

// ErrOutOfStock is returned at checkout for a product that cannot be sold
type ErrOutOfStock struct {
	ProductID string
}

func (e *ErrOutOfStock) Error() string {
	return "product out of stock: " + e.ProductID
}
