package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals an order lookup miss at the use-case boundary.
	ErrNotFound = errors.New("order_not_found")
	// ErrInvalidID signals an order id that cannot be parsed.
	ErrInvalidID = errors.New("invalid_order_id")
	// ErrReferenceConflict surfaces the orders table's reference_number
	// uniqueness constraint. The reference generator is time+rand, not
	// collision-proof; the constraint is the backstop.
	ErrReferenceConflict = errors.New("reference_number_conflict")
	// ErrUpdateConflict means a concurrent transition won the conditional
	// update for the same order id.
	ErrUpdateConflict = errors.New("order_update_conflict")
)

// ProductNotFoundError reports an order line whose product id resolved to
// nothing in the catalog.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// ProductUnavailableError reports an order line on a product that exists
// but is no longer purchasable.
type ProductUnavailableError struct {
	ProductID string
	Name      string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %s (%s) is not available", e.Name, e.ProductID)
}

// InvalidQuantityError reports an order line whose quantity is not an
// integer between MinQuantity and MaxQuantity.
type InvalidQuantityError struct {
	ProductID string
	Quantity  string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %q for product %s: must be an integer between %d and %d",
		e.Quantity, e.ProductID, MinQuantity, MaxQuantity)
}

// Transition kinds named by InvalidTransitionError.
const (
	TransitionKindStatus  = "status"
	TransitionKindPayment = "payment_status"
)

// InvalidTransitionError reports a state-machine transition the guard
// rejected, naming the current and requested states.
type InvalidTransitionError struct {
	Kind string
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s transition from %s to %s", e.Kind, e.From, e.To)
}
