package cart

import "errors"

var (
	ErrNoCart             = errors.New("No existing cart found, please create one before updating")
	ErrMissingVariant     = errors.New("Missing variant ID when adding to cart")
	ErrMissingLineItem    = errors.New("Missing lineItem ID when updating line item")
	ErrMissingShipping    = errors.New("Missing cart or shipping option ID")
	ErrInvalidCountryCode = errors.New("Invalid country code")
	ErrInvalidEmail       = errors.New("Invalid email")
	ErrRegionNotFound     = errors.New("Region not found")
)

// ShippingError carries the user-facing reason a shipping method was rejected.
type ShippingError struct {
	Message string
	Err     error
}

func (e *ShippingError) Error() string { return e.Message }
func (e *ShippingError) Unwrap() error { return e.Err }

// OrderError is returned when completing the cart did not produce an order,
// typically because the payment is not authorized yet.
type OrderError struct {
	Message string
}

func (e *OrderError) Error() string {
	if e.Message == "" {
		return "Payment was not completed successfully"
	}
	return e.Message
}
