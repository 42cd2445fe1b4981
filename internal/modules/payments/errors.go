package payments

import "errors"

var (
	ErrUnknownMethod  = errors.New("unknown payment method")
	ErrNotOffered     = errors.New("payment method not offered in this region")
	ErrNoSession      = errors.New("no pending payment session")
	ErrPaymentFailed  = errors.New("Payment failed")
	ErrPayPalFailed   = errors.New("PayPal payment failed. Please try again.")
	ErrNotCompleted   = errors.New("Payment was not completed successfully")
	ErrGenericPayment = errors.New("An error occurred with the payment")
)
