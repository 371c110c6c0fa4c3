package payment

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrBookingNotCompleted = errors.New("booking is not completed")
	ErrNotBookingClient    = errors.New("only the booking's client can do this")
	ErrNotConfirmed        = errors.New("booking completion has not been confirmed by the client")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentNotApproved  = errors.New("payment is not approved")
	ErrForbidden           = errors.New("forbidden")
)
