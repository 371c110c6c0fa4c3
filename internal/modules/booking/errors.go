package booking

import "errors"

var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrListingInactive    = errors.New("listing is not active")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrNotBookingMaster   = errors.New("only the booking's professional can do this")
	ErrNotBookingClient   = errors.New("only the booking's client can do this")
	ErrInvalidTransition  = errors.New("invalid booking status transition")
	ErrAlreadyCancelled   = errors.New("booking is already cancelled")
	ErrNotCompleted       = errors.New("booking is not completed yet")
	ErrAlreadyConfirmed   = errors.New("completion already confirmed")
	ErrOwnListing         = errors.New("cannot book your own listing")
	ErrScheduleInPast     = errors.New("scheduled time is in the past")
	ErrCancelReasonNeeded = errors.New("a cancellation reason is required")
)
