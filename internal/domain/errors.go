package domain

import "errors"

var (
	ErrDatesRequired         = errors.New("domain: check_in and check_out are required")
	ErrCheckOutBeforeCheckIn = errors.New("domain: check_out must be after check_in")
	ErrInvalidNights         = errors.New("domain: number of nights must be positive")
	ErrNegativeRate          = errors.New("domain: nightly rate must not be negative")

	ErrNotEnoughAdults = errors.New("domain: at least one adult is required")
	ErrNegativeGuests  = errors.New("domain: guest counts must not be negative")
	ErrTooManyGuests   = errors.New("domain: too many guests")

	// ErrIllegalTransition the booking state machine does not allow the requested change
	ErrIllegalTransition = errors.New("domain: illegal booking status transition")
)
