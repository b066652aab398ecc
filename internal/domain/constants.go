package domain

import "github.com/shopspring/decimal"

// TaxRate applied to every stay subtotal
var TaxRate = decimal.RequireFromString("0.18")

// MoneyPlaces number of decimal places of monetary amounts
const MoneyPlaces int32 = 2

// Occupancy limits
const (
	MinAdults = 1
	MaxGuests = 16
)

// OccupyingStatuses booking statuses that block a listing for their dates
// Cancelled bookings never block availability
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// DefaultPaymentMethod method of the draft payment created with a booking
const DefaultPaymentMethod = PaymentMethodCard
