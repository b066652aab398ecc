package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StayService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// bookingTransitions legal status changes; terminal statuses have no entry
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

// IsValid returns true for the four known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal returns true if no transition leaves the status
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransitionTo reports whether s → next is a legal transition.
// Staying in the same status is not a transition.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return slices.Contains(bookingTransitions[s], next)
}

// Occupies returns true if a booking in this status blocks the listing for its dates
func (s BookingStatus) Occupies() bool {
	return slices.Contains(OccupyingStatuses, s)
}

// Booking represents a stay reservation of a listing
type Booking struct {
	ID        int64
	ListingID int64
	UserID    int64

	CheckIn  types.Date
	CheckOut types.Date

	Adults   int
	Children int
	Infants  int

	// TotalPrice pre-tax subtotal, frozen at booking time
	TotalPrice decimal.Decimal
	Status     BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stay returns the booked interval
func (b *Booking) Stay() Stay {
	return Stay{CheckIn: b.CheckIn, CheckOut: b.CheckOut}
}

// Nights returns the number of nights of the stay
func (b *Booking) Nights() int {
	return b.Stay().Nights()
}

// TaxAmount returns tax on the stored subtotal rounded to cents
func (b *Booking) TaxAmount() decimal.Decimal {
	return TaxFor(b.TotalPrice)
}

// GrandTotal returns subtotal plus tax
func (b *Booking) GrandTotal() decimal.Decimal {
	return b.TotalPrice.Add(b.TaxAmount())
}

// IsOwnedBy returns true if the booking was made by the user
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.UserID == userID
}

// CanBeCancelledOn returns true if the cancel guard allows cancelling on the given day.
// Cancellation is only possible strictly before check-in, regardless of status.
func (b *Booking) CanBeCancelledOn(today types.Date) bool {
	return today.Before(b.CheckIn)
}

// BookingChanges fields of a booking that may be edited after creation.
// Nil means "keep the current value".
type BookingChanges struct {
	CheckIn  *types.Date
	CheckOut *types.Date
	Adults   *int
	Children *int
	Infants  *int
}

// HasDateChanges returns true if either date is being edited
func (c BookingChanges) HasDateChanges() bool {
	return c.CheckIn != nil || c.CheckOut != nil
}

// HasOccupancyChanges returns true if any guest count is being edited
func (c BookingChanges) HasOccupancyChanges() bool {
	return c.Adults != nil || c.Children != nil || c.Infants != nil
}

// DiffFrom drops fields equal to the booking's current values,
// so re-sending a stored date or guest count is not an edit
func (c BookingChanges) DiffFrom(b *Booking) BookingChanges {
	if c.CheckIn != nil && c.CheckIn.Equal(b.CheckIn) {
		c.CheckIn = nil
	}
	if c.CheckOut != nil && c.CheckOut.Equal(b.CheckOut) {
		c.CheckOut = nil
	}
	if c.Adults != nil && *c.Adults == b.Adults {
		c.Adults = nil
	}
	if c.Children != nil && *c.Children == b.Children {
		c.Children = nil
	}
	if c.Infants != nil && *c.Infants == b.Infants {
		c.Infants = nil
	}
	return c
}

// IsEmpty returns true if nothing is being edited
func (c BookingChanges) IsEmpty() bool {
	return !c.HasDateChanges() && !c.HasOccupancyChanges()
}

// ListRole selects which bookings ListBookings returns
type ListRole string

const (
	// ListRoleGuest bookings made by the caller
	ListRoleGuest ListRole = "guest"
	// ListRoleHost bookings on listings hosted by the caller
	ListRoleHost ListRole = "host"
)
