package domain

import "github.com/m04kA/SMC-StayService/pkg/types"

// Stay half-open date interval [CheckIn, CheckOut)
type Stay struct {
	CheckIn  types.Date
	CheckOut types.Date
}

// NewStay builds a stay and checks that check-out is after check-in
func NewStay(checkIn, checkOut types.Date) (Stay, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return Stay{}, ErrDatesRequired
	}
	if !checkOut.After(checkIn) {
		return Stay{}, ErrCheckOutBeforeCheckIn
	}
	return Stay{CheckIn: checkIn, CheckOut: checkOut}, nil
}

// Nights number of nights between check-in and check-out
func (s Stay) Nights() int {
	return s.CheckIn.DaysUntil(s.CheckOut)
}

// Overlaps reports whether two stays share at least one night.
// Back-to-back stays (one checks out the day the other checks in) do not overlap.
func (s Stay) Overlaps(other Stay) bool {
	return other.CheckIn.Before(s.CheckOut) && other.CheckOut.After(s.CheckIn)
}

// StartsBefore returns true if the stay begins strictly before the given day
func (s Stay) StartsBefore(day types.Date) bool {
	return s.CheckIn.Before(day)
}
