package domain

import "fmt"

// ValidateOccupancy checks guest counts of a booking
func ValidateOccupancy(adults, children, infants int) error {
	if children < 0 || infants < 0 {
		return ErrNegativeGuests
	}
	if adults < MinAdults {
		return ErrNotEnoughAdults
	}
	if total := adults + children + infants; total > MaxGuests {
		return fmt.Errorf("%w: %d, at most %d allowed", ErrTooManyGuests, total, MaxGuests)
	}
	return nil
}
