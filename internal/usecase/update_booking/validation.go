package update_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StayService/internal/domain"
	"github.com/m04kA/SMC-StayService/pkg/types"
)

// checkEditable проверяет права и допустимость изменений для текущего состояния бронирования
func checkEditable(booking *domain.Booking, req *Request, changes domain.BookingChanges) error {
	if !booking.IsOwnedBy(req.Actor.UserID) && !req.Actor.IsSuperuser() {
		return ErrAccessDenied
	}

	if req.ListingID != nil && *req.ListingID != booking.ListingID {
		return ErrListingImmutable
	}

	if !changes.IsEmpty() && booking.Status != domain.StatusPending {
		return fmt.Errorf("%w: booking is %s", ErrNotEditable, booking.Status)
	}

	return nil
}

// applyOccupancy применяет изменения количества гостей
func applyOccupancy(booking *domain.Booking, changes domain.BookingChanges) error {
	adults := booking.Adults
	if changes.Adults != nil {
		adults = *changes.Adults
	}
	children := booking.Children
	if changes.Children != nil {
		children = *changes.Children
	}
	infants := booking.Infants
	if changes.Infants != nil {
		infants = *changes.Infants
	}

	if err := domain.ValidateOccupancy(adults, children, infants); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOccupancy, err)
	}

	booking.Adults, booking.Children, booking.Infants = adults, children, infants
	return nil
}

// mergeStay возвращает новый интервал проживания с учетом изменений и проверяет его
func mergeStay(booking *domain.Booking, changes domain.BookingChanges, today types.Date) (domain.Stay, error) {
	checkIn := booking.CheckIn
	if changes.CheckIn != nil {
		checkIn = *changes.CheckIn
	}
	checkOut := booking.CheckOut
	if changes.CheckOut != nil {
		checkOut = *changes.CheckOut
	}

	if checkIn.Before(today) {
		return domain.Stay{}, ErrCheckInInPast
	}

	stay, err := domain.NewStay(checkIn, checkOut)
	if err != nil {
		if errors.Is(err, domain.ErrCheckOutBeforeCheckIn) {
			return domain.Stay{}, ErrInvalidDates
		}
		return domain.Stay{}, fmt.Errorf("%w: %v", ErrInvalidDates, err)
	}

	return stay, nil
}
