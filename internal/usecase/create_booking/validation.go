package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StayService/internal/domain"
	"github.com/m04kA/SMC-StayService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ListingID <= 0 {
		return fmt.Errorf("%w: listing is required", ErrInvalidInput)
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return fmt.Errorf("%w: check_in and check_out are required", ErrInvalidInput)
	}

	return nil
}

// validateStay проверяет даты проживания относительно сегодняшнего дня
// Дата заезда сегодня допустима, вчера - уже нет
func validateStay(checkIn, checkOut, today types.Date) (domain.Stay, error) {
	if checkIn.Before(today) {
		return domain.Stay{}, ErrCheckInInPast
	}

	stay, err := domain.NewStay(checkIn, checkOut)
	if err != nil {
		if errors.Is(err, domain.ErrCheckOutBeforeCheckIn) {
			return domain.Stay{}, ErrInvalidDates
		}
		return domain.Stay{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return stay, nil
}

// validateOccupancy проверяет количество гостей
func validateOccupancy(req *Request) error {
	if err := domain.ValidateOccupancy(req.Adults, req.Children, req.Infants); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOccupancy, err)
	}
	return nil
}
