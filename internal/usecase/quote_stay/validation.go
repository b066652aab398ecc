package quote_stay

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StayService/internal/domain"
	"github.com/m04kA/SMC-StayService/pkg/types"
)

// validateRequest валидирует входные данные и возвращает интервал проживания
func validateRequest(req *Request, today types.Date) (domain.Stay, error) {
	if req.ListingID <= 0 {
		return domain.Stay{}, fmt.Errorf("%w: listing id must be positive", ErrInvalidInput)
	}

	stay, err := domain.NewStay(req.CheckIn, req.CheckOut)
	if err != nil {
		if errors.Is(err, domain.ErrCheckOutBeforeCheckIn) {
			return domain.Stay{}, ErrInvalidDates
		}
		return domain.Stay{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if stay.StartsBefore(today) {
		return domain.Stay{}, ErrCheckInInPast
	}

	return stay, nil
}
