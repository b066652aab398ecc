package update_booking

import (
	"errors"

	"github.com/m04kA/SMC-StayService/internal/domain"
	paymentModels "github.com/m04kA/SMC-StayService/internal/service/payments/models"
	updateBooking "github.com/m04kA/SMC-StayService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-StayService/pkg/types"
)

var errInvalidDate = errors.New("date has wrong format")

// UpdateBookingRequest HTTP request model. Все поля необязательные, отсутствующее поле не меняется.
type UpdateBookingRequest struct {
	Listing   *int64  `json:"listing"`
	ListingID *int64  `json:"listing_id"`
	CheckIn   *string `json:"check_in"`
	CheckOut  *string `json:"check_out"`
	Adult     *int    `json:"adult"`
	Adults    *int    `json:"adults"`
	Children  *int    `json:"children"`
	Infant    *int    `json:"infant"`
	Infants   *int    `json:"infants"`

	Payment *paymentModels.UpdatePaymentRequest `json:"payment"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID int64, actor domain.Identity) (*updateBooking.Request, error) {
	changes := domain.BookingChanges{
		Adults:   firstOf(r.Adult, r.Adults),
		Children: r.Children,
		Infants:  firstOf(r.Infant, r.Infants),
	}

	if r.CheckIn != nil {
		d, err := types.ParseDate(*r.CheckIn)
		if err != nil {
			return nil, errInvalidDate
		}
		changes.CheckIn = &d
	}
	if r.CheckOut != nil {
		d, err := types.ParseDate(*r.CheckOut)
		if err != nil {
			return nil, errInvalidDate
		}
		changes.CheckOut = &d
	}

	return &updateBooking.Request{
		BookingID: bookingID,
		Actor:     actor,
		ListingID: firstOf(r.Listing, r.ListingID),
		Changes:   changes,
		Payment:   r.Payment,
	}, nil
}

func firstOf[T any](values ...*T) *T {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
