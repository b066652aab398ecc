package create_booking

import (
	"errors"

	createBooking "github.com/m04kA/SMC-StayService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-StayService/pkg/types"
)

var (
	errMissingListing = errors.New("listing is required")
	errInvalidDate    = errors.New("date has wrong format")
)

// CreateBookingRequest HTTP request model.
// listing_id, adults и infants принимаются как синонимы listing, adult и infant.
type CreateBookingRequest struct {
	Listing   *int64 `json:"listing"`
	ListingID *int64 `json:"listing_id"`
	CheckIn   string `json:"check_in" validate:"required"`
	CheckOut  string `json:"check_out" validate:"required"`
	Adult     *int   `json:"adult"`
	Adults    *int   `json:"adults"`
	Children  *int   `json:"children"`
	Infant    *int   `json:"infant"`
	Infants   *int   `json:"infants"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	listingID := firstOf(r.Listing, r.ListingID)
	if listingID == nil {
		return nil, errMissingListing
	}

	checkIn, err := types.ParseDate(r.CheckIn)
	if err != nil {
		return nil, errInvalidDate
	}
	checkOut, err := types.ParseDate(r.CheckOut)
	if err != nil {
		return nil, errInvalidDate
	}

	// По умолчанию один взрослый без детей
	adults := 1
	if v := firstOf(r.Adult, r.Adults); v != nil {
		adults = *v
	}
	children := 0
	if r.Children != nil {
		children = *r.Children
	}
	infants := 0
	if v := firstOf(r.Infant, r.Infants); v != nil {
		infants = *v
	}

	return &createBooking.Request{
		UserID:    userID,
		ListingID: *listingID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Adults:    adults,
		Children:  children,
		Infants:   infants,
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
