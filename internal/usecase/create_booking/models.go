package create_booking

import (
	"github.com/m04kA/SMC-StayService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64
	ListingID int64
	CheckIn   types.Date
	CheckOut  types.Date
	Adults    int
	Children  int
	Infants   int
}
