package update_booking

import (
	"context"

	bookingModels "github.com/m04kA/SMC-StayService/internal/service/bookings/models"
	updateBooking "github.com/m04kA/SMC-StayService/internal/usecase/update_booking"
)

type UpdateBookingUseCase interface {
	Execute(ctx context.Context, req *updateBooking.Request) (*bookingModels.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
