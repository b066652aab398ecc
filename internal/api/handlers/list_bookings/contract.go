package list_bookings

import (
	"context"

	"github.com/m04kA/SMC-StayService/internal/domain"
	"github.com/m04kA/SMC-StayService/internal/service/bookings/models"
)

type BookingService interface {
	List(ctx context.Context, actor domain.Identity, role domain.ListRole) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
