package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StayService/internal/domain"
	"github.com/m04kA/SMC-StayService/internal/integrations/bookingevents"
	bookingModels "github.com/m04kA/SMC-StayService/internal/service/bookings/models"
	"github.com/m04kA/SMC-StayService/internal/service/payments"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ListingRepository интерфейс репозитория объявлений
type ListingRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.Listing, error)
}

// AvailabilityChecker проверка пересечения дат с существующими бронированиями
type AvailabilityChecker interface {
	HasConflict(ctx context.Context, listingID int64, stay domain.Stay, excludeID *int64) (bool, error)
}

// PaymentLedger запись платежа бронирования
type PaymentLedger interface {
	Record(ctx context.Context, rec domain.PaymentRecord) (*payments.Result, error)
}

// Presenter собирает представление бронирования
type Presenter interface {
	PresentWithPayment(ctx context.Context, booking *domain.Booking, payment *domain.Payment) (*bookingModels.BookingResponse, error)
}

// EventPublisher публикация событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, eventType bookingevents.Type, booking *domain.Booking, payment *domain.Payment)
}

// Metrics бизнес-метрики создания бронирований
type Metrics interface {
	IncBookingCreated()
	IncBookingConflict()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
