package payments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StayService/internal/domain"
	"github.com/m04kA/SMC-StayService/internal/integrations/bookingevents"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (time.Time, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Upsert(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	GetByBookingIDForUpdate(ctx context.Context, bookingID int64) (*domain.Payment, error)
}

// ListingRepository интерфейс чтения объявлений
type ListingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, eventType bookingevents.Type, booking *domain.Booking, payment *domain.Payment)
}

// Metrics бизнес-метрики платежей
type Metrics interface {
	IncPaymentRecorded(status string)
	IncBookingCancelled(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
