package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StayService/internal/domain"
	"github.com/m04kA/SMC-StayService/internal/service/payments"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error)
	GetByHostID(ctx context.Context, hostID int64) ([]*domain.Booking, error)
}

// ListingRepository интерфейс чтения объявлений
type ListingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Listing, error)
}

// UserRepository интерфейс чтения пользователей
type UserRepository interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.UserSummary, error)
}

// PaymentRepository интерфейс чтения платежей
type PaymentRepository interface {
	GetByBookingIDForUpdate(ctx context.Context, bookingID int64) (*domain.Payment, error)
	GetByBookingIDs(ctx context.Context, bookingIDs []int64) (map[int64]*domain.Payment, error)
}

// PaymentLedger запись платежа с синхронизацией статуса бронирования
type PaymentLedger interface {
	Record(ctx context.Context, rec domain.PaymentRecord) (*payments.Result, error)
	Notify(ctx context.Context, result *payments.Result, cancelReason string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
