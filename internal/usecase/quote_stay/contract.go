package quote_stay

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StayService/internal/domain"
)

// ListingRepository интерфейс репозитория объявлений
type ListingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}

// AvailabilityChecker проверка пересечения дат с существующими бронированиями
type AvailabilityChecker interface {
	HasConflict(ctx context.Context, listingID int64, stay domain.Stay, excludeID *int64) (bool, error)
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
