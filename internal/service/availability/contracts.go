package availability

import (
	"context"

	"github.com/m04kA/SMC-StayService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountOverlapping(ctx context.Context, listingID int64, stay domain.Stay, excludeID *int64) (int, error)
}
