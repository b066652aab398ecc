package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StayService/internal/domain"
)

// ErrInternal ошибка чтения хранилища
var ErrInternal = errors.New("availability: internal error")

// Checker проверяет, свободно ли объявление на интервал дат
type Checker struct {
	bookingRepo BookingRepository
}

// NewChecker создает новый экземпляр Checker
func NewChecker(bookingRepo BookingRepository) *Checker {
	return &Checker{bookingRepo: bookingRepo}
}

// HasConflict возвращает true, если интервал [stay.CheckIn, stay.CheckOut) пересекается
// с бронированием объявления в статусе pending, confirmed или completed.
// excludeID исключает само редактируемое бронирование.
func (c *Checker) HasConflict(ctx context.Context, listingID int64, stay domain.Stay, excludeID *int64) (bool, error) {
	count, err := c.bookingRepo.CountOverlapping(ctx, listingID, stay, excludeID)
	if err != nil {
		return false, fmt.Errorf("%w: HasConflict - listing=%d: %v", ErrInternal, listingID, err)
	}
	return count > 0, nil
}
