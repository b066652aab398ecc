package update_booking

import (
	"github.com/m04kA/SMC-StayService/internal/domain"
	paymentModels "github.com/m04kA/SMC-StayService/internal/service/payments/models"
)

// Request модель запроса на изменение бронирования
type Request struct {
	BookingID int64
	Actor     domain.Identity

	// ListingID непустой, если клиент прислал поле listing; допускается только текущее значение
	ListingID *int64
	Changes   domain.BookingChanges

	// Payment вложенный результат оплаты, проходит через ledger
	Payment *paymentModels.UpdatePaymentRequest
}
