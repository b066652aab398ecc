package bookingevents

import (
	"time"

	"github.com/m04kA/SMC-StayService/internal/domain"
)

// Type тип события бронирования
type Type string

const (
	TypeCreated   Type = "booking.created"
	TypeUpdated   Type = "booking.updated"
	TypeConfirmed Type = "booking.confirmed"
	TypeCancelled Type = "booking.cancelled"
)

// TypeForStatus событие, соответствующее новому статусу бронирования.
// Если статус не изменился, возвращает TypeUpdated.
func TypeForStatus(previous, current domain.BookingStatus) Type {
	if previous == current {
		return TypeUpdated
	}
	switch current {
	case domain.StatusConfirmed:
		return TypeConfirmed
	case domain.StatusCancelled:
		return TypeCancelled
	default:
		return TypeUpdated
	}
}

// Event сообщение, публикуемое в топик бронирований
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Booking    Booking   `json:"booking"`
	Payment    *Payment  `json:"payment,omitempty"`
}

// Booking снимок бронирования в событии
type Booking struct {
	ID         int64  `json:"id"`
	ListingID  int64  `json:"listing_id"`
	UserID     int64  `json:"user_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Nights     int    `json:"nights"`
	TotalPrice string `json:"total_price"`
	TaxAmount  string `json:"tax_amount"`
	Status     string `json:"status"`
}

// Payment снимок платежа в событии
type Payment struct {
	ID     int64  `json:"id"`
	Amount string `json:"amount"`
	Status string `json:"status"`
	Method string `json:"payment_method"`
}

func newBooking(b *domain.Booking) Booking {
	return Booking{
		ID:         b.ID,
		ListingID:  b.ListingID,
		UserID:     b.UserID,
		CheckIn:    b.CheckIn.String(),
		CheckOut:   b.CheckOut.String(),
		Nights:     b.Nights(),
		TotalPrice: b.TotalPrice.StringFixed(domain.MoneyPlaces),
		TaxAmount:  b.TaxAmount().StringFixed(domain.MoneyPlaces),
		Status:     string(b.Status),
	}
}

func newPayment(p *domain.Payment) *Payment {
	if p == nil {
		return nil
	}
	return &Payment{
		ID:     p.ID,
		Amount: p.Amount.StringFixed(domain.MoneyPlaces),
		Status: string(p.Status),
		Method: string(p.Method),
	}
}
