package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StayService/internal/domain"
)

// PaymentResponse платеж бронирования
type PaymentResponse struct {
	ID                int64     `json:"id"`
	Booking           int64     `json:"booking"`
	Amount            string    `json:"amount"`
	Status            string    `json:"status"`
	PaymentMethod     string    `json:"payment_method"`
	ProviderPaymentID *string   `json:"provider_payment_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UpdatePaymentRequest запрос на запись результата оплаты
type UpdatePaymentRequest struct {
	Status            string  `json:"status" validate:"required"`
	PaymentMethod     *string `json:"payment_method,omitempty" validate:"omitempty,max=32"`
	ProviderPaymentID *string `json:"provider_payment_id,omitempty" validate:"omitempty,max=128"`
	Amount            *string `json:"amount,omitempty"`
}

// NormalizeStatus сводит статус от платежного провайдера к статусу ledger:
// "paid" - успешная оплата, любое другое значение считается неуспешной оплатой
func NormalizeStatus(raw string) domain.PaymentStatus {
	if domain.PaymentStatus(strings.ToLower(strings.TrimSpace(raw))) == domain.PaymentStatusPaid {
		return domain.PaymentStatusPaid
	}
	return domain.PaymentStatusFailed
}

// ParseStatus разбирает статус платежа, вложенного в изменение бронирования:
// известные статусы сохраняются как есть, неизвестное значение считается неуспешной оплатой
func ParseStatus(raw string) domain.PaymentStatus {
	status := domain.PaymentStatus(strings.ToLower(strings.TrimSpace(raw)))
	if status.IsValid() {
		return status
	}
	return domain.PaymentStatusFailed
}

// ToRecord преобразует запрос PUT /payments в запись ledger
func (r *UpdatePaymentRequest) ToRecord(bookingID int64) (domain.PaymentRecord, error) {
	return r.record(bookingID, NormalizeStatus(r.Status))
}

// ToNestedRecord преобразует платеж из запроса изменения бронирования в запись ledger
func (r *UpdatePaymentRequest) ToNestedRecord(bookingID int64) (domain.PaymentRecord, error) {
	return r.record(bookingID, ParseStatus(r.Status))
}

func (r *UpdatePaymentRequest) record(bookingID int64, status domain.PaymentStatus) (domain.PaymentRecord, error) {
	rec := domain.PaymentRecord{
		BookingID:         bookingID,
		Status:            status,
		ProviderPaymentID: r.ProviderPaymentID,
	}

	if r.PaymentMethod != nil {
		method := domain.PaymentMethod(*r.PaymentMethod)
		rec.Method = &method
	}

	if r.Amount != nil {
		amount, err := decimal.NewFromString(*r.Amount)
		if err != nil {
			return rec, fmt.Errorf("amount %q: %w", *r.Amount, err)
		}
		rec.Amount = &amount
	}

	return rec, nil
}

// FromDomainPayment преобразует доменную модель в ответ
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}
	return &PaymentResponse{
		ID:                p.ID,
		Booking:           p.BookingID,
		Amount:            p.Amount.StringFixed(domain.MoneyPlaces),
		Status:            string(p.Status),
		PaymentMethod:     string(p.Method),
		ProviderPaymentID: p.ProviderPaymentID,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
