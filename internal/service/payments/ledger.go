package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StayService/internal/domain"
	"github.com/m04kA/SMC-StayService/internal/integrations/bookingevents"
	bookingRepo "github.com/m04kA/SMC-StayService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-StayService/internal/infra/storage/payment"
)

// Result итог записи в ledger: сохраненный платеж и бронирование после синхронизации статуса
type Result struct {
	Payment        *domain.Payment
	Booking        *domain.Booking
	PreviousStatus domain.BookingStatus
}

// StatusChanged возвращает true, если запись платежа изменила статус бронирования
func (r *Result) StatusChanged() bool {
	return r.PreviousStatus != r.Booking.Status
}

// EventType событие, которое нужно опубликовать после фиксации транзакции
func (r *Result) EventType() bookingevents.Type {
	return bookingevents.TypeForStatus(r.PreviousStatus, r.Booking.Status)
}

// Record создает или обновляет единственный платеж бронирования и в той же транзакции
// переводит бронирование в статус, соответствующий платежу:
//   - paid → confirmed
//   - failed/refunded → cancelled
//   - pending → pending
//
// Если переход бронирования недопустим, ничего не записывается и возвращается ErrIllegalTransition.
// Вызванный внутри открытой транзакции, Record присоединяется к ней.
func (s *Service) Record(ctx context.Context, rec domain.PaymentRecord) (*Result, error) {
	if !rec.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, rec.Status)
	}
	if rec.Method != nil && !rec.Method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}
	if rec.Amount != nil && rec.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	var result *Result

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Блокируем бронирование, чтобы статус не изменился параллельно
		booking, err := s.bookingRepo.GetByIDForUpdate(txCtx, rec.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Record: booking id=%d not found", rec.BookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Record: failed to get booking id=%d: %v", rec.BookingID, err)
			return fmt.Errorf("%w: Record - get booking: %v", ErrInternal, err)
		}

		// 2. Текущий платеж (может отсутствовать)
		existing, err := s.paymentRepo.GetByBookingIDForUpdate(txCtx, rec.BookingID)
		if err != nil && !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Error("Record: failed to get payment for booking id=%d: %v", rec.BookingID, err)
			return fmt.Errorf("%w: Record - get payment: %v", ErrInternal, err)
		}

		// 3. Проверяем, что бронирование может перейти в нужный статус
		next, err := rec.Status.ResolveBookingStatus(booking.Status)
		if err != nil {
			s.logger.Warn("Record: booking id=%d status=%s is incompatible with payment status=%s",
				booking.ID, booking.Status, rec.Status)
			return fmt.Errorf("%w: booking is %s, payment %s", ErrIllegalTransition, booking.Status, rec.Status)
		}

		// 4. Сохраняем платеж
		saved, err := s.paymentRepo.Upsert(txCtx, mergePayment(booking, existing, rec))
		if err != nil {
			if errors.Is(err, paymentRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Record: failed to upsert payment for booking id=%d: %v", rec.BookingID, err)
			return fmt.Errorf("%w: Record - upsert payment: %v", ErrInternal, err)
		}

		// 5. Синхронизируем статус бронирования
		previous := booking.Status
		if next != previous {
			updatedAt, err := s.bookingRepo.UpdateStatus(txCtx, booking.ID, next)
			if err != nil {
				s.logger.Error("Record: failed to update booking id=%d status to %s: %v", booking.ID, next, err)
				return fmt.Errorf("%w: Record - update booking status: %v", ErrInternal, err)
			}
			booking.Status = next
			booking.UpdatedAt = updatedAt
		}

		result = &Result{Payment: saved, Booking: booking, PreviousStatus: previous}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Record: booking id=%d payment status=%s, booking status %s -> %s",
		result.Booking.ID, result.Payment.Status, result.PreviousStatus, result.Booking.Status)

	return result, nil
}

// mergePayment собирает итоговое состояние платежа: переданные поля заменяют сохраненные,
// для нового платежа сумма по умолчанию равна стоимости проживания с налогом
func mergePayment(booking *domain.Booking, existing *domain.Payment, rec domain.PaymentRecord) *domain.Payment {
	p := &domain.Payment{
		BookingID: booking.ID,
		Status:    rec.Status,
		Amount:    booking.GrandTotal(),
		Method:    domain.DefaultPaymentMethod,
	}

	if existing != nil {
		p.Amount = existing.Amount
		p.Method = existing.Method
		p.ProviderPaymentID = existing.ProviderPaymentID
	}

	if rec.Amount != nil {
		p.Amount = *rec.Amount
	}
	if rec.Method != nil {
		p.Method = *rec.Method
	}
	if rec.ProviderPaymentID != nil {
		p.ProviderPaymentID = rec.ProviderPaymentID
	}

	return p
}
