package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StayService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StayService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StayService/internal/integrations/bookingevents"
	bookingModels "github.com/m04kA/SMC-StayService/internal/service/bookings/models"
	"github.com/m04kA/SMC-StayService/internal/service/payments"
	"github.com/m04kA/SMC-StayService/pkg/pgerr"
	"github.com/m04kA/SMC-StayService/pkg/types"
)

// UseCase use case для изменения бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	listingRepo  ListingRepository
	availability AvailabilityChecker
	ledger       PaymentLedger
	presenter    Presenter
	events       EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	listingRepo ListingRepository,
	availability AvailabilityChecker,
	ledger PaymentLedger,
	presenter Presenter,
	events EventPublisher,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		listingRepo:  listingRepo,
		availability: availability,
		ledger:       ledger,
		presenter:    presenter,
		events:       events,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute изменяет даты, гостей и/или платеж бронирования в одной транзакции.
// Даты и гости меняются только у pending бронирования; новые даты пересчитывают цену и сумму платежа.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*bookingModels.BookingResponse, error) {
	uc.logger.Info("UpdateBooking: booking=%d by user=%d, dates=%t, guests=%t, payment=%t",
		req.BookingID, req.Actor.UserID, req.Changes.HasDateChanges(), req.Changes.HasOccupancyChanges(), req.Payment != nil)

	today := types.DateOf(uc.timeProvider.Now())

	var (
		booking *domain.Booking
		record  *payments.Result
		dirty   bool
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error

		// 1. Блокируем бронирование
		booking, err = uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Права и допустимость изменений; поля, совпадающие с текущими, изменением не считаются
		changes := req.Changes.DiffFrom(booking)
		if err := checkEditable(booking, req, changes); err != nil {
			uc.logger.Warn("UpdateBooking: booking id=%d is not editable by user=%d: %v", booking.ID, req.Actor.UserID, err)
			return err
		}

		// 3. Гости
		if changes.HasOccupancyChanges() {
			if err := applyOccupancy(booking, changes); err != nil {
				uc.logger.Warn("UpdateBooking: %v", err)
				return err
			}
			dirty = true
		}

		// 4. Даты: проверка пересечений без учета самого бронирования и пересчет цены
		var repriced *decimal.Decimal
		if changes.HasDateChanges() {
			total, err := uc.reschedule(txCtx, booking, changes, today)
			if err != nil {
				return err
			}
			repriced = &total
			dirty = true
		}

		// 5. Сохраняем бронирование
		if dirty {
			booking, err = uc.bookingRepo.Update(txCtx, booking)
			if err != nil {
				if errors.Is(err, bookingRepo.ErrDatesOverlap) || errors.Is(err, bookingRepo.ErrSerialization) {
					uc.logger.Warn("UpdateBooking: storage rejected overlapping dates: %v", err)
					return ErrDatesUnavailable
				}
				uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", req.BookingID, err)
				return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
			}
		}

		// 6. Платеж: вложенный результат оплаты и/или новая сумма после пересчета
		rec, err := paymentRecord(booking.ID, req, repriced)
		if err != nil {
			uc.logger.Warn("UpdateBooking: invalid payment: %v", err)
			return err
		}
		if rec == nil {
			return nil
		}

		record, err = uc.ledger.Record(txCtx, *rec)
		if err != nil {
			return mapLedgerError(err)
		}
		booking = record.Booking

		return nil
	})

	if err != nil {
		if pgerr.IsSerializationFailure(err) {
			uc.logger.Warn("UpdateBooking: concurrent update of booking id=%d: %v", req.BookingID, err)
			return nil, ErrDatesUnavailable
		}
		return nil, err
	}

	// 7. События после фиксации транзакции
	if record != nil {
		uc.ledger.Notify(ctx, record, "payment")
	}
	if dirty && (record == nil || !record.StatusChanged()) {
		var payment *domain.Payment
		if record != nil {
			payment = record.Payment
		}
		uc.events.Publish(ctx, bookingevents.TypeUpdated, booking, payment)
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d, status=%s", booking.ID, booking.Status)
	return uc.presenter.Present(ctx, booking)
}

// reschedule переносит бронирование на новые даты и возвращает новую сумму с налогом
func (uc *UseCase) reschedule(ctx context.Context, booking *domain.Booking, changes domain.BookingChanges, today types.Date) (decimal.Decimal, error) {
	stay, err := mergeStay(booking, changes, today)
	if err != nil {
		uc.logger.Warn("UpdateBooking: invalid stay for booking id=%d: %v", booking.ID, err)
		return decimal.Zero, err
	}

	listing, err := uc.listingRepo.LockByID(ctx, booking.ListingID)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to lock listing id=%d: %v", booking.ListingID, err)
		return decimal.Zero, fmt.Errorf("%w: failed to lock listing: %v", ErrInternal, err)
	}

	conflict, err := uc.availability.HasConflict(ctx, listing.ID, stay, &booking.ID)
	if err != nil {
		uc.logger.Error("UpdateBooking: availability check failed: %v", err)
		return decimal.Zero, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}
	if conflict {
		uc.logger.Warn("UpdateBooking: listing id=%d is taken for %s..%s", listing.ID, stay.CheckIn, stay.CheckOut)
		return decimal.Zero, ErrDatesUnavailable
	}

	quote, err := domain.CalculatePrice(stay.Nights(), listing.NightlyRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to price stay: %v", ErrInternal, err)
	}

	booking.CheckIn = stay.CheckIn
	booking.CheckOut = stay.CheckOut
	booking.TotalPrice = quote.Subtotal

	return quote.Total, nil
}

// paymentRecord собирает запись ledger; nil - платеж не меняется
func paymentRecord(bookingID int64, req *Request, repriced *decimal.Decimal) (*domain.PaymentRecord, error) {
	var rec *domain.PaymentRecord

	if req.Payment != nil {
		r, err := req.Payment.ToNestedRecord(bookingID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayment, err)
		}
		rec = &r
	}

	if repriced != nil {
		if rec == nil {
			rec = &domain.PaymentRecord{BookingID: bookingID, Status: domain.PaymentStatusPending}
		}
		if rec.Amount == nil {
			rec.Amount = repriced
		}
	}

	return rec, nil
}

func mapLedgerError(err error) error {
	switch {
	case errors.Is(err, payments.ErrIllegalTransition):
		return fmt.Errorf("%w: %v", ErrIllegalTransition, err)
	case errors.Is(err, payments.ErrInvalidInput),
		errors.Is(err, payments.ErrInvalidPaymentMethod),
		errors.Is(err, payments.ErrInvalidAmount):
		return fmt.Errorf("%w: %v", ErrInvalidPayment, err)
	case errors.Is(err, payments.ErrBookingNotFound):
		return ErrBookingNotFound
	default:
		return fmt.Errorf("%w: ledger error: %v", ErrInternal, err)
	}
}
