package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StayService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StayService/internal/infra/storage/booking"
	listingRepo "github.com/m04kA/SMC-StayService/internal/infra/storage/listing"
	"github.com/m04kA/SMC-StayService/internal/integrations/bookingevents"
	bookingModels "github.com/m04kA/SMC-StayService/internal/service/bookings/models"
	"github.com/m04kA/SMC-StayService/pkg/pgerr"
	"github.com/m04kA/SMC-StayService/pkg/ptr"
	"github.com/m04kA/SMC-StayService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	listingRepo  ListingRepository
	availability AvailabilityChecker
	ledger       PaymentLedger
	presenter    Presenter
	events       EventPublisher
	metrics      Metrics
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
	metrics Metrics,
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
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и запись выполняются в сериализуемой транзакции с блокировкой строки объявления
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*bookingModels.BookingResponse, error) {
	uc.logger.Info("CreateBooking: user=%d, listing=%d, check_in=%s, check_out=%s, guests=%d/%d/%d",
		req.UserID, req.ListingID, req.CheckIn, req.CheckOut, req.Adults, req.Children, req.Infants)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем даты до любого обращения к БД
	today := types.DateOf(uc.timeProvider.Now())
	stay, err := validateStay(req.CheckIn, req.CheckOut, today)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid stay %s..%s (today %s): %v", req.CheckIn, req.CheckOut, today, err)
		return nil, err
	}

	// 3. Проверяем количество гостей
	if err := validateOccupancy(req); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	var (
		created *domain.Booking
		payment *domain.Payment
	)

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Блокируем объявление, чтобы параллельные бронирования ждали друг друга
		listing, err := uc.listingRepo.LockByID(txCtx, req.ListingID)
		if err != nil {
			if errors.Is(err, listingRepo.ErrListingNotFound) {
				uc.logger.Warn("CreateBooking: listing id=%d not found", req.ListingID)
				return ErrListingNotFound
			}
			uc.logger.Error("CreateBooking: failed to lock listing id=%d: %v", req.ListingID, err)
			return fmt.Errorf("%w: failed to lock listing: %v", ErrInternal, err)
		}

		// 4.2. Проверяем пересечение с занятыми датами
		conflict, err := uc.availability.HasConflict(txCtx, listing.ID, stay, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}
		if conflict {
			uc.logger.Warn("CreateBooking: listing id=%d is taken for %s..%s", listing.ID, stay.CheckIn, stay.CheckOut)
			return ErrDatesUnavailable
		}

		// 4.3. Считаем стоимость по текущей цене объявления
		quote, err := domain.CalculatePrice(stay.Nights(), listing.NightlyRate)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to price listing id=%d: %v", listing.ID, err)
			return fmt.Errorf("%w: failed to price stay: %v", ErrInternal, err)
		}

		// 4.4. Сохраняем бронирование, total_price - сумма без налога
		created, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			ListingID:  listing.ID,
			UserID:     req.UserID,
			CheckIn:    stay.CheckIn,
			CheckOut:   stay.CheckOut,
			Adults:     req.Adults,
			Children:   req.Children,
			Infants:    req.Infants,
			TotalPrice: quote.Subtotal,
			Status:     domain.StatusPending,
		})
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrDatesOverlap), errors.Is(err, bookingRepo.ErrSerialization):
				uc.logger.Warn("CreateBooking: storage rejected overlapping booking: %v", err)
				return ErrDatesUnavailable
			case errors.Is(err, bookingRepo.ErrInvalidReference):
				uc.logger.Warn("CreateBooking: invalid reference: %v", err)
				return fmt.Errorf("%w: unknown listing or user", ErrInvalidInput)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 4.5. Черновик платежа на сумму с налогом
		result, err := uc.ledger.Record(txCtx, domain.PaymentRecord{
			BookingID: created.ID,
			Status:    domain.PaymentStatusPending,
			Method:    ptr.Ptr(domain.DefaultPaymentMethod),
			Amount:    ptr.Ptr(quote.Total),
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to record draft payment for booking id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: failed to record payment: %v", ErrInternal, err)
		}
		payment = result.Payment

		return nil
	})

	if err != nil {
		if pgerr.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: concurrent booking of listing id=%d: %v", req.ListingID, err)
			err = ErrDatesUnavailable
		}
		if errors.Is(err, ErrDatesUnavailable) {
			uc.metrics.IncBookingConflict()
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, subtotal=%s, payment amount=%s",
		created.ID, created.TotalPrice.StringFixed(domain.MoneyPlaces), payment.Amount.StringFixed(domain.MoneyPlaces))

	uc.metrics.IncBookingCreated()
	uc.events.Publish(ctx, bookingevents.TypeCreated, created, payment)

	// 5. Возвращаем бронирование с вычисленным налогом
	return uc.presenter.PresentWithPayment(ctx, created, payment)
}
