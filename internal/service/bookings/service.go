package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StayService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StayService/internal/infra/storage/booking"
	listingRepo "github.com/m04kA/SMC-StayService/internal/infra/storage/listing"
	paymentRepo "github.com/m04kA/SMC-StayService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-StayService/internal/service/bookings/models"
	"github.com/m04kA/SMC-StayService/internal/service/payments"
	"github.com/m04kA/SMC-StayService/pkg/types"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	listingRepo  ListingRepository
	userRepo     UserRepository
	paymentRepo  PaymentRepository
	ledger       PaymentLedger
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	listingRepo ListingRepository,
	userRepo UserRepository,
	paymentRepo PaymentRepository,
	ledger PaymentLedger,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		listingRepo:  listingRepo,
		userRepo:     userRepo,
		paymentRepo:  paymentRepo,
		ledger:       ledger,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Доступно гостю, хосту объявления и суперпользователю
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Identity) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	var resp *models.BookingResponse

	// Бронирование и связанные записи читаются одной транзакцией только для чтения
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("GetByID: booking id=%d not found", id)
				return ErrBookingNotFound
			}
			s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
		}

		listing, err := s.getListing(txCtx, booking.ListingID)
		if err != nil {
			return err
		}

		if !canView(booking, listing, actor) {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
			return ErrAccessDenied
		}

		resp, err = s.Present(txCtx, booking)
		return err
	})
	if err != nil {
		return nil, readError("GetByID", err)
	}

	return resp, nil
}

// List возвращает бронирования пользователя, новые первыми
// role=host - бронирования объявлений, которые пользователь сдает
func (s *Service) List(ctx context.Context, actor domain.Identity, role domain.ListRole) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for user=%d, role=%s", actor.UserID, role)

	var resp *models.BookingListResponse

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var (
			list []*domain.Booking
			err  error
		)

		if role == domain.ListRoleHost {
			list, err = s.bookingRepo.GetByHostID(txCtx, actor.UserID)
		} else {
			list, err = s.bookingRepo.GetByUserID(txCtx, actor.UserID)
		}
		if err != nil {
			s.logger.Error("List: repository error for user=%d: %v", actor.UserID, err)
			return fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
		}

		resp, err = s.PresentMany(txCtx, list)
		return err
	})
	if err != nil {
		return nil, readError("List", err)
	}

	s.logger.Info("List: successfully fetched %d bookings for user=%d", len(resp.Bookings), actor.UserID)
	return resp, nil
}

// Cancel отменяет бронирование
// Отменить может гость или хост объявления, строго до дня заезда.
// Платеж следует за бронированием: pending → failed, paid → refunded.
// Повторная отмена уже отмененного бронирования возвращает его без изменений.
func (s *Service) Cancel(ctx context.Context, bookingID int64, actor domain.Identity) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, actor.UserID)

	// 1. Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// 2. Проверяем права: гость или хост объявления
	if !booking.IsOwnedBy(actor.UserID) {
		listing, err := s.getListing(ctx, booking.ListingID)
		if err != nil {
			return nil, err
		}
		if listing == nil || !listing.IsHostedBy(actor.UserID) {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", actor.UserID, bookingID)
			return nil, ErrAccessDenied
		}
	}

	// 3. Отмена возможна только до дня заезда
	today := types.DateOf(s.timeProvider.Now())
	if !booking.CanBeCancelledOn(today) {
		s.logger.Warn("Cancel: booking id=%d check_in=%s, today=%s", bookingID, booking.CheckIn, today)
		return nil, ErrCancelWindowClosed
	}

	// 4. Повторная отмена
	if booking.Status == domain.StatusCancelled {
		s.logger.Info("Cancel: booking id=%d is already cancelled", bookingID)
		return s.Present(ctx, booking)
	}

	var (
		result    *payments.Result
		cancelled *domain.Booking
	)

	// 5. Переводим платеж в статус отмены, ledger отменяет бронирование в той же транзакции.
	// Ограничение по дате и статус повторно проверяются на заблокированной строке.
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		locked, err := s.bookingRepo.GetByIDForUpdate(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: failed to lock booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - lock booking: %v", ErrInternal, err)
		}

		if !locked.CanBeCancelledOn(today) {
			s.logger.Warn("Cancel: locked booking id=%d check_in=%s, today=%s", bookingID, locked.CheckIn, today)
			return ErrCancelWindowClosed
		}

		if locked.Status == domain.StatusCancelled {
			s.logger.Info("Cancel: booking id=%d was cancelled concurrently", bookingID)
			cancelled = locked
			return nil
		}

		current := domain.PaymentStatusPending
		existing, err := s.paymentRepo.GetByBookingIDForUpdate(txCtx, bookingID)
		switch {
		case err == nil:
			current = existing.Status
		case !errors.Is(err, paymentRepo.ErrPaymentNotFound):
			s.logger.Error("Cancel: failed to get payment for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - get payment: %v", ErrInternal, err)
		}

		result, err = s.ledger.Record(txCtx, domain.PaymentRecord{
			BookingID: bookingID,
			Status:    domain.PaymentStatusForCancel(current),
		})
		return err
	})

	if err != nil {
		switch {
		case errors.Is(err, payments.ErrIllegalTransition):
			s.logger.Warn("Cancel: booking id=%d in status=%s cannot be cancelled", bookingID, booking.Status)
			return nil, ErrCannotCancel
		case errors.Is(err, payments.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, ErrBookingNotFound),
			errors.Is(err, ErrCancelWindowClosed),
			errors.Is(err, ErrInternal):
			return nil, err
		default:
			s.logger.Error("Cancel: ledger error for booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: Cancel - ledger error: %v", ErrInternal, err)
		}
	}

	if cancelled != nil {
		return s.Present(ctx, cancelled)
	}

	s.ledger.Notify(ctx, result, "user")

	s.logger.Info("Cancel: successfully cancelled booking id=%d, payment status=%s", bookingID, result.Payment.Status)
	return s.PresentWithPayment(ctx, result.Booking, result.Payment)
}

// Present собирает представление бронирования со связанными объявлением, пользователями и платежом
func (s *Service) Present(ctx context.Context, booking *domain.Booking) (*models.BookingResponse, error) {
	resp, err := s.PresentMany(ctx, []*domain.Booking{booking})
	if err != nil {
		return nil, err
	}
	return &resp.Bookings[0], nil
}

// PresentWithPayment собирает представление с уже известным платежом
func (s *Service) PresentWithPayment(ctx context.Context, booking *domain.Booking, payment *domain.Payment) (*models.BookingResponse, error) {
	rel, err := s.loadRelated(ctx, []*domain.Booking{booking}, false)
	if err != nil {
		return nil, err
	}
	r := rel[booking.ID]
	r.Payment = payment
	return models.FromDomainBooking(booking, r), nil
}

// PresentMany собирает представления списка бронирований батчевыми запросами
func (s *Service) PresentMany(ctx context.Context, list []*domain.Booking) (*models.BookingListResponse, error) {
	resp := &models.BookingListResponse{
		Bookings: make([]models.BookingResponse, 0, len(list)),
	}
	if len(list) == 0 {
		return resp, nil
	}

	rel, err := s.loadRelated(ctx, list, true)
	if err != nil {
		return nil, err
	}

	for _, b := range list {
		resp.Bookings = append(resp.Bookings, *models.FromDomainBooking(b, rel[b.ID]))
	}

	return resp, nil
}

func (s *Service) loadRelated(ctx context.Context, list []*domain.Booking, withPayments bool) (map[int64]models.Related, error) {
	listingIDs := make([]int64, 0, len(list))
	bookingIDs := make([]int64, 0, len(list))
	for _, b := range list {
		listingIDs = append(listingIDs, b.ListingID)
		bookingIDs = append(bookingIDs, b.ID)
	}

	listings, err := s.listingRepo.GetByIDs(ctx, listingIDs)
	if err != nil {
		s.logger.Error("loadRelated: failed to get listings: %v", err)
		return nil, fmt.Errorf("%w: loadRelated - get listings: %v", ErrInternal, err)
	}

	userIDs := make([]int64, 0, 2*len(list))
	for _, b := range list {
		userIDs = append(userIDs, b.UserID)
		if l, ok := listings[b.ListingID]; ok {
			userIDs = append(userIDs, l.HostID)
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		s.logger.Error("loadRelated: failed to get users: %v", err)
		return nil, fmt.Errorf("%w: loadRelated - get users: %v", ErrInternal, err)
	}

	paymentsByBooking := map[int64]*domain.Payment{}
	if withPayments {
		paymentsByBooking, err = s.paymentRepo.GetByBookingIDs(ctx, bookingIDs)
		if err != nil {
			s.logger.Error("loadRelated: failed to get payments: %v", err)
			return nil, fmt.Errorf("%w: loadRelated - get payments: %v", ErrInternal, err)
		}
	}

	result := make(map[int64]models.Related, len(list))
	for _, b := range list {
		r := models.Related{
			Listing: listings[b.ListingID],
			User:    users[b.UserID],
			Payment: paymentsByBooking[b.ID],
		}
		if r.Listing != nil {
			r.Host = users[r.Listing.HostID]
		}
		result[b.ID] = r
	}

	return result, nil
}

// getListing возвращает объявление или nil, если его больше нет
func (s *Service) getListing(ctx context.Context, id int64) (*domain.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, listingRepo.ErrListingNotFound) {
			return nil, nil
		}
		s.logger.Error("getListing: failed to get listing id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getListing - repository error: %v", ErrInternal, err)
	}
	return listing, nil
}

// canView проверяет право просмотра: гость, хост объявления или суперпользователь
func canView(booking *domain.Booking, listing *domain.Listing, actor domain.Identity) bool {
	if booking.IsOwnedBy(actor.UserID) || actor.IsSuperuser() {
		return true
	}
	return listing != nil && listing.IsHostedBy(actor.UserID)
}

// readError оставляет ошибки сервиса как есть, ошибки транзакции сводит к ErrInternal
func readError(op string, err error) error {
	switch {
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrInternal):
		return err
	default:
		return fmt.Errorf("%w: %s - read transaction: %v", ErrInternal, op, err)
	}
}
