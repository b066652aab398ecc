package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StayService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StayService/internal/infra/storage/booking"
	listingRepo "github.com/m04kA/SMC-StayService/internal/infra/storage/listing"
	paymentRepo "github.com/m04kA/SMC-StayService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-StayService/internal/service/payments/models"
)

// Service ledger платежей: один платеж на бронирование, статус которого управляет статусом бронирования
type Service struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	listingRepo ListingRepository
	txManager   TransactionManager
	events      EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	listingRepo ListingRepository,
	txManager TransactionManager,
	events EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		listingRepo: listingRepo,
		txManager:   txManager,
		events:      events,
		metrics:     metrics,
		logger:      logger,
	}
}

// Get возвращает платеж бронирования.
// Доступно гостю, хосту объявления и суперпользователю.
func (s *Service) Get(ctx context.Context, bookingID int64, actor domain.Identity) (*models.PaymentResponse, error) {
	s.logger.Info("Get: fetching payment for booking=%d by user=%d", bookingID, actor.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Get: booking id=%d not found", bookingID)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("Get: failed to get booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Get - get booking: %v", ErrInternal, err)
	}

	if !booking.IsOwnedBy(actor.UserID) && !actor.IsSuperuser() {
		listing, err := s.listingRepo.GetByID(ctx, booking.ListingID)
		if err != nil && !errors.Is(err, listingRepo.ErrListingNotFound) {
			s.logger.Error("Get: failed to get listing id=%d: %v", booking.ListingID, err)
			return nil, fmt.Errorf("%w: Get - get listing: %v", ErrInternal, err)
		}
		if listing == nil || !listing.IsHostedBy(actor.UserID) {
			s.logger.Warn("Get: user=%d has no access to booking=%d", actor.UserID, bookingID)
			return nil, ErrAccessDenied
		}
	}

	payment, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("Get: booking id=%d has no payment", bookingID)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("Get: failed to get payment for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Get - get payment: %v", ErrInternal, err)
	}

	return models.FromDomainPayment(payment), nil
}

// Update записывает результат оплаты, пришедший от клиента или платежного провайдера.
// Доступно гостю бронирования и суперпользователю.
func (s *Service) Update(ctx context.Context, bookingID int64, actor domain.Identity, req *models.UpdatePaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("Update: recording payment status=%q for booking=%d by user=%d", req.Status, bookingID, actor.UserID)

	// 1. Разбираем запрос
	rec, err := req.ToRecord(bookingID)
	if err != nil {
		s.logger.Warn("Update: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	// 2. Проверяем права доступа
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Update: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Update: failed to get booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Update - get booking: %v", ErrInternal, err)
	}
	if !booking.IsOwnedBy(actor.UserID) && !actor.IsSuperuser() {
		s.logger.Warn("Update: user=%d is not the guest of booking=%d", actor.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	// 3. Записываем платеж и синхронизируем статус бронирования
	result, err := s.Record(ctx, rec)
	if err != nil {
		return nil, err
	}

	// 4. Метрики и событие после фиксации транзакции
	s.Notify(ctx, result, "payment")

	return models.FromDomainPayment(result.Payment), nil
}

// Notify учитывает метрики и публикует событие по итогам записи ledger.
// Вызывается внешней операцией после фиксации транзакции.
func (s *Service) Notify(ctx context.Context, result *Result, cancelReason string) {
	s.metrics.IncPaymentRecorded(string(result.Payment.Status))

	if !result.StatusChanged() {
		return
	}
	if result.Booking.Status == domain.StatusCancelled {
		s.metrics.IncBookingCancelled(cancelReason)
	}
	s.events.Publish(ctx, result.EventType(), result.Booking, result.Payment)
}
