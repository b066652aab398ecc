package quote_stay

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StayService/internal/domain"
	listingRepo "github.com/m04kA/SMC-StayService/internal/infra/storage/listing"
	"github.com/m04kA/SMC-StayService/pkg/types"
)

// UseCase use case предварительного расчета стоимости проживания
type UseCase struct {
	listingRepo  ListingRepository
	availability AvailabilityChecker
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	listingRepo ListingRepository,
	availability AvailabilityChecker,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		listingRepo:  listingRepo,
		availability: availability,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute считает стоимость проживания по текущей цене объявления и проверяет, свободны ли даты.
// Ничего не записывает: итоговая цена фиксируется только при создании бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuoteStay: listing=%d, check_in=%s, check_out=%s", req.ListingID, req.CheckIn, req.CheckOut)

	// 1. Валидация входных данных
	today := types.DateOf(uc.timeProvider.Now())
	stay, err := validateRequest(req, today)
	if err != nil {
		uc.logger.Warn("QuoteStay: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем объявление
	listing, err := uc.listingRepo.GetByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, listingRepo.ErrListingNotFound) {
			uc.logger.Warn("QuoteStay: listing id=%d not found", req.ListingID)
			return nil, ErrListingNotFound
		}
		uc.logger.Error("QuoteStay: failed to get listing id=%d: %v", req.ListingID, err)
		return nil, fmt.Errorf("%w: failed to get listing: %v", ErrInternal, err)
	}

	// 3. Считаем стоимость
	quote, err := domain.CalculatePrice(stay.Nights(), listing.NightlyRate)
	if err != nil {
		uc.logger.Error("QuoteStay: failed to price listing id=%d: %v", listing.ID, err)
		return nil, fmt.Errorf("%w: failed to price stay: %v", ErrInternal, err)
	}

	// 4. Проверяем доступность дат
	conflict, err := uc.availability.HasConflict(ctx, listing.ID, stay, nil)
	if err != nil {
		uc.logger.Error("QuoteStay: availability check failed: %v", err)
		return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}

	uc.logger.Info("QuoteStay: listing=%d nights=%d total=%s available=%t",
		listing.ID, quote.Nights, quote.Total.StringFixed(domain.MoneyPlaces), !conflict)

	return &Response{
		ListingID:   listing.ID,
		CheckIn:     stay.CheckIn,
		CheckOut:    stay.CheckOut,
		Nights:      quote.Nights,
		NightlyRate: quote.NightlyRate.StringFixed(domain.MoneyPlaces),
		Subtotal:    quote.Subtotal.StringFixed(domain.MoneyPlaces),
		TaxAmount:   quote.Tax.StringFixed(domain.MoneyPlaces),
		Total:       quote.Total.StringFixed(domain.MoneyPlaces),
		Available:   !conflict,
	}, nil
}
