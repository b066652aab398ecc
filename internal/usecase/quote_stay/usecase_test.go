package quote_stay

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StayService/internal/domain"
	listingRepo "github.com/m04kA/SMC-StayService/internal/infra/storage/listing"
	"github.com/m04kA/SMC-StayService/pkg/clock"
	"github.com/m04kA/SMC-StayService/pkg/types"
)

type mockListingRepo struct{ mock.Mock }

func (m *mockListingRepo) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type mockChecker struct{ mock.Mock }

func (m *mockChecker) HasConflict(ctx context.Context, listingID int64, stay domain.Stay, excludeID *int64) (bool, error) {
	args := m.Called(ctx, listingID, stay, excludeID)
	return args.Bool(0), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newUseCase(listings *mockListingRepo, checker *mockChecker) *UseCase {
	today := clock.Fixed{At: types.MustParseDate("2025-05-20").Time()}
	return NewUseCase(listings, checker, today, nopLogger{})
}

func TestExecute_Quote(t *testing.T) {
	listings := new(mockListingRepo)
	checker := new(mockChecker)
	listings.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Listing{ID: 10, NightlyRate: decimal.RequireFromString("1234.50")}, nil)
	checker.On("HasConflict", mock.Anything, int64(10), mock.Anything, (*int64)(nil)).Return(true, nil)

	resp, err := newUseCase(listings, checker).Execute(context.Background(), &Request{
		ListingID: 10,
		CheckIn:   types.MustParseDate("2025-06-01"),
		CheckOut:  types.MustParseDate("2025-06-03"),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Nights)
	assert.Equal(t, "2469.00", resp.Subtotal)
	assert.Equal(t, "444.42", resp.TaxAmount)
	assert.Equal(t, "2913.42", resp.Total)
	assert.False(t, resp.Available)
}

func TestExecute_Errors(t *testing.T) {
	listings := new(mockListingRepo)
	listings.On("GetByID", mock.Anything, int64(404)).Return(nil, listingRepo.ErrListingNotFound)
	uc := newUseCase(listings, new(mockChecker))

	_, err := uc.Execute(context.Background(), &Request{
		ListingID: 404,
		CheckIn:   types.MustParseDate("2025-06-01"),
		CheckOut:  types.MustParseDate("2025-06-03"),
	})
	assert.ErrorIs(t, err, ErrListingNotFound)

	_, err = uc.Execute(context.Background(), &Request{
		ListingID: 10,
		CheckIn:   types.MustParseDate("2025-05-19"),
		CheckOut:  types.MustParseDate("2025-05-21"),
	})
	assert.ErrorIs(t, err, ErrCheckInInPast)

	_, err = uc.Execute(context.Background(), &Request{
		ListingID: 10,
		CheckIn:   types.MustParseDate("2025-06-03"),
		CheckOut:  types.MustParseDate("2025-06-03"),
	})
	assert.ErrorIs(t, err, ErrInvalidDates)
}
