package bookings

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StayService/internal/domain"
	"github.com/m04kA/SMC-StayService/internal/service/payments"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) GetByHostID(ctx context.Context, hostID int64) ([]*domain.Booking, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type mockListingRepo struct {
	mock.Mock
}

func (m *mockListingRepo) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *mockListingRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Listing, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]*domain.Listing), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.UserSummary, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]*domain.UserSummary), args.Error(1)
}

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) GetByBookingIDForUpdate(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) GetByBookingIDs(ctx context.Context, bookingIDs []int64) (map[int64]*domain.Payment, error) {
	args := m.Called(ctx, bookingIDs)
	return args.Get(0).(map[int64]*domain.Payment), args.Error(1)
}

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) Record(ctx context.Context, rec domain.PaymentRecord) (*payments.Result, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Result), args.Error(1)
}

func (m *mockLedger) Notify(ctx context.Context, result *payments.Result, cancelReason string) {
	m.Called(ctx, result, cancelReason)
}

// passthroughTx выполняет fn без транзакции и считает read-only вызовы
type passthroughTx struct {
	readOnly *int
}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (t passthroughTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if t.readOnly != nil {
		*t.readOnly++
	}
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
