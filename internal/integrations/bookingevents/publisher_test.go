package bookingevents

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StayService/internal/domain"
	"github.com/m04kA/SMC-StayService/pkg/types"
)

type mockProducer struct {
	mock.Mock
}

func (m *mockProducer) Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error {
	args := m.Called(ctx, topic, key, payload, headers)
	return args.Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:         42,
		ListingID:  10,
		UserID:     100,
		CheckIn:    types.MustParseDate("2025-06-01"),
		CheckOut:   types.MustParseDate("2025-06-04"),
		Adults:     2,
		TotalPrice: decimal.NewFromInt(3000),
		Status:     domain.StatusConfirmed,
	}
}

func TestPublisher_Publish(t *testing.T) {
	producer := new(mockProducer)
	var captured []byte
	producer.On("Publish", mock.Anything, "stay.bookings", "42", mock.Anything, mock.MatchedBy(func(h map[string]string) bool {
		return h["event_type"] == "booking.confirmed" && h["event_id"] != ""
	})).Run(func(args mock.Arguments) {
		captured = args.Get(3).([]byte)
	}).Return(nil)

	p := NewPublisher(producer, "stay.bookings", nil, nopLogger{})
	p.now = func() time.Time { return time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC) }

	payment := &domain.Payment{ID: 7, BookingID: 42, Amount: decimal.NewFromInt(3540), Status: domain.PaymentStatusPaid, Method: domain.PaymentMethodCard}
	p.Publish(context.Background(), TypeConfirmed, sampleBooking(), payment)

	producer.AssertExpectations(t)

	var event Event
	require.NoError(t, json.Unmarshal(captured, &event))
	assert.Equal(t, TypeConfirmed, event.Type)
	assert.Equal(t, "3000.00", event.Booking.TotalPrice)
	assert.Equal(t, "540.00", event.Booking.TaxAmount)
	assert.Equal(t, 3, event.Booking.Nights)
	require.NotNil(t, event.Payment)
	assert.Equal(t, "3540.00", event.Payment.Amount)
}

func TestPublisher_FailureIsSwallowed(t *testing.T) {
	producer := new(mockProducer)
	producer.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("broker unavailable"))

	p := NewPublisher(producer, "stay.bookings", nil, nopLogger{})
	assert.NotPanics(t, func() {
		p.Publish(context.Background(), TypeCreated, sampleBooking(), nil)
	})
	producer.AssertExpectations(t)
}

func TestTypeForStatus(t *testing.T) {
	assert.Equal(t, TypeConfirmed, TypeForStatus(domain.StatusPending, domain.StatusConfirmed))
	assert.Equal(t, TypeCancelled, TypeForStatus(domain.StatusConfirmed, domain.StatusCancelled))
	assert.Equal(t, TypeUpdated, TypeForStatus(domain.StatusPending, domain.StatusPending))
}
