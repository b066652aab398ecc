package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StayService/pkg/types"
)

func TestBookingStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		allowed  bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, BookingStatus("archived").IsValid())
}

func TestBookingStatus_Occupies(t *testing.T) {
	assert.True(t, StatusPending.Occupies())
	assert.True(t, StatusConfirmed.Occupies())
	assert.True(t, StatusCompleted.Occupies())
	assert.False(t, StatusCancelled.Occupies())
}

func TestStay_Overlaps(t *testing.T) {
	base := Stay{CheckIn: types.MustParseDate("2025-06-01"), CheckOut: types.MustParseDate("2025-06-04")}

	tests := []struct {
		name     string
		in, out  string
		overlaps bool
	}{
		{"inside", "2025-06-02", "2025-06-03", true},
		{"same dates", "2025-06-01", "2025-06-04", true},
		{"covers", "2025-05-30", "2025-06-10", true},
		{"starts before ends inside", "2025-05-30", "2025-06-02", true},
		{"back to back after", "2025-06-04", "2025-06-06", false},
		{"back to back before", "2025-05-29", "2025-06-01", false},
		{"far away", "2025-07-01", "2025-07-03", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := Stay{CheckIn: types.MustParseDate(tt.in), CheckOut: types.MustParseDate(tt.out)}
			assert.Equal(t, tt.overlaps, base.Overlaps(other))
			assert.Equal(t, tt.overlaps, other.Overlaps(base))
		})
	}
}

func TestNewStay(t *testing.T) {
	s, err := NewStay(types.MustParseDate("2025-06-01"), types.MustParseDate("2025-06-04"))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Nights())

	_, err = NewStay(types.MustParseDate("2025-06-04"), types.MustParseDate("2025-06-04"))
	assert.ErrorIs(t, err, ErrCheckOutBeforeCheckIn)

	_, err = NewStay(types.MustParseDate("2025-06-04"), types.MustParseDate("2025-06-01"))
	assert.ErrorIs(t, err, ErrCheckOutBeforeCheckIn)

	_, err = NewStay(types.Date{}, types.MustParseDate("2025-06-01"))
	assert.ErrorIs(t, err, ErrDatesRequired)
}

func TestCalculatePrice(t *testing.T) {
	q, err := CalculatePrice(3, decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.Equal(t, "3000", q.Subtotal.String())
	assert.Equal(t, "540.00", q.Tax.StringFixed(MoneyPlaces))
	assert.Equal(t, "3540.00", q.Total.StringFixed(MoneyPlaces))

	// subtotal is never rounded, only tax
	q, err = CalculatePrice(2, decimal.RequireFromString("33.335"))
	require.NoError(t, err)
	assert.Equal(t, "66.67", q.Subtotal.String())
	assert.Equal(t, "12.00", q.Tax.StringFixed(MoneyPlaces))

	_, err = CalculatePrice(0, decimal.NewFromInt(1000))
	assert.ErrorIs(t, err, ErrInvalidNights)

	_, err = CalculatePrice(1, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrNegativeRate)
}

func TestBooking_TaxFromStoredSubtotal(t *testing.T) {
	b := &Booking{
		CheckIn:    types.MustParseDate("2025-06-01"),
		CheckOut:   types.MustParseDate("2025-06-04"),
		TotalPrice: decimal.NewFromInt(3000),
	}

	assert.Equal(t, 3, b.Nights())
	assert.Equal(t, "540.00", b.TaxAmount().StringFixed(MoneyPlaces))
	assert.Equal(t, "3540.00", b.GrandTotal().StringFixed(MoneyPlaces))
}

func TestBooking_CanBeCancelledOn(t *testing.T) {
	b := &Booking{CheckIn: types.MustParseDate("2025-06-01"), CheckOut: types.MustParseDate("2025-06-04")}

	assert.True(t, b.CanBeCancelledOn(types.MustParseDate("2025-05-31")))
	assert.False(t, b.CanBeCancelledOn(types.MustParseDate("2025-06-01")))
	assert.False(t, b.CanBeCancelledOn(types.MustParseDate("2025-06-02")))
}

func TestBookingChanges(t *testing.T) {
	d := types.MustParseDate("2025-06-01")
	n := 2

	assert.True(t, BookingChanges{}.IsEmpty())
	assert.True(t, BookingChanges{CheckOut: &d}.HasDateChanges())
	assert.True(t, BookingChanges{Children: &n}.HasOccupancyChanges())
	assert.False(t, BookingChanges{Children: &n}.HasDateChanges())
}

func TestBookingChanges_DiffFrom(t *testing.T) {
	b := &Booking{CheckIn: types.MustParseDate("2025-06-01"), CheckOut: types.MustParseDate("2025-06-04"), Adults: 2}
	checkIn := types.MustParseDate("2025-06-01")
	checkOut := types.MustParseDate("2025-06-05")
	adults, infants := 2, 1

	diff := BookingChanges{CheckIn: &checkIn, CheckOut: &checkOut, Adults: &adults, Infants: &infants}.DiffFrom(b)

	assert.Nil(t, diff.CheckIn)
	assert.Nil(t, diff.Adults)
	require.NotNil(t, diff.CheckOut)
	assert.True(t, diff.CheckOut.Equal(checkOut))
	require.NotNil(t, diff.Infants)
	assert.True(t, BookingChanges{CheckIn: &checkIn, Adults: &adults}.DiffFrom(b).IsEmpty())
}

func TestValidateOccupancy(t *testing.T) {
	assert.NoError(t, ValidateOccupancy(1, 0, 0))
	assert.NoError(t, ValidateOccupancy(2, 10, 4))
	assert.ErrorIs(t, ValidateOccupancy(0, 2, 0), ErrNotEnoughAdults)
	assert.ErrorIs(t, ValidateOccupancy(2, -1, 0), ErrNegativeGuests)
	assert.ErrorIs(t, ValidateOccupancy(10, 5, 2), ErrTooManyGuests)
}
