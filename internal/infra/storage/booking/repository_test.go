package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StayService/internal/domain"
	"github.com/m04kA/SMC-StayService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StayService/pkg/ptr"
	"github.com/m04kA/SMC-StayService/pkg/types"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil, "test")), mock
}

func bookingRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns).AddRow(
		int64(1), int64(10), int64(100),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		2, 1, 0, "3000.00", "pending", now, now,
	)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings (listing_id,user_id,check_in,check_out,adult,children,infant,total_price,status)")).
		WithArgs(int64(10), int64(100), sqlmock.AnyArg(), sqlmock.AnyArg(), 2, 0, 0, "3000", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	created, err := repo.Create(context.Background(), &domain.Booking{
		ListingID:  10,
		UserID:     100,
		CheckIn:    types.MustParseDate("2025-06-01"),
		CheckOut:   types.MustParseDate("2025-06-04"),
		Adults:     2,
		TotalPrice: decimal.NewFromInt(3000),
		Status:     domain.StatusPending,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ExclusionViolation(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})

	_, err := repo.Create(context.Background(), &domain.Booking{
		CheckIn:  types.MustParseDate("2025-06-02"),
		CheckOut: types.MustParseDate("2025-06-03"),
		Status:   domain.StatusPending,
	})

	assert.ErrorIs(t, err, ErrDatesOverlap)
}

func TestRepository_Create_SerializationFailure(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO bookings").WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.Create(context.Background(), &domain.Booking{Status: domain.StatusPending})
	assert.ErrorIs(t, err, ErrSerialization)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(bookingRow(now))

	b, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", b.CheckIn.String())
	assert.Equal(t, "2025-06-04", b.CheckOut.String())
	assert.Equal(t, 3, b.Nights())
	assert.True(t, decimal.NewFromInt(3000).Equal(b.TotalPrice))
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, 1, b.Children)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM bookings").WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_GetByIDForUpdate_LocksInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	wrapped := dbmetrics.Wrap(db, nil, "test")
	repo := NewRepository(wrapped)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 FOR UPDATE")).WillReturnRows(bookingRow(time.Now()))
	mock.ExpectRollback()

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	_, err = repo.GetByIDForUpdate(dbmetrics.WithTx(context.Background(), tx), 1)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountOverlapping(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM bookings WHERE listing_id = $1 AND status IN ($2,$3,$4) AND check_in < $5 AND check_out > $6 AND id <> $7",
	)).
		WithArgs(int64(10), "pending", "confirmed", "completed", sqlmock.AnyArg(), sqlmock.AnyArg(), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	stay := domain.Stay{CheckIn: types.MustParseDate("2025-06-02"), CheckOut: types.MustParseDate("2025-06-03")}
	count, err := repo.CountOverlapping(context.Background(), 10, stay, ptr.Ptr(int64(5)))

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByHostID(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings b JOIN listings l ON l.id = b.listing_id WHERE l.host_id = $1 ORDER BY b.created_at DESC, b.id DESC")).
		WithArgs(int64(7)).
		WillReturnRows(bookingRow(time.Now()))

	bookings, err := repo.GetByHostID(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at")).
		WithArgs("confirmed", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	updatedAt, err := repo.UpdateStatus(context.Background(), 1, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, now, updatedAt)

	mock.ExpectQuery("UPDATE bookings").WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))
	_, err = repo.UpdateStatus(context.Background(), 2, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
