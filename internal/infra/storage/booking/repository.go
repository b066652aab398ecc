package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StayService/internal/domain"
	"github.com/m04kA/SMC-StayService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StayService/pkg/pgerr"
	"github.com/m04kA/SMC-StayService/pkg/psqlbuilder"
)

// bookingColumns порядок колонок совпадает с порядком полей в scanBooking
var bookingColumns = []string{
	"id",
	"listing_id",
	"user_id",
	"check_in",
	"check_out",
	"adult",
	"children",
	"infant",
	"total_price",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Должен вызываться внутри транзакции вместе с проверкой доступности дат.
// Пересечение с другим бронированием, пойманное ограничением bookings_no_overlap, возвращается как ErrDatesOverlap.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"listing_id",
			"user_id",
			"check_in",
			"check_out",
			"adult",
			"children",
			"infant",
			"total_price",
			"status",
		).
		Values(
			booking.ListingID,
			booking.UserID,
			booking.CheckIn,
			booking.CheckOut,
			booking.Adults,
			booking.Children,
			booking.Infants,
			booking.TotalPrice,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, classifyWriteError("Create - execute insert", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", id, false)
}

// GetByIDForUpdate получает бронирование по ID и блокирует строку до конца транзакции
// Вне транзакции работает как GetByID
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByIDForUpdate", id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getOne(ctx context.Context, op string, id int64, forUpdate bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	return booking, nil
}

// GetByUserID получает бронирования пользователя, новые первыми
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByHostID получает бронирования на объявления хоста, новые первыми
func (r *Repository) GetByHostID(ctx context.Context, hostID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := make([]string, len(bookingColumns))
	for i, c := range bookingColumns {
		columns[i] = "b." + c
	}

	query, args, err := psqlbuilder.Select(columns...).
		From("bookings b").
		Join("listings l ON l.id = b.listing_id").
		Where(squirrel.Eq{"l.host_id": hostID}).
		OrderBy("b.created_at DESC", "b.id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByHostID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHostID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountOverlapping считает занимающие даты бронирования объявления, пересекающиеся с интервалом [stay.CheckIn, stay.CheckOut)
// excludeID исключает из проверки само редактируемое бронирование
func (r *Repository) CountOverlapping(ctx context.Context, listingID int64, stay domain.Stay, excludeID *int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"listing_id": listingID}).
		Where(squirrel.Eq{"status": statusStrings(domain.OccupyingStatuses)}).
		Where(squirrel.Lt{"check_in": stay.CheckOut}).
		Where(squirrel.Gt{"check_out": stay.CheckIn})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Update сохраняет редактируемые поля бронирования и обновляет updated_at
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("check_in", booking.CheckIn).
		Set("check_out", booking.CheckOut).
		Set("adult", booking.Adults).
		Set("children", booking.Children).
		Set("infant", booking.Infants).
		Set("total_price", booking.TotalPrice).
		Set("status", booking.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, classifyWriteError("Update - execute update", err)
	}

	booking.UpdatedAt = updatedAt
	return booking, nil
}

// UpdateStatus обновляет статус бронирования и возвращает новое значение updated_at
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrBookingNotFound
	}
	if err != nil {
		return time.Time{}, classifyWriteError("UpdateStatus - execute update", err)
	}

	return updatedAt, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ListingID,
		&booking.UserID,
		&booking.CheckIn,
		&booking.CheckOut,
		&booking.Adults,
		&booking.Children,
		&booking.Infants,
		&booking.TotalPrice,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// classifyWriteError переводит ошибки ограничений PostgreSQL в ошибки репозитория
func classifyWriteError(op string, err error) error {
	switch {
	case pgerr.IsExclusionViolation(err):
		return ErrDatesOverlap
	case pgerr.IsSerializationFailure(err):
		return fmt.Errorf("%w: %s: %v", ErrSerialization, op, err)
	case pgerr.IsForeignKeyViolation(err):
		return ErrInvalidReference
	default:
		return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
	}
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
