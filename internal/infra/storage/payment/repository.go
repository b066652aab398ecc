package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StayService/internal/domain"
	"github.com/m04kA/SMC-StayService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StayService/pkg/pgerr"
	"github.com/m04kA/SMC-StayService/pkg/psqlbuilder"
)

var paymentColumns = []string{
	"id",
	"booking_id",
	"amount",
	"status",
	"payment_method",
	"provider_payment_id",
	"created_at",
	"updated_at",
}

// upsertSuffix атомарная замена единственного платежа бронирования
const upsertSuffix = `ON CONFLICT (booking_id) DO UPDATE SET
	amount = EXCLUDED.amount,
	status = EXCLUDED.status,
	payment_method = EXCLUDED.payment_method,
	provider_payment_id = EXCLUDED.provider_payment_id,
	updated_at = NOW()
RETURNING id, created_at, updated_at`

// Repository репозиторий платежей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает платеж бронирования или заменяет существующий (один платеж на бронирование).
// Возвращает ErrBookingNotFound, если бронирования не существует.
func (r *Repository) Upsert(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("booking_id", "amount", "status", "payment_method", "provider_payment_id").
		Values(p.BookingID, p.Amount, p.Status, p.Method, p.ProviderPaymentID).
		Suffix(upsertSuffix).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByBookingID получает платеж бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	return r.getOne(ctx, "GetByBookingID", bookingID, false)
}

// GetByBookingIDForUpdate получает платеж бронирования и блокирует строку в транзакции
func (r *Repository) GetByBookingIDForUpdate(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	return r.getOne(ctx, "GetByBookingIDForUpdate", bookingID, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getOne(ctx context.Context, op string, bookingID int64, forUpdate bool) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID})
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan payment: %v", ErrScanRow, op, err)
	}

	return p, nil
}

// GetByBookingIDs получает платежи нескольких бронирований, ключ - ID бронирования
func (r *Repository) GetByBookingIDs(ctx context.Context, bookingIDs []int64) (map[int64]*domain.Payment, error) {
	result := make(map[int64]*domain.Payment, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBookingIDs - scan row: %v", ErrScanRow, err)
		}
		result[p.BookingID] = p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBookingIDs - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	var providerID sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.Amount,
		&p.Status,
		&p.Method,
		&providerID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if providerID.Valid {
		p.ProviderPaymentID = &providerID.String
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
