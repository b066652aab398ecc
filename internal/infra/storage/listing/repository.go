package listing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StayService/internal/domain"
	"github.com/m04kA/SMC-StayService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StayService/pkg/psqlbuilder"
)

// Repository доступ на чтение к объявлениям
// Таблицей listings владеет сервис объявлений, здесь она только читается и блокируется
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория объявлений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает объявление по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	return r.getOne(ctx, "GetByID", id, false)
}

// LockByID получает объявление и блокирует его строку до конца транзакции.
// Сериализует создание и редактирование бронирований одного объявления.
func (r *Repository) LockByID(ctx context.Context, id int64) (*domain.Listing, error) {
	return r.getOne(ctx, "LockByID", id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getOne(ctx context.Context, op string, id int64, forUpdate bool) (*domain.Listing, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "host_id", "title", "address", "price_per_night").
		From("listings").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var l domain.Listing
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&l.ID,
		&l.HostID,
		&l.Title,
		&l.Address,
		&l.NightlyRate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan listing: %v", ErrScanRow, op, err)
	}

	return &l, nil
}

// GetByIDs получает объявления по списку ID
// Отсутствующие ID просто не попадают в результат
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Listing, error) {
	result := make(map[int64]*domain.Listing, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "host_id", "title", "address", "price_per_night").
		From("listings").
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.Listing
		if err := rows.Scan(&l.ID, &l.HostID, &l.Title, &l.Address, &l.NightlyRate); err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %v", ErrScanRow, err)
		}
		result[l.ID] = &l
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
