package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL unique_violation
const pgUniqueViolation = "23505"

var storeColumns = []string{
	"id",
	"slug",
	"name",
	"timezone",
	"is_active",
	"calendar_interval_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий салонов и их часов работы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает салон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetBySlug получает салон по публичному slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	return r.getOne(ctx, "GetBySlug", squirrel.Eq{"slug": slug})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Store, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(storeColumns...).
		From("stores").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	var store domain.Store
	var timezone sql.NullString
	var interval sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&store.ID,
		&store.Slug,
		&store.Name,
		&timezone,
		&store.IsActive,
		&interval,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan store: %w", ErrScanRow, op, err)
	}

	store.Timezone = timezone.String
	if interval.Valid {
		minutes := int(interval.Int64)
		store.CalendarIntervalMinutes = &minutes
	}
	store.CreatedAt = createdAt.Time
	store.UpdatedAt = updatedAt.Time

	return &store, nil
}

// GetBusinessHours получает часы работы салона, упорядоченные по дню недели
// Отсутствующий день означает, что салон в этот день не работает
func (r *Repository) GetBusinessHours(ctx context.Context, storeID int64) ([]*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"store_id",
		"day_of_week",
		"open_time",
		"close_time",
		"is_closed",
	).
		From("business_hours").
		Where(squirrel.Eq{"store_id": storeID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessHours - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessHours - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]*domain.BusinessHours, 0, 7)
	for rows.Next() {
		var h domain.BusinessHours
		if err := rows.Scan(&h.ID, &h.StoreID, &h.DayOfWeek, &h.OpenTime, &h.CloseTime, &h.IsClosed); err != nil {
			return nil, fmt.Errorf("%w: GetBusinessHours - scan row: %w", ErrScanRow, err)
		}
		hours = append(hours, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBusinessHours - rows error: %w", ErrScanRow, err)
	}

	return hours, nil
}

// ReplaceBusinessHours заменяет недельное расписание салона целиком
// Вызывается внутри транзакции (txmanager.Do), иначе удаление и вставка не атомарны
func (r *Repository) ReplaceBusinessHours(ctx context.Context, storeID int64, hours []*domain.BusinessHours) ([]*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("business_hours").
		Where(squirrel.Eq{"store_id": storeID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceBusinessHours - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceBusinessHours - execute delete: %w", ErrExecQuery, err)
	}

	if len(hours) == 0 {
		return []*domain.BusinessHours{}, nil
	}

	insert := psqlbuilder.Insert("business_hours").
		Columns("store_id", "day_of_week", "open_time", "close_time", "is_closed")
	for _, h := range hours {
		insert = insert.Values(storeID, h.DayOfWeek, h.OpenTime, h.CloseTime, h.IsClosed)
	}

	query, args, err = insert.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceBusinessHours - build insert query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateDay
		}
		return nil, fmt.Errorf("%w: ReplaceBusinessHours - execute insert: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	// RETURNING отдает строки в порядке VALUES
	for i := 0; rows.Next(); i++ {
		if i >= len(hours) {
			break
		}
		if err := rows.Scan(&hours[i].ID); err != nil {
			return nil, fmt.Errorf("%w: ReplaceBusinessHours - scan id: %w", ErrScanRow, err)
		}
		hours[i].StoreID = storeID
	}

	if err := rows.Err(); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateDay
		}
		return nil, fmt.Errorf("%w: ReplaceBusinessHours - rows error: %w", ErrScanRow, err)
	}

	return hours, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}
