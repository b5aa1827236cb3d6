package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// Repository репозиторий услуг и дополнений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"store_id",
		"name",
		"duration_minutes",
		"price",
		"category",
		"is_active",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var s domain.Service
	var category sql.NullString
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.StoreID,
		&s.Name,
		&s.DurationMinutes,
		&s.Price,
		&category,
		&s.IsActive,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %w", ErrScanRow, err)
	}
	s.Category = category.String

	return &s, nil
}

// GetAddonsByIDs получает дополнения услуги serviceID из списка ids
// Чужие и несуществующие id просто не попадают в результат
func (r *Repository) GetAddonsByIDs(ctx context.Context, serviceID int64, ids []int64) ([]*domain.Addon, error) {
	if len(ids) == 0 {
		return []*domain.Addon{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "service_id", "name", "duration_minutes", "price").
		From("addons").
		Where(squirrel.Eq{"service_id": serviceID, "id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAddonsByIDs - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAddonsByIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	addons := make([]*domain.Addon, 0, len(ids))
	for rows.Next() {
		var a domain.Addon
		if err := rows.Scan(&a.ID, &a.ServiceID, &a.Name, &a.DurationMinutes, &a.Price); err != nil {
			return nil, fmt.Errorf("%w: GetAddonsByIDs - scan row: %w", ErrScanRow, err)
		}
		addons = append(addons, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAddonsByIDs - rows error: %w", ErrScanRow, err)
	}

	return addons, nil
}
