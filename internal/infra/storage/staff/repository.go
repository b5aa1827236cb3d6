package staff

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

// Repository репозиторий мастеров и их индивидуальных графиков
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает мастера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "store_id", "name", "is_active").
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var s domain.Staff
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.StoreID, &s.Name, &s.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan staff: %w", ErrScanRow, err)
	}

	return &s, nil
}

// GetActiveByStore получает всех активных мастеров салона
func (r *Repository) GetActiveByStore(ctx context.Context, storeID int64) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "store_id", "name", "is_active").
		From("staff").
		Where(squirrel.Eq{"store_id": storeID, "is_active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStore - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStore - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanStaff(rows)
}

// GetForService получает мастеров салона, назначенных на услугу (включая неактивных)
// Пустой результат означает, что у услуги нет явного назначения
func (r *Repository) GetForService(ctx context.Context, serviceID, storeID int64) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("s.id", "s.store_id", "s.name", "s.is_active").
		From("staff s").
		Join("service_staff ss ON ss.staff_id = s.id").
		Where(squirrel.Eq{"ss.service_id": serviceID, "s.store_id": storeID}).
		OrderBy("s.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForService - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForService - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanStaff(rows)
}

// GetAvailabilityRules получает индивидуальный график мастера на всю неделю
func (r *Repository) GetAvailabilityRules(ctx context.Context, staffID int64) ([]*domain.StaffAvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "staff_id", "day_of_week", "start_time", "end_time").
		From("staff_availability_rules").
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailabilityRules - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailabilityRules - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.StaffAvailabilityRule, 0)
	for rows.Next() {
		var rule domain.StaffAvailabilityRule
		if err := rows.Scan(&rule.ID, &rule.StaffID, &rule.DayOfWeek, &rule.StartTime, &rule.EndTime); err != nil {
			return nil, fmt.Errorf("%w: GetAvailabilityRules - scan row: %w", ErrScanRow, err)
		}
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAvailabilityRules - rows error: %w", ErrScanRow, err)
	}

	return rules, nil
}

func (r *Repository) scanStaff(rows *sql.Rows) ([]*domain.Staff, error) {
	result := make([]*domain.Staff, 0)

	for rows.Next() {
		var s domain.Staff
		if err := rows.Scan(&s.ID, &s.StoreID, &s.Name, &s.IsActive); err != nil {
			return nil, fmt.Errorf("%w: scanStaff - scan row: %w", ErrScanRow, err)
		}
		result = append(result, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanStaff - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}
