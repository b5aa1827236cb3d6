package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var appointmentColumns = []string{
	"id",
	"store_id",
	"staff_id",
	"customer_id",
	"service_id",
	"date",
	"duration_minutes",
	"status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись
// Если в контексте есть транзакция, вставка выполняется в ней
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"store_id",
			"staff_id",
			"customer_id",
			"service_id",
			"date",
			"duration_minutes",
			"status",
			"notes",
		).
		Values(
			a.StoreID,
			a.StaffID,
			a.CustomerID,
			a.ServiceID,
			a.Date.UTC(),
			a.DurationMinutes,
			a.Status,
			a.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// GetForStaffOnDate получает записи мастера, занимающие время, с началом в [from, to)
// from и to - моменты локальной полуночи салона в UTC.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельное создание записи
// на того же мастера дождалось фиксации.
func (r *Repository) GetForStaffOnDate(ctx context.Context, staffID, storeID int64, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{
			"staff_id": staffID,
			"store_id": storeID,
			"status":   busyStatuses(),
		}).
		Where(squirrel.GtOrEq{"date": from.UTC()}).
		Where(squirrel.Lt{"date": to.UTC()}).
		OrderBy("date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetForStaffOnDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForStaffOnDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetForStaffOnDate - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetForStaffOnDate - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// Cancel отменяет запись с указанием причины
// Отменяются только записи в статусе pending или confirmed, иначе ErrCannotCancel
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     id,
			"status": []domain.AppointmentStatus{domain.StatusPending, domain.StatusConfirmed},
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCannotCancel
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var status string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.StoreID,
		&a.StaffID,
		&a.CustomerID,
		&a.ServiceID,
		&a.Date,
		&a.DurationMinutes,
		&status,
		&a.Notes,
		&a.CancellationReason,
		&a.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Status, err = domain.ParseAppointmentStatus(status)
	if err != nil {
		return nil, err
	}

	a.Date = a.Date.UTC()
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

func busyStatuses() []string {
	statuses := make([]string, 0, len(domain.BusyStatuses))
	for _, s := range domain.BusyStatuses {
		statuses = append(statuses, string(s))
	}
	return statuses
}
