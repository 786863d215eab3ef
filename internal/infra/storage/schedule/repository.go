package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// DBExecutor общий интерфейс исполнителя запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий расписаний: недельное расписание мастера,
// переопределения на дату и базовые часы работы бизнеса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeeklySchedule получает недельное расписание мастера
// Возвращает карту по дням недели; отсутствующие дни - забота резолвера
func (r *Repository) GetWeeklySchedule(ctx context.Context, providerID int64) (map[time.Weekday]domain.WeeklyScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"weekday",
		"start_time",
		"end_time",
		"status",
		"created_at",
		"updated_at",
	).
		From("weekly_schedules").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make(map[time.Weekday]domain.WeeklyScheduleEntry)

	for rows.Next() {
		var entry domain.WeeklyScheduleEntry
		var weekday int
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.ProviderID,
			&weekday,
			&entry.StartTime,
			&entry.EndTime,
			&entry.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeeklySchedule - scan row: %w", ErrScanRow, err)
		}

		// Некорректный день недели в хранилище трактуем как отсутствие записи,
		// резолвер провалится дальше по цепочке приоритетов
		if weekday < 0 || weekday > 6 {
			continue
		}

		entry.Weekday = time.Weekday(weekday)
		entry.CreatedAt = createdAt.Time
		entry.UpdatedAt = updatedAt.Time
		entries[entry.Weekday] = entry
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - rows error: %w", ErrScanRow, err)
	}

	return entries, nil
}

// UpsertWeeklyEntry создает или обновляет запись недельного расписания
// Окно с end <= start отклоняется на записи (ErrInvalidTimeRange)
func (r *Repository) UpsertWeeklyEntry(ctx context.Context, entry *domain.WeeklyScheduleEntry) (*domain.WeeklyScheduleEntry, error) {
	if err := validateTimeRange(entry.StartTime, entry.EndTime, entry.Status); err != nil {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekly_schedules").
		Columns("provider_id", "weekday", "start_time", "end_time", "status").
		Values(entry.ProviderID, int(entry.Weekday), entry.StartTime, entry.EndTime, entry.Status).
		Suffix(`ON CONFLICT (provider_id, weekday) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertWeeklyEntry - build upsert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertWeeklyEntry - execute upsert: %w", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return entry, nil
}

// GetOverride получает переопределение расписания мастера на конкретную дату
func (r *Repository) GetOverride(ctx context.Context, providerID int64, date time.Time) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"override_date",
		"start_time",
		"end_time",
		"status",
		"created_at",
		"updated_at",
	).
		From("date_overrides").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"override_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - build select query: %w", ErrBuildQuery, err)
	}

	override, err := scanOverride(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - scan override: %w", ErrScanRow, err)
	}

	return override, nil
}

// GetOverridesBetween получает переопределения мастера за период [from, to]
func (r *Repository) GetOverridesBetween(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"override_date",
		"start_time",
		"end_time",
		"status",
		"created_at",
		"updated_at",
	).
		From("date_overrides").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.GtOrEq{"override_date": from}).
		Where(squirrel.LtOrEq{"override_date": to}).
		OrderBy("override_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesBetween - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesBetween - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.DateOverride, 0)
	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetOverridesBetween - scan row: %w", ErrScanRow, err)
		}
		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOverridesBetween - rows error: %w", ErrScanRow, err)
	}

	return overrides, nil
}

// UpsertOverride создает или обновляет переопределение на дату
// Окно с end <= start отклоняется на записи (ErrInvalidTimeRange)
func (r *Repository) UpsertOverride(ctx context.Context, override *domain.DateOverride) (*domain.DateOverride, error) {
	if err := validateTimeRange(override.StartTime, override.EndTime, override.Status); err != nil {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("date_overrides").
		Columns("provider_id", "override_date", "start_time", "end_time", "status").
		Values(override.ProviderID, override.Date, override.StartTime, override.EndTime, override.Status).
		Suffix(`ON CONFLICT (provider_id, override_date) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - build upsert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&override.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - execute upsert: %w", ErrExecQuery, err)
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return override, nil
}

// DeleteOverride удаляет переопределение на дату
func (r *Repository) DeleteOverride(ctx context.Context, providerID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("date_overrides").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"override_date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

// GetWorkingHours получает базовые часы работы бизнеса на день недели
func (r *Repository) GetWorkingHours(ctx context.Context, weekday time.Weekday) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"weekday",
		"open_time",
		"close_time",
		"is_open",
	).
		From("working_hours").
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - build select query: %w", ErrBuildQuery, err)
	}

	var hours domain.WorkingHours
	var wd int

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hours.ID,
		&wd,
		&hours.OpenTime,
		&hours.CloseTime,
		&hours.IsOpen,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - scan working hours: %w", ErrScanRow, err)
	}

	hours.Weekday = time.Weekday(wd)

	return &hours, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOverride(row rowScanner) (*domain.DateOverride, error) {
	var override domain.DateOverride
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&override.ID,
		&override.ProviderID,
		&override.Date,
		&override.StartTime,
		&override.EndTime,
		&override.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return &override, nil
}

// validateTimeRange проверяет окно перед записью
// Для статуса unavailable времена окна не используются и не проверяются.
// Конец окна может быть types.EndOfDay ("24:00") - окно до конца суток
func validateTimeRange(start, end types.TimeString, status domain.ScheduleStatus) error {
	if status == domain.ScheduleUnavailable {
		return nil
	}
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTimeRange, err)
	}
	if end != types.EndOfDay {
		if err := end.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTimeRange, err)
		}
	}
	if !start.IsBefore(end) {
		return ErrInvalidTimeRange
	}
	return nil
}
