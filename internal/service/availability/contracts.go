package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetWeeklySchedule(ctx context.Context, providerID int64) (map[time.Weekday]domain.WeeklyScheduleEntry, error)
	GetOverride(ctx context.Context, providerID int64, date time.Time) (*domain.DateOverride, error)
	GetWorkingHours(ctx context.Context, weekday time.Weekday) (*domain.WorkingHours, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetBookedIntervals(ctx context.Context, providerID int64, date time.Time) ([]domain.BookedInterval, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
