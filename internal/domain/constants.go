package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// Default schedule values: when neither a weekly entry, an override nor
// business working hours exist, the resolver falls back to 09:00-17:00
const (
	DefaultWindowStart types.TimeString = "09:00"
	DefaultWindowEnd   types.TimeString = "17:00"
)

// Slot generation and validation constants
const (
	SlotIntervalMinutes    = 30 // шаг сетки слотов
	BookingLeadTimeMinutes = 60 // минимальный зазор до слота на сегодня

	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, не занимающие интервал в расписании
// Используются при выборке занятых интервалов и проверке недельного лимита
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}

// ActiveStatuses статусы, занимающие интервал в расписании
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
