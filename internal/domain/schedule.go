package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ScheduleStatus availability flag of a schedule entry
type ScheduleStatus string

const (
	ScheduleAvailable   ScheduleStatus = "available"
	ScheduleUnavailable ScheduleStatus = "unavailable"
)

// WeeklyScheduleEntry is the provider's recurring entry for one weekday
type WeeklyScheduleEntry struct {
	ID         int64
	ProviderID int64
	Weekday    time.Weekday
	StartTime  types.TimeString
	EndTime    types.TimeString
	Status     ScheduleStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DateOverride is a one-off schedule entry for a specific date,
// taking precedence over the weekly schedule
type DateOverride struct {
	ID         int64
	ProviderID int64
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Status     ScheduleStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// WorkingHours is the business-wide fallback for one weekday,
// used when the provider has neither a weekly entry nor an override
type WorkingHours struct {
	ID        int64
	Weekday   time.Weekday
	OpenTime  types.TimeString
	CloseTime types.TimeString
	IsOpen    bool
}

// Window is the resolved working window of a provider for one date.
// An unavailable window yields no slots; it is not an error
type Window struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
}

// IsEmpty returns true if the window cannot contain any slot
func (w Window) IsEmpty() bool {
	return !w.Available || w.StartTime.IsZero() || w.EndTime.IsZero() || !w.StartTime.IsBefore(w.EndTime)
}

// Covers reports whether the half-open interval [start, start+duration)
// lies inside the window
func (w Window) Covers(start types.TimeString, durationMinutes int) bool {
	if w.IsEmpty() {
		return false
	}
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return false
	}
	return !start.IsBefore(w.StartTime) && !end.IsAfter(w.EndTime)
}

// Service is a bookable service; duration sizes the slots
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BookedInterval is an occupied interval of a provider's day
// (non-cancelled appointments only)
type BookedInterval struct {
	StartTime       types.TimeString
	DurationMinutes int
}
