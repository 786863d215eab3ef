package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ActorRole identifies who performs an action on an appointment
type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleProvider ActorRole = "provider"
)

// Actor is the explicit identity performing a status transition
type Actor struct {
	ID   int64
	Role ActorRole
}

// Appointment represents a booked time slot with the provider
type Appointment struct {
	ID              int64
	ProviderID      int64
	ServiceID       int64
	CustomerID      int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for history
	ServiceName string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its interval.
// Only cancellation frees the interval; a completed appointment keeps it
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsTerminal returns true if no further transitions are allowed
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted
}

// CanTransition reports whether the status machine allows the edge
// pending -> confirmed | cancelled; confirmed -> completed | cancelled;
// completed and cancelled are terminal
func (a *Appointment) CanTransition(to AppointmentStatus) bool {
	switch a.Status {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// TransitionAllowedFor reports whether the actor may perform the transition.
// Customers may only cancel their own pending appointment; the provider may
// move their appointments along any outgoing edge
func (a *Appointment) TransitionAllowedFor(actor Actor, to AppointmentStatus) bool {
	if !a.CanTransition(to) {
		return false
	}

	switch actor.Role {
	case RoleCustomer:
		return actor.ID == a.CustomerID && a.Status == StatusPending && to == StatusCancelled
	case RoleProvider:
		return actor.ID == a.ProviderID
	default:
		return false
	}
}

// CustomerAppointmentsFilter фильтр бронирований клиента
type CustomerAppointmentsFilter struct {
	CustomerID int64
	Status     *AppointmentStatus
}

// ProviderAppointmentsFilter фильтр бронирований мастера
type ProviderAppointmentsFilter struct {
	ProviderID      int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые записи
}
