package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_CanTransition(t *testing.T) {
	tests := []struct {
		name string
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{name: "pending to confirmed", from: StatusPending, to: StatusConfirmed, want: true},
		{name: "pending to cancelled", from: StatusPending, to: StatusCancelled, want: true},
		{name: "pending to completed skips confirmation", from: StatusPending, to: StatusCompleted, want: false},
		{name: "confirmed to completed", from: StatusConfirmed, to: StatusCompleted, want: true},
		{name: "confirmed to cancelled", from: StatusConfirmed, to: StatusCancelled, want: true},
		{name: "confirmed back to pending", from: StatusConfirmed, to: StatusPending, want: false},
		{name: "completed is terminal", from: StatusCompleted, to: StatusCancelled, want: false},
		{name: "cancelled is terminal", from: StatusCancelled, to: StatusPending, want: false},
		{name: "cancelled cannot be confirmed", from: StatusCancelled, to: StatusConfirmed, want: false},
		{name: "self transition is not allowed", from: StatusPending, to: StatusPending, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Appointment{Status: tt.from}
			assert.Equal(t, tt.want, a.CanTransition(tt.to))
		})
	}
}

func TestAppointment_TransitionAllowedFor(t *testing.T) {
	appt := &Appointment{
		ID:         1,
		ProviderID: 100,
		CustomerID: 200,
	}

	tests := []struct {
		name   string
		status AppointmentStatus
		actor  Actor
		to     AppointmentStatus
		want   bool
	}{
		{
			name:   "customer cancels own pending appointment",
			status: StatusPending,
			actor:  Actor{ID: 200, Role: RoleCustomer},
			to:     StatusCancelled,
			want:   true,
		},
		{
			name:   "customer cannot confirm",
			status: StatusPending,
			actor:  Actor{ID: 200, Role: RoleCustomer},
			to:     StatusConfirmed,
			want:   false,
		},
		{
			name:   "customer cannot cancel confirmed appointment",
			status: StatusConfirmed,
			actor:  Actor{ID: 200, Role: RoleCustomer},
			to:     StatusCancelled,
			want:   false,
		},
		{
			name:   "another customer cannot cancel",
			status: StatusPending,
			actor:  Actor{ID: 999, Role: RoleCustomer},
			to:     StatusCancelled,
			want:   false,
		},
		{
			name:   "provider confirms pending",
			status: StatusPending,
			actor:  Actor{ID: 100, Role: RoleProvider},
			to:     StatusConfirmed,
			want:   true,
		},
		{
			name:   "provider completes confirmed",
			status: StatusConfirmed,
			actor:  Actor{ID: 100, Role: RoleProvider},
			to:     StatusCompleted,
			want:   true,
		},
		{
			name:   "provider cancels confirmed",
			status: StatusConfirmed,
			actor:  Actor{ID: 100, Role: RoleProvider},
			to:     StatusCancelled,
			want:   true,
		},
		{
			name:   "foreign provider has no access",
			status: StatusPending,
			actor:  Actor{ID: 101, Role: RoleProvider},
			to:     StatusConfirmed,
			want:   false,
		},
		{
			name:   "provider cannot resurrect cancelled",
			status: StatusCancelled,
			actor:  Actor{ID: 100, Role: RoleProvider},
			to:     StatusConfirmed,
			want:   false,
		},
		{
			name:   "unknown role is rejected",
			status: StatusPending,
			actor:  Actor{ID: 100, Role: "admin"},
			to:     StatusConfirmed,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appt.Status = tt.status
			assert.Equal(t, tt.want, appt.TransitionAllowedFor(tt.actor, tt.to))
		})
	}
}

func TestAppointment_IsActive(t *testing.T) {
	// Интервал освобождает только отмена; завершённая запись его сохраняет
	assert.True(t, (&Appointment{Status: StatusPending}).IsActive())
	assert.True(t, (&Appointment{Status: StatusConfirmed}).IsActive())
	assert.True(t, (&Appointment{Status: StatusCompleted}).IsActive())
	assert.False(t, (&Appointment{Status: StatusCancelled}).IsActive())
}

func TestAppointment_IsTerminal(t *testing.T) {
	assert.False(t, (&Appointment{Status: StatusPending}).IsTerminal())
	assert.False(t, (&Appointment{Status: StatusConfirmed}).IsTerminal())
	assert.True(t, (&Appointment{Status: StatusCompleted}).IsTerminal())
	assert.True(t, (&Appointment{Status: StatusCancelled}).IsTerminal())
}
