package appointments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

type fakeAppointmentRepo struct {
	appointment *domain.Appointment
	getErr      error

	updatedStatus  *domain.AppointmentStatus
	cancelledWith  *string
	customerFilter *domain.CustomerAppointmentsFilter
	providerFilter *domain.ProviderAppointmentsFilter
	list           []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) GetByCustomer(_ context.Context, filter domain.CustomerAppointmentsFilter) ([]*domain.Appointment, error) {
	f.customerFilter = &filter
	return f.list, nil
}

func (f *fakeAppointmentRepo) GetByProviderWithFilter(_ context.Context, filter domain.ProviderAppointmentsFilter) ([]*domain.Appointment, error) {
	f.providerFilter = &filter
	return f.list, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, _ int64, status domain.AppointmentStatus) error {
	f.updatedStatus = &status
	return nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, _ int64, reason string) error {
	f.cancelledWith = &reason
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              1,
		ProviderID:      100,
		CustomerID:      200,
		ServiceID:       5,
		Date:            time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          domain.StatusPending,
		ServiceName:     "Стрижка",
	}
}

func TestService_GetByID_Access(t *testing.T) {
	tests := []struct {
		name    string
		actorID int64
		wantErr error
	}{
		{name: "customer sees own appointment", actorID: 200},
		{name: "provider sees own appointment", actorID: 100},
		{name: "stranger is denied", actorID: 999, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeAppointmentRepo{appointment: pendingAppointment()}, noopLogger{})

			resp, err := svc.GetByID(context.Background(), 1, tt.actorID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), resp.ID)
		})
	}
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeAppointmentRepo{getErr: appointmentRepo.ErrAppointmentNotFound}, noopLogger{})

	_, err := svc.GetByID(context.Background(), 1, 200)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.AppointmentStatus
		req     *models.UpdateStatusRequest
		wantErr error
	}{
		{
			name:   "provider confirms pending",
			status: domain.StatusPending,
			req:    &models.UpdateStatusRequest{ActorID: 100, ActorRole: "provider", Status: "confirmed"},
		},
		{
			name:   "provider completes confirmed",
			status: domain.StatusConfirmed,
			req:    &models.UpdateStatusRequest{ActorID: 100, ActorRole: "provider", Status: "completed"},
		},
		{
			name:    "pending cannot be completed directly",
			status:  domain.StatusPending,
			req:     &models.UpdateStatusRequest{ActorID: 100, ActorRole: "provider", Status: "completed"},
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "completed is terminal",
			status:  domain.StatusCompleted,
			req:     &models.UpdateStatusRequest{ActorID: 100, ActorRole: "provider", Status: "cancelled"},
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "customer cannot confirm",
			status:  domain.StatusPending,
			req:     &models.UpdateStatusRequest{ActorID: 200, ActorRole: "customer", Status: "confirmed"},
			wantErr: ErrAccessDenied,
		},
		{
			name:   "customer cancels own pending",
			status: domain.StatusPending,
			req:    &models.UpdateStatusRequest{ActorID: 200, ActorRole: "customer", Status: "cancelled"},
		},
		{
			name:    "customer cannot cancel confirmed",
			status:  domain.StatusConfirmed,
			req:     &models.UpdateStatusRequest{ActorID: 200, ActorRole: "customer", Status: "cancelled"},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "foreign provider is denied",
			status:  domain.StatusPending,
			req:     &models.UpdateStatusRequest{ActorID: 101, ActorRole: "provider", Status: "confirmed"},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "unknown status is rejected",
			status:  domain.StatusPending,
			req:     &models.UpdateStatusRequest{ActorID: 100, ActorRole: "provider", Status: "archived"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown role is rejected",
			status:  domain.StatusPending,
			req:     &models.UpdateStatusRequest{ActorID: 100, ActorRole: "admin", Status: "confirmed"},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appt := pendingAppointment()
			appt.Status = tt.status
			repo := &fakeAppointmentRepo{appointment: appt}
			svc := NewService(repo, noopLogger{})

			err := svc.UpdateStatus(context.Background(), 1, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, repo.updatedStatus)
				assert.Nil(t, repo.cancelledWith)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestService_UpdateStatus_CancellationSetsCancelledAt(t *testing.T) {
	// Перевод в cancelled идёт через Cancel, чтобы проставить cancelled_at
	repo := &fakeAppointmentRepo{appointment: pendingAppointment()}
	svc := NewService(repo, noopLogger{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		ActorID: 100, ActorRole: "provider", Status: "cancelled",
	})
	require.NoError(t, err)
	assert.Nil(t, repo.updatedStatus)
	require.NotNil(t, repo.cancelledWith)
	assert.Empty(t, *repo.cancelledWith)
}

func TestService_Cancel(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: pendingAppointment()}
	svc := NewService(repo, noopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		ActorID:            200,
		ActorRole:          "customer",
		CancellationReason: "не смогу прийти",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.cancelledWith)
	assert.Equal(t, "не смогу прийти", *repo.cancelledWith)
}

func TestService_Cancel_ReasonTooLong(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: pendingAppointment()}
	svc := NewService(repo, noopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		ActorID:            200,
		ActorRole:          "customer",
		CancellationReason: strings.Repeat("ы", domain.MaxCancellationReasonLength+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, repo.cancelledWith)
}

func TestService_GetProviderAppointments_Access(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	svc := NewService(repo, noopLogger{})

	_, err := svc.GetProviderAppointments(context.Background(), &models.GetProviderAppointmentsRequest{
		ActorID:    999,
		ProviderID: 100,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetProviderAppointments(context.Background(), &models.GetProviderAppointmentsRequest{
		ActorID:    100,
		ProviderID: 100,
	})
	require.NoError(t, err)
	require.NotNil(t, repo.providerFilter)
	assert.Equal(t, int64(100), repo.providerFilter.ProviderID)
}

func TestService_GetCustomerAppointments_StatusFilter(t *testing.T) {
	repo := &fakeAppointmentRepo{list: []*domain.Appointment{pendingAppointment()}}
	svc := NewService(repo, noopLogger{})

	status := "pending"
	resp, err := svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		CustomerID: 200,
		Status:     &status,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)
	require.NotNil(t, repo.customerFilter.Status)
	assert.Equal(t, domain.StatusPending, *repo.customerFilter.Status)

	badStatus := "archived"
	_, err = svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		CustomerID: 200,
		Status:     &badStatus,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
