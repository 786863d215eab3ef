package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeServiceRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
}

type fakeAvailability struct {
	slots    []types.TimeString
	err      error
	duration int
}

func (f *fakeAvailability) OpenSlots(_ context.Context, _ int64, _ time.Time, durationMinutes int, _ time.Time) ([]types.TimeString, error) {
	f.duration = durationMinutes
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		ProviderID: 100,
		ServiceID:  5,
		Date:       time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	avail := &fakeAvailability{slots: []types.TimeString{"10:00", "10:30", "11:00"}}
	uc := NewUseCase(
		&fakeServiceRepo{service: &domain.Service{ID: 5, DurationMinutes: 45, IsActive: true}},
		avail,
		noopLogger{},
	)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ProviderID)
	assert.Equal(t, 45, resp.DurationMinutes)
	// Длительность услуги прокидывается в конвейер доступности
	assert.Equal(t, 45, avail.duration)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
	assert.Equal(t, 45, resp.Slots[0].DurationMinutes)
}

func TestUseCase_Execute_EmptySlotsIsValid(t *testing.T) {
	uc := NewUseCase(
		&fakeServiceRepo{service: &domain.Service{ID: 5, DurationMinutes: 30, IsActive: true}},
		&fakeAvailability{slots: []types.TimeString{}},
		noopLogger{},
	)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := NewUseCase(
		&fakeServiceRepo{service: &domain.Service{IsActive: true}},
		&fakeAvailability{},
		noopLogger{},
	)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing provider", mutate: func(r *Request) { r.ProviderID = 0 }},
		{name: "missing service", mutate: func(r *Request) { r.ServiceID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_ServiceChecks(t *testing.T) {
	t.Run("service not found", func(t *testing.T) {
		uc := NewUseCase(
			&fakeServiceRepo{err: serviceRepo.ErrServiceNotFound},
			&fakeAvailability{},
			noopLogger{},
		)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("inactive service", func(t *testing.T) {
		uc := NewUseCase(
			&fakeServiceRepo{service: &domain.Service{ID: 5, IsActive: false}},
			&fakeAvailability{},
			noopLogger{},
		)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrServiceInactive)
	})
}
