package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Фейки зависимостей

type fakeAppointmentRepo struct {
	weeklyCount    int
	countErr       error
	createErr      error
	created        *domain.Appointment
	countFrom      time.Time
	countTo        time.Time
	createAttempts int
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.createAttempts++
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *appt
	created.ID = 42
	created.CreatedAt = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeAppointmentRepo) CountActiveByCustomerBetween(_ context.Context, _ int64, from, to time.Time) (int, error) {
	f.countFrom, f.countTo = from, to
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.weeklyCount, nil
}

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

type fakeChecker struct {
	err error
}

func (f *fakeChecker) CheckSlot(_ context.Context, _ int64, _ time.Time, _ types.TimeString, _ int) error {
	return f.err
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Вторник 10 марта 2026, 09:00
var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func activeService() *domain.Service {
	return &domain.Service{
		ID:              5,
		Name:            "Стрижка",
		DurationMinutes: 60,
		IsActive:        true,
	}
}

func validRequest() *Request {
	return &Request{
		CustomerID: 200,
		ProviderID: 100,
		ServiceID:  5,
		Date:       time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		Notes:      ptr.Ptr("после обеда не звонить"),
	}
}

type testDeps struct {
	appts   *fakeAppointmentRepo
	svcRepo *fakeServiceRepo
	checker *fakeChecker
	txMgr   *fakeTxManager
}

func newTestUseCase(deps *testDeps) *UseCase {
	uc := NewUseCase(deps.appts, deps.svcRepo, deps.checker, deps.txMgr, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func defaultDeps() *testDeps {
	return &testDeps{
		appts:   &fakeAppointmentRepo{},
		svcRepo: &fakeServiceRepo{service: activeService()},
		checker: &fakeChecker{},
		txMgr:   &fakeTxManager{},
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	deps := defaultDeps()
	uc := newTestUseCase(deps)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, 1, deps.txMgr.calls)

	// Границы недельного лимита: понедельник-воскресенье вокруг даты записи
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), deps.appts.countFrom)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), deps.appts.countTo)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing customer", mutate: func(r *Request) { r.CustomerID = 0 }},
		{name: "missing provider", mutate: func(r *Request) { r.ProviderID = 0 }},
		{name: "missing service", mutate: func(r *Request) { r.ServiceID = -1 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "empty start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "malformed start time", mutate: func(r *Request) { r.StartTime = "10:0" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(defaultDeps())

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_DateInPast(t *testing.T) {
	uc := newTestUseCase(defaultDeps())

	req := validRequest()
	req.Date = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_LeadTime(t *testing.T) {
	tests := []struct {
		name      string
		startTime types.TimeString
		wantErr   bool
	}{
		// now = 09:00, зазор 60 минут
		{name: "slot before lead time", startTime: "09:30", wantErr: true},
		{name: "slot exactly at lead boundary", startTime: "10:00", wantErr: false},
		{name: "slot after lead time", startTime: "11:00", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(defaultDeps())

			req := validRequest()
			req.Date = testNow
			req.StartTime = tt.startTime

			_, err := uc.Execute(context.Background(), req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTooLateToBook)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUseCase_Execute_ServiceChecks(t *testing.T) {
	t.Run("service not found", func(t *testing.T) {
		deps := defaultDeps()
		deps.svcRepo.err = serviceRepo.ErrServiceNotFound
		uc := newTestUseCase(deps)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("inactive service", func(t *testing.T) {
		deps := defaultDeps()
		deps.svcRepo.service.IsActive = false
		uc := newTestUseCase(deps)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrServiceInactive)
	})
}

func TestUseCase_Execute_WeeklyLimit(t *testing.T) {
	deps := defaultDeps()
	deps.appts.weeklyCount = 1
	uc := newTestUseCase(deps)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrWeeklyLimitExceeded)
	assert.Zero(t, deps.appts.createAttempts)
}

func TestUseCase_Execute_AvailabilityErrors(t *testing.T) {
	t.Run("provider unavailable", func(t *testing.T) {
		deps := defaultDeps()
		deps.checker.err = availability.ErrProviderUnavailable
		uc := newTestUseCase(deps)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrProviderUnavailable)
	})

	t.Run("slot conflict", func(t *testing.T) {
		deps := defaultDeps()
		deps.checker.err = availability.ErrSlotConflict
		uc := newTestUseCase(deps)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotConflict)
	})
}

func TestUseCase_Execute_LostSlotRace(t *testing.T) {
	// Конкурент успел зафиксировать пересекающуюся запись:
	// вставка падает на exclusion constraint
	deps := defaultDeps()
	deps.appts.createErr = appointmentRepo.ErrSlotTaken
	uc := newTestUseCase(deps)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name      string
		date      time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "wednesday",
			date:      time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC),
			wantStart: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "monday is its own week start",
			date:      time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "sunday belongs to the preceding week",
			date:      time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC),
			wantStart: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := weekBounds(tt.date)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
