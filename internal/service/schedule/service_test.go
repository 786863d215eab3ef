package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
)

type fakeScheduleRepo struct {
	weekly    map[time.Weekday]domain.WeeklyScheduleEntry
	overrides []*domain.DateOverride

	upsertEntryErr    error
	upsertOverrideErr error
	deleteErr         error

	savedEntry    *domain.WeeklyScheduleEntry
	savedOverride *domain.DateOverride
	deletedDate   *time.Time
}

func (f *fakeScheduleRepo) GetWeeklySchedule(_ context.Context, _ int64) (map[time.Weekday]domain.WeeklyScheduleEntry, error) {
	return f.weekly, nil
}

func (f *fakeScheduleRepo) UpsertWeeklyEntry(_ context.Context, entry *domain.WeeklyScheduleEntry) (*domain.WeeklyScheduleEntry, error) {
	if f.upsertEntryErr != nil {
		return nil, f.upsertEntryErr
	}
	f.savedEntry = entry
	return entry, nil
}

func (f *fakeScheduleRepo) GetOverridesBetween(_ context.Context, _ int64, _, _ time.Time) ([]*domain.DateOverride, error) {
	return f.overrides, nil
}

func (f *fakeScheduleRepo) UpsertOverride(_ context.Context, override *domain.DateOverride) (*domain.DateOverride, error) {
	if f.upsertOverrideErr != nil {
		return nil, f.upsertOverrideErr
	}
	f.savedOverride = override
	return override, nil
}

func (f *fakeScheduleRepo) DeleteOverride(_ context.Context, _ int64, date time.Time) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedDate = &date
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

func TestService_GetSchedule(t *testing.T) {
	repo := &fakeScheduleRepo{
		weekly: map[time.Weekday]domain.WeeklyScheduleEntry{
			time.Wednesday: {Weekday: time.Wednesday, StartTime: "10:00", EndTime: "18:00", Status: domain.ScheduleAvailable},
			time.Monday:    {Weekday: time.Monday, StartTime: "09:00", EndTime: "17:00", Status: domain.ScheduleAvailable},
		},
		overrides: []*domain.DateOverride{
			{Date: testDate, Status: domain.ScheduleUnavailable},
		},
	}
	svc := NewService(repo, noopLogger{})

	resp, err := svc.GetSchedule(context.Background(), &models.GetScheduleRequest{ProviderID: 100})
	require.NoError(t, err)

	// Недельная сетка упорядочена по дню недели
	require.Len(t, resp.Weekly, 2)
	assert.Equal(t, int(time.Monday), resp.Weekly[0].Weekday)
	assert.Equal(t, int(time.Wednesday), resp.Weekly[1].Weekday)

	require.Len(t, resp.Overrides, 1)
	assert.Equal(t, "2026-03-12", resp.Overrides[0].Date)
	assert.Equal(t, "unavailable", resp.Overrides[0].Status)
}

func TestService_UpsertWeeklyEntry(t *testing.T) {
	t.Run("owner saves entry", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		svc := NewService(repo, noopLogger{})

		resp, err := svc.UpsertWeeklyEntry(context.Background(), &models.UpsertWeeklyEntryRequest{
			ActorID:    100,
			ProviderID: 100,
			Weekday:    3,
			StartTime:  "10:00",
			EndTime:    "18:00",
			Status:     "available",
		})
		require.NoError(t, err)
		assert.Equal(t, 3, resp.Weekday)
		require.NotNil(t, repo.savedEntry)
		assert.Equal(t, time.Wednesday, repo.savedEntry.Weekday)
	})

	t.Run("foreign actor is denied", func(t *testing.T) {
		svc := NewService(&fakeScheduleRepo{}, noopLogger{})

		_, err := svc.UpsertWeeklyEntry(context.Background(), &models.UpsertWeeklyEntryRequest{
			ActorID:    999,
			ProviderID: 100,
			Weekday:    3,
			Status:     "available",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid weekday", func(t *testing.T) {
		svc := NewService(&fakeScheduleRepo{}, noopLogger{})

		_, err := svc.UpsertWeeklyEntry(context.Background(), &models.UpsertWeeklyEntryRequest{
			ActorID:    100,
			ProviderID: 100,
			Weekday:    7,
			Status:     "available",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc := NewService(&fakeScheduleRepo{}, noopLogger{})

		_, err := svc.UpsertWeeklyEntry(context.Background(), &models.UpsertWeeklyEntryRequest{
			ActorID:    100,
			ProviderID: 100,
			Weekday:    3,
			Status:     "closed",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("end before start is rejected by storage", func(t *testing.T) {
		repo := &fakeScheduleRepo{upsertEntryErr: scheduleRepo.ErrInvalidTimeRange}
		svc := NewService(repo, noopLogger{})

		_, err := svc.UpsertWeeklyEntry(context.Background(), &models.UpsertWeeklyEntryRequest{
			ActorID:    100,
			ProviderID: 100,
			Weekday:    3,
			StartTime:  "18:00",
			EndTime:    "10:00",
			Status:     "available",
		})
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})
}

func TestService_SetOverride(t *testing.T) {
	t.Run("owner sets override", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		svc := NewService(repo, noopLogger{})

		resp, err := svc.SetOverride(context.Background(), &models.SetOverrideRequest{
			ActorID:    100,
			ProviderID: 100,
			Date:       testDate,
			StartTime:  "12:00",
			EndTime:    "16:00",
			Status:     "available",
		})
		require.NoError(t, err)
		assert.Equal(t, "2026-03-12", resp.Date)
		require.NotNil(t, repo.savedOverride)
	})

	t.Run("unavailable override needs no times", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		svc := NewService(repo, noopLogger{})

		_, err := svc.SetOverride(context.Background(), &models.SetOverrideRequest{
			ActorID:    100,
			ProviderID: 100,
			Date:       testDate,
			Status:     "unavailable",
		})
		require.NoError(t, err)
	})

	t.Run("foreign actor is denied", func(t *testing.T) {
		svc := NewService(&fakeScheduleRepo{}, noopLogger{})

		_, err := svc.SetOverride(context.Background(), &models.SetOverrideRequest{
			ActorID:    999,
			ProviderID: 100,
			Date:       testDate,
			Status:     "unavailable",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestService_DeleteOverride(t *testing.T) {
	t.Run("owner deletes override", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		svc := NewService(repo, noopLogger{})

		err := svc.DeleteOverride(context.Background(), 100, testDate, 100)
		require.NoError(t, err)
		require.NotNil(t, repo.deletedDate)
		assert.Equal(t, testDate, *repo.deletedDate)
	})

	t.Run("missing override", func(t *testing.T) {
		repo := &fakeScheduleRepo{deleteErr: scheduleRepo.ErrOverrideNotFound}
		svc := NewService(repo, noopLogger{})

		err := svc.DeleteOverride(context.Background(), 100, testDate, 100)
		assert.ErrorIs(t, err, ErrOverrideNotFound)
	})

	t.Run("foreign actor is denied", func(t *testing.T) {
		svc := NewService(&fakeScheduleRepo{}, noopLogger{})

		err := svc.DeleteOverride(context.Background(), 100, testDate, 999)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
