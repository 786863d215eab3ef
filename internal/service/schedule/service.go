package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
)

// Период переопределений по умолчанию для GetSchedule
const defaultOverridesRangeDays = 30

// Service сервис управления расписанием мастера
// Изменять расписание может только сам мастер; чтение открыто всем
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// GetSchedule получает расписание мастера: недельную сетку и переопределения за период
func (s *Service) GetSchedule(ctx context.Context, req *models.GetScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for provider=%d", req.ProviderID)

	if req.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	weekly, err := s.scheduleRepo.GetWeeklySchedule(ctx, req.ProviderID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	from, to := overridesRange(req)
	overrides, err := s.scheduleRepo.GetOverridesBetween(ctx, req.ProviderID, from, to)
	if err != nil {
		s.logger.Error("GetSchedule: failed to get overrides for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetSchedule - failed to get overrides: %v", ErrInternal, err)
	}

	resp := &models.ScheduleResponse{
		ProviderID: req.ProviderID,
		Weekly:     make([]models.WeeklyEntryResponse, 0, len(weekly)),
		Overrides:  make([]models.OverrideResponse, 0, len(overrides)),
	}

	for _, entry := range weekly {
		resp.Weekly = append(resp.Weekly, models.FromDomainWeeklyEntry(entry))
	}
	sort.Slice(resp.Weekly, func(i, j int) bool {
		return resp.Weekly[i].Weekday < resp.Weekly[j].Weekday
	})

	for _, override := range overrides {
		resp.Overrides = append(resp.Overrides, models.FromDomainOverride(override))
	}

	s.logger.Info("GetSchedule: provider=%d has %d weekly entries, %d overrides",
		req.ProviderID, len(resp.Weekly), len(resp.Overrides))
	return resp, nil
}

// UpsertWeeklyEntry создает или обновляет запись недельного расписания мастера
func (s *Service) UpsertWeeklyEntry(ctx context.Context, req *models.UpsertWeeklyEntryRequest) (*models.WeeklyEntryResponse, error) {
	s.logger.Info("UpsertWeeklyEntry: provider=%d, weekday=%d, actor=%d", req.ProviderID, req.Weekday, req.ActorID)

	if err := s.checkOwnerAccess(req.ProviderID, req.ActorID); err != nil {
		s.logger.Warn("UpsertWeeklyEntry: access denied for actor=%d to provider=%d schedule", req.ActorID, req.ProviderID)
		return nil, err
	}

	entry, err := req.ToDomainEntry()
	if err != nil {
		s.logger.Warn("UpsertWeeklyEntry: invalid request for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.scheduleRepo.UpsertWeeklyEntry(ctx, entry)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrInvalidTimeRange) {
			s.logger.Warn("UpsertWeeklyEntry: invalid time range for provider=%d, weekday=%d", req.ProviderID, req.Weekday)
			return nil, ErrInvalidTimeRange
		}
		s.logger.Error("UpsertWeeklyEntry: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: UpsertWeeklyEntry - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainWeeklyEntry(*saved)
	s.logger.Info("UpsertWeeklyEntry: successfully saved entry for provider=%d, weekday=%d", req.ProviderID, req.Weekday)
	return &resp, nil
}

// SetOverride создает или обновляет переопределение расписания на дату
// Переопределение имеет приоритет над недельным расписанием
func (s *Service) SetOverride(ctx context.Context, req *models.SetOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("SetOverride: provider=%d, date=%s, actor=%d",
		req.ProviderID, req.Date.Format("2006-01-02"), req.ActorID)

	if err := s.checkOwnerAccess(req.ProviderID, req.ActorID); err != nil {
		s.logger.Warn("SetOverride: access denied for actor=%d to provider=%d schedule", req.ActorID, req.ProviderID)
		return nil, err
	}

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	override, err := req.ToDomainOverride()
	if err != nil {
		s.logger.Warn("SetOverride: invalid request for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.scheduleRepo.UpsertOverride(ctx, override)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrInvalidTimeRange) {
			s.logger.Warn("SetOverride: invalid time range for provider=%d, date=%s",
				req.ProviderID, req.Date.Format("2006-01-02"))
			return nil, ErrInvalidTimeRange
		}
		s.logger.Error("SetOverride: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: SetOverride - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainOverride(saved)
	s.logger.Info("SetOverride: successfully saved override for provider=%d, date=%s",
		req.ProviderID, req.Date.Format("2006-01-02"))
	return &resp, nil
}

// DeleteOverride удаляет переопределение на дату
// После удаления дата снова резолвится по недельному расписанию
func (s *Service) DeleteOverride(ctx context.Context, providerID int64, date time.Time, actorID int64) error {
	s.logger.Info("DeleteOverride: provider=%d, date=%s, actor=%d",
		providerID, date.Format("2006-01-02"), actorID)

	if err := s.checkOwnerAccess(providerID, actorID); err != nil {
		s.logger.Warn("DeleteOverride: access denied for actor=%d to provider=%d schedule", actorID, providerID)
		return err
	}

	if err := s.scheduleRepo.DeleteOverride(ctx, providerID, date); err != nil {
		if errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
			s.logger.Warn("DeleteOverride: override not found for provider=%d, date=%s",
				providerID, date.Format("2006-01-02"))
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteOverride: repository error for provider=%d: %v", providerID, err)
		return fmt.Errorf("%w: DeleteOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteOverride: successfully deleted override for provider=%d, date=%s",
		providerID, date.Format("2006-01-02"))
	return nil
}

// checkOwnerAccess проверяет, что актор изменяет своё расписание
func (s *Service) checkOwnerAccess(providerID, actorID int64) error {
	if providerID != actorID {
		return ErrAccessDenied
	}
	return nil
}

// overridesRange возвращает период выборки переопределений
func overridesRange(req *models.GetScheduleRequest) (time.Time, time.Time) {
	if req.From != nil && req.To != nil {
		return *req.From, *req.To
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, defaultOverridesRangeDays)
}
