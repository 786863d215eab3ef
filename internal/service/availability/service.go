package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Service единая точка вычисления доступности мастера
// И выдача свободных слотов, и проверка при создании записи проходят через
// этот сервис - двух расходящихся реализаций "что открыто" в коде нет.
// Сервис не хранит состояния между вызовами: всё перечитывается из хранилища,
// внутри транзакции запросы присоединяются к ней через контекст
type Service struct {
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// ResolveWindow вычисляет эффективное рабочее окно мастера на дату
// Приоритет источников, от высшего к низшему:
//  1. переопределение на конкретную дату
//  2. недельное расписание мастера на день недели
//  3. базовые часы работы бизнеса
//  4. жёсткий дефолт 09:00-17:00 (available)
//
// Статус unavailable даёт пустое окно - это не ошибка
func (s *Service) ResolveWindow(ctx context.Context, providerID int64, date time.Time) (domain.Window, error) {
	// 1. Переопределение на дату
	override, err := s.scheduleRepo.GetOverride(ctx, providerID, date)
	if err == nil {
		return windowFromStatus(override.StartTime, override.EndTime, override.Status), nil
	}
	if !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		s.logger.Error("ResolveWindow: failed to get override: provider=%d, date=%s, error=%v",
			providerID, date.Format(domain.DateFormat), err)
		return domain.Window{}, fmt.Errorf("%w: failed to get override: %w", ErrInternal, err)
	}

	// 2. Недельное расписание мастера
	weekly, err := s.scheduleRepo.GetWeeklySchedule(ctx, providerID)
	if err != nil {
		s.logger.Error("ResolveWindow: failed to get weekly schedule: provider=%d, error=%v", providerID, err)
		return domain.Window{}, fmt.Errorf("%w: failed to get weekly schedule: %w", ErrInternal, err)
	}
	if entry, ok := weekly[date.Weekday()]; ok {
		return windowFromStatus(entry.StartTime, entry.EndTime, entry.Status), nil
	}

	// 3. Базовые часы работы бизнеса
	hours, err := s.scheduleRepo.GetWorkingHours(ctx, date.Weekday())
	if err == nil {
		status := domain.ScheduleUnavailable
		if hours.IsOpen {
			status = domain.ScheduleAvailable
		}
		return windowFromStatus(hours.OpenTime, hours.CloseTime, status), nil
	}
	if !errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
		s.logger.Error("ResolveWindow: failed to get working hours: provider=%d, weekday=%d, error=%v",
			providerID, date.Weekday(), err)
		return domain.Window{}, fmt.Errorf("%w: failed to get working hours: %w", ErrInternal, err)
	}

	// 4. Жёсткий дефолт
	return domain.Window{
		StartTime: domain.DefaultWindowStart,
		EndTime:   domain.DefaultWindowEnd,
		Available: true,
	}, nil
}

// OpenSlots возвращает упорядоченный список свободных слотов мастера на дату
// Полный конвейер: резолвинг окна -> генерация кандидатов -> фильтрация
// по занятым интервалам. Пустой список - валидный результат
func (s *Service) OpenSlots(ctx context.Context, providerID int64, date time.Time, durationMinutes int, now time.Time) ([]types.TimeString, error) {
	window, err := s.ResolveWindow(ctx, providerID, date)
	if err != nil {
		return nil, err
	}

	candidates, err := GenerateSlots(window, durationMinutes, date, now)
	if err != nil {
		s.logger.Error("OpenSlots: failed to generate slots: provider=%d, date=%s, error=%v",
			providerID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to generate slots: %w", ErrInternal, err)
	}

	if len(candidates) == 0 {
		return []types.TimeString{}, nil
	}

	booked, err := s.appointmentRepo.GetBookedIntervals(ctx, providerID, date)
	if err != nil {
		s.logger.Error("OpenSlots: failed to get booked intervals: provider=%d, date=%s, error=%v",
			providerID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get booked intervals: %w", ErrInternal, err)
	}

	return FilterConflicts(candidates, durationMinutes, booked), nil
}

// CheckSlot перепроверяет запрошенный интервал [startTime, startTime+duration)
// Возвращает ErrProviderUnavailable, если рабочее окно не покрывает интервал,
// и ErrSlotConflict при пересечении с занятым интервалом.
// Используется транзактором бронирования: вызов внутри транзакции блокирует
// строки дня (FOR UPDATE в репозитории) и закрывает гонку check-then-write
func (s *Service) CheckSlot(ctx context.Context, providerID int64, date time.Time, startTime types.TimeString, durationMinutes int) error {
	window, err := s.ResolveWindow(ctx, providerID, date)
	if err != nil {
		return err
	}

	if !window.Covers(startTime, durationMinutes) {
		return ErrProviderUnavailable
	}

	booked, err := s.appointmentRepo.GetBookedIntervals(ctx, providerID, date)
	if err != nil {
		s.logger.Error("CheckSlot: failed to get booked intervals: provider=%d, date=%s, error=%v",
			providerID, date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: failed to get booked intervals: %w", ErrInternal, err)
	}

	if overlapsAny(startTime, durationMinutes, booked) {
		return ErrSlotConflict
	}

	return nil
}

// windowFromStatus строит окно из полей записи расписания
func windowFromStatus(start, end types.TimeString, status domain.ScheduleStatus) domain.Window {
	if status != domain.ScheduleAvailable {
		return domain.Window{Available: false}
	}
	return domain.Window{
		StartTime: start,
		EndTime:   end,
		Available: true,
	}
}
