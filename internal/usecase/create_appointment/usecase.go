package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
)

// UseCase use case создания записи на приём
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	checker         AvailabilityChecker
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	checker AvailabilityChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		checker:         checker,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Порядок проверок фиксирован, каждая отдаёт свою причину отказа:
//  1. форма входных данных
//  2. дата не в прошлом; для сегодня - зазор до слота
//  3. услуга существует и активна
//  4. недельный лимит клиента (в транзакции)
//  5. рабочее окно покрывает интервал (в транзакции)
//  6. интервал не пересекается с существующими записями (в транзакции)
//
// Шаги 4-6 и вставка выполняются в одной сериализуемой транзакции:
// из двух конкурентных попыток на один слот фиксируется ровно одна,
// проигравшая получает ErrSlotConflict. При любой ошибке внутри транзакции
// все эффекты откатываются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: customer=%d, provider=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка даты и зазора до слота
	now := uc.timeProvider.Now()

	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	if err := validateLeadTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateAppointment: lead time validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CreateAppointment: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	var result *domain.Appointment

	// 4-6. Проверки по хранилищу и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4. Недельный лимит: не больше одной неотменённой записи клиента
		// на календарную неделю (понедельник-воскресенье)
		weekStart, weekEnd := weekBounds(req.Date)

		count, err := uc.appointmentRepo.CountActiveByCustomerBetween(txCtx, req.CustomerID, weekStart, weekEnd)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to count weekly appointments: customer=%d, error=%v",
				req.CustomerID, err)
			return fmt.Errorf("%w: failed to count weekly appointments: %w", ErrInternal, err)
		}

		if count > 0 {
			uc.logger.Warn("CreateAppointment: weekly limit exceeded: customer=%d, week=%s..%s",
				req.CustomerID, weekStart.Format(domain.DateFormat), weekEnd.Format(domain.DateFormat))
			return ErrWeeklyLimitExceeded
		}

		// 5-6. Перепроверяем окно и пересечения внутри транзакции -
		// выдача availability до этого момента была только ориентиром
		if err := uc.checker.CheckSlot(txCtx, req.ProviderID, req.Date, req.StartTime, service.DurationMinutes); err != nil {
			switch {
			case errors.Is(err, availability.ErrProviderUnavailable):
				uc.logger.Warn("CreateAppointment: provider unavailable: provider=%d, date=%s, time=%s",
					req.ProviderID, req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrProviderUnavailable
			case errors.Is(err, availability.ErrSlotConflict):
				uc.logger.Warn("CreateAppointment: slot conflict: provider=%d, date=%s, time=%s",
					req.ProviderID, req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotConflict
			default:
				uc.logger.Error("CreateAppointment: slot check failed: %v", err)
				return fmt.Errorf("%w: slot check failed: %w", ErrInternal, err)
			}
		}

		// Создаем запись в статусе pending
		appt := &domain.Appointment{
			ProviderID:      req.ProviderID,
			ServiceID:       req.ServiceID,
			CustomerID:      req.CustomerID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			ServiceName:     service.Name,
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			// Нарушение exclusion constraint - конкурент успел зафиксировать
			// пересекающуюся запись
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: lost slot race: provider=%d, date=%s, time=%s",
					req.ProviderID, req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		CustomerID:      result.CustomerID,
		ProviderID:      result.ProviderID,
		ServiceID:       result.ServiceID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
