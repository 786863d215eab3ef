package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
)

// UseCase use case получения свободных слотов для записи
// Результат - ориентир для клиента: окончательная проверка слота
// выполняется транзактором бронирования тем же конвейером доступности
type UseCase struct {
	serviceRepo  ServiceRepository
	availability AvailabilityProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	availability AvailabilityProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:  serviceRepo,
		availability: availability,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
// Пустой список слотов - валидный ответ (закрытый день, всё занято,
// дата в прошлом), не ошибка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, service=%d, date=%s",
		req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу - её длительность задаёт размер слота
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 3. Полный конвейер доступности: окно -> кандидаты -> фильтр пересечений
	now := uc.timeProvider.Now()

	openSlots, err := uc.availability.OpenSlots(ctx, req.ProviderID, req.Date, service.DurationMinutes, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute open slots: provider=%d, date=%s, error=%v",
			req.ProviderID, req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to compute open slots: %v", ErrInternal, err)
	}

	slots := make([]Slot, len(openSlots))
	for i, startTime := range openSlots {
		slots[i] = Slot{
			StartTime:       startTime,
			DurationMinutes: service.DurationMinutes,
		}
	}

	uc.logger.Info("GetAvailableSlots: %d open slots for provider=%d, service=%d, date=%s",
		len(slots), req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		ProviderID:      req.ProviderID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}
