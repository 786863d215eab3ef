package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе расписания
	ErrInvalidStatus = errors.New("invalid schedule status")

	// ErrInvalidWeekday возвращается при некорректном дне недели
	ErrInvalidWeekday = errors.New("invalid weekday")
)

// Request модели

// UpsertWeeklyEntryRequest запрос на создание/обновление записи недельного расписания
type UpsertWeeklyEntryRequest struct {
	ActorID    int64  `json:"actorId"`
	ProviderID int64  `json:"providerId"`
	Weekday    int    `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Status     string `json:"status"`
}

// ToDomainEntry конвертирует request в domain модель с валидацией
func (r *UpsertWeeklyEntryRequest) ToDomainEntry() (*domain.WeeklyScheduleEntry, error) {
	if r.Weekday < 0 || r.Weekday > 6 {
		return nil, ErrInvalidWeekday
	}

	status, err := ToDomainScheduleStatus(r.Status)
	if err != nil {
		return nil, err
	}

	return &domain.WeeklyScheduleEntry{
		ProviderID: r.ProviderID,
		Weekday:    time.Weekday(r.Weekday),
		StartTime:  types.TimeString(r.StartTime),
		EndTime:    types.TimeString(r.EndTime),
		Status:     status,
	}, nil
}

// SetOverrideRequest запрос на создание/обновление переопределения на дату
type SetOverrideRequest struct {
	ActorID    int64     `json:"actorId"`
	ProviderID int64     `json:"providerId"`
	Date       time.Time `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Status     string    `json:"status"`
}

// ToDomainOverride конвертирует request в domain модель с валидацией
func (r *SetOverrideRequest) ToDomainOverride() (*domain.DateOverride, error) {
	status, err := ToDomainScheduleStatus(r.Status)
	if err != nil {
		return nil, err
	}

	return &domain.DateOverride{
		ProviderID: r.ProviderID,
		Date:       r.Date,
		StartTime:  types.TimeString(r.StartTime),
		EndTime:    types.TimeString(r.EndTime),
		Status:     status,
	}, nil
}

// GetScheduleRequest запрос на получение расписания мастера
// Переопределения возвращаются за период [From, To]; по умолчанию - ближайшие 30 дней
type GetScheduleRequest struct {
	ProviderID int64      `json:"providerId"`
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`
}

// Response модели

// WeeklyEntryResponse запись недельного расписания
type WeeklyEntryResponse struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Status    string `json:"status"`
}

// OverrideResponse переопределение расписания на дату
type OverrideResponse struct {
	Date      string `json:"date"` // "2026-03-12"
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Status    string `json:"status"`
}

// ScheduleResponse расписание мастера: недельная сетка и переопределения
type ScheduleResponse struct {
	ProviderID int64                 `json:"providerId"`
	Weekly     []WeeklyEntryResponse `json:"weekly"`
	Overrides  []OverrideResponse    `json:"overrides"`
}

// Методы конвертации

// FromDomainWeeklyEntry конвертирует domain модель в DTO
func FromDomainWeeklyEntry(e domain.WeeklyScheduleEntry) WeeklyEntryResponse {
	return WeeklyEntryResponse{
		Weekday:   int(e.Weekday),
		StartTime: e.StartTime.String(),
		EndTime:   e.EndTime.String(),
		Status:    string(e.Status),
	}
}

// FromDomainOverride конвертирует domain модель в DTO
func FromDomainOverride(o *domain.DateOverride) OverrideResponse {
	return OverrideResponse{
		Date:      o.Date.Format(domain.DateFormat),
		StartTime: o.StartTime.String(),
		EndTime:   o.EndTime.String(),
		Status:    string(o.Status),
	}
}

// ToDomainScheduleStatus конвертирует строку в domain.ScheduleStatus с валидацией
func ToDomainScheduleStatus(status string) (domain.ScheduleStatus, error) {
	s := domain.ScheduleStatus(status)

	if s != domain.ScheduleAvailable && s != domain.ScheduleUnavailable {
		return "", ErrInvalidStatus
	}

	return s, nil
}
