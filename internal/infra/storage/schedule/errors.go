package schedule

import "errors"

var (
	// ErrOverrideNotFound возвращается, когда переопределение на дату не найдено
	ErrOverrideNotFound = errors.New("schedule.repository: date override not found")

	// ErrWorkingHoursNotFound возвращается, когда нет базового расписания на день недели
	ErrWorkingHoursNotFound = errors.New("schedule.repository: working hours not found")

	// ErrInvalidTimeRange возвращается при попытке записать окно с end <= start
	// Невалидные окна отклоняются на записи, чтение их никогда не видит
	ErrInvalidTimeRange = errors.New("schedule.repository: end time must be after start time")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
