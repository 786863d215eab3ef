package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInvalidDate возвращается, когда дата записи в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrTooLateToBook возвращается, когда слот на сегодня начинается раньше,
	// чем через BookingLeadTimeMinutes от текущего момента
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = errors.New("create_appointment: service is not active")

	// ErrWeeklyLimitExceeded возвращается, когда у клиента уже есть
	// неотменённая запись на этой неделе (понедельник-воскресенье)
	ErrWeeklyLimitExceeded = errors.New("create_appointment: weekly appointment limit exceeded")

	// ErrProviderUnavailable возвращается, когда рабочее окно мастера
	// недоступно или не покрывает запрошенный интервал
	ErrProviderUnavailable = errors.New("create_appointment: provider unavailable for requested interval")

	// ErrSlotConflict возвращается, когда запрошенный интервал пересекается
	// с существующей неотменённой записью (включая проигрыш гонки за слот)
	ErrSlotConflict = errors.New("create_appointment: slot conflicts with existing appointment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
