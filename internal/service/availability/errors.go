package availability

import "errors"

var (
	// ErrProviderUnavailable возвращается, когда рабочее окно недоступно
	// или не покрывает запрошенный интервал
	ErrProviderUnavailable = errors.New("availability: provider unavailable for requested interval")

	// ErrSlotConflict возвращается при пересечении запрошенного интервала
	// с существующей неотменённой записью
	ErrSlotConflict = errors.New("availability: slot conflicts with existing appointment")

	// ErrInternal возвращается при ошибках обращения к хранилищу
	ErrInternal = errors.New("availability: internal error")
)
