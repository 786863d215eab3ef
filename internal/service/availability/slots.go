package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// GenerateSlots генерирует кандидатов на слоты внутри рабочего окна
// Слоты идут с шагом domain.SlotIntervalMinutes от начала окна; слот - это
// полуоткрытый интервал [start, start+duration), который должен целиком
// помещаться в окно. Для сегодняшней даты отбрасываются слоты, начинающиеся
// раньше now + domain.BookingLeadTimeMinutes.
// Детерминированная функция: повторный вызов с теми же данными даёт тот же результат
func GenerateSlots(window domain.Window, durationMinutes int, requestDate time.Time, now time.Time) ([]types.TimeString, error) {
	// Прошедшая дата - слотов нет
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	// Пустое окно (unavailable или вырожденное) - слотов нет, это не ошибка
	if window.IsEmpty() {
		return []types.TimeString{}, nil
	}

	// Шаг 1: генерируем все слоты от начала окна с фиксированным шагом
	allSlots := make([]types.TimeString, 0)
	currentSlot := window.StartTime

	for currentSlot.IsBefore(window.EndTime) {
		// Слот должен помещаться в окно целиком
		slotEnd, err := currentSlot.AddMinutes(durationMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(window.EndTime) {
			break
		}

		allSlots = append(allSlots, currentSlot)
		currentSlot, err = currentSlot.AddMinutes(domain.SlotIntervalMinutes)
		if err != nil {
			break
		}
	}

	// Шаг 2: для будущих дат возвращаем все слоты
	if !isSameDay(requestDate, now) {
		return allSlots, nil
	}

	// Шаг 3: для сегодняшней даты фильтруем по минимальному зазору до брони
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(domain.BookingLeadTimeMinutes)
	if err != nil {
		// now + lead time за пределами суток - сегодня уже ничего не забронировать
		return []types.TimeString{}, nil
	}

	availableSlots := make([]types.TimeString, 0)
	for _, slot := range allSlots {
		if !slot.IsBefore(minAllowedTime) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots, nil
}

// FilterConflicts оставляет только кандидатов, не пересекающихся ни с одним
// занятым интервалом. Порядок кандидатов сохраняется
func FilterConflicts(candidates []types.TimeString, durationMinutes int, booked []domain.BookedInterval) []types.TimeString {
	free := make([]types.TimeString, 0, len(candidates))

	for _, candidate := range candidates {
		if !overlapsAny(candidate, durationMinutes, booked) {
			free = append(free, candidate)
		}
	}

	return free
}

// overlapsAny проверяет пересечение кандидата хотя бы с одним занятым интервалом
func overlapsAny(slotStart types.TimeString, slotDuration int, booked []domain.BookedInterval) bool {
	slotEnd, err := slotStart.AddMinutes(slotDuration)
	if err != nil {
		// Не можем вычислить конец слота - считаем слот непригодным
		return true
	}

	for _, interval := range booked {
		intervalEnd, err := interval.StartTime.AddMinutes(interval.DurationMinutes)
		if err != nil {
			continue
		}

		// Интервалы [a1,a2) и [b1,b2) пересекаются <=> a1 < b2 && b1 < a2
		// Строгие неравенства: граничащие интервалы не пересекаются
		if interval.StartTime.IsBefore(slotEnd) && intervalEnd.IsAfter(slotStart) {
			return true
		}
	}

	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
