package get_availability

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/catalog"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Resolve разбивает слоты каталога на дату на свободные и занятые
//
// 1. День недели даты -> слоты каталога на этот день
// 2. Слот занят, если пересекается (полуоткрыто) хотя бы с одним интервалом той же даты
// 3. Порядок каталога сохраняется во всех трёх списках
//
// Интервалы другой даты или со статусом, не занимающим ёмкость, игнорируются
func Resolve(date time.Time, cat *catalog.Catalog, intervals []domain.BookedInterval) (Partition, error) {
	candidates, err := cat.SlotsForWeekday(int(date.Weekday()))
	if err != nil {
		return Partition{}, err
	}

	relevant := relevantIntervals(date, intervals)

	result := Partition{
		All:       candidates,
		Available: make([]domain.TimeSlot, 0, len(candidates)),
		Blocked:   make([]domain.TimeSlot, 0),
	}

	for _, slot := range candidates {
		if overlapsAny(slot, relevant) {
			result.Blocked = append(result.Blocked, slot)
		} else {
			result.Available = append(result.Available, slot)
		}
	}

	return result, nil
}

// overlapsAny слот пересекается хотя бы с одним интервалом
func overlapsAny(slot domain.TimeSlot, intervals []domain.BookedInterval) bool {
	for _, interval := range intervals {
		if slot.OverlapsInterval(interval) {
			return true
		}
	}
	return false
}

// relevantIntervals оставляет интервалы нужной даты, занимающие ёмкость
func relevantIntervals(date time.Time, intervals []domain.BookedInterval) []domain.BookedInterval {
	result := make([]domain.BookedInterval, 0, len(intervals))
	for _, interval := range intervals {
		if !interval.IsReserving() {
			continue
		}
		if !isSameDay(interval.Date, date) {
			continue
		}
		result = append(result, interval)
	}
	return result
}

// isSameDay проверяет, что две даты относятся к одному и тому же календарному дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
