package domain

import "github.com/m04kA/SMC-StudioBooking/pkg/types"

// TimeSlot окно каталога, доступное для бронирования
// Определяется конфигурацией при деплое и не меняется во время работы
type TimeSlot struct {
	Key              string // стабильный идентификатор слота в каталоге (например, "morning")
	Start            types.TimeString
	End              types.TimeString
	Label            string
	EligibleWeekdays []int // 0 = воскресенье ... 6 = суббота, не пустой
}

// IsEligibleOn слот предлагается в указанный день недели
func (s TimeSlot) IsEligibleOn(weekday int) bool {
	for _, w := range s.EligibleWeekdays {
		if w == weekday {
			return true
		}
	}
	return false
}

// OverlapsInterval слот пересекается с занятым интервалом
func (s TimeSlot) OverlapsInterval(interval BookedInterval) bool {
	return Overlaps(s.Start, s.End, interval.Start, interval.End)
}

// DurationMinutes длительность слота
func (s TimeSlot) DurationMinutes() int {
	start, err := s.Start.Minutes()
	if err != nil {
		return 0
	}
	end, err := s.End.Minutes()
	if err != nil {
		return 0
	}
	return end - start
}
