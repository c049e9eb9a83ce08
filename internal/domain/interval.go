package domain

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// IntervalStatus статус занятого интервала
type IntervalStatus string

const (
	IntervalConfirmed IntervalStatus = "confirmed"
	IntervalPending   IntervalStatus = "pending"
	IntervalBlocked   IntervalStatus = "blocked"
)

// BookedInterval узкая проекция бронирования или ручного блока: дата, время, статус
// Только это нужно для расчёта доступности
type BookedInterval struct {
	Date   time.Time
	Start  types.TimeString
	End    types.TimeString
	Status IntervalStatus
}

// IsReserving интервал забирает ёмкость студии
func (i BookedInterval) IsReserving() bool {
	switch i.Status {
	case IntervalConfirmed, IntervalPending, IntervalBlocked:
		return true
	default:
		return false
	}
}

// Overlaps проверяет пересечение полуоткрытых интервалов [s1,e1) и [s2,e2)
// Пересечение есть, только если каждый начинается строго раньше конца другого
// Бронирование до 12:30 не конфликтует со слотом с 12:30
func Overlaps(s1, e1, s2, e2 types.TimeString) bool {
	return s1.IsBefore(e2) && s2.IsBefore(e1)
}
