package domain

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// ManualBlock интервал, закрытый администратором вручную (санобработка, частное мероприятие и т.п.)
// Длина блока не обязана совпадать со слотом каталога
type ManualBlock struct {
	ID        int64
	BlockDate time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Reason    string
	CreatedAt time.Time
}

// ToInterval проекция блока для расчёта доступности
func (b *ManualBlock) ToInterval() BookedInterval {
	return BookedInterval{
		Date:   b.BlockDate,
		Start:  b.StartTime,
		End:    b.EndTime,
		Status: IntervalBlocked,
	}
}
