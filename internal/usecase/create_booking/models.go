package create_booking

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Flow          string           // Сценарий бронирования (пусто - общий каталог)
	Date          time.Time        // Дата бронирования (без времени)
	StartTime     types.TimeString // Время начала слота (например, "13:30")
	CustomerName  string
	CustomerEmail string
	Guests        int
	Notes         *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	Reference     string
	Flow          string
	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	SlotLabel     string
	Status        string
	CustomerName  string
	CustomerEmail string
	Guests        int
	Notes         *string
	CreatedAt     time.Time
}

// Options ограничения на создание бронирований
type Options struct {
	Location           *time.Location // часовой пояс студии, в нём считается "сегодня"
	MinNoticeMinutes   int            // минимум минут до начала слота при бронировании на сегодня
	AdvanceBookingDays int            // на сколько дней вперёд можно бронировать (0 - без ограничений)
}
