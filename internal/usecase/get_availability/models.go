package get_availability

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Request модель запроса доступности
type Request struct {
	Flow string    // сценарий бронирования, пустой - общий каталог
	Date time.Time // календарная дата (время игнорируется)
}

// Response доступность слотов на дату
// AvailableSlots и BlockedSlots не пересекаются и вместе дают AllSlots
type Response struct {
	Date           time.Time
	Flow           string
	AllSlots       []domain.TimeSlot
	AvailableSlots []domain.TimeSlot
	BlockedSlots   []domain.TimeSlot
}

// Partition разбиение слотов дня на свободные и занятые
type Partition struct {
	All       []domain.TimeSlot
	Available []domain.TimeSlot
	Blocked   []domain.TimeSlot
}
