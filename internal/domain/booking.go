package domain

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking бронирование слота студии (мастер-класс, корпоратив, день рождения, walk-in)
// Платёжные и CMS-поля живут во внешних системах, здесь только то, что влияет на занятость
type Booking struct {
	ID            int64
	Reference     string // публичный идентификатор (uuid), используется в ссылках на оплату
	Flow          string // сценарий бронирования: corporate, birthday, kids, walk_in
	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	SlotLabel     string
	Status        BookingStatus
	CustomerName  string
	CustomerEmail string
	Guests        int
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive бронирование занимает слот
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled отменить можно только активное бронирование
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// CanBeConfirmed подтвердить можно только ожидающее бронирование
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// ToInterval проекция бронирования для расчёта доступности
func (b *Booking) ToInterval() BookedInterval {
	status := IntervalPending
	if b.Status == StatusConfirmed {
		status = IntervalConfirmed
	}
	return BookedInterval{
		Date:   b.BookingDate,
		Start:  b.StartTime,
		End:    b.EndTime,
		Status: status,
	}
}

// ParseBookingStatus конвертирует строку в статус
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}
