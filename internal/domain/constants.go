package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Границы дня недели: 0 = воскресенье, 6 = суббота (как time.Weekday)
const (
	MinWeekday = 0
	MaxWeekday = 6
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxBlockReasonLength        = 255
	MaxCustomerNameLength       = 200
	MaxGuests                   = 60
)

// ActiveStatuses статусы бронирований, занимающих слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// ValidWeekday проверяет, что индекс дня недели в диапазоне 0..6
func ValidWeekday(weekday int) bool {
	return weekday >= MinWeekday && weekday <= MaxWeekday
}
