package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName must be at most %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		return fmt.Errorf("%w: invalid customerEmail: %v", ErrInvalidInput, err)
	}

	if req.Guests < 1 || req.Guests > domain.MaxGuests {
		return fmt.Errorf("%w: guests must be between 1 and %d", ErrInvalidInput, domain.MaxGuests)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше advanceBookingDays
// Даты сравниваются по календарю студии
func validateDate(bookingDate, now time.Time, advanceBookingDays int) error {
	bookingDay := dateOnly(bookingDate, now.Location())
	today := dateOnly(now, now.Location())

	if bookingDay.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, bookingDate.Format(domain.DateFormat))
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	if bookingDay.After(today.AddDate(0, 0, advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет, что слот на сегодня ещё не начался с учётом minNoticeMinutes
func validateBookingTime(bookingDate time.Time, startTime types.TimeString, now time.Time, minNoticeMinutes int) error {
	// Если дата бронирования не сегодня, проверка не нужна
	if !dateOnly(bookingDate, now.Location()).Equal(dateOnly(now, now.Location())) {
		return nil
	}

	minAllowedTime, err := types.NewTimeString(now).AddMinutes(minNoticeMinutes)
	if err != nil {
		// Минимальное время ушло за полночь, на сегодня уже ничего не забронировать
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	// Слот, начинающийся ровно в now+minNoticeMinutes, ещё можно забронировать
	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}

// findConflict возвращает первый занятый интервал, пересекающийся со слотом
func findConflict(slot domain.TimeSlot, intervals []domain.BookedInterval) (domain.BookedInterval, bool) {
	for _, iv := range intervals {
		if iv.IsReserving() && slot.OverlapsInterval(iv) {
			return iv, true
		}
	}
	return domain.BookedInterval{}, false
}

// dateOnly календарная дата в полночь указанной зоны
// Сама дата берётся из собственной зоны t, чтобы "2025-10-15 UTC" оставалась 15-м числом
func dateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
