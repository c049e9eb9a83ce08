package catalog

import (
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// Catalog неизменяемый список окон для бронирования
// Значение передаётся зависимостью, глобального состояния нет
type Catalog struct {
	slots []domain.TimeSlot
}

// New проверяет слоты и создаёт каталог. Порядок объявления сохраняется
func New(slots []domain.TimeSlot) (*Catalog, error) {
	seen := make(map[string]struct{}, len(slots))
	copied := make([]domain.TimeSlot, 0, len(slots))

	for i, slot := range slots {
		if err := validateSlot(slot); err != nil {
			return nil, fmt.Errorf("slot #%d (%s): %w", i, slot.Key, err)
		}
		if _, dup := seen[slot.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidSlot, slot.Key)
		}
		seen[slot.Key] = struct{}{}

		copied = append(copied, cloneSlot(slot))
	}

	return &Catalog{slots: copied}, nil
}

// SlotsForWeekday возвращает слоты, предлагаемые в день недели weekday (0 = воскресенье)
// Порядок - порядок объявления в каталоге. Чистая функция
func (c *Catalog) SlotsForWeekday(weekday int) ([]domain.TimeSlot, error) {
	if !domain.ValidWeekday(weekday) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWeekday, weekday)
	}

	result := make([]domain.TimeSlot, 0, len(c.slots))
	for _, slot := range c.slots {
		if slot.IsEligibleOn(weekday) {
			result = append(result, cloneSlot(slot))
		}
	}
	return result, nil
}

// SlotByStart ищет слот с указанным временем начала среди слотов дня недели
func (c *Catalog) SlotByStart(weekday int, start types.TimeString) (domain.TimeSlot, error) {
	slots, err := c.SlotsForWeekday(weekday)
	if err != nil {
		return domain.TimeSlot{}, err
	}
	for _, slot := range slots {
		if slot.Start.Equal(start) {
			return slot, nil
		}
	}
	return domain.TimeSlot{}, fmt.Errorf("%w: start=%s weekday=%d", ErrSlotNotFound, start, weekday)
}

// Slots копия всех слотов каталога
func (c *Catalog) Slots() []domain.TimeSlot {
	result := make([]domain.TimeSlot, len(c.slots))
	for i, slot := range c.slots {
		result[i] = cloneSlot(slot)
	}
	return result
}

// Len количество слотов
func (c *Catalog) Len() int {
	return len(c.slots)
}

func validateSlot(slot domain.TimeSlot) error {
	if slot.Key == "" {
		return fmt.Errorf("%w: key is required", ErrInvalidSlot)
	}
	if err := slot.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidSlot, err)
	}
	if err := slot.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidSlot, err)
	}
	if !slot.Start.IsBefore(slot.End) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidSlot, slot.Start, slot.End)
	}
	if len(slot.EligibleWeekdays) == 0 {
		return fmt.Errorf("%w: eligible weekdays must not be empty", ErrInvalidSlot)
	}
	for _, w := range slot.EligibleWeekdays {
		if !domain.ValidWeekday(w) {
			return fmt.Errorf("%w: weekday %d out of range 0..6", ErrInvalidSlot, w)
		}
	}
	return nil
}

// cloneSlot копирует слот вместе со срезом дней, чтобы вызывающий не мог изменить каталог
func cloneSlot(slot domain.TimeSlot) domain.TimeSlot {
	weekdays := make([]int, len(slot.EligibleWeekdays))
	copy(weekdays, slot.EligibleWeekdays)
	slot.EligibleWeekdays = weekdays
	return slot
}
