package catalog

import (
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Flow сценарий бронирования как фильтр над общим каталогом
// SlotKeys пустой - все слоты каталога
// Weekdays пустой - дни берутся из самих слотов, иначе пересечение
type Flow struct {
	Name     string
	SlotKeys []string
	Weekdays []int
}

// Registry общий каталог плюс отфильтрованные каталоги для каждого сценария
type Registry struct {
	shared *Catalog
	flows  map[string]*Catalog
	names  []string
}

// NewRegistry строит общий каталог и каталоги сценариев
func NewRegistry(slots []domain.TimeSlot, flows []Flow) (*Registry, error) {
	shared, err := New(slots)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]domain.TimeSlot, len(slots))
	for _, slot := range shared.slots {
		byKey[slot.Key] = slot
	}

	r := &Registry{
		shared: shared,
		flows:  make(map[string]*Catalog, len(flows)),
		names:  make([]string, 0, len(flows)),
	}

	for _, flow := range flows {
		if flow.Name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidFlow)
		}
		if _, dup := r.flows[flow.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate flow %q", ErrInvalidFlow, flow.Name)
		}

		flowSlots, err := filterSlots(shared, byKey, flow)
		if err != nil {
			return nil, err
		}

		flowCatalog, err := New(flowSlots)
		if err != nil {
			return nil, fmt.Errorf("flow %q: %w", flow.Name, err)
		}

		r.flows[flow.Name] = flowCatalog
		r.names = append(r.names, flow.Name)
	}

	return r, nil
}

// ForFlow каталог сценария. Пустое имя - общий каталог
func (r *Registry) ForFlow(name string) (*Catalog, error) {
	if name == "" {
		return r.shared, nil
	}
	c, ok := r.flows[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFlow, name)
	}
	return c, nil
}

// Shared общий каталог
func (r *Registry) Shared() *Catalog {
	return r.shared
}

// Flows имена сценариев в порядке объявления
func (r *Registry) Flows() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}

func filterSlots(shared *Catalog, byKey map[string]domain.TimeSlot, flow Flow) ([]domain.TimeSlot, error) {
	for _, w := range flow.Weekdays {
		if !domain.ValidWeekday(w) {
			return nil, fmt.Errorf("%w: flow %q weekday %d out of range 0..6", ErrInvalidFlow, flow.Name, w)
		}
	}

	var candidates []domain.TimeSlot
	if len(flow.SlotKeys) == 0 {
		candidates = shared.Slots()
	} else {
		candidates = make([]domain.TimeSlot, 0, len(flow.SlotKeys))
		for _, key := range flow.SlotKeys {
			slot, ok := byKey[key]
			if !ok {
				return nil, fmt.Errorf("%w: flow %q references unknown slot %q", ErrInvalidFlow, flow.Name, key)
			}
			candidates = append(candidates, slot)
		}
	}

	if len(flow.Weekdays) == 0 {
		return candidates, nil
	}

	result := make([]domain.TimeSlot, 0, len(candidates))
	for _, slot := range candidates {
		weekdays := intersectWeekdays(slot.EligibleWeekdays, flow.Weekdays)
		// Слот, не попадающий ни в один день сценария, в сценарий не входит
		if len(weekdays) == 0 {
			continue
		}
		slot.EligibleWeekdays = weekdays
		result = append(result, slot)
	}
	return result, nil
}

func intersectWeekdays(slotDays, flowDays []int) []int {
	allowed := make(map[int]struct{}, len(flowDays))
	for _, d := range flowDays {
		allowed[d] = struct{}{}
	}
	result := make([]int, 0, len(slotDays))
	for _, d := range slotDays {
		if _, ok := allowed[d]; ok {
			result = append(result, d)
		}
	}
	return result
}
