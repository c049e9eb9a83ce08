package get_catalog

import "github.com/m04kA/SMC-StudioBooking/internal/domain"

// CatalogResponse слоты сценария
type CatalogResponse struct {
	Flow    string `json:"flow,omitempty"`
	Weekday *int   `json:"weekday,omitempty"`
	Slots   []Slot `json:"slots"`
}

// Slot слот каталога с днями недели
type Slot struct {
	Key              string `json:"key"`
	Start            string `json:"start"`
	End              string `json:"end"`
	Label            string `json:"label"`
	DurationMinutes  int    `json:"durationMinutes"`
	EligibleWeekdays []int  `json:"eligibleWeekdays"`
}

// FlowsResponse список сценариев бронирования
type FlowsResponse struct {
	Flows []string `json:"flows"`
}

func fromSlots(slots []domain.TimeSlot) []Slot {
	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{
			Key:              s.Key,
			Start:            s.Start.String(),
			End:              s.End.String(),
			Label:            s.Label,
			DurationMinutes:  s.DurationMinutes(),
			EligibleWeekdays: s.EligibleWeekdays,
		}
	}
	return result
}
