package get_availability

import (
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date           string `json:"date"`
	Flow           string `json:"flow,omitempty"`
	AllSlots       []Slot `json:"allSlots"`
	AvailableSlots []Slot `json:"availableSlots"`
	BlockedSlots   []Slot `json:"blockedSlots"`
}

// Slot модель слота каталога
type Slot struct {
	Key   string `json:"key"`
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		Flow:           resp.Flow,
		AllSlots:       fromSlots(resp.AllSlots),
		AvailableSlots: fromSlots(resp.AvailableSlots),
		BlockedSlots:   fromSlots(resp.BlockedSlots),
	}
}

// fromSlots конвертирует слоты каталога, пустой список остаётся [] в JSON
func fromSlots(slots []domain.TimeSlot) []Slot {
	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{
			Key:   s.Key,
			Start: s.Start.String(),
			End:   s.End.String(),
			Label: s.Label,
		}
	}
	return result
}
