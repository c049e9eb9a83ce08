package create_block

import (
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/service/blocks/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "11:00"
	EndTime   string `json:"endTime"`   // "11:45"
	Reason    string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateBlockRequest) ToServiceRequest() (*models.CreateBlockRequest, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %v", err)
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %v", err)
	}

	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %v", err)
	}

	return &models.CreateBlockRequest{
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Reason:    r.Reason,
	}, nil
}
