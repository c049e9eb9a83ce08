package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid bookingDate")
	errInvalidTime = errors.New("invalid startTime")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Flow          string  `json:"flow,omitempty"`
	BookingDate   string  `json:"bookingDate"` // "2025-10-15"
	StartTime     string  `json:"startTime"`   // "13:30"
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	Guests        int     `json:"guests"`
	Notes         *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	Reference     string  `json:"reference"`
	Flow          string  `json:"flow,omitempty"`
	BookingDate   string  `json:"bookingDate"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	SlotLabel     string  `json:"slotLabel"`
	Status        string  `json:"status"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	Guests        int     `json:"guests"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createBooking.Request{
		Flow:          r.Flow,
		Date:          bookingDate,
		StartTime:     startTime,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Guests:        r.Guests,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		Reference:     resp.Reference,
		Flow:          resp.Flow,
		BookingDate:   resp.BookingDate.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		SlotLabel:     resp.SlotLabel,
		Status:        resp.Status,
		CustomerName:  resp.CustomerName,
		CustomerEmail: resp.CustomerEmail,
		Guests:        resp.Guests,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
