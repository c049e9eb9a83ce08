package list_bookings

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
)

const (
	msgInvalidDate             = "некорректная дата, ожидается YYYY-MM-DD"
	msgInvalidIncludeCancelled = "includeCancelled должен быть true или false"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?date=YYYY-MM-DD[&includeCancelled=true]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date, err := handlers.ParseDate(query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid date: %v", err)
		handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidDate, msgInvalidDate)
		return
	}

	includeCancelled := false
	if v := query.Get("includeCancelled"); v != "" {
		includeCancelled, err = strconv.ParseBool(v)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidIncludeCancelled)
			return
		}
	}

	result, err := h.service.ListByDate(r.Context(), &models.ListByDateRequest{
		Date:             date,
		IncludeCancelled: includeCancelled,
	})
	if err != nil {
		h.logger.Error("GET /bookings - Failed to list bookings: date=%s, error=%v", query.Get("date"), err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
