package get_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_availability"
)

const (
	msgInvalidDate      = "некорректная дата, ожидается YYYY-MM-DD"
	msgUnknownFlow      = "сценарий бронирования не найден"
	msgStoreUnavailable = "не удалось получить бронирования, повторите запрос"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD[&flow=...]
// и GET /api/v1/flows/{flow}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flow, ok := mux.Vars(r)["flow"]
	if !ok {
		flow = r.URL.Query().Get("flow")
	}

	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidDate, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{Flow: flow, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidDate):
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidDate, msgInvalidDate)

		case errors.Is(err, getAvailability.ErrUnknownFlow):
			h.logger.Warn("GET /availability - Unknown flow: flow=%q", flow)
			handlers.RespondError(w, http.StatusNotFound, handlers.CodeUnknownFlow, msgUnknownFlow)

		case errors.Is(err, getAvailability.ErrInvalidArgument):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailability.ErrStoreUnavailable):
			h.logger.Error("GET /availability - Store unavailable: flow=%q, error=%v", flow, err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("GET /availability - Failed to get availability: flow=%q, error=%v", flow, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
