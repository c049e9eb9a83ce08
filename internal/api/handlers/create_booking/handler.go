package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgUnknownFlow        = "сценарий бронирования не найден"
	msgPastDate           = "нельзя забронировать дату в прошлом"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgSlotNotInCatalog   = "в этот день нет слота с таким временем начала"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgConcurrentUpdate   = "слишком много одновременных бронирований, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidDate, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidDate, msgPastDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidDate, msgDateTooFar)

		case errors.Is(err, createBooking.ErrUnknownFlow):
			handlers.RespondError(w, http.StatusNotFound, handlers.CodeUnknownFlow, msgUnknownFlow)

		case errors.Is(err, createBooking.ErrSlotNotInCatalog):
			handlers.RespondBadRequest(w, msgSlotNotInCatalog)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, start=%s", req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, handlers.CodeSlotNotAvailable, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrConcurrentUpdate):
			h.logger.Warn("POST /bookings - Concurrent update: date=%s, start=%s", req.BookingDate, req.StartTime)
			handlers.RespondServiceUnavailable(w, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, start=%s, error=%v",
				req.BookingDate, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, reference=%s", result.ID, result.Reference)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
