package get_catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/catalog"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

const (
	msgInvalidWeekday = "некорректный день недели, ожидается 0..6 (0 - воскресенье)"
	msgUnknownFlow    = "сценарий бронирования не найден"
)

type Handler struct {
	registry CatalogRegistry
	logger   Logger
}

func NewHandler(registry CatalogRegistry, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

// HandleFlows GET /api/v1/flows
func (h *Handler) HandleFlows(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, &FlowsResponse{Flows: h.registry.Flows()})
}

// HandleSlots GET /api/v1/slots[?weekday=N] и GET /api/v1/flows/{flow}/slots[?weekday=N]
func (h *Handler) HandleSlots(w http.ResponseWriter, r *http.Request) {
	flow := mux.Vars(r)["flow"]

	cat, err := h.registry.ForFlow(flow)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownFlow) {
			h.logger.Warn("GET /flows/{flow}/slots - Unknown flow: flow=%q", flow)
			handlers.RespondError(w, http.StatusNotFound, handlers.CodeUnknownFlow, msgUnknownFlow)
			return
		}
		h.logger.Error("GET /flows/{flow}/slots - Failed to get catalog: flow=%q, error=%v", flow, err)
		handlers.RespondInternalError(w)
		return
	}

	resp := &CatalogResponse{Flow: flow}

	weekdayStr := r.URL.Query().Get("weekday")
	if weekdayStr == "" {
		resp.Slots = fromSlots(cat.Slots())
		handlers.RespondJSON(w, http.StatusOK, resp)
		return
	}

	weekday, err := strconv.Atoi(weekdayStr)
	if err != nil || !domain.ValidWeekday(weekday) {
		h.logger.Warn("GET /flows/{flow}/slots - Invalid weekday: %q", weekdayStr)
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	slots, err := cat.SlotsForWeekday(weekday)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	resp.Weekday = &weekday
	resp.Slots = fromSlots(slots)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
