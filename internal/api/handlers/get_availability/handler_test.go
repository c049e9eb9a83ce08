package get_availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_availability"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type fakeUseCase struct {
	lastReq *getAvailability.Request
	resp    *getAvailability.Response
	err     error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	resp := *f.resp
	resp.Date = req.Date
	resp.Flow = req.Flow
	return &resp, nil
}

func newRouter(uc GetAvailabilityUseCase) *mux.Router {
	h := NewHandler(uc, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/availability", h.Handle).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/flows/{flow}/availability", h.Handle).Methods(http.MethodGet)
	return r
}

func TestHandler_Handle_OK(t *testing.T) {
	morning := domain.TimeSlot{Key: "morning", Start: "10:00", End: "12:30", Label: "10:00 AM - 12:30 PM"}
	afternoon := domain.TimeSlot{Key: "afternoon", Start: "13:30", End: "15:00", Label: "1:30 PM - 3:00 PM"}
	uc := &fakeUseCase{resp: &getAvailability.Response{
		AllSlots:       []domain.TimeSlot{morning, afternoon},
		AvailableSlots: []domain.TimeSlot{morning},
		BlockedSlots:   []domain.TimeSlot{afternoon},
	}}

	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/flows/corporate/availability?date=2025-10-15", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "corporate", uc.lastReq.Flow)

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-10-15", body.Date)
	assert.Equal(t, "corporate", body.Flow)
	assert.Len(t, body.AllSlots, 2)
	assert.Equal(t, []Slot{{Key: "afternoon", Start: "13:30", End: "15:00", Label: "1:30 PM - 3:00 PM"}}, body.BlockedSlots)
}

func TestHandler_Handle_EmptyListsAreArrays(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailability.Response{
		AllSlots:       []domain.TimeSlot{},
		AvailableSlots: []domain.TimeSlot{},
		BlockedSlots:   []domain.TimeSlot{},
	}}

	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2025-10-15&flow=kids", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "kids", uc.lastReq.Flow)
	assert.Contains(t, rec.Body.String(), `"blockedSlots":[]`)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "missing date", url: "/api/v1/availability", wantStatus: http.StatusBadRequest, wantCode: handlers.CodeInvalidDate},
		{name: "bad date", url: "/api/v1/availability?date=15.10.2025", wantStatus: http.StatusBadRequest, wantCode: handlers.CodeInvalidDate},
		{name: "unknown flow", url: "/api/v1/flows/wedding/availability?date=2025-10-15", err: fmt.Errorf("%w: wedding", getAvailability.ErrUnknownFlow), wantStatus: http.StatusNotFound, wantCode: handlers.CodeUnknownFlow},
		{name: "store unavailable", url: "/api/v1/availability?date=2025-10-15", err: fmt.Errorf("%w: timeout", getAvailability.ErrStoreUnavailable), wantStatus: http.StatusServiceUnavailable, wantCode: handlers.CodeStoreUnavailable},
		{name: "unexpected", url: "/api/v1/availability?date=2025-10-15", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err, resp: &getAvailability.Response{}}

			rec := httptest.NewRecorder()
			newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}
