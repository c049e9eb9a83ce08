package list_bookings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type fakeService struct {
	lastReq *models.ListByDateRequest
	err     error
}

func (f *fakeService) ListByDate(_ context.Context, req *models.ListByDateRequest) (*models.BookingListResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1, BookingDate: "2025-10-15"}}}, nil
}

func serve(svc BookingService, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandler_Handle_OK(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/api/v1/bookings?date=2025-10-15&includeCancelled=true")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.lastReq.IncludeCancelled)
	assert.Equal(t, "2025-10-15", svc.lastReq.Date.Format("2006-01-02"))

	var body models.BookingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Bookings, 1)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "missing date", url: "/api/v1/bookings", wantStatus: http.StatusBadRequest, wantCode: handlers.CodeInvalidDate},
		{name: "bad includeCancelled", url: "/api/v1/bookings?date=2025-10-15&includeCancelled=maybe", wantStatus: http.StatusBadRequest, wantCode: handlers.CodeInvalidArgument},
		{name: "service error", url: "/api/v1/bookings?date=2025-10-15", err: errors.New("db down"), wantStatus: http.StatusInternalServerError, wantCode: handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.url)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp handlers.ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}
