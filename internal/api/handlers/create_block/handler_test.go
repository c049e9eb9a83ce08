package create_block

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/blocks"
	"github.com/m04kA/SMC-StudioBooking/internal/service/blocks/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type fakeService struct {
	lastReq *models.CreateBlockRequest
	err     error
}

func (f *fakeService) Create(_ context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BlockResponse{
		ID:        5,
		Date:      req.Date.Format(domain.DateFormat),
		StartTime: req.StartTime.String(),
		EndTime:   req.EndTime.String(),
		Reason:    req.Reason,
	}, nil
}

func serve(svc BlockService, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/blocks", strings.NewReader(body)))
	return rec
}

func TestHandler_Handle_Created(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, `{"date":"2025-10-15","startTime":"11:00","endTime":"11:45","reason":"cleaning"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body models.BlockResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(5), body.ID)
	assert.Equal(t, "11:00", body.StartTime)
	assert.Equal(t, "11:45", body.EndTime)
	assert.Equal(t, "cleaning", svc.lastReq.Reason)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not json", body: `nope`, wantStatus: http.StatusBadRequest, wantCode: handlers.CodeInvalidArgument},
		{name: "bad date", body: `{"date":"15.10.2025","startTime":"11:00","endTime":"11:45"}`, wantStatus: http.StatusBadRequest, wantCode: handlers.CodeInvalidArgument},
		{name: "bad time", body: `{"date":"2025-10-15","startTime":"11am","endTime":"11:45"}`, wantStatus: http.StatusBadRequest, wantCode: handlers.CodeInvalidArgument},
		{name: "inverted range", body: `{"date":"2025-10-15","startTime":"12:00","endTime":"11:00"}`, err: blocks.ErrInvalidTimeRange, wantStatus: http.StatusBadRequest, wantCode: handlers.CodeInvalidArgument},
		{name: "unexpected", body: `{"date":"2025-10-15","startTime":"11:00","endTime":"11:45"}`, err: blocks.ErrInternal, wantStatus: http.StatusInternalServerError, wantCode: handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp handlers.ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}
