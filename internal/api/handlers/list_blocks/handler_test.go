package list_blocks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/service/blocks/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type fakeService struct {
	lastDate time.Time
	err      error
}

func (f *fakeService) ListByDate(_ context.Context, date time.Time) (*models.BlockListResponse, error) {
	f.lastDate = date
	if f.err != nil {
		return nil, f.err
	}
	return &models.BlockListResponse{Blocks: []models.BlockResponse{}}, nil
}

func serve(svc BlockService, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/api/v1/blocks?date=2025-10-15")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), svc.lastDate)
	assert.JSONEq(t, `{"blocks":[]}`, rec.Body.String())

	rec = serve(&fakeService{}, "/api/v1/blocks?date=tomorrow")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body handlers.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, handlers.CodeInvalidDate, body.Error.Code)

	rec = serve(&fakeService{err: errors.New("db down")}, "/api/v1/blocks?date=2025-10-15")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
