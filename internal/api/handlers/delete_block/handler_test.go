package delete_block

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-StudioBooking/internal/service/blocks"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type fakeService struct {
	deleted []int64
	err     error
}

func (f *fakeService) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func serve(svc BlockService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/blocks/{blockId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodDelete)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, path, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/api/v1/blocks/9")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{9}, svc.deleted)

	rec = serve(&fakeService{err: blocks.ErrBlockNotFound}, "/api/v1/blocks/9")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(&fakeService{}, "/api/v1/blocks/-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&fakeService{err: blocks.ErrInternal}, "/api/v1/blocks/9")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
