package worker

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aescanero/dago-query-router/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticHandlers []domain.Handler

func (s staticHandlers) Snapshot() []domain.Handler { return s }

func TestHandlersEndpoint(t *testing.T) {
	handlers := staticHandlers{
		{Name: "Alpha", Email: "alpha@gmail.com", Load: 2},
		{Name: "Beta", Email: "beta@gmail.com", Load: 1},
		{Name: "Gamma", Email: "gamma@gmail.com", Load: 1},
	}
	hs := NewHealthServer(0, nil, handlers, zap.NewNop())

	rec := httptest.NewRecorder()
	hs.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/handlers", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp HandlersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	if diff := cmp.Diff([]domain.Handler(handlers), resp.Handlers); diff != "" {
		t.Errorf("handlers mismatch (-want +got):\n%s", diff)
	}
}

func TestHandlersEndpointRejectsPost(t *testing.T) {
	hs := NewHealthServer(0, nil, staticHandlers{}, zap.NewNop())

	rec := httptest.NewRecorder()
	hs.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/handlers", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}
