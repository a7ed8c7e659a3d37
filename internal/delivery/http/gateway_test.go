package httpgateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()

	// The client connection is lazy, so no server needs to be running.
	g := NewGateway("localhost:50051", ":0")
	require.NoError(t, g.SetupRoutes())
	t.Cleanup(g.Close)
	return g
}

func TestHomeHandlerListsEndpoints(t *testing.T) {
	g := newTestGateway(t)

	rec := httptest.NewRecorder()
	g.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/v1/hello/world")
}

func TestHealthHandlerReportsIdleConnection(t *testing.T) {
	g := newTestGateway(t)

	rec := httptest.NewRecorder()
	g.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	// No traffic has gone through yet, so the channel sits in Idle.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok", "grpc_state": "IDLE"}`, rec.Body.String())
}
