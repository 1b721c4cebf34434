package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func doHealthz(t *testing.T, s *Server) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	s.routes().ServeHTTP(rec, req)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHealthzOK(t *testing.T) {
	s := NewServer(":0", pingerFunc(func(context.Context) error { return nil }))
	rec, body := doHealthz(t, s)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestHealthzDegradedOnDBError(t *testing.T) {
	s := NewServer(":0", pingerFunc(func(context.Context) error { return errors.New("conn refused") }))
	rec, body := doHealthz(t, s)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", body["status"])
	assert.Contains(t, body["db"], "conn refused")
}

func TestHealthzWithoutPinger(t *testing.T) {
	s := NewServer(":0", nil)
	rec, body := doHealthz(t, s)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}
