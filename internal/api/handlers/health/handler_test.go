package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestReady(t *testing.T) {
	tests := []struct {
		name   string
		pinger Pinger
		status int
	}{
		{name: "memory storage", pinger: nil, status: http.StatusOK},
		{name: "database up", pinger: pingerFunc(func(context.Context) error { return nil }), status: http.StatusOK},
		{name: "database down", pinger: pingerFunc(func(context.Context) error { return errors.New("refused") }), status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(tt.pinger, logger.Nop()).Ready(rec, httptest.NewRequest(http.MethodGet, "/api/ready", nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestLive(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(nil, logger.Nop()).Live(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"OK"`)
}
