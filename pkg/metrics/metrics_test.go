package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IndependentRegistries(t *testing.T) {
	first := New("svc")
	second := New("svc")

	first.IncBooking(ResultCreated)
	first.IncBooking(ResultConflict)
	first.IncBooking(ResultCreated)

	assert.Equal(t, 2.0, testutil.ToFloat64(first.BookingsTotal.WithLabelValues(ResultCreated)))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.BookingsTotal.WithLabelValues(ResultCreated)))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBooking(ResultCreated)
		m.IncSlotQuery(ResultOK)
		m.IncRateLimited("/api/bookings/book")
		m.IncIdentityLookup(ResultHit)
	})
}

func TestHandler_Exposition(t *testing.T) {
	m := New("svc")
	m.IncSlotQuery(ResultOK)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `salon_booking_slot_queries_total{result="ok",service="svc"} 1`)
}
