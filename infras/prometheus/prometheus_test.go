package prometheus_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"shareit/config"
	"shareit/infras/prometheus"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	cfg := &config.Config{}
	cfg.Metrics.Namespace = "shareit_test"

	metrics := prometheus.New(cfg)

	// A second registry must not panic on duplicate registration.
	assert.NotPanics(t, func() { prometheus.New(cfg) })

	metrics.IncBookingTransition("APPROVED")
	metrics.IncBookingTransition("APPROVED")
	metrics.ObserveHTTP("/v1/bookings/{id}", http.MethodPatch, http.StatusOK, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `shareit_test_booking_transitions_total{status="APPROVED"} 2`)
	assert.Contains(t, string(body), `shareit_test_http_requests_total{code="200",method="PATCH",route="/v1/bookings/{id}"} 1`)
}
