package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/employees/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/employees/{id}", "GET", "404")))
}

func TestPayrollAndNotificationCounters(t *testing.T) {
	m := New(nil)

	m.PayrollCalculated("Weekly", 3, nil)
	m.PayrollCalculated("Weekly", 0, errors.New("boom"))
	m.NotificationSent(true)
	m.NotificationSent(false)
	m.NotificationSent(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.payrollRuns.WithLabelValues("Weekly", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.payrollRuns.WithLabelValues("Weekly", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("sent")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.notifications.WithLabelValues("failed")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.PayrollCalculated("Monthly", 1, nil)
		m.NotificationSent(true)
	})

	called := false
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New(nil)
	m.NotificationSent(true)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `furnishop_notifications_sent_total{result="sent"} 1`)
}
