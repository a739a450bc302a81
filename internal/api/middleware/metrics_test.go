package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/yakidesk/pkg/logger"
	"github.com/m04kA/yakidesk/pkg/metrics"
)

func TestMetricsMiddleware_RecordsRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	counter := m.HTTPRequests.WithLabelValues(http.MethodGet, "/bookings/{bookingId}", "404")
	assert.Equal(t, float64(2), testutil.ToFloat64(counter))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.HTTPInFlight))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPDuration))
}

func TestMetricsMiddleware_DefaultStatus(t *testing.T) {
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/desks", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/desks", nil))

	counter := m.HTTPRequests.WithLabelValues(http.MethodGet, "/desks", "200")
	assert.Equal(t, float64(1), testutil.ToFloat64(counter))
}

func TestMetricsMiddleware_NilMetrics(t *testing.T) {
	router := mux.NewRouter()
	router.Use(MetricsMiddleware(nil), RequestLogger(logger.NewNop()))
	router.HandleFunc("/desks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/desks", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
