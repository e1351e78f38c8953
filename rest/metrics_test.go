package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evergreen-ci/negroni"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestServiceMetricsMiddleware(t *testing.T) {
	m := newServiceMetrics(func() float64 { return 42 })
	m.addRoute("/api/v1/prices", "prices")
	m.addRoute("/api/prices", "prices")

	notFound := func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusNotFound)
	}
	silent := func(rw http.ResponseWriter, r *http.Request) {}

	t.Run("PlainWriter", func(t *testing.T) {
		m.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/prices", nil), notFound)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("prices", http.MethodGet, "404")))
	})
	t.Run("WrappedWriter", func(t *testing.T) {
		rw := negroni.NewResponseWriter(httptest.NewRecorder())
		var seen http.ResponseWriter
		m.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/api/prices", nil), func(w http.ResponseWriter, r *http.Request) {
			seen = w
			notFound(w, r)
		})
		assert.Equal(t, rw, seen)
		assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("prices", http.MethodGet, "404")))
	})
	t.Run("NothingWrittenIsOK", func(t *testing.T) {
		m.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/elsewhere", nil), silent)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(unmatchedRoute, http.MethodGet, "200")))
	})
}
