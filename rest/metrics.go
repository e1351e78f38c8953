package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/negroni"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const unmatchedRoute = "unmatched"

// serviceMetrics holds the Prometheus collectors of one service. Each
// service owns its registry so that several can coexist in a process.
type serviceMetrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	datasetRecords  prometheus.GaugeFunc
	routes          map[string]string
}

func newServiceMetrics(datasetRecords func() float64) *serviceMetrics {
	m := &serviceMetrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crude_http_requests_total",
				Help: "Total number of HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crude_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			},
			[]string{"route", "method"},
		),
		datasetRecords: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "crude_dataset_price_records",
				Help: "Number of price records in the served dataset",
			},
			datasetRecords,
		),
		routes: map[string]string{},
	}

	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.datasetRecords,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// addRoute records a path that may be used as a label value.
func (m *serviceMetrics) addRoute(path, label string) { m.routes[path] = label }

func (m *serviceMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ServeHTTP makes serviceMetrics a gimlet.Middleware.
func (m *serviceMetrics) ServeHTTP(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	start := time.Now()
	res, ok := rw.(negroni.ResponseWriter)
	if !ok {
		res = negroni.NewResponseWriter(rw)
	}

	next(res, r)

	route, ok := m.routes[r.URL.Path]
	if !ok {
		route = unmatchedRoute
	}
	m.requests.WithLabelValues(route, r.Method, strconv.Itoa(responseStatus(res))).Inc()
	m.requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
}

var _ gimlet.Middleware = &serviceMetrics{}

// responseStatus reports 200 for handlers that wrote nothing, matching
// what net/http sends.
func responseStatus(res negroni.ResponseWriter) int {
	if status := res.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}
