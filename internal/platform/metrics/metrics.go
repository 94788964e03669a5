package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riskibarqy/worldcup-insights/internal/platform/cache"
)

const namespace = "worldcup"

// Metrics holds the service collectors. Build one per registry.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	Conversions        *prometheus.CounterVec
	ConversionDuration prometheus.Histogram
	ValidationFindings *prometheus.CounterVec
	CatalogMatches     prometheus.Gauge
}

// New registers the collectors on reg. A nil reg uses a fresh private registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Conversions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Tournament year conversions by outcome.",
		}, []string{"outcome"}),
		ConversionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Time to parse, convert and validate one tournament year.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		ValidationFindings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_findings_total",
			Help:      "Validation errors and warnings reported during conversion.",
		}, []string{"severity"}),
		CatalogMatches: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_matches",
			Help:      "Matches held by the loaded catalog.",
		}),
	}
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCache exports the counters of an in-process cache store under the
// given cache label.
func (m *Metrics) ObserveCache(name string, store *cache.Store) {
	if m == nil || store == nil {
		return
	}
	factory := promauto.With(m.registry)
	labels := prometheus.Labels{"cache": name}

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "cache_entries",
		Help:        "Entries held by the cache.",
		ConstLabels: labels,
	}, func() float64 { return float64(store.Stats().Entries) })
	factory.NewCounterFunc(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "cache_hits_total",
		Help:        "Cache lookups answered from memory.",
		ConstLabels: labels,
	}, func() float64 { return float64(store.Stats().Hits) })
	factory.NewCounterFunc(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "cache_misses_total",
		Help:        "Cache lookups that missed.",
		ConstLabels: labels,
	}, func() float64 { return float64(store.Stats().Misses) })
	factory.NewCounterFunc(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "cache_loads_total",
		Help:        "Loader calls made on cache misses.",
		ConstLabels: labels,
	}, func() float64 { return float64(store.Stats().Loads) })
}

// ConversionFinished records one year conversion.
func (m *Metrics) ConversionFinished(valid bool, errors, warnings int, took time.Duration) {
	if m == nil {
		return
	}
	outcome := "valid"
	if !valid {
		outcome = "invalid"
	}
	m.Conversions.WithLabelValues(outcome).Inc()
	m.ConversionDuration.Observe(took.Seconds())
	m.ValidationFindings.WithLabelValues("error").Add(float64(errors))
	m.ValidationFindings.WithLabelValues("warning").Add(float64(warnings))
}

// CatalogLoaded records the size of the loaded match list.
func (m *Metrics) CatalogLoaded(matches int) {
	if m == nil {
		return
	}
	m.CatalogMatches.Set(float64(matches))
}

// Middleware records request counts and latency. Routes come from the
// ServeMux pattern so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
