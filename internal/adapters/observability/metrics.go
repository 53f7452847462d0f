package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "insight"

func counter(name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
}

func histogram(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: name, Help: help, Buckets: buckets}, labels)
}

var (
	HTTPRequests = counter("http_requests_total", "HTTP requests.", "route", "method", "status")
	HTTPLatency  = histogram("http_request_duration_seconds", "HTTP request duration seconds.",
		prometheus.DefBuckets, "route", "method")

	ExternalRequests = counter("external_requests_total", "Outbound requests.", "service", "endpoint", "status")
	ExternalLatency  = histogram("external_request_duration_seconds", "Outbound request duration seconds.",
		prometheus.DefBuckets, "service", "endpoint")

	// event: hit|miss|corrupt|set|del for snapshots, acquired|contended for locks
	CacheEvents = counter("cache_events_total", "Cache and lock events.", "cache", "event")

	// outcome: updated|no_documents|timed_out|error
	Refreshes      = counter("refresh_total", "Refresh pipeline runs by outcome.", "profile", "outcome")
	RefreshLatency = histogram("refresh_duration_seconds", "Refresh pipeline duration seconds.",
		[]float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 30, 45, 60}, "profile")

	// stage: fetched|analyzed
	Documents = counter("documents_total", "Documents seen per pipeline stage.", "stage")
)

// Serve exposes reg on a dedicated listener; an empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

// InitRegistry returns a fresh registry holding every collector of this package.
func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		HTTPRequests, HTTPLatency,
		ExternalRequests, ExternalLatency,
		CacheEvents,
		Refreshes, RefreshLatency, Documents,
	)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveExternal records an outbound call; status 0 means no response arrived.
func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) {
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveRefresh(profile, outcome string, dur time.Duration) {
	Refreshes.WithLabelValues(profile, outcome).Inc()
	RefreshLatency.WithLabelValues(profile).Observe(dur.Seconds())
}

func ObserveDocuments(stage string, n int) {
	Documents.WithLabelValues(stage).Add(float64(n))
}

// LabelErr turns an error into a low-cardinality label: its dynamic type.
func LabelErr(err error) string {
	if err == nil {
		return "none"
	}
	return fmt.Sprintf("%T", err)
}
