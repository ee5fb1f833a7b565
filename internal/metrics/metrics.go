// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_http_requests_total",
		Help: "HTTP requests served by the dashboard backend.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_http_request_duration_seconds",
		Help:    "Latency of HTTP requests served by the dashboard backend.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_upstream_requests_total",
		Help: "Calls made to the upstream subsidy API.",
	}, []string{"method", "resource", "status"})

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_upstream_request_duration_seconds",
		Help:    "Latency of calls to the upstream subsidy API.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "resource"})

	StoreEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dashboard_store_entries",
		Help: "Entities currently held in each store cache.",
	}, []string{"store"})

	StoreInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dashboard_store_inflight_operations",
		Help: "Store operations waiting on the upstream.",
	}, []string{"store"})

	StoreRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_store_duplicate_operations_total",
		Help: "Mutations refused because an identical one was still in flight.",
	}, []string{"store", "op"})
)

// ObserveUpstream records one upstream call. status 0 means a transport error.
func ObserveUpstream(method, path string, status int, d time.Duration) {
	resource := Resource(path)
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	UpstreamRequestsTotal.WithLabelValues(method, resource, code).Inc()
	UpstreamRequestDuration.WithLabelValues(method, resource).Observe(d.Seconds())
}

// Resource reduces a request path to its first segment to bound label cardinality.
func Resource(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "root"
	}
	return path
}
