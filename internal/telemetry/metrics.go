// Package telemetry holds the Prometheus collectors, the OpenTelemetry tracer
// provider and the slog logger shared by the server.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Version is stamped at build time with -ldflags "-X Postfeed/internal/telemetry.Version=..."
var Version = "dev"

var (
	// BuildInfo is always 1; the version label carries the information
	BuildInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "postfeed",
		Name:      "build_info",
		Help:      "A gauge with the build version.",
	}, []string{"version"})

	// HTTPRequestDuration is labeled by chi route pattern, not raw path
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "postfeed",
			Name:      "http_request_duration_seconds",
			Help:      "Histogram of response latency (seconds) for HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method", "code"},
	)

	// StoreQueryDuration is labeled by repository operation
	StoreQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "postfeed",
			Name:      "store_query_duration_seconds",
			Help:      "Histogram of the time it takes to execute a store query.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"query"},
	)
)

func init() {
	prometheus.MustRegister(BuildInfo)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(StoreQueryDuration)
}

// RecordBuildInfo publishes the running version
func RecordBuildInfo() {
	BuildInfo.WithLabelValues(Version).Set(1)
}

// ObserveQuery records how long a store query took
func ObserveQuery(query string, d time.Duration) {
	StoreQueryDuration.WithLabelValues(query).Observe(d.Seconds())
}

// ObserveRequest records how long an HTTP request took
func ObserveRequest(route, method, code string, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(route, method, code).Observe(d.Seconds())
}
