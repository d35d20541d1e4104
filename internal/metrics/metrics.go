package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AssetMutationsTotal counts committed asset mutations by action (create, update).
	AssetMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_mutations_total",
			Help: "Total number of committed asset mutations by action",
		},
		[]string{"action"},
	)

	// WarrantyExpiringAssets is the number of assets whose warranty is past or
	// expiring soon, as of the last sweep.
	WarrantyExpiringAssets = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "warranty_expiring_assets",
			Help: "Assets with warranty past or expiring within the warning window",
		},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, AssetMutationsTotal, WarrantyExpiringAssets)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /v1/assets/123 -> /v1/assets/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncAssetMutations increments the committed-mutation counter for an action.
func IncAssetMutations(action string) {
	AssetMutationsTotal.WithLabelValues(action).Inc()
}

// SetWarrantyExpiring records the result of a warranty sweep.
func SetWarrantyExpiring(n int) {
	WarrantyExpiringAssets.Set(float64(n))
}
