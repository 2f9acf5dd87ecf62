// Package metrics provides Prometheus metrics for peerd observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "peerd"

// Label constants for consistent labeling across metrics.
const (
	LabelResult    = "result"    // success, failure
	LabelReason    = "reason"    // load_failed, not_found, stream_closed
	LabelOperation = "operation" // StatTask, etc.
	LabelComponent = "component" // scheduler_client
	LabelTransport = "transport" // peer, local
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultHit     = "hit"
	ResultMiss    = "miss"
)

// Counters track cumulative values that only increase.
var (
	// PiecesServedTotal counts pieces streamed to peers via SyncPieces.
	PiecesServedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pieces_served_total",
			Help:      "Total pieces streamed to peers",
		},
	)

	// PieceServeSkipsTotal counts pieces omitted from sync streams by skip reason.
	PieceServeSkipsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "piece_serve_skips_total",
			Help:      "Total pieces omitted from sync streams",
		},
		[]string{LabelReason},
	)

	// BytesServedTotal counts content bytes streamed to peers.
	BytesServedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_served_total",
			Help:      "Total content bytes streamed to peers",
		},
	)

	// DownloadsTotal counts whole-task downloads by result.
	DownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloads_total",
			Help:      "Total whole-task downloads",
		},
		[]string{LabelResult},
	)

	// DownloadedPiecesTotal counts pieces fetched from parent peers.
	DownloadedPiecesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloaded_pieces_total",
			Help:      "Total pieces fetched from parent peers",
		},
	)

	// DownloadedBytesTotal counts content bytes fetched from parent peers.
	DownloadedBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloaded_bytes_total",
			Help:      "Total content bytes fetched from parent peers",
		},
	)

	// SchedulerRequestsTotal counts scheduler RPCs.
	SchedulerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduler_requests_total",
			Help:      "Total scheduler RPCs",
		},
		[]string{LabelOperation},
	)

	// SchedulerRetriesTotal counts scheduler RPC retries.
	SchedulerRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduler_retries_total",
			Help:      "Total scheduler RPC retries",
		},
	)

	// CircuitBreakerTripsTotal counts circuit breaker trips.
	CircuitBreakerTripsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_trips_total",
			Help:      "Total circuit breaker trips",
		},
		[]string{LabelComponent},
	)

	// HealthCheckCacheTotal counts cached health check lookups.
	HealthCheckCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "health_check_cache_total",
			Help:      "Cached health check lookups by hit/miss",
		},
		[]string{LabelResult},
	)
)

// Gauges track values that can go up or down.
var (
	// ActiveSyncStreams tracks currently open piece sync streams.
	ActiveSyncStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sync_streams",
			Help:      "Piece sync streams currently open",
		},
	)

	// ActiveDownloads tracks whole-task downloads currently running.
	ActiveDownloads = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_downloads",
			Help:      "Whole-task downloads currently running",
		},
	)

	// CircuitBreakerState tracks the circuit breaker state (0=closed, 1=open, 2=half-open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{LabelComponent},
	)
)

// Histograms track distributions of values.
var (
	// PieceReadDuration tracks the time to load one piece from local storage.
	PieceReadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "piece_read_duration_seconds",
			Help:      "Time to load one piece from local storage",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	// PieceDownloadCost tracks the per-piece download cost reported by the engine.
	PieceDownloadCost = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "piece_download_cost_seconds",
			Help:      "Per-piece download cost reported by the engine",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	// SchedulerRequestDuration tracks scheduler RPC latency.
	SchedulerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scheduler_request_duration_seconds",
			Help:      "Scheduler RPC latency",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{LabelOperation},
	)
)

// Circuit breaker state constants.
const (
	CircuitStateClosed   = 0
	CircuitStateOpen     = 1
	CircuitStateHalfOpen = 2
)

// CircuitStateToFloat converts a circuit breaker state string to a float64.
func CircuitStateToFloat(state string) float64 {
	switch state {
	case "closed":
		return CircuitStateClosed
	case "open":
		return CircuitStateOpen
	case "half-open":
		return CircuitStateHalfOpen
	default:
		return -1
	}
}
