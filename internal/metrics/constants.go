package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameCalculationsTotal   = "calculations_total"
	MetricNameCalculationDuration = "calculation_duration_seconds"
	MetricNameSessionsSaved       = "sessions_saved_total"
	MetricNameSessionsDeleted     = "sessions_deleted_total"
	MetricNamePriceFetches        = "price_fetches_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextCalculationsTotal   = "Total number of profit calculations performed"
	HelpTextCalculationDuration = "Profit calculation latency in seconds"
	HelpTextSessionsSaved       = "Total number of calculation sessions saved"
	HelpTextSessionsDeleted     = "Total number of calculation sessions deleted"
	HelpTextPriceFetches        = "Total number of market price fetches"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelMode   = "mode"
	LabelResult = "result"
)

// Values for the price fetch result label
const (
	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultError = "error"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// CalculationLatencyBuckets covers pure in-memory calculations, which should
// land in the sub-millisecond range even for full exhaustion runs
var CalculationLatencyBuckets = []float64{.00001, .0001, .001, .01, .1, 1}
