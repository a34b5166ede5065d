package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCalculationsTotal,
			Help: HelpTextCalculationsTotal,
		},
		[]string{LabelMode},
	)

	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameCalculationDuration,
			Help:    HelpTextCalculationDuration,
			Buckets: CalculationLatencyBuckets,
		},
		[]string{LabelMode},
	)

	SessionsSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSessionsSaved,
			Help: HelpTextSessionsSaved,
		},
	)

	SessionsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSessionsDeleted,
			Help: HelpTextSessionsDeleted,
		},
	)

	PriceFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePriceFetches,
			Help: HelpTextPriceFetches,
		},
		[]string{LabelResult},
	)
)
