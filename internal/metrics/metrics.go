package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Scheduler metrics

	JobsActive = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "codeassist",
		Name:      "scheduler_jobs_active",
		Help:      "Number of jobs currently registered, by category.",
	}, []string{"category"})

	JobsFiredTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "codeassist",
		Name:      "scheduler_jobs_fired_total",
		Help:      "Total job dispatches, by category and outcome.",
	}, []string{"category", "outcome"})

	DispatchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "codeassist",
		Name:      "scheduler_dispatch_duration_seconds",
		Help:      "Duration of job callback execution.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"category"})

	// Telegram metrics

	UpdatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "codeassist",
		Name:      "telegram_updates_total",
		Help:      "Total Telegram updates handled, by kind.",
	}, []string{"kind"})

	SendFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "codeassist",
		Name:      "telegram_send_failures_total",
		Help:      "Outbound messages that could not be delivered.",
	})

	// External lookups

	LookupDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "codeassist",
		Name:      "lookup_duration_seconds",
		Help:      "Latency of external weather/quote lookups.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"service", "outcome"})

	// Ops HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "codeassist",
		Name:      "http_request_duration_seconds",
		Help:      "Ops HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "codeassist",
		Name:      "http_requests_total",
		Help:      "Total ops HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		JobsActive,
		JobsFiredTotal,
		DispatchDuration,
		UpdatesTotal,
		SendFailuresTotal,
		LookupDuration,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}
