package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ScheduleRunsTotal counts scheduling runs by where they came from and whether every slot was covered
	ScheduleRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oncall_schedule_runs_total",
		Help: "Total number of scheduling runs",
	}, []string{"source", "outcome"})

	// ScheduleSlotsTotal counts generated slots by assignment state
	ScheduleSlotsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oncall_schedule_slots_total",
		Help: "Total number of schedule slots generated",
	}, []string{"state"})

	ScheduleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "oncall_schedule_duration_seconds",
		Help:    "Time taken to generate a schedule",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	}, []string{"source"})

	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oncall_api_requests_total",
		Help: "Total number of API requests",
	}, []string{"method", "endpoint", "status"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "oncall_api_request_duration_seconds",
		Help:    "API request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	APIActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "oncall_api_active_connections",
		Help: "Number of in-flight API requests",
	})
)

// RecordSchedule records the outcome of one scheduling run
func RecordSchedule(source string, assigned, unassigned int, elapsed time.Duration) {
	outcome := "complete"
	if unassigned > 0 {
		outcome = "gaps"
	}

	ScheduleRunsTotal.WithLabelValues(source, outcome).Inc()
	ScheduleSlotsTotal.WithLabelValues("assigned").Add(float64(assigned))
	ScheduleSlotsTotal.WithLabelValues("unassigned").Add(float64(unassigned))
	ScheduleDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// Handler exposes metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
