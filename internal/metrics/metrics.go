// Package metrics exposes Prometheus collectors for task processing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TasksSubmitted counts accepted submissions.
	TasksSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "videosvc_tasks_submitted_total",
		Help: "Total processing tasks accepted",
	})

	// TasksFinished counts tasks that reached a terminal status.
	TasksFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "videosvc_tasks_finished_total",
		Help: "Total processing tasks that reached a terminal status",
	}, []string{"status"})

	// TasksInFlight tracks tasks whose unit of work is still running.
	TasksInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "videosvc_tasks_in_flight",
		Help: "Processing tasks currently running",
	})

	// StepDuration tracks wall time of each external tool step.
	StepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "videosvc_step_duration_seconds",
		Help:    "Duration of probe, encode, copy and thumbnail steps",
		Buckets: prometheus.ExponentialBuckets(0.05, 2.0, 14), // 50ms to ~7m
	}, []string{"step"})

	// StepFailures counts failed steps by kind.
	StepFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "videosvc_step_failures_total",
		Help: "Total failed probe, encode, copy and thumbnail steps",
	}, []string{"step"})

	// HTTPRequestDuration tracks API latency by route template.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "videosvc_http_request_duration_seconds",
		Help:    "HTTP request latencies in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// RecordSubmitted marks a task as accepted and running.
func RecordSubmitted() {
	TasksSubmitted.Inc()
	TasksInFlight.Inc()
}

// RecordFinished marks a task as terminal with the given status.
func RecordFinished(status string) {
	TasksFinished.WithLabelValues(status).Inc()
	TasksInFlight.Dec()
}

// ObserveStep records the duration and outcome of one step.
func ObserveStep(step string, elapsed time.Duration, err error) {
	StepDuration.WithLabelValues(step).Observe(elapsed.Seconds())
	if err != nil {
		StepFailures.WithLabelValues(step).Inc()
	}
}

// ObserveHTTP records one served request.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
