package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FormSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Total number of form submissions handled",
		},
		[]string{"form", "status"}, // status: accepted, rejected, failed
	)

	SinkFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sink_failures_total",
			Help: "Total number of failed sink deliveries",
		},
		[]string{"sink"}, // sink: store, mail, upload
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)

// IncSubmission counts one handled submission for a form type.
func IncSubmission(form, status string) {
	FormSubmissions.WithLabelValues(form, status).Inc()
}

// IncSinkFailure counts one failed delivery to a sink.
func IncSinkFailure(sink string) {
	SinkFailures.WithLabelValues(sink).Inc()
}

// ObserveHTTPRequest records the duration of one HTTP request.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
