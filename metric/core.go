package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all platform-level metrics (not component-specific)
type Metrics struct {
	// Validation metrics
	MessagesValidated  *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec

	// Codec metrics
	CodecDuration *prometheus.HistogramVec

	// Registry metrics
	RegisteredSchemas prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all platform metrics
func NewMetrics() *Metrics {
	return &Metrics{
		MessagesValidated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "simces",
				Subsystem: "messages",
				Name:      "validated_total",
				Help:      "Total number of message validations by type and result",
			},
			[]string{"type", "result"},
		),

		ValidationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "simces",
				Subsystem: "validation",
				Name:      "failures_total",
				Help:      "Total number of validation failures by type, field and rule",
			},
			[]string{"type", "field", "code"},
		),

		CodecDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "simces",
				Subsystem: "codec",
				Name:      "duration_seconds",
				Help:      "Encode and decode duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"type", "operation"},
		),

		RegisteredSchemas: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "simces",
				Subsystem: "registry",
				Name:      "registered_schemas",
				Help:      "Number of message schemas registered in the process",
			},
		),
	}
}

// RecordValidation increments the validation counter. Result is "success"
// or "failure".
func (c *Metrics) RecordValidation(messageType, result string) {
	c.MessagesValidated.WithLabelValues(messageType, result).Inc()
}

// RecordValidationFailure increments the failure counter for one field and
// violated rule.
func (c *Metrics) RecordValidationFailure(messageType, field, code string) {
	c.ValidationFailures.WithLabelValues(messageType, field, code).Inc()
}

// ObserveCodecDuration records one encode or decode duration.
func (c *Metrics) ObserveCodecDuration(messageType, operation string, seconds float64) {
	c.CodecDuration.WithLabelValues(messageType, operation).Observe(seconds)
}

// SetRegisteredSchemas updates the registered schema count.
func (c *Metrics) SetRegisteredSchemas(count int) {
	c.RegisteredSchemas.Set(float64(count))
}
