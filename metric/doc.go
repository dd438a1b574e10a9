// Package metric provides Prometheus-based metrics collection and an HTTP
// server for monitoring the message platform.
//
// The package offers a centralized metrics registry managing both core
// platform metrics (validation outcomes, codec latency, schema counts) and
// custom component-specific metrics. It includes an HTTP server exposing
// metrics in Prometheus format for monitoring system integration.
//
// # Architecture
//
// The package follows a three-layer design:
//
//  1. Core Metrics: Platform-level metrics automatically registered (Metrics type)
//  2. Component Registry: Extensible registration for component-specific metrics (MetricsRegistrar interface)
//  3. HTTP Server: Metrics endpoint with a health check (Server type)
//
// This architecture separates infrastructure concerns (core metrics) from
// application concerns (component-specific metrics) while providing a unified
// metrics endpoint for monitoring systems.
//
// # Basic Usage
//
// Setting up metrics collection and the HTTP server:
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//
//	go func() {
//	    if err := server.Start(); err != nil {
//	        log.Printf("Metrics server error: %v", err)
//	    }
//	}()
//
//	// Record core platform metrics
//	coreMetrics := registry.CoreMetrics()
//	coreMetrics.RecordValidation("ResourceState", "success")
//	coreMetrics.ObserveCodecDuration("ResourceState", "decode", 0.0002)
//	coreMetrics.SetRegisteredSchemas(3)
//
// The metrics server exposes Prometheus-formatted metrics at
// http://localhost:9090/metrics and a health check at
// http://localhost:9090/health.
//
// # Core Metrics
//
// The package automatically registers core platform metrics tracking:
//
//   - Validation outcomes: messages_validated_total{type, result}
//   - Validation failures by field: validation_failures_total{type, field, code}
//   - Codec performance: codec_duration_seconds{type, operation}
//   - Registry size: registered_schemas
//
// Access core metrics through the registry:
//
//	coreMetrics := registry.CoreMetrics()
//
//	// Validation outcome tracking
//	coreMetrics.RecordValidation("ResourceState", "success")
//	coreMetrics.RecordValidation("Request", "failure")
//
//	// Per-field failure tracking
//	coreMetrics.RecordValidationFailure("ResourceState", "StateOfCharge", "max")
//
//	// Codec latency
//	coreMetrics.ObserveCodecDuration("ResourceState", "decode", 0.0002)
//	coreMetrics.ObserveCodecDuration("ResourceState", "encode", 0.0001)
//
//	// Registry size
//	coreMetrics.SetRegisteredSchemas(3)
//
// The message codec records validation outcomes and codec durations
// automatically when constructed with message.WithMetrics, so most programs
// never call the Record methods directly.
//
// # Component-Specific Metrics
//
// Components can register custom metrics through the registry:
//
//	// Register a counter
//	documentsChecked := prometheus.NewCounter(prometheus.CounterOpts{
//	    Name: "documents_checked_total",
//	    Help: "Total number of documents checked",
//	})
//	err := registry.RegisterCounter("state-validator", "documents_checked_total", documentsChecked)
//
//	// Register a gauge
//	queueDepth := prometheus.NewGauge(prometheus.GaugeOpts{
//	    Name: "queue_depth",
//	    Help: "Current depth of the document queue",
//	})
//	err = registry.RegisterGauge("state-validator", "queue_depth", queueDepth)
//
//	// Register a histogram
//	batchDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
//	    Name:    "batch_duration_seconds",
//	    Help:    "Time spent validating one batch",
//	    Buckets: prometheus.DefBuckets,
//	})
//	err = registry.RegisterHistogram("state-validator", "batch_duration_seconds", batchDuration)
//
// # Vector Metrics with Labels
//
// Register metrics with labels for multi-dimensional data:
//
//	// Counter with labels
//	outcomesVec := prometheus.NewCounterVec(
//	    prometheus.CounterOpts{
//	        Name: "documents_by_outcome_total",
//	        Help: "Documents processed by outcome and message type",
//	    },
//	    []string{"outcome", "type"},
//	)
//	err := registry.RegisterCounterVec("state-validator", "documents_by_outcome_total", outcomesVec)
//
//	// Use the metric with specific label values
//	outcomesVec.WithLabelValues("valid", "ResourceState").Inc()
//	outcomesVec.WithLabelValues("invalid", "Request").Inc()
//
// # HTTP Server
//
// The metrics server provides three endpoints:
//
//   - GET / - HTML page with links to metrics and health endpoints
//   - GET /metrics - Prometheus-formatted metrics (default path, configurable)
//   - GET /health - plain-text health check response
//
// Server configuration:
//
//	// Default configuration (port 9090, path /metrics)
//	server := metric.NewServer(0, "", registry)
//
//	// Custom configuration
//	server := metric.NewServer(8080, "/prometheus", registry)
//
//	// Start server (blocking)
//	if err := server.Start(); err != nil {
//	    log.Fatalf("Failed to start metrics server: %v", err)
//	}
//
//	// Stop server (from another goroutine)
//	if err := server.Stop(); err != nil {
//	    log.Printf("Error stopping server: %v", err)
//	}
//
// # Prometheus Integration
//
// The package uses the official Prometheus Go client library and exposes
// metrics in OpenMetrics format. Configure Prometheus to scrape the endpoint:
//
//	# prometheus.yml
//	scrape_configs:
//	  - job_name: 'simces'
//	    static_configs:
//	      - targets: ['localhost:9090']
//	    metrics_path: '/metrics'
//	    scrape_interval: 15s
//
// All core metrics use the namespace "simces" and appropriate subsystems:
//   - simces_messages_validated_total{type="...", result="..."}
//   - simces_validation_failures_total{type="...", field="...", code="..."}
//   - simces_codec_duration_seconds{type="...", operation="..."}
//   - simces_registry_registered_schemas
//
// Component-specific metrics use the metric name as provided during
// registration.
//
// # MetricsRegistrar Interface
//
// Components accept the MetricsRegistrar interface for dependency injection:
//
//	type Checker struct {
//	    checked prometheus.Counter
//	}
//
//	func NewChecker(metrics metric.MetricsRegistrar) (*Checker, error) {
//	    counter := prometheus.NewCounter(prometheus.CounterOpts{
//	        Name: "documents_checked_total",
//	        Help: "Total documents checked",
//	    })
//	    if err := metrics.RegisterCounter("checker", "documents_checked_total", counter); err != nil {
//	        return nil, err
//	    }
//	    return &Checker{checked: counter}, nil
//	}
//
// This enables testing with mock registrars and provides loose coupling.
//
// # Thread Safety
//
// All registry operations are thread-safe:
//   - Registration methods use mutex protection
//   - Metric recording is lock-free (Prometheus guarantee)
//   - CoreMetrics() returns a thread-safe shared instance
//   - PrometheusRegistry() is safe for concurrent access
//
// # Error Handling
//
// Registration methods return errors for:
//
//   - Duplicate registration: attempting to register the same metric name twice
//   - Prometheus conflicts: internal Prometheus registration failures
//   - Validation errors: nil metrics or invalid parameters
//
// Example error handling:
//
//	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test"})
//	err := registry.RegisterCounter("component", "test", counter)
//	if err != nil {
//	    if strings.Contains(err.Error(), "already registered") {
//	        log.Printf("Metric already registered, skipping")
//	    } else {
//	        log.Fatalf("Failed to register metric: %v", err)
//	    }
//	}
//
// The Server.Start() method returns errors for:
//
//   - Server already running
//   - Nil registry
//   - HTTP server failures (port in use, permission denied)
//
// # Design Decisions
//
// Centralized Registry: a single registry keeps the metric namespace
// consistent, prevents duplication and enables runtime metric discovery.
//
// Core vs Component Metrics: platform-level metrics (core) are separated from
// component-specific metrics to distinguish infrastructure health from
// application health.
//
// Prometheus Direct Integration: the official Prometheus client is used
// rather than an abstraction to leverage native features, avoid wrapper
// overhead and stay compatible with the Prometheus ecosystem.
package metric
