// Package config provides configuration management for the message tooling.
//
// This package handles loading and validation of tool configuration from
// JSON files and environment variables.
//
// # Core Components
//
// Config: Main configuration structure containing the simulation identity,
// codec behaviour and metrics endpoint settings.
//
// SafeConfig: Thread-safe wrapper using RWMutex and deep cloning to prevent
// concurrent access issues and accidental mutations.
//
// Loader: Loads configuration with layer merging (base + overrides) and
// environment variable substitution for flexible deployment scenarios.
//
// # Basic Usage
//
// Loading configuration from files with layer merging:
//
//	loader := config.NewLoader()
//	loader.AddLayer("config/base.json")
//	loader.AddLayer("config/production.json") // Overrides base
//	loader.EnableValidation(true)
//
//	cfg, err := loader.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Environment Variable Overrides
//
// Configuration values can be overridden using environment variables:
//
//	# Override the simulation run identifier
//	export SIMCES_SIMULATION_ID="2020-06-25T00:00:00.000Z"
//
//	# Reject documents carrying undeclared fields
//	export SIMCES_STRICT_DECODE="true"
//
//	# Expose Prometheus metrics on another port
//	export SIMCES_METRICS_ENABLED="true"
//	export SIMCES_METRICS_PORT="9091"
//
// # Layer Merging
//
// Configuration layers are merged with last-wins semantics:
//
//	base.json:
//	  {"platform": {"environment": "dev", "source_process_id": "storage-1"}}
//
//	production.json:
//	  {"platform": {"environment": "prod"}}
//
//	Result:
//	  {"platform": {"environment": "prod", "source_process_id": "storage-1"}}
//
// # Security
//
// The package includes security validation:
//   - File size limits (10MB max) to prevent memory exhaustion
//   - JSON depth validation (100 levels max) to prevent DoS attacks
//   - Path validation to prevent directory traversal
//   - Regular file checks (no symlinks or device files)
package config
