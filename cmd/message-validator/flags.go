package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	LogLevel    string
	LogFormat   string
	MessageType string
	Strict      bool
	MetricsPort int
	ShowVersion bool
	ShowHelp    bool
	Validate    bool
	ListTypes   bool
	Files       []string
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("SIMCES_VALIDATOR_CONFIG", ""),
		"Path to configuration file, empty for defaults (env: SIMCES_VALIDATOR_CONFIG)")

	flag.StringVar(&cfg.MessageType, "type",
		getEnv("SIMCES_VALIDATOR_TYPE", ""),
		"Message type to decode documents as (env: SIMCES_VALIDATOR_TYPE)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("SIMCES_VALIDATOR_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: SIMCES_VALIDATOR_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("SIMCES_VALIDATOR_LOG_FORMAT", "text"),
		"Log format: json, text (env: SIMCES_VALIDATOR_LOG_FORMAT)")

	flag.BoolVar(&cfg.Strict, "strict",
		getEnvBool("SIMCES_VALIDATOR_STRICT", false),
		"Reject documents carrying undeclared fields (env: SIMCES_VALIDATOR_STRICT)")

	flag.IntVar(&cfg.MetricsPort, "metrics-port",
		getEnvInt("SIMCES_VALIDATOR_METRICS_PORT", 0),
		"Prometheus metrics port, 0 to use config (env: SIMCES_VALIDATOR_METRICS_PORT)")

	flag.BoolVar(&cfg.ListTypes, "list-types", false, "List registered message types and exit")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	// Remaining arguments are NDJSON files
	cfg.Files = flag.Args()

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp || cfg.ListTypes {
		return nil
	}

	// Validate config file exists when one is named
	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	// The message type is required for document validation
	if !cfg.Validate && cfg.MessageType == "" {
		return fmt.Errorf("message type is required (use -type or -list-types)")
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	// Validate log format
	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	// Validate metrics port
	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", cfg.MetricsPort)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - Message Document Validator

Usage: %s [options] [file ...]

Reads newline-delimited JSON documents from the named files (or stdin) and
validates each one against the schema of the given message type.

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Validate recorded ResourceState documents
  %s -type=ResourceState recording.ndjson

  # Validate from stdin, rejecting undeclared fields
  cat documents.ndjson | %s -type=Request -strict

  # Expose validation metrics while processing a large batch
  %s -type=LFMMarketResult -metrics-port=9090 batch-*.ndjson

  # List the registered message types
  %s -list-types

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// printHelp prints help information
func printHelp() {
	printDetailedHelp()
}
