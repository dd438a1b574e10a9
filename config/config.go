package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/simcesplatform/domain-messages/errors"
	"github.com/simcesplatform/domain-messages/pkg/timestamp"
)

// Deployment environment constants
const (
	EnvironmentDev  = "dev"  // Local development
	EnvironmentTest = "test" // CI and integration runs
	EnvironmentProd = "prod" // Live simulation deployments
)

// Config represents the complete message tooling configuration.
// Simplified to 4 fields: Version (semver), Platform (simulation identity),
// Codec (decode behaviour), Metrics (Prometheus exposition)
type Config struct {
	Version  string         `json:"version,omitempty"` // Semantic version (e.g., "1.0.0") of the config document
	Platform PlatformConfig `json:"platform"`
	Codec    CodecConfig    `json:"codec"`
	Metrics  MetricsConfig  `json:"metrics"`
}

// SafeConfig provides thread-safe access to configuration
type SafeConfig struct {
	mu     sync.RWMutex
	config *Config
}

// NewSafeConfig creates a new thread-safe config wrapper
func NewSafeConfig(cfg *Config) *SafeConfig {
	if cfg == nil {
		cfg = &Config{}
	}
	return &SafeConfig{
		config: cfg,
	}
}

// Get returns a deep copy of the current configuration
func (sc *SafeConfig) Get() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config.Clone()
}

// Update atomically updates the configuration after validation
func (sc *SafeConfig) Update(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config cannot be nil", errors.ErrInvalidConfig)
	}

	// Validate before updating
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.config = cfg
	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	if c == nil {
		return &Config{}
	}

	// Use JSON marshaling/unmarshaling for deep copy
	data, err := json.Marshal(c)
	if err != nil {
		// Fallback to shallow copy if marshaling fails
		copied := *c
		return &copied
	}

	var clone Config
	if err := json.Unmarshal(data, &clone); err != nil {
		// Fallback to shallow copy if unmarshaling fails
		copied := *c
		return &copied
	}

	return &clone
}

// PlatformConfig identifies the simulation run and this process within it
type PlatformConfig struct {
	SimulationID    string `json:"simulation_id,omitempty"`     // Start time of the simulation run (ISO 8601 UTC)
	SourceProcessID string `json:"source_process_id,omitempty"` // Name of this process in the simulation
	Environment     string `json:"environment,omitempty"`       // "prod", "dev", "test"
}

// CodecConfig controls document decoding behaviour
type CodecConfig struct {
	StrictDecode bool `json:"strict_decode"` // Reject documents carrying undeclared fields
}

// MetricsConfig controls the Prometheus exposition endpoint
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Port    int    `json:"port,omitempty"`
	Path    string `json:"path,omitempty"`
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	if c.Version != "" {
		if _, _, _, err := parseSemVer(c.Version); err != nil {
			return fmt.Errorf("%w: version: %v", errors.ErrInvalidConfig, err)
		}
	}

	// Validate and normalize environment
	if c.Platform.Environment != "" {
		c.Platform.Environment = strings.ToLower(c.Platform.Environment)
		switch c.Platform.Environment {
		case EnvironmentDev, EnvironmentTest, EnvironmentProd:
		default:
			return fmt.Errorf("%w: platform.environment %q (must be %q, %q or %q)",
				errors.ErrInvalidConfig, c.Platform.Environment,
				EnvironmentDev, EnvironmentTest, EnvironmentProd)
		}
	}

	// A simulation id is the start time of the run, so it must parse as one
	if c.Platform.SimulationID != "" {
		if err := timestamp.Validate(c.Platform.SimulationID); err != nil {
			return fmt.Errorf("%w: platform.simulation_id: %v", errors.ErrInvalidConfig, err)
		}
	}

	if err := c.validateMetrics(); err != nil {
		return fmt.Errorf("metrics configuration: %w", err)
	}

	return nil
}

// validateMetrics validates the metrics endpoint configuration.
// Only applies when the endpoint is enabled.
func (c *Config) validateMetrics() error {
	if !c.Metrics.Enabled {
		return nil
	}

	if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
		return fmt.Errorf("%w: metrics.port %d (must be between 1 and 65535)",
			errors.ErrInvalidConfig, c.Metrics.Port)
	}

	if c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled",
			errors.ErrMissingConfig)
	}

	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path %q must start with a slash",
			errors.ErrInvalidConfig, c.Metrics.Path)
	}

	return nil
}

// Loader handles configuration loading with layers and overrides
type Loader struct {
	layers     []string
	validation bool
	envPrefix  string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		layers:     []string{},
		validation: false,
		envPrefix:  "SIMCES",
	}
}

// AddLayer adds a configuration file layer
func (l *Loader) AddLayer(path string) {
	l.layers = append(l.layers, path)
}

// EnableValidation enables or disables configuration validation
func (l *Loader) EnableValidation(enable bool) {
	l.validation = enable
}

// LoadFile loads configuration from a single file
func (l *Loader) LoadFile(path string) (*Config, error) {
	l.layers = []string{path}
	return l.Load()
}

// Load loads and merges all configuration layers
func (l *Loader) Load() (*Config, error) {
	// Start with defaults
	cfg := l.getDefaults()

	// Load each layer and merge using map-based approach
	for _, path := range l.layers {
		rawConfig, err := l.loadRawJSON(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		cfg = l.mergeFromMap(cfg, rawConfig)
	}

	// Apply environment overrides
	l.applyEnvOverrides(cfg)

	// Validate if enabled
	if l.validation {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// getDefaults returns default configuration
func (l *Loader) getDefaults() *Config {
	return &Config{
		Platform: PlatformConfig{
			Environment: EnvironmentDev,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
			Path:    "/metrics",
		},
	}
}

// loadRawJSON loads configuration from a JSON file as a map
func (l *Loader) loadRawJSON(path string) (map[string]any, error) {
	// Use secure file reading with validation
	data, err := safeReadFile(path)
	if err != nil {
		return nil, err
	}

	// Validate JSON depth to prevent DoS
	if err := validateJSONDepth(data); err != nil {
		return nil, fmt.Errorf("invalid JSON structure: %w", err)
	}

	// Unmarshal into map
	var rawConfig map[string]any
	if err := json.Unmarshal(data, &rawConfig); err != nil {
		return nil, err
	}

	return rawConfig, nil
}

// mergeFromMap merges configuration from a raw map, only overriding fields present in the map
func (l *Loader) mergeFromMap(base *Config, override map[string]any) *Config {
	if override == nil {
		return base
	}

	// Marshal the base config to JSON then to map
	baseJSON, err := json.Marshal(base)
	if err != nil {
		return base
	}

	var baseMap map[string]any
	if err := json.Unmarshal(baseJSON, &baseMap); err != nil {
		return base
	}

	// Deep merge the maps
	mergedMap := l.deepMergeMaps(baseMap, override)

	// Convert back to Config
	mergedJSON, err := json.Marshal(mergedMap)
	if err != nil {
		return base
	}

	var merged Config
	if err := json.Unmarshal(mergedJSON, &merged); err != nil {
		return base
	}

	return &merged
}

// deepMergeMaps recursively merges two maps, with override taking precedence
func (l *Loader) deepMergeMaps(base, override map[string]any) map[string]any {
	result := make(map[string]any)

	// Copy base values
	for k, v := range base {
		result[k] = v
	}

	// Override with values from override map
	for k, v := range override {
		if v == nil {
			continue
		}

		// If both base and override have maps at this key, merge them
		if baseMap, baseOk := base[k].(map[string]any); baseOk {
			if overrideMap, overrideOk := v.(map[string]any); overrideOk {
				result[k] = l.deepMergeMaps(baseMap, overrideMap)
				continue
			}
		}

		// Otherwise, override takes precedence
		result[k] = v
	}

	return result
}

// applyEnvOverrides applies environment variable overrides.
// Values that fail basic sanitation are ignored.
func (l *Loader) applyEnvOverrides(cfg *Config) {
	// Platform overrides
	if val := l.envValue("SIMULATION_ID"); val != "" {
		cfg.Platform.SimulationID = val
	}
	if val := l.envValue("SOURCE_PROCESS_ID"); val != "" {
		cfg.Platform.SourceProcessID = val
	}
	if val := l.envValue("ENVIRONMENT"); val != "" {
		cfg.Platform.Environment = val
	}

	// Codec overrides
	if val := l.envValue("STRICT_DECODE"); val != "" {
		if strict, err := strconv.ParseBool(val); err == nil {
			cfg.Codec.StrictDecode = strict
		}
	}

	// Metrics overrides
	if val := l.envValue("METRICS_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
	if val := l.envValue("METRICS_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.Metrics.Port = port
		}
	}
	if val := l.envValue("METRICS_PATH"); val != "" {
		cfg.Metrics.Path = val
	}
}

// envValue reads a prefixed environment variable, dropping unsafe values
func (l *Loader) envValue(name string) string {
	key := l.envPrefix + "_" + name
	val := os.Getenv(key)
	if err := validateEnvVar(key, val); err != nil {
		return ""
	}
	return val
}

// SaveToFile saves the configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// Use secure file writing with validation
	return safeWriteFile(path, data)
}

// String returns a JSON representation of the config
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// parseSemVer parses a semantic version string (e.g., "1.2.3")
// Returns major, minor, patch, error
func parseSemVer(version string) (int, int, int, error) {
	if version == "" {
		return 0, 0, 0, fmt.Errorf("version cannot be empty")
	}

	// Remove 'v' prefix if present
	version = strings.TrimPrefix(version, "v")

	// Split into parts
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("version must be in format 'major.minor.patch', got '%s'", version)
	}

	// Parse major
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid major version '%s': %w", parts[0], err)
	}

	// Parse minor
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid minor version '%s': %w", parts[1], err)
	}

	// Parse patch
	patch, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid patch version '%s': %w", parts[2], err)
	}

	return major, minor, patch, nil
}
