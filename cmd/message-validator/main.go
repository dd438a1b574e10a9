// Package main implements the message document validator for the simulation
// platform. It decodes newline-delimited JSON documents against the
// registered message schemas and reports every violation.
package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/simcesplatform/domain-messages/config"
	"github.com/simcesplatform/domain-messages/message"
	"github.com/simcesplatform/domain-messages/metric"
	"github.com/simcesplatform/domain-messages/registry"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "message-validator"
)

const (
	// maxConcurrentFiles caps the number of files validated in parallel
	maxConcurrentFiles = 4

	// maxDocumentSize caps a single NDJSON line
	maxDocumentSize = 1 << 20
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	// Run application with proper error handling
	if err := run(); err != nil {
		slog.Error("Validation failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	// Parse and validate CLI flags
	cliCfg, logger, shouldExit, err := initializeCLI()
	if shouldExit || err != nil {
		return err
	}

	// Load and validate configuration
	cfg, err := initializeConfiguration(cliCfg)
	if err != nil {
		return err
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	if _, ok := registry.Lookup(cliCfg.MessageType); !ok {
		return fmt.Errorf("unknown message type %q (registered: %v)",
			cliCfg.MessageType, registry.Names())
	}

	// Setup metrics
	metricsRegistry := metric.NewMetricsRegistry()
	coreMetrics := metricsRegistry.CoreMetrics()
	coreMetrics.SetRegisteredSchemas(registry.Default().Len())

	if cfg.Metrics.Enabled {
		server := metric.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, metricsRegistry)
		go func() {
			if err := server.Start(); err != nil {
				slog.Error("Metrics server failed", "error", err)
			}
		}()
		defer func() {
			if err := server.Stop(); err != nil {
				slog.Warn("Failed to stop metrics server", "error", err)
			}
		}()
		slog.Info("Metrics server started", "address", server.Address())
	}

	codec := message.NewCodec(
		message.WithStrictDecode(cfg.Codec.StrictDecode),
		message.WithMetrics(coreMetrics),
		message.WithLogger(logger),
	)

	slog.Info("Validating documents",
		"type", cliCfg.MessageType,
		"strict", cfg.Codec.StrictDecode,
		"files", len(cliCfg.Files))

	return validateInputs(context.Background(), codec, cliCfg)
}

// initializeCLI parses flags and sets up logging
func initializeCLI() (*CLIConfig, *slog.Logger, bool, error) {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return nil, nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil, nil, true, nil
	}

	if cliCfg.ShowHelp {
		printHelp()
		return nil, nil, true, nil
	}

	if cliCfg.ListTypes {
		for _, name := range registry.Names() {
			fmt.Println(name)
		}
		return nil, nil, true, nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	return cliCfg, logger, false, nil
}

// initializeConfiguration loads configuration and applies CLI overrides
func initializeConfiguration(cliCfg *CLIConfig) (*config.Config, error) {
	loader := config.NewLoader()
	if cliCfg.ConfigPath != "" {
		loader.AddLayer(cliCfg.ConfigPath)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// CLI flags win over config file and environment
	if cliCfg.Strict {
		cfg.Codec.StrictDecode = true
	}
	if cliCfg.MetricsPort != 0 {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Port = cliCfg.MetricsPort
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validateInputs validates every input source and reports a summary.
// Files are processed concurrently; stdin is used when no files are given.
func validateInputs(ctx context.Context, codec *message.Codec, cliCfg *CLIConfig) error {
	var total, failed atomic.Int64

	if len(cliCfg.Files) == 0 {
		t, f, err := validateStream(codec, cliCfg.MessageType, "stdin", os.Stdin)
		if err != nil {
			return err
		}
		total.Add(t)
		failed.Add(f)
	} else {
		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(maxConcurrentFiles)

		for _, path := range cliCfg.Files {
			path := path
			g.Go(func() error {
				select {
				case <-gCtx.Done():
					return gCtx.Err()
				default:
				}

				file, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open %s: %w", path, err)
				}
				defer func() { _ = file.Close() }()

				t, f, err := validateStream(codec, cliCfg.MessageType, path, file)
				if err != nil {
					return err
				}
				total.Add(t)
				failed.Add(f)
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}
	}

	slog.Info("Validation complete",
		"documents", total.Load(),
		"valid", total.Load()-failed.Load(),
		"invalid", failed.Load())

	if failed.Load() > 0 {
		return fmt.Errorf("%d of %d documents failed validation", failed.Load(), total.Load())
	}

	return nil
}

// validateStream decodes newline-delimited JSON documents from r.
// Returns the number of documents seen and the number that failed.
func validateStream(codec *message.Codec, messageType, name string, r io.Reader) (int64, int64, error) {
	var total, failed int64

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxDocumentSize)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		total++
		if _, err := codec.Unmarshal(raw, messageType); err != nil {
			failed++
			slog.Warn("Invalid document",
				"source", name,
				"line", line,
				"error", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return total, failed, fmt.Errorf("read %s: %w", name, err)
	}

	return total, failed, nil
}
