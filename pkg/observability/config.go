// Package observability wires OpenTelemetry tracing, operation metrics, and
// structured logging for the stepwise CLI.
package observability

import (
	"io"
	"log/slog"
	"time"
)

const (
	defaultService         = "stepwise"
	defaultShutdownTimeout = 5 * time.Second
)

// Config describes the telemetry of one stepwise invocation.
type Config struct {
	// Service, Version and Environment become resource attributes and are
	// stamped on every log record.
	Service     string
	Version     string
	Environment string

	OTLP OTLPConfig

	// SampleRatio selects a parent-based ratio sampler when positive.
	// Zero leaves sampling to the OTEL_TRACES_SAMPLER variables.
	SampleRatio float64

	// Prometheus attaches an in-process reader whose metrics can be
	// written out with WritePrometheus.
	Prometheus bool

	Log LogConfig

	// ShutdownTimeout bounds the final flush.
	ShutdownTimeout time.Duration
}

// OTLPConfig addresses a gRPC collector. An empty Endpoint disables export.
type OTLPConfig struct {
	Endpoint string
	Insecure bool
}

func (c OTLPConfig) enabled() bool { return c.Endpoint != "" }

// LogConfig controls the slog logger.
type LogConfig struct {
	Level slog.Level
	JSON  bool

	// Output defaults to stderr.
	Output io.Writer
}

// DefaultConfig returns a Config that exports nothing and logs text at info.
func DefaultConfig() Config {
	return Config{
		Service:         defaultService,
		Log:             LogConfig{Level: slog.LevelInfo},
		ShutdownTimeout: defaultShutdownTimeout,
	}
}
