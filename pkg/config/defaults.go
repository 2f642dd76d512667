package config

import "time"

// Time defaults.
const (
	DefaultTimeLocation = "UTC"
	DefaultTimeLayout   = time.RFC3339
)

// Output defaults.
const (
	DefaultOutputColor     = true
	DefaultOutputPrecision = 3
)

// Logging defaults.
const (
	DefaultLoggingLevel  = "warn"
	DefaultLoggingFormat = "text"
)

// Telemetry defaults. An empty endpoint keeps tracing on no-op providers,
// and a zero sample ratio defers to OTEL_TRACES_SAMPLER.
const (
	DefaultTelemetryEndpoint    = ""
	DefaultTelemetryInsecure    = false
	DefaultTelemetrySampleRatio = 0.0
	DefaultTelemetryEnvironment = ""
	DefaultTelemetryMetrics     = false
)
