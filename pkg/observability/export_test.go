package observability

import (
	"context"

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// NewResource exposes newResource for testing.
func NewResource(cfg Config) (*resource.Resource, error) {
	return newResource(context.Background(), cfg)
}

// RootSpanSampled starts one root span on a provider configured like the
// one Init builds for cfg and reports whether it was exported.
func RootSpanSampled(cfg Config) bool {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(append(samplerOptions(cfg), sdktrace.WithSyncer(exporter))...)

	_, span := tp.Tracer("probe").Start(context.Background(), "probe")
	span.End()

	sampled := len(exporter.GetSpans()) > 0

	_ = tp.Shutdown(context.Background())

	return sampled
}
