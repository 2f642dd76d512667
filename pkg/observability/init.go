package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/Sumatoshi-tech/stepwise"

// Providers is what one invocation needs to emit telemetry.
type Providers struct {
	Tracer trace.Tracer
	Meter  metric.Meter
	Logger *slog.Logger

	// Gatherer is nil unless Config.Prometheus is set.
	Gatherer prometheus.Gatherer

	// Shutdown flushes exporters in reverse start order. It is safe to
	// call more than once.
	Shutdown func(ctx context.Context) error
}

// Init builds the tracer, meter, and logger described by cfg and installs
// the providers as the otel globals. Signals without a destination get
// no-op providers.
func Init(cfg Config) (Providers, error) {
	ctx := context.Background()

	res, err := newResource(ctx, cfg)
	if err != nil {
		return Providers{}, err
	}

	p := &pipeline{cfg: cfg, res: res}

	tp, err := p.tracerProvider(ctx)
	if err != nil {
		return Providers{}, errors.CombineErrors(err, p.shutdown(ctx))
	}

	mp, registry, err := p.meterProvider(ctx)
	if err != nil {
		return Providers{}, errors.CombineErrors(err, p.shutdown(ctx))
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	providers := Providers{
		Tracer:   tp.Tracer(instrumentationName),
		Meter:    mp.Meter(instrumentationName),
		Logger:   newLogger(cfg),
		Shutdown: p.shutdown,
	}

	// A typed nil must not leak into the interface.
	if registry != nil {
		providers.Gatherer = registry
	}

	return providers, nil
}

func newResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	attrs := []resource.Option{
		resource.WithAttributes(semconv.ServiceName(cfg.Service)),
	}

	if cfg.Version != "" {
		attrs = append(attrs, resource.WithAttributes(semconv.ServiceVersion(cfg.Version)))
	}

	if cfg.Environment != "" {
		attrs = append(attrs, resource.WithAttributes(semconv.DeploymentEnvironment(cfg.Environment)))
	}

	res, err := resource.New(ctx, attrs...)
	if err != nil {
		return nil, errors.Wrap(err, "build otel resource")
	}

	return res, nil
}

type shutdownFunc func(ctx context.Context) error

// pipeline collects the shutdown hooks of everything Init started.
type pipeline struct {
	cfg     Config
	res     *resource.Resource
	closers []shutdownFunc
	closed  bool
}

func (p *pipeline) onShutdown(fn shutdownFunc) {
	p.closers = append(p.closers, fn)
}

func (p *pipeline) shutdown(ctx context.Context) error {
	if p.closed {
		return nil
	}

	p.closed = true

	timeout := p.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var err error

	for _, fn := range slices.Backward(p.closers) {
		err = errors.CombineErrors(err, fn(ctx))
	}

	return err
}

func (p *pipeline) tracerProvider(ctx context.Context) (trace.TracerProvider, error) {
	if !p.cfg.OTLP.enabled() {
		return nooptrace.NewTracerProvider(), nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(p.cfg.OTLP.Endpoint)}
	if p.cfg.OTLP.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create trace exporter")
	}

	tp := sdktrace.NewTracerProvider(append(
		samplerOptions(p.cfg),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(p.res),
	)...)
	p.onShutdown(tp.Shutdown)

	return tp, nil
}

// samplerOptions leaves the sampler unset when no ratio is configured, so
// the SDK reads OTEL_TRACES_SAMPLER and OTEL_TRACES_SAMPLER_ARG itself.
func samplerOptions(cfg Config) []sdktrace.TracerProviderOption {
	if cfg.SampleRatio <= 0 {
		return nil
	}

	return []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	}
}

func (p *pipeline) meterProvider(ctx context.Context) (metric.MeterProvider, *prometheus.Registry, error) {
	var (
		readers  []sdkmetric.Option
		registry *prometheus.Registry
	)

	if p.cfg.Prometheus {
		// Private registry: repeated Init calls in one process must not
		// collide on the default one.
		registry = prometheus.NewRegistry()

		reader, err := promexporter.New(promexporter.WithRegisterer(registry))
		if err != nil {
			return nil, nil, errors.Wrap(err, "create prometheus exporter")
		}

		readers = append(readers, sdkmetric.WithReader(reader))
	}

	if p.cfg.OTLP.enabled() {
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(p.cfg.OTLP.Endpoint)}
		if p.cfg.OTLP.Insecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		}

		exporter, err := otlpmetricgrpc.New(ctx, opts...)
		if err != nil {
			return nil, nil, errors.Wrap(err, "create metric exporter")
		}

		readers = append(readers, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)))
	}

	if len(readers) == 0 {
		return noopmetric.NewMeterProvider(), nil, nil
	}

	mp := sdkmetric.NewMeterProvider(append(readers, sdkmetric.WithResource(p.res))...)
	p.onShutdown(mp.Shutdown)

	return mp, registry, nil
}

func newLogger(cfg Config) *slog.Logger {
	var out io.Writer = os.Stderr
	if cfg.Log.Output != nil {
		out = cfg.Log.Output
	}

	opts := &slog.HandlerOptions{Level: cfg.Log.Level}

	var base slog.Handler = slog.NewTextHandler(out, opts)
	if cfg.Log.JSON {
		base = slog.NewJSONHandler(out, opts)
	}

	return slog.New(NewSpanHandler(base, cfg.Service, cfg.Environment))
}
