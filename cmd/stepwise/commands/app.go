// Package commands implements CLI command handlers for stepwise.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/stepwise/internal/intervalflag"
	"github.com/Sumatoshi-tech/stepwise/internal/render"
	"github.com/Sumatoshi-tech/stepwise/pkg/config"
	"github.com/Sumatoshi-tech/stepwise/pkg/observability"
	"github.com/Sumatoshi-tech/stepwise/pkg/timeline"
	"github.com/Sumatoshi-tech/stepwise/pkg/version"
)

const spanPrefix = "stepwise."

// GlobalFlags holds the persistent root flags.
type GlobalFlags struct {
	ConfigPath string
	TimeZone   string
	LogLevel   string
	LogJSON    bool
	Metrics    bool
	NoColor    bool
}

// App carries the state shared by every subcommand of one invocation.
type App struct {
	Flags GlobalFlags

	cfg       *config.Config
	location  *time.Location
	providers observability.Providers
	recorder  *observability.OpMetrics
	parser    intervalflag.Parser
	output    render.Options
}

// action is a subcommand body run inside the App lifecycle.
type action func(ctx context.Context, cmd *cobra.Command, args []string) error

// run wraps fn with configuration loading, telemetry setup, a command span,
// and teardown.
func (a *App) run(name string, fn action) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		setupErr := a.setup(cmd)
		if setupErr != nil {
			return setupErr
		}

		defer func() {
			err = errors.Join(err, a.teardown(cmd))
		}()

		ctx, span := a.providers.Tracer.Start(cmd.Context(), spanPrefix+name)
		defer span.End()

		err = fn(ctx, cmd, args)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			a.logger().ErrorContext(ctx, "command failed", "command", name, "error", err)
		}

		return err
	}
}

func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.Flags.ConfigPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	if flags.Changed(flagTimeZone) {
		cfg.Time.Location = a.Flags.TimeZone
	}

	if flags.Changed(flagLogLevel) {
		cfg.Logging.Level = a.Flags.LogLevel
	}

	if flags.Changed(flagLogJSON) && a.Flags.LogJSON {
		cfg.Logging.Format = "json"
	}

	if flags.Changed(flagMetrics) {
		cfg.Telemetry.Metrics = a.Flags.Metrics
	}

	if a.Flags.NoColor {
		cfg.Output.Color = false
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	level, err := config.ParseLogLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.Version = version.Get().Version
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.OTLP = observability.OTLPConfig{
		Endpoint: cfg.Telemetry.OTLPEndpoint,
		Insecure: cfg.Telemetry.OTLPInsecure,
	}
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio
	obsCfg.Prometheus = cfg.Telemetry.Metrics
	obsCfg.Log = observability.LogConfig{
		Level:  level,
		JSON:   cfg.LogJSON(),
		Output: cmd.ErrOrStderr(),
	}

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	recorder, err := observability.NewOpMetrics(providers.Meter)
	if err != nil {
		return errors.Join(fmt.Errorf("init metrics: %w", err), providers.Shutdown(context.Background()))
	}

	a.cfg = cfg
	a.location = loc
	a.providers = providers
	a.recorder = recorder
	a.parser = intervalflag.NewParser(loc, cfg.Time.Layout)
	a.output = render.Options{
		Color:     cfg.Output.Color,
		Precision: cfg.Output.Precision,
		Layout:    cfg.Time.Layout,
		Location:  loc,
	}

	return nil
}

func (a *App) teardown(cmd *cobra.Command) error {
	var dumpErr error

	if a.cfg.Telemetry.Metrics {
		dumpErr = observability.WritePrometheus(cmd.ErrOrStderr(), a.providers.Gatherer)
	}

	return errors.Join(dumpErr, a.providers.Shutdown(context.Background()))
}

func (a *App) logger() *slog.Logger {
	return a.providers.Logger
}

// handler parses raws and builds a handler wired to the App's location,
// logger, and metrics.
func (a *App) handler(ctx context.Context, raws []string) (*timeline.Handler, error) {
	intervals, err := a.parser.Intervals(raws)
	if err != nil {
		return nil, err
	}

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("stepwise.intervals", len(intervals)))

	h, err := timeline.New(intervals,
		timeline.WithLocation(a.location),
		timeline.WithLogger(a.logger()),
		timeline.WithRecorder(a.recorder),
	)
	if err != nil {
		return nil, fmt.Errorf("build timeline: %w", err)
	}

	a.logger().DebugContext(ctx, "timeline built", "intervals", len(intervals), "breakpoints", len(h.Projection()))

	return h, nil
}
