package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/stepwise/pkg/observability"
)

func initProviders(t *testing.T, cfg observability.Config) observability.Providers {
	t.Helper()

	providers, err := observability.Init(cfg)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	return providers
}

func TestInit_Noop(t *testing.T) {
	t.Parallel()

	providers := initProviders(t, observability.DefaultConfig())

	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Logger)
	assert.Nil(t, providers.Gatherer)

	ctx, span := providers.Tracer.Start(context.Background(), "stepwise.value")
	defer span.End()

	assert.NotNil(t, ctx)
	assert.False(t, span.SpanContext().IsValid())
}

func TestInit_ShutdownTwice(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()
	cfg.Prometheus = true

	providers, err := observability.Init(cfg)
	require.NoError(t, err)

	require.NoError(t, providers.Shutdown(context.Background()))
	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestInit_Logger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		json   bool
		level  slog.Level
		want   []string
		absent string
	}{
		{"text", false, slog.LevelDebug, []string{"msg=\"projection rebuilt\"", "service=stepwise", "nodes=3"}, ""},
		{"json", true, slog.LevelDebug, []string{`"msg":"projection rebuilt"`, `"service":"stepwise"`, `"nodes":3`}, ""},
		{"filtered", false, slog.LevelWarn, nil, "projection rebuilt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			cfg := observability.DefaultConfig()
			cfg.Log = observability.LogConfig{Level: tt.level, JSON: tt.json, Output: &buf}

			providers := initProviders(t, cfg)
			providers.Logger.DebugContext(context.Background(), "projection rebuilt", "nodes", 3)

			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}

			if tt.absent != "" {
				assert.NotContains(t, buf.String(), tt.absent)
			}
		})
	}
}

func TestNewResource(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()
	cfg.Version = "0.3.0"
	cfg.Environment = "dev"

	res, err := observability.NewResource(cfg)
	require.NoError(t, err)

	attrs := make(map[string]string)
	for _, attr := range res.Attributes() {
		attrs[string(attr.Key)] = attr.Value.AsString()
	}

	assert.Equal(t, "stepwise", attrs["service.name"])
	assert.Equal(t, "0.3.0", attrs["service.version"])
	assert.Equal(t, "dev", attrs["deployment.environment"])
}

func TestNewResource_OmitsEmpty(t *testing.T) {
	t.Parallel()

	res, err := observability.NewResource(observability.DefaultConfig())
	require.NoError(t, err)

	for _, attr := range res.Attributes() {
		assert.NotEqual(t, "service.version", string(attr.Key))
		assert.NotEqual(t, "deployment.environment", string(attr.Key))
	}
}

func TestSampling_Default(t *testing.T) {
	t.Parallel()

	assert.True(t, observability.RootSpanSampled(observability.DefaultConfig()))
}

func TestSampling_EnvSampler(t *testing.T) {
	t.Setenv("OTEL_TRACES_SAMPLER", "always_off")

	assert.False(t, observability.RootSpanSampled(observability.DefaultConfig()))
}

func TestSampling_EnvRatio(t *testing.T) {
	t.Setenv("OTEL_TRACES_SAMPLER", "traceidratio")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0")

	assert.False(t, observability.RootSpanSampled(observability.DefaultConfig()))
}

func TestSampling_RatioOverridesEnv(t *testing.T) {
	t.Setenv("OTEL_TRACES_SAMPLER", "always_off")

	cfg := observability.DefaultConfig()
	cfg.SampleRatio = 1

	assert.True(t, observability.RootSpanSampled(cfg))
}
