// Package config provides configuration loading and validation for the stepwise CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Sentinel validation errors.
var (
	ErrInvalidLocation  = errors.New("invalid time location")
	ErrInvalidLayout    = errors.New("invalid time layout")
	ErrInvalidPrecision = errors.New("invalid output precision")
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidLogFormat = errors.New("invalid log format")
	ErrInvalidSampling  = errors.New("invalid trace sample ratio")
)

const (
	envPrefix = "STEPWISE"

	maxPrecision = 15

	logFormatJSON = "json"
	logFormatText = "text"
)

// Config holds all configuration for the stepwise CLI.
type Config struct {
	Time      TimeConfig      `mapstructure:"time"      yaml:"time"`
	Output    OutputConfig    `mapstructure:"output"    yaml:"output"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`
}

// TimeConfig controls how timestamps are parsed and printed.
type TimeConfig struct {
	// Location is an IANA zone name. Timestamps without an offset are read
	// in it and the timeline origin is expressed in it.
	Location string `mapstructure:"location" yaml:"location"`
	Layout   string `mapstructure:"layout"   yaml:"layout"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Color     bool `mapstructure:"color"     yaml:"color"`
	Precision int  `mapstructure:"precision" yaml:"precision"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure" yaml:"otlp_insecure"`
	SampleRatio  float64 `mapstructure:"sample_ratio"  yaml:"sample_ratio"`
	Environment  string  `mapstructure:"environment"   yaml:"environment"`
	Metrics      bool    `mapstructure:"metrics"       yaml:"metrics"`
}

// LoadConfig loads configuration from file and environment variables.
// An empty path searches the default locations; a missing default file is
// not an error, a missing explicit file is.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("config")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("/etc/stepwise")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("time.location", DefaultTimeLocation)
	viperCfg.SetDefault("time.layout", DefaultTimeLayout)

	viperCfg.SetDefault("output.color", DefaultOutputColor)
	viperCfg.SetDefault("output.precision", DefaultOutputPrecision)

	viperCfg.SetDefault("logging.level", DefaultLoggingLevel)
	viperCfg.SetDefault("logging.format", DefaultLoggingFormat)

	viperCfg.SetDefault("telemetry.otlp_endpoint", DefaultTelemetryEndpoint)
	viperCfg.SetDefault("telemetry.otlp_insecure", DefaultTelemetryInsecure)
	viperCfg.SetDefault("telemetry.sample_ratio", DefaultTelemetrySampleRatio)
	viperCfg.SetDefault("telemetry.environment", DefaultTelemetryEnvironment)
	viperCfg.SetDefault("telemetry.metrics", DefaultTelemetryMetrics)
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	if _, err := time.LoadLocation(config.Time.Location); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLocation, config.Time.Location)
	}

	if strings.TrimSpace(config.Time.Layout) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidLayout)
	}

	if config.Output.Precision < 0 || config.Output.Precision > maxPrecision {
		return fmt.Errorf("%w: %d", ErrInvalidPrecision, config.Output.Precision)
	}

	if _, err := ParseLogLevel(config.Logging.Level); err != nil {
		return err
	}

	switch strings.ToLower(config.Logging.Format) {
	case logFormatJSON, logFormatText:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	if config.Telemetry.SampleRatio < 0 || config.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidSampling, config.Telemetry.SampleRatio)
	}

	return nil
}

// ParseLogLevel maps a level name to its slog level.
func ParseLogLevel(name string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, name)
	}

	return level, nil
}

// Location resolves Time.Location. Validated configs never fail here.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Time.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLocation, c.Time.Location)
	}

	return loc, nil
}

// LogJSON reports whether logs are emitted as JSON.
func (c *Config) LogJSON() bool {
	return strings.EqualFold(c.Logging.Format, logFormatJSON)
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}

	return out, nil
}
