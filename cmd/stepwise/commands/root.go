package commands

import (
	"github.com/spf13/cobra"
)

// Persistent flag names.
const (
	flagConfig   = "config"
	flagTimeZone = "tz"
	flagLogLevel = "log-level"
	flagLogJSON  = "log-json"
	flagMetrics  = "metrics"
	flagNoColor  = "no-color"
)

// Interval flag names shared by subcommands.
const (
	flagInterval      = "interval"
	flagIntervalShort = "i"
	flagWith          = "with"
	flagWithShort     = "j"
	flagIntervalUsage = "interval as START,END[,VALUE] (repeatable); times are RFC 3339, YYYY-MM-DD or max"
)

const (
	rootCmdUse   = "stepwise"
	rootCmdShort = "Weighted interval timelines: point values, areas and arithmetic"
	rootCmdLong  = `stepwise projects weighted time intervals onto a step function and
answers questions about it.

Intervals are passed with -i START,END[,VALUE]. VALUE defaults to 1.`
)

// NewRootCommand creates the stepwise root command with all subcommands.
func NewRootCommand() *cobra.Command {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:           rootCmdUse,
		Short:         rootCmdShort,
		Long:          rootCmdLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&app.Flags.ConfigPath, flagConfig, "", "config file (default: ./config.yaml, ./config/config.yaml, /etc/stepwise/config.yaml)")
	pf.StringVar(&app.Flags.TimeZone, flagTimeZone, "", "IANA time zone for zone-less timestamps and the origin")
	pf.StringVar(&app.Flags.LogLevel, flagLogLevel, "", "log level: debug, info, warn, error")
	pf.BoolVar(&app.Flags.LogJSON, flagLogJSON, false, "emit logs as JSON")
	pf.BoolVar(&app.Flags.Metrics, flagMetrics, false, "print operation metrics in Prometheus text format to stderr on exit")
	pf.BoolVar(&app.Flags.NoColor, flagNoColor, false, "disable colored output")

	rootCmd.AddCommand(
		NewValueCommand(app),
		NewAreaCommand(app),
		NewNegativeCommand(app),
		NewProjectionCommand(app),
		NewCombineCommand(app),
		NewOverlapsCommand(app),
		NewPlotCommand(app),
		NewConfigCommand(app),
		NewVersionCommand(),
	)

	return rootCmd
}

func addIntervalFlags(cmd *cobra.Command, raws *[]string) {
	cmd.Flags().StringArrayVarP(raws, flagInterval, flagIntervalShort, nil, flagIntervalUsage)
}
