package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/stepwise/internal/render"
)

const (
	flagAt     = "at"
	flagFrom   = "from"
	flagTo     = "to"
	flagWeight = "weight"

	valueCmdUse        = "value"
	valueCmdShort      = "Show the breakpoint and value in effect at an instant"
	areaCmdUse         = "area"
	areaCmdShort       = "Integrate the timeline over a window, in value-seconds"
	negativeCmdUse     = "negative"
	negativeCmdShort   = "Show the earliest breakpoint with a negative value"
	projectionCmdUse   = "projection"
	projectionCmdShort = "List every breakpoint of the timeline"
	overlapsCmdUse     = "overlaps"
	overlapsCmdShort   = "List stored intervals overlapping a window"

	msgNone = "none"
)

// Sentinel flag errors.
var (
	ErrMissingAt     = errors.New("an instant is required (use --at)")
	ErrMissingWindow = errors.New("a window is required (use --from and --to)")
)

// NewValueCommand creates the value subcommand.
func NewValueCommand(app *App) *cobra.Command {
	var (
		raws []string
		at   string
	)

	cmd := &cobra.Command{
		Use:   valueCmdUse,
		Short: valueCmdShort,
		Args:  cobra.NoArgs,
		RunE: app.run(valueCmdUse, func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			if at == "" {
				return ErrMissingAt
			}

			when, err := app.parser.Time(at)
			if err != nil {
				return err
			}

			h, err := app.handler(ctx, raws)
			if err != nil {
				return err
			}

			node, err := h.NodeAt(when)
			if err != nil {
				return fmt.Errorf("value at %s: %w", at, err)
			}

			return render.Node(cmd.OutOrStdout(), node, app.output)
		}),
	}

	addIntervalFlags(cmd, &raws)
	cmd.Flags().StringVar(&at, flagAt, "", "instant to query")

	return cmd
}

// NewAreaCommand creates the area subcommand.
func NewAreaCommand(app *App) *cobra.Command {
	var (
		raws     []string
		from, to string
		weight   float64
	)

	cmd := &cobra.Command{
		Use:   areaCmdUse,
		Short: areaCmdShort,
		Args:  cobra.NoArgs,
		RunE: app.run(areaCmdUse, func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			if from == "" || to == "" {
				return ErrMissingWindow
			}

			window, err := app.parser.WeightedWindow(from, to, weight)
			if err != nil {
				return err
			}

			h, err := app.handler(ctx, raws)
			if err != nil {
				return err
			}

			area, err := h.Area(window)
			if err != nil {
				return fmt.Errorf("area: %w", err)
			}

			return render.Area(cmd.OutOrStdout(), area, app.output)
		}),
	}

	addIntervalFlags(cmd, &raws)
	cmd.Flags().StringVar(&from, flagFrom, "", "window start")
	cmd.Flags().StringVar(&to, flagTo, "", "window end")
	cmd.Flags().Float64Var(&weight, flagWeight, 1, "multiplier applied to the area")

	return cmd
}

// NewNegativeCommand creates the negative subcommand.
func NewNegativeCommand(app *App) *cobra.Command {
	var raws []string

	cmd := &cobra.Command{
		Use:   negativeCmdUse,
		Short: negativeCmdShort,
		Args:  cobra.NoArgs,
		RunE: app.run(negativeCmdUse, func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			h, err := app.handler(ctx, raws)
			if err != nil {
				return err
			}

			return render.Node(cmd.OutOrStdout(), h.FirstNegative(), app.output)
		}),
	}

	addIntervalFlags(cmd, &raws)

	return cmd
}

// NewProjectionCommand creates the projection subcommand.
func NewProjectionCommand(app *App) *cobra.Command {
	var raws []string

	cmd := &cobra.Command{
		Use:   projectionCmdUse,
		Short: projectionCmdShort,
		Args:  cobra.NoArgs,
		RunE: app.run(projectionCmdUse, func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			h, err := app.handler(ctx, raws)
			if err != nil {
				return err
			}

			return render.Nodes(cmd.OutOrStdout(), h.Projection(), app.output)
		}),
	}

	addIntervalFlags(cmd, &raws)

	return cmd
}

// NewOverlapsCommand creates the overlaps subcommand.
func NewOverlapsCommand(app *App) *cobra.Command {
	var (
		raws     []string
		from, to string
	)

	cmd := &cobra.Command{
		Use:   overlapsCmdUse,
		Short: overlapsCmdShort,
		Args:  cobra.NoArgs,
		RunE: app.run(overlapsCmdUse, func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			if from == "" || to == "" {
				return ErrMissingWindow
			}

			window, err := app.parser.Window(from, to)
			if err != nil {
				return err
			}

			h, err := app.handler(ctx, raws)
			if err != nil {
				return err
			}

			hits := h.Overlapping(window)
			if len(hits) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), msgNone)

				return err
			}

			return render.Intervals(cmd.OutOrStdout(), hits, app.output)
		}),
	}

	addIntervalFlags(cmd, &raws)
	cmd.Flags().StringVar(&from, flagFrom, "", "window start")
	cmd.Flags().StringVar(&to, flagTo, "", "window end")

	return cmd
}
