package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/stepwise/internal/render"
	"github.com/Sumatoshi-tech/stepwise/pkg/timeline"
)

const (
	flagOp = "op"

	combineCmdUse   = "combine"
	combineCmdShort = "Combine two timelines point-wise and list the resulting segments"
	combineCmdLong  = `Combine the timeline given by -i with the one given by -j.

Operators: add, sub, mul, div. Division fails when the right timeline is
zero on any segment, including the stretch before its first interval; give
it a baseline such as -j 1970-01-01,max,1 to keep it defined.`
)

// NewCombineCommand creates the combine subcommand.
func NewCombineCommand(app *App) *cobra.Command {
	var (
		left, right []string
		opName      string
	)

	cmd := &cobra.Command{
		Use:   combineCmdUse,
		Short: combineCmdShort,
		Long:  combineCmdLong,
		Args:  cobra.NoArgs,
		RunE: app.run(combineCmdUse, func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			op, err := timeline.ParseOperator(opName)
			if err != nil {
				return err
			}

			a, err := app.handler(ctx, left)
			if err != nil {
				return err
			}

			b, err := app.handler(ctx, right)
			if err != nil {
				return err
			}

			combined, err := timeline.Combine(a, b, op)
			if err != nil {
				return fmt.Errorf("combine %s: %w", op, err)
			}

			return render.Segments(cmd.OutOrStdout(), combined.Segments(), app.output)
		}),
	}

	addIntervalFlags(cmd, &left)
	cmd.Flags().StringArrayVarP(&right, flagWith, flagWithShort, nil, "right-hand "+flagIntervalUsage)
	cmd.Flags().StringVar(&opName, flagOp, timeline.OpAdd.String(), "operator: add, sub, mul, div")

	return cmd
}
