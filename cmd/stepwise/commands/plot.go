package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/stepwise/internal/render"
	"github.com/Sumatoshi-tech/stepwise/pkg/timeline"
)

const (
	plotCmdUse       = "plot"
	plotCmdShort     = "Write an HTML step chart of the timeline"
	plotOutputFlag   = "output"
	plotOutputShort  = "o"
	plotOutputUsage  = "output HTML file"
	plotTitleFlag    = "title"
	plotDefaultTitle = "stepwise"
	plotDirPerm      = 0o750
)

// ErrNoOutputFile is returned when the --output flag is not set.
var ErrNoOutputFile = errors.New("output file is required (use --output)")

// NewPlotCommand creates the plot subcommand.
func NewPlotCommand(app *App) *cobra.Command {
	var (
		raws       []string
		outputPath string
		title      string
	)

	cmd := &cobra.Command{
		Use:   plotCmdUse,
		Short: plotCmdShort,
		Args:  cobra.NoArgs,
		RunE: app.run(plotCmdUse, func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			if outputPath == "" {
				return ErrNoOutputFile
			}

			h, err := app.handler(ctx, raws)
			if err != nil {
				return err
			}

			err = writePlot(outputPath, title, h.Segments(), app.output)
			if err != nil {
				return err
			}

			app.logger().InfoContext(ctx, "chart written", "path", outputPath)

			_, err = fmt.Fprintln(cmd.OutOrStdout(), outputPath)

			return err
		}),
	}

	addIntervalFlags(cmd, &raws)
	cmd.Flags().StringVarP(&outputPath, plotOutputFlag, plotOutputShort, "", plotOutputUsage)
	cmd.Flags().StringVar(&title, plotTitleFlag, plotDefaultTitle, "chart title")

	return cmd
}

func writePlot(path, title string, segments []timeline.Segment, o render.Options) (err error) {
	mkErr := os.MkdirAll(filepath.Dir(path), plotDirPerm)
	if mkErr != nil {
		return fmt.Errorf("create output dir: %w", mkErr)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return render.WriteStepChart(f, title, segments, o)
}
