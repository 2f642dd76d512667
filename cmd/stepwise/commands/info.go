package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/stepwise/pkg/version"
)

const (
	configCmdUse    = "config"
	configCmdShort  = "Print the effective configuration as YAML"
	versionCmdUse   = "version"
	versionCmdShort = "Show version information"
)

// NewConfigCommand creates the config subcommand.
func NewConfigCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   configCmdUse,
		Short: configCmdShort,
		Args:  cobra.NoArgs,
		RunE: app.run(configCmdUse, func(_ context.Context, cmd *cobra.Command, _ []string) error {
			out, err := app.cfg.YAML()
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			return nil
		}),
	}
}

// NewVersionCommand creates the version subcommand.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   versionCmdUse,
		Short: versionCmdShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())

			return err
		},
	}
}
