package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(a))

	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init PATH",
		Short: "Write the effective configuration to a YAML file",
		Long: `Write the configuration in effect to PATH: the defaults, overlaid by
--config and the log flags. The result can be passed back with --config.`,
		Example: `  # Start from the defaults
  csvdesk config init ~/.config/csvdesk.yaml

  # Keep a semicolon-delimited setup and raise the log level
  csvdesk config init local.yaml --config base.yaml --log_level info --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			force, err := cc.Flags().GetBool("force")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			path := args[0]
			if !force {
				_, err := os.Stat(path)
				if err == nil {
					return fmt.Errorf("%w: %s already exists, use --force to overwrite", ErrInvalidArgument, path)
				}
				if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("failed to check config: %w", err)
				}
			}

			if err := a.cfg.Save(path); err != nil {
				return err
			}
			a.logger.Info("wrote configuration", "path", path)

			_, err = fmt.Fprintln(cc.OutOrStdout(), path)

			return err
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite PATH if it exists")

	return cmd
}
