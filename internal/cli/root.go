// Package cli builds the csvdesk command tree.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/ukaji3/csvdesk/internal/config"
	"github.com/ukaji3/csvdesk/internal/logging"
	"github.com/ukaji3/csvdesk/pkg/csvdesk"
	"github.com/ukaji3/csvdesk/pkg/csvdesk/chart"
)

// ErrInvalidArgument indicates a flag or positional argument could not be used.
var ErrInvalidArgument = errors.New("invalid argument")

// app carries the state PersistentPreRunE prepares for every subcommand.
type app struct {
	cfg    *config.Config
	logger *log.Logger
}

// session loads path into a new session built from the configuration.
func (a *app) session(path string) (*csvdesk.Session, error) {
	s := csvdesk.NewSession(a.cfg.StoreOptions(), chart.New(a.cfg.ChartOptions()), a.logger)
	if err := s.Load(path); err != nil {
		return nil, err
	}

	return s, nil
}

// NewRootCmd creates the csvdesk command tree. Configuration and logging are
// set up in PersistentPreRunE, before any subcommand runs.
func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	a := &app{
		cfg:    config.DefaultConfig(),
		logger: logging.Discard(),
	}

	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	cmd.PersistentFlags().String("log_level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log_format", "text", "Set the log format (text, logfmt, json)")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		flags := cc.Flags()

		var merr error

		configPath, err := flags.GetString("config")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		logLevel, err := flags.GetString("log_level")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		logFormat, err := flags.GetString("log_format")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		if merr != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if flags.Changed("log_level") {
			cfg.Log.Level = logLevel
		}
		if flags.Changed("log_format") {
			cfg.Log.Format = logFormat
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := logging.New(cc.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("failed creating logger: %w", err)
		}
		slog.SetDefault(slog.New(logger))

		a.cfg = cfg
		a.logger = logger

		return nil
	}

	cmd.AddCommand(newShowCmd(a))
	cmd.AddCommand(newColumnsCmd(a))
	cmd.AddCommand(newAddRowCmd(a))
	cmd.AddCommand(newAddColumnCmd(a))
	cmd.AddCommand(newEditCmd(a))
	cmd.AddCommand(newDescribeCmd(a))
	cmd.AddCommand(newHeatmapCmd(a))
	cmd.AddCommand(newLineCmd(a))
	cmd.AddCommand(newPieCmd(a))
	cmd.AddCommand(newBarCmd(a))
	cmd.AddCommand(newRenderCmd(a))
	cmd.AddCommand(newInspectCmd(a))
	cmd.AddCommand(newMenuCmd(a))
	cmd.AddCommand(newConfigCmd(a))

	return cmd
}
