package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ukaji3/csvdesk/internal/menu"
	"github.com/ukaji3/csvdesk/pkg/csvdesk/render"
)

// ErrNotTerminal indicates the menu was started without an interactive terminal.
var ErrNotTerminal = errors.New("the menu needs an interactive terminal")

func newMenuCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu FILE",
		Short: "Open the interactive menu on a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			format, err := cc.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}
			if format == "" {
				format = a.cfg.Render.Format
			}
			f, err := render.ParseFormat(format)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
				return ErrNotTerminal
			}

			s, err := a.session(args[0])
			if err != nil {
				return err
			}

			opts := a.cfg.RenderOptions()
			opts.Logger = a.logger

			p := tea.NewProgram(menu.New(s, f, opts), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("menu failed: %w", err)
			}

			if s.Dirty() {
				a.logger.Warn("exited with unsaved changes", "path", s.Path())
			}

			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "", "Chart output format (png, xlsx, terminal); defaults to the configured format")

	return cmd
}
