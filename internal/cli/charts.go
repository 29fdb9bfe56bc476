package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/ukaji3/csvdesk/pkg/csvdesk"
	"github.com/ukaji3/csvdesk/pkg/csvdesk/parser"
	"github.com/ukaji3/csvdesk/pkg/csvdesk/render"
)

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "Output format (png, xlsx, terminal); defaults to the configured format")
	cmd.Flags().StringP("dir", "d", "", "Directory for PNG files and the workbook; defaults to the configured directory")
}

// sink creates the sink selected by --format and --dir, falling back to the
// configuration for flags that were not set.
func (a *app) sink(cc *cobra.Command) (render.Sink, error) {
	var merr error

	flags := cc.Flags()
	format, err := flags.GetString("format")
	if err != nil {
		merr = multierror.Append(merr, err)
	}
	dir, err := flags.GetString("dir")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	if merr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
	}

	if format == "" {
		format = a.cfg.Render.Format
	}
	f, err := render.ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	opts := a.cfg.RenderOptions()
	if dir != "" {
		opts.Dir = dir
	}
	opts.Out = cc.OutOrStdout()
	opts.Logger = a.logger

	return render.New(f, opts)
}

// draw loads path, renders with fn and closes the sink. Files written by
// the sink are listed on stdout, even when some charts failed.
func (a *app) draw(cc *cobra.Command, path string, fn func(render.Sink, *csvdesk.Session) error) error {
	s, err := a.session(path)
	if err != nil {
		return err
	}

	sink, err := a.sink(cc)
	if err != nil {
		return err
	}

	var merr *multierror.Error
	if err := fn(sink, s); err != nil {
		merr = multierror.Append(merr, err)
	}
	// An empty workbook only repeats the failures above.
	if err := sink.Close(); err != nil && (merr == nil || !errors.Is(err, render.ErrNothingToDraw)) {
		merr = multierror.Append(merr, err)
	}

	out := cc.OutOrStdout()
	switch sk := sink.(type) {
	case *render.PNGSink:
		for _, f := range sk.Files() {
			fmt.Fprintln(out, f)
		}
	case *render.XLSXSink:
		if merr == nil {
			fmt.Fprintln(out, sk.Path())
		}
	}

	return merr.ErrorOrNil()
}

func newHeatmapCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heatmap FILE",
		Short: "Draw the Final score of each Student by Course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			return a.draw(cc, args[0], func(sink render.Sink, s *csvdesk.Session) error {
				h, err := s.PrepareHeatmap()
				if err != nil {
					return err
				}

				return sink.Heatmap(h)
			})
		},
	}
	addRenderFlags(cmd)

	return cmd
}

func newLineCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "line FILE",
		Short: "Draw a numeric column against row position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			index, err := cc.Flags().GetInt("index")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}
			if index < 1 {
				return fmt.Errorf("%w: --index must be 1 or more, got %d", ErrInvalidArgument, index)
			}

			return a.draw(cc, args[0], func(sink render.Sink, s *csvdesk.Session) error {
				ls, err := s.PrepareLineSeries(index - 1)
				if err != nil {
					return err
				}

				return sink.Line(ls)
			})
		},
	}
	cmd.Flags().IntP("index", "i", 1, "Which numeric column to draw, counting from 1")
	addRenderFlags(cmd)

	return cmd
}

func newPieCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pie FILE",
		Short: "Draw the share of each Grade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			return a.draw(cc, args[0], func(sink render.Sink, s *csvdesk.Session) error {
				p, err := s.PreparePie()
				if err != nil {
					return err
				}

				return sink.Pie(p)
			})
		},
	}
	addRenderFlags(cmd)

	return cmd
}

func newBarCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bar FILE",
		Short: "Draw every numeric column as bars per row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			return a.draw(cc, args[0], func(sink render.Sink, s *csvdesk.Session) error {
				b, err := s.PrepareBar()
				if err != nil {
					return err
				}

				return sink.Bar(b)
			})
		},
	}
	addRenderFlags(cmd)

	return cmd
}

func newRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Draw every chart the dataset supports",
		Long: `Draw the heatmap, both line charts, the pie chart and the bar chart.
Charts that cannot be drawn are reported together; the others are still written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			return a.draw(cc, args[0], func(sink render.Sink, s *csvdesk.Session) error {
				ds, err := s.Dataset()
				if err != nil {
					return err
				}

				return render.RenderAll(sink, s.Adapter(), ds)
			})
		},
	}
	addRenderFlags(cmd)

	return cmd
}

func newInspectCmd(_ *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect BOOK.xlsx",
		Short: "List the charts embedded in a workbook as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			pretty, err := cc.Flags().GetBool("pretty")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			wb, err := parser.ExtractCharts(args[0])
			if err != nil {
				return fmt.Errorf("inspect failed: %w", err)
			}

			var data []byte
			if pretty {
				data, err = json.MarshalIndent(wb, "", "  ")
			} else {
				data, err = json.Marshal(wb)
			}
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}

			_, err = fmt.Fprintln(cc.OutOrStdout(), string(data))

			return err
		},
	}
	cmd.Flags().Bool("pretty", false, "Pretty-print JSON output")

	return cmd
}
