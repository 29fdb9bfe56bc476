package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ukaji3/csvdesk/pkg/csvdesk"
	"github.com/ukaji3/csvdesk/pkg/csvdesk/render"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Display the dataset as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			s, err := a.session(args[0])
			if err != nil {
				return err
			}
			ds, err := s.Dataset()
			if err != nil {
				return err
			}

			return render.NewTerminalSink(render.Options{Out: cc.OutOrStdout()}).Table(ds)
		},
	}
}

func newColumnsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "columns FILE",
		Short: "List column names and whether they are numeric",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			s, err := a.session(args[0])
			if err != nil {
				return err
			}
			cols, err := s.Columns()
			if err != nil {
				return err
			}

			for _, c := range cols {
				fmt.Fprintf(cc.OutOrStdout(), "%s\t%s\n", c.Name, c.Kind())
			}

			return nil
		},
	}
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe FILE",
		Short: "Summarize every numeric column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			s, err := a.session(args[0])
			if err != nil {
				return err
			}
			summaries, err := s.Describe()
			if err != nil {
				return err
			}

			num := func(v float64) string {
				return strconv.FormatFloat(v, 'f', 2, 64)
			}
			rows := make([][]string, len(summaries))
			for i, cs := range summaries {
				rows[i] = []string{
					cs.Name, strconv.Itoa(cs.Count),
					num(cs.Mean), num(cs.Std), num(cs.Min),
					num(cs.Q1), num(cs.Median), num(cs.Q3), num(cs.Max),
				}
			}

			r := lipgloss.NewRenderer(cc.OutOrStdout())
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				Headers("column", "count", "mean", "std", "min", "25%", "50%", "75%", "max").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					st := r.NewStyle().Padding(0, 1)
					switch {
					case row == table.HeaderRow:
						return st.Bold(true)
					case col > 0:
						return st.Align(lipgloss.Right)
					}

					return st
				})

			_, err = fmt.Fprintln(cc.OutOrStdout(), t.String())

			return err
		},
	}
}

func newAddRowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-row FILE VALUES",
		Short: "Append a row given as comma-separated values",
		Example: `  # Append one student record
  csvdesk add-row grades.csv "Cy,Art,60,70,D"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cc *cobra.Command, args []string) error {
			return a.mutate(cc, args[0], func(s *csvdesk.Session) error {
				return s.AddRowText(args[1])
			})
		},
	}
	addOutputFlag(cmd)

	return cmd
}

func newAddColumnCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-column FILE NAME",
		Short: "Append a column filled with a default value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cc *cobra.Command, args []string) error {
			def, err := cc.Flags().GetString("default")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			return a.mutate(cc, args[0], func(s *csvdesk.Session) error {
				return s.AddColumn(args[1], def)
			})
		},
	}
	cmd.Flags().String("default", "", "Value for every existing row")
	addOutputFlag(cmd)

	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit FILE ROW COLUMN VALUE",
		Short: "Set one cell by zero-based row index and column name",
		Args:  cobra.ExactArgs(4),
		RunE: func(cc *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: row index %q: %w", ErrInvalidArgument, args[1], err)
			}

			return a.mutate(cc, args[0], func(s *csvdesk.Session) error {
				return s.EditCell(row, args[2], args[3])
			})
		},
	}
	addOutputFlag(cmd)

	return cmd
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Write the result here instead of back to FILE")
}

// mutate loads path, applies fn and saves the result to --output or back
// to path. Nothing is written when fn fails.
func (a *app) mutate(cc *cobra.Command, path string, fn func(*csvdesk.Session) error) error {
	output, err := cc.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	s, err := a.session(path)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}

	return s.Save(output)
}
