package menu_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ukaji3/csvdesk/internal/menu"
	"github.com/ukaji3/csvdesk/pkg/csvdesk"
	"github.com/ukaji3/csvdesk/pkg/csvdesk/render"
)

const gradesCSV = `Student,Course,Midterm,Final,Grade
Al,Math,70,90,A
Al,Sci,65,80,B
Bo,Math,88,75.5,A
`

// Menu positions.
const (
	itemDisplay = iota
	itemVisualize
	itemEdit
	itemAddRow
	itemAddColumn
	itemSave
	itemHeatmap
	itemLine1
	itemLine2
	itemPie
	itemRenderAll
	itemExit
)

var (
	enter  = tea.KeyMsg{Type: tea.KeyEnter}
	escape = tea.KeyMsg{Type: tea.KeyEsc}
	down   = tea.KeyMsg{Type: tea.KeyDown}
	up     = tea.KeyMsg{Type: tea.KeyUp}
)

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newSession(t *testing.T) (*csvdesk.Session, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "grades.csv")
	require.NoError(t, os.WriteFile(path, []byte(gradesCSV), 0o644))

	s := csvdesk.NewSession(csvdesk.DefaultOptions(), nil, nil)
	require.NoError(t, s.Load(path))

	return s, path
}

// send feeds msgs to m in order and returns the command of the last one.
func send(m tea.Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}

	return cmd
}

// pick moves the cursor from the top to item n and selects it.
func pick(m tea.Model, n int) tea.Cmd {
	msgs := make([]tea.Msg, 0, n+1)
	for i := 0; i < n; i++ {
		msgs = append(msgs, down)
	}

	return send(m, append(msgs, enter)...)
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)

	return ok
}

func TestModel_NoData(t *testing.T) {
	t.Parallel()

	m := menu.New(csvdesk.NewSession(csvdesk.DefaultOptions(), nil, nil), render.FormatTerminal, render.Options{})
	pick(m, itemDisplay)

	assert.Contains(t, m.View(), "no data loaded")
}

func TestModel_Display(t *testing.T) {
	t.Parallel()

	s, path := newSession(t)
	m := menu.New(s, render.FormatTerminal, render.Options{})

	view := m.View()
	assert.Contains(t, view, path)
	assert.Contains(t, view, "Display data")

	pick(m, itemDisplay)
	view = m.View()
	for _, want := range []string{"Student", "Final", "Bo", "75.5"} {
		assert.Contains(t, view, want)
	}
}

func TestModel_AddRow(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	m := menu.New(s, render.FormatTerminal, render.Options{})

	pick(m, itemAddRow)
	assert.Contains(t, m.View(), "Values, comma separated")

	send(m, typed("Cy,Art,60,70,D"), enter)

	ds, err := s.Dataset()
	require.NoError(t, err)
	require.Equal(t, 4, ds.NumRows())
	assert.Equal(t, []string{"Cy", "Art", "60", "70", "D"}, ds.Rows[3])
	assert.True(t, s.Dirty())
	assert.Contains(t, m.View(), "Added row.")
}

func TestModel_AddRow_Mismatch(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	m := menu.New(s, render.FormatTerminal, render.Options{})

	pick(m, itemAddRow)
	send(m, typed("Cy,Art"), enter)

	ds, err := s.Dataset()
	require.NoError(t, err)
	assert.Equal(t, 3, ds.NumRows())
	assert.False(t, s.Dirty())
	assert.Contains(t, m.View(), "✗")
}

func TestModel_BlankInputIsRejected(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	m := menu.New(s, render.FormatTerminal, render.Options{})

	pick(m, itemAddRow)
	send(m, enter)
	assert.Contains(t, m.View(), "row has no values")

	send(m, down, enter, enter, typed("x"), enter)
	assert.Contains(t, m.View(), "column name is empty")

	ds, err := s.Dataset()
	require.NoError(t, err)
	assert.Equal(t, 3, ds.NumRows())
	assert.Equal(t, 5, ds.NumColumns())
	assert.False(t, s.Dirty())
}

func TestModel_EditCell(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	m := menu.New(s, render.FormatTerminal, render.Options{})

	pick(m, itemEdit)
	send(m, typed("0"), enter)
	assert.Contains(t, m.View(), "Column")

	send(m, typed("Final"), enter, typed("99"), enter)

	ds, err := s.Dataset()
	require.NoError(t, err)
	assert.Equal(t, "99", ds.Rows[0][3])
	assert.Contains(t, m.View(), `Updated row 0, column "Final".`)
}

func TestModel_EditCell_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		row, column string
		want        string
	}{
		"row is not a number": {row: "first", column: "Final", want: "row index must be a whole number"},
		"row out of range":    {row: "7", column: "Final", want: "out of range"},
		"unknown column":      {row: "0", column: "Score", want: "unknown column"},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, _ := newSession(t)
			m := menu.New(s, render.FormatTerminal, render.Options{})

			pick(m, itemEdit)
			send(m, typed(tc.row), enter, typed(tc.column), enter, typed("1"), enter)

			assert.Contains(t, m.View(), tc.want)
			assert.False(t, s.Dirty())
		})
	}
}

func TestModel_AddColumnAndSave(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	m := menu.New(s, render.FormatTerminal, render.Options{})

	pick(m, itemAddColumn)
	send(m, typed("Term"), enter, typed("fall"), enter)
	assert.True(t, s.Dirty())

	out := filepath.Join(t.TempDir(), "copy.csv")
	send(m, down, enter) // Add column -> Save
	send(m, typed(out), enter)

	assert.False(t, s.Dirty())
	assert.Equal(t, out, s.Path())
	assert.Contains(t, m.View(), "Saved "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Student,Course,Midterm,Final,Grade,Term\n")
	assert.Contains(t, string(data), "Bo,Math,88,75.5,A,fall\n")
}

func TestModel_PromptCancel(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	m := menu.New(s, render.FormatTerminal, render.Options{})

	pick(m, itemAddRow)
	cmd := send(m, typed("quit"), escape)

	assert.False(t, isQuit(cmd), "letters and esc inside a prompt do not quit")
	assert.Contains(t, m.View(), "Cancelled.")

	ds, err := s.Dataset()
	require.NoError(t, err)
	assert.Equal(t, 3, ds.NumRows())
}

func TestModel_Charts(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		item int
		want string
	}{
		"visualize":    {item: itemVisualize, want: "Numeric columns"},
		"heatmap":      {item: itemHeatmap, want: "Final by Student and Course"},
		"line chart 1": {item: itemLine1, want: "Midterm"},
		"line chart 2": {item: itemLine2, want: "Final"},
		"pie chart":    {item: itemPie, want: "(66.7%)"},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, _ := newSession(t)
			m := menu.New(s, render.FormatTerminal, render.Options{})

			pick(m, tc.item)
			view := m.View()
			assert.Contains(t, view, tc.want)
			assert.NotContains(t, view, "✗")
		})
	}
}

func TestModel_RenderAllPNG(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	dir := t.TempDir()
	m := menu.New(s, render.FormatPNG, render.Options{Dir: dir, Width: 300, Height: 200})

	pick(m, itemRenderAll)
	assert.Contains(t, m.View(), "Charts written to "+dir)

	for _, name := range []string{"heatmap.png", "line_1.png", "line_2.png", "pie.png", "bar.png"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)

	assert.True(t, isQuit(send(menu.New(s, render.FormatTerminal, render.Options{}), typed("q"))))
	assert.True(t, isQuit(pick(menu.New(s, render.FormatTerminal, render.Options{}), itemExit)))

	// Up from the first item wraps to Exit.
	m := menu.New(s, render.FormatTerminal, render.Options{})
	assert.True(t, isQuit(send(m, up, enter)))
	assert.Empty(t, m.View())
}

func TestModel_Program(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	tm := teatest.NewTestModel(
		t, menu.New(s, render.FormatTerminal, render.Options{}),
		teatest.WithInitialTermSize(120, 60),
	)

	teatest.WaitFor(
		t, tm.Output(),
		func(bts []byte) bool {
			return bytes.Contains(bts, []byte("Display data"))
		},
	)

	tm.Send(enter)
	teatest.WaitFor(
		t, tm.Output(),
		func(bts []byte) bool {
			return bytes.Contains(bts, []byte("75.5"))
		},
	)

	tm.Send(typed("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}
