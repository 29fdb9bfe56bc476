// Package menu implements the interactive text menu over a csvdesk session.
package menu

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ukaji3/csvdesk/pkg/csvdesk"
	"github.com/ukaji3/csvdesk/pkg/csvdesk/render"
)

// ErrInvalidRow indicates a row index that is not a whole number.
var ErrInvalidRow = errors.New("row index must be a whole number")

type action int

const (
	actionDisplay action = iota
	actionVisualize
	actionEdit
	actionAddRow
	actionAddColumn
	actionSave
	actionHeatmap
	actionLine1
	actionLine2
	actionPie
	actionRenderAll
	actionExit
)

type item struct {
	action  action
	title   string
	prompts []string
}

var items = []item{
	{action: actionDisplay, title: "Display data"},
	{action: actionVisualize, title: "Visualize numeric columns"},
	{action: actionEdit, title: "Edit cell", prompts: []string{"Row index", "Column", "New value"}},
	{action: actionAddRow, title: "Add row", prompts: []string{"Values, comma separated"}},
	{action: actionAddColumn, title: "Add column", prompts: []string{"Column name", "Default value"}},
	{action: actionSave, title: "Save", prompts: []string{"Path, empty for the source file"}},
	{action: actionHeatmap, title: "Heatmap"},
	{action: actionLine1, title: "Line chart 1"},
	{action: actionLine2, title: "Line chart 2"},
	{action: actionPie, title: "Pie chart"},
	{action: actionRenderAll, title: "Render all charts"},
	{action: actionExit, title: "Exit"},
}

// Model is the menu's bubbletea model. Each menu action calls the session
// and shows either its output, a status line or the error.
type Model struct {
	session *csvdesk.Session
	format  render.Format
	opts    render.Options

	help    help.Model
	input   textinput.Model
	cursor  int
	pending *item
	answers []string

	output string
	status string
	err    error
	width  int
	done   bool
}

// New creates a menu over session. Charts are drawn with the sink for format;
// terminal output is shown inside the menu.
func New(session *csvdesk.Session, format render.Format, opts render.Options) *Model {
	ti := textinput.New()
	ti.Prompt = ""

	return &Model{
		session: session,
		format:  format,
		opts:    opts,
		help:    help.New(),
		input:   ti,
	}
}

// Init implements [tea.Model].
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements [tea.Model].
//
//nolint:ireturn // Third-party.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

		return m, nil

	case tea.KeyMsg:
		if m.pending != nil {
			return m.updatePrompt(msg)
		}

		return m.updateMenu(msg)
	}

	if m.pending != nil {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)

		return m, cmd
	}

	return m, nil
}

//nolint:ireturn // Third-party.
func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyExits(msg):
		m.done = true

		return m, tea.Quit

	case key.Matches(msg, menuKeys.Up):
		m.cursor = (m.cursor + len(items) - 1) % len(items)

	case key.Matches(msg, menuKeys.Down):
		m.cursor = (m.cursor + 1) % len(items)

	case key.Matches(msg, menuKeys.Select):
		return m.choose(items[m.cursor])
	}

	return m, nil
}

//nolint:ireturn // Third-party.
func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := menuKeys.promptKeys()

	switch {
	case key.Matches(msg, keys.Quit):
		m.done = true

		return m, tea.Quit

	case key.Matches(msg, keys.Cancel):
		m.closePrompt()
		m.status = "Cancelled."

		return m, nil

	case key.Matches(msg, keys.Select):
		m.answers = append(m.answers, m.input.Value())
		m.input.Reset()

		if len(m.answers) < len(m.pending.prompts) {
			m.input.Prompt = m.pending.prompts[len(m.answers)] + ": "

			return m, nil
		}

		it, answers := *m.pending, m.answers
		m.closePrompt()
		m.run(it.action, answers)

		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

//nolint:ireturn // Third-party.
func (m *Model) choose(it item) (tea.Model, tea.Cmd) {
	m.output, m.status, m.err = "", "", nil

	if it.action == actionExit {
		m.done = true

		return m, tea.Quit
	}

	if len(it.prompts) == 0 {
		m.run(it.action, nil)

		return m, nil
	}

	m.pending = &it
	m.answers = nil
	m.input.Reset()
	m.input.Prompt = it.prompts[0] + ": "

	return m, m.input.Focus()
}

func (m *Model) closePrompt() {
	m.pending = nil
	m.answers = nil
	m.input.Reset()
	m.input.Blur()
}

// run performs a menu action against the session.
func (m *Model) run(a action, answers []string) {
	var err error

	switch a {
	case actionDisplay:
		err = m.display()

	case actionVisualize:
		err = m.draw(func(s render.Sink) error {
			b, err := m.session.PrepareBar()
			if err != nil {
				return err
			}

			return s.Bar(b)
		})

	case actionEdit:
		row, convErr := strconv.Atoi(strings.TrimSpace(answers[0]))
		if convErr != nil {
			err = fmt.Errorf("%w: %q", ErrInvalidRow, answers[0])

			break
		}

		err = m.session.EditCell(row, answers[1], answers[2])
		if err == nil {
			m.status = fmt.Sprintf("Updated row %d, column %q.", row, answers[1])
		}

	case actionAddRow:
		err = m.session.AddRowText(answers[0])
		if err == nil {
			m.status = "Added row."
		}

	case actionAddColumn:
		err = m.session.AddColumn(answers[0], answers[1])
		if err == nil {
			m.status = fmt.Sprintf("Added column %q.", answers[0])
		}

	case actionSave:
		err = m.session.Save(strings.TrimSpace(answers[0]))
		if err == nil {
			m.status = "Saved " + m.session.Path() + "."
		}

	case actionHeatmap:
		err = m.draw(func(s render.Sink) error {
			h, err := m.session.PrepareHeatmap()
			if err != nil {
				return err
			}

			return s.Heatmap(h)
		})

	case actionLine1, actionLine2:
		n := int(a - actionLine1)
		err = m.draw(func(s render.Sink) error {
			ls, err := m.session.PrepareLineSeries(n)
			if err != nil {
				return err
			}

			return s.Line(ls)
		})

	case actionPie:
		err = m.draw(func(s render.Sink) error {
			p, err := m.session.PreparePie()
			if err != nil {
				return err
			}

			return s.Pie(p)
		})

	case actionRenderAll:
		err = m.draw(func(s render.Sink) error {
			ds, err := m.session.Dataset()
			if err != nil {
				return err
			}

			return render.RenderAll(s, m.session.Adapter(), ds)
		})

	case actionExit:
	}

	m.err = err
}

func (m *Model) display() error {
	ds, err := m.session.Dataset()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	opts := m.opts
	opts.Out = &buf
	if err := render.NewTerminalSink(opts).Table(ds); err != nil {
		return err
	}
	m.output = strings.TrimRight(buf.String(), "\n")

	return nil
}

// draw runs fn against a fresh sink and closes it. Terminal output is kept
// for the view; file sinks report where they wrote.
func (m *Model) draw(fn func(render.Sink) error) error {
	var buf bytes.Buffer
	opts := m.opts
	opts.Out = &buf

	sink, err := render.New(m.format, opts)
	if err != nil {
		return err
	}

	err = fn(sink)
	if cerr := sink.Close(); cerr != nil && err == nil {
		err = cerr
	}

	m.output = strings.TrimRight(buf.String(), "\n")
	if m.output == "" && m.format != render.FormatTerminal {
		dir := opts.Dir
		if dir == "" {
			dir = render.DefaultOptions().Dir
		}
		m.status = "Charts written to " + dir + "."
	}

	return err
}

// View implements [tea.Model].
func (m *Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	title := "csvdesk"
	if path := m.session.Path(); path != "" {
		title += " " + pathStyle.Render(path)
	}
	if m.session.Dirty() {
		title += dirtyMark.String()
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	for i, it := range items {
		if i == m.cursor {
			b.WriteString(selectedStyle.String() + " " + it.title + "\n")

			continue
		}
		b.WriteString(itemStyle.Render(it.title) + "\n")
	}

	keys := menuKeys
	if m.pending != nil {
		keys = menuKeys.promptKeys()
		b.WriteString(promptStyle.Render(m.pending.title+" - "+m.input.View()) + "\n")
	}

	if m.output != "" {
		b.WriteString(outputStyle.Render(m.output) + "\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(getErrorMessage(m.err, m.width) + "\n")
	case m.status != "":
		b.WriteString(statusStyle.Render(checkMark.String()+" "+m.status) + "\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(keys)))

	return b.String()
}
