package menu

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-multierror"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Margin(1, 2, 0)
	pathStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dirtyMark     = lipgloss.NewStyle().Foreground(lipgloss.Color("211")).SetString("*")
	itemStyle     = lipgloss.NewStyle().PaddingLeft(4)
	selectedStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("211")).SetString(">")
	promptStyle   = lipgloss.NewStyle().Margin(1, 2, 0)
	outputStyle   = lipgloss.NewStyle().Margin(1, 2, 0)
	statusStyle   = lipgloss.NewStyle().Margin(1, 2, 0)
	errStyle      = lipgloss.NewStyle().Margin(1, 2, 0)
	helpStyle     = lipgloss.NewStyle().Margin(1, 2)
	checkMark     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).SetString("✓")
	errorMark     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).SetString("✗")
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

var menuKeys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"), key.WithDisabled()),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Cancel, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// promptKeys returns the bindings active while a prompt is open. Letters
// go to the input, so only esc and ctrl+c leave it.
func (k keyMap) promptKeys() keyMap {
	k.Up.SetEnabled(false)
	k.Down.SetEnabled(false)
	k.Select = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm"))
	k.Cancel.SetEnabled(true)
	k.Quit = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	return k
}

func keyExits(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return true
	}

	return false
}

func getErrorMessage(err error, width int) string {
	errs := []error{err}

	var merr *multierror.Error
	if errors.As(err, &merr) {
		errs = merr.Errors
	}

	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = errorMark.String() + " " + strings.Trim(e.Error(), "\r\n")
	}

	return errStyle.Width(max(0, width-2)).Render(strings.Join(lines, "\n"))
}
