// Package pager shows rendered output in a scrollable terminal viewer.
package pager

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Styles holds the chrome styles of the pager.
type Styles struct {
	Title  lipgloss.Style
	Status lipgloss.Style
	Help   lipgloss.Style
}

// DefaultStyles returns the standard pager chrome.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFDF5")).Background(lipgloss.Color("#0077B6")).Bold(true).Padding(0, 1),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC")),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}

// Options configures Run. Zero values use the process terminal.
type Options struct {
	Input  io.Reader
	Output io.Writer
	Styles *Styles
}

// chromeHeight is the number of lines taken by the title and status bars.
const chromeHeight = 2

// Run shows content until the user quits or ctx is done.
func Run(ctx context.Context, title, content string, opts Options) error {
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	progOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	program := tea.NewProgram(newModel(title, content, styles), progOpts...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("pager: %w", err)
	}
	return nil
}

type model struct {
	title    string
	content  string
	styles   Styles
	viewport viewport.Model
	ready    bool
	width    int
}

func newModel(title, content string, styles Styles) model {
	vp := viewport.New(0, 0)
	vp.SetContent(content)
	return model{title: title, content: content, styles: styles, viewport: vp}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		if !m.ready {
			m.viewport.SetContent(m.content)
			m.ready = true
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := m.styles.Title.Render(truncate(m.title, m.width-2))
	return lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), m.statusLine())
}

// statusLine shows the key help on the left and the scroll position on the
// right, truncated to the window width.
func (m model) statusLine() string {
	help := "↑/↓ scroll • g/G top/bottom • q quit"
	pos := fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100)

	gap := m.width - runewidth.StringWidth(help) - runewidth.StringWidth(pos)
	if gap < 1 {
		return m.styles.Status.Render(truncate(pos+" "+help, m.width))
	}
	return m.styles.Help.Render(help) + strings.Repeat(" ", gap) + m.styles.Status.Render(pos)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
