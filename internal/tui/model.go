// Package tui implements the full-screen history browser: a bubbletea
// program that lists the calculation history and drives undo, redo, and
// clear directly against the calculation engine.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/deccalc/internal/calculator"
	"github.com/agbru/deccalc/internal/cli"
	apperrors "github.com/agbru/deccalc/internal/errors"
	"github.com/agbru/deccalc/internal/history"
)

// Layout constants for the history browser.
const (
	headerHeight  = 1
	footerHeight  = 2
	minBodyHeight = 4
)

// Model is the root bubbletea model for the history browser.
type Model struct {
	calc    *calculator.Calculator
	keymap  KeyMap
	version string

	width  int
	height int

	cursor int
	offset int

	status    string
	statusErr bool
}

// NewModel creates a new history browser model.
func NewModel(calc *calculator.Calculator, version string) Model {
	return Model{
		calc:    calc,
		keymap:  DefaultKeyMap(),
		version: version,
	}
}

// Init returns the initial commands. The browser is purely event-driven,
// so there is nothing to start.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampCursor()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keymap.PageUp):
		m.moveCursor(-m.bodyHeight())

	case key.Matches(msg, m.keymap.PageDown):
		m.moveCursor(m.bodyHeight())

	case key.Matches(msg, m.keymap.Top):
		m.cursor = 0
		m.clampCursor()

	case key.Matches(msg, m.keymap.Bottom):
		m.cursor = len(m.records()) - 1
		m.clampCursor()

	case key.Matches(msg, m.keymap.Undo):
		m.applyHistoryStep(m.calc.Undo, "Undid")

	case key.Matches(msg, m.keymap.Redo):
		m.applyHistoryStep(m.calc.Redo, "Redid")

	case key.Matches(msg, m.keymap.Clear):
		m.calc.ClearHistory()
		m.setStatus("History cleared", false)
		m.clampCursor()
	}

	return m, nil
}

// applyHistoryStep runs an undo or redo step and records the outcome in
// the status line. History no-ops are informational, not errors.
func (m *Model) applyHistoryStep(step func() (history.Record, error), verb string) {
	record, err := step()
	if err != nil {
		m.setStatus(err.Error(), !apperrors.IsHistoryNoOp(err))
		return
	}
	m.setStatus(fmt.Sprintf("%s: %s", verb, cli.FormatRecord(m.calc.Registry(), record)), false)
	m.clampCursor()
}

func (m *Model) setStatus(status string, isErr bool) {
	m.status = status
	m.statusErr = isErr
}

// records returns the active history snapshot.
func (m Model) records() []history.Record {
	return m.calc.History()
}

// bodyHeight returns the number of list rows that fit in the panel.
func (m Model) bodyHeight() int {
	h := m.height - headerHeight - footerHeight - 2 // panel border
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

// clampCursor keeps the cursor inside the record range and scrolls the
// visible window to follow it.
func (m *Model) clampCursor() {
	n := len(m.records())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	body := m.bodyHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+body {
		m.offset = m.cursor - body + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the full browser: header, history panel, status and key
// hints.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.viewHeader()
	body := m.viewBody()
	footer := m.viewFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) viewHeader() string {
	records := m.records()
	title := titleStyle.Render("Calculation History")
	version := versionStyle.Render(m.version)
	count := countStyle.Render(fmt.Sprintf("%d entries", len(records)))
	return headerStyle.Render(fmt.Sprintf("%s %s  %s", title, version, count))
}

func (m Model) viewBody() string {
	records := m.records()
	if len(records) == 0 {
		return panelStyle.Width(m.width - 2).Height(m.bodyHeight()).
			Render(emptyStyle.Render("History is empty. Run calculations in the shell first."))
	}

	body := m.bodyHeight()
	end := m.offset + body
	if end > len(records) {
		end = len(records)
	}

	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		record := records[i]
		line := fmt.Sprintf("%s %s %s",
			indexStyle.Render(fmt.Sprintf("%3d.", i+1)),
			cli.FormatRecord(m.calc.Registry(), record),
			timeStyle.Render(record.Timestamp.Local().Format("15:04:05")))

		style := entryStyle
		if i == m.cursor {
			style = selectedStyle
			line = "> " + line
		} else {
			line = "  " + line
		}
		lines = append(lines, style.Render(line))
	}

	return panelStyle.Width(m.width - 2).Height(body).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewFooter() string {
	status := statusStyle.Render(m.status)
	if m.statusErr {
		status = statusErrStyle.Render(m.status)
	}

	hints := []string{
		footerKeyStyle.Render("↑/↓") + footerDescStyle.Render(" move"),
		footerKeyStyle.Render("u") + footerDescStyle.Render(" undo"),
		footerKeyStyle.Render("r") + footerDescStyle.Render(" redo"),
		footerKeyStyle.Render("x") + footerDescStyle.Render(" clear"),
		footerKeyStyle.Render("q") + footerDescStyle.Render(" quit"),
	}
	hintLine := hints[0]
	for _, h := range hints[1:] {
		hintLine += footerDescStyle.Render("  ") + h
	}

	return lipgloss.JoinVertical(lipgloss.Left, status, hintLine)
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, calc *calculator.Calculator, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(calc, version)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, context.Canceled) {
			return apperrors.ExitErrorCancel
		}
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
