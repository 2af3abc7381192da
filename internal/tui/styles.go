package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/deccalc/internal/ui"
)

// Style variables for the history browser.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle      lipgloss.Style
	headerStyle     lipgloss.Style
	titleStyle      lipgloss.Style
	versionStyle    lipgloss.Style
	countStyle      lipgloss.Style
	entryStyle      lipgloss.Style
	selectedStyle   lipgloss.Style
	indexStyle      lipgloss.Style
	timeStyle       lipgloss.Style
	resultStyle     lipgloss.Style
	statusStyle     lipgloss.Style
	statusErrStyle  lipgloss.Style
	footerKeyStyle  lipgloss.Style
	footerDescStyle lipgloss.Style
	emptyStyle      lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all browser styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.CurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	countStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	entryStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	selectedStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	indexStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	timeStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	resultStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	statusStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	statusErrStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	emptyStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Italic(true)
}
