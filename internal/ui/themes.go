package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for line-oriented CLI output. Each field
// contains an ANSI escape code for the corresponding color category.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for important elements.
	Primary string
	// Secondary is used for less prominent elements.
	Secondary string
	// Success indicates completed calculations.
	Success string
	// Warning is used for informational no-ops (nothing to undo).
	Warning string
	// Error indicates rejected operations and failures.
	Error string
	// Info is used for informational messages.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;141m", // Purple
		Bold:      "\033[1m",
		Reset:     "\033[0m",
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",  // Dark blue
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;54m",  // Dark purple
		Bold:      "\033[1m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output. Used when NO_COLOR is set or
	// the no-color flag is provided.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme defines lipgloss-compatible colors for the history browser.
type TUITheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the default history browser palette.
	DarkTUITheme = TUITheme{
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#3B78FF"),
		Accent:  lipgloss.Color("#61AFEF"),
		Success: lipgloss.Color("#9ECE6A"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
	}

	// LightTUITheme darkens the palette for light terminal backgrounds.
	LightTUITheme = TUITheme{
		Text:    lipgloss.Color("#1A1A1A"),
		Border:  lipgloss.Color("#005FD7"),
		Accent:  lipgloss.Color("#0050A0"),
		Success: lipgloss.Color("#007000"),
		Error:   lipgloss.Color("#AF0000"),
		Dim:     lipgloss.Color("#808080"),
	}

	// NoColorTUITheme renders with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}
)

// CurrentTheme returns the active theme.
func CurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// CurrentTUITheme returns the TUI palette matching the active theme.
func CurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	switch currentTheme.Name {
	case "none":
		return NoColorTUITheme
	case "light":
		return LightTUITheme
	default:
		return DarkTUITheme
	}
}

// SetTheme changes the active theme by name. Valid names are "dark",
// "light", and "none"; unknown names default to dark.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme initializes the theme from the configured name and the noColor
// flag. It respects the NO_COLOR environment variable
// (https://no-color.org/) for accessibility.
func InitTheme(name string, noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" {
		SetTheme("none")
		return
	}
	SetTheme(name)
}

// Convenience accessors for the active theme's escape codes.

// Primary returns the accent color code.
func Primary() string { return CurrentTheme().Primary }

// Secondary returns the muted color code.
func Secondary() string { return CurrentTheme().Secondary }

// Success returns the success color code.
func Success() string { return CurrentTheme().Success }

// Warn returns the warning color code.
func Warn() string { return CurrentTheme().Warning }

// Error returns the error color code.
func Error() string { return CurrentTheme().Error }

// Info returns the info color code.
func Info() string { return CurrentTheme().Info }

// Bold returns the bold escape code.
func Bold() string { return CurrentTheme().Bold }

// Reset returns the reset escape code.
func Reset() string { return CurrentTheme().Reset }
