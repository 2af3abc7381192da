// Package ui manages terminal color themes for the calculator's CLI and
// TUI surfaces. Themes are ANSI escape sequences for line-oriented output
// plus lipgloss colors for the full-screen history browser.
package ui
