package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors
var (
	borderColor   = lipgloss.Color("240")
	titleFg       = lipgloss.Color("#ffffff")
	statusFg      = lipgloss.Color("#cccccc")
	hintFg        = lipgloss.Color("#888888")
	errorFg       = lipgloss.Color("#ff6b6b")
	successFg     = lipgloss.Color("#51cf66")
	modalBorderFg = lipgloss.Color("62")
	modalBg       = lipgloss.Color("235")
	modalFg       = lipgloss.Color("252")
)

// Base styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(titleFg).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(statusFg).
			AlignHorizontal(lipgloss.Right)

	hintStyle = lipgloss.NewStyle().
			Foreground(hintFg).
			PaddingLeft(1)

	stationStyle = lipgloss.NewStyle().
			Foreground(titleFg).
			Bold(true).
			PaddingLeft(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorFg).
			Bold(true)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(modalBorderFg).
			Background(modalBg).
			Foreground(modalFg).
			Padding(1, 2)
)

// hex converts a uint32 color to hex string
func hex(col uint32) string {
	return fmt.Sprintf("#%06x", col)
}

// swatch renders a small block in the given colour
func swatch(col uint32) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex(col))).Render("██")
}

// flingStatus returns a styled status indicator for a running fling
func flingStatus(flinging bool) string {
	if flinging {
		return lipgloss.NewStyle().Foreground(successFg).Render("▶ Flinging")
	}
	return lipgloss.NewStyle().Foreground(statusFg).Render("■ Still")
}
