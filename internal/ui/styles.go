package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (configurable, soft purple by default): active project marker, paths
// - Muted (gray): hints, counts
// - No colored success/error/warning - use unicode symbols only

const defaultAccent = "#A78BFA"

var (
	accentColor = defaultAccent

	// Accent style for the active marker, paths, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)
)

// ConfigureTheme applies the [ui] accent setting. Empty, "none", "off" and
// "default" disable the accent color.
func ConfigureTheme(accent string) {
	color, ok := normalizeAccentColor(accent)
	if !ok {
		accentColor = ""
		Accent = lipgloss.NewStyle()
		AccentBold = lipgloss.NewStyle().Bold(true)
		return
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor returns the configured accent color, if any.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}

func normalizeAccentColor(value string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "", "none", "off", "default":
		return "", false
	}

	if strings.HasPrefix(v, "#") {
		hex := v[1:]
		if len(hex) == 3 {
			hex = fmt.Sprintf("%c%c%c%c%c%c", hex[0], hex[0], hex[1], hex[1], hex[2], hex[2])
		}
		if len(hex) != 6 {
			return "", false
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return "", false
		}
		return "#" + hex, true
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > 255 {
		return "", false
	}
	return strconv.Itoa(n), true
}
