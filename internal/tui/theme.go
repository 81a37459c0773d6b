package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the palette shared by every component. Styles are built from it
// explicitly via NewStyles so tests and alternate hosts can swap palettes.
type Theme struct {
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Bg      lipgloss.Color
	Mantle  lipgloss.Color
	Surface lipgloss.Color
	Accent  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
	Dimmed  lipgloss.Color
}

func DefaultTheme() Theme {
	return Theme{
		Text:    "#cdd6f4",
		Muted:   "#a6adc8",
		Border:  "#585b70",
		Bg:      "#1e1e2e",
		Mantle:  "#181825",
		Surface: "#313244",
		Accent:  "#89b4fa",
		Success: "#a6e3a1",
		Error:   "#f38ba8",
		Warning: "#f9e2af",
		Dimmed:  "#7f849c",
	}
}

// LatteTheme is the light flavor.
func LatteTheme() Theme {
	return Theme{
		Text:    "#4c4f69",
		Muted:   "#6c6f85",
		Border:  "#acb0be",
		Bg:      "#eff1f5",
		Mantle:  "#e6e9ef",
		Surface: "#ccd0da",
		Accent:  "#1e66f5",
		Success: "#40a02b",
		Error:   "#d20f39",
		Warning: "#df8e1d",
		Dimmed:  "#8c8fa1",
	}
}

// ThemeByName resolves a configured flavor, defaulting to the dark one.
func ThemeByName(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "latte", "light":
		return LatteTheme()
	default:
		return DefaultTheme()
	}
}
