package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderFooter lays out the advertised key bindings for the active surface.
func renderFooter(s Styles, width int, bindings []key.Binding) string {
	space := s.FooterFill.Render(" ")
	sep := s.FooterFill.Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, s.FooterKey.Render(h.Key)+space+s.FooterDesc.Render(h.Desc))
	}
	line := strings.Join(parts, sep)
	if line == "" {
		line = s.FooterDesc.Render("No shortcuts")
	}
	return renderBar(s.Footer, max(1, width), line)
}

func renderStatusBar(s Styles, width int, status string, isErr bool) string {
	msg := strings.TrimSpace(status)
	if msg == "" {
		msg = "Ready"
	}
	if isErr {
		return renderBar(s.StatusErrBar, max(1, width), msg)
	}
	return renderBar(s.StatusBar, max(1, width), msg)
}

func renderBar(style lipgloss.Style, width int, text string) string {
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	lineW := ansi.StringWidth(line)
	if lineW < width {
		line += strings.Repeat(" ", width-lineW)
	}
	return style.
		Width(width).
		MaxWidth(width).
		Render(line)
}

func clipHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
