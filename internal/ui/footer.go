package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// footerHint is a key hint for a footer bar.
type footerHint struct {
	key  string
	desc string
}

func (m *App) listFooterHints() []footerHint {
	return []footerHint{
		shortHelp(m.keys.Up),
		shortHelp(m.keys.Down),
		shortHelp(m.keys.Edit),
		shortHelp(m.keys.New),
		shortHelp(m.keys.Delete),
		shortHelp(m.keys.Copy),
		shortHelp(m.keys.Theme),
		shortHelp(m.keys.Refresh),
		shortHelp(m.keys.Quit),
	}
}

// renderFooter renders the list footer with the store location on the right.
func (m *App) renderFooter() string {
	right := styleMuted().Render(m.storeLabel)
	available := m.width - lipgloss.Width(right) - 2
	left := renderHints(trimHintsToFit(m.listFooterHints(), available))
	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 2 {
		spacing = 2
	}
	return left + strings.Repeat(" ", spacing) + right
}

// keyPill renders a single key hint as a pill with description.
func keyPill(key, desc string) string {
	return styleKeyPill().Render(" "+key+" ") + " " + styleKeyDesc().Render(desc)
}

func renderHints(hints []footerHint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	return strings.Join(parts, "  ")
}

// trimHintsToFit drops hints from the end until the bar fits.
func trimHintsToFit(hints []footerHint, availableWidth int) []footerHint {
	for len(hints) > 0 && lipgloss.Width(renderHints(hints)) > availableWidth {
		hints = hints[:len(hints)-1]
	}
	return hints
}
