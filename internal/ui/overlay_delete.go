package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fixdesk/internal/catalog"
	"fixdesk/internal/ui/theme"
)

// deleteTarget is what a DeleteOverlay asks about. An empty kind means a
// service.
type deleteTarget struct {
	kind catalog.Kind
	id   string
	name string
	refs int // services still referencing an entity
}

func (t deleteTarget) noun() string {
	if t.kind == "" {
		return "service"
	}
	return string(t.kind)
}

// DeleteOverlay is a confirmation modal for destructive actions.
type DeleteOverlay struct {
	target deleteTarget
}

// deleteConfirmedMsg is sent when deletion is confirmed.
type deleteConfirmedMsg struct {
	target deleteTarget
}

// deleteCancelledMsg is sent when the overlay is dismissed without deletion.
type deleteCancelledMsg struct{}

// NewDeleteOverlay creates a new delete confirmation overlay.
func NewDeleteOverlay(target deleteTarget) *DeleteOverlay {
	return &DeleteOverlay{target: target}
}

// Update implements tea.Model.
func (m *DeleteOverlay) Update(msg tea.Msg) (*DeleteOverlay, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("d", "enter"))):
			target := m.target
			return m, func() tea.Msg { return deleteConfirmedMsg{target: target} }
		case key.Matches(msg, key.NewBinding(key.WithKeys("c", "esc"))):
			return m, func() tea.Msg { return deleteCancelledMsg{} }
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *DeleteOverlay) View() string {
	return styleOverlay().
		BorderForeground(theme.Current().Error()).
		Width(dialogWidth + overlayHPadding*2).
		Render(strings.Join(m.renderLines(), "\n"))
}

// Layer returns a centered layer for the delete overlay.
func (m *DeleteOverlay) Layer(width, height, topMargin, bottomMargin int) Layer {
	return newCenteredOverlayLayer(m.View(), width, height, topMargin, bottomMargin)
}

func (m *DeleteOverlay) renderLines() []string {
	st := surfaceStyles(theme.Current().BackgroundSecondary())
	divider := styleDivider().Render(strings.Repeat("─", dialogWidth))
	body, warning, title := st.Text, st.Price, st.Error
	icon := st.Error.Render("✖")

	lines := []string{
		title.Render("Delete"),
		divider,
		"",
		icon + " " + body.Bold(true).Render(fmt.Sprintf("Delete this %s?", m.target.noun())),
		"",
		"  " + body.Render("● "+truncateText(m.target.name, dialogWidth-4)),
		"",
		warning.Render("This action cannot be undone."),
	}
	if m.target.refs > 0 {
		lines = append(lines, "", warning.Render(fmt.Sprintf("⚠ In use by %d %s.",
			m.target.refs, pluralize(m.target.refs, "service", "services"))))
	}
	lines = append(lines, "", divider, dialogFooter([]footerHint{
		{"d/⏎", "Delete"},
		{"c/esc", "Cancel"},
	}, dialogWidth))
	return lines
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
