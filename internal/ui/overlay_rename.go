package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fixdesk/internal/catalog"
)

// RenameOverlay edits the name of a device, brand or warranty.
type RenameOverlay struct {
	keys   KeyMap
	kind   catalog.Kind
	id     string
	before string
	input  textinput.Model
	errMsg string
}

type renameConfirmedMsg struct {
	kind catalog.Kind
	id   string
	name string
}

type renameCancelledMsg struct{}

// NewRenameOverlay opens a rename dialog prefilled with name.
func NewRenameOverlay(kind catalog.Kind, id, name string) *RenameOverlay {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 100
	ti.Width = dialogWidth - 3
	ti.SetValue(name)
	ti.Focus()
	return &RenameOverlay{keys: DefaultKeyMap(), kind: kind, id: id, before: name, input: ti}
}

// Update implements tea.Model.
func (m *RenameOverlay) Update(msg tea.Msg) (*RenameOverlay, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Confirm):
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				m.errMsg = "Name is required"
				return m, nil
			}
			if name == m.before {
				return m, func() tea.Msg { return renameCancelledMsg{} }
			}
			kind, id := m.kind, m.id
			return m, func() tea.Msg { return renameConfirmedMsg{kind: kind, id: id, name: name} }
		case key.Matches(keyMsg, m.keys.Cancel):
			return m, func() tea.Msg { return renameCancelledMsg{} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *RenameOverlay) View() string {
	divider := styleDivider().Render(strings.Repeat("─", dialogWidth))
	lines := []string{
		styleOverlayTitle().Render("Rename " + string(m.kind)),
		divider,
		"",
		m.input.View(),
	}
	if m.errMsg != "" {
		lines = append(lines, styleFormError().Render("✖ "+m.errMsg))
	}
	lines = append(lines, "", divider, dialogFooter([]footerHint{
		shortHelp(m.keys.Confirm),
		shortHelp(m.keys.Cancel),
	}, dialogWidth))
	return styleOverlay().
		Width(dialogWidth + overlayHPadding*2).
		Render(strings.Join(lines, "\n"))
}

// Layer returns a centered layer for the rename overlay.
func (m *RenameOverlay) Layer(width, height, topMargin, bottomMargin int) Layer {
	return newCenteredOverlayLayer(m.View(), width, height, topMargin, bottomMargin)
}
