package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// SelectMode holds the behavior that differs between a pick-from-list
// picker and one that also accepts new free-text values. The mode is chosen
// once when the ComboBox is built.
type SelectMode interface {
	// Name identifies the mode in logs.
	Name() string

	// resolveDisplay is the input text while the dropdown is closed.
	resolveDisplay(c *ComboBox) string
	// query is the text the filter runs against.
	query(c *ComboBox) string
	// candidate returns the text a "create" row would commit.
	candidate(c *ComboBox) (string, bool)
	// onOpen prepares the text buffer for a new open cycle.
	onOpen(c *ComboBox)
	// commit finalizes the given row and closes the dropdown.
	commit(c *ComboBox, row dropdownRow) tea.Cmd
	// onOutsideInteraction handles blur, outside presses and Esc.
	onOutsideInteraction(c *ComboBox) tea.Cmd
	// resyncWhileOpen reports whether external value/options changes may
	// rewrite the buffer while the dropdown is open but untouched.
	resyncWhileOpen() bool
}

// BasicMode picks an existing option. The value is always "" or an option ID.
type BasicMode struct{}

// CreatableMode also commits typed text that matches no option name.
type CreatableMode struct{}

func (BasicMode) Name() string { return "basic" }

func (BasicMode) resolveDisplay(c *ComboBox) string {
	if opt, ok := findOptionByID(c.options, c.value); ok {
		return opt.Name
	}
	return ""
}

func (BasicMode) query(c *ComboBox) string {
	return c.input.Value()
}

func (BasicMode) candidate(*ComboBox) (string, bool) {
	return "", false
}

// The search buffer is discarded on every open.
func (BasicMode) onOpen(c *ComboBox) {
	c.input.SetValue("")
}

func (BasicMode) commit(c *ComboBox, row dropdownRow) tea.Cmd {
	if row.kind != rowOption {
		return nil
	}
	c.closeDropdown()
	c.input.SetValue(row.option.Name)
	return c.emitChange(row.option.ID, "select")
}

func (m BasicMode) onOutsideInteraction(c *ComboBox) tea.Cmd {
	c.closeDropdown()
	c.input.SetValue(m.resolveDisplay(c))
	return nil
}

func (BasicMode) resyncWhileOpen() bool { return false }

func (CreatableMode) Name() string { return "creatable" }

// A value that is not an option ID is displayed verbatim.
func (CreatableMode) resolveDisplay(c *ComboBox) string {
	if opt, ok := findOptionByID(c.options, c.value); ok {
		return opt.Name
	}
	return c.value
}

// The full list shows until the user edits the buffer.
func (CreatableMode) query(c *ComboBox) string {
	if !c.dirty {
		return ""
	}
	return c.input.Value()
}

func (CreatableMode) candidate(c *ComboBox) (string, bool) {
	text := strings.TrimSpace(c.input.Value())
	if text == "" {
		return "", false
	}
	if _, exists := findOptionByName(c.options, text); exists {
		return "", false
	}
	return text, true
}

func (CreatableMode) onOpen(*ComboBox) {}

func (m CreatableMode) commit(c *ComboBox, row dropdownRow) tea.Cmd {
	switch row.kind {
	case rowOption:
		c.closeDropdown()
		c.input.SetValue(row.option.Name)
		return c.emitChange(row.option.ID, "select")
	case rowCreate:
		text, ok := m.candidate(c)
		if !ok {
			return nil
		}
		c.closeDropdown()
		c.input.SetValue(text)
		return c.emitChange(text, "create")
	}
	return nil
}

// Loss of focus with a create-candidate commits the typed text without
// confirmation. Without one the buffer falls back to the committed value.
// An untouched buffer that still shows the committed free text is not a
// candidate, so focusing through the picker emits nothing.
func (m CreatableMode) onOutsideInteraction(c *ComboBox) tea.Cmd {
	text, ok := m.candidate(c)
	ok = ok && (c.dirty || text != c.value)
	c.closeDropdown()
	if ok {
		c.input.SetValue(text)
		return c.emitChange(text, "blur-commit")
	}
	c.input.SetValue(m.resolveDisplay(c))
	return nil
}

func (CreatableMode) resyncWhileOpen() bool { return true }
