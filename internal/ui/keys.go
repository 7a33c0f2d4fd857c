package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application shortcuts. Picker keys live with the
// picker; these apply to the service list and the form.
type KeyMap struct {
	// List
	Up      key.Binding
	Down    key.Binding
	Edit    key.Binding
	New     key.Binding
	Delete  key.Binding
	Copy    key.Binding
	Theme   key.Binding
	Refresh key.Binding
	Quit    key.Binding

	// Form and dialogs
	NextField key.Binding
	PrevField key.Binding
	Save      key.Binding
	Cancel    key.Binding
	Confirm   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "Down"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "Edit"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Copy ID"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Theme"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("⇥", "Next"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("⇧⇥", "Prev"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^S", "Save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "Confirm"),
		),
	}
}

// shortHelp renders a binding as a footer hint.
func shortHelp(b key.Binding) footerHint {
	h := b.Help()
	return footerHint{key: h.Key, desc: h.Desc}
}
