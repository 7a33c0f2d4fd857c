package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"fixdesk/internal/ui"
)

func press(m *model, k tea.KeyType) {
	m.Update(tea.KeyMsg{Type: k})
}

func typeInto(m *model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func optionNamed(opts []ui.Option, name string) (ui.Option, bool) {
	for _, opt := range opts {
		if opt.Name == name {
			return opt, true
		}
	}
	return ui.Option{}, false
}

func TestCreateDashPrefixedBrand(t *testing.T) {
	m := newModel()
	press(m, tea.KeyTab) // brand
	typeInto(m, "-b1")
	press(m, tea.KeyEnter)

	if _, ok := optionNamed(m.options[1], "Apple"); !ok {
		t.Fatalf("creating %q must not delete b1, options %+v", "-b1", m.options[1])
	}
	created, ok := optionNamed(m.options[1], "-b1")
	if !ok {
		t.Fatalf("expected a created option, options %+v log %v", m.options[1], m.log)
	}
	if got := m.pickers[1].Value(); got != created.ID {
		t.Fatalf("brand value = %q, want %q", got, created.ID)
	}
	if len(m.options[1]) != 4 {
		t.Fatalf("expected 4 brands, got %+v", m.options[1])
	}
}

func TestDeleteAction(t *testing.T) {
	m := newModel()
	if !m.pickers[0].IsDropdownOpen() {
		t.Fatal("the focused device picker should start open")
	}
	press(m, tea.KeyCtrlD) // iPhone 15 is highlighted

	if _, ok := optionNamed(m.options[0], "iPhone 15"); ok {
		t.Fatalf("expected iPhone 15 deleted, options %+v", m.options[0])
	}
	if len(m.options[0]) != 2 || len(m.pickers[0].Options()) != 2 {
		t.Fatalf("picker options not refreshed: %+v", m.pickers[0].Options())
	}
	if m.pickers[0].Value() != "" {
		t.Fatalf("delete must not select, value %q", m.pickers[0].Value())
	}
	if last := m.log[len(m.log)-1]; last != "deleted d1" {
		t.Fatalf("log = %v", m.log)
	}
}

func TestSelectDevice(t *testing.T) {
	m := newModel()
	press(m, tea.KeyDown) // Pixel 8
	press(m, tea.KeyEnter)
	if got := m.pickers[0].Value(); got != "d2" {
		t.Fatalf("device value = %q, want d2", got)
	}
	if len(m.options[0]) != 3 {
		t.Fatalf("select must not change options: %+v", m.options[0])
	}
}
