// Combobox-demo exercises the picker outside the catalog editor: a basic
// device picker and a creatable brand picker sharing one pointer bus.
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"fixdesk/internal/ui"
)

const pickerWidth = 40

type changeKind int

const (
	changeValue changeKind = iota
	changeDelete
)

// change is a handler call waiting to be applied to the pickers.
type change struct {
	kind   changeKind
	picker int
	value  string
}

type model struct {
	pickers [2]ui.ComboBox
	options [2][]ui.Option
	bus     *ui.PointerBus
	focus   int
	pending []change
	log     []string
}

func newModel() *model {
	m := &model{
		bus: ui.NewPointerBus(),
		options: [2][]ui.Option{
			{{ID: "d1", Name: "iPhone 15"}, {ID: "d2", Name: "Pixel 8"}, {ID: "d3", Name: "Galaxy S24"}},
			{{ID: "b1", Name: "Apple"}, {ID: "b2", Name: "Samsung"}, {ID: "b3", Name: "LG"}},
		},
	}
	placeholders := [2]string{"Select a device", "Select or type a brand"}
	for i := range m.pickers {
		m.pickers[i] = ui.NewComboBox(m.options[i], "", m.handlers(i)).
			WithPlaceholder(placeholders[i]).
			WithCreatable(i == 1).
			WithWidth(pickerWidth).
			WithPointerBus(m.bus)
	}
	m.pickers[0].Focus()
	m.layout()
	return m
}

func (m *model) handlers(i int) ui.ComboBoxHandlers {
	return ui.ComboBoxHandlers{
		OnChange: func(value string) tea.Cmd {
			m.pending = append(m.pending, change{kind: changeValue, picker: i, value: value})
			return nil
		},
		OnEdit: func(id, name string) tea.Cmd {
			m.log = append(m.log, fmt.Sprintf("edit %s (%s)", name, id))
			return nil
		},
		OnDelete: func(id string) tea.Cmd {
			m.pending = append(m.pending, change{kind: changeDelete, picker: i, value: id})
			return nil
		},
	}
}

// apply pushes handler results back into the pickers, the way an owner
// with a real store would.
func (m *model) apply() {
	for _, c := range m.pending {
		switch {
		case c.kind == changeDelete:
			id := c.value
			kept := m.options[c.picker][:0:0]
			for _, opt := range m.options[c.picker] {
				if opt.ID != id {
					kept = append(kept, opt)
				}
			}
			m.options[c.picker] = kept
			m.pickers[c.picker].SetOptions(kept)
			if m.pickers[c.picker].Value() == id {
				m.pickers[c.picker].SetValue("")
			}
			m.log = append(m.log, "deleted "+id)
		case c.value != "" && !hasID(m.options[c.picker], c.value):
			opt := ui.Option{ID: uuid.NewString()[:8], Name: c.value}
			m.options[c.picker] = append(m.options[c.picker], opt)
			m.pickers[c.picker].SetOptions(m.options[c.picker])
			m.pickers[c.picker].SetValue(opt.ID)
			m.log = append(m.log, fmt.Sprintf("created %q as %s", opt.Name, opt.ID))
		default:
			m.pickers[c.picker].SetValue(c.value)
			m.log = append(m.log, fmt.Sprintf("picker %d = %q", c.picker, c.value))
		}
	}
	m.pending = nil
	if len(m.log) > 5 {
		m.log = m.log[len(m.log)-5:]
	}
}

func hasID(opts []ui.Option, id string) bool {
	for _, opt := range opts {
		if opt.ID == id {
			return true
		}
	}
	return false
}

// layout stacks the pickers under their labels, two header rows down.
func (m *model) layout() {
	y := 2
	for i := range m.pickers {
		y++ // label
		m.pickers[i].SetOrigin(0, y)
		y += m.pickers[i].Height() + 1
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.layout()
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if !m.pickers[m.focus].IsDropdownOpen() {
				return m, tea.Quit
			}
		case "tab":
			cmds = append(cmds, m.pickers[m.focus].Blur())
			m.focus = (m.focus + 1) % len(m.pickers)
			cmds = append(cmds, m.pickers[m.focus].Focus())
			m.apply()
			return m, tea.Batch(cmds...)
		}
		var cmd tea.Cmd
		m.pickers[m.focus], cmd = m.pickers[m.focus].Update(msg)
		cmds = append(cmds, cmd)
	case tea.MouseMsg:
		for i := range m.pickers {
			if !m.bus.Listening(m.pickers[i].ID()) && !m.pickers[i].Contains(msg.X, msg.Y) {
				continue
			}
			wasFocused := m.pickers[i].Focused()
			var cmd tea.Cmd
			m.pickers[i], cmd = m.pickers[i].Update(msg)
			cmds = append(cmds, cmd)
			if !wasFocused && m.pickers[i].Focused() && i != m.focus {
				cmds = append(cmds, m.pickers[m.focus].Blur())
				m.focus = i
			}
		}
	default:
		var cmd tea.Cmd
		m.pickers[m.focus], cmd = m.pickers[m.focus].Update(msg)
		cmds = append(cmds, cmd)
	}
	m.apply()
	return m, tea.Batch(cmds...)
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("109"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ComboBox Demo"))
	b.WriteString("\n\n")
	labels := [2]string{"Device", "Brand"}
	for i := range m.pickers {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(m.pickers[i].View())
		b.WriteString("\n\n")
	}
	for _, line := range m.log {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↓ open • type to filter • ⏎ select • ^E/^D edit/delete • ⇥ next • q quit"))
	return b.String()
}

func main() {
	p := tea.NewProgram(newModel(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
