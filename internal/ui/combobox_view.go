package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"fixdesk/internal/ui/theme"
)

// inputHeight is the rendered height of the bordered input.
const inputHeight = 3

type lineKind int

const (
	lineRow lineKind = iota
	lineHint
	lineEmpty
)

// dropdownLine is one rendered line under the input. View and hit-testing
// both walk the same list so a press always maps to what was drawn.
type dropdownLine struct {
	kind lineKind
	row  int // index into rows() for lineRow
	text string
}

func (c ComboBox) dropdownLines() []dropdownLine {
	rows := c.rows()
	if len(rows) == 0 {
		if len(c.options) == 0 {
			return []dropdownLine{{kind: lineEmpty, text: "No options"}}
		}
		return []dropdownLine{{kind: lineEmpty, text: "No matches"}}
	}

	var lines []dropdownLine
	if c.scrollOffset > 0 {
		lines = append(lines, dropdownLine{kind: lineHint, text: "▲ more above"})
	}
	end := c.scrollOffset + c.MaxVisible
	if end > len(rows) {
		end = len(rows)
	}
	for i := c.scrollOffset; i < end; i++ {
		lines = append(lines, dropdownLine{kind: lineRow, row: i})
	}
	if end < len(rows) {
		lines = append(lines, dropdownLine{kind: lineHint, text: "▼ more below"})
	}
	return lines
}

// Height returns the number of terminal rows the control occupies.
func (c ComboBox) Height() int {
	if c.state != ComboBoxOpen {
		return inputHeight
	}
	return inputHeight + len(c.dropdownLines())
}

// View implements tea.Model.
func (c ComboBox) View() string {
	var b strings.Builder

	// Width includes the border; lipgloss adds the border outside Width.
	inputStyle := styleComboBoxInput().Width(c.Width - 2)
	if c.focused {
		inputStyle = styleComboBoxInputFocused().Width(c.Width - 2)
	}
	b.WriteString(inputStyle.Render(c.input.View()))

	if c.state != ComboBoxOpen {
		return b.String()
	}

	rows := c.rows()
	for _, line := range c.dropdownLines() {
		b.WriteString("\n")
		switch line.kind {
		case lineRow:
			b.WriteString(c.renderRow(rows[line.row], line.row == c.highlightIndex))
		case lineHint:
			b.WriteString(styleComboBoxHint().Render(padCells("  "+line.text, c.Width)))
		case lineEmpty:
			b.WriteString(styleComboBoxNoMatch().Render(padCells("  "+line.text, c.Width)))
		}
	}
	return b.String()
}

func (c ComboBox) renderRow(row dropdownRow, highlighted bool) string {
	marker := "  "
	if highlighted {
		marker = "▸ "
	}

	if row.kind == rowCreate {
		text := ansi.Truncate(`+ Create "`+row.text+`"`, c.Width-2, "…")
		style := styleComboBoxCreate()
		if highlighted {
			style = style.Bold(true)
		}
		return style.Render(padCells(marker+text, c.Width))
	}

	nameWidth := c.Width - 2 - c.actionsWidth()
	if nameWidth < 1 {
		nameWidth = 1
	}
	name := padCells(ansi.Truncate(row.option.Name, nameWidth, "…"), nameWidth)

	style := styleComboBoxOption()
	if highlighted {
		style = styleComboBoxHighlight()
	}
	line := style.Render(marker + name)
	if c.handlers.OnEdit != nil {
		line += " " + styleComboBoxAction().Render("[e]")
	}
	if c.handlers.OnDelete != nil {
		line += " " + styleComboBoxDanger().Render("[x]")
	}
	return line
}

// padCells right-pads s with spaces to width terminal cells.
func padCells(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// ComboBox styles

func styleComboBoxInput() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderDim()).
		Padding(0, 1)
}

func styleComboBoxInputFocused() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Secondary()).
		Padding(0, 1)
}

func styleComboBoxOption() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Text())
}

func styleComboBoxHighlight() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary()).
		Bold(true)
}

func styleComboBoxCreate() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Success())
}

func styleComboBoxAction() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Accent())
}

func styleComboBoxDanger() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Error())
}

func styleComboBoxNoMatch() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().BorderNormal()).
		Italic(true)
}

func styleComboBoxHint() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted())
}
