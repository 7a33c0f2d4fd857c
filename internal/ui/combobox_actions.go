package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"fixdesk/internal/debug"
)

// actionWidth is the cell width of one row affordance, e.g. " [e]".
const actionWidth = 4

// hitTarget is what a pointer press on a dropdown row landed on.
type hitTarget int

const (
	targetNone hitTarget = iota
	targetRow
	targetEdit
	targetDelete
)

type span struct {
	start, end int
}

func (s span) contains(x int) bool {
	return x >= s.start && x < s.end
}

func (c ComboBox) hasActions() bool {
	return c.handlers.OnEdit != nil || c.handlers.OnDelete != nil
}

func (c ComboBox) actionsWidth() int {
	n := 0
	if c.handlers.OnEdit != nil {
		n++
	}
	if c.handlers.OnDelete != nil {
		n++
	}
	return n * actionWidth
}

// actionSpans returns the columns of the edit and delete affordances relative
// to the control's left edge. Absent affordances get an empty span.
func (c ComboBox) actionSpans() (edit, del span) {
	x := c.Width - c.actionsWidth()
	if c.handlers.OnEdit != nil {
		edit = span{start: x + 1, end: x + actionWidth}
		x += actionWidth
	}
	if c.handlers.OnDelete != nil {
		del = span{start: x + 1, end: x + actionWidth}
	}
	return edit, del
}

// hitTest resolves a press at column x on row before any handler runs, so
// presses on an affordance never reach the selection path.
func (c ComboBox) hitTest(row dropdownRow, x int) hitTarget {
	if x < 0 || x >= c.Width {
		return targetNone
	}
	if row.kind == rowOption {
		edit, del := c.actionSpans()
		if edit.contains(x) {
			return targetEdit
		}
		if del.contains(x) {
			return targetDelete
		}
	}
	return targetRow
}

// dispatch runs exactly one outcome for a resolved target.
func (c *ComboBox) dispatch(row dropdownRow, target hitTarget) tea.Cmd {
	switch target {
	case targetRow:
		return c.mode.commit(c, row)
	case targetEdit:
		return c.editOption(row.option)
	case targetDelete:
		return c.deleteOption(row.option)
	}
	return nil
}

// editOption hands the option to the owner and closes without a change.
func (c *ComboBox) editOption(opt Option) tea.Cmd {
	if c.handlers.OnEdit == nil {
		return nil
	}
	c.abandonEdit()
	debug.Debug("picker edit action", zap.String("picker", c.id), zap.String("option", opt.ID))
	return c.handlers.OnEdit(opt.ID, opt.Name)
}

// deleteOption hands the option to the owner and closes without a change.
func (c *ComboBox) deleteOption(opt Option) tea.Cmd {
	if c.handlers.OnDelete == nil {
		return nil
	}
	c.abandonEdit()
	debug.Debug("picker delete action", zap.String("picker", c.id), zap.String("option", opt.ID))
	return c.handlers.OnDelete(opt.ID)
}

// highlightedOption returns the option row under the keyboard highlight.
func (c ComboBox) highlightedOption() (Option, bool) {
	rows := c.rows()
	if c.highlightIndex < 0 || c.highlightIndex >= len(rows) {
		return Option{}, false
	}
	row := rows[c.highlightIndex]
	if row.kind != rowOption {
		return Option{}, false
	}
	return row.option, true
}
