package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func plainView(cb ComboBox) []string {
	return strings.Split(ansi.Strip(cb.View()), "\n")
}

func TestComboBoxView(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	t.Run("ClosedShowsLabelOnly", func(t *testing.T) {
		var r pickerRecorder
		cb := newPicker(fruitOptions(), "2", &r, false)
		lines := plainView(cb)
		if len(lines) != inputHeight {
			t.Fatalf("expected %d lines, got %d", inputHeight, len(lines))
		}
		if !strings.Contains(lines[1], "Banana") {
			t.Errorf("expected label in input, got %q", lines[1])
		}
		if cb.Height() != inputHeight {
			t.Errorf("expected closed height %d, got %d", inputHeight, cb.Height())
		}
	})

	t.Run("RowsCarryAffordances", func(t *testing.T) {
		var r pickerRecorder
		cb := focusedPicker(fruitOptions(), "", &r, false)
		lines := plainView(cb)
		if len(lines) != cb.Height() {
			t.Fatalf("view lines %d should match Height %d", len(lines), cb.Height())
		}
		row := lines[inputHeight]
		if !strings.HasPrefix(row, "▸ Apple") {
			t.Errorf("expected highlighted Apple row, got %q", row)
		}
		edit, del := cb.actionSpans()
		cells := []rune(row)
		if string(cells[edit.start:edit.end]) != "[e]" {
			t.Errorf("edit affordance not at its hit span: %q", row)
		}
		if string(cells[del.start:del.end]) != "[x]" {
			t.Errorf("delete affordance not at its hit span: %q", row)
		}
		if ansi.StringWidth(row) != cb.Width {
			t.Errorf("row width %d, want %d", ansi.StringWidth(row), cb.Width)
		}
	})

	t.Run("CreateRowFirst", func(t *testing.T) {
		var r pickerRecorder
		cb := focusedPicker(fruitOptions(), "", &r, true)
		cb = typeText(cb, "ap")
		lines := plainView(cb)
		if !strings.Contains(lines[inputHeight], `+ Create "ap"`) {
			t.Errorf("expected create row first, got %q", lines[inputHeight])
		}
		if strings.Contains(lines[inputHeight], "[x]") {
			t.Error("create row must not carry affordances")
		}
		if !strings.Contains(lines[inputHeight+1], "Apple") {
			t.Errorf("expected Apple after create row, got %q", lines[inputHeight+1])
		}
	})

	t.Run("NoMatches", func(t *testing.T) {
		var r pickerRecorder
		cb := focusedPicker(fruitOptions(), "", &r, false)
		cb = typeText(cb, "zzz")
		if !strings.Contains(ansi.Strip(cb.View()), "No matches") {
			t.Error("expected No matches line")
		}
	})

	t.Run("NoOptions", func(t *testing.T) {
		var r pickerRecorder
		cb := focusedPicker(nil, "", &r, false)
		if !strings.Contains(ansi.Strip(cb.View()), "No options") {
			t.Error("expected No options line")
		}
	})

	t.Run("ScrollHints", func(t *testing.T) {
		var r pickerRecorder
		cb := focusedPicker(fruitOptions(), "", &r, false).WithMaxVisible(2)
		view := ansi.Strip(cb.View())
		if !strings.Contains(view, "more below") || strings.Contains(view, "more above") {
			t.Fatalf("expected only the below hint:\n%s", view)
		}
		cb, _ = pressKey(cb, tea.KeyDown)
		cb, _ = pressKey(cb, tea.KeyDown)
		view = ansi.Strip(cb.View())
		if !strings.Contains(view, "more above") || strings.Contains(view, "more below") {
			t.Fatalf("expected only the above hint:\n%s", view)
		}
	})

	t.Run("PressOnHintIgnored", func(t *testing.T) {
		var r pickerRecorder
		cb := focusedPicker(fruitOptions(), "", &r, false).WithMaxVisible(2)
		cb, _ = clickAt(cb, 5, inputHeight+2) // the "more below" line
		if len(r.changes) != 0 || !cb.IsDropdownOpen() {
			t.Fatal("hint press should do nothing")
		}
	})

	t.Run("NoActionsWithoutHandlers", func(t *testing.T) {
		cb := NewComboBox(fruitOptions(), "", ComboBoxHandlers{OnChange: func(string) tea.Cmd { return nil }})
		cb.Focus()
		view := ansi.Strip(cb.View())
		if strings.Contains(view, "[e]") || strings.Contains(view, "[x]") {
			t.Fatalf("affordances should be hidden:\n%s", view)
		}
	})
}
