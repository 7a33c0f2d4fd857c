package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"fixdesk/internal/catalog"
	apperrors "fixdesk/internal/errors"
)

func TestRenameOverlay(t *testing.T) {
	t.Run("EmptyNameIsRejected", func(t *testing.T) {
		o := NewRenameOverlay(catalog.KindBrand, "b1", "LG")
		o, _ = o.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		o, _ = o.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		o, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd != nil {
			t.Fatal("empty name should not confirm")
		}
		if !strings.Contains(ansi.Strip(o.View()), "Name is required") {
			t.Fatal("view should show the validation error")
		}
	})

	t.Run("UnchangedNameCancels", func(t *testing.T) {
		o := NewRenameOverlay(catalog.KindBrand, "b1", "LG")
		_, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if _, ok := cmd().(renameCancelledMsg); !ok {
			t.Fatal("unchanged name should cancel")
		}
	})

	t.Run("ConfirmSendsName", func(t *testing.T) {
		o := NewRenameOverlay(catalog.KindWarranty, "w1", "90 days")
		o, _ = o.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("  ")})
		o, _ = o.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
		_, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEnter})
		msg, ok := cmd().(renameConfirmedMsg)
		if !ok {
			t.Fatalf("expected renameConfirmedMsg, got %T", cmd())
		}
		if msg.kind != catalog.KindWarranty || msg.id != "w1" || msg.name != "90 days  +" {
			t.Fatalf("msg = %+v", msg)
		}
	})

	t.Run("Esc", func(t *testing.T) {
		o := NewRenameOverlay(catalog.KindDevice, "d1", "Pixel")
		_, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if _, ok := cmd().(renameCancelledMsg); !ok {
			t.Fatal("Esc should cancel")
		}
	})
}

func TestDeleteOverlay(t *testing.T) {
	o := NewDeleteOverlay(deleteTarget{id: "s1", name: "Screen replacement"})
	view := ansi.Strip(o.View())
	if !strings.Contains(view, "Delete this service?") || !strings.Contains(view, "Screen replacement") {
		t.Fatalf("view:\n%s", view)
	}
	if strings.Contains(view, "In use") {
		t.Fatal("services carry no usage warning")
	}

	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyEnter},
		{Type: tea.KeyRunes, Runes: []rune("d")},
	} {
		_, cmd := o.Update(k)
		msg, ok := cmd().(deleteConfirmedMsg)
		if !ok || msg.target.id != "s1" {
			t.Fatalf("%s should confirm, got %+v", k, cmd())
		}
	}
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune("c")},
	} {
		_, cmd := o.Update(k)
		if _, ok := cmd().(deleteCancelledMsg); !ok {
			t.Fatalf("%s should cancel", k)
		}
	}
	if _, cmd := o.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}); cmd != nil {
		t.Fatal("other keys should be ignored")
	}
}

func TestErrorTitle(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{apperrors.New(apperrors.CodeInUse, "brand in use", nil), "Still in use"},
		{fmt.Errorf("wrap: %w", apperrors.New(apperrors.CodeDuplicateName, "dup", nil)), "Already exists"},
		{apperrors.New(apperrors.CodeNotFound, "gone", nil), "Not found"},
		{errors.New("plain"), "Error"},
	}
	for _, tt := range tests {
		if got := errorTitle(tt.err); got != tt.want {
			t.Errorf("errorTitle(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestExtractShortError(t *testing.T) {
	if got := extractShortError("first line\nsecond", 80); got != "first line" {
		t.Fatalf("got %q", got)
	}
	if got := extractShortError(strings.Repeat("x", 20), 10); got != "xxxxxxx..." {
		t.Fatalf("got %q", got)
	}
}

func TestToastExpiry(t *testing.T) {
	m := &App{}
	cmd := m.showSuccess("Saved", "Screen replacement")
	if cmd == nil || !m.toastTicking {
		t.Fatal("first toast should start the tick")
	}
	if again := m.showError("save", errors.New("boom")); again != nil {
		t.Fatal("a running tick should not be scheduled twice")
	}
	if m.toast.level != toastError || m.toast.body != "Couldn't save: boom" {
		t.Fatalf("newest toast should replace the old one: %+v", m.toast)
	}

	m.toast.start = time.Now().Add(-errorToastTTL - time.Second)
	if cmd := m.handleToastTick(); cmd != nil {
		t.Fatal("expired toast should stop ticking")
	}
	if m.toast != nil || m.toastTicking {
		t.Fatal("expired toast should clear")
	}
	if layer := m.toastLayer(80, 24, 1, 20); layer != nil {
		t.Fatal("no layer without a toast")
	}
}

func TestServiceFormSubmitFlushesPendingEvents(t *testing.T) {
	entities := map[catalog.Kind][]catalog.Entity{
		catalog.KindBrand: {{ID: "b1", Name: "Samsung"}},
	}
	f := NewServiceForm(catalog.Service{}, entities, PickerConfig{})
	f.name.SetValue("Cleaning")
	f.events = append(f.events,
		pickerEvent{kind: eventChange, slot: slotBrand, value: "Motorola"},
		pickerEvent{kind: eventDelete, slot: slotBrand, value: "b1"},
	)

	var creates, submits []tea.Msg
	var deletes []entityDeleteRequestMsg
	for _, msg := range runCmd(f.submit()) {
		switch msg := msg.(type) {
		case entityCreateRequestMsg:
			creates = append(creates, msg)
		case entityDeleteRequestMsg:
			deletes = append(deletes, msg)
		case serviceSubmitMsg:
			submits = append(submits, msg)
			if msg.draft.brand != "Motorola" {
				t.Errorf("draft brand = %q, want the typed name", msg.draft.brand)
			}
		}
	}
	if len(creates) != 0 {
		t.Fatalf("save resolves typed names itself, got create requests %v", creates)
	}
	if len(deletes) != 1 || deletes[0].id != "b1" || deletes[0].name != "Samsung" {
		t.Fatalf("pending delete request was dropped: %+v", deletes)
	}
	if len(submits) != 1 {
		t.Fatalf("expected one submit, got %d", len(submits))
	}
}
