package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestAllThemesRegistered(t *testing.T) {
	expected := []string{"dracula", "nord", "workshop"}
	available := Available()
	if len(available) != len(expected) {
		t.Fatalf("expected %d themes, got %v", len(expected), available)
	}
	for i, name := range expected {
		if available[i] != name {
			t.Errorf("Available()[%d] = %q, expected %q", i, available[i], name)
		}
	}
}

func TestDefaultThemeIsWorkshop(t *testing.T) {
	// Registration order decides the default; runs before any SetTheme call.
	if CurrentName() != DefaultName {
		t.Fatalf("expected default theme %q, got %q", DefaultName, CurrentName())
	}
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(DefaultName) })
	for _, name := range []string{"dracula", "nord", "workshop"} {
		if !SetTheme(name) {
			t.Errorf("SetTheme(%q) returned false, expected true", name)
			continue
		}
		if CurrentName() != name {
			t.Errorf("CurrentName() = %q, expected %q", CurrentName(), name)
		}
	}
}

func TestSetInvalidTheme(t *testing.T) {
	if SetTheme("nonexistent-theme") {
		t.Error("SetTheme(\"nonexistent-theme\") returned true, expected false")
	}
}

func TestCycleThemeWrapsAround(t *testing.T) {
	t.Cleanup(func() { SetTheme(DefaultName) })
	SetTheme("workshop")

	if got := CycleTheme(); got != "dracula" {
		t.Fatalf("expected wrap to dracula, got %q", got)
	}
	if got := CycleTheme(); got != "nord" {
		t.Fatalf("expected nord after dracula, got %q", got)
	}
	if CurrentName() != "nord" {
		t.Fatalf("expected current theme nord, got %q", CurrentName())
	}
}

func TestThemeColorsNotEmpty(t *testing.T) {
	t.Cleanup(func() { SetTheme(DefaultName) })
	for _, name := range Available() {
		SetTheme(name)
		th := Current()

		checkColor := func(colorName string, color lipgloss.AdaptiveColor) {
			if color.Dark == "" || color.Light == "" {
				t.Errorf("theme %q: %s is missing a Dark or Light value", name, colorName)
			}
		}

		checkColor("Primary", th.Primary())
		checkColor("Secondary", th.Secondary())
		checkColor("Accent", th.Accent())
		checkColor("Error", th.Error())
		checkColor("Warning", th.Warning())
		checkColor("Success", th.Success())
		checkColor("Text", th.Text())
		checkColor("TextMuted", th.TextMuted())
		checkColor("Background", th.Background())
		checkColor("BackgroundSecondary", th.BackgroundSecondary())
		checkColor("BorderNormal", th.BorderNormal())
		checkColor("BorderDim", th.BorderDim())
	}
}
