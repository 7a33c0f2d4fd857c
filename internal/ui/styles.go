package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"fixdesk/internal/ui/theme"
)

// Styles are functions so a theme switch applies on the next frame.

func styleAppHeader() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Background()).
		Background(theme.Current().Primary()).
		Bold(true).
		Padding(0, 1)
}

func stylePane() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.Current().BorderDim())
}

func styleSelectedRow() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Background()).
		Background(theme.Current().Secondary()).
		Bold(true)
}

func styleNormalText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text())
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

func styleID() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent()).Bold(true)
}

func stylePrice() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Warning())
}

func styleFieldLabel() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

func styleFieldLabelFocused() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Secondary()).Bold(true)
}

// styleOverlay is the dialog frame. Width() sets the content width plus
// padding; the border adds two cells outside it.
func styleOverlay() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Primary()).
		Background(theme.Current().BackgroundSecondary()).
		Padding(1, 2)
}

func styleOverlayTitle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Primary()).
		Background(theme.Current().BackgroundSecondary()).
		Bold(true)
}

func styleDivider() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().BorderDim()).
		Background(theme.Current().BackgroundSecondary())
}

func styleKeyPill() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Background()).
		Background(theme.Current().TextMuted())
}

func styleKeyDesc() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

func styleErrorToast() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Error()).
		Foreground(theme.Current().Error()).
		Padding(0, 1)
}

func styleSuccessToast() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Success()).
		Foreground(theme.Current().Success()).
		Padding(0, 1)
}

func styleFormError() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Error()).
		Background(theme.Current().BackgroundSecondary())
}

// buildMarkdownRenderer returns a glamour renderer for service descriptions,
// falling back to plain word wrapping.
func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	if style == "" || style == "rich" {
		style = "dark"
	}
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
