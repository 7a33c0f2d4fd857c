package ui

import (
	"github.com/charmbracelet/lipgloss"

	"fixdesk/internal/ui/theme"
)

// Surface is a filled Canvas plus styles that already carry its background,
// so text drawn onto a dialog never punches holes in the fill.
type Surface struct {
	Canvas *Canvas
	Styles SurfaceStyles
}

// SurfaceStyles are foreground variants bound to one background.
type SurfaceStyles struct {
	Text      lipgloss.Style
	TextMuted lipgloss.Style
	Accent    lipgloss.Style
	Price     lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Border    lipgloss.Style
}

// NewPrimarySurface uses the application background.
func NewPrimarySurface(width, height int) Surface {
	return newSurface(width, height, theme.Current().Background())
}

// NewSecondarySurface uses the dialog background.
func NewSecondarySurface(width, height int) Surface {
	return newSurface(width, height, theme.Current().BackgroundSecondary())
}

func newSurface(width, height int, bg lipgloss.TerminalColor) Surface {
	canvas := NewCanvas(width, height)
	canvas.Fill(bg)
	return Surface{Canvas: canvas, Styles: surfaceStyles(bg)}
}

func surfaceStyles(bg lipgloss.TerminalColor) SurfaceStyles {
	t := theme.Current()
	on := func(fg lipgloss.TerminalColor) lipgloss.Style {
		return lipgloss.NewStyle().Background(bg).Foreground(fg)
	}
	return SurfaceStyles{
		Text:      on(t.Text()),
		TextMuted: on(t.TextMuted()),
		Accent:    on(t.Accent()).Bold(true),
		Price:     on(t.Warning()),
		Error:     on(t.Error()).Bold(true),
		Success:   on(t.Success()).Bold(true),
		Border:    on(t.BorderNormal()),
	}
}

// Draw writes block starting at x,y.
func (s Surface) Draw(x, y int, block string) {
	if s.Canvas == nil {
		return
	}
	s.Canvas.DrawStringAt(x, y, block)
}

// Render flushes the surface to an ANSI frame.
func (s Surface) Render() string {
	if s.Canvas == nil {
		return ""
	}
	return s.Canvas.Render()
}
