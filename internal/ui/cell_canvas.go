package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// Canvas is a lightweight helper around cellbuf.Screen that lets us compose
// lipgloss-rendered strings into a cell buffer before turning the frame back
// into a string for Bubble Tea.
type Canvas struct {
	screen  *cellbuf.Screen
	writer  *cellbuf.ScreenWriter
	width   int
	height  int
	offsetX int
	offsetY int
}

func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{
		ShowCursor: false,
		AltScreen:  false,
	})
	return &Canvas{
		screen: screen,
		writer: cellbuf.NewScreenWriter(screen),
		width:  width,
		height: height,
	}
}

// SetOffset records where a layer canvas sits on the base frame.
func (c *Canvas) SetOffset(x, y int) {
	if c == nil {
		return
	}
	c.offsetX = x
	c.offsetY = y
}

// Offset returns the position set by SetOffset.
func (c *Canvas) Offset() (int, int) {
	if c == nil {
		return 0, 0
	}
	return c.offsetX, c.offsetY
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() (int, int) {
	if c == nil {
		return 0, 0
	}
	return c.width, c.height
}

// Fill paints the entire canvas with the provided background color.
func (c *Canvas) Fill(bg lipgloss.TerminalColor) {
	if c == nil {
		return
	}
	fill := lipgloss.NewStyle().
		Background(bg).
		Width(c.width).
		Height(c.height).
		Render("")
	c.DrawStringAt(0, 0, fill)
}

// DrawStringAt writes the provided block starting at x,y. Newlines are
// normalized so each line begins at column 0 relative to x.
func (c *Canvas) DrawStringAt(x, y int, content string) {
	if content == "" || c == nil || c.writer == nil {
		return
	}
	c.drawBlockAt(x, y, splitOverlayLines(content))
}

// DrawCanvas composites another canvas at its offset.
func (c *Canvas) DrawCanvas(layer *Canvas) {
	if c == nil || layer == nil {
		return
	}
	x, y := layer.Offset()
	c.drawBlockAt(x, y, splitOverlayLines(layer.Render()))
}

func (c *Canvas) drawBlockAt(x, y int, lines []string) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	for i, line := range lines {
		row := y + i
		if row >= c.height {
			break
		}
		if line == "" {
			continue
		}
		c.writer.PrintCropAt(x, row, line, "")
	}
}

// Render returns the composed frame as a newline-delimited string suitable for
// Bubble Tea consumption.
func (c *Canvas) Render() string {
	if c == nil || c.screen == nil {
		return ""
	}
	raw := cellbuf.Render(c.screen)
	_ = c.screen.Close()
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

func splitOverlayLines(content string) []string {
	if content == "" {
		return nil
	}
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(normalized, "\n")
}
