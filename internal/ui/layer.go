package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Layer represents an overlay/toast that can render itself into a canvas
// matching the current terminal dimensions.
type Layer interface {
	Render() *Canvas
}

// LayerFunc is an adapter to allow ordinary functions to act as layers.
type LayerFunc func() *Canvas

// Render implements Layer for LayerFunc.
func (f LayerFunc) Render() *Canvas {
	return f()
}

// composeLayers draws base into a width x height frame and stacks each
// non-nil layer on top, in order.
func composeLayers(base string, width, height int, layers ...Layer) string {
	canvas := NewCanvas(width, height)
	canvas.DrawStringAt(0, 0, base)
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		canvas.DrawCanvas(layer.Render())
	}
	return canvas.Render()
}

// newPositionedLayer renders content on the secondary surface at x,y.
func newPositionedLayer(content string, x, y int) Layer {
	return LayerFunc(func() *Canvas {
		if strings.TrimSpace(content) == "" {
			return nil
		}
		w, h := blockDimensions(content)
		surface := NewSecondarySurface(w, h)
		surface.Draw(0, 0, content)
		surface.Canvas.SetOffset(x, y)
		return surface.Canvas
	})
}

func newCenteredOverlayLayer(content string, width, height int, topMargin, bottomMargin int) Layer {
	w, h := blockDimensions(content)
	x, y := centeredOffsets(width, height, w, h, topMargin, bottomMargin)
	return newPositionedLayer(content, x, y)
}

func newToastLayer(content string, width, height int, mainBodyStart, mainBodyHeight int) Layer {
	return LayerFunc(func() *Canvas {
		if content == "" {
			return nil
		}
		toastWidth, toastHeight := blockDimensions(content)

		surface := NewPrimarySurface(toastWidth, toastHeight)
		surface.Draw(0, 0, content)

		x := width - toastWidth - 2
		if x < 0 {
			x = 0
		}

		if mainBodyHeight <= 0 {
			mainBodyHeight = height
		}
		y := mainBodyStart + mainBodyHeight - toastHeight - 1
		if y < mainBodyStart {
			y = mainBodyStart
		}
		if y < 0 {
			y = 0
		}

		surface.Canvas.SetOffset(x, y)
		return surface.Canvas
	})
}

func blockDimensions(content string) (int, int) {
	lines := splitOverlayLines(content)
	width := maxLineWidth(lines)
	if width <= 0 {
		width = 1
	}
	height := lipgloss.Height(content)
	if height <= 0 {
		height = 1
	}
	return width, height
}

func centeredOffsets(containerWidth, containerHeight, contentWidth, contentHeight, topMargin, bottomMargin int) (int, int) {
	if topMargin < 0 {
		topMargin = 0
	}
	if bottomMargin < 0 {
		bottomMargin = 0
	}

	usableHeight := containerHeight - topMargin - bottomMargin
	if usableHeight < contentHeight {
		usableHeight = contentHeight
	}

	y := topMargin
	if usableHeight > contentHeight {
		y = topMargin + (usableHeight-contentHeight)/2
	}
	maxY := containerHeight - bottomMargin - contentHeight
	if y > maxY {
		y = maxY
	}
	if y < topMargin {
		y = topMargin
	}
	if y < 0 {
		y = 0
	}

	x := (containerWidth - contentWidth) / 2
	if x < 0 {
		x = 0
	}

	return x, y
}
