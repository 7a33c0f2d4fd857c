// Package theme provides the semantic color system for the fixdesk UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the semantic colors used across fixdesk.
// All methods return AdaptiveColor for automatic light/dark terminal support.
type Theme interface {
	// Base colors
	Primary() lipgloss.AdaptiveColor   // Headers, focused borders
	Secondary() lipgloss.AdaptiveColor // Highlighted picker rows, labels
	Accent() lipgloss.AdaptiveColor    // IDs, edit affordances

	// Status colors
	Error() lipgloss.AdaptiveColor   // Errors, delete affordances
	Warning() lipgloss.AdaptiveColor // Prices, warnings
	Success() lipgloss.AdaptiveColor // Create rows, success toasts

	// Text colors
	Text() lipgloss.AdaptiveColor
	TextMuted() lipgloss.AdaptiveColor

	// Background colors
	Background() lipgloss.AdaptiveColor
	BackgroundSecondary() lipgloss.AdaptiveColor // Overlays, dialogs

	// Border colors
	BorderNormal() lipgloss.AdaptiveColor
	BorderDim() lipgloss.AdaptiveColor
}

// Palette is a table of light/dark pairs. A Palette value implements Theme.
type Palette struct {
	PrimaryColor             lipgloss.AdaptiveColor
	SecondaryColor           lipgloss.AdaptiveColor
	AccentColor              lipgloss.AdaptiveColor
	ErrorColor               lipgloss.AdaptiveColor
	WarningColor             lipgloss.AdaptiveColor
	SuccessColor             lipgloss.AdaptiveColor
	TextColor                lipgloss.AdaptiveColor
	TextMutedColor           lipgloss.AdaptiveColor
	BackgroundColor          lipgloss.AdaptiveColor
	BackgroundSecondaryColor lipgloss.AdaptiveColor
	BorderNormalColor        lipgloss.AdaptiveColor
	BorderDimColor           lipgloss.AdaptiveColor
}

func (p Palette) Primary() lipgloss.AdaptiveColor   { return p.PrimaryColor }
func (p Palette) Secondary() lipgloss.AdaptiveColor { return p.SecondaryColor }
func (p Palette) Accent() lipgloss.AdaptiveColor    { return p.AccentColor }
func (p Palette) Error() lipgloss.AdaptiveColor     { return p.ErrorColor }
func (p Palette) Warning() lipgloss.AdaptiveColor   { return p.WarningColor }
func (p Palette) Success() lipgloss.AdaptiveColor   { return p.SuccessColor }
func (p Palette) Text() lipgloss.AdaptiveColor      { return p.TextColor }
func (p Palette) TextMuted() lipgloss.AdaptiveColor { return p.TextMutedColor }

func (p Palette) Background() lipgloss.AdaptiveColor { return p.BackgroundColor }

func (p Palette) BackgroundSecondary() lipgloss.AdaptiveColor {
	return p.BackgroundSecondaryColor
}

func (p Palette) BorderNormal() lipgloss.AdaptiveColor { return p.BorderNormalColor }
func (p Palette) BorderDim() lipgloss.AdaptiveColor    { return p.BorderDimColor }

func pair(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}
