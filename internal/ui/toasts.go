package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	successToastTTL = 5 * time.Second
	errorToastTTL   = 10 * time.Second
	minToastWidth   = 30
	maxToastWidth   = 60
)

type toastLevel int

const (
	toastSuccess toastLevel = iota
	toastError
)

// toast is a transient notice in the bottom-right corner. A new toast
// replaces the current one.
type toast struct {
	level toastLevel
	title string
	body  string
	start time.Time
	ttl   time.Duration
}

func (t *toast) remaining(now time.Time) time.Duration {
	if t == nil {
		return 0
	}
	left := t.ttl - now.Sub(t.start)
	if left < 0 {
		return 0
	}
	return left
}

func (m *App) showSuccess(title, body string) tea.Cmd {
	return m.showToast(&toast{level: toastSuccess, title: title, body: body, start: time.Now(), ttl: successToastTTL})
}

func (m *App) showError(op string, err error) tea.Cmd {
	body := extractShortError(err.Error(), maxToastWidth)
	if op != "" {
		body = fmt.Sprintf("Couldn't %s: %s", op, body)
	}
	return m.showToast(&toast{level: toastError, title: errorTitle(err), body: body, start: time.Now(), ttl: errorToastTTL})
}

func (m *App) showToast(t *toast) tea.Cmd {
	m.toast = t
	if m.toastTicking {
		return nil
	}
	m.toastTicking = true
	return scheduleToastTick()
}

func (m *App) handleToastTick() tea.Cmd {
	if m.toast.remaining(time.Now()) == 0 {
		m.toast = nil
		m.toastTicking = false
		return nil
	}
	return scheduleToastTick()
}

// toastLayer renders the current toast as a layer if visible.
func (m *App) toastLayer(width, height, mainBodyStart, mainBodyHeight int) Layer {
	left := m.toast.remaining(time.Now())
	if left == 0 {
		return nil
	}
	icon, style := "✔", styleSuccessToast()
	if m.toast.level == toastError {
		icon, style = "⚠", styleErrorToast()
	}

	titleLine := icon + " " + m.toast.title
	countdown := fmt.Sprintf("[%ds]", int(left.Round(time.Second).Seconds()))
	bodyLines := strings.Split(lipgloss.NewStyle().Width(maxToastWidth).Render(m.toast.body), "\n")
	for i := range bodyLines {
		bodyLines[i] = strings.TrimRight(bodyLines[i], " ")
	}

	toastWidth := clampDimension(maxLineWidth(append(bodyLines, titleLine)), minToastWidth, maxToastWidth)
	padding := toastWidth - lipgloss.Width(countdown)
	if padding < 0 {
		padding = 0
	}
	lines := append([]string{titleLine}, bodyLines...)
	lines = append(lines, strings.Repeat(" ", padding)+countdown)

	return newToastLayer(style.Render(strings.Join(lines, "\n")), width, height, mainBodyStart, mainBodyHeight)
}
