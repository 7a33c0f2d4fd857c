package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"fixdesk/internal/catalog"
	"fixdesk/internal/config"
	"fixdesk/internal/debug"
	"fixdesk/internal/ui/theme"
)

// Update implements tea.Model.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil
	case toastTickMsg:
		return m, m.handleToastTick()
	case catalogLoadedMsg:
		return m, m.applyCatalog(msg)

	case entityCreateRequestMsg:
		return m, createEntityCmd(m.store, msg.kind, msg.name, msg.slot)
	case entityCreatedMsg:
		m.entities[msg.kind] = msg.entities
		if m.form != nil {
			m.form.ResolveCreated(msg)
		}
		if msg.created {
			return m, m.showSuccess(msg.kind.Label()+" added", msg.entity.Name)
		}
		return m, nil
	case entityEditRequestMsg:
		m.renameOverlay = NewRenameOverlay(msg.kind, msg.id, msg.name)
		return m, textinput.Blink
	case entityDeleteRequestMsg:
		m.deleteOverlay = NewDeleteOverlay(deleteTarget{
			kind: msg.kind,
			id:   msg.id,
			name: msg.name,
			refs: catalog.CountReferences(m.services, msg.kind, msg.id),
		})
		return m, nil
	case entitiesChangedMsg:
		m.entities[msg.kind] = msg.entities
		if m.form != nil {
			m.form.SetEntities(msg.kind, msg.entities)
			if msg.removedID != "" {
				m.form.EntityRemoved(msg.kind, msg.removedID)
			}
		}
		m.refreshDetail()
		return m, m.showSuccess("Done", msg.notice)

	case renameConfirmedMsg:
		m.renameOverlay = nil
		return m, renameEntityCmd(m.store, msg.kind, msg.id, msg.name)
	case renameCancelledMsg:
		m.renameOverlay = nil
		return m, nil
	case deleteConfirmedMsg:
		m.deleteOverlay = nil
		if msg.target.kind == "" {
			return m, deleteServiceCmd(m.store, msg.target.id, msg.target.name)
		}
		return m, deleteEntityCmd(m.store, msg.target.kind, msg.target.id, msg.target.name)
	case deleteCancelledMsg:
		m.deleteOverlay = nil
		return m, nil

	case serviceSubmitMsg:
		return m, saveServiceCmd(m.store, msg.draft)
	case serviceFormCancelledMsg:
		m.closeForm()
		return m, nil
	case serviceSavedMsg:
		m.closeForm()
		m.entities = msg.entities
		m.services = msg.services
		m.selectServiceID(msg.service.ID)
		m.refreshDetail()
		debug.Info("service saved", zap.String("id", msg.service.ID), zap.Int("items", len(msg.service.Items)))
		return m, m.showSuccess("Service saved", msg.service.Name)
	case serviceDeletedMsg:
		m.services = msg.services
		m.clampCursor()
		m.refreshDetail()
		return m, m.showSuccess("Service deleted", msg.name)
	case storeErrorMsg:
		debug.Warn("store command failed", zap.String("op", msg.op), zap.Error(msg.err))
		return m, m.showError(msg.op, msg.err)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		if m.dialogOpen() {
			return m, nil
		}
		if m.form != nil {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, m.forward(msg)
}

// forward passes cursor blinks and other internal messages to whatever has
// focus.
func (m *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.renameOverlay != nil:
		m.renameOverlay, cmd = m.renameOverlay.Update(msg)
	case m.form != nil:
		m.form, cmd = m.form.Update(msg)
	}
	return cmd
}

func (m *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.deleteOverlay != nil:
		m.deleteOverlay, cmd = m.deleteOverlay.Update(msg)
		return cmd
	case m.renameOverlay != nil:
		m.renameOverlay, cmd = m.renameOverlay.Update(msg)
		return cmd
	case m.form != nil:
		m.form, cmd = m.form.Update(msg)
		return cmd
	}
	return m.handleListKey(msg)
}

// handleListKey processes keyboard input when no overlay has focus.
func (m *App) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.New):
		return m.openForm(catalog.Service{})
	case key.Matches(msg, m.keys.Edit):
		if svc, ok := m.selectedService(); ok {
			return m.openForm(svc)
		}
	case key.Matches(msg, m.keys.Delete):
		if svc, ok := m.selectedService(); ok {
			m.deleteOverlay = NewDeleteOverlay(deleteTarget{id: svc.ID, name: svc.Name})
		}
	case key.Matches(msg, m.keys.Copy):
		return m.handleCopyKey()
	case key.Matches(msg, m.keys.Theme):
		return m.handleThemeKey()
	case key.Matches(msg, m.keys.Refresh):
		return reloadCatalogCmd(m.store)
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

func (m *App) moveCursor(delta int) {
	if len(m.services) == 0 {
		return
	}
	m.cursor += delta
	m.clampCursor()
	m.refreshDetail()
}

// handleCopyKey copies the selected service ID to the clipboard.
func (m *App) handleCopyKey() tea.Cmd {
	svc, ok := m.selectedService()
	if !ok {
		return nil
	}
	if err := copyToClipboard(svc.ID); err != nil {
		return m.showError("copy to clipboard", err)
	}
	return m.showSuccess("Copied", fmt.Sprintf("Copied '%s' to clipboard.", svc.ID))
}

// handleThemeKey cycles the theme and persists the choice.
func (m *App) handleThemeKey() tea.Cmd {
	name := theme.CycleTheme()
	if err := config.SaveTheme(name); err != nil {
		debug.Warn("theme not saved", zap.String("theme", name), zap.Error(err))
	}
	m.renderMarkdown = nil
	m.resize()
	return m.showSuccess("Theme", name)
}

func (m *App) applyCatalog(msg catalogLoadedMsg) tea.Cmd {
	if msg.err != nil {
		return m.showError("reload catalog", msg.err)
	}
	m.entities = msg.entities
	m.services = msg.services
	if m.form != nil {
		for _, kind := range catalog.Kinds {
			m.form.SetEntities(kind, m.entities[kind])
		}
	}
	m.clampCursor()
	m.refreshDetail()
	return nil
}
