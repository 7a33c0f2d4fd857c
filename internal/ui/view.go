package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fixdesk/internal/catalog"
)

// View implements tea.Model.
func (m *App) View() string {
	if !m.ready {
		return "Loading catalog..."
	}

	header := m.renderHeader()
	bodyHeight := m.bodyHeight()
	listWidth, detailWidth := m.paneWidths()

	// Pane borders take two cells each way.
	listInnerW := max(listWidth-2, 1)
	listInnerH := max(bodyHeight-2, 1)
	list := stylePane().Width(listInnerW).Height(listInnerH).
		Render(m.renderServiceList(listInnerW, listInnerH))
	detail := stylePane().Width(max(detailWidth-2, 1)).Height(listInnerH).
		Padding(0, 1).
		Render(m.viewport.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, detail)

	base := strings.Join([]string{header, body, m.renderFooter()}, "\n")

	const mainBodyStart = 1
	var layers []Layer
	if m.form != nil {
		layers = append(layers, m.form.Layer())
	}
	switch {
	case m.deleteOverlay != nil:
		layers = append(layers, m.deleteOverlay.Layer(m.width, m.height, mainBodyStart, 1))
	case m.renameOverlay != nil:
		layers = append(layers, m.renameOverlay.Layer(m.width, m.height, mainBodyStart, 1))
	}
	if layer := m.toastLayer(m.width, m.height, mainBodyStart, bodyHeight); layer != nil {
		layers = append(layers, layer)
	}
	if len(layers) == 0 {
		return base
	}
	return composeLayers(base, m.width, m.height, layers...)
}

func (m *App) renderHeader() string {
	title := "FIXDESK"
	if m.version != "" {
		title = fmt.Sprintf("FIXDESK v%s", m.version)
	}
	stats := fmt.Sprintf("Services: %d • Devices: %d • Brands: %d • Warranties: %d",
		len(m.services),
		len(m.entities[catalog.KindDevice]),
		len(m.entities[catalog.KindBrand]),
		len(m.entities[catalog.KindWarranty]))
	return truncateText(styleAppHeader().Render(title)+" "+styleMuted().Render(stats), max(m.width, 1))
}
