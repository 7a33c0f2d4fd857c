package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"fixdesk/internal/catalog"
)

// renderDetail renders one service for the detail pane.
func (m *App) renderDetail(svc catalog.Service) string {
	width := m.viewport.Width

	header := lipgloss.JoinVertical(lipgloss.Left,
		styleAppHeader().Render(truncateText(svc.Name, width)),
		styleID().Render(svc.ID),
	)

	device := entityName(m.entities[catalog.KindDevice], svc.DeviceID)
	if device == "" {
		device = "-"
	}
	meta := []string{
		detailRow("Device:", device),
	}
	if !svc.UpdatedAt.IsZero() {
		meta = append(meta, detailRow("Updated:", formatTime(svc.UpdatedAt)))
	}

	var pricing string
	if len(svc.Items) > 0 {
		lines := make([]string, 0, len(svc.Items))
		for _, item := range svc.Items {
			lines = append(lines, indentBlock(m.renderLineItem(item, width-2), 2))
		}
		pricing = renderContentSection("Pricing:", strings.Join(lines, "\n"))
	}

	var description string
	if strings.TrimSpace(svc.Description) != "" {
		description = renderContentSection("Description:", m.renderMarkdown(svc.Description))
	}

	return joinDetailSections(
		header,
		strings.Join(meta, "\n"),
		pricing,
		description,
	)
}

// renderLineItem renders "Brand · Warranty ..... $129.50" within width.
func (m *App) renderLineItem(item catalog.LineItem, width int) string {
	names := make([]string, 0, 2)
	if name := entityName(m.entities[catalog.KindBrand], item.BrandID); name != "" {
		names = append(names, name)
	}
	if name := entityName(m.entities[catalog.KindWarranty], item.WarrantyID); name != "" {
		names = append(names, name)
	}
	label := strings.Join(names, " · ")
	if label == "" {
		label = "Any"
	}
	price := stylePrice().Render(catalog.FormatPrice(item.PriceCents))
	labelWidth := width - lipgloss.Width(price) - 1
	if labelWidth < 1 {
		labelWidth = 1
	}
	return styleNormalText().Render(padLineToWidth(truncateText(label, labelWidth), labelWidth)) + " " + price
}

func detailRow(key, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Left, styleFieldLabel().Width(10).Render(key), styleNormalText().Render(value))
}

func renderContentSection(label, body string) string {
	var sb strings.Builder
	sb.WriteString(styleFieldLabelFocused().Render(label))
	sb.WriteString("\n")
	sb.WriteString(normalizeSectionBody(body))
	return sb.String()
}

func normalizeSectionBody(body string) string {
	body = strings.TrimRight(body, "\r\n")
	return trimLeadingWhitespaceLines(body)
}

func joinDetailSections(sections ...string) string {
	cleaned := make([]string, 0, len(sections))
	for _, section := range sections {
		if strings.TrimSpace(section) == "" {
			continue
		}
		cleaned = append(cleaned, strings.Trim(section, "\n\r"))
	}
	return strings.Join(cleaned, "\n\n")
}

// trimLeadingWhitespaceLines drops leading lines that render blank, which
// glamour emits before the first paragraph.
func trimLeadingWhitespaceLines(body string) string {
	body = strings.TrimLeft(body, "\r\n")
	for len(body) > 0 {
		lineEnd := strings.IndexByte(body, '\n')
		line := body
		nextStart := len(body)
		if lineEnd != -1 {
			line = body[:lineEnd]
			nextStart = lineEnd + 1
		}
		if strings.TrimSpace(ansi.Strip(line)) != "" {
			break
		}
		body = strings.TrimLeft(body[nextStart:], "\r\n")
	}
	return body
}

func indentBlock(text string, spaces int) string {
	if text == "" {
		return ""
	}
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func formatTime(t time.Time) string {
	return t.Local().Format("Jan 2, 2006 3:04 PM")
}

// renderServiceList renders the visible window of the service list.
func (m *App) renderServiceList(width, height int) string {
	if len(m.services) == 0 {
		return styleMuted().Render(fmt.Sprintf("No services yet. Press %s to add one.", m.keys.New.Help().Key))
	}
	m.scrollList(height)

	end := min(m.listTop+height, len(m.services))
	lines := make([]string, 0, end-m.listTop)
	for i := m.listTop; i < end; i++ {
		lines = append(lines, m.renderServiceRow(m.services[i], width, i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

func (m *App) scrollList(height int) {
	if height < 1 {
		height = 1
	}
	if m.cursor < m.listTop {
		m.listTop = m.cursor
	}
	if m.cursor >= m.listTop+height {
		m.listTop = m.cursor - height + 1
	}
	if m.listTop < 0 {
		m.listTop = 0
	}
}

// renderServiceRow renders "Name  Device  from $price".
func (m *App) renderServiceRow(svc catalog.Service, width int, selected bool) string {
	price := ""
	if cents, ok := lowestPrice(svc); ok {
		price = catalog.FormatPrice(cents)
	}
	device := entityName(m.entities[catalog.KindDevice], svc.DeviceID)

	nameWidth := width - lipgloss.Width(price) - 1
	if device != "" {
		nameWidth -= lipgloss.Width(device) + 2
	}
	if nameWidth < 4 {
		nameWidth = 4
		device = ""
	}

	if selected {
		parts := []string{padLineToWidth(truncateText(svc.Name, nameWidth), nameWidth)}
		if device != "" {
			parts = append(parts, device)
		}
		line := padLineToWidth(strings.Join(parts, "  "), width-lipgloss.Width(price)) + price
		return styleSelectedRow().Render(padLineToWidth(line, width))
	}

	line := styleNormalText().Render(padLineToWidth(truncateText(svc.Name, nameWidth), nameWidth))
	if device != "" {
		line += "  " + styleMuted().Render(device)
	}
	line = padLineToWidth(line, width-lipgloss.Width(price))
	return line + stylePrice().Render(price)
}

func lowestPrice(svc catalog.Service) (int64, bool) {
	if len(svc.Items) == 0 {
		return 0, false
	}
	low := svc.Items[0].PriceCents
	for _, item := range svc.Items[1:] {
		if item.PriceCents < low {
			low = item.PriceCents
		}
	}
	return low, true
}
