package ui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"fixdesk/internal/catalog"
	"fixdesk/internal/config"
	"fixdesk/internal/debug"
)

const (
	minListWidth    = 24
	minDetailWidth  = 20
	minBodyHeight   = 5
	formTopMargin   = 2
	chromeHeight    = 2 // header and footer
	listDetailRatio = 2 // list takes 1/ratio of the body width
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// PickerConfig sizes the form's pickers.
type PickerConfig struct {
	Width      int
	MaxVisible int
}

func (c PickerConfig) withDefaults() PickerConfig {
	if c.Width <= 0 {
		c.Width = config.DefaultPickerWidth
	}
	if c.MaxVisible <= 0 {
		c.MaxVisible = config.DefaultPickerMaxVisible
	}
	return c
}

// Config configures the UI application.
type Config struct {
	Store         catalog.Store
	StoreLabel    string // shown in the footer, e.g. the database path
	Version       string
	MarkdownStyle string
	Picker        PickerConfig
}

// App is the Bubble Tea model for the catalog admin screen.
type App struct {
	store      catalog.Store
	storeLabel string
	version    string
	keys       KeyMap
	pickerCfg  PickerConfig

	entities map[catalog.Kind][]catalog.Entity
	services []catalog.Service
	cursor   int
	listTop  int

	width  int
	height int
	ready  bool

	viewport       viewport.Model
	markdownStyle  string
	markdownWidth  int
	renderMarkdown func(string) string

	form          *ServiceForm
	renameOverlay *RenameOverlay
	deleteOverlay *DeleteOverlay

	toast        *toast
	toastTicking bool
}

// NewApp loads the catalog and returns a ready-to-run model.
func NewApp(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("ui: store is required")
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	entities, services, err := loadCatalog(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	debug.Info("catalog loaded",
		zap.Int("services", len(services)),
		zap.Int("devices", len(entities[catalog.KindDevice])),
		zap.Int("brands", len(entities[catalog.KindBrand])),
		zap.Int("warranties", len(entities[catalog.KindWarranty])))

	return &App{
		store:         cfg.Store,
		storeLabel:    cfg.StoreLabel,
		version:       cfg.Version,
		keys:          DefaultKeyMap(),
		pickerCfg:     cfg.Picker.withDefaults(),
		entities:      entities,
		services:      services,
		viewport:      viewport.New(minDetailWidth, minBodyHeight),
		markdownStyle: cfg.MarkdownStyle,
	}, nil
}

// Init implements tea.Model.
func (m *App) Init() tea.Cmd {
	return nil
}

// selectedService returns the service under the list cursor.
func (m *App) selectedService() (catalog.Service, bool) {
	if m.cursor < 0 || m.cursor >= len(m.services) {
		return catalog.Service{}, false
	}
	return m.services[m.cursor], true
}

func (m *App) selectServiceID(id string) {
	for i, svc := range m.services {
		if svc.ID == id {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m *App) clampCursor() {
	if m.cursor >= len(m.services) {
		m.cursor = len(m.services) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// bodyHeight is the height of the list and detail panes, borders included.
func (m *App) bodyHeight() int {
	return clampDimension(m.height-chromeHeight, minBodyHeight, max(m.height-chromeHeight, minBodyHeight))
}

func (m *App) paneWidths() (list, detail int) {
	list = clampDimension(m.width/listDetailRatio, minListWidth, max(m.width-minDetailWidth, minListWidth))
	detail = m.width - list
	if detail < minDetailWidth {
		detail = minDetailWidth
	}
	return list, detail
}

// resize recomputes pane geometry and the markdown renderer.
func (m *App) resize() {
	_, detail := m.paneWidths()
	// Pane border and one cell of padding each side.
	inner := detail - 4
	if inner < 1 {
		inner = 1
	}
	m.viewport.Width = inner
	m.viewport.Height = max(m.bodyHeight()-2, 1)
	if m.renderMarkdown == nil || m.markdownWidth != inner {
		m.renderMarkdown = buildMarkdownRenderer(m.markdownStyle, inner)
		m.markdownWidth = inner
	}
	m.refreshDetail()
	m.positionForm()
}

// positionForm centers the form horizontally at a fixed top margin so an
// opening dropdown grows it downward without moving its pickers.
func (m *App) positionForm() {
	if m.form == nil {
		return
	}
	w, _ := blockDimensions(m.form.View())
	x := (m.width - w) / 2
	if x < 0 {
		x = 0
	}
	m.form.SetOrigin(x, formTopMargin)
}

func (m *App) refreshDetail() {
	if m.renderMarkdown == nil {
		return
	}
	svc, ok := m.selectedService()
	if !ok {
		m.viewport.SetContent(styleMuted().Render("No service selected."))
		return
	}
	m.viewport.SetContent(m.renderDetail(svc))
	m.viewport.GotoTop()
}

func (m *App) dialogOpen() bool {
	return m.renameOverlay != nil || m.deleteOverlay != nil
}

func (m *App) openForm(svc catalog.Service) tea.Cmd {
	m.form = NewServiceForm(svc, m.entities, m.pickerCfg)
	m.positionForm()
	debug.Debug("service form opened", zap.String("id", svc.ID))
	return m.form.Init()
}

func (m *App) closeForm() {
	if m.form == nil {
		return
	}
	m.form.Close()
	m.form = nil
}
