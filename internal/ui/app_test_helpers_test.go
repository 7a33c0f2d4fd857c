package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"fixdesk/internal/catalog"
)

// cmdTimeout drops commands that block, such as cursor blinks and ticks.
const cmdTimeout = 100 * time.Millisecond

// runCmd executes cmd and flattens batches. Blocking commands are dropped.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if msg == nil {
			return nil
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, runCmd(c)...)
			}
			return out
		}
		return []tea.Msg{msg}
	case <-time.After(cmdTimeout):
		return nil
	}
}

// send delivers msg and every message its commands produce until the app
// settles.
func send(t *testing.T, m *App, msg tea.Msg) {
	t.Helper()
	queue := []tea.Msg{msg}
	for i := 0; len(queue) > 0; i++ {
		if i > 500 {
			t.Fatal("message loop did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if _, ok := next.(tea.QuitMsg); ok {
			continue
		}
		_, cmd := m.Update(next)
		queue = append(queue, runCmd(cmd)...)
	}
}

func sendKey(t *testing.T, m *App, k tea.KeyType) {
	t.Helper()
	send(t, m, tea.KeyMsg{Type: k})
}

func sendText(t *testing.T, m *App, s string) {
	t.Helper()
	for _, r := range s {
		send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func sendClick(t *testing.T, m *App, x, y int) {
	t.Helper()
	send(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func newTestApp(t *testing.T, store catalog.Store) *App {
	t.Helper()
	m, err := NewApp(Config{Store: store, MarkdownStyle: "plain"})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	send(t, m, tea.WindowSizeMsg{Width: 140, Height: 48})
	return m
}

// repairFixture holds the IDs seeded by seedRepairShop.
type repairFixture struct {
	iphone, pixel catalog.Entity
	samsung, lg   catalog.Entity
	standard      catalog.Entity
	screen, bezel catalog.Service
}

func seedRepairShop(t *testing.T, store catalog.Store) repairFixture {
	t.Helper()
	ctx := context.Background()
	create := func(kind catalog.Kind, name string) catalog.Entity {
		e, err := store.Create(ctx, kind, name)
		if err != nil {
			t.Fatalf("create %s %q: %v", kind, name, err)
		}
		return e
	}
	var fx repairFixture
	fx.iphone = create(catalog.KindDevice, "iPhone 15")
	fx.pixel = create(catalog.KindDevice, "Pixel 8")
	fx.samsung = create(catalog.KindBrand, "Samsung")
	fx.lg = create(catalog.KindBrand, "LG")
	fx.standard = create(catalog.KindWarranty, "90 days")

	save := func(svc catalog.Service) catalog.Service {
		saved, err := store.SaveService(ctx, svc)
		if err != nil {
			t.Fatalf("save service %q: %v", svc.Name, err)
		}
		return saved
	}
	fx.screen = save(catalog.Service{
		Name:        "Screen replacement",
		Description: "Replaces the **front glass** and display.",
		DeviceID:    fx.iphone.ID,
		Items: []catalog.LineItem{
			{BrandID: fx.samsung.ID, WarrantyID: fx.standard.ID, PriceCents: 12950},
			{BrandID: fx.lg.ID, PriceCents: 9900},
		},
	})
	fx.bezel = save(catalog.Service{Name: "Bezel repair", DeviceID: fx.pixel.ID})
	return fx
}

func entityNamed(t *testing.T, store catalog.Reader, kind catalog.Kind, name string) (catalog.Entity, bool) {
	t.Helper()
	e, ok, err := catalog.FindByName(context.Background(), store, kind, name)
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	return e, ok
}
