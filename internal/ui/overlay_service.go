package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"fixdesk/internal/catalog"
	"fixdesk/internal/debug"
)

// pickerSlot indexes the form's pickers.
type pickerSlot int

const (
	slotDevice pickerSlot = iota
	slotBrand
	slotWarranty
	slotCount
)

func (s pickerSlot) kind() catalog.Kind {
	switch s {
	case slotBrand:
		return catalog.KindBrand
	case slotWarranty:
		return catalog.KindWarranty
	}
	return catalog.KindDevice
}

func slotForKind(kind catalog.Kind) pickerSlot {
	switch kind {
	case catalog.KindBrand:
		return slotBrand
	case catalog.KindWarranty:
		return slotWarranty
	}
	return slotDevice
}

type formField int

const (
	fieldName formField = iota
	fieldDevice
	fieldBrand
	fieldWarranty
	fieldPrice
	fieldDescription
	fieldCount
)

func (f formField) slot() (pickerSlot, bool) {
	switch f {
	case fieldDevice:
		return slotDevice, true
	case fieldBrand:
		return slotBrand, true
	case fieldWarranty:
		return slotWarranty, true
	}
	return 0, false
}

func fieldForSlot(s pickerSlot) formField {
	return fieldDevice + formField(s)
}

type pickerEventKind int

const (
	eventChange pickerEventKind = iota
	eventEdit
	eventDelete
)

// pickerEvent is a handler call recorded during a picker Update and applied
// once the picker's new state has been stored back on the form.
type pickerEvent struct {
	kind  pickerEventKind
	slot  pickerSlot
	value string
	name  string
}

// serviceDraft is a validated form submission. Brand and warranty may hold
// typed names that are not entity IDs yet.
type serviceDraft struct {
	service    catalog.Service
	device     string
	brand      string
	warranty   string
	priceCents int64
}

type serviceSubmitMsg struct {
	draft serviceDraft
}

type serviceFormCancelledMsg struct{}

type entityCreateRequestMsg struct {
	kind catalog.Kind
	name string
	slot pickerSlot
}

type entityEditRequestMsg struct {
	kind     catalog.Kind
	id, name string
}

type entityDeleteRequestMsg struct {
	kind     catalog.Kind
	id, name string
}

// ServiceForm edits one service: its name, device, the first line item's
// brand, warranty and price, and the markdown description.
type ServiceForm struct {
	keys     KeyMap
	base     catalog.Service
	entities map[catalog.Kind][]catalog.Entity

	name        textinput.Model
	price       textinput.Model
	description textarea.Model
	pickers     [slotCount]ComboBox
	bus         *PointerBus

	focus   formField
	width   int
	originX int
	originY int
	events  []pickerEvent
	errMsg  string
}

// NewServiceForm builds a form for svc. A zero svc.ID creates a new service.
func NewServiceForm(svc catalog.Service, entities map[catalog.Kind][]catalog.Entity, opts PickerConfig) *ServiceForm {
	opts = opts.withDefaults()
	width := opts.Width

	f := &ServiceForm{
		keys:     DefaultKeyMap(),
		base:     svc,
		entities: make(map[catalog.Kind][]catalog.Entity, len(catalog.Kinds)),
		bus:      NewPointerBus(),
		width:    width,
	}
	for _, kind := range catalog.Kinds {
		f.entities[kind] = entities[kind]
	}

	f.name = textinput.New()
	f.name.Prompt = ""
	f.name.Placeholder = "Screen replacement"
	f.name.CharLimit = 120
	f.name.Width = width - 1
	f.name.SetValue(svc.Name)

	var first catalog.LineItem
	if len(svc.Items) > 0 {
		first = svc.Items[0]
	}

	f.price = textinput.New()
	f.price.Prompt = "$"
	f.price.Placeholder = "0.00"
	f.price.CharLimit = 12
	f.price.Width = width - 2
	if first.PriceCents != 0 {
		f.price.SetValue(strings.TrimPrefix(catalog.FormatPrice(first.PriceCents), "$"))
	}

	f.description = textarea.New()
	f.description.Prompt = ""
	f.description.ShowLineNumbers = false
	f.description.Placeholder = "Markdown description"
	f.description.CharLimit = 2000
	f.description.SetWidth(width)
	f.description.SetHeight(3)
	f.description.SetValue(svc.Description)

	values := [slotCount]string{svc.DeviceID, first.BrandID, first.WarrantyID}
	placeholders := [slotCount]string{"Select a device", "Select or type a brand", "Select or type a warranty"}
	for slot := pickerSlot(0); slot < slotCount; slot++ {
		f.pickers[slot] = NewComboBox(PickerOptions(f.entities[slot.kind()]), values[slot], f.handlersFor(slot)).
			WithPlaceholder(placeholders[slot]).
			WithCreatable(slot != slotDevice).
			WithWidth(width).
			WithMaxVisible(opts.MaxVisible).
			WithPointerBus(f.bus)
	}

	f.name.Focus()
	f.layout()
	return f
}

func (f *ServiceForm) handlersFor(slot pickerSlot) ComboBoxHandlers {
	return ComboBoxHandlers{
		OnChange: func(value string) tea.Cmd {
			f.events = append(f.events, pickerEvent{kind: eventChange, slot: slot, value: value})
			return nil
		},
		OnEdit: func(id, name string) tea.Cmd {
			f.events = append(f.events, pickerEvent{kind: eventEdit, slot: slot, value: id, name: name})
			return nil
		},
		OnDelete: func(id string) tea.Cmd {
			f.events = append(f.events, pickerEvent{kind: eventDelete, slot: slot, value: id})
			return nil
		},
	}
}

// Init implements tea.Model.
func (f *ServiceForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (f *ServiceForm) Update(msg tea.Msg) (*ServiceForm, tea.Cmd) {
	defer f.layout()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return f, f.handleKey(msg)
	case tea.MouseMsg:
		return f, f.handleMouse(msg)
	}
	return f, f.updateFocused(msg)
}

func (f *ServiceForm) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, f.keys.Save):
		return f.submit()
	case key.Matches(msg, f.keys.NextField):
		return f.focusField((f.focus + 1) % fieldCount)
	case key.Matches(msg, f.keys.PrevField):
		return f.focusField((f.focus + fieldCount - 1) % fieldCount)
	case key.Matches(msg, f.keys.Cancel):
		if slot, ok := f.focus.slot(); ok && f.pickers[slot].IsDropdownOpen() {
			return f.updateFocused(msg)
		}
		return func() tea.Msg { return serviceFormCancelledMsg{} }
	case msg.Type == tea.KeyEnter && (f.focus == fieldName || f.focus == fieldPrice):
		return f.focusField(f.focus + 1)
	}
	return f.updateFocused(msg)
}

// updateFocused forwards msg to the focused field.
func (f *ServiceForm) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldPrice:
		f.price, cmd = f.price.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	default:
		slot, _ := f.focus.slot()
		f.pickers[slot], cmd = f.pickers[slot].Update(msg)
	}
	return tea.Batch(cmd, f.flushEvents(true))
}

// handleMouse routes a press through the form's pointer bus: open pickers
// hear every press, closed ones only presses inside their bounds.
func (f *ServiceForm) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	var targets []pickerSlot
	for slot := pickerSlot(0); slot < slotCount; slot++ {
		if f.bus.Listening(f.pickers[slot].ID()) {
			targets = append(targets, slot)
		}
	}
	for slot := pickerSlot(0); slot < slotCount; slot++ {
		if !f.bus.Listening(f.pickers[slot].ID()) && f.pickers[slot].Contains(msg.X, msg.Y) {
			targets = append(targets, slot)
		}
	}

	var cmds []tea.Cmd
	for _, slot := range targets {
		wasFocused := f.pickers[slot].Focused()
		var cmd tea.Cmd
		f.pickers[slot], cmd = f.pickers[slot].Update(msg)
		cmds = append(cmds, cmd)
		if !wasFocused && f.pickers[slot].Focused() {
			cmds = append(cmds, f.moveFocusTo(fieldForSlot(slot)))
		}
	}
	cmds = append(cmds, f.flushEvents(true))
	return tea.Batch(cmds...)
}

// moveFocusTo switches focus bookkeeping to next after a picker focused
// itself, blurring whatever held focus before.
func (f *ServiceForm) moveFocusTo(next formField) tea.Cmd {
	if f.focus == next {
		return nil
	}
	cmd := f.blurField(f.focus)
	f.focus = next
	return cmd
}

func (f *ServiceForm) focusField(next formField) tea.Cmd {
	blur := f.blurField(f.focus)
	f.focus = next
	var focus tea.Cmd
	switch next {
	case fieldName:
		focus = f.name.Focus()
	case fieldPrice:
		focus = f.price.Focus()
	case fieldDescription:
		focus = f.description.Focus()
	default:
		slot, _ := next.slot()
		focus = f.pickers[slot].Focus()
	}
	return tea.Batch(blur, focus, f.flushEvents(true))
}

// blurField is the loss-of-focus trigger for pickers.
func (f *ServiceForm) blurField(field formField) tea.Cmd {
	switch field {
	case fieldName:
		f.name.Blur()
	case fieldPrice:
		f.price.Blur()
	case fieldDescription:
		f.description.Blur()
	default:
		slot, _ := field.slot()
		return f.pickers[slot].Blur()
	}
	return nil
}

// flushEvents applies recorded picker events. With requestCreates, a typed
// value that names no entity produces a create request.
func (f *ServiceForm) flushEvents(requestCreates bool) tea.Cmd {
	if len(f.events) == 0 {
		return nil
	}
	events := f.events
	f.events = nil

	var cmds []tea.Cmd
	for _, ev := range events {
		kind := ev.slot.kind()
		switch ev.kind {
		case eventChange:
			f.pickers[ev.slot].SetValue(ev.value)
			if ev.value == "" || hasEntityID(f.entities[kind], ev.value) || !requestCreates {
				continue
			}
			req := entityCreateRequestMsg{kind: kind, name: ev.value, slot: ev.slot}
			cmds = append(cmds, func() tea.Msg { return req })
		case eventEdit:
			req := entityEditRequestMsg{kind: kind, id: ev.value, name: ev.name}
			cmds = append(cmds, func() tea.Msg { return req })
		case eventDelete:
			req := entityDeleteRequestMsg{kind: kind, id: ev.value, name: entityName(f.entities[kind], ev.value)}
			cmds = append(cmds, func() tea.Msg { return req })
		}
	}
	return tea.Batch(cmds...)
}

// submit validates and emits the draft. Pending typed picker values travel
// in the draft and are resolved by the save command; only edit and delete
// requests survive the flush.
func (f *ServiceForm) submit() tea.Cmd {
	blur := tea.Batch(f.blurField(f.focus), f.flushEvents(false))

	name := strings.TrimSpace(f.name.Value())
	if name == "" {
		f.errMsg = "Name is required"
		return tea.Batch(blur, f.focusField(fieldName))
	}
	cents, err := catalog.ParsePrice(f.price.Value())
	if err != nil {
		f.errMsg = "Price must look like 129.50"
		return tea.Batch(blur, f.focusField(fieldPrice))
	}
	f.errMsg = ""

	svc := f.base
	svc.Name = name
	svc.Description = f.description.Value()
	draft := serviceDraft{
		service:    svc,
		device:     f.pickers[slotDevice].Value(),
		brand:      f.pickers[slotBrand].Value(),
		warranty:   f.pickers[slotWarranty].Value(),
		priceCents: cents,
	}
	debug.Debug("service form submitted",
		zap.String("id", svc.ID),
		zap.String("brand", draft.brand),
		zap.String("warranty", draft.warranty))
	return tea.Batch(blur, f.focusField(f.focus), func() tea.Msg { return serviceSubmitMsg{draft: draft} })
}

// SetEntities replaces the options of the picker for kind.
func (f *ServiceForm) SetEntities(kind catalog.Kind, entities []catalog.Entity) {
	f.entities[kind] = entities
	f.pickers[slotForKind(kind)].SetOptions(PickerOptions(entities))
	f.layout()
}

// ResolveCreated swaps a typed picker value for the entity created from it.
func (f *ServiceForm) ResolveCreated(msg entityCreatedMsg) {
	f.SetEntities(msg.kind, msg.entities)
	p := &f.pickers[msg.slot]
	if strings.EqualFold(strings.TrimSpace(p.Value()), strings.TrimSpace(msg.typed)) {
		p.SetValue(msg.entity.ID)
	}
	f.layout()
}

// EntityRemoved clears any picker still pointing at a deleted entity.
func (f *ServiceForm) EntityRemoved(kind catalog.Kind, id string) {
	p := &f.pickers[slotForKind(kind)]
	if p.Value() == id {
		p.SetValue("")
	}
	f.layout()
}

// Close tears the pickers down and releases their pointer subscriptions.
func (f *ServiceForm) Close() {
	for slot := range f.pickers {
		f.pickers[slot].Close()
	}
}

// SetOrigin places the form's top-left corner on screen.
func (f *ServiceForm) SetOrigin(x, y int) {
	f.originX = x
	f.originY = y
	f.layout()
}

// Origin returns the form's top-left corner.
func (f *ServiceForm) Origin() (int, int) {
	return f.originX, f.originY
}

// Picker returns a copy of the picker for kind.
func (f *ServiceForm) Picker(kind catalog.Kind) ComboBox {
	return f.pickers[slotForKind(kind)]
}

// Bus returns the form's pointer listener.
func (f *ServiceForm) Bus() *PointerBus {
	return f.bus
}

// Editing reports whether the form edits an existing service.
func (f *ServiceForm) Editing() bool {
	return f.base.ID != ""
}

type formBlock struct {
	content string
	picker  bool
	slot    pickerSlot
}

// blocks lists the form's content in render order. View and layout both
// walk it so picker origins always match what is drawn.
func (f *ServiceForm) blocks() []formBlock {
	title := "New service"
	if f.Editing() {
		title = "Edit service"
	}
	divider := styleDivider().Render(strings.Repeat("─", f.width))

	label := func(text string, field formField) formBlock {
		style := styleFieldLabel()
		if f.focus == field {
			style = styleFieldLabelFocused()
		}
		return formBlock{content: style.Render(text)}
	}
	picker := func(slot pickerSlot) formBlock {
		return formBlock{content: f.pickers[slot].View(), picker: true, slot: slot}
	}

	blocks := []formBlock{
		{content: styleOverlayTitle().Render(title)},
		{content: divider},
		label("Name", fieldName),
		{content: f.name.View()},
		label("Device", fieldDevice),
		picker(slotDevice),
		label("Brand", fieldBrand),
		picker(slotBrand),
		label("Warranty", fieldWarranty),
		picker(slotWarranty),
		label("Price", fieldPrice),
		{content: f.price.View()},
		label("Description", fieldDescription),
		{content: f.description.View()},
	}
	if f.errMsg != "" {
		blocks = append(blocks, formBlock{content: styleFormError().Render("✖ " + f.errMsg)})
	}
	hints := []footerHint{
		shortHelp(f.keys.NextField),
		shortHelp(f.keys.Save),
		shortHelp(f.keys.Cancel),
		{key: "^E/^D", desc: "Edit/Delete option"},
	}
	blocks = append(blocks,
		formBlock{content: divider},
		formBlock{content: renderHints(trimHintsToFit(hints, f.width))},
	)
	return blocks
}

// layout recomputes picker origins from the current block heights. The
// overlay frame puts content one border cell plus padding in from the edge.
func (f *ServiceForm) layout() {
	x := f.originX + 1 + overlayHPadding
	y := f.originY + 1 + overlayVPadding
	for _, b := range f.blocks() {
		if b.picker {
			f.pickers[b.slot].SetOrigin(x, y)
		}
		y += lipgloss.Height(b.content)
	}
}

// View implements tea.Model.
func (f *ServiceForm) View() string {
	blocks := f.blocks()
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, b.content)
	}
	return styleOverlay().
		Width(f.width + overlayHPadding*2).
		Render(strings.Join(parts, "\n"))
}

// Layer places the form at its origin.
func (f *ServiceForm) Layer() Layer {
	return newPositionedLayer(f.View(), f.originX, f.originY)
}
