package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fixdesk/internal/debug"
)

// ComboBoxState represents whether the dropdown is showing.
type ComboBoxState int

const (
	// ComboBoxClosed - dropdown hidden, input shows the committed label.
	ComboBoxClosed ComboBoxState = iota
	// ComboBoxOpen - dropdown visible and filtering on the text buffer.
	ComboBoxOpen
)

func (s ComboBoxState) String() string {
	if s == ComboBoxOpen {
		return "open"
	}
	return "closed"
}

// ComboBoxHandlers are the owner's callbacks. OnChange is required; a nil
// OnEdit or OnDelete hides that row affordance. Each runs synchronously
// inside Update and may return a command for follow-up work.
type ComboBoxHandlers struct {
	OnChange func(value string) tea.Cmd
	OnEdit   func(id, name string) tea.Cmd
	OnDelete func(id string) tea.Cmd
}

type rowKind int

const (
	rowOption rowKind = iota
	rowCreate
)

// dropdownRow is one selectable line in the open dropdown.
type dropdownRow struct {
	kind   rowKind
	option Option
	text   string // create rows only
}

type comboKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Escape key.Binding
	Edit   key.Binding
	Delete key.Binding
}

var comboKeys = comboKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "ctrl+p")),
	Down:   key.NewBinding(key.WithKeys("down", "ctrl+n")),
	Enter:  key.NewBinding(key.WithKeys("enter")),
	Escape: key.NewBinding(key.WithKeys("esc")),
	Edit:   key.NewBinding(key.WithKeys("ctrl+e")),
	Delete: key.NewBinding(key.WithKeys("ctrl+d")),
}

// ComboBox is a searchable picker over owner-supplied options. It never
// changes its own value or options; it proposes changes through handlers and
// expects the owner to push the result back with SetValue/SetOptions.
type ComboBox struct {
	// Configuration (set at creation)
	Placeholder string
	Width       int // Display width including border
	MaxVisible  int // Max rows in dropdown (default 5)

	id       string
	mode     SelectMode
	handlers ComboBoxHandlers
	options  []Option
	value    string

	// Current state
	state          ComboBoxState
	input          textinput.Model // Search buffer or creatable input buffer
	dirty          bool            // Buffer edited since the dropdown opened
	filtered       []Option
	highlightIndex int
	scrollOffset   int
	focused        bool
	originX        int
	originY        int
	watcher        outsideWatcher
}

// NewComboBox creates a closed basic-mode picker.
func NewComboBox(options []Option, value string, handlers ComboBoxHandlers) ComboBox {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Prompt = "> "

	c := ComboBox{
		Width:      40,
		MaxVisible: 5,
		id:         uuid.NewString(),
		mode:       BasicMode{},
		handlers:   handlers,
		options:    options,
		value:      value,
		state:      ComboBoxClosed,
		input:      ti,
		filtered:   options,
		watcher:    outsideWatcher{bus: NewPointerBus()},
	}
	c.input.Width = c.Width - 6
	c.input.SetValue(c.mode.resolveDisplay(&c))
	return c
}

// WithPlaceholder sets the text shown when nothing resolves.
func (c ComboBox) WithPlaceholder(s string) ComboBox {
	c.Placeholder = s
	c.input.Placeholder = s
	return c
}

// WithWidth sets the display width.
func (c ComboBox) WithWidth(w int) ComboBox {
	c.Width = w
	c.input.Width = w - 6
	return c
}

// WithMaxVisible sets the maximum visible rows in the dropdown.
func (c ComboBox) WithMaxVisible(n int) ComboBox {
	if n > 0 {
		c.MaxVisible = n
	}
	return c
}

// WithCreatable switches between BasicMode and CreatableMode.
func (c ComboBox) WithCreatable(creatable bool) ComboBox {
	if creatable {
		c.mode = CreatableMode{}
	} else {
		c.mode = BasicMode{}
	}
	c.input.SetValue(c.mode.resolveDisplay(&c))
	return c
}

// WithPointerBus attaches the picker to a screen's shared pointer listener.
func (c ComboBox) WithPointerBus(bus *PointerBus) ComboBox {
	if bus != nil {
		c.watcher.release()
		c.watcher = outsideWatcher{bus: bus}
	}
	return c
}

// Init implements tea.Model.
func (c ComboBox) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (c ComboBox) Update(msg tea.Msg) (ComboBox, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !c.focused {
			return c, nil
		}
		if c.state == ComboBoxOpen {
			return c.handleOpenKey(msg)
		}
		return c.handleClosedKey(msg)
	case tea.MouseMsg:
		return c.handleMouse(msg)
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c ComboBox) handleClosedKey(msg tea.KeyMsg) (ComboBox, tea.Cmd) {
	switch {
	case key.Matches(msg, comboKeys.Down):
		c.openDropdown()
		return c, nil
	case isTextKey(msg):
		c.openDropdown()
		return c.applyTyping(msg)
	}
	return c, nil
}

func isTextKey(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyRunes || msg.Type == tea.KeyBackspace || msg.Type == tea.KeySpace
}

func (c ComboBox) handleOpenKey(msg tea.KeyMsg) (ComboBox, tea.Cmd) {
	switch {
	case key.Matches(msg, comboKeys.Up):
		c.moveHighlight(-1)
		return c, nil
	case key.Matches(msg, comboKeys.Down):
		c.moveHighlight(1)
		return c, nil
	case key.Matches(msg, comboKeys.Enter):
		rows := c.rows()
		if c.highlightIndex < 0 || c.highlightIndex >= len(rows) {
			return c, nil
		}
		cmd := c.mode.commit(&c, rows[c.highlightIndex])
		return c, cmd
	case key.Matches(msg, comboKeys.Escape):
		cmd := c.mode.onOutsideInteraction(&c)
		return c, cmd
	case key.Matches(msg, comboKeys.Edit):
		if opt, ok := c.highlightedOption(); ok {
			cmd := c.editOption(opt)
			return c, cmd
		}
		return c, nil
	case key.Matches(msg, comboKeys.Delete):
		if opt, ok := c.highlightedOption(); ok {
			cmd := c.deleteOption(opt)
			return c, cmd
		}
		return c, nil
	}
	return c.applyTyping(msg)
}

// applyTyping feeds a key to the text buffer and refilters on change.
func (c ComboBox) applyTyping(msg tea.KeyMsg) (ComboBox, tea.Cmd) {
	before := c.input.Value()
	// The first keystroke over a resolved label replaces it.
	if !c.dirty && isTextKey(msg) {
		if display := c.mode.resolveDisplay(&c); display != "" && before == display {
			c.input.SetValue("")
		}
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	if c.input.Value() != before {
		c.dirty = true
		c.refilter()
		c.highlightIndex = 0
		c.scrollOffset = 0
	}
	return c, cmd
}

func (c ComboBox) handleMouse(msg tea.MouseMsg) (ComboBox, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return c, nil
	}
	x, y := msg.X-c.originX, msg.Y-c.originY
	if !c.Contains(msg.X, msg.Y) {
		if c.state == ComboBoxOpen && c.watcher.active() {
			cmd := c.mode.onOutsideInteraction(&c)
			return c, cmd
		}
		return c, nil
	}

	if y < inputHeight {
		var cmd tea.Cmd
		if !c.focused {
			cmd = c.Focus()
		}
		if c.state == ComboBoxClosed {
			c.openDropdown()
		}
		return c, cmd
	}

	if c.state != ComboBoxOpen {
		return c, nil
	}
	lines := c.dropdownLines()
	idx := y - inputHeight
	if idx >= len(lines) || lines[idx].kind != lineRow {
		return c, nil
	}
	rows := c.rows()
	row := rows[lines[idx].row]
	cmd := c.dispatch(row, c.hitTest(row, x))
	return c, cmd
}

// openDropdown is the only Closed -> Open path.
func (c *ComboBox) openDropdown() {
	if c.state == ComboBoxOpen {
		return
	}
	c.state = ComboBoxOpen
	c.dirty = false
	c.mode.onOpen(c)
	c.watcher.acquire(c.id)
	c.refilter()
	c.highlightCurrentValue()
}

// closeDropdown is the only Open -> Closed path.
func (c *ComboBox) closeDropdown() {
	c.state = ComboBoxClosed
	c.dirty = false
	c.watcher.release()
	c.filtered = c.options
	c.highlightIndex = 0
	c.scrollOffset = 0
}

// abandonEdit closes without a commit and shows the committed label again.
func (c *ComboBox) abandonEdit() {
	c.closeDropdown()
	c.input.SetValue(c.mode.resolveDisplay(c))
}

func (c *ComboBox) emitChange(value, reason string) tea.Cmd {
	debug.Debug("picker change",
		zap.String("picker", c.id),
		zap.String("mode", c.mode.Name()),
		zap.String("reason", reason),
		zap.String("value", value),
	)
	if c.handlers.OnChange == nil {
		return nil
	}
	return c.handlers.OnChange(value)
}

// rows lists the selectable dropdown lines: the create row (when a
// candidate exists) followed by the filtered options.
func (c ComboBox) rows() []dropdownRow {
	rows := make([]dropdownRow, 0, len(c.filtered)+1)
	if text, ok := c.mode.candidate(&c); ok {
		rows = append(rows, dropdownRow{kind: rowCreate, text: text})
	}
	for _, opt := range c.filtered {
		rows = append(rows, dropdownRow{kind: rowOption, option: opt})
	}
	return rows
}

func (c *ComboBox) refilter() {
	c.filtered = FilterOptions(c.options, c.mode.query(c))
}

func (c *ComboBox) highlightCurrentValue() {
	c.highlightIndex = 0
	c.scrollOffset = 0
	for i, row := range c.rows() {
		if row.kind == rowOption && row.option.ID == c.value {
			c.highlightIndex = i
			c.adjustScrollOffset()
			return
		}
	}
}

func (c *ComboBox) moveHighlight(delta int) {
	n := len(c.rows())
	if n == 0 {
		return
	}
	next := c.highlightIndex + delta
	if next < 0 || next >= n {
		return
	}
	c.highlightIndex = next
	c.adjustScrollOffset()
}

// adjustScrollOffset keeps the highlighted row inside the visible window.
func (c *ComboBox) adjustScrollOffset() {
	if c.highlightIndex < c.scrollOffset {
		c.scrollOffset = c.highlightIndex
	}
	if c.highlightIndex >= c.scrollOffset+c.MaxVisible {
		c.scrollOffset = c.highlightIndex - c.MaxVisible + 1
	}
	maxOffset := len(c.rows()) - c.MaxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if c.scrollOffset > maxOffset {
		c.scrollOffset = maxOffset
	}
	if c.scrollOffset < 0 {
		c.scrollOffset = 0
	}
}

// resync re-derives the buffer from value and options unless the user is
// mid-edit.
func (c *ComboBox) resync() {
	if c.state == ComboBoxOpen {
		if c.dirty || !c.mode.resyncWhileOpen() {
			c.refilter()
			c.clampHighlight()
			return
		}
	}
	c.input.SetValue(c.mode.resolveDisplay(c))
	if c.state == ComboBoxOpen {
		c.refilter()
		c.clampHighlight()
	} else {
		c.filtered = c.options
	}
}

func (c *ComboBox) clampHighlight() {
	n := len(c.rows())
	if c.highlightIndex >= n {
		c.highlightIndex = n - 1
	}
	if c.highlightIndex < 0 {
		c.highlightIndex = 0
	}
	c.adjustScrollOffset()
}

// SetValue replaces the externally owned value.
func (c *ComboBox) SetValue(v string) {
	c.value = v
	c.resync()
}

// SetOptions replaces the externally owned options.
func (c *ComboBox) SetOptions(opts []Option) {
	c.options = opts
	c.resync()
}

// SetOrigin records the screen cell of the control's top-left corner, used to
// hit-test pointer presses.
func (c *ComboBox) SetOrigin(x, y int) {
	c.originX = x
	c.originY = y
}

// Origin returns the screen cell set by SetOrigin.
func (c ComboBox) Origin() (int, int) {
	return c.originX, c.originY
}

// Contains reports whether the screen cell x,y falls inside the control,
// including an open dropdown.
func (c ComboBox) Contains(x, y int) bool {
	x -= c.originX
	y -= c.originY
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height()
}

// Focus focuses the picker, opens the dropdown and returns a blink command.
func (c *ComboBox) Focus() tea.Cmd {
	c.focused = true
	cmd := c.input.Focus()
	c.openDropdown()
	return cmd
}

// Blur is a loss of focus: an open dropdown closes through the
// outside-interaction path, which may commit in creatable mode.
func (c *ComboBox) Blur() tea.Cmd {
	var cmd tea.Cmd
	if c.state == ComboBoxOpen {
		cmd = c.mode.onOutsideInteraction(c)
	}
	c.focused = false
	c.input.Blur()
	return cmd
}

// Close tears the picker down without emitting anything, releasing its
// pointer subscription. Owners call it when the picker leaves the screen.
func (c *ComboBox) Close() {
	if c.state == ComboBoxOpen {
		c.abandonEdit()
	}
	c.watcher.release()
	c.focused = false
	c.input.Blur()
}

// ID is the picker's identity on its PointerBus.
func (c ComboBox) ID() string {
	return c.id
}

// Value returns the value last supplied by the owner.
func (c ComboBox) Value() string {
	return c.value
}

// Options returns the options last supplied by the owner.
func (c ComboBox) Options() []Option {
	return c.options
}

// Mode returns the picker's select mode.
func (c ComboBox) Mode() SelectMode {
	return c.mode
}

// Label is the text the closed control displays: the resolved name, the
// verbatim value in creatable mode, or the placeholder.
func (c ComboBox) Label() string {
	if display := c.mode.resolveDisplay(&c); display != "" {
		return display
	}
	return c.Placeholder
}

// Focused returns whether the picker is focused.
func (c ComboBox) Focused() bool {
	return c.focused
}

// IsDropdownOpen returns whether the dropdown is currently visible.
func (c ComboBox) IsDropdownOpen() bool {
	return c.state == ComboBoxOpen
}

// State returns the current state for testing.
func (c ComboBox) State() ComboBoxState {
	return c.state
}

// FilteredOptions returns the options currently passing the filter.
func (c ComboBox) FilteredOptions() []Option {
	return c.filtered
}

// HighlightIndex returns the highlighted row for testing.
func (c ComboBox) HighlightIndex() int {
	return c.highlightIndex
}

// InputValue returns the current text buffer.
func (c ComboBox) InputValue() string {
	return c.input.Value()
}

// CreateCandidate returns the text the create row would commit, if shown.
func (c ComboBox) CreateCandidate() (string, bool) {
	if c.state != ComboBoxOpen {
		return "", false
	}
	return c.mode.candidate(&c)
}

// Listening reports whether the picker holds a pointer subscription.
func (c ComboBox) Listening() bool {
	return c.watcher.active()
}
