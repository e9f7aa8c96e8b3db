// Package rows implements the lazy row renderer used inside transfer panels.
//
// Only the measured window of rows is rendered. In lazy mode the window is
// measured when the user scrolls or navigates, or on a ScrollMsg, and not when
// the item set changes. A caller that shrinks the set has to send a ScrollMsg
// to get the window measured again.
package rows

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shuttle/internal/domain"
	"shuttle/internal/ui/widgets"
)

// ScrollMsg asks the renderer to move its window by Delta rows and re-measure.
// Synthetic marks scrolls that were not caused by the user.
type ScrollMsg struct {
	Delta     int
	Synthetic bool
}

// Config is everything the renderer needs from its owner. It is replaced as a whole on every SetConfig.
type Config struct {
	Items    []domain.Item
	Match    func(domain.Item) bool
	Checked  func(key string) bool
	Render   func(domain.Item) string
	OnSelect func(domain.Item)
	OnScroll func(ScrollMsg)

	Mounted  bool // rows that newly match are highlighted once mounted
	Disabled bool
	Lazy     bool
	Focused  bool
	Height   int
	Width    int
}

// Styles for row rendering
type Styles struct {
	Row       lipgloss.Style
	Cursor    lipgloss.Style
	Disabled  lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles returns the stock row styles
func DefaultStyles() Styles {
	return Styles{
		Row:       lipgloss.NewStyle(),
		Cursor:    lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Disabled:  lipgloss.NewStyle().Faint(true),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	}
}

// Model is the lazy row renderer
type Model struct {
	cfg     Config
	styles  Styles
	visible []domain.Item

	cursor int
	offset int

	// measured window, [from, to)
	from int
	to   int

	seen  map[string]bool
	fresh map[string]bool
}

// New creates a renderer and measures its first window
func New(cfg Config) *Model {
	m := &Model{
		styles: DefaultStyles(),
		seen:   make(map[string]bool),
		fresh:  make(map[string]bool),
	}
	m.apply(cfg)
	m.measure()
	return m
}

// SetConfig replaces the configuration. Non-lazy renderers re-measure immediately;
// lazy ones only when the height changed.
func (m *Model) SetConfig(cfg Config) {
	resized := cfg.Height != m.cfg.Height
	m.apply(cfg)
	if !cfg.Lazy || resized {
		m.measure()
	}
}

func (m *Model) apply(cfg Config) {
	if cfg.Height <= 0 {
		cfg.Height = 1
	}
	m.cfg = cfg

	m.visible = make([]domain.Item, 0, len(cfg.Items))
	for _, item := range cfg.Items {
		if cfg.Match == nil || cfg.Match(item) {
			m.visible = append(m.visible, item)
		}
	}

	fresh := make(map[string]bool)
	seen := make(map[string]bool, len(m.visible))
	for _, item := range m.visible {
		seen[item.Key] = true
		if cfg.Mounted && !m.seen[item.Key] {
			fresh[item.Key] = true
		}
	}
	m.seen = seen
	m.fresh = fresh

	m.clampCursor()
}

func (m *Model) clampCursor() {
	switch {
	case len(m.visible) == 0:
		m.cursor = 0
	case m.cursor >= len(m.visible):
		m.cursor = len(m.visible) - 1
	case m.cursor < 0:
		m.cursor = 0
	}
}

// measure recomputes the window from the offset and the current rows
func (m *Model) measure() {
	maxOffset := len(m.visible) - m.cfg.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}

	m.from = m.offset
	m.to = m.offset + m.cfg.Height
	if m.to > len(m.visible) {
		m.to = len(m.visible)
	}
}

// Init is required for tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles navigation, selection and scroll messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ScrollMsg:
		m.scroll(msg)

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll(ScrollMsg{Delta: -1})
		case tea.MouseButtonWheelDown:
			m.scroll(ScrollMsg{Delta: 1})
		}

	case tea.KeyMsg:
		m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) scroll(msg ScrollMsg) {
	m.offset += msg.Delta
	m.measure()

	// Keep the cursor inside the window
	if m.to > m.from {
		if m.cursor < m.from {
			m.cursor = m.from
		} else if m.cursor >= m.to {
			m.cursor = m.to - 1
		}
	}

	if m.cfg.OnScroll != nil {
		m.cfg.OnScroll(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	if len(m.visible) == 0 {
		return
	}

	switch msg.String() {
	case "up", "k":
		m.moveCursor(m.cursor - 1)
	case "down", "j":
		m.moveCursor(m.cursor + 1)
	case "pgup":
		m.moveCursor(m.cursor - m.cfg.Height)
	case "pgdown":
		m.moveCursor(m.cursor + m.cfg.Height)
	case "home", "g":
		m.moveCursor(0)
	case "end", "G":
		m.moveCursor(len(m.visible) - 1)
	case " ", "enter":
		m.selectCurrent()
	}
}

func (m *Model) moveCursor(to int) {
	m.cursor = to
	m.clampCursor()

	before := m.offset
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if m.cursor >= m.offset+m.cfg.Height {
		m.offset = m.cursor - m.cfg.Height + 1
	}
	m.measure()

	if delta := m.offset - before; delta != 0 && m.cfg.OnScroll != nil {
		m.cfg.OnScroll(ScrollMsg{Delta: delta})
	}
}

func (m *Model) selectCurrent() {
	item, ok := m.Current()
	if !ok || item.Disabled || m.cfg.Disabled || m.cfg.OnSelect == nil {
		return
	}
	m.cfg.OnSelect(item)
}

// View renders the measured window
func (m *Model) View() string {
	if m.from >= len(m.visible) || m.from >= m.to {
		return ""
	}
	to := m.to
	if to > len(m.visible) {
		to = len(m.visible)
	}

	lines := make([]string, 0, to-m.from)
	for i := m.from; i < to; i++ {
		lines = append(lines, m.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(i int) string {
	item := m.visible[i]

	checked := m.cfg.Checked != nil && m.cfg.Checked(item.Key)
	disabled := item.Disabled || m.cfg.Disabled
	box := widgets.NewCheckbox(checked, false, disabled)

	text := item.DisplayText()
	if m.cfg.Render != nil {
		text = m.cfg.Render(item)
	}

	style := m.styles.Row
	switch {
	case disabled:
		style = m.styles.Disabled
	case m.fresh[item.Key]:
		style = m.styles.Highlight
	}

	line := box.Glyph() + " " + text
	if m.cfg.Width > 0 {
		style = style.MaxWidth(m.cfg.Width)
	}
	if m.cfg.Focused && i == m.cursor {
		style = style.Inherit(m.styles.Cursor)
	}
	return style.Render(line)
}

// Visible returns the rows that pass the filter predicate
func (m *Model) Visible() []domain.Item {
	return m.visible
}

// Current returns the item under the cursor
func (m *Model) Current() (domain.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return domain.Item{}, false
	}
	return m.visible[m.cursor], true
}

// Cursor returns the cursor index into Visible
func (m *Model) Cursor() int {
	return m.cursor
}

// Offset returns the first row of the requested window
func (m *Model) Offset() int {
	return m.offset
}

// Window returns the measured window as [from, to)
func (m *Model) Window() (int, int) {
	return m.from, m.to
}

// Fresh reports whether the row appeared since the previous configuration
func (m *Model) Fresh(key string) bool {
	return m.fresh[key]
}
