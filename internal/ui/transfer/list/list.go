// Package list implements one panel of a transfer selector.
//
// A panel is a view over caller-owned data. Items, checked keys and the filter
// text come in through Props on every SetProps, and every interaction is
// reported back through the Props callbacks. The panel never updates its own
// selection; the owner pushes new Props instead.
package list

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shuttle/internal/domain"
	"shuttle/internal/ui/rows"
	"shuttle/internal/ui/widgets"
)

const (
	DefaultHeight = 12
	DefaultWidth  = 34
)

// RenderContext is what body overrides receive
type RenderContext struct {
	Direction domain.Direction
	Items     []domain.Item // items passing the filter
	Checked   []string
	Filter    string
	Disabled  bool
	Mounted   bool
	Width     int
	Height    int
	OnSelect  func(domain.Item)
}

// Props is the panel's inbound state and outbound callbacks
type Props struct {
	Direction domain.Direction
	Items     []domain.Item
	Checked   []string
	Filter    string
	Matcher   Matcher

	Render     func(domain.Item) string
	Body       func(RenderContext) string
	RenderList func(RenderContext) string
	Footer     func(Props) string

	Disabled bool
	Style    lipgloss.Style

	Title             string
	SearchPlaceholder string
	NotFound          string
	ItemUnit          string
	ItemsUnit         string

	ShowSearch bool
	Lazy       bool
	Focused    bool
	Width      int
	Height     int

	OnFilter    func(value string)
	OnClear     func()
	OnSelect    func(item domain.Item, checked bool)
	OnSelectAll func(eligible []domain.Item, checkAll bool)
	OnScroll    func(rows.ScrollMsg)
}

// Option configures a Model
type Option func(*Model)

// WithDelay sets how long deferred tasks wait before firing
func WithDelay(d time.Duration) Option {
	return func(m *Model) { m.delay = d }
}

// WithLogger sets the panel logger
func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// Model is a single transfer panel
type Model struct {
	id    string
	props Props
	// membership lookup for props.Checked, rebuilt on every SetProps
	checked map[string]struct{}

	mounted   bool
	destroyed bool
	delay     time.Duration
	scheduler *Scheduler

	search widgets.Search
	rows   *rows.Model
	styles Styles
	log    zerolog.Logger
}

// New creates a panel. Call Init to start its mount timer.
func New(props Props, opts ...Option) *Model {
	m := &Model{
		id:     uuid.NewString(),
		styles: DefaultStyles(),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With().Str("list", m.id).Str("direction", string(props.Direction)).Logger()
	m.scheduler = NewScheduler(m.id, m.delay)
	m.search = widgets.NewSearch(props.SearchPlaceholder)
	m.SetProps(props)
	return m
}

// ID identifies the panel in TaskFiredMsg
func (m *Model) ID() string {
	return m.id
}

// Props returns the props of the last SetProps
func (m *Model) Props() Props {
	return m.props
}

// SetProps replaces the panel props
func (m *Model) SetProps(props Props) {
	if props.Height <= 0 {
		props.Height = DefaultHeight
	}
	if props.Width <= 0 {
		props.Width = DefaultWidth
	}
	m.props = props

	m.checked = make(map[string]struct{}, len(props.Checked))
	for _, key := range props.Checked {
		m.checked[key] = struct{}{}
	}

	m.search.SetValue(props.Filter)
	m.search.SetPlaceholder(props.SearchPlaceholder)
	m.search.SetWidth(m.innerWidth() - 2)
	m.search.SetDisabled(props.Disabled)

	m.syncRows()
}

func (m *Model) syncRows() {
	height := m.bodyHeight(m.footer())
	if m.props.ShowSearch {
		height--
	}
	if height < 1 {
		height = 1
	}

	cfg := rows.Config{
		Items:    m.props.Items,
		Match:    m.matches,
		Checked:  m.isChecked,
		Render:   m.props.Render,
		OnSelect: m.HandleSelect,
		OnScroll: m.props.OnScroll,
		Mounted:  m.mounted,
		Disabled: m.props.Disabled,
		Lazy:     m.props.Lazy,
		Focused:  m.props.Focused,
		Height:   height,
		Width:    m.innerWidth(),
	}
	if m.rows == nil {
		m.rows = rows.New(cfg)
		return
	}
	m.rows.SetConfig(cfg)
}

// Init schedules the mount task
func (m *Model) Init() tea.Cmd {
	task := m.scheduler.Schedule(TaskMount)
	return task.Cmd
}

// Update handles task messages addressed to this panel and forwards navigation to the row renderer
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TaskFiredMsg:
		if msg.ListID != m.id {
			return nil
		}
		return m.handleTask(msg)

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.UpdateSearch(msg)
		}
		if region, ok := m.scrollRegion(); ok {
			region.Update(msg)
		}

	case rows.ScrollMsg, tea.MouseMsg:
		if region, ok := m.scrollRegion(); ok {
			region.Update(msg)
		}
	}
	return nil
}

func (m *Model) handleTask(msg TaskFiredMsg) tea.Cmd {
	if m.destroyed || !m.scheduler.Complete(msg.TaskID) {
		m.log.Debug().Uint64("task", msg.TaskID).Msg("ignoring stale task")
		return nil
	}

	switch msg.Kind {
	case TaskMount:
		m.mounted = true
		m.syncRows()
	case TaskScrollReplay:
		region, ok := m.scrollRegion()
		if !ok {
			m.log.Debug().Msg("no scroll region, skipping scroll replay")
			return nil
		}
		region.Update(rows.ScrollMsg{Synthetic: true})
	}
	return nil
}

// scrollRegion returns the row renderer when it is the active body
func (m *Model) scrollRegion() (*rows.Model, bool) {
	if m.rows == nil || m.props.Body != nil || m.props.RenderList != nil {
		return nil, false
	}
	return m.rows, true
}

// UpdateSearch feeds a message to the search input and reports edits to the owner
func (m *Model) UpdateSearch(msg tea.Msg) tea.Cmd {
	ev, cmd := m.search.Update(msg)
	switch ev.Kind {
	case widgets.SearchChange:
		return tea.Batch(cmd, m.HandleFilter(ev.Value))
	case widgets.SearchClear:
		m.HandleClear()
	}
	return cmd
}

// FocusSearch moves keyboard focus to the search input
func (m *Model) FocusSearch() tea.Cmd {
	return m.search.Focus()
}

// BlurSearch removes keyboard focus from the search input
func (m *Model) BlurSearch() {
	m.search.Blur()
}

// SearchFocused reports whether the search input has focus
func (m *Model) SearchFocused() bool {
	return m.search.Focused()
}

// HandleFilter reports a filter edit and, for non-empty values, schedules a scroll
// replay so a lazy row renderer measures the new row count.
func (m *Model) HandleFilter(value string) tea.Cmd {
	if m.destroyed {
		return nil
	}
	if m.props.OnFilter != nil {
		m.props.OnFilter(value)
	}
	if value == "" {
		return nil
	}

	task := m.scheduler.Schedule(TaskScrollReplay)
	m.log.Debug().Uint64("task", task.ID).Str("filter", value).Msg("scheduled scroll replay")
	return task.Cmd
}

// HandleClear reports that the filter was cleared
func (m *Model) HandleClear() {
	if m.destroyed || m.props.OnClear == nil {
		return
	}
	m.props.OnClear()
}

// HandleSelect asks the owner to flip the item's checked state
func (m *Model) HandleSelect(item domain.Item) {
	if m.destroyed || m.props.OnSelect == nil || m.props.Disabled || item.Disabled {
		return
	}
	m.props.OnSelect(item, !m.isChecked(item.Key))
}

// HandleSelectAll asks the owner to check every eligible item, or uncheck them all
// when they are already all checked.
func (m *Model) HandleSelectAll() {
	if m.destroyed || m.props.OnSelectAll == nil {
		return
	}
	eligible := m.Eligible()
	status := ResolveStatus(eligible, m.props.Checked)
	m.checkbox(status).Toggle(func() {
		m.props.OnSelectAll(eligible, status == domain.CheckAll)
	})
}

// Navigate moves the row cursor even while the search input has focus
func (m *Model) Navigate(msg tea.KeyMsg) {
	if region, ok := m.scrollRegion(); ok {
		region.Update(msg)
	}
}

// HandleSelectCurrent toggles the item under the row cursor
func (m *Model) HandleSelectCurrent() {
	region, ok := m.scrollRegion()
	if !ok {
		return
	}
	if item, ok := region.Current(); ok {
		m.HandleSelect(item)
	}
}

// Filtered returns the items passing the filter, disabled ones included
func (m *Model) Filtered() []domain.Item {
	out := make([]domain.Item, 0, len(m.props.Items))
	for _, item := range m.props.Items {
		if m.matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// Eligible returns the items that bulk selection applies to
func (m *Model) Eligible() []domain.Item {
	out := make([]domain.Item, 0, len(m.props.Items))
	for _, item := range m.props.Items {
		if !item.Disabled && m.matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// Status returns the aggregate selection state
func (m *Model) Status() domain.CheckStatus {
	return ResolveStatus(m.Eligible(), m.props.Checked)
}

// Mounted reports whether the mount task has fired
func (m *Model) Mounted() bool {
	return m.mounted
}

// Pending returns the number of deferred tasks still outstanding
func (m *Model) Pending() int {
	return m.scheduler.Pending()
}

// Destroy cancels all deferred tasks. The panel ignores callbacks afterwards.
func (m *Model) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	pending := m.scheduler.Pending()
	m.scheduler.CancelAll()
	m.log.Debug().Int("cancelled", pending).Msg("panel destroyed")
}

func (m *Model) matches(item domain.Item) bool {
	return MatchFilter(m.props.Filter, item, m.props.Matcher, m.props.Render)
}

func (m *Model) isChecked(key string) bool {
	_, ok := m.checked[key]
	return ok
}

func (m *Model) checkbox(status domain.CheckStatus) widgets.Checkbox {
	return widgets.NewCheckbox(status == domain.CheckAll, status == domain.CheckPart, m.props.Disabled)
}
