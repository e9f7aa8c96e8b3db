// Package transfer hosts the two list panels of a transfer selector.
//
// Transfer owns everything the panels only read: the target keys, the checked
// keys of each side and the filter text of each side. Panels report user
// interactions through their Props callbacks, Transfer applies them and pushes
// fresh Props back.
package transfer

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"shuttle/internal/config"
	"shuttle/internal/domain"
	"shuttle/internal/eventbus"
	"shuttle/internal/ui/rows"
	"shuttle/internal/ui/services/filter"
	"shuttle/internal/ui/services/selection"
	"shuttle/internal/ui/transfer/list"
)

// Options holds the presentation settings shared by both panels
type Options struct {
	Titles            [2]string
	ItemUnit          string
	ItemsUnit         string
	SearchPlaceholder string
	NotFound          string
	ShowSearch        bool
	ShowFooter        bool
	Lazy              bool
	Disabled          bool
	Width             int
	Height            int
	Delay             time.Duration
	Matcher           list.Matcher
	Render            func(domain.Item) string
}

// OptionsFromConfig maps the config file settings onto panel options
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{
		ItemUnit:          cfg.Units.Item,
		ItemsUnit:         cfg.Units.Items,
		SearchPlaceholder: cfg.Search.Placeholder,
		NotFound:          cfg.Search.NotFound,
		ShowSearch:        cfg.Search.Enabled,
		ShowFooter:        cfg.UISettings.ShowFooter,
		Lazy:              cfg.List.Lazy,
		Width:             cfg.List.Width,
		Height:            cfg.List.Height,
		Delay:             cfg.List.Defer(),
	}
	if len(cfg.Titles) > 0 {
		opts.Titles[0] = cfg.Titles[0]
	}
	if len(cfg.Titles) > 1 {
		opts.Titles[1] = cfg.Titles[1]
	}
	if cfg.List.ShowDescription {
		opts.Render = describeItem
	}
	if cfg.Search.Match == config.MatchFold {
		opts.Matcher = list.FoldMatcher{Text: opts.Render}
	}
	return opts
}

// describeItem renders the display text followed by the description, when there is one
func describeItem(item domain.Item) string {
	if item.Description == "" {
		return item.DisplayText()
	}
	return item.DisplayText() + " - " + item.Description
}

// Transfer is the host container of a left and a right panel
type Transfer struct {
	items      []domain.Item
	byKey      map[string]domain.Item
	targetKeys []string

	selections map[domain.Direction]*selection.Service
	filters    *filter.Service
	panels     map[domain.Direction]*list.Model
	focus      domain.Direction

	opts  Options
	moves uint64
	bus   eventbus.EventBus
	log   zerolog.Logger
}

// New creates a transfer over items. Target keys that name no item are dropped.
func New(items []domain.Item, targetKeys []string, opts Options, bus eventbus.EventBus, logger zerolog.Logger) *Transfer {
	t := &Transfer{
		items:      items,
		byKey:      make(map[string]domain.Item, len(items)),
		selections: make(map[domain.Direction]*selection.Service, 2),
		filters:    filter.NewService(bus),
		panels:     make(map[domain.Direction]*list.Model, 2),
		focus:      domain.DirectionLeft,
		opts:       opts,
		bus:        bus,
		log:        logger.With().Str("component", "transfer").Logger(),
	}
	for _, item := range items {
		t.byKey[item.Key] = item
	}

	seen := make(map[string]bool, len(targetKeys))
	for _, key := range targetKeys {
		if _, ok := t.byKey[key]; !ok {
			t.log.Warn().Str("key", key).Msg("dropping unknown target key")
			continue
		}
		if !seen[key] {
			seen[key] = true
			t.targetKeys = append(t.targetKeys, key)
		}
	}

	for _, dir := range []domain.Direction{domain.DirectionLeft, domain.DirectionRight} {
		t.selections[dir] = selection.NewService(dir, bus)
		t.panels[dir] = list.New(t.Props(dir),
			list.WithDelay(opts.Delay),
			list.WithLogger(logger),
		)
	}
	return t
}

// Init starts the mount timers of both panels
func (t *Transfer) Init() tea.Cmd {
	return tea.Batch(t.panels[domain.DirectionLeft].Init(), t.panels[domain.DirectionRight].Init())
}

// Update routes panel task messages and sends input to the focused panel
func (t *Transfer) Update(msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case list.TaskFiredMsg:
		return tea.Batch(t.panels[domain.DirectionLeft].Update(msg), t.panels[domain.DirectionRight].Update(msg))
	default:
		return t.panels[t.focus].Update(msg)
	}
}

// Items returns the items of one side in display order
func (t *Transfer) Items(dir domain.Direction) []domain.Item {
	if dir == domain.DirectionRight {
		out := make([]domain.Item, 0, len(t.targetKeys))
		for _, key := range t.targetKeys {
			out = append(out, t.byKey[key])
		}
		return out
	}

	target := t.targetSet()
	out := make([]domain.Item, 0, len(t.items)-len(t.targetKeys))
	for _, item := range t.items {
		if !target[item.Key] {
			out = append(out, item)
		}
	}
	return out
}

// Props builds the panel props for one side
func (t *Transfer) Props(dir domain.Direction) list.Props {
	title := t.opts.Titles[0]
	if dir == domain.DirectionRight {
		title = t.opts.Titles[1]
	}

	props := list.Props{
		Direction:         dir,
		Items:             t.Items(dir),
		Checked:           t.selections[dir].Keys(),
		Filter:            t.filters.Query(dir),
		Matcher:           t.opts.Matcher,
		Render:            t.opts.Render,
		Disabled:          t.opts.Disabled,
		Title:             title,
		SearchPlaceholder: t.opts.SearchPlaceholder,
		NotFound:          t.opts.NotFound,
		ItemUnit:          t.opts.ItemUnit,
		ItemsUnit:         t.opts.ItemsUnit,
		ShowSearch:        t.opts.ShowSearch,
		Lazy:              t.opts.Lazy,
		Focused:           dir == t.focus,
		Width:             t.opts.Width,
		Height:            t.opts.Height,

		OnFilter:    func(value string) { t.Filter(dir, value) },
		OnClear:     func() { t.ClearFilter(dir) },
		OnSelect:    func(item domain.Item, checked bool) { t.Select(dir, item, checked) },
		OnSelectAll: func(eligible []domain.Item, checkAll bool) { t.SelectAll(dir, eligible, checkAll) },
		OnScroll: func(msg rows.ScrollMsg) {
			t.log.Trace().Str("direction", string(dir)).Int("delta", msg.Delta).Bool("synthetic", msg.Synthetic).Msg("scroll")
		},
	}
	if t.opts.ShowFooter {
		props.Footer = filterFooter
	}
	return props
}

func filterFooter(p list.Props) string {
	if p.Filter == "" {
		return ""
	}
	return fmt.Sprintf("filter: %q", p.Filter)
}

// Select checks or unchecks one item
func (t *Transfer) Select(dir domain.Direction, item domain.Item, checked bool) {
	t.selections[dir].Set(item.Key, checked)
	t.refresh()
}

// SelectAll checks every eligible item, or unchecks them when checkAll reports they were all checked
func (t *Transfer) SelectAll(dir domain.Direction, eligible []domain.Item, checkAll bool) {
	keys := make([]string, 0, len(eligible))
	for _, item := range eligible {
		keys = append(keys, item.Key)
	}
	if checkAll {
		t.selections[dir].Remove(keys...)
	} else {
		t.selections[dir].Add(keys...)
	}
	t.refresh()
}

// Filter sets the filter text of one side
func (t *Transfer) Filter(dir domain.Direction, value string) {
	if t.filters.Set(dir, value) {
		t.refresh()
	}
}

// ClearFilter empties the filter text of one side
func (t *Transfer) ClearFilter(dir domain.Direction) {
	if t.filters.Clear(dir) {
		t.refresh()
	}
}

// Movable returns the checked keys of the side opposite to dir that can move to dir
func (t *Transfer) Movable(to domain.Direction) []string {
	var keys []string
	for _, key := range t.selections[to.Opposite()].Keys() {
		if item, ok := t.byKey[key]; ok && !item.Disabled {
			keys = append(keys, key)
		}
	}
	return keys
}

// MoveTo moves the checked items of the opposite side to dir. It returns the moved keys.
func (t *Transfer) MoveTo(to domain.Direction) []string {
	if t.opts.Disabled {
		return nil
	}
	keys := t.Movable(to)
	if len(keys) == 0 {
		return nil
	}

	if to == domain.DirectionRight {
		target := t.targetSet()
		for _, key := range keys {
			if !target[key] {
				t.targetKeys = append(t.targetKeys, key)
			}
		}
	} else {
		moving := make(map[string]bool, len(keys))
		for _, key := range keys {
			moving[key] = true
		}
		kept := t.targetKeys[:0:0]
		for _, key := range t.targetKeys {
			if !moving[key] {
				kept = append(kept, key)
			}
		}
		t.targetKeys = kept
	}

	from := to.Opposite()
	remaining := make(map[string]bool)
	for _, item := range t.Items(from) {
		remaining[item.Key] = true
	}
	t.selections[from].Retain(func(key string) bool { return remaining[key] })

	t.moves++
	t.log.Info().Str("to", string(to)).Strs("keys", keys).Uint64("seq", t.moves).Msg("moved items")
	if t.bus != nil {
		t.bus.Publish(eventbus.ItemsMovedEvent{To: to, Keys: keys, TargetKeys: t.TargetKeys(), Seq: t.moves})
	}
	t.refresh()
	t.remeasure()
	return keys
}

// CheckedCount returns the number of checked keys on one side
func (t *Transfer) CheckedCount(dir domain.Direction) int {
	return t.selections[dir].Count()
}

// FilterActive reports whether one side has filter text
func (t *Transfer) FilterActive(dir domain.Direction) bool {
	return t.filters.Active(dir)
}

// TargetKeys returns a copy of the keys on the right side
func (t *Transfer) TargetKeys() []string {
	out := make([]string, len(t.targetKeys))
	copy(out, t.targetKeys)
	return out
}

// Panel returns the panel of one side
func (t *Transfer) Panel(dir domain.Direction) *list.Model {
	return t.panels[dir]
}

// Focused returns the side that receives input
func (t *Transfer) Focused() domain.Direction {
	return t.focus
}

// Focus moves input to one side
func (t *Transfer) Focus(dir domain.Direction) {
	if t.focus == dir {
		return
	}
	t.panels[t.focus].BlurSearch()
	t.focus = dir
	t.refresh()
}

// ToggleFocus moves input to the other side
func (t *Transfer) ToggleFocus() {
	t.Focus(t.focus.Opposite())
}

// Resize sets the panel size
func (t *Transfer) Resize(width, height int) {
	t.opts.Width = width
	t.opts.Height = height
	t.refresh()
}

// Destroy cancels the deferred work of both panels
func (t *Transfer) Destroy() {
	for _, panel := range t.panels {
		panel.Destroy()
	}
}

func (t *Transfer) refresh() {
	for dir, panel := range t.panels {
		panel.SetProps(t.Props(dir))
	}
}

// remeasure makes lazy row renderers fit their window to the new item count
func (t *Transfer) remeasure() {
	for _, panel := range t.panels {
		panel.Update(rows.ScrollMsg{Synthetic: true})
	}
}

func (t *Transfer) targetSet() map[string]bool {
	set := make(map[string]bool, len(t.targetKeys))
	for _, key := range t.targetKeys {
		set[key] = true
	}
	return set
}
