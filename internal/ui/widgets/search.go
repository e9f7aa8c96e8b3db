package widgets

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SearchEventKind tells what a search input interaction produced
type SearchEventKind int

const (
	SearchNone SearchEventKind = iota
	SearchChange
	SearchClear
)

// SearchEvent is emitted by Search.Update
type SearchEvent struct {
	Kind  SearchEventKind
	Value string
}

// Search is a single-line search input. Its value is owned by the caller and
// pushed in with SetValue; edits are reported back as events.
type Search struct {
	input    textinput.Model
	disabled bool
}

// NewSearch creates a search input with the given placeholder
func NewSearch(placeholder string) Search {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = placeholder
	return Search{input: ti}
}

// SetValue syncs the displayed text with the caller's value
func (s *Search) SetValue(v string) {
	if s.input.Value() != v {
		s.input.SetValue(v)
	}
}

// Value returns the displayed text
func (s *Search) Value() string {
	return s.input.Value()
}

// SetPlaceholder updates the placeholder text
func (s *Search) SetPlaceholder(p string) {
	s.input.Placeholder = p
}

// SetWidth limits the visible input width
func (s *Search) SetWidth(w int) {
	s.input.Width = w
}

// SetDisabled blocks edits while true
func (s *Search) SetDisabled(disabled bool) {
	s.disabled = disabled
	if disabled {
		s.input.Blur()
	}
}

// Focus gives the input keyboard focus
func (s *Search) Focus() tea.Cmd {
	if s.disabled {
		return nil
	}
	return s.input.Focus()
}

// Blur removes keyboard focus
func (s *Search) Blur() {
	s.input.Blur()
}

// Focused reports whether the input has focus
func (s *Search) Focused() bool {
	return s.input.Focused()
}

// Update handles input and reports a change or clear event
func (s *Search) Update(msg tea.Msg) (SearchEvent, tea.Cmd) {
	if s.disabled {
		return SearchEvent{}, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		return SearchEvent{Kind: SearchClear}, nil
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if after := s.input.Value(); after != before {
		return SearchEvent{Kind: SearchChange, Value: after}, cmd
	}
	return SearchEvent{}, cmd
}

// View renders the input
func (s Search) View() string {
	return s.input.View()
}
