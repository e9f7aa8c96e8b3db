package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap describes the bindings shown in the help bar and the help pager.
// Dispatch itself happens in the input modes.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Page        key.Binding
	Ends        key.Binding
	Toggle      key.Binding
	SelectAll   key.Binding
	MoveRight   key.Binding
	MoveLeft    key.Binding
	Switch      key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	Help        key.Binding
	Accept      key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Page:        key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "page")),
		Ends:        key.NewBinding(key.WithKeys("home", "end", "g", "G"), key.WithHelp("g/G", "top/bottom")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		SelectAll:   key.NewBinding(key.WithKeys("a", "A"), key.WithHelp("a", "select all")),
		MoveRight:   key.NewBinding(key.WithKeys(">", "l"), key.WithHelp(">/l", "move right")),
		MoveLeft:    key.NewBinding(key.WithKeys("<", "h"), key.WithHelp("</h", "move left")),
		Switch:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch panel")),
		Filter:      key.NewBinding(key.WithKeys("/", "f"), key.WithHelp("/", "filter")),
		ClearFilter: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Accept:      key.NewBinding(key.WithKeys("enter", "q"), key.WithHelp("enter/q", "accept")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "abort")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.SelectAll, k.MoveRight, k.MoveLeft, k.Switch, k.Filter, k.Help, k.Accept}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Page, k.Ends, k.Switch},
		{k.Toggle, k.SelectAll, k.MoveRight, k.MoveLeft},
		{k.Filter, k.ClearFilter},
		{k.Help, k.Accept, k.Quit},
	}
}

// helpSections names the FullHelp groups in the help pager
var helpSections = []string{"Navigation", "Selection", "Filter", "Other"}
