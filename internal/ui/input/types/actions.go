package types

import (
	tea "github.com/charmbracelet/bubbletea"

	"shuttle/internal/domain"
)

// Navigation actions
type NavigateAction struct {
	Key tea.KeyMsg // forwarded to the focused panel's rows
}

func (a NavigateAction) Type() string { return "navigate" }

type SwitchPanelAction struct{}

func (a SwitchPanelAction) Type() string { return "switch_panel" }

// Selection actions
type ToggleAction struct{}

func (a ToggleAction) Type() string { return "toggle" }

type SelectAllAction struct{}

func (a SelectAllAction) Type() string { return "select_all" }

type MoveAction struct {
	To domain.Direction
}

func (a MoveAction) Type() string { return "move" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Filter actions
type FilterInputAction struct {
	Key tea.KeyMsg // forwarded to the focused panel's search input
}

func (a FilterInputAction) Type() string { return "filter_input" }

type ClearFilterAction struct{}

func (a ClearFilterAction) Type() string { return "clear_filter" }

// Command actions
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type AcceptAction struct{}

func (a AcceptAction) Type() string { return "accept" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for q
}

func (a QuitAction) Type() string { return "quit" }
