package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"shuttle/internal/domain"
	"shuttle/internal/ui/input/types"
)

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyEsc:
		if ctx.FilterActive() {
			return []types.Action{types.ClearFilterAction{}}, true
		}
		return nil, false

	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown, tea.KeyHome, tea.KeyEnd:
		return []types.Action{types.NavigateAction{Key: msg}}, true

	case tea.KeyTab, tea.KeyShiftTab:
		return []types.Action{types.SwitchPanelAction{}}, true

	case tea.KeyEnter:
		return []types.Action{types.AcceptAction{}}, true

	case tea.KeySpace:
		return []types.Action{types.ToggleAction{}}, true
	}

	// Handle string keys
	switch msg.String() {
	case "j", "k", "g", "G":
		return []types.Action{types.NavigateAction{Key: msg}}, true

	case "a", "A":
		return []types.Action{types.SelectAllAction{}}, true

	case ">", "l":
		if ctx.CanMove(domain.DirectionRight) {
			return []types.Action{types.MoveAction{To: domain.DirectionRight}}, true
		}
		return nil, true

	case "<", "h":
		if ctx.CanMove(domain.DirectionLeft) {
			return []types.Action{types.MoveAction{To: domain.DirectionLeft}}, true
		}
		return nil, true

	case "/", "f":
		if ctx.SearchEnabled() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter}}, true
		}
		return nil, false

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	return nil, false
}
