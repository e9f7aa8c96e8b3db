package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"shuttle/internal/ui/input/types"
)

// FilterMode sends typed keys to the focused panel's search input
type FilterMode struct{}

func NewFilterMode() *FilterMode {
	return &FilterMode{}
}

func (m *FilterMode) Name() string {
	return "filter"
}

func (m *FilterMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *FilterMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *FilterMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyEsc:
		// Clear and return to normal mode
		return []types.Action{
			types.ClearFilterAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case tea.KeyEnter, tea.KeyTab:
		// Keep the filter
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true

	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Key: msg}}, true
	}

	return []types.Action{types.FilterInputAction{Key: msg}}, true
}
