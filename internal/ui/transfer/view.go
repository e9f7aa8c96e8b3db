package transfer

import (
	"github.com/charmbracelet/lipgloss"

	"shuttle/internal/domain"
)

var (
	operationActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	operationDim    = lipgloss.NewStyle().Faint(true)
)

// View renders both panels with the move buttons between them
func (t *Transfer) View() string {
	left := t.panels[domain.DirectionLeft].View()
	right := t.panels[domain.DirectionRight].View()

	ops := lipgloss.NewStyle().
		Padding(0, 1).
		Height(lipgloss.Height(left)).
		AlignVertical(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center,
			t.operation("[ > ]", domain.DirectionRight),
			"",
			t.operation("[ < ]", domain.DirectionLeft),
		))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, ops, right)
}

func (t *Transfer) operation(label string, to domain.Direction) string {
	if t.opts.Disabled || len(t.Movable(to)) == 0 {
		return operationDim.Render(label)
	}
	return operationActive.Render(label)
}
