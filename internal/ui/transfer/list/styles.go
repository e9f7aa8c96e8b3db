package list

import "github.com/charmbracelet/lipgloss"

// Styles contains the style definitions for a panel
type Styles struct {
	Container           lipgloss.Style
	ContainerWithFooter lipgloss.Style
	FocusedBorder       lipgloss.Color
	Header              lipgloss.Style
	Count               lipgloss.Style
	Title               lipgloss.Style
	Separator           lipgloss.Style
	NotFound            lipgloss.Style
	Footer              lipgloss.Style
}

// DefaultStyles returns the stock panel styles
func DefaultStyles() Styles {
	container := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1)

	return Styles{
		Container: container,
		ContainerWithFooter: container.
			BorderForeground(lipgloss.Color("244")),
		FocusedBorder: lipgloss.Color("99"),
		Header:        lipgloss.NewStyle(),
		Count:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Title:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Separator:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		NotFound:      lipgloss.NewStyle().Faint(true).Italic(true),
		Footer:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
