// Package widgets holds the small input primitives the transfer panels are built from.
package widgets

import "github.com/charmbracelet/lipgloss"

// Checkbox is a tri-state checkbox. Indeterminate wins over Checked when both are set.
type Checkbox struct {
	Checked       bool
	Indeterminate bool
	Disabled      bool

	Style         lipgloss.Style
	DisabledStyle lipgloss.Style
}

// NewCheckbox creates a checkbox with the default styles
func NewCheckbox(checked, indeterminate, disabled bool) Checkbox {
	return Checkbox{
		Checked:       checked,
		Indeterminate: indeterminate,
		Disabled:      disabled,
		Style:         lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		DisabledStyle: lipgloss.NewStyle().Faint(true),
	}
}

// Glyph returns the unstyled representation
func (c Checkbox) Glyph() string {
	switch {
	case c.Indeterminate:
		return "[-]"
	case c.Checked:
		return "[x]"
	default:
		return "[ ]"
	}
}

// View renders the checkbox
func (c Checkbox) View() string {
	if c.Disabled {
		return c.DisabledStyle.Render(c.Glyph())
	}
	return c.Style.Render(c.Glyph())
}

// Toggle calls onToggle unless the checkbox is disabled. It reports whether the toggle was emitted.
func (c Checkbox) Toggle(onToggle func()) bool {
	if c.Disabled || onToggle == nil {
		return false
	}
	onToggle()
	return true
}
