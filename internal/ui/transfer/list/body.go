package list

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders header, body and footer. It only reads state, so calling it repeatedly is safe.
func (m *Model) View() string {
	footer := m.footer()
	width := m.innerWidth()

	sections := []string{
		m.header(width),
		m.separator(width),
		m.body(width, m.bodyHeight(footer)),
	}
	if footer != "" {
		sections = append(sections, m.separator(width), m.styles.Footer.Render(footer))
	}

	container := m.styles.Container
	if footer != "" {
		container = m.styles.ContainerWithFooter
	}
	if m.props.Focused {
		container = container.BorderForeground(m.styles.FocusedBorder)
	}
	container = container.Width(m.props.Width - 2)

	// Props.Style wraps the panel as a whole
	return m.props.Style.Render(container.Render(lipgloss.JoinVertical(lipgloss.Left, sections...)))
}

func (m *Model) header(width int) string {
	status := ResolveStatus(m.Eligible(), m.props.Checked)
	count := CountLabel(len(m.props.Checked), len(m.props.Items), m.props.ItemUnit, m.props.ItemsUnit)

	left := m.checkbox(status).View() + " " + m.styles.Count.Render(count)
	title := m.styles.Title.Render(m.props.Title)

	gap := width - lipgloss.Width(left) - lipgloss.Width(title)
	if gap < 1 {
		gap = 1
	}
	return m.styles.Header.Render(left + strings.Repeat(" ", gap) + title)
}

func (m *Model) separator(width int) string {
	if width < 1 {
		width = 1
	}
	return m.styles.Separator.Render(strings.Repeat("─", width))
}

// body resolves the override chain: full body, then list only, then the default
func (m *Model) body(width, height int) string {
	var content string
	switch {
	case m.props.Body != nil:
		content = m.props.Body(m.renderContext(width, height))
	case m.props.RenderList != nil:
		content = m.props.RenderList(m.renderContext(width, height))
	default:
		content = m.defaultBody()
	}
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(content)
}

func (m *Model) defaultBody() string {
	var lines []string
	if m.props.ShowSearch {
		lines = append(lines, m.search.View())
	}
	if len(m.rows.Visible()) == 0 {
		lines = append(lines, m.styles.NotFound.Render(m.props.NotFound))
	} else {
		lines = append(lines, m.rows.View())
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderContext(width, height int) RenderContext {
	return RenderContext{
		Direction: m.props.Direction,
		Items:     m.Filtered(),
		Checked:   m.props.Checked,
		Filter:    m.props.Filter,
		Disabled:  m.props.Disabled,
		Mounted:   m.mounted,
		Width:     width,
		Height:    height,
		OnSelect:  m.HandleSelect,
	}
}

func (m *Model) footer() string {
	if m.props.Footer == nil {
		return ""
	}
	return m.props.Footer(m.props)
}

// innerWidth is the content width inside the border and padding
func (m *Model) innerWidth() int {
	w := m.props.Width - 4
	if w < 1 {
		return 1
	}
	return w
}

// bodyHeight is what remains of the panel height after border, header and footer
func (m *Model) bodyHeight(footer string) int {
	h := m.props.Height - 2 - 2
	if footer != "" {
		h -= 1 + lipgloss.Height(footer)
	}
	if h < 1 {
		return 1
	}
	return h
}
