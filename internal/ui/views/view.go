package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// ReadyMarker is printed once the first frame is drawn, when the e2e harness asks for it
const ReadyMarker = "__READY__"

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Body          string // the two transfer panels
	InputMode     string
	FilterQuery   string
	StatusMessage string
	StatusIsError bool
	Selected      int
	Targets       int
	HelpModel     help.Model
	Keys          help.KeyMap
	ShowReady     bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
	title  string
}

// NewRenderer creates a new renderer
func NewRenderer(title string) *Renderer {
	return &Renderer{
		styles: NewStyles(),
		title:  title,
	}
}

// Styles returns the renderer styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.titleLine(state))
	content.WriteString("\n")
	content.WriteString(state.Body)
	content.WriteString("\n")
	content.WriteString(r.statusLine(state))
	content.WriteString("\n")
	content.WriteString(r.styles.Help.Render(state.HelpModel.View(state.Keys)))

	if state.ShowReady {
		content.WriteString("\n")
		content.WriteString(ReadyMarker)
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) titleLine(state ViewState) string {
	logo := r.styles.Title.Render(r.title)

	var right []string
	if state.InputMode != "" && state.InputMode != "normal" {
		right = append(right, r.styles.Mode.Render(strings.ToUpper(state.InputMode)))
	}
	if state.FilterQuery != "" {
		right = append(right, r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", state.FilterQuery)))
	}
	if len(right) == 0 {
		return logo
	}

	rightContent := strings.Join(right, "  ")

	// Use a default width if state.Width is not set
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	availableWidth := termWidth - 4 // Account for main container padding
	paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return logo + strings.Repeat(" ", paddingWidth) + rightContent
}

func (r *Renderer) statusLine(state ViewState) string {
	counts := r.styles.Dim.Render(fmt.Sprintf("%d selected · %d in target", state.Selected, state.Targets))
	if state.StatusMessage == "" {
		return r.styles.Status.Render(counts)
	}

	style := r.styles.StatusSuccess
	if state.StatusIsError {
		style = r.styles.StatusError
	}
	return r.styles.Status.Render(style.Render(state.StatusMessage) + "  " + counts)
}
