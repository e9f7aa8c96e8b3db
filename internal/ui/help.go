package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys keyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys keyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("Shuttle Help"))
	help.WriteString("\n")

	for i, group := range r.keys.FullHelp() {
		if i < len(helpSections) {
			help.WriteString(sectionStyle.Render(helpSections[i]))
			help.WriteString("\n")
		}
		for _, binding := range group {
			h := binding.Help()
			help.WriteString(fmt.Sprintf("  %-12s %s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
		}
		help.WriteString("\n")
	}

	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Moves apply to the checked items of the other panel."))

	return help.String()
}

// pagerSettleDelay lets ov leave the alternate screen before Bubble Tea takes it back
const pagerSettleDelay = 100 * time.Millisecond

// Pager shows long text in ov while the program has released the terminal
type Pager struct {
	program *tea.Program
}

// NewPager creates a pager bound to program
func NewPager(program *tea.Program) *Pager {
	return &Pager{program: program}
}

// Show blocks until the user quits ov. The terminal goes back to the program
// whether or not ov ran.
func (p *Pager) Show(content string) (err error) {
	if p == nil || p.program == nil {
		return errors.New("pager: no program to release the terminal from")
	}
	if err := p.program.ReleaseTerminal(); err != nil {
		return fmt.Errorf("pager: release terminal: %w", err)
	}
	defer func() {
		time.Sleep(pagerSettleDelay)
		if restoreErr := p.program.RestoreTerminal(); restoreErr != nil && err == nil {
			err = fmt.Errorf("pager: restore terminal: %w", restoreErr)
		}
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("pager: %w", err)
	}

	// ov must not print the document when it exits; the TUI repaints over it
	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)

	return root.Run()
}
