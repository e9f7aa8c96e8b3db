package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"shuttle/internal/config"
	"shuttle/internal/domain"
	"shuttle/internal/eventbus"
	"shuttle/internal/ui/input"
	inputtypes "shuttle/internal/ui/input/types"
	"shuttle/internal/ui/transfer"
	"shuttle/internal/ui/transfer/list"
	"shuttle/internal/ui/views"
)

// E2EEnv enables the ready marker used by the pty test suite
const E2EEnv = "SHUTTLE_E2E_TEST"

const (
	opsColumnWidth = 7
	chromeHeight   = 8 // title, status, help bar and main padding
	minPanelWidth  = 20
	minPanelHeight = 6
)

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	log    zerolog.Logger

	transfer *transfer.Transfer

	// UI-specific state
	width         int
	height        int
	help          help.Model
	keys          keyMap
	statusMessage string
	statusIsError bool
	inPagerMode   bool
	e2e           bool

	accepted bool
	done     bool

	renderer     *views.Renderer
	inputHandler *input.Handler
	pager        *Pager

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model over cfg.Items and cfg.TargetKeys
func NewModel(bus eventbus.EventBus, cfg *config.Config, logger zerolog.Logger) *Model {
	m := &Model{
		bus:          bus,
		config:       cfg,
		log:          logger,
		help:         help.New(),
		keys:         newKeyMap(),
		e2e:          os.Getenv(E2EEnv) == "1",
		renderer:     views.NewRenderer("shuttle"),
		inputHandler: input.New(),
	}
	m.transfer = transfer.New(cfg.Items, cfg.TargetKeys, transfer.OptionsFromConfig(cfg), bus, logger)
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPager(p)
}

// Transfer returns the panel host
func (m *Model) Transfer() *transfer.Transfer {
	return m.transfer
}

// Result returns the target keys and whether the user accepted them
func (m *Model) Result() ([]string, bool) {
	return m.transfer.TargetKeys(), m.accepted
}

// Init starts the panel mount timers
func (m *Model) Init() tea.Cmd {
	return m.transfer.Init()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizePanels()
		return m, nil

	case tea.KeyMsg:
		ctx := &modelContext{m: m}
		var cmds []tea.Cmd
		for _, action := range m.inputHandler.HandleKey(msg, ctx) {
			if cmd := m.processAction(action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case list.TaskFiredMsg, tea.MouseMsg:
		return m, m.transfer.Update(msg)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		switch e := msg.Event.(type) {
		case eventbus.ErrorEvent:
			return m, m.setStatus(fmt.Sprintf("%s: %v", e.Message, e.Err), true)
		case eventbus.ConfigSavedEvent:
			return m, m.setStatus("saved "+e.Path, false)
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log and fall back to the inline help
			m.log.Warn().Err(msg.err).Msg("help pager failed")
			m.help.ShowAll = true
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		m.statusIsError = false
		return m, nil
	}
	return m, nil
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	panel := m.transfer.Panel(m.transfer.Focused())

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		panel.Navigate(a.Key)

	case inputtypes.SwitchPanelAction:
		m.transfer.ToggleFocus()

	case inputtypes.ToggleAction:
		panel.HandleSelectCurrent()

	case inputtypes.SelectAllAction:
		panel.HandleSelectAll()

	case inputtypes.MoveAction:
		moved := m.transfer.MoveTo(a.To)
		if len(moved) == 0 {
			return nil
		}
		unit := m.config.Units.Item
		if len(moved) > 1 {
			unit = m.config.Units.Items
		}
		return m.setStatus(fmt.Sprintf("moved %d %s %s", len(moved), unit, a.To), false)

	case inputtypes.ChangeModeAction:
		if a.Mode == inputtypes.ModeFilter {
			return panel.FocusSearch()
		}
		panel.BlurSearch()

	case inputtypes.FilterInputAction:
		return panel.UpdateSearch(a.Key)

	case inputtypes.ClearFilterAction:
		panel.HandleClear()

	case inputtypes.ToggleHelpAction:
		if m.program == nil {
			m.help.ShowAll = !m.help.ShowAll
			return nil
		}
		return m.showHelp(NewHelpRenderer(m.keys).RenderHelpContent())

	case inputtypes.AcceptAction:
		return m.quit(true)

	case inputtypes.QuitAction:
		return m.quit(!a.Force)
	}
	return nil
}

func (m *Model) quit(accepted bool) tea.Cmd {
	m.accepted = accepted
	m.done = true
	m.transfer.Destroy()
	m.log.Info().Bool("accepted", accepted).Strs("target_keys", m.transfer.TargetKeys()).Msg("quitting")
	return tea.Quit
}

func (m *Model) setStatus(message string, isError bool) tea.Cmd {
	m.statusMessage = message
	m.statusIsError = isError
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// showHelp runs the pager outside the event loop. Rendering pauses while ov owns the screen.
func (m *Model) showHelp(content string) tea.Cmd {
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.Show(content)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// resizePanels splits the terminal between the two panels and the move buttons
func (m *Model) resizePanels() {
	width := (m.width - opsColumnWidth - 4) / 2
	if width < minPanelWidth {
		width = minPanelWidth
	}
	height := m.height - chromeHeight
	if height < minPanelHeight {
		height = minPanelHeight
	}
	if cfgHeight := m.config.List.Height; cfgHeight > 0 && height > cfgHeight {
		height = cfgHeight
	}
	m.transfer.Resize(width, height)
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode || m.done {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	focused := m.transfer.Focused()
	return m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Body:          m.transfer.View(),
		InputMode:     m.inputHandler.ModeName(),
		FilterQuery:   m.transfer.Panel(focused).Props().Filter,
		StatusMessage: m.statusMessage,
		StatusIsError: m.statusIsError,
		Selected:      m.transfer.CheckedCount(focused),
		Targets:       len(m.transfer.TargetKeys()),
		HelpModel:     m.help,
		Keys:          m.keys,
		ShowReady:     m.e2e,
	})
}

// modelContext implements the input Context interface
type modelContext struct {
	m *Model
}

func (c *modelContext) FocusedPanel() domain.Direction {
	return c.m.transfer.Focused()
}

func (c *modelContext) SearchEnabled() bool {
	return c.m.config.Search.Enabled
}

func (c *modelContext) FilterActive() bool {
	return c.m.transfer.FilterActive(c.m.transfer.Focused())
}

func (c *modelContext) CanMove(to domain.Direction) bool {
	return len(c.m.transfer.Movable(to)) > 0
}
