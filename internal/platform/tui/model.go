package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dynamite-valley/internal/core"
)

// Model is the Bubble Tea model that runs a game.
type Model struct {
	game       Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       GameKeyMap
	help       help.Model
	shotDir    string
	inputFrame core.InputFrame
	gameState  core.GameState
	notice     string // shown in the help line, e.g. a screenshot path
	err        error
	quitting   bool
}

// NewModel creates a model for game. Screenshots go to shotDir.
func NewModel(game Game, cfg core.RuntimeConfig, shotDir string) Model {
	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		help:       help.New(),
		shotDir:    shotDir,
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW
	m.layout()
	return m
}

// Init starts the tick loop. The game must already be Reset.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// layout sizes the game screen to leave room for the help lines.
func (m *Model) layout() {
	helpLines := 1
	if m.help.ShowAll {
		helpLines = len(m.keys.FullHelp()[0]) + 1
	}
	m.screen.Resize(m.config.ScreenW, core.Max(m.config.ScreenH-helpLines, 1))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	m.inputFrame.Set(m.keys.Action(msg))
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.inputFrame.Empty() {
		m.notice = ""
	}

	result := m.game.Step(m.inputFrame.Clone())
	m.gameState = result.State
	m.inputFrame.Clear()

	if result.Err != nil {
		m.err = result.Err
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.notice = "screenshot failed: " + err.Error()
		return
	}

	name := fmt.Sprintf("%s_%s_%s.txt", m.game.ID(), m.gameState.Level, time.Now().Format("20060102_150405"))
	path := filepath.Join(m.shotDir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.notice = "screenshot failed: " + err.Error()
		return
	}
	m.notice = "saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen) + "\n"
	if m.notice != "" {
		return out + theme.Help.Render(m.notice)
	}
	return out + theme.Help.Render(m.help.View(m.keys))
}

// Err returns the error that stopped the game, if any.
func (m Model) Err() error {
	return m.err
}

// State returns the last state reported by the game.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run plays game until the user quits or the game fails.
func Run(game Game, cfg core.RuntimeConfig, shotDir string) (core.GameState, error) {
	p := tea.NewProgram(
		NewModel(game, cfg, shotDir),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return core.GameState{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return core.GameState{}, nil
	}
	return m.State(), m.Err()
}
