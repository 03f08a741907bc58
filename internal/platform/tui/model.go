package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcadeloop/internal/core"
	"github.com/vovakirdan/arcadeloop/internal/registry"
)

// Model is the Bubble Tea model driving one game at a fixed tick rate.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	palette    *Palette
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	logger     *log.Logger
	tick       uint64
	quitting   bool
	backToMenu bool
	standalone bool // going back to the menu ends the program
}

// NewModel creates a model for game. A zero seed is replaced by the clock.
func NewModel(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = Host{}.logger()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		palette:    NewPalette(nil),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		logger:     logger,
		tick:       nextTickID(),
	}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.tick, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouse(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		// The game refits its view on the next Render; the run goes on.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.ID != m.tick {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quit()
		return m, tea.Quit
	}

	// Back leaves the game only from a paused or finished run; otherwise
	// the game sees it (menus inside games use it).
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.quit()
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) quit() {
	m.quitting = true
	m.keyMapper.Release()
	if c, ok := m.game.(closer); ok {
		c.Close()
	}
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	m.keyMapper.Hold(&m.inputFrame)
	result := m.game.Step(m.inputFrame)
	if result.State.Phase != m.gameState.Phase && result.State.GameOver {
		m.logger.Debug("game over", "game", m.game.ID(), "phase", result.State.Phase, "score", result.State.Score)
	}
	m.gameState = result.State
	m.inputFrame.Clear()

	return m, tickCmd(m.tick, m.config.TickRate)
}

// saveScreenshot writes the current frame to ~/.arcade/screenshots.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return m.palette.Render(m.screen)
}

// State returns the last state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting reports whether the player asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting && !m.backToMenu
}

// BackToMenu reports whether the player asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one game full screen until the player quits or goes back.
// It reports whether the player went back rather than quitting.
func Run(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) (back bool, err error) {
	model := NewModel(game, cfg, logger)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
