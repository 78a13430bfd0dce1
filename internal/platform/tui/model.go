package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mat-arcade/internal/audio"
	"github.com/vovakirdan/mat-arcade/internal/core"
	"github.com/vovakirdan/mat-arcade/internal/registry"
	"github.com/vovakirdan/mat-arcade/internal/sim"
	"github.com/vovakirdan/mat-arcade/internal/storage"
)

// Model is the Bubble Tea model for running one minigame.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	sound      *audio.Player
	events     *sim.Subscriber
	config     core.RuntimeConfig
	logger     *log.Logger
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	lastSaved  string // ID of the last stored session
	quitting   bool
	backToMenu bool
}

// NewModel resets game for cfg and subscribes to its session events.
// sound may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, sound *audio.Player) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	game.Reset(cfg)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		sound:      sound,
		events:     game.Session().Bus().Subscribe(sim.DefaultBuffer),
		config:     cfg,
		logger:     cfg.Logger,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// Games lay out against the screen on every render
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, _ := m.keyMapper.MapKey(msg)
	switch action {
	case core.ActionBack:
		m.backToMenu = true
		return m, tea.Quit
	case core.ActionMute:
		if m.sound != nil {
			muted := m.sound.ToggleMute()
			m.logger.Debug("sound toggled", "muted", muted)
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	m.handleEvents()

	return m, tickCmd(m.config.TickRate)
}

// handleEvents forwards sound cues and stores finished sessions.
func (m *Model) handleEvents() {
	for _, evt := range m.events.Drain() {
		if m.sound != nil {
			m.sound.Handle(evt)
		}
		switch e := evt.(type) {
		case sim.SessionEnded:
			m.saveSession(e.Summary)
		case sim.MatStatus:
			m.logger.Info("mat status", "status", e.Status, "detail", e.Message)
		}
	}
}

// saveSession stores a summary. Storage errors are logged; play continues.
func (m *Model) saveSession(sum sim.Summary) {
	if m.store == nil {
		return
	}
	source := "keyboard"
	if m.config.Pads != nil {
		source = m.config.Pads.Name()
	}
	id, err := m.store.SaveSession(storage.SessionRecord{
		GameID:   sum.Game,
		Score:    sum.Score,
		Accuracy: sum.Accuracy,
		MaxCombo: sum.MaxCombo,
		Kills:    sum.Kills,
		Attempts: sum.Attempts,
		Elapsed:  sum.Elapsed,
		Source:   source,
	})
	if err != nil {
		m.logger.Error("could not save session", "game", sum.Game, "error", err)
		return
	}
	m.lastSaved = id
	m.logger.Debug("session saved", "id", id, "score", sum.Score)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// LastSaved returns the ID of the last stored session, or "".
func (m Model) LastSaved() string {
	return m.lastSaved
}

// Close ends the session and stops listening to its events.
func (m Model) Close() {
	m.events.Close()
	m.game.Close()
}

// RunResult reports how a game run ended.
type RunResult struct {
	BackToMenu bool
}

// Run plays game until the player quits or goes back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, sound *audio.Player) (RunResult, error) {
	model := NewModel(game, store, cfg, sound)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return RunResult{}, err
	}
	if fm, ok := final.(Model); ok {
		return RunResult{BackToMenu: fm.BackToMenu()}, nil
	}
	return RunResult{}, nil
}
