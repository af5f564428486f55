package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// sessionScreen is the screen a session is currently showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGemsMenu
	screenScoreboard
	screenGame
)

// SessionModel manages the full arcade session flow: menu -> game -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store      *storage.Store
	config     core.RuntimeConfig
	username   string
	sessionID  string
	logger     *log.Logger
	palette    *Palette
	screen     sessionScreen
	menu       MenuModel
	gemsMenu   GemsModeModel
	scoreboard ScoreboardModel
	game       Model
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.Default()
	}
	sessionID := uuid.NewString()

	return SessionModel{
		store:     store,
		config:    cfg,
		username:  username,
		sessionID: sessionID,
		logger:    logger.With("session", sessionID, "user", username),
		palette:   NewPalette(nil),
		menu:      NewMenuModel(store, cfg),
	}
}

// WithPalette returns a copy of the session that renders through p.
func (m SessionModel) WithPalette(p *Palette) SessionModel {
	m.palette = p
	m.menu = m.menu.WithPalette(p)
	return m
}

// SessionID returns the unique ID of this session.
func (m SessionModel) SessionID() string {
	return m.sessionID
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGemsMenu:
		return m.updateGemsMenu(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	case screenGame:
		return m.updateGame(msg)
	default:
		return m.updateMenu(msg)
	}
}

// Sub-models quit their own program when they finish. Inside a session
// those commands are dropped and the session switches screens instead.

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.screen = screenScoreboard
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH).WithPalette(m.palette)
		return m, nil

	case m.menu.Selected() != nil:
		if m.menu.Selected().GameID == GemsModeCampaign.GameID() {
			m.screen = screenGemsMenu
			m.gemsMenu = NewGemsModeModel(m.config.ScreenW, m.config.ScreenH)
			return m, nil
		}
		game, err := registry.Create(m.menu.Selected().GameID)
		if err != nil {
			// Shouldn't happen since menu only shows registered games
			return m.backToMenu()
		}
		return m.startGame(game)
	}

	return m, cmd
}

// updateGemsMenu handles the Gem Swap mode and level selection.
func (m SessionModel) updateGemsMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.gemsMenu.Update(msg)
	if gemsMenu, ok := newMenu.(GemsModeModel); ok {
		m.gemsMenu = gemsMenu
	}

	switch {
	case m.gemsMenu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.gemsMenu.WantsBack():
		return m.backToMenu()

	case m.gemsMenu.Selected() != nil:
		sel := m.gemsMenu.Selected()
		game, err := sel.NewGame()
		if err != nil {
			m.logger.Warn("cannot create game", "error", err)
			return m.backToMenu()
		}
		m.logger.Info("game started", "game", game.ID(), "level", sel.Level, "difficulty", sel.Difficulty)
		return m.startGame(game)
	}

	return m, cmd
}

// updateScoreboard handles the scoreboard screen.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.scoreboard.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.scoreboard = board
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.backToMenu()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = gameModel
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.game.BackToMenu():
		if id := m.game.ReplayID(); id != "" {
			m.logger.Info("replay saved", "replay", id)
		}
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) startGame(game registry.Game) (tea.Model, tea.Cmd) {
	cfg := m.config
	cfg.Seed = core.RandomSeed()
	m.game = NewModel(game, m.store, cfg).WithPalette(m.palette)
	m.screen = screenGame
	return m, m.game.Init()
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.config).WithPalette(m.palette)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGemsMenu:
		return m.gemsMenu.View()
	case screenScoreboard:
		return m.scoreboard.View()
	case screenGame:
		return m.game.View()
	default:
		return m.menu.View()
	}
}
