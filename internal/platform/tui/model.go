package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// TickMsg advances the game by one simulation step.
type TickMsg time.Time

func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// resizer is implemented by games that follow a terminal resize without
// starting over.
type resizer interface {
	Resize(width, height int)
}

// Model runs one game: it collects key presses into an input frame,
// steps the game on every tick and stores the result when it ends.
type Model struct {
	game    registry.Game
	store   *storage.Store
	screen  *core.Screen
	keys    *KeyMapper
	palette *Palette
	config  core.RuntimeConfig

	input core.InputFrame
	state core.GameState

	status      string // short note about the last game event
	statusTicks int    // ticks left before status is cleared

	saved      bool   // result of the current run stored
	replayID   string // replay stored for the current run
	quitting   bool
	backToMenu bool
}

// NewModel prepares a model for game. A zero seed is replaced by a random one.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = core.RandomSeed()
	}
	return Model{
		game:    game,
		store:   store,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:    NewKeyMapper(),
		palette: NewPalette(nil),
		config:  cfg,
	}
}

// WithPalette returns a copy of the model that renders through p.
func (m Model) WithPalette(p *Palette) Model {
	m.palette = p
	return m
}

// Init resets the game and starts ticking. The state is read back on
// the first tick.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		return m.step()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, quit := m.keys.MapKey(msg)
	switch {
	case quit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack && (m.state.GameOver || m.state.Paused):
		m.backToMenu = true
		return m, tea.Quit
	case action == core.ActionRestart && !m.state.GameOver:
		// ignored mid-game
	case action != core.ActionNone:
		m.input.Set(action)
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.config.ScreenW, m.config.ScreenH = width, height
	m.screen.Resize(width, height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(width, height)
	} else if !m.state.GameOver {
		m.game.Reset(m.config)
	}
}

func (m Model) step() (tea.Model, tea.Cmd) {
	if m.state.GameOver && m.input.Has(core.ActionRestart) {
		m.config.Seed = core.RandomSeed()
		m.game.Reset(m.config)
		m.state = m.game.State()
		m.saved, m.replayID = false, ""
		m.status, m.statusTicks = "", 0
		m.input.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	res := m.game.Step(m.input)
	m.state = res.State
	m.noteEvents(res.Events)
	if m.state.GameOver && !m.saved {
		m.replayID = saveResult(m.store, m.game, m.state.Score)
		m.saved = true
	}
	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

// noteEvents turns the events of one tick into the status line. The
// status stays up for a second of ticks unless a newer event replaces it.
func (m *Model) noteEvents(events []core.Event) {
	if m.statusTicks > 0 {
		m.statusTicks--
		if m.statusTicks == 0 {
			m.status = ""
		}
	}
	for _, e := range events {
		msg := eventStatus(e)
		if msg == "" {
			continue
		}
		m.status = msg
		m.statusTicks = max(m.config.TickRate, 1)
	}
}

func eventStatus(e core.Event) string {
	switch e.Kind {
	case core.EventSwapRejected:
		return "no match"
	case core.EventCascade:
		if e.Value > 1 {
			return fmt.Sprintf("combo x%d", e.Value)
		}
	case core.EventLevelCleared:
		return fmt.Sprintf("level %d cleared", e.Value)
	}
	return ""
}

// Status is the event note currently shown, if any.
func (m Model) Status() string { return m.status }

// IsQuitting reports whether the user asked to quit entirely.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu reports whether the user asked for the menu.
func (m Model) BackToMenu() bool { return m.backToMenu }

// ReplayID is the replay stored when the last run ended, if any.
func (m Model) ReplayID() string { return m.replayID }

// saveResult stores the final score and, for replayable games, the replay
// of the last board. It returns the replay ID, empty when none was stored.
// Failures are ignored: losing a score does not stop the game.
func saveResult(store *storage.Store, game registry.Game, score int) string {
	if store == nil {
		return ""
	}
	if score > 0 {
		//nolint:errcheck // best effort
		store.SaveScore(game.ID(), score)
	}

	r, ok := game.(registry.Replayable)
	if !ok {
		return ""
	}
	rec, fingerprint, ok := r.Replay()
	if !ok {
		return ""
	}
	id, err := store.SaveReplay(game.ID(), rec, fingerprint, score)
	if err != nil {
		return ""
	}
	return id
}

// saveScreenshot writes the current frame as plain text under
// ~/.arcade/screenshots.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}

	m.game.Render(m.screen)
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // best effort
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	last := m.screen.Height() - 1
	switch {
	case m.replayID != "":
		m.screen.DrawTextColor(0, last, "replay saved: arcade replay "+m.replayID, core.ColorGray)
	case m.status != "":
		m.screen.DrawTextColor(0, last, m.status, core.ColorYellow)
	}
	return m.palette.Render(m.screen)
}

// Run plays game in its own program. It reports whether the user asked
// for the menu rather than quitting.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	final, err := tea.NewProgram(NewModel(game, store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
