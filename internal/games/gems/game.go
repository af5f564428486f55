package gems

import (
	"slices"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/replay"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Phase is what the game is currently doing.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseSelected     Phase = "selected"
	PhaseResolving    Phase = "resolving"
	PhaseLevelCleared Phase = "level_cleared"
	PhaseGameOver     Phase = "game_over"
	PhaseWin          Phase = "win"
	PhasePausedSmall  Phase = "paused_small_window"
)

// Game implements the Gem Swap puzzle.
type Game struct {
	mode Mode
	tick uint64
	seed int64

	cfg        config.GemsConfig
	difficulty *config.DifficultyManager
	engine     *match3.Engine
	recorder   *replay.Recorder

	phase      Phase
	score      int
	levelIndex int // Current level (0-indexed), always 0 in endless
	target     int // Score needed to clear the level, 0 in endless
	movesLeft  int // Swaps left in the level, -1 when unlimited
	swaps      int // Accepted swaps over the whole game

	// Board interaction
	cursorX  int
	cursorY  int
	selected *match3.Tile
	hint     []*match3.Tile

	// Cascade pacing
	cascadeLevel  int
	stepCountdown int
	flash         []*match3.Tile // Tiles cleared by the current wave
	lastCascade   int            // Depth of the most recent cascade

	// Screen dimensions
	screenW int
	screenH int

	paused          bool
	tooSmall        bool
	levelClearTicks int

	// Per-game overrides of the package-level selection
	startLevel int
	preset     config.DifficultyPreset
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register("gems", func() registry.Game {
		return New()
	})
	registry.Register("gems_endless", func() registry.Game {
		return NewEndless()
	})
}

// Configure sets the start level (1-based, 0 = first) and difficulty preset
// for this game only, taking precedence over SetStartLevel and
// SetDifficultyPreset. Used where several games run side by side.
func (g *Game) Configure(startLevel int, preset string) error {
	g.startLevel = startLevel
	g.preset = ""
	if preset == "" {
		return nil
	}
	p, err := config.ParsePreset(preset)
	if err != nil {
		return err
	}
	g.preset = p
	return nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "gems_endless"
	}
	return "gems"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Gem Swap (Endless)"
	}
	return "Gem Swap"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	g.cfg = loadConfig(preset)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	if g.engine == nil {
		g.engine = match3.NewEngine()
	}

	g.seed = cfg.Seed
	g.tick = 0
	g.score = 0
	g.swaps = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.levelClearTicks = 0
	g.lastCascade = 0

	// Apply selected start level (campaign only)
	start := g.startLevel
	if start == 0 {
		start = selectedStartLevel
		selectedStartLevel = 0 // Reset after use
	}
	g.levelIndex = 0
	if g.mode == ModeCampaign && start > 0 && start <= len(g.cfg.Levels) {
		g.levelIndex = start - 1
	}

	if err := g.loadLevel(); err != nil {
		// Only reachable with a hand-built config.
		logger.Warn("level not loaded, falling back to defaults", "game", g.ID(), "level", g.levelIndex+1, "err", err)
		g.cfg = config.DefaultGemsConfig()
		g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
		g.levelIndex = 0
		if err := g.loadLevel(); err != nil {
			logger.Error("default level not loaded", "game", g.ID(), "err", err)
			g.phase = PhaseGameOver
		}
	}
}

// loadLevel populates a fresh board for the current level.
func (g *Game) loadLevel() error {
	width, height := g.cfg.Board.Width, g.cfg.Board.Height
	variations := g.difficulty.Variations(g.cfg.Board.Variations, g.score, g.swaps)
	seed := g.seed
	g.target = 0
	g.movesLeft = -1

	if g.mode == ModeCampaign {
		if g.levelIndex >= len(g.cfg.Levels) {
			g.levelIndex = len(g.cfg.Levels) - 1
		}
		lvl := g.cfg.Levels[g.levelIndex]
		width, height, variations = lvl.Width, lvl.Height, lvl.Variations
		seed = levelSeed(g.seed, g.levelIndex)
		g.target = lvl.Target
		g.movesLeft = lvl.Moves
	}

	if _, err := g.engine.Populate(width, height, variations, seed); err != nil {
		return err
	}
	g.recorder = replay.NewRecorder(width, height, variations, seed)

	g.phase = PhaseIdle
	g.selected = nil
	g.hint = nil
	g.flash = nil
	g.cascadeLevel = 0
	g.stepCountdown = 0
	g.cursorX = width / 2
	g.cursorY = height / 2

	g.checkScreenSize()
	return nil
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	boardW, boardH := boardSize(g.engine.Width(), g.engine.Height())
	minW := max(boardW, 40)
	minH := boardH + hudHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.finished() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	var events []core.Event
	switch g.phase {
	case PhaseLevelCleared:
		g.levelClearTicks++
		if g.levelClearTicks >= g.cfg.Pacing.LevelClearTicks {
			g.advanceLevel()
		}
	case PhaseResolving:
		events = g.stepCascade()
	case PhaseIdle, PhaseSelected:
		events = g.handleInput(in)
	}

	return core.StepResult{State: g.State(), Events: events}
}

// handleInput processes cursor, selection and hint actions.
func (g *Game) handleInput(in core.InputFrame) []core.Event {
	if in.Has(core.ActionHint) {
		g.hint = slices.Clone(g.engine.GetFirstPossibleMatch())
	}

	if in.Has(core.ActionBack) && g.selected != nil {
		g.clearSelection()
		return nil
	}

	for _, m := range directionActions {
		if !in.Has(m.action) {
			continue
		}
		if g.selected != nil {
			if other := g.engine.Grid().Neighbor(g.selected, m.dir); other != nil {
				return g.trySwap(g.selected, other)
			}
			return nil
		}
		g.moveCursor(m.dir)
		return nil
	}

	if in.Has(core.ActionSelect) || in.Has(core.ActionConfirm) {
		return g.selectAtCursor()
	}
	return nil
}

var directionActions = [...]struct {
	action core.Action
	dir    match3.Direction
}{
	{core.ActionUp, match3.Up},
	{core.ActionDown, match3.Down},
	{core.ActionLeft, match3.Left},
	{core.ActionRight, match3.Right},
}

// moveCursor moves the cursor one cell, staying on the board.
func (g *Game) moveCursor(d match3.Direction) {
	dx, dy := d.Delta()
	g.cursorX = core.Clamp(g.cursorX+dx, 0, g.engine.Width()-1)
	g.cursorY = core.Clamp(g.cursorY+dy, 0, g.engine.Height()-1)
}

// selectAtCursor picks up the tile under the cursor, drops it when it is
// already held, or swaps with it when it is next to the held tile.
func (g *Game) selectAtCursor() []core.Event {
	tile := g.engine.Tile(g.cursorX, g.cursorY)
	switch {
	case g.selected == nil:
		g.selected = tile
		g.phase = PhaseSelected
	case g.selected == tile:
		g.clearSelection()
	case adjacent(g.selected, tile):
		return g.trySwap(g.selected, tile)
	default:
		g.selected = tile
	}
	return nil
}

func adjacent(a, b *match3.Tile) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx+dy*dy == 1
}

func (g *Game) clearSelection() {
	g.selected = nil
	g.phase = PhaseIdle
}

// trySwap attempts a swap and starts the cascade when it is accepted.
func (g *Game) trySwap(a, b *match3.Tile) []core.Event {
	if g.mode == ModeEndless {
		v := g.difficulty.Variations(g.cfg.Board.Variations, g.score, g.swaps)
		if v != g.engine.Variations() {
			// Validated range, cannot fail.
			_ = g.engine.SetVariations(v)
		}
	}

	g.recorder.Add(a, b, g.engine.Variations())
	g.clearSelection()
	g.hint = nil

	// Cursor follows the moved gem.
	g.cursorX, g.cursorY = b.X, b.Y

	matched := g.engine.TrySwap(a, b)
	if matched == nil {
		return []core.Event{{Kind: core.EventSwapRejected}}
	}

	g.swaps++
	if g.movesLeft > 0 {
		g.movesLeft--
	}
	g.cascadeLevel = 1
	g.award(len(matched))
	g.flash = slices.Clone(matched)
	g.phase = PhaseResolving
	g.stepCountdown = g.cfg.Pacing.StepTicks
	return []core.Event{{Kind: core.EventSwapAccepted, Value: len(matched)}}
}

// stepCascade runs one paced cascade stage once the countdown expires.
func (g *Game) stepCascade() []core.Event {
	g.stepCountdown--
	if g.stepCountdown > 0 {
		return nil
	}
	g.stepCountdown = g.cfg.Pacing.StepTicks

	tiles, compacted, stable := g.engine.Step()
	switch {
	case compacted:
		g.flash = nil
		return nil
	case stable:
		return g.finishTurn()
	}

	g.cascadeLevel++
	g.award(len(tiles))
	g.flash = slices.Clone(tiles)
	return []core.Event{{Kind: core.EventCascade, Value: g.cascadeLevel}}
}

// award scores cleared tiles, boosted by the cascade depth.
func (g *Game) award(tiles int) {
	s := g.cfg.Scoring
	bonus := 1 + s.CascadeBonus*float64(g.cascadeLevel-1)
	g.score += int(float64(s.PointsPerTile*tiles) * bonus)
}

// finishTurn ends a cascade and checks the level goals.
func (g *Game) finishTurn() []core.Event {
	g.lastCascade = g.cascadeLevel
	g.cascadeLevel = 0
	g.flash = nil
	g.phase = PhaseIdle

	if g.mode != ModeCampaign {
		return nil
	}
	if g.score >= g.target {
		g.phase = PhaseLevelCleared
		g.levelClearTicks = 0
		return []core.Event{{Kind: core.EventLevelCleared, Value: g.levelIndex + 1}}
	}
	if g.movesLeft == 0 {
		g.phase = PhaseGameOver
	}
	return nil
}

// advanceLevel moves to the next level, or wins after the last one.
func (g *Game) advanceLevel() {
	g.levelClearTicks = 0
	if g.levelIndex >= len(g.cfg.Levels)-1 {
		g.phase = PhaseWin
		return
	}
	g.levelIndex++
	if err := g.loadLevel(); err != nil {
		logger.Error("next level not loaded", "game", g.ID(), "level", g.levelIndex+1, "err", err)
		g.phase = PhaseGameOver
	}
}

func (g *Game) finished() bool {
	return g.phase == PhaseGameOver || g.phase == PhaseWin
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.finished(),
		Paused:   g.paused || g.tooSmall || g.phase == PhaseLevelCleared,
	}
}

// Replay returns the swaps made on the current board and the fingerprint
// of the board they lead to. ok is false while a cascade is still running
// or before any swap.
func (g *Game) Replay() (replay.Record, uint64, bool) {
	if g.recorder == nil || g.recorder.Len() == 0 || g.phase == PhaseResolving {
		return replay.Record{}, 0, false
	}
	return g.recorder.Record(), replay.Fingerprint(g.engine.DebugGrid()), true
}

var _ registry.Replayable = (*Game)(nil)

// Resize follows a terminal resize without resetting the board.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}
