package gems

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick       uint64
	Mode       string // "campaign" or "endless"
	Level      int    // Current level (1-indexed)
	Target     int
	MovesLeft  int
	Score      int
	Variations int
	Board      string // Letter rows, top row first
	CursorX    int
	CursorY    int
	Selected   bool
	Phase      Phase
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	phase := g.phase
	if g.tooSmall {
		phase = PhasePausedSmall
	}

	return Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		Level:      g.levelIndex + 1,
		Target:     g.target,
		MovesLeft:  g.movesLeft,
		Score:      g.score,
		Variations: g.engine.Variations(),
		Board:      g.engine.Grid().String(),
		CursorX:    g.cursorX,
		CursorY:    g.cursorY,
		Selected:   g.selected != nil,
		Phase:      phase,
	}
}
