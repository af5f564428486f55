package match3

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrInvalidBoard is returned when board dimensions or the variation
// count cannot produce a playable board.
var ErrInvalidBoard = errors.New("match3: invalid board")

// Board limits. Pre-match synthesis writes at x+1 and x+3, so a row needs
// at least four cells.
const (
	MinWidth      = 4
	MinHeight     = 1
	MinVariations = 3
)

// Option configures an Engine.
type Option func(*Engine)

// WithRandSource sets the RNG factory used on every Populate.
func WithRandSource(fn func(seed int64) Rand) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newRand = fn
		}
	}
}

// WithLogger enables debug logging of board generation.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// Engine owns a board and applies the game rules to it.
// It is not safe for concurrent use.
type Engine struct {
	grid       *Grid
	finder     *Finder
	rng        Rand
	newRand    func(seed int64) Rand
	logger     *log.Logger
	variations int
	seed       int64

	// touched collects the tiles changed by MoveTilesDown.
	touched []*Tile
	marked  []bool
}

// NewEngine creates an engine with an empty 0x0 board.
// Call Populate or Load before anything else.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		finder:  NewFinder(),
		newRand: newXorShiftRand,
		grid:    NewGrid(0, 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.rng = e.newRand(0)
	return e
}

func validateBoard(width, height, variations int) error {
	if width < MinWidth {
		return fmt.Errorf("%w: width %d, need at least %d", ErrInvalidBoard, width, MinWidth)
	}
	if height < MinHeight {
		return fmt.Errorf("%w: height %d, need at least %d", ErrInvalidBoard, height, MinHeight)
	}
	return validateVariations(variations)
}

func validateVariations(n int) error {
	if n < MinVariations || n > MaxVariations {
		return fmt.Errorf("%w: variations %d, need %d..%d", ErrInvalidBoard, n, MinVariations, MaxVariations)
	}
	return nil
}

func (e *Engine) debug(msg string, keyvals ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, keyvals...)
	}
}

func (e *Engine) randomType() TileType {
	return TileType(e.rng.Intn(e.variations))
}

// Populate creates a new width x height board from seed. The board has no
// matches and at least one playable move. Returns all tiles in slot order.
func (e *Engine) Populate(width, height, variations int, seed int64) ([]*Tile, error) {
	if err := validateBoard(width, height, variations); err != nil {
		return nil, err
	}
	e.seed = seed
	e.rng = e.newRand(seed)
	e.variations = variations
	e.grid = NewGrid(width, height)

	for _, t := range e.grid.tiles {
		t.Type = e.randomType()
		t.Valid = true
	}
	e.settle()

	e.debug("board populated", "width", width, "height", height, "variations", variations, "seed", seed)
	return e.grid.Tiles(), nil
}

// Load replaces the board with rows as accepted by ParseGrid. The board is
// used as given: matches and dead boards are left alone. seed reseeds the
// RNG used for refills.
func (e *Engine) Load(rows []string, variations int, seed int64) error {
	g, err := ParseGrid(rows)
	if err != nil {
		return err
	}
	if err := validateBoard(g.width, g.height, variations); err != nil {
		return err
	}
	for _, t := range g.tiles {
		if t.Valid && int(t.Type) >= variations {
			return fmt.Errorf("%w: %s at (%d, %d) exceeds %d variations", ErrInvalidBoard, t.Type, t.X, t.Y, variations)
		}
	}
	e.grid = g
	e.seed = seed
	e.rng = e.newRand(seed)
	e.variations = variations
	return nil
}

// settle removes accidental matches and makes the board playable without
// introducing new matches, re-rolling the whole board when it cannot.
func (e *Engine) settle() {
	for attempt := 1; ; attempt++ {
		e.dematch()
		if e.playable() {
			return
		}
		if _, ok := e.injectPreMatch(); ok {
			return
		}
		e.debug("no safe pre-match placement, re-rolling board", "attempt", attempt)
		for _, t := range e.grid.tiles {
			t.Type = e.randomType()
		}
	}
}

// dematch re-rolls every matched tile until a full scan finds nothing.
func (e *Engine) dematch() {
	for pass := 0; ; pass++ {
		matched := e.finder.scanAll(e.grid)
		if len(matched) == 0 {
			if pass > 0 {
				e.debug("accidental matches removed", "passes", pass)
			}
			return
		}
		for _, t := range matched {
			t.Type = e.randomType()
		}
	}
}

func (e *Engine) playable() bool {
	_, _, c := e.finder.search(e.grid)
	return c != nil
}

// injectPreMatch writes an XXO shape (x, x+1, x+3 on one row) that makes
// no match, scanning rows from the bottom. Returns the changed tiles.
func (e *Engine) injectPreMatch() ([]*Tile, bool) {
	g := e.grid
	start := int(e.randomType())
	for y := 0; y < g.height; y++ {
		for x := 0; x+3 < g.width; x++ {
			cells := []*Tile{g.Get(x, y), g.Get(x+1, y), g.Get(x+3, y)}
			gap := g.Get(x+2, y).Type
			old := [3]TileType{cells[0].Type, cells[1].Type, cells[2].Type}

			for k := 0; k < e.variations; k++ {
				typ := TileType((start + k) % e.variations)
				if typ == gap {
					continue
				}
				for _, c := range cells {
					c.Type = typ
				}
				if !e.anyRun(cells) {
					e.debug("pre-match injected", "type", typ, "x", x, "y", y)
					return cells, true
				}
			}
			for i, c := range cells {
				c.Type = old[i]
			}
		}
	}
	return nil, false
}

func (e *Engine) anyRun(tiles []*Tile) bool {
	for _, t := range tiles {
		if e.finder.hasRun(e.grid, t) {
			return true
		}
	}
	return false
}

// ensurePlayable is the cascade-time guarantee: when no move exists it
// injects a safe pre-match, or forces one at the bottom-left corner and
// leaves any resulting match to the cascade. An empty board is left alone.
func (e *Engine) ensurePlayable() []*Tile {
	if e.grid.Len() == 0 || e.playable() {
		return nil
	}
	if cells, ok := e.injectPreMatch(); ok {
		return cells
	}
	typ := e.randomType()
	cells := []*Tile{e.grid.Get(0, 0), e.grid.Get(1, 0), e.grid.Get(3, 0)}
	for _, c := range cells {
		c.Type = typ
	}
	e.debug("pre-match forced", "type", typ)
	return cells
}

// EnsurePlayable makes sure at least one move exists and returns the tiles
// it had to change. Like the refill path, it may leave a match behind when
// no safe placement exists; FindAndProcessMatches picks that up.
func (e *Engine) EnsurePlayable() []*Tile {
	return e.ensurePlayable()
}

// TrySwap swaps a and b and keeps the swap if it makes a match. Accepted
// swaps return the matched tiles, already invalidated. Rejected swaps are
// undone and return nil. Invalid tiles are never swapped.
func (e *Engine) TrySwap(a, b *Tile) []*Tile {
	if a == nil || b == nil || a == b || !a.Valid || !b.Valid {
		return nil
	}
	e.grid.Swap(a, b)
	matched := e.finder.runsAt(e.grid, a, b)
	if len(matched) == 0 {
		e.grid.Swap(a, b)
		return nil
	}
	for _, t := range matched {
		t.Valid = false
	}
	return matched
}

func (e *Engine) resetTouched() {
	n := e.grid.Len()
	if cap(e.marked) < n {
		e.marked = make([]bool, n)
	} else {
		e.marked = e.marked[:n]
		clear(e.marked)
	}
	e.touched = e.touched[:0]
}

func (e *Engine) touch(t *Tile) {
	if e.marked[t.ID] {
		return
	}
	e.marked[t.ID] = true
	e.touched = append(e.touched, t)
}

// MoveTilesDown compacts every column: valid tiles fall into the slots of
// invalid ones and the emptied top slots are refilled with random types.
// Returns every tile whose position or type changed, each once.
func (e *Engine) MoveTilesDown() []*Tile {
	g := e.grid
	e.resetTouched()
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			t := g.Get(x, y)
			if t.Valid {
				continue
			}
			if above := g.FindFirstValidAbove(x, y+1); above != nil {
				g.Swap(t, above)
				e.touch(above)
				e.touch(t)
				continue
			}
			t.Type = e.randomType()
			t.Valid = true
			e.touch(t)
		}
	}
	for _, t := range e.ensurePlayable() {
		e.touch(t)
	}

	if len(e.touched) == 0 {
		return nil
	}
	out := make([]*Tile, len(e.touched))
	copy(out, e.touched)
	return out
}

// FindAndProcessMatches invalidates every current match and returns the
// matched tiles. Returns nil when the board is stable.
func (e *Engine) FindAndProcessMatches() []*Tile {
	matched := e.finder.FindAllMatches(e.grid)
	for _, t := range matched {
		t.Valid = false
	}
	return matched
}

// GetFirstPossibleMatch returns the tiles of the first available move:
// the two aligned tiles followed by the one to swap in.
func (e *Engine) GetFirstPossibleMatch() []*Tile {
	return e.finder.FindFirstPossibleMatch(e.grid)
}

// FirstMove returns the first available move with its swap pair.
func (e *Engine) FirstMove() (Move, bool) {
	return e.finder.FindFirstMove(e.grid)
}

// SuggestSwap returns a swap that is guaranteed to be accepted.
func (e *Engine) SuggestSwap() (a, b *Tile, ok bool) {
	m, ok := e.finder.FindFirstMove(e.grid)
	if !ok {
		return nil, nil, false
	}
	return m.From, m.To, true
}

// FindRun returns the match through t on the current board.
func (e *Engine) FindRun(t *Tile) []*Tile {
	return e.finder.FindRun(e.grid, t)
}

// FindNearPairs returns same-type tiles near t along axis.
func (e *Engine) FindNearPairs(t *Tile, axis Axis) []*Tile {
	return e.finder.FindNearPairs(e.grid, t, axis)
}

// SetVariations changes the number of colors used by future refills.
// Tiles already on the board keep their type.
func (e *Engine) SetVariations(n int) error {
	if err := validateVariations(n); err != nil {
		return err
	}
	e.variations = n
	return nil
}

// DebugGrid serializes the board, see Grid.DebugString.
func (e *Engine) DebugGrid() string {
	return e.grid.DebugString()
}

// Tile returns the tile at (x, y), or nil if out of range.
func (e *Engine) Tile(x, y int) *Tile { return e.grid.Get(x, y) }

// Grid returns the board.
func (e *Engine) Grid() *Grid { return e.grid }

// Width returns the board width.
func (e *Engine) Width() int { return e.grid.width }

// Height returns the board height.
func (e *Engine) Height() int { return e.grid.height }

// Variations returns the current number of colors.
func (e *Engine) Variations() int { return e.variations }

// Seed returns the seed of the last Populate or Load.
func (e *Engine) Seed() int64 { return e.seed }
