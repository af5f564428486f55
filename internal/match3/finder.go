package match3

import "fmt"

// nearOffsets are the positions FindNearPairs probes, in order.
var nearOffsets = [...]int{1, 2, -1, -2}

// Finder answers match queries on a grid. It never mutates tiles.
// Scratch buffers are reused across calls and cleared on entry; results
// handed to callers are always freshly allocated.
type Finder struct {
	seen  []bool
	buf   []*Tile
	horiz []*Tile
	vert  []*Tile
}

// NewFinder creates a finder.
func NewFinder() *Finder {
	return &Finder{}
}

// Move is a playable swap found by the pattern search.
type Move struct {
	Pattern string
	Tiles   []*Tile // required0, required1, candidate
	From    *Tile   // the candidate
	To      *Tile   // the gap tile the candidate swaps with
}

// live reports whether t takes part in match queries.
// A valid tile without a color means the board is corrupted.
func live(t *Tile) bool {
	if t == nil || !t.Valid {
		return false
	}
	if t.Type == None {
		panic(fmt.Sprintf("match3: valid tile %d at (%d, %d) has type None", t.ID, t.X, t.Y))
	}
	return true
}

func (f *Finder) reset(g *Grid) {
	n := g.Len()
	if cap(f.seen) < n {
		f.seen = make([]bool, n)
	} else {
		f.seen = f.seen[:n]
		clear(f.seen)
	}
	f.buf = f.buf[:0]
}

func (f *Finder) add(t *Tile) {
	if t.ID >= 0 && t.ID < len(f.seen) {
		if f.seen[t.ID] {
			return
		}
		f.seen[t.ID] = true
	}
	f.buf = append(f.buf, t)
}

func (f *Finder) result() []*Tile {
	if len(f.buf) == 0 {
		return nil
	}
	out := make([]*Tile, len(f.buf))
	copy(out, f.buf)
	return out
}

// scan appends the same-type valid tiles next to t in direction d.
func (f *Finder) scan(g *Grid, t *Tile, d Direction, dst []*Tile) []*Tile {
	for n := g.Neighbor(t, d); n != nil && n.Valid && n.Type == t.Type; n = g.Neighbor(n, d) {
		dst = append(dst, n)
	}
	return dst
}

// appendRun adds the match through t to buf. Once either axis holds two
// matching neighbors, every neighbor found on both axes joins the match.
func (f *Finder) appendRun(g *Grid, t *Tile) bool {
	if !live(t) {
		return false
	}
	f.horiz = f.scan(g, t, Right, f.horiz[:0])
	f.horiz = f.scan(g, t, Left, f.horiz)
	f.vert = f.scan(g, t, Up, f.vert[:0])
	f.vert = f.scan(g, t, Down, f.vert)

	if len(f.horiz) < 2 && len(f.vert) < 2 {
		return false
	}
	f.add(t)
	for _, n := range f.horiz {
		f.add(n)
	}
	for _, n := range f.vert {
		f.add(n)
	}
	return true
}

// FindRun returns the match through t: t first, then its row neighbors
// (right, then left), then its column neighbors (up, then down). A lone
// neighbor on the shorter axis is included. Returns nil when neither axis
// reaches three tiles.
func (f *Finder) FindRun(g *Grid, t *Tile) []*Tile {
	f.reset(g)
	f.appendRun(g, t)
	return f.result()
}

// hasRun reports whether t is part of a match without allocating.
func (f *Finder) hasRun(g *Grid, t *Tile) bool {
	f.reset(g)
	return f.appendRun(g, t)
}

// runsAt returns the union of the matches through each of tiles.
func (f *Finder) runsAt(g *Grid, tiles ...*Tile) []*Tile {
	f.reset(g)
	for _, t := range tiles {
		f.appendRun(g, t)
	}
	return f.result()
}

// scanAll fills buf with every matched tile, row by row from the bottom.
// The returned slice is scratch and valid until the next finder call.
func (f *Finder) scanAll(g *Grid) []*Tile {
	f.reset(g)
	for _, t := range g.tiles {
		f.appendRun(g, t)
	}
	return f.buf
}

// FindAllMatches returns every tile that is part of a match, each once,
// in the order they are first reached by a row-major scan.
func (f *Finder) FindAllMatches(g *Grid) []*Tile {
	f.scanAll(g)
	return f.result()
}

// FindNearPairs returns up to two valid tiles of t's type at distance one
// or two along axis, probing +1, +2, -1, -2 in that order.
func (f *Finder) FindNearPairs(g *Grid, t *Tile, axis Axis) []*Tile {
	if !live(t) {
		return nil
	}
	var out []*Tile
	for _, o := range nearOffsets {
		dx, dy := o, 0
		if axis == Vertical {
			dx, dy = 0, o
		}
		n := g.Get(t.X+dx, t.Y+dy)
		if n != nil && n.Valid && n.Type == t.Type {
			out = append(out, n)
			if len(out) == 2 {
				break
			}
		}
	}
	return out
}

// search runs the pattern table over every anchor in slot order and
// returns the first hit.
func (f *Finder) search(g *Grid) (anchor *Tile, p *Pattern, candidate *Tile) {
	for _, a := range g.tiles {
		for i := range patternTable {
			pat := &patternTable[i]
			if c := f.TryPattern(g, a, pat.Required, pat.Candidates); c != nil {
				return a, pat, c
			}
		}
	}
	return nil, nil, nil
}

// FindFirstMove returns the first playable swap, or false on a dead board.
func (f *Finder) FindFirstMove(g *Grid) (Move, bool) {
	anchor, p, c := f.search(g)
	if c == nil {
		return Move{}, false
	}
	tiles := make([]*Tile, 0, requiredPerPattern+1)
	for _, o := range p.Required {
		tiles = append(tiles, g.Get(anchor.X+o.DX, anchor.Y+o.DY))
	}
	tiles = append(tiles, c)
	return Move{
		Pattern: p.Name,
		Tiles:   tiles,
		From:    c,
		To:      g.Get(anchor.X+p.Gap.DX, anchor.Y+p.Gap.DY),
	}, true
}

// FindFirstPossibleMatch returns [required0, required1, candidate] for the
// first pattern hit, or nil when no single swap can make a match.
func (f *Finder) FindFirstPossibleMatch(g *Grid) []*Tile {
	m, ok := f.FindFirstMove(g)
	if !ok {
		return nil
	}
	return m.Tiles
}
