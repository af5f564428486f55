package match3

import (
	"fmt"
	"strings"
)

// Direction is one of the four orthogonal neighbors.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Delta returns the coordinate offset of the direction.
// Y grows upward, so Up is +1.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Axis selects a row or column scan.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// Grid is the board: a dense width*height array of tiles.
// Slots are addressed by index = x + y*width, row y = 0 is the bottom row.
// Every in-range slot holds exactly one tile.
type Grid struct {
	width  int
	height int
	tiles  []*Tile
}

// NewGrid creates a grid whose tiles are all invalid and of type None.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		width:  width,
		height: height,
		tiles:  make([]*Tile, width*height),
	}
	for i := range g.tiles {
		g.Set(i%width, i/width, &Tile{ID: i, Type: None})
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns the number of slots.
func (g *Grid) Len() int { return len(g.tiles) }

// InBounds returns true if (x, y) is on the board.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(x, y int) int {
	return x + y*g.width
}

// Get returns the tile at (x, y), or nil if out of range.
func (g *Grid) Get(x, y int) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.tiles[g.index(x, y)]
}

// Set stores t at (x, y) and updates its coordinates.
// Out of range writes are ignored.
func (g *Grid) Set(x, y int, t *Tile) {
	if !g.InBounds(x, y) {
		return
	}
	g.tiles[g.index(x, y)] = t
	if t != nil {
		t.X, t.Y = x, y
	}
}

// Swap exchanges the slots of a and b. Adjacency is not checked.
func (g *Grid) Swap(a, b *Tile) {
	ax, ay := a.X, a.Y
	bx, by := b.X, b.Y
	g.Set(bx, by, a)
	g.Set(ax, ay, b)
}

// Neighbor returns the tile next to t in direction d, or nil at the edge.
func (g *Grid) Neighbor(t *Tile, d Direction) *Tile {
	if t == nil {
		return nil
	}
	dx, dy := d.Delta()
	return g.Get(t.X+dx, t.Y+dy)
}

// FindFirstValidAbove scans column x from fromY upward and returns the
// first valid tile, or nil if there is none.
func (g *Grid) FindFirstValidAbove(x, fromY int) *Tile {
	if fromY < 0 {
		fromY = 0
	}
	for y := fromY; y < g.height; y++ {
		if t := g.Get(x, y); t != nil && t.Valid {
			return t
		}
	}
	return nil
}

// Tiles returns all tiles in slot order. The slice is a copy.
func (g *Grid) Tiles() []*Tile {
	out := make([]*Tile, len(g.tiles))
	copy(out, g.tiles)
	return out
}

// DebugString lists every slot as "{type}: ({x}, {y}), ", bottom row first.
func (g *Grid) DebugString() string {
	var sb strings.Builder
	for _, t := range g.tiles {
		fmt.Fprintf(&sb, "%s: (%d, %d), ", t.Type, t.X, t.Y)
	}
	return sb.String()
}

// String renders the board as letter rows, top row first.
// Invalid tiles are shown as '.'.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := g.height - 1; y >= 0; y-- {
		for x := 0; x < g.width; x++ {
			t := g.Get(x, y)
			if t.Valid {
				sb.WriteByte(t.Type.Letter())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseGrid builds a grid from letter rows as produced by String,
// top row first. '.' is an invalid tile.
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidBoard)
	}
	width := len(rows[0])
	height := len(rows)
	g := NewGrid(width, height)
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, i, len(row), width)
		}
		y := height - 1 - i
		for x, r := range row {
			t := g.Get(x, y)
			if r == '.' {
				continue
			}
			typ, ok := TileTypeFromLetter(r)
			if !ok {
				return nil, fmt.Errorf("%w: unknown tile %q at (%d, %d)", ErrInvalidBoard, r, x, y)
			}
			t.Type = typ
			t.Valid = true
		}
	}
	return g, nil
}
