// Package match3 implements the logic core of a tile-matching puzzle:
// the board model, match detection, swap and cascade resolution, and the
// guarantee that a populated board always has at least one playable move.
//
// The package has no knowledge of rendering, input or timing. Callers
// drive it with swap requests and receive the tiles whose position or
// type changed.
package match3

import "fmt"

// TileType is the color of a tile.
type TileType int8

// None marks "no tile". It never occupies a valid cell.
const None TileType = -1

// Tile colors, in the order they are introduced by the variation count.
const (
	Red TileType = iota
	Green
	Blue
	Yellow
	Purple
	Orange
)

// MaxVariations is the number of distinct colors available.
const MaxVariations = 6

var tileTypeNames = [MaxVariations]string{"Red", "Green", "Blue", "Yellow", "Purple", "Orange"}

// tileTypeLetters is the one-letter form used by ParseGrid and Grid.String.
const tileTypeLetters = "RGBYPO"

// String returns the color name.
func (t TileType) String() string {
	if t < 0 || int(t) >= MaxVariations {
		return "None"
	}
	return tileTypeNames[t]
}

// Letter returns the single-letter form of the color, or '.' for None.
func (t TileType) Letter() byte {
	if t < 0 || int(t) >= MaxVariations {
		return '.'
	}
	return tileTypeLetters[t]
}

// TileTypeFromLetter parses the single-letter form produced by Letter.
func TileTypeFromLetter(r rune) (TileType, bool) {
	for i, l := range tileTypeLetters {
		if l == r {
			return TileType(i), true
		}
	}
	return None, false
}

// Tile is one cell's content. Tiles are created once per cell and then
// mutated in place: swaps and compaction move them, refills retype them.
// ID is stable for the lifetime of the grid, so a view layer can keep its
// own objects keyed by it.
type Tile struct {
	ID    int
	X, Y  int
	Type  TileType
	Valid bool // false once matched, until compaction refills it
}

// String returns a short description such as "Red (2,3)".
func (t *Tile) String() string {
	if t == nil {
		return "<nil>"
	}
	s := fmt.Sprintf("%s (%d,%d)", t.Type, t.X, t.Y)
	if !t.Valid {
		s += " invalid"
	}
	return s
}
