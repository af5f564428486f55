package match3

import "fmt"

// Offset is a cell position relative to a pattern anchor.
type Offset struct {
	DX, DY int
}

// Pattern describes a near-match: two same-type tiles at Required and a
// gap cell that would complete a run of three if one of the Candidates
// of that type were swapped into it. Candidates are tried in order.
type Pattern struct {
	Name       string
	Required   []Offset
	Gap        Offset
	Candidates []Offset
}

// requiredPerPattern is the number of Required offsets every pattern carries.
const requiredPerPattern = 2

// patternTable is scanned in order at every anchor; the order decides
// which hint is returned when several apply.
var patternTable = [...]Pattern{
	{
		Name:       "XXO-h",
		Required:   []Offset{{0, 0}, {1, 0}},
		Gap:        Offset{2, 0},
		Candidates: []Offset{{2, 1}, {2, -1}, {3, 0}},
	},
	{
		Name:       "XOX-h",
		Required:   []Offset{{0, 0}, {2, 0}},
		Gap:        Offset{1, 0},
		Candidates: []Offset{{1, 1}, {1, -1}},
	},
	{
		Name:       "OXX-h",
		Required:   []Offset{{1, 0}, {2, 0}},
		Gap:        Offset{0, 0},
		Candidates: []Offset{{0, 1}, {0, -1}, {-1, 0}},
	},
	{
		Name:       "XXO-v",
		Required:   []Offset{{0, 0}, {0, 1}},
		Gap:        Offset{0, 2},
		Candidates: []Offset{{1, 2}, {-1, 2}, {0, 3}},
	},
	{
		Name:       "XOX-v",
		Required:   []Offset{{0, 0}, {0, 2}},
		Gap:        Offset{0, 1},
		Candidates: []Offset{{1, 1}, {-1, 1}},
	},
	{
		Name:       "OXX-v",
		Required:   []Offset{{0, 1}, {0, 2}},
		Gap:        Offset{0, 0},
		Candidates: []Offset{{1, 0}, {-1, 0}, {0, -1}},
	},
}

// Patterns returns a copy of the pre-match pattern table in scan order.
func Patterns() []Pattern {
	out := make([]Pattern, len(patternTable))
	copy(out, patternTable[:])
	return out
}

// TryPattern checks one pattern at anchor. All required cells must exist,
// be valid and share a type; the first candidate of that type is returned.
// Returns nil when the pattern does not apply.
func (f *Finder) TryPattern(g *Grid, anchor *Tile, required, candidates []Offset) *Tile {
	if len(required) != requiredPerPattern {
		panic(fmt.Sprintf("match3: pattern has %d required offsets, want %d", len(required), requiredPerPattern))
	}
	if anchor == nil {
		return nil
	}

	typ := None
	for i, o := range required {
		t := g.Get(anchor.X+o.DX, anchor.Y+o.DY)
		if !live(t) {
			return nil
		}
		if i == 0 {
			typ = t.Type
		} else if t.Type != typ {
			return nil
		}
	}

	for _, o := range candidates {
		c := g.Get(anchor.X+o.DX, anchor.Y+o.DY)
		if live(c) && c.Type == typ {
			return c
		}
	}
	return nil
}
