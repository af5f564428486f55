package match3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

type pos struct{ X, Y int }

func positions(tiles []*match3.Tile) []pos {
	if tiles == nil {
		return nil
	}
	out := make([]pos, len(tiles))
	for i, t := range tiles {
		out[i] = pos{t.X, t.Y}
	}
	return out
}

func TestFindRun(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		seed pos
		want []pos
	}{
		{
			name: "horizontal from left end",
			rows: []string{"RRRG"},
			seed: pos{0, 0},
			want: []pos{{0, 0}, {1, 0}, {2, 0}},
		},
		{
			name: "horizontal from middle lists right before left",
			rows: []string{"RRRG"},
			seed: pos{1, 0},
			want: []pos{{1, 0}, {2, 0}, {0, 0}},
		},
		{
			name: "L shape lists row before column",
			rows: []string{
				"RGBY",
				"RGBY",
				"RRRG",
			},
			seed: pos{0, 0},
			want: []pos{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {0, 2}},
		},
		{
			name: "single neighbor on other axis joins the match",
			rows: []string{
				"RGBY",
				"RRRG",
			},
			seed: pos{0, 0},
			want: []pos{{0, 0}, {1, 0}, {2, 0}, {0, 1}},
		},
		{
			name: "single neighbor above a row run",
			rows: []string{
				"GBGB",
				"RBGY",
				"RRRG",
			},
			seed: pos{0, 0},
			want: []pos{{0, 0}, {1, 0}, {2, 0}, {0, 1}},
		},
		{
			name: "single neighbor beside a column run",
			rows: []string{
				"GRBY",
				"BRRY",
				"GRBG",
			},
			seed: pos{1, 1},
			want: []pos{{1, 1}, {2, 1}, {1, 2}, {1, 0}},
		},
		{
			name: "vertical lists up before down",
			rows: []string{
				"GRBY",
				"BRGY",
				"GRBG",
			},
			seed: pos{1, 1},
			want: []pos{{1, 1}, {1, 2}, {1, 0}},
		},
		{
			name: "pair is not a match",
			rows: []string{"RRGB"},
			seed: pos{0, 0},
			want: nil,
		},
		{
			name: "invalid tile breaks the run",
			rows: []string{"R.RRY"},
			seed: pos{2, 0},
			want: nil,
		},
		{
			name: "invalid seed",
			rows: []string{".RRR"},
			seed: pos{0, 0},
			want: nil,
		},
	}

	f := match3.NewFinder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, tt.rows...)
			got := f.FindRun(g, g.Get(tt.seed.X, tt.seed.Y))
			assert.Equal(t, tt.want, positions(got))
		})
	}
}

func TestFindRunReturnsFreshSlice(t *testing.T) {
	g := mustParse(t, "RRRG", "GBBB")
	f := match3.NewFinder()

	first := f.FindRun(g, g.Get(0, 1))
	second := f.FindRun(g, g.Get(1, 0))

	assert.Equal(t, []pos{{0, 1}, {1, 1}, {2, 1}}, positions(first))
	assert.Equal(t, []pos{{1, 0}, {2, 0}, {3, 0}}, positions(second))
}

func TestFindRunPanicsOnValidNone(t *testing.T) {
	g := match3.NewGrid(4, 1)
	tile := g.Get(0, 0)
	tile.Valid = true

	assert.Panics(t, func() {
		match3.NewFinder().FindRun(g, tile)
	})
}

func TestFindAllMatchesOrder(t *testing.T) {
	g := mustParse(t,
		"GGGB",
		"RBYB",
		"RYBB",
	)
	got := match3.NewFinder().FindAllMatches(g)
	want := []pos{{3, 0}, {2, 0}, {3, 1}, {3, 2}, {0, 2}, {1, 2}, {2, 2}}
	assert.Equal(t, want, positions(got))
}

func TestFindAllMatchesDeduplicatesCrossings(t *testing.T) {
	g := mustParse(t,
		"GRGB",
		"RRRY",
		"BRYG",
	)
	got := match3.NewFinder().FindAllMatches(g)
	assert.ElementsMatch(t, []pos{{1, 0}, {1, 1}, {1, 2}, {0, 1}, {2, 1}}, positions(got))
	assert.Len(t, got, 5)
}

func TestFindAllMatchesStableBoard(t *testing.T) {
	g := mustParse(t,
		"RGBY",
		"GBYR",
	)
	assert.Nil(t, match3.NewFinder().FindAllMatches(g))
}

func TestFindNearPairs(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		seed pos
		axis match3.Axis
		want []pos
	}{
		{"one step right", []string{"RRGB"}, pos{0, 0}, match3.Horizontal, []pos{{1, 0}}},
		{"two steps left", []string{"RGRB"}, pos{2, 0}, match3.Horizontal, []pos{{0, 0}}},
		{"stops at two", []string{"RRRRR"}, pos{2, 0}, match3.Horizontal, []pos{{3, 0}, {4, 0}}},
		{"forward before backward", []string{"RGRYR"}, pos{2, 0}, match3.Horizontal, []pos{{4, 0}, {0, 0}}},
		{"vertical", []string{"R", "G", "R"}, pos{0, 0}, match3.Vertical, []pos{{0, 2}}},
		{"none", []string{"RGBY"}, pos{0, 0}, match3.Horizontal, nil},
	}

	f := match3.NewFinder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, tt.rows...)
			got := f.FindNearPairs(g, g.Get(tt.seed.X, tt.seed.Y), tt.axis)
			assert.Equal(t, tt.want, positions(got))
		})
	}
}

// patternBoard fills a 6x6 board with Green and paints the given cells Red.
func patternBoard(t *testing.T, anchor pos, cells ...match3.Offset) *match3.Grid {
	t.Helper()
	rows := make([][]byte, 6)
	for i := range rows {
		rows[i] = []byte("GGGGGG")
	}
	for _, c := range cells {
		x, y := anchor.X+c.DX, anchor.Y+c.DY
		rows[5-y][x] = 'R'
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = string(r)
	}
	return mustParse(t, lines...)
}

func TestTryPatternEveryShape(t *testing.T) {
	anchor := pos{2, 2}
	f := match3.NewFinder()

	for _, p := range match3.Patterns() {
		t.Run(p.Name, func(t *testing.T) {
			for i, cand := range p.Candidates {
				g := patternBoard(t, anchor, append([]match3.Offset{cand}, p.Required...)...)
				got := f.TryPattern(g, g.Get(anchor.X, anchor.Y), p.Required, p.Candidates)
				require.NotNil(t, got, "candidate %d", i)
				assert.Equal(t, pos{anchor.X + cand.DX, anchor.Y + cand.DY}, pos{got.X, got.Y})
			}

			g := patternBoard(t, anchor, p.Required...)
			assert.Nil(t, f.TryPattern(g, g.Get(anchor.X, anchor.Y), p.Required, p.Candidates))
		})
	}
}

func TestTryPatternCandidateOrder(t *testing.T) {
	p := match3.Patterns()[0]
	anchor := pos{1, 1}
	g := patternBoard(t, anchor, append(append([]match3.Offset{}, p.Required...), p.Candidates...)...)

	got := match3.NewFinder().TryPattern(g, g.Get(anchor.X, anchor.Y), p.Required, p.Candidates)
	require.NotNil(t, got)
	first := p.Candidates[0]
	assert.Equal(t, pos{anchor.X + first.DX, anchor.Y + first.DY}, pos{got.X, got.Y})
}

func TestTryPatternPanicsOnCorruptTable(t *testing.T) {
	g := mustParse(t, "RRGR")
	assert.Panics(t, func() {
		match3.NewFinder().TryPattern(g, g.Get(0, 0),
			[]match3.Offset{{0, 0}, {1, 0}, {3, 0}}, nil)
	})
}

func TestPatternTableOrder(t *testing.T) {
	var names []string
	for _, p := range match3.Patterns() {
		names = append(names, p.Name)
		assert.Len(t, p.Required, 2, p.Name)
	}
	assert.Equal(t, []string{"XXO-h", "XOX-h", "OXX-h", "XXO-v", "XOX-v", "OXX-v"}, names)
}

func TestFindFirstPossibleMatch(t *testing.T) {
	g := mustParse(t,
		"GBGB",
		"RRBR",
	)
	f := match3.NewFinder()

	got := f.FindFirstPossibleMatch(g)
	assert.Equal(t, []pos{{0, 0}, {1, 0}, {3, 0}}, positions(got))

	m, ok := f.FindFirstMove(g)
	require.True(t, ok)
	assert.Equal(t, "XXO-h", m.Pattern)
	assert.Equal(t, pos{3, 0}, pos{m.From.X, m.From.Y})
	assert.Equal(t, pos{2, 0}, pos{m.To.X, m.To.Y})
}

func TestFindFirstPossibleMatchDeadBoard(t *testing.T) {
	g := mustParse(t,
		"RGBR",
		"GBRG",
		"BRGB",
	)
	f := match3.NewFinder()
	assert.Nil(t, f.FindFirstPossibleMatch(g))
	_, ok := f.FindFirstMove(g)
	assert.False(t, ok)
}
