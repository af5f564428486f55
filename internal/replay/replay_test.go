package replay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/replay"
)

// playSession plays suggested swaps on a fresh board, with one deliberate
// rejected swap, and records everything.
func playSession(t *testing.T, seed int64, moves int) (replay.Record, *match3.Engine, int) {
	t.Helper()
	e := match3.NewEngine()
	_, err := e.Populate(7, 7, 4, seed)
	require.NoError(t, err)

	rec := replay.NewRecorder(7, 7, 4, seed)
	cleared := 0
	for i := 0; i < moves; i++ {
		if i == 3 {
			require.NoError(t, e.SetVariations(5))
		}
		a, b, ok := e.SuggestSwap()
		require.True(t, ok)
		rec.Add(a, b, e.Variations())
		cleared += e.Resolve(e.TrySwap(a, b)).Cleared
	}

	// Swapping a tile with itself is always rejected.
	self := e.Tile(0, 0)
	rec.Add(self, self, e.Variations())
	require.Nil(t, e.TrySwap(self, self))

	return rec.Record(), e, cleared
}

func TestPlayReproducesSession(t *testing.T) {
	rec, e, cleared := playSession(t, 31337, 10)
	require.Len(t, rec.Moves, 11)

	out, err := replay.Play(rec)
	require.NoError(t, err)
	assert.Equal(t, e.DebugGrid(), out.Board)
	assert.Equal(t, replay.Fingerprint(e.DebugGrid()), out.Fingerprint)
	assert.Equal(t, 10, out.Accepted)
	assert.Equal(t, 1, out.Rejected)
	assert.Equal(t, cleared, out.Cleared)
	assert.GreaterOrEqual(t, out.MaxCascade, 1)
}

func TestVerify(t *testing.T) {
	rec, e, _ := playSession(t, 99, 5)
	fp := replay.Fingerprint(e.DebugGrid())

	_, err := replay.Verify(rec, fp)
	require.NoError(t, err)

	_, err = replay.Verify(rec, fp+1)
	assert.ErrorIs(t, err, replay.ErrMismatch)

	rec.Moves = rec.Moves[:len(rec.Moves)-2]
	_, err = replay.Verify(rec, fp)
	assert.ErrorIs(t, err, replay.ErrMismatch)
}

func TestRecorderTracksVariationChanges(t *testing.T) {
	g, err := match3.ParseGrid([]string{"RGBY"})
	require.NoError(t, err)
	a, b := g.Get(0, 0), g.Get(1, 0)

	r := replay.NewRecorder(4, 1, 4, 1)
	r.Add(a, b, 4)
	r.Add(a, b, 5)
	r.Add(a, b, 5)
	r.Add(a, b, 6)

	got := r.Record().Moves
	require.Len(t, got, 4)
	assert.Equal(t, []int{0, 5, 0, 6}, []int{got[0].Variations, got[1].Variations, got[2].Variations, got[3].Variations})
	assert.Equal(t, replay.Move{AX: 0, AY: 0, BX: 1, BY: 0}, got[0])
	assert.Equal(t, 4, r.Len())
}

func TestRecordIsACopy(t *testing.T) {
	g, err := match3.ParseGrid([]string{"RGBY"})
	require.NoError(t, err)

	r := replay.NewRecorder(4, 1, 3, 1)
	r.Add(g.Get(0, 0), g.Get(1, 0), 3)
	snap := r.Record()
	r.Add(g.Get(1, 0), g.Get(2, 0), 3)

	assert.Len(t, snap.Moves, 1)
}

func TestPlayErrors(t *testing.T) {
	_, err := replay.Play(replay.Record{Width: 2, Height: 2, Variations: 3})
	assert.ErrorIs(t, err, match3.ErrInvalidBoard)

	_, err = replay.Play(replay.Record{
		Width: 5, Height: 5, Variations: 3, Seed: 1,
		Moves: []replay.Move{{AX: 4, AY: 4, BX: 5, BY: 4}},
	})
	assert.ErrorContains(t, err, "off the board")

	_, err = replay.Play(replay.Record{
		Width: 5, Height: 5, Variations: 3, Seed: 1,
		Moves: []replay.Move{{AX: 0, AY: 0, BX: 1, BY: 0, Variations: 9}},
	})
	assert.ErrorIs(t, err, match3.ErrInvalidBoard)
}

func TestMoveEncoding(t *testing.T) {
	moves := []replay.Move{
		{AX: 1, AY: 2, BX: 2, BY: 2},
		{AX: 0, AY: 0, BX: 0, BY: 1, Variations: 5},
	}
	text, err := replay.EncodeMoves(moves)
	require.NoError(t, err)
	assert.Contains(t, text, "v: 5")

	decoded, err := replay.DecodeMoves(text)
	require.NoError(t, err)
	assert.Equal(t, moves, decoded)

	empty, err := replay.EncodeMoves(nil)
	require.NoError(t, err)
	decoded, err = replay.DecodeMoves(empty)
	require.NoError(t, err)
	assert.Empty(t, decoded)

	_, err = replay.DecodeMoves("ax: [")
	assert.Error(t, err)
}
