// Package replay records the swaps made on a board and re-runs them to
// reproduce, fingerprint and verify a game.
package replay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

// ErrMismatch is returned by Verify when a replay ends on a different board.
var ErrMismatch = errors.New("replay: board fingerprint mismatch")

// Move is one swap attempt. Variations is the color count in effect when
// the swap was made, 0 when it did not change.
type Move struct {
	AX         int `yaml:"ax"`
	AY         int `yaml:"ay"`
	BX         int `yaml:"bx"`
	BY         int `yaml:"by"`
	Variations int `yaml:"v,omitempty"`
}

// Record is everything needed to rebuild a board and its history.
type Record struct {
	Width      int
	Height     int
	Variations int
	Seed       int64
	Moves      []Move
}

// Recorder collects swap attempts as a game is played.
type Recorder struct {
	rec        Record
	variations int
}

// NewRecorder starts a record for a board populated with these parameters.
func NewRecorder(width, height, variations int, seed int64) *Recorder {
	return &Recorder{
		rec: Record{
			Width:      width,
			Height:     height,
			Variations: variations,
			Seed:       seed,
		},
		variations: variations,
	}
}

// Add records a swap attempt between a and b made with the given color count.
func (r *Recorder) Add(a, b *match3.Tile, variations int) {
	m := Move{AX: a.X, AY: a.Y, BX: b.X, BY: b.Y}
	if variations != r.variations {
		m.Variations = variations
		r.variations = variations
	}
	r.rec.Moves = append(r.rec.Moves, m)
}

// Len returns the number of recorded moves.
func (r *Recorder) Len() int {
	return len(r.rec.Moves)
}

// Record returns a copy of the record so far.
func (r *Recorder) Record() Record {
	rec := r.rec
	rec.Moves = append([]Move(nil), r.rec.Moves...)
	return rec
}

// Outcome is the result of re-running a record.
type Outcome struct {
	Board       string // final DebugGrid
	Fingerprint uint64
	Accepted    int
	Rejected    int
	Cleared     int
	MaxCascade  int
}

// Play rebuilds the board and applies every move, resolving accepted swaps.
func Play(rec Record, opts ...match3.Option) (Outcome, error) {
	var out Outcome

	e := match3.NewEngine(opts...)
	if _, err := e.Populate(rec.Width, rec.Height, rec.Variations, rec.Seed); err != nil {
		return out, fmt.Errorf("replay: populate: %w", err)
	}

	for i, m := range rec.Moves {
		if m.Variations != 0 {
			if err := e.SetVariations(m.Variations); err != nil {
				return out, fmt.Errorf("replay: move %d: %w", i+1, err)
			}
		}
		a, b := e.Tile(m.AX, m.AY), e.Tile(m.BX, m.BY)
		if a == nil || b == nil {
			return out, fmt.Errorf("replay: move %d: (%d,%d)-(%d,%d) is off the board", i+1, m.AX, m.AY, m.BX, m.BY)
		}

		matched := e.TrySwap(a, b)
		if matched == nil {
			out.Rejected++
			continue
		}
		out.Accepted++
		report := e.Resolve(matched)
		out.Cleared += report.Cleared
		out.MaxCascade = max(out.MaxCascade, report.Levels)
	}

	out.Board = e.DebugGrid()
	out.Fingerprint = Fingerprint(out.Board)
	return out, nil
}

// Verify re-runs rec and checks that it ends on the board with fingerprint.
func Verify(rec Record, fingerprint uint64, opts ...match3.Option) (Outcome, error) {
	out, err := Play(rec, opts...)
	if err != nil {
		return out, err
	}
	if out.Fingerprint != fingerprint {
		return out, fmt.Errorf("%w: got %016x, want %016x", ErrMismatch, out.Fingerprint, fingerprint)
	}
	return out, nil
}

// Fingerprint hashes a DebugGrid serialization.
func Fingerprint(board string) uint64 {
	return xxhash.Sum64String(board)
}

// EncodeMoves serializes moves as YAML for storage.
func EncodeMoves(moves []Move) (string, error) {
	if len(moves) == 0 {
		return "[]\n", nil
	}
	data, err := yaml.Marshal(moves)
	if err != nil {
		return "", fmt.Errorf("replay: encode moves: %w", err)
	}
	return string(data), nil
}

// DecodeMoves parses the output of EncodeMoves.
func DecodeMoves(s string) ([]Move, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var moves []Move
	if err := yaml.Unmarshal([]byte(s), &moves); err != nil {
		return nil, fmt.Errorf("replay: decode moves: %w", err)
	}
	return moves, nil
}
