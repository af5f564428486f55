package soak

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

func TestRunFindsNoViolations(t *testing.T) {
	cfg := Config{Width: 6, Height: 6, Variations: 4, FirstSeed: 1, Seeds: 12, Moves: 15, Workers: 4}

	report, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.True(t, report.OK(), "violations: %v", report.Violations)
	assert.Len(t, report.Results, 12)
	assert.Equal(t, 12*15, report.Accepted)
	assert.Len(t, report.Depths, 12*15)
	assert.GreaterOrEqual(t, report.MaxDepth, 1)
	assert.GreaterOrEqual(t, report.MeanDepth, 1.0)
	assert.GreaterOrEqual(t, report.Cleared, 3*report.Accepted)

	for i, res := range report.Results {
		assert.Equal(t, int64(i+1), res.Seed, "results stay in seed order")
	}
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := Config{Width: 5, Height: 7, Variations: 3, FirstSeed: 100, Seeds: 6, Moves: 10, Workers: 3}

	r1, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	cfg.Workers = 1
	r2, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, r1.Results, r2.Results)
}

func TestRunRejectsInvalidBoard(t *testing.T) {
	_, err := Run(context.Background(), Config{Width: 3, Height: 3, Variations: 3, Seeds: 2, Workers: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, match3.ErrInvalidBoard)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Config{Width: 8, Height: 8, Variations: 5, Seeds: 50, Moves: 5, Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReportFprint(t *testing.T) {
	report, err := Run(context.Background(), Config{Width: 7, Height: 7, Variations: 4, FirstSeed: 1, Seeds: 8, Moves: 20, Workers: 2})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.Fprint(&buf))

	out := buf.String()
	assert.Contains(t, out, "boards:     8 (7x7, 4 colors, seeds 1..8)")
	assert.Contains(t, out, "no violations")
}

func TestReportFprintViolations(t *testing.T) {
	report := summarize(Config{Width: 4, Height: 4, Variations: 3, Seeds: 1}, []SeedResult{{
		Seed:       9,
		Violations: []Violation{{Seed: 9, Move: 2, Reason: "no playable move"}},
	}}, 0)
	require.False(t, report.OK())

	var buf bytes.Buffer
	require.NoError(t, report.Fprint(&buf))
	assert.Contains(t, buf.String(), "1 violations:")
	assert.Contains(t, buf.String(), "seed 9 move 2: no playable move")
}

func TestSummarizeSingleDepth(t *testing.T) {
	report := summarize(Config{}, []SeedResult{{Seed: 1, Accepted: 1, Cleared: 3, Depths: []int{2}}}, 0)

	assert.Equal(t, 2.0, report.MeanDepth)
	assert.Equal(t, 0.0, report.StdDepth)
	assert.Equal(t, 2, report.MaxDepth)
}
