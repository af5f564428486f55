// Package soak plays many seeded boards in parallel and checks the board
// invariants after every move: no standing matches, a playable move is
// always available and suggested swaps are always accepted.
package soak

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

// Config describes a soak run.
type Config struct {
	Width      int
	Height     int
	Variations int
	FirstSeed  int64
	Seeds      int // Number of boards, seeded FirstSeed, FirstSeed+1, ...
	Moves      int // Suggested swaps played per board
	Workers    int // Boards checked concurrently, <= 0 means one
	Logger     *log.Logger
}

// Violation is a broken invariant.
type Violation struct {
	Seed   int64
	Move   int // 0 for the freshly populated board
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("seed %d move %d: %s", v.Seed, v.Move, v.Reason)
}

// SeedResult is the outcome of playing one board.
type SeedResult struct {
	Seed       int64
	Accepted   int
	Cleared    int
	Depths     []int // Cascade depth of every accepted swap
	Violations []Violation
}

// Report aggregates a soak run.
type Report struct {
	Config     Config
	Results    []SeedResult
	Accepted   int
	Cleared    int
	Depths     []float64
	MeanDepth  float64
	StdDepth   float64
	MaxDepth   int
	Violations []Violation
	Elapsed    time.Duration
}

// OK reports whether no invariant was broken.
func (r Report) OK() bool {
	return len(r.Violations) == 0
}

// Run plays cfg.Seeds boards on cfg.Workers goroutines, one engine per
// board. It stops early when ctx is canceled or a board cannot be built.
func Run(ctx context.Context, cfg Config) (Report, error) {
	start := time.Now()
	results := make([]SeedResult, cfg.Seeds)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))

	for i := range cfg.Seeds {
		seed := cfg.FirstSeed + int64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := runSeed(cfg, seed)
			if err != nil {
				return fmt.Errorf("soak: seed %d: %w", seed, err)
			}
			results[i] = res
			if cfg.Logger != nil {
				cfg.Logger.Debug("seed checked", "seed", seed, "accepted", res.Accepted, "violations", len(res.Violations))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return summarize(cfg, results, time.Since(start)), nil
}

// runSeed plays one board with suggested swaps, checking it after each.
func runSeed(cfg Config, seed int64) (SeedResult, error) {
	res := SeedResult{Seed: seed}
	e := match3.NewEngine()
	if _, err := e.Populate(cfg.Width, cfg.Height, cfg.Variations, seed); err != nil {
		return res, err
	}

	finder := match3.NewFinder()
	violate := func(move int, format string, args ...any) {
		res.Violations = append(res.Violations, Violation{Seed: seed, Move: move, Reason: fmt.Sprintf(format, args...)})
	}
	check := func(move int) bool {
		if m := finder.FindAllMatches(e.Grid()); len(m) > 0 {
			violate(move, "%d tiles in standing matches", len(m))
			return false
		}
		if _, _, ok := e.SuggestSwap(); !ok {
			violate(move, "no playable move")
			return false
		}
		return true
	}

	if !check(0) {
		return res, nil
	}

	for move := 1; move <= cfg.Moves; move++ {
		a, b, _ := e.SuggestSwap()
		ax, ay, bx, by := a.X, a.Y, b.X, b.Y

		matched := e.TrySwap(a, b)
		if matched == nil {
			violate(move, "suggested swap (%d,%d)-(%d,%d) rejected", ax, ay, bx, by)
			return res, nil
		}
		if a.X != bx || a.Y != by || b.X != ax || b.Y != ay {
			violate(move, "swapped tiles did not exchange positions")
		}
		if _, ok := lo.Find(matched, func(t *match3.Tile) bool { return t.Valid }); ok {
			violate(move, "matched tile left valid")
		}

		report := e.Resolve(matched)
		res.Accepted++
		res.Cleared += report.Cleared
		res.Depths = append(res.Depths, report.Levels)

		if !check(move) {
			return res, nil
		}
	}
	return res, nil
}

func summarize(cfg Config, results []SeedResult, elapsed time.Duration) Report {
	r := Report{
		Config:   cfg,
		Results:  results,
		Accepted: lo.SumBy(results, func(s SeedResult) int { return s.Accepted }),
		Cleared:  lo.SumBy(results, func(s SeedResult) int { return s.Cleared }),
		Elapsed:  elapsed,
	}
	r.Violations = lo.FlatMap(results, func(s SeedResult, _ int) []Violation { return s.Violations })

	depths := lo.FlatMap(results, func(s SeedResult, _ int) []int { return s.Depths })
	r.Depths = lo.Map(depths, func(d int, _ int) float64 { return float64(d) })
	if len(depths) > 0 {
		r.MaxDepth = lo.Max(depths)
		r.MeanDepth, r.StdDepth = stat.MeanStdDev(r.Depths, nil)
		if len(depths) == 1 {
			r.StdDepth = 0 // sample stddev of one value is NaN
		}
	}
	return r
}

// Fprint writes a human readable summary with a cascade depth histogram.
func (r Report) Fprint(w io.Writer) error {
	c := r.Config
	fmt.Fprintf(w, "boards:     %d (%dx%d, %d colors, seeds %d..%d)\n",
		len(r.Results), c.Width, c.Height, c.Variations, c.FirstSeed, c.FirstSeed+int64(c.Seeds)-1)
	fmt.Fprintf(w, "swaps:      %d accepted, %d tiles cleared\n", r.Accepted, r.Cleared)
	fmt.Fprintf(w, "cascade:    mean %.2f, stddev %.2f, max %d\n", r.MeanDepth, r.StdDepth, r.MaxDepth)
	fmt.Fprintf(w, "elapsed:    %v\n", r.Elapsed.Round(time.Millisecond))

	if len(r.Depths) > 0 && lo.Min(r.Depths) < float64(r.MaxDepth) {
		fmt.Fprintln(w, "\ncascade depth histogram:")
		bins := max(min(r.MaxDepth, 10), 1)
		if err := histogram.Fprint(w, histogram.Hist(bins, r.Depths), histogram.Linear(40)); err != nil {
			return err
		}
	}

	if r.OK() {
		_, err := fmt.Fprintln(w, "\nno violations")
		return err
	}
	fmt.Fprintf(w, "\n%d violations:\n", len(r.Violations))
	for _, v := range r.Violations {
		fmt.Fprintf(w, "  %s\n", v)
	}
	return nil
}
