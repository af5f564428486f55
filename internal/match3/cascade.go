package match3

// CascadeReport summarizes the resolution of one accepted swap.
type CascadeReport struct {
	Levels  int   // match waves, the swap's own match included
	Cleared int   // tiles removed over all waves
	Sizes   []int // tiles removed per wave
	Moved   int   // tiles moved or refilled by compaction
}

// Resolve runs the cascade after an accepted swap: compact, rescan, and
// repeat until a scan finds no match. matched is the result of TrySwap.
func (e *Engine) Resolve(matched []*Tile) CascadeReport {
	var r CascadeReport
	for len(matched) > 0 {
		r.Levels++
		r.Cleared += len(matched)
		r.Sizes = append(r.Sizes, len(matched))
		r.Moved += len(e.MoveTilesDown())
		matched = e.FindAndProcessMatches()
	}
	return r
}

// Step advances a cascade by one stage so callers can pace it: when any
// tile is invalid it compacts the board, otherwise it scans for matches.
// It reports the tiles involved and whether the board is now stable.
func (e *Engine) Step() (tiles []*Tile, compacted, stable bool) {
	for _, t := range e.grid.tiles {
		if !t.Valid {
			return e.MoveTilesDown(), true, false
		}
	}
	matched := e.FindAndProcessMatches()
	return matched, false, len(matched) == 0
}
