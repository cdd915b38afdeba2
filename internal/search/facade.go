package search

import (
	"errors"
	"sort"

	"SeqSearch/internal/fmindex"
)

// Result holds the matches of one query, in the form the configuration
// asked for.
type Result struct {
	// Positions are deduplicated, ascending text positions
	// (OutputPositions).
	Positions []int `json:"positions,omitempty"`

	// Cursors are the raw hit snapshots (OutputCursors).
	Cursors []Cursor `json:"-"`
}

var ErrEmptyQuery = errors.New("search: query must not be empty")

// Run searches every query against the index under one configuration and
// returns one result per query, in input order. With an OnHit delegate
// configured, hits are delivered to it in discovery order instead and the
// returned results stay empty.
func Run(idx *fmindex.BiIndex, queries [][]byte, cfg Config) ([]Result, error) {
	results := make([]Result, len(queries))
	for qi, q := range queries {
		r, err := runSingle(idx, qi, q, &cfg)
		if err != nil {
			return nil, err
		}
		results[qi] = r
	}
	return results, nil
}

// RunSingle searches one query; see Run.
func RunSingle(idx *fmindex.BiIndex, query []byte, cfg Config) (Result, error) {
	return runSingle(idx, 0, query, &cfg)
}

func runSingle(idx *fmindex.BiIndex, queryID int, query []byte, cfg *Config) (Result, error) {
	if len(query) == 0 {
		return Result{}, ErrEmptyQuery
	}
	budget, err := cfg.budgetFor(len(query))
	if err != nil {
		return Result{}, err
	}

	var hits []Cursor
	delivered := 0
	var deliver Delegate
	if cfg.OnHit != nil {
		deliver = func(cur Cursor) bool {
			delivered++
			return cfg.OnHit(Hit{QueryID: queryID, Cursor: cur})
		}
	} else {
		deliver = func(cur Cursor) bool {
			delivered++
			hits = append(hits, cur)
			return false
		}
	}

	switch cfg.Mode {
	case ModeBest:
		// Raise the total until something matches; one hit is enough.
		for total := 0; total <= budget.Total && delivered == 0; total++ {
			b := budget
			b.Total = total
			driveTrivial(idx, query, b, true, deliver)
		}

	case ModeAllBest:
		for total := 0; total <= budget.Total && delivered == 0; total++ {
			b := budget
			b.Total = total
			driveTrivial(idx, query, b, false, deliver)
		}

	case ModeStrata:
		found := false
		probe := func(Cursor) bool { found = true; return false }
		for total := 0; total <= budget.Total && !found; total++ {
			b := budget
			b.Total = total
			Trivial(idx, query, b, true, probe)
			if found {
				b.Total = total + cfg.Strata
				driveTrivial(idx, query, b, false, deliver)
			}
		}

	default: // ModeAll
		drive(idx, query, budget, false, deliver)
	}

	if cfg.OnHit != nil {
		return Result{}, nil
	}
	return assemble(hits, cfg), nil
}

// drive picks the driver: pre-planned schemes handle the
// substitutions-only case, everything else backtracks trivially. A query
// shorter than the scheme's block count falls back to backtracking as
// well.
func drive(idx *fmindex.BiIndex, query []byte, budget Budget, abortOnHit bool, fn Delegate) {
	if budget.Insertion > 0 || budget.Deletion > 0 {
		Trivial(idx, query, budget, abortOnHit, fn)
		return
	}
	scheme := ForErrors(0, budget.Total)
	if len(query) < scheme[0].Blocks() {
		Trivial(idx, query, budget, abortOnHit, fn)
		return
	}
	RunScheme(idx, query, scheme, budget, abortOnHit, fn)
}

// driveTrivial is used by the modes that re-run the search with a growing
// budget and need per-level control.
func driveTrivial(idx *fmindex.BiIndex, query []byte, budget Budget, abortOnHit bool, fn Delegate) {
	Trivial(idx, query, budget, abortOnHit, fn)
}

// assemble converts collected snapshots into the configured output form.
func assemble(hits []Cursor, cfg *Config) Result {
	if cfg.Output == OutputCursors {
		return Result{Cursors: hits}
	}

	if cfg.Mode == ModeBest {
		// A single snapshot may still cover several text positions; the
		// first suffices.
		if len(hits) == 0 {
			return Result{}
		}
		it := hits[0].LazyLocate()
		if !it.Next() {
			return Result{}
		}
		return Result{Positions: []int{it.Pos()}}
	}

	var positions []int
	for i := range hits {
		positions = append(positions, hits[i].Locate()...)
	}
	sort.Ints(positions)
	dedup := positions[:0]
	for i, p := range positions {
		if i == 0 || p != positions[i-1] {
			dedup = append(dedup, p)
		}
	}
	return Result{Positions: dedup}
}
