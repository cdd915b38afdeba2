package search

// A Search visits the blocks of a partitioned query in the order given by
// the permutation Pi and bounds the cumulative error count after each
// block: at least L[i] and at most U[i] errors once block i is done.
type Search struct {
	Pi []uint8
	L  []uint8
	U  []uint8
}

// Blocks returns the number of query blocks the search spans.
func (s Search) Blocks() int { return len(s.Pi) }

// Scheme is a set of searches whose admissible error distributions
// together cover every distribution within the target budget.
type Scheme []Search

// optimumSchemes are pre-planned schemes for common (min, max) error pairs.
// Each avoids enumerating the same alignment through two searches.
var optimumSchemes = map[[2]int]Scheme{
	{0, 0}: {
		{Pi: []uint8{2, 1, 3}, L: []uint8{0, 0, 0}, U: []uint8{0, 0, 0}},
	},
	{0, 1}: {
		{Pi: []uint8{1, 2}, L: []uint8{0, 0}, U: []uint8{0, 1}},
		{Pi: []uint8{2, 1}, L: []uint8{0, 1}, U: []uint8{0, 1}},
	},
	{1, 1}: {
		{Pi: []uint8{1, 2}, L: []uint8{0, 1}, U: []uint8{0, 1}},
		{Pi: []uint8{2, 1}, L: []uint8{0, 1}, U: []uint8{0, 1}},
	},
	{0, 2}: {
		{Pi: []uint8{1, 2, 3, 4}, L: []uint8{0, 0, 1, 1}, U: []uint8{0, 0, 2, 2}},
		{Pi: []uint8{3, 2, 1, 4}, L: []uint8{0, 0, 0, 0}, U: []uint8{0, 1, 1, 2}},
		{Pi: []uint8{4, 3, 2, 1}, L: []uint8{0, 0, 0, 2}, U: []uint8{0, 1, 2, 2}},
	},
	{0, 3}: {
		{Pi: []uint8{1, 2, 3, 4, 5}, L: []uint8{0, 0, 0, 0, 3}, U: []uint8{0, 2, 2, 3, 3}},
		{Pi: []uint8{2, 3, 4, 5, 1}, L: []uint8{0, 0, 0, 2, 2}, U: []uint8{0, 1, 2, 2, 3}},
		{Pi: []uint8{3, 4, 5, 2, 1}, L: []uint8{0, 0, 1, 1, 1}, U: []uint8{0, 1, 1, 2, 3}},
		{Pi: []uint8{5, 4, 3, 2, 1}, L: []uint8{0, 0, 0, 0, 0}, U: []uint8{0, 0, 3, 3, 3}},
	},
}

// OptimumScheme returns the pre-planned scheme for the given error bounds,
// if one is shipped.
func OptimumScheme(minErrors, maxErrors int) (Scheme, bool) {
	s, ok := optimumSchemes[[2]int{minErrors, maxErrors}]
	return s, ok
}

// TrivialScheme covers arbitrary bounds with a single one-block search; the
// driver then degenerates into plain backtracking.
func TrivialScheme(minErrors, maxErrors int) Scheme {
	return Scheme{{
		Pi: []uint8{1},
		L:  []uint8{uint8(minErrors)},
		U:  []uint8{uint8(maxErrors)},
	}}
}

// ForErrors picks the optimum scheme when available and falls back to the
// trivial scheme otherwise.
func ForErrors(minErrors, maxErrors int) Scheme {
	if s, ok := OptimumScheme(minErrors, maxErrors); ok {
		return s
	}
	return TrivialScheme(minErrors, maxErrors)
}

// blockInfo is the per-search geometry of a partitioned query: cumulative
// block lengths in visiting order, and the query position where the first
// block starts.
type blockInfo struct {
	cum   []int
	start int
}

// schemeBlockInfo splits a query of length n into as many equal blocks as
// the scheme uses (the remainder spread over the first blocks) and derives
// each search's cumulative scheme-order lengths and start position.
func schemeBlockInfo(scheme Scheme, n int) []blockInfo {
	blocks := scheme[0].Blocks()
	base := n / blocks
	rest := n - blocks*base

	lengths := make([]int, blocks)
	for i := range lengths {
		lengths[i] = base
		if i < rest {
			lengths[i]++
		}
	}

	info := make([]blockInfo, len(scheme))
	for si, s := range scheme {
		cum := make([]int, blocks)
		start := 0
		cum[0] = lengths[s.Pi[0]-1]
		for i := 1; i < blocks; i++ {
			cum[i] = cum[i-1] + lengths[s.Pi[i]-1]
			if s.Pi[i] < s.Pi[0] {
				start += cum[i] - cum[i-1]
			}
		}
		info[si] = blockInfo{cum: cum, start: start}
	}
	return info
}
