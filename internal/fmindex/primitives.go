// Package fmindex provides unidirectional and bidirectional FM indices over
// small-alphabet texts and the cursors that walk their implicit suffix and
// affix trees one character at a time.
//
// External symbols are 0-based ranks. Internally rank+1 is stored so byte 0
// can serve as the sentinel; the compressed suffix arrays are built over the
// reversed text, which makes a right-extension of the query a backward
// search in the CSA.
package fmindex

import "SeqSearch/internal/csa"

// backwardSearch narrows the suffix-array interval [l, r] for some string ω
// to the interval for c·ω (compact code c). Returns the new interval and
// whether it is non-empty; on failure the input interval is unchanged by
// the caller.
func backwardSearch(c *csa.CSA, l, r int, comp byte) (int, int, bool) {
	m := c.Mapping()
	cBegin := m.C(int(comp))

	// A full-index interval needs no rank query.
	if r-l+1 == c.Size() {
		l2 := cBegin
		r2 := m.C(int(comp)+1) - 1
		return l2, r2, r2 >= l2
	}

	char := m.ToChar(comp)
	l2 := cBegin + c.BWTRank(l, char)
	r2 := cBegin + c.BWTRank(r+1, char) - 1
	return l2, r2, r2 >= l2
}

// bidirectionalSearch extends matched twin intervals by compact code c on
// the primary side (prepend in CSA orientation) while keeping the mirror
// interval synchronized. lFwd/rFwd index the CSA the extension runs on;
// lBwd/rBwd are the mirror interval. Both returned intervals have equal
// counts.
func bidirectionalSearch(c *csa.CSA, lFwd, rFwd, lBwd, rBwd int, comp byte) (lf, rf, lb, rb int, ok bool) {
	m := c.Mapping()
	cBegin := m.C(int(comp))

	if rFwd-lFwd+1 == c.Size() {
		lf = cBegin
		rf = m.C(int(comp)+1) - 1
		return lf, rf, lf, rf, rf >= lf
	}

	char := m.ToChar(comp)
	rankL, smaller, greater := c.LexCount(lFwd, rFwd+1, char)
	rankR := rFwd - lFwd - smaller - greater + rankL
	lf = cBegin + rankL
	rf = cBegin + rankR
	lb = lBwd + smaller
	rb = rBwd - greater
	return lf, rf, lb, rb, rf >= lf
}

// bidirectionalSearchCycle is the variant used when cycling to the next
// larger sibling edge from the same parent interval. lFwd/rFwd is the
// parent interval on the extension side; lBwd/rBwd is the current mirror
// interval. The new mirror interval sits immediately to the right of the
// previous one.
func bidirectionalSearchCycle(c *csa.CSA, lFwd, rFwd, lBwd, rBwd int, comp byte) (lf, rf, lb, rb int, ok bool) {
	m := c.Mapping()
	cBegin := m.C(int(comp))

	char := m.ToChar(comp)
	rankL, smaller, greater := c.LexCount(lFwd, rFwd+1, char)
	rankR := rFwd - lFwd - smaller - greater + rankL
	lf = cBegin + rankL
	rf = cBegin + rankR
	lb = rBwd + 1
	rb = rBwd + 1 + rankR - rankL
	return lf, rf, lb, rb, rf >= lf
}
