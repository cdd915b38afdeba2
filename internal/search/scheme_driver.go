package search

import "SeqSearch/internal/fmindex"

// RunScheme searches query with every search of the scheme, extending a
// bidirectional cursor block by block in the order each search prescribes.
// Every reported hit satisfies the cumulative per-block error bounds of the
// search that produced it. Returns whether the search was aborted.
func RunScheme(idx *fmindex.BiIndex, query []byte, scheme Scheme, budget Budget,
	abortOnHit bool, fn Delegate) bool {

	info := schemeBlockInfo(scheme, len(query))
	for si := range scheme {
		st := state{
			query:      query,
			search:     scheme[si],
			cum:        info[si].cum,
			abortOnHit: abortOnHit,
			fn:         fn,
		}
		start := info[si].start
		if st.step(idx.Root(), start, start+1, 0, 0, true, budget) {
			return true
		}
	}
	return false
}

// state bundles the per-search constants so the recursion passes only what
// varies. The covered query range is the open interval (lb, rb): the
// symbols matched so far are query[lb .. rb-2] in 0-based terms.
type state struct {
	query      []byte
	search     Search
	cum        []int
	abortOnHit bool
	fn         Delegate
}

func (st *state) blocks() int { return st.search.Blocks() }

// nextBlock returns the follow-up block id and its extension direction.
// Staying on the final block keeps the direction it was entered with; a
// single-block search always runs to the right.
func (st *state) nextBlock(blockID int) (int, bool) {
	id := blockID + 1
	if id > st.blocks()-1 {
		id = st.blocks() - 1
	}
	if id == 0 {
		return 0, true
	}
	return id, st.search.Pi[id] > st.search.Pi[id-1]
}

// step is one level of the block recursion: report, extend exactly, or
// branch into insertions and child edges.
func (st *state) step(cur fmindex.BiCursor, lb, rb, errorsSpent, blockID int,
	goRight bool, errLeft Budget) bool {

	maxLeftInBlock := int(st.search.U[blockID]) - errorsSpent
	minLeftInBlock := int(st.search.L[blockID]) - errorsSpent
	if minLeftInBlock < 0 {
		minLeftInBlock = 0
	}
	if maxLeftInBlock < 0 {
		// A boundary insertion or deletion overshot this block's upper
		// bound; the per-block invariant rules the whole branch out.
		return false
	}

	// Done: the whole query is covered and the lower bound is satisfied.
	if minLeftInBlock == 0 && lb == 0 && rb == len(st.query)+1 {
		return st.fn(cur) || st.abortOnHit
	}

	consumed := rb - lb - 1

	// Exact segment: no errors may be spent here, so the rest of the block
	// is matched in one multi-symbol extension.
	if (maxLeftInBlock == 0 && consumed != st.cum[blockID]) ||
		(errLeft.Total == 0 && minLeftInBlock == 0) {
		return st.exact(cur, lb, rb, errorsSpent, blockID, goRight, errLeft)
	}

	if errLeft.Total == 0 {
		return false
	}

	// Insertion: advance in the query without extending the cursor.
	if errLeft.Insertion > 0 {
		lb2, rb2 := lb, rb
		if goRight {
			rb2++
		} else {
			lb2--
		}
		e := errLeft
		e.Total--
		e.Insertion--
		if rb-lb == st.cum[blockID] {
			// The block boundary was just crossed; deletions may still
			// extend this block, so the direction must not flip yet.
			if st.deletion(cur, lb2, rb2, errorsSpent+1, blockID, goRight, e) {
				return true
			}
		} else {
			if st.step(cur, lb2, rb2, errorsSpent+1, blockID, goRight, e) {
				return true
			}
		}
	}

	return st.children(cur, lb, rb, errorsSpent, blockID, goRight, minLeftInBlock, errLeft)
}

// exact extends the cursor by the remainder of the current block and moves
// on to the next block.
func (st *state) exact(cur fmindex.BiCursor, lb, rb, errorsSpent, blockID int,
	goRight bool, errLeft Budget) bool {

	nextID := blockID + 1
	if nextID > st.blocks()-1 {
		nextID = st.blocks() - 1
	}
	goRight2 := blockID < st.blocks()-1 && st.search.Pi[blockID+1] > st.search.Pi[blockID]

	if goRight {
		infixLB := rb - 1
		infixRB := lb + st.cum[blockID] - 1
		if !cur.ExtendRightSeq(st.query[infixLB : infixRB+1]) {
			return false
		}
		return st.step(cur, lb, infixRB+2, errorsSpent, nextID, goRight2, errLeft)
	}

	infixLB := rb - st.cum[blockID] - 1
	infixRB := lb - 1
	if !cur.ExtendLeftSeq(st.query[infixLB : infixRB+1]) {
		return false
	}
	return st.step(cur, infixLB, rb, errorsSpent, nextID, goRight2, errLeft)
}

// deletion handles the tail of a block that was completed by a
// substitution or insertion: any further symbols consumed here are
// deletions that stay inside the block, so the direction is kept until the
// block is finally left.
func (st *state) deletion(cur fmindex.BiCursor, lb, rb, errorsSpent, blockID int,
	goRight bool, errLeft Budget) bool {

	maxLeftInBlock := int(st.search.U[blockID]) - errorsSpent
	minLeftInBlock := int(st.search.L[blockID]) - errorsSpent
	if minLeftInBlock < 0 {
		minLeftInBlock = 0
	}

	if minLeftInBlock == 0 {
		nextID, goRight2 := st.nextBlock(blockID)
		if st.step(cur, lb, rb, errorsSpent, nextID, goRight2, errLeft) {
			return true
		}
	}

	// A deletion may not run past the left text border.
	if st.search.Pi[blockID] == 1 && !goRight {
		return false
	}
	if maxLeftInBlock == 0 || errLeft.Total == 0 || errLeft.Deletion == 0 {
		return false
	}

	child := cur
	if goRight {
		if !child.ExtendRight() {
			return false
		}
	} else {
		if !child.ExtendLeft() {
			return false
		}
	}
	e := errLeft
	e.Total--
	e.Deletion--
	for {
		if st.deletion(child, lb, rb, errorsSpent+1, blockID, goRight, e) {
			return true
		}
		if goRight {
			if !child.CycleBack() {
				return false
			}
		} else {
			if !child.CycleFront() {
				return false
			}
		}
	}
}

// children walks every child edge at the cursor, branching into match,
// substitution and deletion continuations.
func (st *state) children(cur fmindex.BiCursor, lb, rb, errorsSpent, blockID int,
	goRight bool, minLeftInBlock int, errLeft Budget) bool {

	child := cur
	if goRight {
		if !child.ExtendRight() {
			return false
		}
	} else {
		if !child.ExtendLeft() {
			return false
		}
	}

	charsLeft := st.cum[blockID] - (rb - lb - 1)
	lb2, rb2 := lb, rb
	if goRight {
		rb2++
	} else {
		lb2--
	}

	for {
		var qsym byte
		if goRight {
			qsym = st.query[rb-1]
		} else {
			qsym = st.query[lb-1]
		}
		delta := 0
		if child.LastChar() != qsym {
			delta = 1
		}

		// Without deletions the lower bound can only be met by spending
		// substitutions on the block's remaining symbols; prune edges that
		// cannot reach it.
		skip := errLeft.Deletion == 0 && minLeftInBlock > 0 && charsLeft+delta < minLeftInBlock+1

		if !skip {
			if delta == 0 || errLeft.Substitution > 0 {
				e := errLeft
				e.Total -= delta
				e.Substitution -= delta
				if rb-lb == st.cum[blockID] {
					// Block completed by this symbol.
					if errLeft.Deletion > 0 {
						if st.deletion(child, lb2, rb2, errorsSpent+delta, blockID, goRight, e) {
							return true
						}
					} else {
						nextID, goRight2 := st.nextBlock(blockID)
						if st.step(child, lb2, rb2, errorsSpent+delta, nextID, goRight2, e) {
							return true
						}
					}
				} else {
					if st.step(child, lb2, rb2, errorsSpent+delta, blockID, goRight, e) {
						return true
					}
				}
			}

			// Deletion: the edge symbol is consumed, the query range stays.
			// A deletion may not open the alignment at the left query
			// border (mirroring the backtracking driver's contract).
			leadingDel := blockID == 0 && st.search.Pi[0] == 1 && rb-lb-1 == 0
			if errLeft.Deletion > 0 && !leadingDel {
				e := errLeft
				e.Total--
				e.Deletion--
				if st.step(child, lb, rb, errorsSpent+1, blockID, goRight, e) {
					return true
				}
			}
		}

		if goRight {
			if !child.CycleBack() {
				return false
			}
		} else {
			if !child.CycleFront() {
				return false
			}
		}
	}
}
