package search

import "SeqSearch/internal/fmindex"

// Trivial enumerates every match of query within the error budget by plain
// backtracking: the query is walked left to right while the cursor extends
// right, branching on substitutions, insertions and deletions as the budget
// allows. Hits are delivered to fn as cursor snapshots; if abortOnHit is
// set the recursion unwinds after the first hit. Returns whether the search
// was aborted (by abortOnHit or by fn).
func Trivial(idx *fmindex.BiIndex, query []byte, budget Budget, abortOnHit bool, fn Delegate) bool {
	// No deletion may open a match; insertions are allowed from the start.
	return trivial(idx.Root(), query, 0, budget, true, false, abortOnHit, fn)
}

// trivial carries the cursor by value: every branch owns its copy.
// allowIns is cleared right after a deletion and allowDel right after an
// insertion, so that neither pairing can alias a substitution. allowDel
// also keeps a deletion from being the first operation.
func trivial(cur fmindex.BiCursor, query []byte, qpos int, errLeft Budget,
	allowIns, allowDel, abortOnHit bool, fn Delegate) bool {

	// Exact tail: no branching once the query or the budget is exhausted.
	if qpos == len(query) || errLeft.Total == 0 {
		if qpos < len(query) && !cur.ExtendRightSeq(query[qpos:]) {
			return false
		}
		return fn(cur) || abortOnHit
	}

	// Insertion: the query symbol is skipped without moving in the text.
	if errLeft.Insertion > 0 && allowIns {
		e := errLeft
		e.Total--
		e.Insertion--
		if trivial(cur, query, qpos+1, e, true, false, abortOnHit, fn) {
			return true
		}
	}

	if (allowDel && errLeft.Deletion > 0) || errLeft.Substitution > 0 {
		child := cur
		if child.ExtendRight() {
			for {
				delta := 0
				if child.LastChar() != query[qpos] {
					delta = 1
				}

				// Match or substitution.
				if delta == 0 || errLeft.Substitution > 0 {
					e := errLeft
					e.Total -= delta
					e.Substitution -= delta
					if trivial(child, query, qpos+1, e, true, true, abortOnHit, fn) {
						return true
					}
				}

				// Deletion: a text symbol is consumed, the query stands still.
				if allowDel && errLeft.Deletion > 0 {
					e := errLeft
					e.Total--
					e.Deletion--
					if trivial(child, query, qpos, e, false, true, abortOnHit, fn) {
						return true
					}
				}

				if !child.CycleBack() {
					break
				}
			}
		}
	} else {
		// Only exact steps remain available at this level.
		child := cur
		if child.ExtendRightChar(query[qpos]) {
			if trivial(child, query, qpos+1, errLeft, true, true, abortOnHit, fn) {
				return true
			}
		}
	}

	return false
}
