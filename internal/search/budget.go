// Package search implements approximate substring search over a
// bidirectional FM index: a trivial backtracking driver, pre-planned search
// schemes that prune redundant backtracking, and the facade that dispatches
// between them.
package search

import "SeqSearch/internal/fmindex"

// Budget is the number of edit operations a search may still spend, broken
// down by kind. Total caps the sum; the per-kind fields cap each kind
// independently. An edit kind with a zero field is disabled.
type Budget struct {
	Total        int `json:"total"`
	Substitution int `json:"substitution"`
	Insertion    int `json:"insertion"`
	Deletion     int `json:"deletion"`
}

// Cursor is the snapshot type hits are reported as.
type Cursor = fmindex.BiCursor

// Delegate receives each hit as a cursor snapshot. Returning true stops the
// current query's search.
type Delegate func(cur Cursor) bool
