package fmindex

import (
	"errors"
	"fmt"

	"SeqSearch/internal/alphabet"
	"SeqSearch/internal/csa"
)

var (
	ErrEmptyText   = errors.New("fmindex: text must not be empty")
	ErrRankTooHigh = errors.New("fmindex: symbol rank 255 is reserved")
	ErrNoText      = errors.New("fmindex: index has no attached text")
)

// textView is a read-only window on the indexed text, optionally reversed.
// The reverse view is a projection over the caller's slice, never a copy.
type textView struct {
	data     []byte
	reversed bool
}

func (v textView) len() int { return len(v.data) }

func (v textView) at(i int) byte {
	if v.reversed {
		return v.data[len(v.data)-1-i]
	}
	return v.data[i]
}

// slice materializes v[from:to] into a fresh buffer.
func (v textView) slice(from, to int) []byte {
	out := make([]byte, to-from)
	for i := range out {
		out[i] = v.at(from + i)
	}
	return out
}

// Index is a unidirectional FM index. The underlying CSA is built over the
// reversed text so that extending the query to the right maps to the
// cheaper backward-search primitive.
//
// The index borrows the caller's text; the caller must keep it alive for
// the index's lifetime. An index is immutable after construction, so any
// number of cursors may traverse it concurrently.
type Index struct {
	csa  *csa.CSA
	text textView
}

// New builds a unidirectional index over text, a sequence of external
// symbol ranks. Rank 255 is rejected: rank+1 must fit a byte alongside the
// sentinel.
func New(text []byte) (*Index, error) {
	return newIndex(textView{data: text})
}

func newIndex(view textView) (*Index, error) {
	n := view.len()
	if n == 0 {
		return nil, ErrEmptyText
	}

	// rank+1 of the reversed text; the buffer is construction-scratch, the
	// index retains only the view.
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		r := view.at(n - 1 - i)
		if r == 255 {
			return nil, ErrRankTooHigh
		}
		buf[i] = r + 1
	}

	c, err := csa.Construct(buf, alphabet.StrategyAuto)
	if err != nil {
		return nil, fmt.Errorf("construct csa: %w", err)
	}
	return &Index{csa: c, text: view}, nil
}

// fromCSA wraps a deserialized CSA; the text view stays empty until
// AttachText is called.
func fromCSA(c *csa.CSA) *Index {
	return &Index{csa: c}
}

// AttachText re-borrows the original text after a Load, re-enabling Query
// reconstruction on cursors.
func (x *Index) AttachText(text []byte) { x.text = textView{data: text} }

// Size returns the length of the indexed text including the sentinel.
func (x *Index) Size() int { return x.csa.Size() }

// Empty reports whether the index contains no text.
func (x *Index) Empty() bool { return x.Size() == 0 }

// Sigma returns the compact alphabet size including the sentinel.
func (x *Index) Sigma() int { return x.csa.Sigma() }

// Root returns a cursor at the root of the implicit suffix tree.
func (x *Index) Root() Cursor {
	return Cursor{idx: x, lb: 0, rb: x.Size() - 1}
}
