package fmindex

import "fmt"

// BiIndex pairs two unidirectional indices over a text and its reversal,
// together encoding an implicit affix tree that cursors can traverse in
// both directions.
//
// The forward side indexes the text as given (its CSA drives
// right-extensions); the reverse side indexes the reversed text through a
// projection view, never a second copy. Like Index, a BiIndex borrows the
// caller's text and is immutable after construction.
type BiIndex struct {
	fwd  *Index
	rev  *Index
	text []byte
}

// NewBi builds a bidirectional index over text (external symbol ranks).
func NewBi(text []byte) (*BiIndex, error) {
	if len(text) == 0 {
		return nil, ErrEmptyText
	}
	fwd, err := newIndex(textView{data: text})
	if err != nil {
		return nil, fmt.Errorf("forward index: %w", err)
	}
	rev, err := newIndex(textView{data: text, reversed: true})
	if err != nil {
		return nil, fmt.Errorf("reverse index: %w", err)
	}
	return &BiIndex{fwd: fwd, rev: rev, text: text}, nil
}

// Size returns the length of the indexed text including the sentinel.
func (x *BiIndex) Size() int { return x.fwd.Size() }

// Empty reports whether the index contains no text.
func (x *BiIndex) Empty() bool { return x.Size() == 0 }

// Fwd returns the unidirectional index over the original text.
func (x *BiIndex) Fwd() *Index { return x.fwd }

// Rev returns the unidirectional index over the reversed text. Because of
// the reversal, ExtendRight and CycleBack on its cursors correspond to
// ExtendLeft and CycleFront on bidirectional cursors.
func (x *BiIndex) Rev() *Index { return x.rev }

// Root returns a bidirectional cursor at the root of the implicit affix
// tree.
func (x *BiIndex) Root() BiCursor {
	n := x.Size() - 1
	return BiCursor{idx: x, fwdLB: 0, fwdRB: n, revLB: 0, revRB: n}
}

// AttachText re-borrows the original text after a Load.
func (x *BiIndex) AttachText(text []byte) {
	x.text = text
	x.fwd.AttachText(text)
	x.rev.text = textView{data: text, reversed: true}
}
