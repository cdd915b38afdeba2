package fmindex

// extension direction of a bidirectional cursor's last step.
type direction uint8

const (
	dirNone direction = iota
	dirRight
	dirLeft
)

// BiCursor walks the implicit affix tree of a bidirectional index,
// maintaining twin suffix-array intervals — one per underlying CSA — that
// always have equal counts. Extension in either direction keeps them
// synchronized through a bidirectional search step.
//
// The parent interval and last character are stored only for the side used
// by the most recent extension; cycling is therefore defined only in that
// same direction, and cycling the other way panics.
type BiCursor struct {
	idx *BiIndex

	fwdLB, fwdRB int
	revLB, revRB int

	parentLB, parentRB int
	lastChar           byte // compact code
	depth              int
	lastDir            direction
}

func (c *BiCursor) offset() int { return c.idx.Size() - c.depth - 1 }

// Depth returns the length of the current query.
func (c *BiCursor) Depth() int { return c.depth }

// Count returns the number of occurrences of the current query.
func (c *BiCursor) Count() int { return c.fwdRB - c.fwdLB + 1 }

// Equal reports whether two cursors over the same index describe the same
// affix-tree node.
func (c *BiCursor) Equal(other BiCursor) bool {
	return c.fwdLB == other.fwdLB && c.fwdRB == other.fwdRB && c.depth == other.depth
}

// ExtendRight appends the lexicographically smallest matching symbol to the
// query.
func (c *BiCursor) ExtendRight() bool {
	csa := c.idx.fwd.csa
	sigma := csa.Sigma()
	for comp := 1; comp < sigma; comp++ {
		lf, rf, lb, rb, ok := bidirectionalSearch(csa, c.fwdLB, c.fwdRB, c.revLB, c.revRB, byte(comp))
		if !ok {
			continue
		}
		c.parentLB, c.parentRB = c.fwdLB, c.fwdRB
		c.fwdLB, c.fwdRB = lf, rf
		c.revLB, c.revRB = lb, rb
		c.lastChar = byte(comp)
		c.depth++
		c.lastDir = dirRight
		return true
	}
	return false
}

// ExtendLeft prepends the lexicographically smallest matching symbol to the
// query.
func (c *BiCursor) ExtendLeft() bool {
	csa := c.idx.rev.csa
	sigma := csa.Sigma()
	for comp := 1; comp < sigma; comp++ {
		lr, rr, lf, rf, ok := bidirectionalSearch(csa, c.revLB, c.revRB, c.fwdLB, c.fwdRB, byte(comp))
		if !ok {
			continue
		}
		c.parentLB, c.parentRB = c.revLB, c.revRB
		c.fwdLB, c.fwdRB = lf, rf
		c.revLB, c.revRB = lr, rr
		c.lastChar = byte(comp)
		c.depth++
		c.lastDir = dirLeft
		return true
	}
	return false
}

// ExtendRightChar appends the external symbol sym to the query.
func (c *BiCursor) ExtendRightChar(sym byte) bool {
	csa := c.idx.fwd.csa
	comp := csa.Mapping().ToCompact(sym + 1)
	if comp == 0 {
		return false
	}
	lf, rf, lb, rb, ok := bidirectionalSearch(csa, c.fwdLB, c.fwdRB, c.revLB, c.revRB, comp)
	if !ok {
		return false
	}
	c.parentLB, c.parentRB = c.fwdLB, c.fwdRB
	c.fwdLB, c.fwdRB = lf, rf
	c.revLB, c.revRB = lb, rb
	c.lastChar = comp
	c.depth++
	c.lastDir = dirRight
	return true
}

// ExtendLeftChar prepends the external symbol sym to the query.
func (c *BiCursor) ExtendLeftChar(sym byte) bool {
	csa := c.idx.rev.csa
	comp := csa.Mapping().ToCompact(sym + 1)
	if comp == 0 {
		return false
	}
	lr, rr, lf, rf, ok := bidirectionalSearch(csa, c.revLB, c.revRB, c.fwdLB, c.fwdRB, comp)
	if !ok {
		return false
	}
	c.parentLB, c.parentRB = c.revLB, c.revRB
	c.fwdLB, c.fwdRB = lf, rf
	c.revLB, c.revRB = lr, rr
	c.lastChar = comp
	c.depth++
	c.lastDir = dirLeft
	return true
}

// ExtendRightSeq appends every symbol of seq in order; the cursor is
// unchanged if any step fails.
func (c *BiCursor) ExtendRightSeq(seq []byte) bool {
	if len(seq) == 0 {
		return true
	}
	csa := c.idx.fwd.csa
	m := csa.Mapping()
	fwdLB, fwdRB, revLB, revRB := c.fwdLB, c.fwdRB, c.revLB, c.revRB
	parentLB, parentRB := fwdLB, fwdRB
	var comp byte
	for _, sym := range seq {
		comp = m.ToCompact(sym + 1)
		if comp == 0 {
			return false
		}
		parentLB, parentRB = fwdLB, fwdRB
		var ok bool
		fwdLB, fwdRB, revLB, revRB, ok = bidirectionalSearch(csa, fwdLB, fwdRB, revLB, revRB, comp)
		if !ok {
			return false
		}
	}
	c.fwdLB, c.fwdRB = fwdLB, fwdRB
	c.revLB, c.revRB = revLB, revRB
	c.parentLB, c.parentRB = parentLB, parentRB
	c.lastChar = comp
	c.depth += len(seq)
	c.lastDir = dirRight
	return true
}

// ExtendLeftSeq prepends seq so that the new query is seq followed by the
// old one. Symbols are consumed right to left, since each step prepends a
// single character. The cursor is unchanged if any step fails.
func (c *BiCursor) ExtendLeftSeq(seq []byte) bool {
	if len(seq) == 0 {
		return true
	}
	csa := c.idx.rev.csa
	m := csa.Mapping()
	fwdLB, fwdRB, revLB, revRB := c.fwdLB, c.fwdRB, c.revLB, c.revRB
	parentLB, parentRB := revLB, revRB
	var comp byte
	for i := len(seq) - 1; i >= 0; i-- {
		comp = m.ToCompact(seq[i] + 1)
		if comp == 0 {
			return false
		}
		parentLB, parentRB = revLB, revRB
		var ok bool
		revLB, revRB, fwdLB, fwdRB, ok = bidirectionalSearch(csa, revLB, revRB, fwdLB, fwdRB, comp)
		if !ok {
			return false
		}
	}
	c.fwdLB, c.fwdRB = fwdLB, fwdRB
	c.revLB, c.revRB = revLB, revRB
	c.parentLB, c.parentRB = parentLB, parentRB
	c.lastChar = comp
	c.depth += len(seq)
	c.lastDir = dirLeft
	return true
}

// CycleBack replaces the rightmost query symbol by the next larger matching
// one. Defined only when the last extension went right.
func (c *BiCursor) CycleBack() bool {
	if c.depth == 0 || c.lastDir != dirRight {
		panic("fmindex: CycleBack without a preceding right extension")
	}
	csa := c.idx.fwd.csa
	sigma := csa.Sigma()
	for comp := int(c.lastChar) + 1; comp < sigma; comp++ {
		lf, rf, lb, rb, ok := bidirectionalSearchCycle(csa, c.parentLB, c.parentRB, c.revLB, c.revRB, byte(comp))
		if !ok {
			continue
		}
		c.fwdLB, c.fwdRB = lf, rf
		c.revLB, c.revRB = lb, rb
		c.lastChar = byte(comp)
		return true
	}
	return false
}

// CycleFront replaces the leftmost query symbol by the next larger matching
// one. Defined only when the last extension went left.
func (c *BiCursor) CycleFront() bool {
	if c.depth == 0 || c.lastDir != dirLeft {
		panic("fmindex: CycleFront without a preceding left extension")
	}
	csa := c.idx.rev.csa
	sigma := csa.Sigma()
	for comp := int(c.lastChar) + 1; comp < sigma; comp++ {
		lr, rr, lf, rf, ok := bidirectionalSearchCycle(csa, c.parentLB, c.parentRB, c.fwdLB, c.fwdRB, byte(comp))
		if !ok {
			continue
		}
		c.fwdLB, c.fwdRB = lf, rf
		c.revLB, c.revRB = lr, rr
		c.lastChar = byte(comp)
		return true
	}
	return false
}

// LastChar returns the external symbol added or replaced by the last
// extension or cycle.
func (c *BiCursor) LastChar() byte {
	if c.depth == 0 {
		panic("fmindex: LastChar on root cursor")
	}
	return c.idx.fwd.csa.Mapping().ToChar(c.lastChar) - 1
}

// ToFwdCursor projects onto a unidirectional cursor over the original
// text. If the last extension went left, the projected parent interval is
// invalidated so that a later CycleBack traps.
func (c *BiCursor) ToFwdCursor() Cursor {
	it := Cursor{
		idx:      c.idx.fwd,
		lb:       c.fwdLB,
		rb:       c.fwdRB,
		parentLB: c.parentLB,
		parentRB: c.parentRB,
		lastChar: c.lastChar,
		depth:    c.depth,
	}
	if c.lastDir != dirRight {
		it.parentLB, it.parentRB = 1, 0
	}
	return it
}

// ToRevCursor projects onto a unidirectional cursor over the reversed
// text; the symmetric invalidation applies.
func (c *BiCursor) ToRevCursor() Cursor {
	it := Cursor{
		idx:      c.idx.rev,
		lb:       c.revLB,
		rb:       c.revRB,
		parentLB: c.parentLB,
		parentRB: c.parentRB,
		lastChar: c.lastChar,
		depth:    c.depth,
	}
	if c.lastDir != dirLeft {
		it.parentLB, it.parentRB = 1, 0
	}
	return it
}

// Query reconstructs the current query from the indexed text.
func (c *BiCursor) Query() []byte {
	if c.idx.text == nil {
		panic("fmindex: Query on an index without attached text")
	}
	begin := c.offset() - c.idx.fwd.csa.SA(c.fwdLB)
	out := make([]byte, c.depth)
	copy(out, c.idx.text[begin:begin+c.depth])
	return out
}

// Locate returns the text position of every occurrence of the current
// query.
func (c *BiCursor) Locate() []int {
	occ := make([]int, c.Count())
	off := c.offset()
	for i := range occ {
		occ[i] = off - c.idx.fwd.csa.SA(c.fwdLB+i)
	}
	return occ
}

// LazyLocate returns an iterator over the same positions as Locate.
func (c *BiCursor) LazyLocate() *LocateIter {
	return &LocateIter{csa: c.idx.fwd.csa, offset: c.offset(), next: c.fwdLB, end: c.fwdRB}
}
