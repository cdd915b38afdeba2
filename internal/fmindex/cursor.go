package fmindex

// Cursor walks the implicit suffix tree of a unidirectional index. Cursors
// have value semantics: copying one is cheap and copies never share mutable
// state. All modifying operations return whether they succeeded and leave
// the cursor unchanged on failure.
//
// Operations other than extension require depth > 0 where documented;
// violating such a contract is a programmer error and panics.
type Cursor struct {
	idx *Index

	lb, rb int

	// Interval before the last extension; needed for sibling cycling. The
	// sentinel parentLB=1, parentRB=0 marks an invalidated parent (set when
	// projecting from a bidirectional cursor extended in the opposite
	// direction).
	parentLB, parentRB int

	lastChar byte // compact code on the edge from parent to current
	depth    int
}

// offset converts suffix-array entries into text positions; the CSA is
// built over the reversed text.
func (c *Cursor) offset() int { return c.idx.Size() - c.depth - 1 }

// Depth returns the length of the current query.
func (c *Cursor) Depth() int { return c.depth }

// IsRoot reports whether the cursor sits at the root.
func (c *Cursor) IsRoot() bool { return c.depth == 0 }

// Count returns the number of occurrences of the current query.
func (c *Cursor) Count() int { return c.rb - c.lb + 1 }

// Equal reports whether two cursors over the same index describe the same
// suffix-tree node. Position is fully determined by the interval and depth.
func (c *Cursor) Equal(other Cursor) bool {
	return c.lb == other.lb && c.rb == other.rb && c.depth == other.depth
}

// ExtendRight extends the query by the lexicographically smallest symbol
// that still matches. It scans the alphabet until an edge is found.
func (c *Cursor) ExtendRight() bool {
	sigma := c.idx.Sigma()
	for comp := 1; comp < sigma; comp++ {
		if lb, rb, ok := backwardSearch(c.idx.csa, c.lb, c.rb, byte(comp)); ok {
			c.parentLB, c.parentRB = c.lb, c.rb
			c.lb, c.rb = lb, rb
			c.lastChar = byte(comp)
			c.depth++
			return true
		}
	}
	return false
}

// ExtendRightChar extends the query by the external symbol sym.
func (c *Cursor) ExtendRightChar(sym byte) bool {
	comp := c.idx.csa.Mapping().ToCompact(sym + 1)
	if comp == 0 {
		// absent from the text under a reduced alphabet
		return false
	}
	lb, rb, ok := backwardSearch(c.idx.csa, c.lb, c.rb, comp)
	if !ok {
		return false
	}
	c.parentLB, c.parentRB = c.lb, c.rb
	c.lb, c.rb = lb, rb
	c.lastChar = comp
	c.depth++
	return true
}

// ExtendRightSeq extends the query by every symbol of seq in order. If any
// step fails the cursor is left exactly as it was. Extending by an empty
// sequence succeeds without effect.
func (c *Cursor) ExtendRightSeq(seq []byte) bool {
	if len(seq) == 0 {
		return true
	}
	lb, rb := c.lb, c.rb
	parentLB, parentRB := lb, rb
	m := c.idx.csa.Mapping()
	var comp byte
	for _, sym := range seq {
		comp = m.ToCompact(sym + 1)
		if comp == 0 {
			return false
		}
		parentLB, parentRB = lb, rb
		var ok bool
		lb, rb, ok = backwardSearch(c.idx.csa, parentLB, parentRB, comp)
		if !ok {
			return false
		}
	}
	c.lb, c.rb = lb, rb
	c.parentLB, c.parentRB = parentLB, parentRB
	c.lastChar = comp
	c.depth += len(seq)
	return true
}

// CycleBack replaces the last symbol of the query by the next
// lexicographically larger one that matches, restarting the alphabet scan
// from the saved parent interval. Depth and parent are unchanged.
// Calling it at the root is a contract violation.
func (c *Cursor) CycleBack() bool {
	if c.depth == 0 || c.parentLB > c.parentRB {
		panic("fmindex: CycleBack on root or invalidated cursor")
	}
	sigma := c.idx.Sigma()
	for comp := int(c.lastChar) + 1; comp < sigma; comp++ {
		if lb, rb, ok := backwardSearch(c.idx.csa, c.parentLB, c.parentRB, byte(comp)); ok {
			c.lb, c.rb = lb, rb
			c.lastChar = byte(comp)
			return true
		}
	}
	return false
}

// LastChar returns the external symbol on the edge from the parent node.
// Calling it at the root is a contract violation.
func (c *Cursor) LastChar() byte {
	if c.depth == 0 {
		panic("fmindex: LastChar on root cursor")
	}
	return c.idx.csa.Mapping().ToChar(c.lastChar) - 1
}

// Query reconstructs the current query from the indexed text. The index
// must still hold the text (see AttachText after a Load).
func (c *Cursor) Query() []byte {
	if c.idx.text.data == nil {
		panic("fmindex: Query on an index without attached text")
	}
	begin := c.offset() - c.idx.csa.SA(c.lb)
	return c.idx.text.slice(begin, begin+c.depth)
}

// Locate returns the text position of every occurrence of the current
// query. This is the one eager allocation on the query path.
func (c *Cursor) Locate() []int {
	occ := make([]int, c.Count())
	off := c.offset()
	for i := range occ {
		occ[i] = off - c.idx.csa.SA(c.lb+i)
	}
	return occ
}

// LazyLocate returns an iterator producing the same positions as Locate
// without materializing them.
func (c *Cursor) LazyLocate() *LocateIter {
	return &LocateIter{csa: c.idx.csa, offset: c.offset(), next: c.lb, end: c.rb}
}

// Children returns one cursor per child edge in compact-code order,
// followed by root cursors for symbols with no edge.
func (c *Cursor) Children() []Cursor {
	sigma := c.idx.Sigma()
	result := make([]Cursor, 0, sigma-1)
	for comp := 1; comp < sigma; comp++ {
		if lb, rb, ok := backwardSearch(c.idx.csa, c.lb, c.rb, byte(comp)); ok {
			result = append(result, Cursor{
				idx:      c.idx,
				lb:       lb,
				rb:       rb,
				parentLB: c.lb,
				parentRB: c.rb,
				lastChar: byte(comp),
				depth:    c.depth + 1,
			})
		}
	}
	for len(result) < sigma-1 {
		result = append(result, c.idx.Root())
	}
	return result
}
