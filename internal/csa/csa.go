// Package csa implements the compressed-suffix-array provider backing the
// FM indices: suffix array, Burrows-Wheeler transform with a wavelet tree
// for rank queries, and the cumulative character-count table.
//
// Texts are byte sequences whose values encode external symbol ranks as
// rank+1; byte 0 is reserved for the sentinel appended during construction.
package csa

import (
	"errors"
	"fmt"

	"SeqSearch/internal/alphabet"
	"SeqSearch/internal/sais"
	"SeqSearch/internal/wavelet"
)

var (
	ErrEmptyText    = errors.New("csa: text must not be empty")
	ErrZeroByte     = errors.New("csa: text must not contain the sentinel byte 0")
	ErrBadBlob      = errors.New("csa: malformed index blob")
	ErrBadBlobMagic = errors.New("csa: not an index blob")
)

// CSA is a rank-enabled suffix-array index over one text (sentinel
// included). It is immutable after construction.
type CSA struct {
	size     int
	strategy alphabet.Strategy
	counts   [256]int
	mapping  *alphabet.Mapping
	sa       []int32
	bwtRaw   []byte
	bwt      *wavelet.Tree
}

// Construct builds the index over text in memory. The text must be
// non-empty and free of zero bytes; a sentinel 0 is appended internally.
func Construct(text []byte, strategy alphabet.Strategy) (*CSA, error) {
	if len(text) == 0 {
		return nil, ErrEmptyText
	}

	c := &CSA{size: len(text) + 1, strategy: strategy}
	buf := make([]byte, c.size)
	copy(buf, text)
	for _, b := range text {
		if b == 0 {
			return nil, ErrZeroByte
		}
		c.counts[b]++
	}
	c.counts[0] = 1 // sentinel

	c.sa = sais.Build(buf)
	c.bwtRaw = bwtFromSA(buf, c.sa)
	c.finish()
	return c, nil
}

// finish derives the mapping and wavelet tree from counts and bwtRaw.
func (c *CSA) finish() {
	c.mapping = alphabet.New(&c.counts, c.strategy)
	maxByte := 0
	for b := 255; b >= 0; b-- {
		if c.counts[b] > 0 {
			maxByte = b
			break
		}
	}
	c.bwt = wavelet.New(c.bwtRaw, maxByte+1)
}

// bwtFromSA derives BWT[i] = text[SA[i]-1], wrapping at the front.
func bwtFromSA(text []byte, sa []int32) []byte {
	bwt := make([]byte, len(text))
	for i, p := range sa {
		if p == 0 {
			bwt[i] = text[len(text)-1]
		} else {
			bwt[i] = text[p-1]
		}
	}
	return bwt
}

// Size returns the text length including the sentinel.
func (c *CSA) Size() int { return c.size }

// Sigma returns the compact alphabet size including the sentinel.
func (c *CSA) Sigma() int { return c.mapping.Sigma() }

// Mapping returns the resolved alphabet mapping.
func (c *CSA) Mapping() *alphabet.Mapping { return c.mapping }

// SA returns the suffix-array entry at position i.
func (c *CSA) SA(i int) int { return int(c.sa[i]) }

// BWTRank returns the number of occurrences of the byte char in BWT[0..i).
func (c *CSA) BWTRank(i int, char byte) int {
	return c.bwt.Rank(i, char)
}

// LexCount returns for BWT[l..r) the rank of char at l, the number of
// strictly smaller symbols and the number of strictly greater symbols.
func (c *CSA) LexCount(l, r int, char byte) (rank, smaller, greater int) {
	return c.bwt.LexCount(l, r, char)
}

func (c *CSA) String() string {
	return fmt.Sprintf("csa{size=%d sigma=%d identity=%t}", c.size, c.Sigma(), c.mapping.Identity())
}
