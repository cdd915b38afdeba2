package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countsOf(text []byte) *[256]int {
	var counts [256]int
	counts[0] = 1 // sentinel
	for _, b := range text {
		counts[b]++
	}
	return &counts
}

func TestIdentityMapping(t *testing.T) {
	// Bytes 1..4 all present: dense from 0 (sentinel) to max.
	m := New(countsOf([]byte{1, 2, 3, 4, 1, 1}), StrategyAuto)

	require.True(t, m.Identity())
	assert.Equal(t, 5, m.Sigma())
	for b := byte(0); b < 5; b++ {
		assert.Equal(t, b, m.ToCompact(b))
		assert.Equal(t, b, m.ToChar(b))
	}

	// C[c] counts symbols strictly smaller than c.
	assert.Equal(t, 0, m.C(0))
	assert.Equal(t, 1, m.C(1)) // one sentinel
	assert.Equal(t, 4, m.C(2)) // sentinel + three 1s
	assert.Equal(t, 5, m.C(3))
	assert.Equal(t, 6, m.C(4))
	assert.Equal(t, 7, m.C(5))
}

func TestReducedMapping(t *testing.T) {
	// Bytes 2 and 7 present: a gap forces the reduced strategy.
	m := New(countsOf([]byte{7, 2, 7}), StrategyAuto)

	require.False(t, m.Identity())
	assert.Equal(t, 3, m.Sigma())

	assert.Equal(t, byte(0), m.ToCompact(0))
	assert.Equal(t, byte(1), m.ToCompact(2))
	assert.Equal(t, byte(2), m.ToCompact(7))
	assert.Equal(t, byte(2), m.ToChar(1))
	assert.Equal(t, byte(7), m.ToChar(2))

	// Absent symbols collapse to compact code 0.
	assert.Equal(t, byte(0), m.ToCompact(3))
	assert.Equal(t, byte(0), m.ToCompact(255))

	assert.Equal(t, 0, m.C(0))
	assert.Equal(t, 1, m.C(1))
	assert.Equal(t, 2, m.C(2))
	assert.Equal(t, 4, m.C(3))
}

func TestForcedStrategies(t *testing.T) {
	counts := countsOf([]byte{1, 2, 2})

	id := New(counts, StrategyIdentity)
	require.True(t, id.Identity())
	red := New(counts, StrategyReduced)
	require.False(t, red.Identity())

	// Both agree on cumulative counts for the codes they share.
	assert.Equal(t, id.C(id.Sigma()), red.C(red.Sigma()))
}
