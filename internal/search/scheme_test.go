package search

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SeqSearch/internal/testutil"
)

func TestOptimumSchemeTable(t *testing.T) {
	for _, bounds := range [][2]int{{0, 0}, {0, 1}, {1, 1}, {0, 2}, {0, 3}} {
		scheme, ok := OptimumScheme(bounds[0], bounds[1])
		require.True(t, ok, "missing scheme for %v", bounds)
		require.NotEmpty(t, scheme)

		blocks := scheme[0].Blocks()
		for _, s := range scheme {
			require.Equal(t, blocks, s.Blocks(), "all searches must agree on the block count")
			require.Len(t, s.L, blocks)
			require.Len(t, s.U, blocks)

			// Pi is a permutation of 1..blocks.
			seen := make(map[uint8]bool)
			lo, hi := int(s.Pi[0]), int(s.Pi[0])
			for _, p := range s.Pi {
				require.False(t, seen[p])
				seen[p] = true
				if int(p) < lo {
					lo = int(p)
				}
				if int(p) > hi {
					hi = int(p)
				}
			}
			require.Equal(t, 1, lo)
			require.Equal(t, blocks, hi)

			// Bounds are monotone and consistent.
			for i := 0; i < blocks; i++ {
				require.LessOrEqual(t, s.L[i], s.U[i])
				if i > 0 {
					require.LessOrEqual(t, s.L[i-1], s.L[i])
					require.LessOrEqual(t, s.U[i-1], s.U[i])
				}
			}
			require.LessOrEqual(t, int(s.U[blocks-1]), bounds[1])
		}
	}

	_, ok := OptimumScheme(0, 4)
	assert.False(t, ok)
}

func TestTrivialSchemeFallback(t *testing.T) {
	s := ForErrors(0, 5)
	require.Len(t, s, 1)
	assert.Equal(t, []uint8{1}, s[0].Pi)
	assert.Equal(t, []uint8{0}, s[0].L)
	assert.Equal(t, []uint8{5}, s[0].U)
}

func TestSchemeBlockInfo(t *testing.T) {
	scheme, _ := OptimumScheme(0, 2)
	info := schemeBlockInfo(scheme, 10)
	require.Len(t, info, 3)

	// 10 symbols over 4 blocks: lengths 3,3,2,2.
	// Search {1,2,3,4}: cumulative 3,6,8,10 and start 0.
	assert.Equal(t, []int{3, 6, 8, 10}, info[0].cum)
	assert.Equal(t, 0, info[0].start)

	// Search {3,2,1,4}: cumulative 2,5,8,10; blocks 1 and 2 lie left of
	// the first visited block, so it starts at 6.
	assert.Equal(t, []int{2, 5, 8, 10}, info[1].cum)
	assert.Equal(t, 6, info[1].start)

	// Search {4,3,2,1}: cumulative 2,4,7,10; start after blocks 1..3.
	assert.Equal(t, []int{2, 4, 7, 10}, info[2].cum)
	assert.Equal(t, 8, info[2].start)
}

func TestRunSchemeExact(t *testing.T) {
	text := testutil.Ranks("ACGTACGT")
	idx := mustBi(t, text)
	scheme, _ := OptimumScheme(0, 0)

	got := collectPositions(func(fn Delegate) {
		RunScheme(idx, testutil.Ranks("ACGT"), scheme, Budget{}, false, fn)
	})
	assert.Equal(t, []int{0, 4}, got)

	got = collectPositions(func(fn Delegate) {
		RunScheme(idx, testutil.Ranks("CGTA"), scheme, Budget{}, false, fn)
	})
	assert.Equal(t, []int{1}, got)
}

// The scheme driver and the trivial driver must agree on the reported
// position sets; this is the central cross-check between the two
// implementations.
func TestSchemeEquivalentToTrivialSubstitutions(t *testing.T) {
	rng := rand.New(rand.NewSource(404))
	text := testutil.RandomText(rng, 100, 4)
	idx := mustBi(t, text)

	for _, maxErr := range []int{1, 2, 3} {
		scheme, ok := OptimumScheme(0, maxErr)
		require.True(t, ok)
		budget := Budget{Total: maxErr, Substitution: maxErr}

		for probe := 0; probe < 150; probe++ {
			qlen := scheme[0].Blocks() + rng.Intn(8)
			query := testutil.RandomText(rng, qlen, 4)

			want := collectPositions(func(fn Delegate) {
				Trivial(idx, query, budget, false, fn)
			})
			got := collectPositions(func(fn Delegate) {
				RunScheme(idx, query, scheme, budget, false, fn)
			})
			require.Equal(t, want, got,
				"maxErr=%d query=%s", maxErr, testutil.Letters(query))
		}
	}
}

// Pre-planned (0,2) scheme against the naive oracle for every sampled
// length-5 query with up to two substitutions.
func TestSchemeAgainstNaiveOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	text := testutil.RandomText(rng, 100, 4)
	idx := mustBi(t, text)
	scheme, _ := OptimumScheme(0, 2)
	budget := Budget{Total: 2, Substitution: 2}

	for probe := 0; probe < 300; probe++ {
		query := testutil.RandomText(rng, 5, 4)
		want := testutil.HammingMatches(text, query, 2)
		got := collectPositions(func(fn Delegate) {
			RunScheme(idx, query, scheme, budget, false, fn)
		})
		require.Equal(t, want, got, "query=%s", testutil.Letters(query))
	}
}

// The (1,1) scheme's lower bound admits exactly the distance-1 matches.
func TestSchemeLowerBound(t *testing.T) {
	rng := rand.New(rand.NewSource(606))
	text := testutil.RandomText(rng, 80, 4)
	idx := mustBi(t, text)
	scheme, _ := OptimumScheme(1, 1)
	budget := Budget{Total: 1, Substitution: 1}

	for probe := 0; probe < 100; probe++ {
		qlen := 3 + rng.Intn(6)
		query := testutil.RandomText(rng, qlen, 4)

		exact := testutil.HammingMatches(text, query, 0)
		within1 := testutil.HammingMatches(text, query, 1)
		want := diff(within1, exact)

		got := collectPositions(func(fn Delegate) {
			RunScheme(idx, query, scheme, budget, false, fn)
		})
		require.Equal(t, want, got, "query=%s", testutil.Letters(query))
	}
}

// Scheme and trivial drivers also agree when insertions and deletions are
// in play (trivial one-block scheme, so block accounting is exercised on
// the degenerate path too).
func TestSchemeEquivalentToTrivialEdits(t *testing.T) {
	rng := rand.New(rand.NewSource(808))
	text := testutil.RandomText(rng, 60, 4)
	idx := mustBi(t, text)

	budget := Budget{Total: 1, Substitution: 1, Insertion: 1, Deletion: 1}
	scheme := TrivialScheme(0, 1)

	for probe := 0; probe < 100; probe++ {
		qlen := 3 + rng.Intn(5)
		query := testutil.RandomText(rng, qlen, 4)

		want := collectPositions(func(fn Delegate) {
			Trivial(idx, query, budget, false, fn)
		})
		got := collectPositions(func(fn Delegate) {
			RunScheme(idx, query, scheme, budget, false, fn)
		})
		require.Equal(t, want, got, "query=%s", testutil.Letters(query))
	}
}

// diff returns the elements of a not present in b; both must be sorted.
func diff(a, b []int) []int {
	var out []int
	j := 0
	for _, v := range a {
		for j < len(b) && b[j] < v {
			j++
		}
		if j < len(b) && b[j] == v {
			continue
		}
		out = append(out, v)
	}
	return out
}
