package fmindex

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SeqSearch/internal/testutil"
)

func mustIndex(t *testing.T, text []byte) *Index {
	t.Helper()
	idx, err := New(text)
	require.NoError(t, err)
	return idx
}

func TestNewRejectsEmptyText(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrEmptyText)
}

func TestRootCursor(t *testing.T) {
	idx := mustIndex(t, testutil.Ranks("ACGT"))
	cur := idx.Root()

	assert.True(t, cur.IsRoot())
	assert.Equal(t, 0, cur.Depth())
	assert.Equal(t, idx.Size(), cur.Count())
}

func TestExtendRightChar(t *testing.T) {
	idx := mustIndex(t, testutil.Ranks("ACGTACGT"))
	cur := idx.Root()

	require.True(t, cur.ExtendRightChar(testutil.Ranks("A")[0]))
	assert.Equal(t, 2, cur.Count())
	assert.Equal(t, 1, cur.Depth())

	require.True(t, cur.ExtendRightChar(testutil.Ranks("C")[0]))
	assert.Equal(t, 2, cur.Count())

	// "AA" does not occur; the cursor must stay on "AC".
	saved := cur
	require.False(t, cur.ExtendRightChar(testutil.Ranks("A")[0]))
	assert.True(t, cur.Equal(saved))
	assert.Equal(t, 2, cur.Depth())
}

func TestExtendRightSeqRollsBack(t *testing.T) {
	idx := mustIndex(t, testutil.Ranks("ACGTACGT"))
	cur := idx.Root()

	require.True(t, cur.ExtendRightSeq(testutil.Ranks("AC")))
	saved := cur

	// "GG" fails mid-way; every step must be rewound.
	require.False(t, cur.ExtendRightSeq(testutil.Ranks("GG")))
	assert.True(t, cur.Equal(saved))
	assert.Equal(t, 2, cur.Depth())

	require.True(t, cur.ExtendRightSeq(testutil.Ranks("GT")))
	assert.Equal(t, 4, cur.Depth())
	assert.Equal(t, 2, cur.Count())
}

// Sibling ordering over the implicit suffix tree: edges are visited in
// strictly increasing symbol order, with the counts of each subtree.
func TestSiblingOrdering(t *testing.T) {
	idx := mustIndex(t, testutil.Ranks("ACGGTAGGACG"))
	cur := idx.Root()

	require.True(t, cur.ExtendRight())
	assert.Equal(t, "A", testutil.Letters([]byte{cur.LastChar()}))
	assert.Equal(t, 3, cur.Count())

	require.True(t, cur.CycleBack())
	assert.Equal(t, "C", testutil.Letters([]byte{cur.LastChar()}))
	assert.Equal(t, 2, cur.Count())

	require.True(t, cur.CycleBack())
	assert.Equal(t, "G", testutil.Letters([]byte{cur.LastChar()}))
	assert.Equal(t, 5, cur.Count())

	require.True(t, cur.CycleBack())
	assert.Equal(t, "T", testutil.Letters([]byte{cur.LastChar()}))
	assert.Equal(t, 1, cur.Count())

	saved := cur
	require.False(t, cur.CycleBack())
	assert.True(t, cur.Equal(saved))
	assert.Equal(t, "T", testutil.Letters([]byte{cur.LastChar()}))
}

func TestCycleBackOnRootPanics(t *testing.T) {
	idx := mustIndex(t, testutil.Ranks("ACGT"))
	cur := idx.Root()
	assert.Panics(t, func() { cur.CycleBack() })
}

func TestLocateExact(t *testing.T) {
	text := testutil.Ranks("ACGTACGT")
	idx := mustIndex(t, text)
	cur := idx.Root()

	require.True(t, cur.ExtendRightSeq(testutil.Ranks("ACGT")))
	got := cur.Locate()
	sort.Ints(got)
	assert.Equal(t, []int{0, 4}, got)
}

func TestLazyLocateMatchesLocate(t *testing.T) {
	text := testutil.Ranks("ACGTACGTACGA")
	idx := mustIndex(t, text)
	cur := idx.Root()
	require.True(t, cur.ExtendRightSeq(testutil.Ranks("ACG")))

	want := cur.Locate()
	it := cur.LazyLocate()
	assert.Equal(t, len(want), it.Remaining())

	var got []int
	for it.Next() {
		got = append(got, it.Pos())
	}
	assert.Equal(t, want, got)
	assert.False(t, it.Next())
}

func TestQueryReconstruction(t *testing.T) {
	text := testutil.Ranks("GATTACAGATTACA")
	idx := mustIndex(t, text)

	cur := idx.Root()
	require.True(t, cur.ExtendRightSeq(testutil.Ranks("ATTAC")))
	assert.Equal(t, "ATTAC", testutil.Letters(cur.Query()))
}

func TestChildren(t *testing.T) {
	idx := mustIndex(t, testutil.Ranks("ACGGTAGGACG"))
	root := idx.Root()
	kids := root.Children()
	require.Len(t, kids, idx.Sigma()-1)

	counts := make([]int, 0, len(kids))
	for _, k := range kids {
		if k.IsRoot() {
			continue
		}
		counts = append(counts, k.Count())
	}
	// A, C, G, T subtrees of the root.
	assert.Equal(t, []int{3, 2, 5, 1}, counts)

	// Children are positioned exactly one extension deeper.
	for _, k := range kids {
		if k.IsRoot() {
			continue
		}
		assert.Equal(t, 1, k.Depth())
	}
}

func TestCursorEquality(t *testing.T) {
	idx := mustIndex(t, testutil.Ranks("ACGTACGT"))

	a := idx.Root()
	require.True(t, a.ExtendRightSeq(testutil.Ranks("ACG")))

	b := idx.Root()
	require.True(t, b.ExtendRightChar(0)) // A
	require.True(t, b.ExtendRightChar(1)) // C
	require.True(t, b.ExtendRightChar(2)) // G

	assert.True(t, a.Equal(b))
	require.True(t, b.ExtendRightChar(3)) // T
	assert.False(t, a.Equal(b))
}

// Every query sampled from the text must be found, located at exactly its
// naive occurrence set, and reconstructible from the cursor.
func TestRandomizedLocateRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1234))
	for trial := 0; trial < 25; trial++ {
		n := 20 + rng.Intn(200)
		sigma := 2 + rng.Intn(4)
		text := testutil.RandomText(rng, n, sigma)
		idx := mustIndex(t, text)

		for probe := 0; probe < 20; probe++ {
			qlen := 1 + rng.Intn(8)
			start := rng.Intn(n - qlen + 1)
			query := text[start : start+qlen]

			cur := idx.Root()
			require.True(t, cur.ExtendRightSeq(query))

			want := testutil.ExactMatches(text, query)
			got := cur.Locate()
			sort.Ints(got)
			require.Equal(t, want, got)
			require.Equal(t, len(want), cur.Count())
			require.Equal(t, query, cur.Query())

			// Positions dereference back to the query.
			for _, p := range got {
				require.Equal(t, string(query), string(text[p:p+qlen]))
			}
		}
	}
}

// Cycling yields strictly increasing edge symbols from the same parent.
func TestCycleBackIncreasing(t *testing.T) {
	rng := rand.New(rand.NewSource(77))
	text := testutil.RandomText(rng, 300, 4)
	idx := mustIndex(t, text)

	for probe := 0; probe < 30; probe++ {
		qlen := 1 + rng.Intn(5)
		start := rng.Intn(len(text) - qlen + 1)
		cur := idx.Root()
		require.True(t, cur.ExtendRightSeq(text[start:start+qlen]))

		prev := cur.LastChar()
		for cur.CycleBack() {
			require.Greater(t, cur.LastChar(), prev)
			prev = cur.LastChar()
		}
	}
}
