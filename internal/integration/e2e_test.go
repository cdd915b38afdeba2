package integration

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SeqSearch/internal/fmindex"
	"SeqSearch/internal/search"
	"SeqSearch/internal/seqio"
	"SeqSearch/internal/testutil"
)

// Full pipeline: encode, build, persist, reload, search, verify against
// the naive oracle.
func TestEndToEnd(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	text := testutil.RandomText(rng, 500, 4)

	built, err := fmindex.NewBi(text)
	require.NoError(t, err)

	base := filepath.Join(t.TempDir(), "e2e")
	require.NoError(t, built.Store(base))

	idx, err := fmindex.LoadBi(base)
	require.NoError(t, err)
	idx.AttachText(text)

	for probe := 0; probe < 50; probe++ {
		qlen := 4 + rng.Intn(10)
		var query []byte
		if probe%2 == 0 {
			start := rng.Intn(len(text) - qlen + 1)
			query = append([]byte{}, text[start:start+qlen]...)
		} else {
			query = testutil.RandomText(rng, qlen, 4)
		}
		k := rng.Intn(3)

		cfg := search.Config{MaxError: &search.Budget{Total: k, Substitution: k}}
		res, err := search.RunSingle(idx, query, cfg)
		require.NoError(t, err)
		require.Equal(t, testutil.HammingMatches(text, query, k), res.Positions,
			"query=%s k=%d", testutil.Letters(query), k)
	}
}

// The loaded index and the freshly built one answer identically.
func TestLoadedIndexMatchesBuilt(t *testing.T) {
	rng := rand.New(rand.NewSource(777))
	text := testutil.RandomText(rng, 300, 4)

	built, err := fmindex.NewBi(text)
	require.NoError(t, err)
	base := filepath.Join(t.TempDir(), "pair")
	require.NoError(t, built.Store(base))
	loaded, err := fmindex.LoadBi(base)
	require.NoError(t, err)

	for probe := 0; probe < 40; probe++ {
		qlen := 3 + rng.Intn(8)
		query := testutil.RandomText(rng, qlen, 4)
		cfg := search.Config{MaxError: &search.Budget{Total: 1, Substitution: 1}}

		a, err := search.RunSingle(built, query, cfg)
		require.NoError(t, err)
		b, err := search.RunSingle(loaded, query, cfg)
		require.NoError(t, err)
		require.Equal(t, a.Positions, b.Positions)
	}
}

// Sequences round-trip through the letter codec at the API boundary.
func TestCodecRoundTripThroughSearch(t *testing.T) {
	text, err := seqio.DNA.Encode("GATTACAGATTACA")
	require.NoError(t, err)

	idx, err := fmindex.NewBi(text)
	require.NoError(t, err)

	query, err := seqio.DNA.Encode("GATTACA")
	require.NoError(t, err)
	res, err := search.RunSingle(idx, query, search.Config{})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 7}, res.Positions)
}
