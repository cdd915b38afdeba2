// Package testutil provides deterministic random sequences and naive
// reference searches for property tests.
package testutil

import (
	"math/rand"

	"SeqSearch/internal/seqio"
)

// RandomText returns n symbols drawn uniformly from ranks [0, sigma).
func RandomText(rng *rand.Rand, n, sigma int) []byte {
	text := make([]byte, n)
	for i := range text {
		text[i] = byte(rng.Intn(sigma))
	}
	return text
}

// Ranks encodes a DNA letter string into symbol ranks, panicking on bad
// input; for test literals only.
func Ranks(s string) []byte {
	ranks, err := seqio.DNA.Encode(s)
	if err != nil {
		panic(err)
	}
	return ranks
}

// Letters decodes symbol ranks back into DNA letters.
func Letters(ranks []byte) string {
	return seqio.DNA.Decode(ranks)
}

// ExactMatches returns every position where query occurs in text verbatim.
func ExactMatches(text, query []byte) []int {
	return HammingMatches(text, query, 0)
}

// HammingMatches returns every position where query matches text with at
// most k substitutions and no other edits.
func HammingMatches(text, query []byte, k int) []int {
	var out []int
	for p := 0; p+len(query) <= len(text); p++ {
		mism := 0
		for i := range query {
			if text[p+i] != query[i] {
				mism++
				if mism > k {
					break
				}
			}
		}
		if mism <= k {
			out = append(out, p)
		}
	}
	return out
}
