package wavelet

import "math/bits"

// bitVector is a plain bit array with per-word cumulative popcounts for
// constant-time rank queries.
type bitVector struct {
	words []uint64
	ranks []int32 // ranks[w] = number of set bits in words[0..w)
	n     int
}

func newBitVector(n int) bitVector {
	return bitVector{words: make([]uint64, (n+63)/64), n: n}
}

func (v *bitVector) set(i int) {
	v.words[i>>6] |= 1 << uint(i&63)
}

func (v *bitVector) get(i int) bool {
	return v.words[i>>6]&(1<<uint(i&63)) != 0
}

// buildRanks finalizes the vector. Must be called once after all set calls
// and before any rank query.
func (v *bitVector) buildRanks() {
	v.ranks = make([]int32, len(v.words)+1)
	for w, word := range v.words {
		v.ranks[w+1] = v.ranks[w] + int32(bits.OnesCount64(word))
	}
}

// rank1 returns the number of set bits in positions [0, i).
func (v *bitVector) rank1(i int) int {
	w := i >> 6
	r := int(v.ranks[w])
	if rem := uint(i & 63); rem != 0 {
		r += bits.OnesCount64(v.words[w] & (1<<rem - 1))
	}
	return r
}
