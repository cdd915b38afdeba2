// Package sais builds suffix arrays with the SA-IS induced-sorting
// algorithm. The input must end with a unique sentinel that is strictly
// smaller than every other symbol.
package sais

// Build computes the suffix array of text. text[len(text)-1] must be 0 and
// 0 must not occur anywhere else.
func Build(text []byte) []int32 {
	n := len(text)
	s := make([]int, n)
	for i := 0; i < n; i++ {
		s[i] = int(text[i])
	}
	sa := compute(s, 256)
	out := make([]int32, n)
	for i, v := range sa {
		out[i] = int32(v)
	}
	return out
}

// compute runs one level of SA-IS over s with alphabet size k.
func compute(s []int, k int) []int {
	n := len(s)
	sa := make([]int, n)
	for i := range sa {
		sa[i] = -1
	}
	if n == 0 {
		return sa
	}
	if n == 1 {
		sa[0] = 0
		return sa
	}

	// Classify suffixes: sType[i] is true for S-type, false for L-type.
	sType := make([]bool, n)
	sType[n-1] = true
	for i := n - 2; i >= 0; i-- {
		switch {
		case s[i] < s[i+1]:
			sType[i] = true
		case s[i] > s[i+1]:
			sType[i] = false
		default:
			sType[i] = sType[i+1]
		}
	}

	isLMS := func(i int) bool { return i > 0 && sType[i] && !sType[i-1] }

	var lms []int
	for i := 1; i < n; i++ {
		if isLMS(i) {
			lms = append(lms, i)
		}
	}

	buckets := bucketSizes(s, k)
	induce(s, sa, sType, buckets, lms)

	// Name LMS substrings in the order they appear in the induced array.
	var sortedLMS []int
	for _, pos := range sa {
		if isLMS(pos) {
			sortedLMS = append(sortedLMS, pos)
		}
	}
	names := make([]int, n)
	for i := range names {
		names[i] = -1
	}
	name := 0
	prev := -1
	for _, pos := range sortedLMS {
		if prev >= 0 && !lmsEqual(s, sType, prev, pos) {
			name++
		}
		names[pos] = name
		prev = pos
	}

	reduced := make([]int, len(lms))
	for i, pos := range lms {
		reduced[i] = names[pos]
	}

	// Order the LMS suffixes, recursing only if names are not yet unique.
	var reducedSA []int
	if name+1 < len(reduced) {
		reducedSA = compute(reduced, name+1)
	} else {
		reducedSA = make([]int, len(reduced))
		for i, nm := range reduced {
			reducedSA[nm] = i
		}
	}

	ordered := make([]int, len(reducedSA))
	for i, idx := range reducedSA {
		ordered[i] = lms[idx]
	}
	for i := range sa {
		sa[i] = -1
	}
	induce(s, sa, sType, buckets, ordered)
	return sa
}

// induce seeds the LMS suffixes into their bucket tails and induces the
// L-type then S-type suffixes.
func induce(s, sa []int, sType []bool, buckets, lms []int) {
	tails := bucketTails(buckets)
	for i := len(lms) - 1; i >= 0; i-- {
		pos := lms[i]
		c := s[pos]
		sa[tails[c]] = pos
		tails[c]--
	}

	heads := bucketHeads(buckets)
	for i := 0; i < len(sa); i++ {
		pos := sa[i]
		if pos > 0 && !sType[pos-1] {
			c := s[pos-1]
			sa[heads[c]] = pos - 1
			heads[c]++
		}
	}

	tails = bucketTails(buckets)
	for i := len(sa) - 1; i >= 0; i-- {
		pos := sa[i]
		if pos > 0 && sType[pos-1] {
			c := s[pos-1]
			sa[tails[c]] = pos - 1
			tails[c]--
		}
	}
}

func bucketSizes(s []int, k int) []int {
	sizes := make([]int, k)
	for _, c := range s {
		sizes[c]++
	}
	return sizes
}

func bucketHeads(sizes []int) []int {
	heads := make([]int, len(sizes))
	sum := 0
	for c, v := range sizes {
		heads[c] = sum
		sum += v
	}
	return heads
}

func bucketTails(sizes []int) []int {
	tails := make([]int, len(sizes))
	sum := 0
	for c, v := range sizes {
		sum += v
		tails[c] = sum - 1
	}
	return tails
}

func lmsEqual(s []int, sType []bool, i, j int) bool {
	n := len(s)
	isLMS := func(p int) bool { return p > 0 && sType[p] && !sType[p-1] }
	for step := 0; ; step++ {
		if s[i] != s[j] {
			return false
		}
		if step > 0 {
			li, lj := isLMS(i), isLMS(j)
			if li && lj {
				return true
			}
			if li != lj {
				return false
			}
		}
		i++
		j++
		if i >= n || j >= n {
			return false
		}
	}
}
