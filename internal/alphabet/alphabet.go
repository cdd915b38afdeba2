// Package alphabet maps between the byte values stored in an indexed text
// and the compact character codes used by the compressed suffix array.
//
// Texts handed to the CSA encode external symbol ranks as rank+1, reserving
// byte 0 for the sentinel. When the text uses every byte value up to its
// maximum, no remapping is needed (identity). Otherwise the symbols actually
// present are renumbered densely (reduced).
package alphabet

// Strategy selects how byte values translate to compact codes.
type Strategy uint8

const (
	// StrategyAuto picks Identity when the text uses every byte value in
	// [0, max], Reduced otherwise.
	StrategyAuto Strategy = iota

	// StrategyIdentity uses byte values as compact codes directly.
	StrategyIdentity

	// StrategyReduced renumbers the occurring byte values densely,
	// preserving their order.
	StrategyReduced
)

// Mapping is the resolved alphabet of one indexed text: the byte<->compact
// translation tables and the cumulative occurrence table C.
//
// C[c] is the number of text symbols with a compact code strictly smaller
// than c; C[Sigma] equals the text length including the sentinel.
type Mapping struct {
	identity  bool
	sigma     int
	c         []int
	char2comp [256]byte
	comp2char [256]byte
}

// New builds the mapping for a text given its per-byte occurrence counts.
// counts[b] is the number of occurrences of byte value b, sentinel included.
func New(counts *[256]int, strategy Strategy) *Mapping {
	maxByte := 0
	used := 0
	total := 0
	for b := 0; b < 256; b++ {
		if counts[b] > 0 {
			maxByte = b
			used++
			total += counts[b]
		}
	}

	identity := strategy == StrategyIdentity
	if strategy == StrategyAuto {
		identity = used == maxByte+1
	}

	m := &Mapping{identity: identity}
	if identity {
		m.sigma = maxByte + 1
		m.c = make([]int, m.sigma+1)
		for b := 0; b < m.sigma; b++ {
			m.c[b+1] = m.c[b] + counts[b]
		}
		return m
	}

	m.sigma = used
	m.c = make([]int, m.sigma+1)
	comp := byte(0)
	for b := 0; b < 256; b++ {
		if counts[b] == 0 {
			continue
		}
		m.char2comp[b] = comp
		m.comp2char[comp] = byte(b)
		m.c[comp+1] = m.c[comp] + counts[b]
		comp++
	}
	return m
}

// Identity reports whether the mapping is the identity fast path.
func (m *Mapping) Identity() bool { return m.identity }

// Sigma returns the compact alphabet size, sentinel included.
func (m *Mapping) Sigma() int { return m.sigma }

// ToCompact translates a byte value to its compact code. For a reduced
// mapping, bytes that do not occur in the text translate to 0; callers must
// treat a zero code for a nonzero byte as a failed extension.
func (m *Mapping) ToCompact(char byte) byte {
	if m.identity {
		return char
	}
	return m.char2comp[char]
}

// ToChar translates a compact code back to its byte value.
func (m *Mapping) ToChar(comp byte) byte {
	if m.identity {
		return comp
	}
	return m.comp2char[comp]
}

// C returns the number of text symbols with compact code smaller than comp.
func (m *Mapping) C(comp int) int { return m.c[comp] }

// Table returns the cumulative table C[0..Sigma].
func (m *Mapping) Table() []int { return m.c }
