// Package seqio converts between human-readable sequence strings and the
// 0-based symbol ranks the index layer works with.
package seqio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Codec maps the letters of one alphabet to dense symbol ranks in the order
// the letters are given.
type Codec struct {
	letters string
	rank    [256]int16 // -1 for letters outside the alphabet
}

// DNA is the codec for the nucleotide alphabet, ranks A=0 C=1 G=2 T=3.
var DNA = NewCodec("ACGT")

// NewCodec builds a codec over the given letters. Letters must be distinct.
func NewCodec(letters string) *Codec {
	c := &Codec{letters: letters}
	for i := range c.rank {
		c.rank[i] = -1
	}
	for i := 0; i < len(letters); i++ {
		c.rank[letters[i]] = int16(i)
	}
	return c
}

// Sigma returns the alphabet size.
func (c *Codec) Sigma() int { return len(c.letters) }

// Encode converts a sequence string into symbol ranks. Letters are matched
// case-insensitively when the alphabet is upper-case.
func (c *Codec) Encode(s string) ([]byte, error) {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		r := c.rank[b]
		if r < 0 {
			r = c.rank[upper(b)]
		}
		if r < 0 {
			return nil, fmt.Errorf("seqio: symbol %q at offset %d is not in alphabet %q", s[i], i, c.letters)
		}
		out[i] = byte(r)
	}
	return out, nil
}

// Decode converts symbol ranks back into their letters.
func (c *Codec) Decode(ranks []byte) string {
	var sb strings.Builder
	sb.Grow(len(ranks))
	for _, r := range ranks {
		sb.WriteByte(c.letters[r])
	}
	return sb.String()
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// ReadSequenceFile reads a sequence from a plain or FASTA-formatted file:
// header lines starting with '>' and blank lines are dropped, leading and
// trailing whitespace is trimmed from each line, and everything else is
// encoded with the codec (whitespace inside a line is an encoding error).
func ReadSequenceFile(path string, codec *Codec) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read sequence %s: %w", path, err)
	}
	defer f.Close()
	seq, err := ReadSequence(f, codec)
	if err != nil {
		return nil, fmt.Errorf("read sequence %s: %w", path, err)
	}
	return seq, nil
}

// ReadSequence reads a sequence from r; see ReadSequenceFile.
func ReadSequence(r io.Reader, codec *Codec) ([]byte, error) {
	var out []byte
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1<<20), 1<<24)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ">") {
			continue
		}
		ranks, err := codec.Encode(line)
		if err != nil {
			return nil, err
		}
		out = append(out, ranks...)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
