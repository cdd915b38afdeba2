package csa

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"SeqSearch/internal/alphabet"
)

// Blob framing: magic, version, strategy, size, per-byte counts, suffix
// array and raw BWT, all little-endian. The wavelet tree and mapping are
// rebuilt on load; they are derived structures.
const (
	blobMagic   = "SQCSA"
	blobVersion = 1
)

// AppendBlob serializes the index into buf and returns the extended slice.
func (c *CSA) AppendBlob(buf []byte) []byte {
	var scratch [8]byte
	buf = append(buf, blobMagic...)
	buf = append(buf, blobVersion, byte(c.strategy))

	binary.LittleEndian.PutUint64(scratch[:], uint64(c.size))
	buf = append(buf, scratch[:]...)
	for b := 0; b < 256; b++ {
		binary.LittleEndian.PutUint64(scratch[:], uint64(c.counts[b]))
		buf = append(buf, scratch[:]...)
	}
	for _, v := range c.sa {
		binary.LittleEndian.PutUint32(scratch[:4], uint32(v))
		buf = append(buf, scratch[:4]...)
	}
	buf = append(buf, c.bwtRaw...)
	return buf
}

// WriteTo serializes the index to w.
func (c *CSA) WriteTo(w io.Writer) (int64, error) {
	blob := c.AppendBlob(nil)
	n, err := w.Write(blob)
	return int64(n), err
}

// FromBlob reconstructs an index from a serialized blob.
func FromBlob(blob []byte) (*CSA, error) {
	if len(blob) < len(blobMagic) || !bytes.Equal(blob[:len(blobMagic)], []byte(blobMagic)) {
		return nil, ErrBadBlobMagic
	}
	if len(blob) < len(blobMagic)+2+8 {
		return nil, ErrBadBlob
	}
	off := len(blobMagic)
	version := blob[off]
	if version != blobVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadBlob, version)
	}
	c := &CSA{strategy: alphabet.Strategy(blob[off+1])}
	off += 2

	c.size = int(binary.LittleEndian.Uint64(blob[off:]))
	off += 8
	total := 0
	for b := 0; b < 256; b++ {
		c.counts[b] = int(binary.LittleEndian.Uint64(blob[off:]))
		total += c.counts[b]
		off += 8
	}
	if c.size <= 0 || total != c.size || c.counts[0] != 1 {
		return nil, ErrBadBlob
	}
	if len(blob)-off != c.size*4+c.size {
		return nil, fmt.Errorf("%w: truncated payload", ErrBadBlob)
	}

	c.sa = make([]int32, c.size)
	for i := range c.sa {
		v := binary.LittleEndian.Uint32(blob[off:])
		if int(v) >= c.size {
			return nil, fmt.Errorf("%w: suffix entry out of range", ErrBadBlob)
		}
		c.sa[i] = int32(v)
		off += 4
	}
	c.bwtRaw = make([]byte, c.size)
	copy(c.bwtRaw, blob[off:])

	c.finish()
	return c, nil
}

// ReadFrom deserializes an index from r.
func ReadFrom(r io.Reader) (*CSA, error) {
	blob, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read index blob: %w", err)
	}
	return FromBlob(blob)
}
