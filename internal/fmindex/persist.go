package fmindex

import (
	"fmt"

	"SeqSearch/internal/csa"
	"SeqSearch/internal/storage"
)

// Blob suffixes for the two sides of a persisted bidirectional index.
const (
	FwdSuffix = ".fwd"
	RevSuffix = ".rev"
)

// Store serializes the index blob to path. The write is atomic and leaves a
// checksum sidecar next to the blob.
func (x *Index) Store(path string) error {
	blob := x.csa.AppendBlob(nil)
	if err := storage.WriteBlobChecked(path, blob); err != nil {
		return fmt.Errorf("store index %s: %w", path, err)
	}
	return nil
}

// Load reads an index blob from path. The loaded index has no attached
// text: Query reconstruction stays unavailable until AttachText is called,
// while counting and locating work immediately.
func Load(path string) (*Index, error) {
	blob, err := storage.ReadBlobChecked(path)
	if err != nil {
		return nil, fmt.Errorf("load index %s: %w", path, err)
	}
	c, err := csa.FromBlob(blob)
	if err != nil {
		return nil, fmt.Errorf("load index %s: %w", path, err)
	}
	return fromCSA(c), nil
}

// Store persists both sides of the index at path + ".fwd" and path +
// ".rev". The core defines no framing beyond the two blobs.
func (x *BiIndex) Store(path string) error {
	if err := x.fwd.Store(path + FwdSuffix); err != nil {
		return err
	}
	return x.rev.Store(path + RevSuffix)
}

// LoadBi reads both sides of a bidirectional index from path + ".fwd" and
// path + ".rev".
func LoadBi(path string) (*BiIndex, error) {
	fwd, err := Load(path + FwdSuffix)
	if err != nil {
		return nil, err
	}
	rev, err := Load(path + RevSuffix)
	if err != nil {
		return nil, err
	}
	if fwd.Size() != rev.Size() {
		return nil, fmt.Errorf("load index %s: forward and reverse blobs disagree on size", path)
	}
	return &BiIndex{fwd: fwd, rev: rev}, nil
}
