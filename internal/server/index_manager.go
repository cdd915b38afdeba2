package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"SeqSearch/internal/fmindex"
	"SeqSearch/internal/seqio"
	"SeqSearch/internal/storage"
)

var (
	ErrIndexNotFound = errors.New("index not found")
	ErrIndexExists   = errors.New("index already exists")
)

// IndexInstance is one named, immutable bidirectional index held by the
// process, together with the text it was built from.
type IndexInstance struct {
	Name      string    `json:"name"`
	ID        string    `json:"id"`
	Length    int       `json:"length"`
	CreatedAt time.Time `json:"created_at"`

	index *fmindex.BiIndex
	text  []byte
	codec *seqio.Codec
}

// Index returns the instance's bidirectional index. Indices are immutable,
// so callers may search without further coordination.
func (inst *IndexInstance) Index() *fmindex.BiIndex { return inst.index }

// Codec returns the letter codec the instance's text was encoded with.
func (inst *IndexInstance) Codec() *seqio.Codec { return inst.codec }

// IndexManager manages the named indices of a single process. Writes
// (create, delete) take the manager lock; searches only read the immutable
// instances.
type IndexManager struct {
	dataDir string
	logger  *slog.Logger

	mu        sync.RWMutex
	instances map[string]*IndexInstance
}

// NewIndexManager creates a manager rooted at dataDir and loads every index
// persisted there.
func NewIndexManager(dataDir string, logger *slog.Logger) (*IndexManager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := storage.EnsureDir(dataDir); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	mgr := &IndexManager{
		dataDir:   dataDir,
		logger:    logger,
		instances: make(map[string]*IndexInstance),
	}
	if err := mgr.loadExisting(); err != nil {
		return nil, err
	}
	return mgr, nil
}

// loadExisting restores every index whose blob pair and text file are
// present under the data directory.
func (m *IndexManager) loadExisting() error {
	entries, err := os.ReadDir(m.dataDir)
	if err != nil {
		return fmt.Errorf("list data dir: %w", err)
	}
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), fmindex.FwdSuffix)
		if !ok || name == "" || e.IsDir() {
			continue
		}
		inst, err := m.loadInstance(name)
		if err != nil {
			m.logger.Warn("skipping unloadable index", "name", name, "error", err)
			continue
		}
		m.instances[name] = inst
		m.logger.Info("loaded index", "name", name, "length", inst.Length)
	}
	return nil
}

func (m *IndexManager) loadInstance(name string) (*IndexInstance, error) {
	base := filepath.Join(m.dataDir, name)
	idx, err := fmindex.LoadBi(base)
	if err != nil {
		return nil, err
	}
	text, err := os.ReadFile(base + ".seq")
	if err != nil {
		return nil, fmt.Errorf("read text sidecar: %w", err)
	}
	idx.AttachText(text)
	return &IndexInstance{
		Name:      name,
		ID:        uuid.NewString(),
		Length:    len(text),
		CreatedAt: time.Now(),
		index:     idx,
		text:      text,
		codec:     seqio.DNA,
	}, nil
}

// Create builds a new index over the given sequence letters and persists
// the blob pair plus the raw text.
func (m *IndexManager) Create(name, sequence string) (*IndexInstance, error) {
	codec := seqio.DNA
	text, err := codec.Encode(sequence)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.instances[name]; exists {
		return nil, ErrIndexExists
	}

	start := time.Now()
	idx, err := fmindex.NewBi(text)
	if err != nil {
		return nil, fmt.Errorf("build index %s: %w", name, err)
	}

	base := filepath.Join(m.dataDir, name)
	if err := idx.Store(base); err != nil {
		return nil, err
	}
	if err := storage.AtomicWriteFile(base+".seq", text); err != nil {
		return nil, fmt.Errorf("store text sidecar: %w", err)
	}

	inst := &IndexInstance{
		Name:      name,
		ID:        uuid.NewString(),
		Length:    len(text),
		CreatedAt: time.Now(),
		index:     idx,
		text:      text,
		codec:     codec,
	}
	m.instances[name] = inst

	m.logger.Info("created index",
		"name", name,
		"id", inst.ID,
		"length", inst.Length,
		"took", time.Since(start),
	)
	return inst, nil
}

// Get returns the named instance.
func (m *IndexManager) Get(name string) (*IndexInstance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.instances[name]
	if !ok {
		return nil, ErrIndexNotFound
	}
	return inst, nil
}

// List returns the instance names in sorted order.
func (m *IndexManager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.instances))
	for name := range m.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Delete drops an instance and removes its files.
func (m *IndexManager) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.instances[name]; !ok {
		return ErrIndexNotFound
	}
	delete(m.instances, name)

	base := filepath.Join(m.dataDir, name)
	var firstErr error
	for _, p := range []string{
		base + fmindex.FwdSuffix,
		base + fmindex.FwdSuffix + ".sha256",
		base + fmindex.RevSuffix,
		base + fmindex.RevSuffix + ".sha256",
		base + ".seq",
	} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	m.logger.Info("deleted index", "name", name)
	return firstErr
}
