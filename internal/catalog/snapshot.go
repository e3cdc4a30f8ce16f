package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Snapshot is the flat cache format: one array per entity type, every
// currently-known field included, so hydration performed before the snapshot
// survives a reload.
type Snapshot struct {
	Patterns []*Pattern `json:"patterns"`
	Shops    []*Shop    `json:"shops"`
	Yarns    []*Yarn    `json:"yarns"`
}

// Snapshot serializes the index's three collections.
func (ix *Index) Snapshot() *Snapshot {
	return &Snapshot{Patterns: ix.Patterns, Shops: ix.Shops, Yarns: ix.Yarns}
}

// WriteFile writes the snapshot as JSON, creating parent directories as
// needed. The write goes through a temp file and rename so a crash cannot
// leave a torn snapshot behind.
func (s *Snapshot) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	if err := enc.Encode(s); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// FromSnapshot rebuilds an index from a snapshot. Names are re-normalized,
// which is a no-op for snapshots this program wrote but keeps the
// construction invariant for hand-edited caches.
func FromSnapshot(s *Snapshot, source Source, log *zap.SugaredLogger) *Index {
	ix := NewIndex(source, log)
	for _, p := range s.Patterns {
		p.Name = NormalizeName(p.Name)
		p.Designer = NormalizeName(p.Designer)
	}
	for _, sh := range s.Shops {
		sh.Name = NormalizeName(sh.Name)
	}
	for _, y := range s.Yarns {
		y.Name = NormalizeName(y.Name)
		y.Brand = NormalizeName(y.Brand)
	}
	ix.Patterns = s.Patterns
	ix.Shops = s.Shops
	ix.Yarns = s.Yarns
	ix.reindex()
	return ix
}

// LoadSnapshotFile reads a snapshot from disk and rebuilds an index from it.
func LoadSnapshotFile(path string, source Source, log *zap.SugaredLogger) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
	}
	return FromSnapshot(&snap, source, log), nil
}
