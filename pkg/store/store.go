// Package store owns the single on-disk JSON snapshot holding all
// application state. Every mutation is a whole-snapshot rewrite: there is no
// diffing, no versioning, and no partial write. A single mutex serializes
// load-mutate-save cycles so the at-most-one-writer discipline holds even
// under a concurrent HTTP host.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"workspace-service/internal/model"
	"workspace-service/prometheus"
)

var (
	mu   sync.Mutex
	path string
)

// Initialize sets the snapshot file path and creates the file with an empty
// default snapshot if it does not exist yet.
func Initialize(filePath string) error {
	mu.Lock()
	defer mu.Unlock()

	path = filePath
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return write(model.EmptySnapshot())
	}
	// Fail closed on a corrupt file rather than silently resetting state.
	if _, err := read(); err != nil {
		return err
	}
	return nil
}

// View runs fn against the current snapshot under the store lock. Mutations
// made by fn are discarded.
func View(fn func(s *model.Snapshot) error) error {
	defer prometheus.TrackStoreOperation("view")(time.Now())
	mu.Lock()
	defer mu.Unlock()

	snap, err := read()
	if err != nil {
		return err
	}
	return fn(snap)
}

// Update runs fn against the current snapshot under the store lock and
// persists the result only when fn succeeds. A failing fn leaves the on-disk
// state untouched, which is what makes each operation's externally visible
// effect atomic.
func Update(fn func(s *model.Snapshot) error) error {
	defer prometheus.TrackStoreOperation("update")(time.Now())
	mu.Lock()
	defer mu.Unlock()

	snap, err := read()
	if err != nil {
		return err
	}
	if err := fn(snap); err != nil {
		return err
	}
	return write(snap)
}

// Clear resets all state to the empty default snapshot.
func Clear() error {
	defer prometheus.TrackStoreOperation("clear")(time.Now())
	mu.Lock()
	defer mu.Unlock()
	return write(model.EmptySnapshot())
}

func read() (*model.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			snap := model.EmptySnapshot()
			if werr := write(snap); werr != nil {
				return nil, werr
			}
			return snap, nil
		}
		return nil, fmt.Errorf("store: read snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("store: snapshot file %s is corrupt: %w", path, err)
	}
	return &snap, nil
}

func write(snap *model.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("store: encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("store: write snapshot: %w", err)
	}
	return nil
}
