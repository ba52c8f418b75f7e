// Package importer refreshes the dataset snapshots from their upstream
// sources and tracks source health in a small SQLite database.
package importer

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Adapter defines one dataset source: where the snapshot comes from and
// how it is validated and written into the data directory.
type Adapter interface {
	// ID returns the unique identifier of this adapter (e.g. "budcare-strains").
	ID() string
	// DatasetFile returns the snapshot file name written under the data
	// directory (e.g. "strains.json").
	DatasetFile() string
	// Description returns a human-readable description.
	Description() string
	// DefaultURL returns the default source URL used for seeding.
	DefaultURL() string
	// License returns the license the upstream data is published under.
	License() string
	// Import downloads the source from sourceURL, validates it, and
	// writes the snapshot into dataDir.
	Import(ctx context.Context, sourceURL, dataDir string) error
}

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// Register adds an adapter to the global registry.
func Register(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	adapters[a.ID()] = a
}

// Get returns a registered adapter by ID.
func Get(id string) (Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[id]
	if !ok {
		return nil, fmt.Errorf("unknown import source: %q", id)
	}
	return a, nil
}

// All returns all registered adapters sorted by ID.
func All() []Adapter {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]Adapter, 0, len(adapters))
	for _, a := range adapters {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}
