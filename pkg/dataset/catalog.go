package dataset

import (
	"log/slog"
	"path/filepath"
	"sync"
)

// Snapshot file names inside the data directory.
const (
	StrainsFile = "strains.json"
	ClinicsFile = "clinics.json"
)

// Catalog holds both datasets behind a read lock so concurrent requests
// share one snapshot while SIGHUP-driven reloads swap it atomically.
type Catalog struct {
	mu      sync.RWMutex
	strains []*Strain
	clinics []*Clinic
	dataDir string
}

// NewCatalog creates an empty catalog for the given data directory.
func NewCatalog(dataDir string) *Catalog {
	return &Catalog{
		strains: []*Strain{},
		clinics: []*Clinic{},
		dataDir: dataDir,
	}
}

// Load reads both snapshot files. It never fails: unavailable files
// leave the corresponding dataset empty.
func (c *Catalog) Load() {
	strains := LoadStrains(filepath.Join(c.dataDir, StrainsFile))
	clinics := LoadClinics(filepath.Join(c.dataDir, ClinicsFile))

	c.mu.Lock()
	c.strains = strains
	c.clinics = clinics
	c.mu.Unlock()

	slog.Info("datasets loaded", "strains", len(strains), "clinics", len(clinics))
}

// Reload re-reads both snapshot files from disk (hot reload).
func (c *Catalog) Reload() {
	c.Load()
}

// Strains returns the current strains snapshot. Read-only for callers.
func (c *Catalog) Strains() []*Strain {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.strains
}

// Clinics returns the current clinics snapshot. Read-only for callers.
func (c *Catalog) Clinics() []*Clinic {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clinics
}

// StrainCount returns the number of loaded strain records.
func (c *Catalog) StrainCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.strains)
}

// ClinicCount returns the number of loaded clinic records.
func (c *Catalog) ClinicCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.clinics)
}
