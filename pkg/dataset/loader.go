package dataset

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// LoadStrains reads the strains snapshot from path. A missing or
// malformed file yields an empty slice, never an error: callers always
// get an iterable dataset.
func LoadStrains(path string) []*Strain {
	var strains []*Strain
	if !loadJSON(path, &strains) {
		return []*Strain{}
	}
	return strains
}

// LoadClinics reads the clinics snapshot from path, with the same
// empty-on-failure contract as LoadStrains.
func LoadClinics(path string) []*Clinic {
	var clinics []*Clinic
	if !loadJSON(path, &clinics) {
		return []*Clinic{}
	}
	return clinics
}

func loadJSON(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("dataset file unavailable, using empty dataset", "path", path, "error", err)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("dataset file malformed, using empty dataset", "path", path, "error", err)
		return false
	}
	return true
}

// EnsureFile creates path with defaultContent when it does not exist,
// so a fresh deployment starts with valid (empty) snapshots.
func EnsureFile(path, defaultContent string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	slog.Warn("dataset file missing, creating with default content", "path", path)
	if err := os.WriteFile(path, []byte(defaultContent), 0o644); err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return nil
}
