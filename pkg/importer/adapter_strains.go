package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/budcare/budcare-registry/pkg/dataset"
)

func init() {
	Register(&strainsAdapter{})
}

type strainsAdapter struct{}

func (a *strainsAdapter) ID() string          { return "budcare-strains" }
func (a *strainsAdapter) DatasetFile() string { return dataset.StrainsFile }
func (a *strainsAdapter) Description() string {
	return "Medical cannabis strain catalog (Polish market)"
}
func (a *strainsAdapter) DefaultURL() string {
	return "https://data.budcare.dev/snapshots/strains.json"
}
func (a *strainsAdapter) License() string { return "CC BY 4.0" }

func (a *strainsAdapter) Import(ctx context.Context, sourceURL, dataDir string) error {
	dlDir := filepath.Join(dataDir, "_download")
	if err := ensureDir(dlDir); err != nil {
		return err
	}
	defer os.RemoveAll(dlDir)

	rawPath := filepath.Join(dlDir, dataset.StrainsFile)
	fmt.Printf("  downloading %s...\n", sourceURL)
	if err := downloadFile(ctx, sourceURL, rawPath); err != nil {
		return fmt.Errorf("download: %w", err)
	}

	raw, err := os.ReadFile(rawPath)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	var strains []dataset.Strain
	if err := json.Unmarshal(raw, &strains); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}
	if len(strains) == 0 {
		return fmt.Errorf("snapshot from %s contains no records", sourceURL)
	}

	// Drop records without a name; they can never be resolved.
	valid := strains[:0]
	for _, s := range strains {
		if s.StrainName != "" {
			valid = append(valid, s)
		}
	}

	fmt.Printf("  %d strains\n", len(valid))

	out, err := json.MarshalIndent(valid, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dest := filepath.Join(dataDir, dataset.StrainsFile)
	if err := writeAtomic(dest, out); err != nil {
		return err
	}

	return writeManifest(dest, &Manifest{
		AdapterID: a.ID(),
		SourceURL: sourceURL,
		License:   a.License(),
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
		Records:   len(valid),
	})
}
