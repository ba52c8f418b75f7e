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
	Register(&clinicsAdapter{})
}

type clinicsAdapter struct{}

func (a *clinicsAdapter) ID() string          { return "budcare-clinics" }
func (a *clinicsAdapter) DatasetFile() string { return dataset.ClinicsFile }
func (a *clinicsAdapter) Description() string {
	return "Medical cannabis clinic directory (Polish market)"
}
func (a *clinicsAdapter) DefaultURL() string {
	return "https://data.budcare.dev/snapshots/clinics.json"
}
func (a *clinicsAdapter) License() string { return "CC BY 4.0" }

func (a *clinicsAdapter) Import(ctx context.Context, sourceURL, dataDir string) error {
	dlDir := filepath.Join(dataDir, "_download")
	if err := ensureDir(dlDir); err != nil {
		return err
	}
	defer os.RemoveAll(dlDir)

	rawPath := filepath.Join(dlDir, dataset.ClinicsFile)
	fmt.Printf("  downloading %s...\n", sourceURL)
	if err := downloadFile(ctx, sourceURL, rawPath); err != nil {
		return fmt.Errorf("download: %w", err)
	}

	raw, err := os.ReadFile(rawPath)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	var clinics []dataset.Clinic
	if err := json.Unmarshal(raw, &clinics); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}
	if len(clinics) == 0 {
		return fmt.Errorf("snapshot from %s contains no records", sourceURL)
	}

	valid := clinics[:0]
	for _, c := range clinics {
		if c.Title != "" {
			valid = append(valid, c)
		}
	}

	fmt.Printf("  %d clinics\n", len(valid))

	out, err := json.MarshalIndent(valid, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dest := filepath.Join(dataDir, dataset.ClinicsFile)
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
