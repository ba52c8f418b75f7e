package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadStrains(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strains.json")

	const body = `[
		{"strain_name": "White Widow", "product_name": "Tilray Oil", "thc_content": "10%", "availability": "wysoka"},
		{"strain_name": "AK 47"}
	]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	strains := LoadStrains(path)
	if len(strains) != 2 {
		t.Fatalf("got %d strains, want 2", len(strains))
	}
	if strains[0].StrainName != "White Widow" || strains[0].THCContent != "10%" {
		t.Errorf("first strain = %+v", strains[0])
	}
}

func TestLoadStrainsMissingFile(t *testing.T) {
	strains := LoadStrains(filepath.Join(t.TempDir(), "nope.json"))
	if strains == nil || len(strains) != 0 {
		t.Errorf("got %v, want empty non-nil slice", strains)
	}
}

func TestLoadStrainsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strains.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	strains := LoadStrains(path)
	if len(strains) != 0 {
		t.Errorf("malformed file yielded %d strains", len(strains))
	}
}

func TestLoadClinics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinics.json")
	const body = `[{"title": "GreenCare – Warszawa", "address": "Warszawa, ul. X 1", "doctors": ["dr A"]}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	clinics := LoadClinics(path)
	if len(clinics) != 1 {
		t.Fatalf("got %d clinics", len(clinics))
	}
	if clinics[0].Network() != "GreenCare" || len(clinics[0].Doctors) != 1 {
		t.Errorf("clinic = %+v", clinics[0])
	}
}

func TestEnsureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.json")

	if err := EnsureFile(path, "[]\n"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]\n" {
		t.Errorf("content = %q", data)
	}

	// An existing file is left alone.
	if err := os.WriteFile(path, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureFile(path, "[]\n"); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "keep" {
		t.Errorf("existing file overwritten: %q", data)
	}
}

func TestCatalog(t *testing.T) {
	dir := t.TempDir()
	writeFile := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeFile(StrainsFile, `[{"strain_name": "A"}, {"strain_name": "B"}]`)
	writeFile(ClinicsFile, `[{"title": "C"}]`)

	cat := NewCatalog(dir)
	if cat.StrainCount() != 0 || cat.ClinicCount() != 0 {
		t.Fatal("fresh catalog not empty")
	}

	cat.Load()
	if cat.StrainCount() != 2 || cat.ClinicCount() != 1 {
		t.Fatalf("counts = %d/%d", cat.StrainCount(), cat.ClinicCount())
	}

	// Reload picks up changed snapshots.
	writeFile(StrainsFile, `[{"strain_name": "A"}]`)
	cat.Reload()
	if cat.StrainCount() != 1 {
		t.Errorf("after reload: %d strains", cat.StrainCount())
	}

	// A vanished file reloads to empty, never errors.
	os.Remove(filepath.Join(dir, ClinicsFile))
	cat.Reload()
	if cat.ClinicCount() != 0 {
		t.Errorf("after removing clinics: %d", cat.ClinicCount())
	}
}
