package clinics

import (
	"testing"

	"github.com/budcare/budcare-registry/pkg/dataset"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"Warszawa", "warszawa"},
		{"  Kraków  ", "krakow"},
		{"ŁÓDŹ", "lodz"},
		{"Gdańsk", "gdansk"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func testClinics() []*dataset.Clinic {
	return []*dataset.Clinic{
		{Title: "GreenCare – Warszawa", Address: "Warszawa, ul. Marszałkowska 1", Phone: "+48 111 111 111"},
		{Title: "GreenCare – Kraków", Address: "Kraków, ul. Floriańska 2", Phone: "+48 222 222 222"},
		{Title: "Konopna Klinika", Address: "Łódź, al. Piłsudskiego 3"},
		{Title: "", Address: "Poznań, ul. Półwiejska 4"},
	}
}

func TestFindExactCity(t *testing.T) {
	f := NewFinder(0)

	matches, exact := f.Find("Warszawa", testClinics())
	if !exact || len(matches) != 1 {
		t.Fatalf("got %d matches exact=%v", len(matches), exact)
	}
	if matches[0].Record.Title != "GreenCare – Warszawa" {
		t.Errorf("matched %q", matches[0].Record.Title)
	}
}

func TestFindAccentInsensitive(t *testing.T) {
	f := NewFinder(0)

	matches, exact := f.Find("lodz", testClinics())
	if !exact || len(matches) != 1 || matches[0].Record.Title != "Konopna Klinika" {
		t.Fatalf("lodz: %d matches exact=%v", len(matches), exact)
	}
}

func TestFindSubstringCounts(t *testing.T) {
	// A query contained in the city is exact for this domain.
	f := NewFinder(0)

	matches, exact := f.Find("warsz", testClinics())
	if !exact || len(matches) != 1 {
		t.Fatalf("warsz: %d matches exact=%v", len(matches), exact)
	}
}

func TestFindFuzzy(t *testing.T) {
	f := NewFinder(0)

	matches, exact := f.Find("warschawa", testClinics())
	if exact {
		t.Fatal("misspelling must not be exact")
	}
	if len(matches) != 1 || matches[0].Record.Title != "GreenCare – Warszawa" {
		t.Fatalf("warschawa: %d matches", len(matches))
	}
}

func TestFindNoMatch(t *testing.T) {
	f := NewFinder(0)

	matches, _ := f.Find("xyzxyzxyz", testClinics())
	if matches != nil {
		t.Fatalf("got %d matches, want none", len(matches))
	}
}

func TestExactLocationAddressPrefix(t *testing.T) {
	c := &dataset.Clinic{Address: "Sopot, ul. Bohaterów Monte Cassino 10"}
	if !exactLocation("sopot", c) {
		t.Error("city leading the address should be exact")
	}
	if exactLocation("gdynia", c) {
		t.Error("unrelated city matched")
	}
}

func TestScoreLocationUsesFirstSegment(t *testing.T) {
	c := &dataset.Clinic{Address: "Bydgoszcz, ul. Długa 5"}
	if s := scoreLocation("bydgoszcz", c); s != 1 {
		t.Errorf("score = %v, want 1", s)
	}
	// The street part after the comma must not contribute.
	if s := scoreLocation("dluga", c); s >= DefaultThreshold {
		t.Errorf("street fragment scored %v", s)
	}
}

func TestFirstSegment(t *testing.T) {
	tests := []struct {
		addr, want string
	}{
		{"Warszawa, ul. X 1", "Warszawa"},
		{"Warszawa", "Warszawa"},
		{"  padded  , rest", "padded"},
	}
	for _, tt := range tests {
		if got := firstSegment(tt.addr); got != tt.want {
			t.Errorf("firstSegment(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}
