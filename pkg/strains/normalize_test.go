package strains

import "testing"

func TestNormalize(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"White Widow", "white widow"},
		{"GORILLA-GLUE#4", "gorilla glue # 4"},
		{"gorilla_glue # 4", "gorilla glue # 4"},
		{"  spaced   out  ", "spaced out"},
		{"Kędzierzyn-Koźle", "kedzierzyn kozle"},
		{"AK-47", "ak 47"},
	}
	for _, tt := range tests {
		got := n.Normalize(tt.input)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeAliases(t *testing.T) {
	n := NewNormalizer(nil)

	for _, input := range []string{"gg4", "GG4", "gg#4", "gorilla glue", "Gorilla-Glue"} {
		got := n.Normalize(input)
		if got != "gorilla glue # 4" {
			t.Errorf("Normalize(%q) = %q, want canonical gorilla glue # 4", input, got)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer(nil)

	for _, input := range []string{"GG4", "White-Widow", "gorilla glue", "AK_47 #1"} {
		once := n.Normalize(input)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestNormalizeCustomAliases(t *testing.T) {
	// Alias keys and values are folded at construction, so a sloppily
	// written table still matches.
	n := NewNormalizer(AliasTable{"WW": "White-Widow"})

	if got := n.Normalize("ww"); got != "white widow" {
		t.Errorf("Normalize(ww) = %q, want white widow", got)
	}
}
