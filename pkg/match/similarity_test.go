package match

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"abc", "abc", 1},
		{"ABC", "abc", 1},
		{"abc", "abd", 1 - 1.0/3},
		{"abc", "", 0},
		{"kitten", "sitting", 1 - 3.0/7},
	}
	for _, tt := range tests {
		got := Ratio(tt.a, tt.b)
		if !almostEqual(got, tt.want) {
			t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"", "abc", 0},
		{"warsz", "warszawa", 1},
		{"glue", "gorilla glue", 1},
		{"abc", "abc", 1},
	}
	for _, tt := range tests {
		got := PartialRatio(tt.a, tt.b)
		if !almostEqual(got, tt.want) {
			t.Errorf("PartialRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTokenSetRatio(t *testing.T) {
	// Word order and duplicate tokens must not matter.
	if got := TokenSetRatio("glue gorilla", "gorilla glue"); !almostEqual(got, 1) {
		t.Errorf("TokenSetRatio word order = %v, want 1", got)
	}
	if got := TokenSetRatio("gorilla gorilla glue", "gorilla glue"); !almostEqual(got, 1) {
		t.Errorf("TokenSetRatio duplicates = %v, want 1", got)
	}
	// A shared core against a superset still scores 1 via the core/side comparison.
	if got := TokenSetRatio("gorilla glue", "gorilla glue # 4"); !almostEqual(got, 1) {
		t.Errorf("TokenSetRatio subset = %v, want 1", got)
	}
}

func TestScoreTakesMaximum(t *testing.T) {
	// Plain Ratio of "warsz" vs "warszawa" is well below 1, but
	// PartialRatio is 1, so Score must be 1.
	if got := Score("warsz", "warszawa"); !almostEqual(got, 1) {
		t.Errorf("Score(warsz, warszawa) = %v, want 1", got)
	}
	if got := Score("abc", "abc"); !almostEqual(got, 1) {
		t.Errorf("Score(abc, abc) = %v, want 1", got)
	}
}

func TestBestMatch(t *testing.T) {
	options := []string{"gorilla glue # 4", "white widow", "ak 47"}

	t.Run("exact case-insensitive", func(t *testing.T) {
		got, score, ok := BestMatch("White Widow", options, 0.8)
		if !ok || got != "white widow" || score != 1 {
			t.Errorf("BestMatch exact = (%q, %v, %v)", got, score, ok)
		}
	})

	t.Run("fuzzy above threshold", func(t *testing.T) {
		got, score, ok := BestMatch("white widoe", options, 0.8)
		if !ok || got != "white widow" {
			t.Errorf("BestMatch fuzzy = (%q, %v, %v)", got, score, ok)
		}
		if score < 0.8 {
			t.Errorf("score %v below threshold", score)
		}
	})

	t.Run("below threshold", func(t *testing.T) {
		if _, _, ok := BestMatch("zzzzzz", options, 0.8); ok {
			t.Error("BestMatch matched garbage")
		}
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		// "abcd" vs "abce" scores exactly 0.75.
		got, score, ok := BestMatch("abcd", []string{"abce"}, 0.75)
		if !ok || got != "abce" {
			t.Errorf("BestMatch at threshold = (%q, %v, %v)", got, score, ok)
		}
	})

	t.Run("empty inputs", func(t *testing.T) {
		if _, _, ok := BestMatch("", options, 0.8); ok {
			t.Error("empty query matched")
		}
		if _, _, ok := BestMatch("x", nil, 0.8); ok {
			t.Error("empty options matched")
		}
	})

	t.Run("tie keeps first option", func(t *testing.T) {
		got, _, ok := BestMatch("aab", []string{"aac", "aad"}, 0.5)
		if !ok || got != "aac" {
			t.Errorf("BestMatch tie = %q, want aac", got)
		}
	})
}
