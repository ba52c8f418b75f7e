// Package match implements the string-similarity primitives and the
// layered query resolver shared by the strain and clinic domains.
package match

import (
	"sort"
	"strings"
)

// Ratio is the edit-distance-derived similarity of two strings in [0,1],
// case-insensitive. 1 means equal after case folding.
func Ratio(a, b string) float64 {
	return ratioRunes([]rune(strings.ToLower(a)), []rune(strings.ToLower(b)))
}

func ratioRunes(a, b []rune) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

// levenshtein computes the edit distance with a rolling two-row table.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// PartialRatio is the best Ratio of the shorter string against every
// equal-length window of the longer one, so a query that is a substring
// or prefix of a key still scores 1.
func PartialRatio(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	shorter, longer := ra, rb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		if len(longer) == 0 {
			return 1
		}
		return 0
	}

	best := 0.0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		r := ratioRunes(shorter, longer[i:i+len(shorter)])
		if r > best {
			best = r
		}
		if best == 1 {
			break
		}
	}
	return best
}

// TokenSetRatio scores word-order-insensitive overlap: both strings are
// split into unique sorted tokens and the shared-token core is compared
// against each side's remainder.
func TokenSetRatio(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)

	var shared, onlyA, onlyB []string
	for _, t := range ta {
		if containsString(tb, t) {
			shared = append(shared, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for _, t := range tb {
		if !containsString(ta, t) {
			onlyB = append(onlyB, t)
		}
	}

	core := strings.Join(shared, " ")
	s1 := strings.TrimSpace(core + " " + strings.Join(onlyA, " "))
	s2 := strings.TrimSpace(core + " " + strings.Join(onlyB, " "))

	best := Ratio(core, s1)
	if r := Ratio(core, s2); r > best {
		best = r
	}
	if r := Ratio(s1, s2); r > best {
		best = r
	}
	return best
}

func tokenSet(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	seen := make(map[string]bool, len(fields))
	var tokens []string
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			tokens = append(tokens, f)
		}
	}
	sort.Strings(tokens)
	return tokens
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Score is the effective fuzzy similarity: the maximum of the three
// ratios, so partial queries ("warsz") and shuffled word order both
// still land on the right key.
func Score(a, b string) float64 {
	best := Ratio(a, b)
	if r := TokenSetRatio(a, b); r > best {
		best = r
	}
	if r := PartialRatio(a, b); r > best {
		best = r
	}
	return best
}

// BestMatch finds the option most similar to query. An exact
// case-insensitive hit scores 1; otherwise the highest Score wins,
// provided it reaches threshold (inclusive). Ties keep the first option.
func BestMatch(query string, options []string, threshold float64) (string, float64, bool) {
	if query == "" || len(options) == 0 {
		return "", 0, false
	}

	lower := strings.ToLower(query)
	for _, opt := range options {
		if lower == strings.ToLower(opt) {
			return opt, 1, true
		}
	}

	best := ""
	bestScore := 0.0
	for _, opt := range options {
		if s := Score(lower, opt); s > bestScore {
			best = opt
			bestScore = s
		}
	}
	if bestScore >= threshold {
		return best, bestScore, true
	}
	return "", 0, false
}
