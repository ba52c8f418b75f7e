// Package strains resolves free-text strain queries against the strain
// snapshot and renders grouped product listings.
package strains

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// AliasTable maps known spelling variants onto their canonical strain
// name. Keys and values are folded through the base normalization at
// construction, so the table stays consistent no matter how it is
// written in configuration.
type AliasTable map[string]string

// DefaultAliases returns the curated variant table.
func DefaultAliases() AliasTable {
	return AliasTable{
		"gg4":           "gorilla glue # 4",
		"gg # 4":        "gorilla glue # 4",
		"gorilla glue":  "gorilla glue # 4",
	}
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalizer canonicalizes strain names for comparison: case folds,
// strips accents, isolates "#" as its own token, unifies separators to
// spaces, collapses whitespace, then folds known aliases onto one
// canonical form. Idempotent: normalizing a normalized name is a no-op.
type Normalizer struct {
	aliases map[string]string
}

// NewNormalizer builds a Normalizer over the given alias table
// (nil means DefaultAliases).
func NewNormalizer(aliases AliasTable) *Normalizer {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	n := &Normalizer{aliases: make(map[string]string, len(aliases))}
	for variant, canonical := range aliases {
		n.aliases[baseNormalize(variant)] = baseNormalize(canonical)
	}
	return n
}

// Normalize returns the canonical comparison key for a strain name.
func (n *Normalizer) Normalize(name string) string {
	key := baseNormalize(name)
	if canonical, ok := n.aliases[key]; ok {
		return canonical
	}
	return key
}

func baseNormalize(name string) string {
	if name == "" {
		return ""
	}
	s := strings.ToLower(name)
	if folded, _, err := transform.String(stripAccents, s); err == nil {
		s = folded
	}
	s = strings.ReplaceAll(s, "#", " # ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}
