package strains

import (
	"github.com/budcare/budcare-registry/pkg/dataset"
	"github.com/budcare/budcare-registry/pkg/match"
)

// DefaultThreshold is the inclusive similarity floor for fuzzy strain
// matches. Strain names are short and distinctive, so the bar is higher
// than for locations.
const DefaultThreshold = 0.8

// Finder resolves strain queries and classifies products into producer
// buckets. All its configuration (aliases, producer table, threshold)
// is fixed at construction.
type Finder struct {
	norm     *Normalizer
	class    *Classifier
	resolver match.Resolver[*dataset.Strain]
}

// NewFinder builds a Finder. Nil tables and a non-positive threshold
// fall back to the curated defaults.
func NewFinder(aliases AliasTable, producers ProducerTable, threshold float64) *Finder {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	f := &Finder{
		norm:  NewNormalizer(aliases),
		class: NewClassifier(producers),
	}
	f.resolver = match.Resolver[*dataset.Strain]{
		Normalize: f.norm.Normalize,
		Key:       func(s *dataset.Strain) string { return s.StrainName },
		Threshold: threshold,
	}
	return f
}

// Find runs the layered lookup over the strain snapshot. The bool
// reports an exact-layer hit.
func (f *Finder) Find(query string, data []*dataset.Strain) ([]match.Scored[*dataset.Strain], bool) {
	return f.resolver.Resolve(query, data)
}

// Classifier exposes the producer classifier for filter parsing.
func (f *Finder) Classifier() *Classifier {
	return f.class
}

// Normalize exposes the strain-name normalizer.
func (f *Finder) Normalize(name string) string {
	return f.norm.Normalize(name)
}
