// Package clinics resolves free-text location queries against the
// clinic snapshot and renders grouped clinic listings.
package clinics

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/budcare/budcare-registry/pkg/dataset"
	"github.com/budcare/budcare-registry/pkg/match"
)

// DefaultThreshold is the inclusive similarity floor for fuzzy location
// matches. Lower than the strain threshold: location queries are short
// and typo-prone.
const DefaultThreshold = 0.65

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a location key: trim, case fold, accent fold,
// so "Łódź", "łódź" and "lodz" meet on one key. Idempotent.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(stripAccents, s); err == nil {
		return folded
	}
	return s
}

// Finder resolves location queries against clinic records.
type Finder struct {
	resolver match.Resolver[*dataset.Clinic]
}

// NewFinder builds a Finder; a non-positive threshold falls back to
// DefaultThreshold.
func NewFinder(threshold float64) *Finder {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	f := &Finder{}
	f.resolver = match.Resolver[*dataset.Clinic]{
		Normalize: Normalize,
		Key:       func(c *dataset.Clinic) string { return c.City() },
		Exact:     exactLocation,
		Score:     scoreLocation,
		Threshold: threshold,
	}
	return f
}

// exactLocation widens the exact layer for the clinic domain: addresses
// are freer-form than strain names, so a query contained in the city or
// leading the address (up to the comma) counts as exact. Deliberately
// more permissive than the strain domain's key equality.
func exactLocation(query string, c *dataset.Clinic) bool {
	if city := Normalize(c.City()); city != "" && strings.Contains(city, query) {
		return true
	}
	addr := Normalize(c.Address)
	if addr == "" {
		return false
	}
	if strings.HasPrefix(addr, query+",") {
		return true
	}
	return strings.Contains(firstSegment(addr), query)
}

// scoreLocation is the ranked-layer score: the better of the query
// against the memoized city and against the address's first comma
// segment (which usually holds the city).
func scoreLocation(query string, c *dataset.Clinic) float64 {
	best := 0.0
	if city := Normalize(c.City()); city != "" {
		best = match.Score(query, city)
	}
	if addr := Normalize(c.Address); addr != "" && strings.Contains(addr, ",") {
		if s := match.Score(query, firstSegment(addr)); s > best {
			best = s
		}
	}
	return best
}

func firstSegment(addr string) string {
	if i := strings.Index(addr, ","); i >= 0 {
		return strings.TrimSpace(addr[:i])
	}
	return strings.TrimSpace(addr)
}

// Find runs the layered lookup over the clinic snapshot. The bool
// reports an exact-layer hit.
func (f *Finder) Find(query string, data []*dataset.Clinic) ([]match.Scored[*dataset.Clinic], bool) {
	return f.resolver.Resolve(query, data)
}
