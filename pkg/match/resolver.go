package match

import (
	"sort"
	"strings"
)

// DefaultLimit caps the ranked-fuzzy layer so a vague query cannot
// flood the response.
const DefaultLimit = 10

// Scored pairs a record with the similarity score that admitted it.
// Exact matches carry score 1. The score lives here, not on the record:
// the canonical dataset is never mutated during ranking.
type Scored[R any] struct {
	Record R
	Score  float64
}

// Resolver is the layered lookup shared by both domains. Each layer runs
// only when the previous one produced nothing:
//
//  1. exact — every record whose normalized key equals the normalized
//     query (or passes the domain's widened Exact hook)
//  2. best single key — the distinct key most similar to the query; when
//     it reaches Threshold, every record sharing that key is returned
//  3. ranked fuzzy — records scored individually, kept at >= Threshold,
//     sorted descending, capped at Limit
type Resolver[R any] struct {
	// Normalize canonicalizes the query and every key. Must be
	// deterministic and idempotent. Defaults to lowercase+trim.
	Normalize func(string) string

	// Key yields the record's raw primary key.
	Key func(R) string

	// Exact, when set, widens the exact layer beyond key equality.
	// It receives the normalized query.
	Exact func(query string, r R) bool

	// Score, when set, replaces the per-record score of the ranked
	// layer. It receives the normalized query.
	Score func(query string, r R) float64

	// Threshold is the inclusive minimum similarity for fuzzy layers.
	Threshold float64

	// Limit caps the ranked-fuzzy layer. Defaults to DefaultLimit.
	Limit int
}

// Resolve runs the layered lookup. The bool reports whether the matches
// came from the exact layer. Empty query or dataset resolves to
// (nil, false) without scanning.
func (rs *Resolver[R]) Resolve(query string, records []R) ([]Scored[R], bool) {
	if query == "" || len(records) == 0 {
		return nil, false
	}

	normalize := rs.Normalize
	if normalize == nil {
		normalize = func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	}
	nq := normalize(query)
	if nq == "" {
		return nil, false
	}

	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = normalize(rs.Key(r))
	}

	// Exact layer. All exact matches are returned together.
	var exact []Scored[R]
	for i, r := range records {
		hit := keys[i] == nq
		if !hit && rs.Exact != nil {
			hit = rs.Exact(nq, r)
		}
		if hit {
			exact = append(exact, Scored[R]{Record: r, Score: 1})
		}
	}
	if len(exact) > 0 {
		return exact, true
	}

	// Best-single-key layer: the closest distinct key, first seen wins
	// ties, and every record sharing it comes back together.
	bestKey := ""
	bestScore := 0.0
	seen := make(map[string]bool, len(records))
	for _, key := range keys {
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if s := Score(nq, key); s > bestScore {
			bestKey = key
			bestScore = s
		}
	}
	if bestKey != "" && bestScore >= rs.Threshold {
		var matches []Scored[R]
		for i, r := range records {
			if keys[i] == bestKey {
				matches = append(matches, Scored[R]{Record: r, Score: bestScore})
			}
		}
		return matches, false
	}

	// Ranked-fuzzy layer: score records individually.
	score := rs.Score
	if score == nil {
		score = func(q string, r R) float64 {
			key := normalize(rs.Key(r))
			if key == "" {
				return 0
			}
			return Score(q, key)
		}
	}

	var ranked []Scored[R]
	for _, r := range records {
		if s := score(nq, r); s >= rs.Threshold {
			ranked = append(ranked, Scored[R]{Record: r, Score: s})
		}
	}
	if len(ranked) == 0 {
		return nil, false
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	limit := rs.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, false
}
