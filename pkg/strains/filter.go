package strains

import (
	"errors"
	"strings"
)

// ErrFilterConflict is returned when a request carries both include and
// exclude producer filters. The combination is rejected before any
// resolution runs.
var ErrFilterConflict = errors.New("exclude and include filters cannot be combined")

// ParseFilters splits filter tokens into excluded ("-" prefix) and
// included ("+" prefix) producer names. Tokens that resolve to no known
// producer are silently dropped; bare tokens are ignored.
func (c *Classifier) ParseFilters(tokens []string) (excluded, included []string) {
	for _, tok := range tokens {
		if len(tok) < 2 {
			continue
		}
		var bucket *[]string
		switch tok[0] {
		case '-':
			bucket = &excluded
		case '+':
			bucket = &included
		default:
			continue
		}
		name, ok := c.ResolveToken(tok[1:])
		if !ok {
			continue
		}
		if !containsName(*bucket, name) {
			*bucket = append(*bucket, name)
		}
	}
	return excluded, included
}

// ValidateFilters enforces the mutual exclusion of include and exclude
// filter sets.
func ValidateFilters(excluded, included []string) error {
	if len(excluded) > 0 && len(included) > 0 {
		return ErrFilterConflict
	}
	return nil
}

// PrefixTokens turns a space- or comma-delimited parameter value into
// filter tokens with the given prefix, e.g. "tilray, slab" → ["-tilray"
// "-slab"]. The external command surface feeds structured parameters in
// through this.
func PrefixTokens(value string, prefix byte) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool { return r == ' ' || r == ',' })
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			tokens = append(tokens, string(prefix)+f)
		}
	}
	return tokens
}

func containsName(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
