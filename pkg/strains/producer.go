package strains

import (
	"strings"
	"unicode"
)

// DefaultProducer is the bucket for products no keyword claims.
const DefaultProducer = "Other Producers"

// Producer is one classification bucket with the keyword substrings
// that claim a product for it.
type Producer struct {
	Name     string
	Keywords []string
}

// ProducerTable is the ordered producer→keywords mapping. Order matters:
// the first producer with a matching keyword wins. This is configuration
// data, injected at construction so tests can substitute fixtures.
type ProducerTable []Producer

// DefaultProducers returns the curated production table.
func DefaultProducers() ProducerTable {
	return ProducerTable{
		{Name: "Four20 Pharma", Keywords: []string{"four20pharma", "four20", "four 20 pharma"}},
		{Name: "S-LAB", Keywords: []string{"s-lab", "slab"}},
		{Name: "Tilray", Keywords: []string{"tilray"}},
		{Name: "Aurora", Keywords: []string{"aurora"}},
		{Name: "Canopy Growth", Keywords: []string{"canopygrowth", "canopy"}},
		{Name: "CanPoland", Keywords: []string{"canpoland"}},
		{Name: "COSMA", Keywords: []string{"cosma"}},
		{Name: "Polfarmex", Keywords: []string{"polfarmex"}},
		{Name: "ODI Pharma", Keywords: []string{"odipharma", "odi pharma", "odi"}},
		{Name: "Cantourage", Keywords: []string{"cantourage"}},
		{Name: "Medezin", Keywords: []string{"medezin"}},
		{Name: "Spectrum Therapeutics", Keywords: []string{"spectrum", "spectrum therapeutics"}},
	}
}

type compiledProducer struct {
	name     string
	nameKey  string
	keywords []string
}

// Classifier assigns every product label to exactly one producer.
// Keywords are folded to lowercase alphanumerics at construction so
// declared forms with spaces or hyphens still match normalized labels.
type Classifier struct {
	producers []compiledProducer
}

// NewClassifier compiles a producer table (nil means DefaultProducers).
func NewClassifier(table ProducerTable) *Classifier {
	if table == nil {
		table = DefaultProducers()
	}
	c := &Classifier{producers: make([]compiledProducer, 0, len(table))}
	for _, p := range table {
		cp := compiledProducer{
			name:    p.Name,
			nameKey: alnumFold(p.Name),
		}
		for _, kw := range p.Keywords {
			if folded := alnumFold(kw); folded != "" {
				cp.keywords = append(cp.keywords, folded)
			}
		}
		c.producers = append(c.producers, cp)
	}
	return c
}

// Classify maps a product name to its producer. Classification is
// total: labels nothing claims land in DefaultProducer.
func (c *Classifier) Classify(productName string) string {
	if productName == "" {
		return DefaultProducer
	}
	label := alnumFold(productName)
	for _, p := range c.producers {
		for _, kw := range p.keywords {
			if strings.Contains(label, kw) {
				return p.name
			}
		}
	}
	return DefaultProducer
}

// ResolveToken maps a filter token (a keyword or a squeezed producer
// name) to its producer. Unknown tokens report ok=false.
func (c *Classifier) ResolveToken(token string) (string, bool) {
	key := alnumFold(token)
	if key == "" {
		return "", false
	}
	for _, p := range c.producers {
		if key == p.nameKey {
			return p.name, true
		}
		for _, kw := range p.keywords {
			if key == kw {
				return p.name, true
			}
		}
	}
	return "", false
}

// alnumFold lowercases and keeps only letters and digits.
func alnumFold(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
