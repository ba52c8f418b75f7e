package dataset

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// streetPrefixes are Polish street/avenue/estate abbreviations that mark
// where the street part of a comma-less address begins.
var streetPrefixes = []string{"ul.", "ul ", "al.", "al ", "os.", "os "}

// ExtractCity heuristically pulls the city out of a free-text address.
// Addresses are usually "City, street details"; without a comma the part
// before a street prefix is used; failing that the whole address comes
// back unchanged as a best-effort fallback.
func ExtractCity(address string) string {
	if address == "" || address == NotAvailable {
		return ""
	}

	if i := strings.Index(address, ","); i >= 0 {
		return strings.TrimSpace(address[:i])
	}

	lower := strings.ToLower(address)
	for _, prefix := range streetPrefixes {
		if i := strings.Index(lower, prefix); i >= 0 {
			head := strings.TrimSpace(lower[:i])
			if head != "" {
				return capitalize(head)
			}
		}
	}

	return strings.TrimSpace(address)
}

// City returns the clinic's city, extracting it from the address on
// first call and memoizing the result on the record.
func (c *Clinic) City() string {
	if !c.citySet {
		c.city = ExtractCity(c.Address)
		c.citySet = true
	}
	return c.city
}

// GroupCity is the city used for display grouping: the title's city part
// when present, otherwise the address-derived city.
func (c *Clinic) GroupCity() string {
	if city := c.TitleCity(); city != "" {
		return city
	}
	return c.City()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
