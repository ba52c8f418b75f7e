// Package dataset holds the read-only strain and clinic snapshots the
// service resolves queries against. Records are loaded once at startup
// (or on hot reload) and never mutated afterwards, apart from the
// idempotent per-clinic city memoization.
package dataset

import "strings"

// NotAvailable is the sentinel some scraped fields carry instead of data.
const NotAvailable = "N/A"

// Strain is one product entry from the strains snapshot.
type Strain struct {
	StrainName   string `json:"strain_name"`
	ProductName  string `json:"product_name"`
	StrainType   string `json:"strain_type"`
	THCContent   string `json:"thc_content"`
	CBDContent   string `json:"cbd_content"`
	Availability string `json:"availability"`
	StrainURL    string `json:"strain_url"`
}

// AvailabilityGlyph maps the free-text availability field onto the
// three-state display glyph: high, none/discontinued, unknown.
func (s *Strain) AvailabilityGlyph() string {
	switch strings.ToLower(s.Availability) {
	case "wysoka":
		return "🟢"
	case "brak", "wycofany":
		return "🔴"
	default:
		return "⚪"
	}
}

// Clinic is one location entry from the clinics snapshot. Title is
// usually encoded as "<network> – <city>" (en or em dash).
type Clinic struct {
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Website     string   `json:"website"`
	ClinicURL   string   `json:"clinic_url"`
	Description string   `json:"description"`
	Doctors     []string `json:"doctors"`

	// city is memoized on first extraction. Recomputing always yields
	// the same value, so a concurrent double-set is harmless.
	city    string
	citySet bool
}

// URL returns the preferred outbound link for the clinic.
func (c *Clinic) URL() string {
	if c.Website != "" {
		return c.Website
	}
	return c.ClinicURL
}

// titleDashes are the separators seen between network and city in titles.
var titleDashes = []string{" – ", " - "}

// Network returns the chain name from the title (the part before the
// dash), or empty if the title has no recognizable separator.
func (c *Clinic) Network() string {
	for _, d := range titleDashes {
		if i := strings.Index(c.Title, d); i >= 0 {
			return strings.TrimSpace(c.Title[:i])
		}
	}
	return ""
}

// TitleCity returns the city from the title (the part after the dash),
// or empty if the title has no recognizable separator.
func (c *Clinic) TitleCity() string {
	for _, d := range titleDashes {
		if i := strings.Index(c.Title, d); i >= 0 {
			return strings.TrimSpace(c.Title[i+len(d):])
		}
	}
	return ""
}
