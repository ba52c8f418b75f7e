package clinics

import (
	"fmt"
	"strings"

	"github.com/budcare/budcare-registry/pkg/dataset"
	"github.com/budcare/budcare-registry/pkg/page"
)

// Disclaimer rides on the last page of clinic listings.
const Disclaimer = "Clinic data may change. Calling ahead to confirm availability and prices is recommended."

// Clinic pages pack tighter than strain pages: entries are multi-line.
const (
	FieldBudget = 1000
	PageBudget  = 5800
)

// GroupBy selects the grouping axis for the full listing.
type GroupBy int

const (
	ByCity GroupBy = iota
	ByNetwork
)

// fallbackGroup collects clinics whose records carry no usable city or
// network label.
const fallbackGroup = "Other Locations"

// ListPages renders the full clinic listing grouped by city or network.
func ListPages(data []*dataset.Clinic, groupBy GroupBy) []page.Page {
	layout := page.Layout{
		Title:             "Available Cannabis Clinics",
		ContinuationTitle: "Available Cannabis Clinics (continued)",
		Description:       "Clinics grouped by city:",
		Footer:            Disclaimer,
		PageBudget:        PageBudget,
		FieldBudget:       FieldBudget,
	}
	if groupBy == ByNetwork {
		layout.Description = "Clinics grouped by network:"
	}

	if len(data) == 0 {
		layout.Description = "No clinic data available."
		return layout.Paginate(nil)
	}

	groups := make(map[string][]string)
	for _, c := range data {
		label := groupLabel(c, groupBy)
		groups[label] = append(groups[label], listEntry(c, groupBy))
	}

	return layout.Paginate(page.SortGroups(groups, fallbackGroup))
}

func groupLabel(c *dataset.Clinic, groupBy GroupBy) string {
	var label string
	switch groupBy {
	case ByNetwork:
		label = c.Network()
	default:
		label = c.GroupCity()
	}
	if label == "" {
		return fallbackGroup
	}
	return label
}

func listEntry(c *dataset.Clinic, groupBy GroupBy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", entryName(c, groupBy))
	if c.Address != "" && c.Address != dataset.NotAvailable {
		fmt.Fprintf(&b, "📍 %s\n", c.Address)
	}
	if c.Phone != "" && c.Phone != dataset.NotAvailable {
		fmt.Fprintf(&b, "📞 %s\n", c.Phone)
	}
	if url := c.URL(); url != "" {
		fmt.Fprintf(&b, "🔗 [Website](%s)\n", url)
	}
	b.WriteString("\n")
	return b.String()
}

// entryName picks the headline for one clinic entry: the network with
// the city in parentheses when the title encodes both, the raw title
// otherwise, and an address-derived fallback when there is no title.
func entryName(c *dataset.Clinic, groupBy GroupBy) string {
	if network := c.Network(); network != "" {
		if groupBy == ByNetwork {
			if city := c.TitleCity(); city != "" {
				return city
			}
		}
		return fmt.Sprintf("%s (%s)", network, c.GroupCity())
	}
	if c.Title != "" {
		return c.Title
	}
	if c.Address != "" && c.Address != dataset.NotAvailable {
		return "Clinic - " + c.Address
	}
	return "Clinic (no address)"
}

// InfoResult is the rendered answer to a location query.
type InfoResult struct {
	Pages   []page.Page `json:"pages"`
	Matches int         `json:"matches"`
	Exact   bool        `json:"exact"`
}

// InfoPages resolves a location query and renders it: a not-found page,
// a single detail page, or a numbered candidate listing.
func (f *Finder) InfoPages(query string, data []*dataset.Clinic) InfoResult {
	matches, exact := f.Find(query, data)

	if len(matches) == 0 {
		return InfoResult{Pages: []page.Page{{
			Title:       fmt.Sprintf("No clinics found for: '%s'", query),
			Description: fmt.Sprintf("No clinics found in '%s'. Try a city name or check the spelling.", query),
		}}}
	}

	if len(matches) == 1 {
		return InfoResult{
			Pages:   []page.Page{detailPage(query, matches[0].Record, exact)},
			Matches: 1,
			Exact:   exact,
		}
	}

	entries := make([]string, 0, len(matches))
	for i, m := range matches {
		entries = append(entries, numberedEntry(i+1, m.Record))
	}

	desc := fmt.Sprintf("Found %d clinics in '%s':", len(matches), query)
	if !exact {
		desc = fmt.Sprintf("Found %d clinics similar to '%s':", len(matches), query)
	}

	layout := page.Layout{
		Title:       fmt.Sprintf("Clinics matching: '%s'", query),
		Description: desc,
		Footer:      Disclaimer,
		PageBudget:  PageBudget,
		FieldBudget: FieldBudget,
	}
	return InfoResult{
		Pages:   layout.Paginate([]page.Group{{Label: "Results", Entries: entries}}),
		Matches: len(matches),
		Exact:   exact,
	}
}

func numberedEntry(n int, c *dataset.Clinic) string {
	name := c.Title
	if name == "" {
		if city := dataset.ExtractCity(c.Address); city != "" {
			name = "Clinic in " + city
		} else {
			name = "Clinic - " + c.Address
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%d. %s**\n", n, name)
	if c.Address != "" {
		fmt.Fprintf(&b, "   📍 %s\n", c.Address)
	}
	if c.Phone != "" {
		fmt.Fprintf(&b, "   📞 %s\n", c.Phone)
	}
	if url := c.URL(); url != "" {
		fmt.Fprintf(&b, "   🔗 [Website](%s)\n", url)
	}
	b.WriteString("\n")
	return b.String()
}

func detailPage(query string, c *dataset.Clinic, exact bool) page.Page {
	name := c.Title
	if name == "" {
		name = "Clinic - " + c.Address
	}
	p := page.Page{
		Title:  "Clinic: " + name,
		Footer: Disclaimer,
	}
	if !exact {
		p.Description = fmt.Sprintf("*Showing the closest match to '%s'*", query)
	}
	if city := c.City(); city != "" {
		p.AddField("City", city)
	}
	if c.Address != "" {
		p.AddField("Address", c.Address)
	}
	if c.Phone != "" {
		p.AddField("Phone", c.Phone)
	}
	if c.Email != "" {
		p.AddField("Email", c.Email)
	}
	if url := c.URL(); url != "" {
		p.AddField("Website", fmt.Sprintf("[Click here](%s)", url))
	}
	if c.Description != "" {
		p.AddField("About", c.Description)
	}
	if len(c.Doctors) > 0 {
		var b strings.Builder
		for _, d := range c.Doctors {
			fmt.Fprintf(&b, "• %s\n", d)
		}
		p.AddField("Doctors", strings.TrimRight(b.String(), "\n"))
	}
	return p
}
