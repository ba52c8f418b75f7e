package strains

import (
	"fmt"
	"sort"
	"strings"

	"github.com/budcare/budcare-registry/pkg/dataset"
	"github.com/budcare/budcare-registry/pkg/page"
)

// Legend explains the availability glyphs. It rides on the last page.
const Legend = "🟢 High availability | ⚪ No information | 🔴 None/Discontinued"

// ListPages renders the full strain listing, grouped by producer,
// honoring exclude/include filters. ValidateFilters must have accepted
// the filter sets before this runs.
func (f *Finder) ListPages(data []*dataset.Strain, excluded, included []string) []page.Page {
	layout := page.Layout{
		Title:             "Available Strains",
		ContinuationTitle: "Available Strains (continued)",
		Description:       listDescription(excluded, included),
		Footer:            Legend,
	}

	if len(data) == 0 {
		layout.Description = "No strain data available."
		return layout.Paginate(nil)
	}

	byProducer := make(map[string][]*dataset.Strain)
	for _, s := range data {
		producer := f.class.Classify(s.ProductName)
		if containsName(excluded, producer) {
			continue
		}
		if len(included) > 0 && !containsName(included, producer) {
			continue
		}
		byProducer[producer] = append(byProducer[producer], s)
	}

	entries := make(map[string][]string, len(byProducer))
	for producer, group := range byProducer {
		sort.SliceStable(group, func(i, j int) bool { return group[i].StrainName < group[j].StrainName })
		for _, s := range group {
			entries[producer] = append(entries[producer], listEntry(s))
		}
	}

	return layout.Paginate(page.SortGroups(entries, DefaultProducer))
}

func listDescription(excluded, included []string) string {
	desc := "Strains grouped by producer:"
	if len(included) > 0 {
		desc += fmt.Sprintf("\n*Showing producers: %s*", strings.Join(included, ", "))
	}
	if len(excluded) > 0 {
		desc += fmt.Sprintf("\n*Excluded producers: %s*", strings.Join(excluded, ", "))
	}
	return desc
}

func listEntry(s *dataset.Strain) string {
	link := ""
	if s.StrainURL != "" && s.StrainURL != "#" {
		link = fmt.Sprintf(" - [Info](%s)", s.StrainURL)
	}
	return fmt.Sprintf("%s **%s** (THC: %s, CBD: %s)%s\n",
		s.AvailabilityGlyph(), s.StrainName, s.THCContent, s.CBDContent, link)
}

// InfoResult is the rendered answer to a strain query.
type InfoResult struct {
	Pages   []page.Page `json:"pages"`
	Matches int         `json:"matches"`
	Exact   bool        `json:"exact"`
}

// InfoPages resolves a strain query and renders it: a not-found page,
// a single detail page, or producer-grouped candidate pages.
func (f *Finder) InfoPages(query string, data []*dataset.Strain) InfoResult {
	matches, exact := f.Find(query, data)

	if len(matches) == 0 {
		return InfoResult{Pages: []page.Page{{
			Title:       fmt.Sprintf("No results for: '%s'", query),
			Description: fmt.Sprintf("Strain '%s' was not found. Try another name or check the spelling.", query),
		}}}
	}

	if len(matches) == 1 {
		return InfoResult{
			Pages:   []page.Page{f.detailPage(query, matches[0].Record, exact)},
			Matches: 1,
			Exact:   exact,
		}
	}

	byProducer := make(map[string][]string)
	for _, m := range matches {
		s := m.Record
		producer := f.class.Classify(s.ProductName)
		entry := fmt.Sprintf("%s **%s** - %s (THC: %s, CBD: %s)\n   [More info](%s)\n",
			s.AvailabilityGlyph(), s.StrainName, s.ProductName, s.THCContent, s.CBDContent, s.StrainURL)
		byProducer[producer] = append(byProducer[producer], entry)
	}

	desc := fmt.Sprintf("Multiple strains named '%s' found. Pick one below:", query)
	if !exact {
		desc = fmt.Sprintf("No exact match for '%s'. Did you mean one of these?", query)
	}

	layout := page.Layout{
		Title:       fmt.Sprintf("Strains matching: '%s'", query),
		Description: desc,
		Footer:      Legend,
	}
	return InfoResult{
		Pages:   layout.Paginate(page.SortGroups(byProducer, DefaultProducer)),
		Matches: len(matches),
		Exact:   exact,
	}
}

func (f *Finder) detailPage(query string, s *dataset.Strain, exact bool) page.Page {
	p := page.Page{
		Title:  fmt.Sprintf("Strain Information: %s", s.StrainName),
		Footer: Legend,
	}
	if !exact {
		p.Description = fmt.Sprintf("*Showing the closest match to '%s'*", query)
	}
	p.AddField("Product Name", s.ProductName)
	p.AddField("Type", s.StrainType)
	p.AddField("THC Content", s.THCContent)
	p.AddField("CBD Content", s.CBDContent)
	p.AddField("Availability", fmt.Sprintf("%s %s", s.AvailabilityGlyph(), s.Availability))
	if s.StrainURL != "" && s.StrainURL != "#" {
		p.AddField("Learn More", fmt.Sprintf("[Click here](%s)", s.StrainURL))
	}
	return p
}
