package page

import (
	"fmt"
	"sort"
)

// Default character budgets, sized for rich-embed platform limits with
// a safety margin.
const (
	DefaultFieldBudget = 1024
	DefaultPageBudget  = 5900

	// headerOverhead accounts for the page chrome beyond fields.
	headerOverhead = 50
)

// Group is one ordered batch of formatted entries under a label.
type Group struct {
	Label   string
	Entries []string
}

// SortGroups flattens a label→entries map into alphabetical order, with
// the designated default/overflow label always sorted last.
func SortGroups(byLabel map[string][]string, defaultLabel string) []Group {
	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		di, dj := labels[i] == defaultLabel, labels[j] == defaultLabel
		if di != dj {
			return dj
		}
		return labels[i] < labels[j]
	})

	groups := make([]Group, 0, len(labels))
	for _, label := range labels {
		groups = append(groups, Group{Label: label, Entries: byLabel[label]})
	}
	return groups
}

// Layout carries the titles and budgets for one paginated response.
type Layout struct {
	Title             string
	ContinuationTitle string
	Description       string
	Footer            string
	PageBudget        int
	FieldBudget       int
}

// Paginate packs the groups into pages, greedy and order-preserving.
// Entries within a group concatenate into field bodies capped near
// FieldBudget; overflow opens a "<group> (part N)" field. Fields fill a
// page until PageBudget, then a continuation page starts. At least one
// page is always emitted, and the footer lands on the last page only.
//
// Packing never splits a single entry, so one oversized entry may push
// a field body past FieldBudget by itself; no entry is ever dropped or
// duplicated.
func (l Layout) Paginate(groups []Group) []Page {
	pageBudget := l.PageBudget
	if pageBudget <= 0 {
		pageBudget = DefaultPageBudget
	}
	fieldBudget := l.FieldBudget
	if fieldBudget <= 0 {
		fieldBudget = DefaultFieldBudget
	}
	contTitle := l.ContinuationTitle
	if contTitle == "" {
		contTitle = l.Title + " (continued)"
	}

	var pages []Page
	cur := Page{Title: l.Title, Description: l.Description}
	size := headerSize(cur)

	for _, g := range groups {
		var parts []string
		part := ""
		for _, entry := range g.Entries {
			if part != "" && len(part)+len(entry) > fieldBudget {
				parts = append(parts, part)
				part = entry
			} else {
				part += entry
			}
		}
		if part != "" {
			parts = append(parts, part)
		}

		for i, body := range parts {
			name := g.Label
			if i > 0 {
				name = fmt.Sprintf("%s (part %d)", g.Label, i+1)
			}
			fieldSize := len(name) + len(body)

			if size+fieldSize > pageBudget {
				pages = append(pages, cur)
				cur = Page{Title: contTitle}
				size = headerSize(cur)
			}
			cur.AddField(name, body)
			size += fieldSize
		}
	}

	if len(cur.Fields) > 0 || len(pages) == 0 {
		pages = append(pages, cur)
	}
	pages[len(pages)-1].Footer = l.Footer
	return pages
}

func headerSize(p Page) int {
	return len(p.Title) + len(p.Description) + headerOverhead
}
