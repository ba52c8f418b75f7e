package page

import (
	"fmt"
	"strings"
	"testing"
)

func TestSortGroups(t *testing.T) {
	groups := SortGroups(map[string][]string{
		"Zeta":  {"z"},
		"Other": {"o"},
		"Alpha": {"a"},
	}, "Other")

	want := []string{"Alpha", "Zeta", "Other"}
	if len(groups) != len(want) {
		t.Fatalf("got %d groups", len(groups))
	}
	for i, g := range groups {
		if g.Label != want[i] {
			t.Errorf("group %d = %q, want %q", i, g.Label, want[i])
		}
	}
}

func TestPaginateEmpty(t *testing.T) {
	l := Layout{Title: "T", Description: "D", Footer: "F"}

	pages := l.Paginate(nil)
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	if pages[0].Title != "T" || pages[0].Description != "D" || pages[0].Footer != "F" {
		t.Errorf("page = %+v", pages[0])
	}
	if len(pages[0].Fields) != 0 {
		t.Errorf("empty input produced fields: %+v", pages[0].Fields)
	}
}

func TestPaginateSinglePage(t *testing.T) {
	l := Layout{Title: "T"}

	pages := l.Paginate([]Group{
		{Label: "A", Entries: []string{"one\n", "two\n"}},
		{Label: "B", Entries: []string{"three\n"}},
	})
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	if len(pages[0].Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(pages[0].Fields))
	}
	if pages[0].Fields[0].Body != "one\ntwo\n" {
		t.Errorf("field body = %q", pages[0].Fields[0].Body)
	}
}

func TestPaginateFieldSplitting(t *testing.T) {
	// 50 entries of 50 chars against a 1024 budget: 20 entries fill
	// 1000 chars, so each part holds 20 and the group spans 3 parts.
	entry := strings.Repeat("x", 50)
	entries := make([]string, 50)
	for i := range entries {
		entries[i] = entry
	}

	l := Layout{Title: "T"}
	pages := l.Paginate([]Group{{Label: "Big", Entries: entries}})
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}

	fields := pages[0].Fields
	if len(fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(fields))
	}
	wantNames := []string{"Big", "Big (part 2)", "Big (part 3)"}
	for i, f := range fields {
		if f.Name != wantNames[i] {
			t.Errorf("field %d name = %q, want %q", i, f.Name, wantNames[i])
		}
		if len(f.Body) > DefaultFieldBudget {
			t.Errorf("field %d body %d chars exceeds budget", i, len(f.Body))
		}
	}

	// No entry lost or duplicated.
	total := 0
	for _, f := range fields {
		total += len(f.Body)
	}
	if total != 50*50 {
		t.Errorf("total body = %d chars, want 2500", total)
	}
}

func TestPaginateContinuationPages(t *testing.T) {
	// Each group renders one ~1000-char field; seven of them overflow
	// the 5900-char page budget into a continuation page.
	var groups []Group
	for i := 0; i < 7; i++ {
		groups = append(groups, Group{
			Label:   fmt.Sprintf("G%d", i),
			Entries: []string{strings.Repeat("y", 1000)},
		})
	}

	l := Layout{Title: "Main", ContinuationTitle: "Main (continued)", Footer: "F"}
	pages := l.Paginate(groups)
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if pages[0].Title != "Main" || pages[1].Title != "Main (continued)" {
		t.Errorf("titles = %q, %q", pages[0].Title, pages[1].Title)
	}

	// Footer rides on the last page only.
	if pages[0].Footer != "" || pages[1].Footer != "F" {
		t.Errorf("footers = %q, %q", pages[0].Footer, pages[1].Footer)
	}

	// Every group must land exactly once, in order.
	var names []string
	for _, p := range pages {
		for _, f := range p.Fields {
			names = append(names, f.Name)
		}
	}
	if len(names) != 7 {
		t.Fatalf("got %d fields total, want 7", len(names))
	}
	for i, name := range names {
		if want := fmt.Sprintf("G%d", i); name != want {
			t.Errorf("field %d = %q, want %q", i, name, want)
		}
	}
}

func TestPaginateOversizedEntry(t *testing.T) {
	// A single entry larger than the field budget is never split.
	huge := strings.Repeat("z", DefaultFieldBudget+500)
	l := Layout{Title: "T"}

	pages := l.Paginate([]Group{{Label: "G", Entries: []string{huge}}})
	if len(pages) != 1 || len(pages[0].Fields) != 1 {
		t.Fatalf("pages = %+v", pages)
	}
	if pages[0].Fields[0].Body != huge {
		t.Error("oversized entry was modified")
	}
}

func TestPaginateCustomBudgets(t *testing.T) {
	l := Layout{Title: "T", FieldBudget: 10, PageBudget: 100}

	pages := l.Paginate([]Group{{Label: "G", Entries: []string{"aaaaa", "bbbbb", "ccccc"}}})
	fields := pages[0].Fields
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	if fields[0].Body != "aaaaabbbbb" || fields[1].Body != "ccccc" {
		t.Errorf("bodies = %q, %q", fields[0].Body, fields[1].Body)
	}
	if fields[1].Name != "G (part 2)" {
		t.Errorf("part name = %q", fields[1].Name)
	}
}
