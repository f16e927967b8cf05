package catalog

import (
	"regexp"
	"sort"
)

// RequiredFields are the fields every catalog record must carry.
var RequiredFields = []string{"canonical_slug", "title", "summary", "root_causes", "fix_steps", "examples"}

var categoryPattern = regexp.MustCompile(`category: "([^"]+)"`)

// MissingFields names the required fields absent from one record. Slug is
// empty when the record has no canonical_slug; Line locates it either way.
type MissingFields struct {
	Slug   string
	Line   int
	Fields []string
}

// Report summarizes the health of a catalog document.
type Report struct {
	Total         int
	UniqueSlugs   int
	Categories    map[string]int
	MissingFields []MissingFields
	// Duplicates maps a slug to the number of records carrying it, for slugs
	// seen more than once.
	Duplicates map[string]int
}

// OK reports whether the catalog has no missing fields and no duplicates.
func (r Report) OK() bool {
	return len(r.MissingFields) == 0 && len(r.Duplicates) == 0
}

// SortedCategories returns the category names in lexical order.
func (r Report) SortedCategories() []string {
	names := make([]string, 0, len(r.Categories))
	for name := range r.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate counts the catalog's array objects by category and flags missing
// fields and duplicate slugs. Every object counts, with or without a slug.
func Validate(doc string) Report {
	objects := SegmentObjects(doc)
	report := Report{
		Total:      len(objects),
		Categories: make(map[string]int),
		Duplicates: make(map[string]int),
	}

	seen := make(map[string]int, len(objects))
	for _, obj := range objects {
		body := obj.Body(doc)

		var slug string
		if m := slugPattern.FindStringSubmatch(body); m != nil && obj.Has("canonical_slug") {
			slug = m[1]
			seen[slug]++
		}

		if m := categoryPattern.FindStringSubmatch(body); m != nil && obj.Has("category") {
			report.Categories[m[1]]++
		}

		var missing []string
		for _, field := range RequiredFields {
			if !obj.Has(field) {
				missing = append(missing, field)
			}
		}
		if slug == "" && obj.Has("canonical_slug") {
			// declared but not a non-empty string literal
			missing = append([]string{"canonical_slug"}, missing...)
		}
		if len(missing) > 0 {
			report.MissingFields = append(report.MissingFields, MissingFields{
				Slug:   slug,
				Line:   obj.Line,
				Fields: missing,
			})
		}
	}

	report.UniqueSlugs = len(seen)
	for slug, n := range seen {
		if n > 1 {
			report.Duplicates[slug] = n
		}
	}
	return report
}
