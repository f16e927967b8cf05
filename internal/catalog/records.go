// Package catalog patches and validates the static Kubernetes error catalog.
package catalog

import (
	"regexp"
	"sort"
)

// space is \s widened to the rest of Unicode whitespace, \v and the
// \x1c-\x1f separators included.
const space = `[\s\v\x{1c}-\x{1f}\x{85}\p{Zs}\x{2028}\x{2029}]`

var (
	gapPattern  = regexp.MustCompile(`(category: "[^"]+",)` + space + `*\n` + space + `*(root_causes: \[)`)
	slugPattern = regexp.MustCompile(`canonical_slug: "([^"]+)"`)
)

// Gap is an error object whose category line is directly followed by its
// root_causes list, with no summary in between.
type Gap struct {
	Start      int
	End        int
	Category   string
	RootCauses string
}

// FindGaps returns every gap in doc, left to right, non-overlapping.
func FindGaps(doc string) []Gap {
	matches := gapPattern.FindAllStringSubmatchIndex(doc, -1)
	gaps := make([]Gap, 0, len(matches))
	for _, m := range matches {
		gaps = append(gaps, Gap{
			Start:      m[0],
			End:        m[1],
			Category:   doc[m[2]:m[3]],
			RootCauses: doc[m[4]:m[5]],
		})
	}
	return gaps
}

// Record is the text between one canonical_slug token and the next. Gaps are
// attributed to the record they fall in.
type Record struct {
	Slug    string
	Start   int
	SlugEnd int
	End     int
}

// Body returns the record's text within doc.
func (r Record) Body(doc string) string {
	return doc[r.Start:r.End]
}

// Records is the ordered list of records found in a document.
type Records []Record

// SegmentRecords splits doc into records at every canonical_slug token.
func SegmentRecords(doc string) Records {
	matches := slugPattern.FindAllStringSubmatchIndex(doc, -1)
	records := make(Records, 0, len(matches))
	for i, m := range matches {
		end := len(doc)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		records = append(records, Record{
			Slug:    doc[m[2]:m[3]],
			Start:   m[0],
			SlugEnd: m[1],
			End:     end,
		})
	}
	return records
}

// Owner returns the record whose slug token ends closest before offset.
func (rs Records) Owner(offset int) (Record, bool) {
	// first record whose slug token does not fit before offset
	i := sort.Search(len(rs), func(i int) bool { return rs[i].SlugEnd > offset })
	if i == 0 {
		return Record{}, false
	}
	return rs[i-1], true
}

// Slugs returns the slugs in document order, duplicates included.
func (rs Records) Slugs() []string {
	slugs := make([]string, len(rs))
	for i, r := range rs {
		slugs[i] = r.Slug
	}
	return slugs
}
