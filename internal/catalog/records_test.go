package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindGaps(t *testing.T) {
	doc := "category: \"auth\",\n  root_causes: [\n" +
		"category: \"storage\",   \n\n    root_causes: [\n" +
		"Category: \"net\",\nroot_causes: [\n" +
		"category: \"x\",\nsummary: \"s\",\nroot_causes: [\n"

	gaps := FindGaps(doc)
	if len(gaps) != 2 {
		t.Fatalf("FindGaps() returned %d gaps, want 2", len(gaps))
	}

	if gaps[0].Start != 0 {
		t.Errorf("gaps[0].Start = %d, want 0", gaps[0].Start)
	}
	if got := doc[gaps[0].Start:gaps[0].End]; got != "category: \"auth\",\n  root_causes: [" {
		t.Errorf("gaps[0] span = %q", got)
	}
	if gaps[1].Category != "category: \"storage\"," {
		t.Errorf("gaps[1].Category = %q", gaps[1].Category)
	}
	if gaps[1].RootCauses != "root_causes: [" {
		t.Errorf("gaps[1].RootCauses = %q", gaps[1].RootCauses)
	}
	if gaps[1].Start <= gaps[0].End {
		t.Errorf("gaps overlap: %+v", gaps)
	}
}

func TestFindGaps_UnicodeWhitespace(t *testing.T) {
	tests := []struct {
		name string
		sep  string
	}{
		{"no-break space", "\u00a0\n\u00a0\u00a0"},
		{"vertical tab", "\v\n\v"},
		{"ideographic space", "\n\u3000"},
		{"line separator", "\u2028\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "canonical_slug: \"etcdfull\",\ncategory: \"storage\"," + tt.sep + "root_causes: ["
			gaps := FindGaps(doc)
			if len(gaps) != 1 {
				t.Fatalf("FindGaps() returned %d gaps, want 1", len(gaps))
			}
			if gaps[0].End != len(doc) {
				t.Errorf("gaps[0].End = %d, want %d", gaps[0].End, len(doc))
			}

			res := NewPatcher(DefaultSummaries()).Patch(doc)
			if res.Remaining != 0 {
				t.Errorf("Remaining = %d, want 0", res.Remaining)
			}
		})
	}

	if got := FindGaps("category: \"storage\",\u00a0root_causes: ["); len(got) != 0 {
		t.Errorf("FindGaps() without a newline = %d gaps, want 0", len(got))
	}
}

func TestSegmentRecords(t *testing.T) {
	doc := "header\ncanonical_slug: \"a\",\nbody a\ncanonical_slug: \"b\",\nbody b\n"

	records := SegmentRecords(doc)

	if diff := cmp.Diff([]string{"a", "b"}, records.Slugs()); diff != "" {
		t.Fatalf("Slugs() mismatch (-want +got):\n%s", diff)
	}
	if got := records[0].Body(doc); got != "canonical_slug: \"a\",\nbody a\n" {
		t.Errorf("records[0].Body() = %q", got)
	}
	if records[1].End != len(doc) {
		t.Errorf("records[1].End = %d, want %d", records[1].End, len(doc))
	}
}

func TestRecordsOwner(t *testing.T) {
	doc := "xx canonical_slug: \"a\" yy canonical_slug: \"b\" zz"
	records := SegmentRecords(doc)

	tests := []struct {
		name   string
		offset int
		want   string
		ok     bool
	}{
		{"before any slug", 0, "", false},
		{"inside first slug token", records[0].Start + 3, "", false},
		{"right after first slug", records[0].SlugEnd, "a", true},
		{"between slugs", records[1].Start, "a", true},
		{"after last slug", len(doc), "b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := records.Owner(tt.offset)
			if ok != tt.ok {
				t.Fatalf("Owner(%d) ok = %v, want %v", tt.offset, ok, tt.ok)
			}
			if rec.Slug != tt.want {
				t.Errorf("Owner(%d) = %q, want %q", tt.offset, rec.Slug, tt.want)
			}
		})
	}
}
