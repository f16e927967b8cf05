package catalog

import (
	"strings"

	"go.uber.org/zap"
)

// DefaultIndent is the indentation of the inserted summary and the
// root_causes line that follows it.
const DefaultIndent = "    "

// Status describes what happened to a single gap.
type Status string

const (
	// StatusPatched means a summary was inserted.
	StatusPatched Status = "patched"
	// StatusUnknownSlug means the owning slug has no entry in the table.
	StatusUnknownSlug Status = "unknown-slug"
	// StatusNoSlug means no canonical_slug precedes the gap.
	StatusNoSlug Status = "no-slug"
)

// Outcome is the result of handling one gap.
type Outcome struct {
	Gap    Gap
	Slug   string
	Status Status
}

// Result is the outcome of patching a document.
type Result struct {
	Content   string
	Found     int
	Patched   int
	Remaining int
	Outcomes  []Outcome
	Changed   bool
}

// Unresolved returns the outcomes that were left unpatched.
func (r Result) Unresolved() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status != StatusPatched {
			out = append(out, o)
		}
	}
	return out
}

// Patcher inserts missing summary fields into catalog documents.
type Patcher struct {
	summaries Summaries
	indent    string
	logger    *zap.Logger
}

// PatcherOption configures a Patcher.
type PatcherOption func(*Patcher)

// WithIndent sets the indentation used for inserted lines.
func WithIndent(indent string) PatcherOption {
	return func(p *Patcher) {
		p.indent = indent
	}
}

// WithLogger sets the logger used for per-gap diagnostics.
func WithLogger(logger *zap.Logger) PatcherOption {
	return func(p *Patcher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPatcher creates a Patcher backed by the given summary table.
func NewPatcher(summaries Summaries, opts ...PatcherOption) *Patcher {
	p := &Patcher{
		summaries: summaries,
		indent:    DefaultIndent,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Patch fills in every gap in doc whose owning slug has a known summary.
// Slugs are resolved against the original document; the output is built in a
// single forward pass.
func (p *Patcher) Patch(doc string) Result {
	gaps := FindGaps(doc)
	res := Result{
		Content:  doc,
		Found:    len(gaps),
		Outcomes: make([]Outcome, 0, len(gaps)),
	}
	if len(gaps) == 0 {
		return res
	}

	records := SegmentRecords(doc)

	var b strings.Builder
	b.Grow(len(doc) + len(gaps)*96)
	last := 0
	for _, gap := range gaps {
		outcome := Outcome{Gap: gap, Status: StatusNoSlug}
		rec, ok := records.Owner(gap.Start)
		if ok {
			outcome.Slug = rec.Slug
			outcome.Status = StatusUnknownSlug
			if summary, found := p.summaries.Lookup(rec.Slug); found {
				b.WriteString(doc[last:gap.Start])
				b.WriteString(p.replacement(gap, summary))
				last = gap.End
				outcome.Status = StatusPatched
				res.Patched++
			}
		}
		p.logger.Debug("gap",
			zap.String("slug", outcome.Slug),
			zap.String("status", string(outcome.Status)),
			zap.Int("offset", gap.Start))
		res.Outcomes = append(res.Outcomes, outcome)
	}

	if res.Patched > 0 {
		b.WriteString(doc[last:])
		res.Content = b.String()
		res.Changed = true
	}
	res.Remaining = len(FindGaps(res.Content))
	return res
}

func (p *Patcher) replacement(gap Gap, summary string) string {
	return gap.Category + "\n" +
		p.indent + "summary: " + quote(summary) + ",\n" +
		p.indent + gap.RootCauses
}

var literalEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// quote renders s as a double-quoted string literal.
func quote(s string) string {
	return `"` + literalEscaper.Replace(s) + `"`
}
