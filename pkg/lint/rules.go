package lint

import (
	"fmt"
	"strings"

	"github.com/chronolog-dev/chronolog/pkg/changelog"
	"github.com/chronolog-dev/chronolog/pkg/relver"
	"github.com/chronolog-dev/chronolog/pkg/symbols"
)

// Rule IDs.
const (
	RuleUniqueVersion  = "unique-version"
	RuleDateOrder      = "date-order"
	RuleVersionOrder   = "version-order"
	RuleDateFormat     = "date-format"
	RuleRefResolves    = "ref-resolves"
	RuleKnownCategory  = "known-category"
	RuleEmptySection   = "empty-section"
	RuleDuplicateEntry = "duplicate-entry"
)

// DefaultCategories is the vocabulary accepted by [KnownCategory] when no
// override is configured. The empty category covers uncategorized bullet
// lists, which old documents use freely.
var DefaultCategories = []string{
	"",
	changelog.CategoryNewFeatures,
	changelog.CategoryBugFixes,
}

// UniqueVersion flags version headings that appear more than once.
type UniqueVersion struct{}

func (UniqueVersion) ID() string { return RuleUniqueVersion }

func (UniqueVersion) Check(c *changelog.Changelog) []Issue {
	var out []Issue

	seen := map[string]int{} // normalized version -> first heading line
	for _, rel := range c.Releases {
		key := rel.Version
		if ver, err := rel.Ver(); err == nil {
			key = ver.String()
		}

		if first, ok := seen[key]; ok {
			out = append(out, Issue{
				Line:     rel.Line,
				Severity: SeverityError,
				Message:  fmt.Sprintf("version %s already released at line %d", rel.Version, first),
			})

			continue
		}

		seen[key] = rel.Line
	}

	return out
}

// DateOrder flags release dates that increase down the document. Newest
// entries sit at the top, so dates must be monotonically non-increasing.
type DateOrder struct{}

func (DateOrder) ID() string { return RuleDateOrder }

func (DateOrder) Check(c *changelog.Changelog) []Issue {
	var out []Issue

	var prev *changelog.Release
	for _, rel := range c.Releases {
		if rel.Date.IsZero() {
			continue // date-format reports these
		}

		if prev != nil && rel.Date.After(prev.Date) {
			out = append(out, Issue{
				Line:     rel.Line,
				Severity: SeverityError,
				Message: fmt.Sprintf("release %s (%s) is dated after %s (%s) above it",
					rel.Version, rel.RawDate, prev.Version, prev.RawDate),
			})
		}

		prev = rel
	}

	return out
}

// VersionOrder flags version identifiers out of descending order.
type VersionOrder struct{}

func (VersionOrder) ID() string { return RuleVersionOrder }

func (VersionOrder) Check(c *changelog.Changelog) []Issue {
	var out []Issue

	var prev *changelog.Release
	for _, rel := range c.Releases {
		if _, err := rel.Ver(); err != nil {
			out = append(out, Issue{
				Line:     rel.Line,
				Severity: SeverityError,
				Message:  fmt.Sprintf("unparsable version %q", rel.Version),
			})

			continue
		}

		if prev != nil && relver.Compare(rel.Version, prev.Version) >= 0 {
			out = append(out, Issue{
				Line:     rel.Line,
				Severity: SeverityError,
				Message: fmt.Sprintf("version %s does not precede %s above it",
					rel.Version, prev.Version),
			})
		}

		prev = rel
	}

	return out
}

// DateFormat flags unparsable dates as errors and accepted non-canonical
// spellings as warnings.
type DateFormat struct{}

func (DateFormat) ID() string { return RuleDateFormat }

func (DateFormat) Check(c *changelog.Changelog) []Issue {
	var out []Issue

	for _, rel := range c.Releases {
		_, layout, err := changelog.ParseDate(rel.RawDate)
		if err != nil {
			out = append(out, Issue{
				Line:     rel.Line,
				Severity: SeverityError,
				Message:  fmt.Sprintf("unrecognized date %q", rel.RawDate),
			})

			continue
		}

		if layout != changelog.CanonicalDateFormat {
			out = append(out, Issue{
				Line:     rel.Line,
				Severity: SeverityWarning,
				Message: fmt.Sprintf("date %q is not in canonical %q form",
					rel.RawDate, changelog.CanonicalDateFormat),
			})
		}
	}

	return out
}

// RefResolves checks that symbol cross-references resolve against a symbol
// table. Findings are warnings unless the table was explicitly supplied,
// since implicit tables are usually partial.
type RefResolves struct {
	Table  *symbols.Table
	Strict bool
}

func (RefResolves) ID() string { return RuleRefResolves }

func (r RefResolves) Check(c *changelog.Changelog) []Issue {
	table := r.Table
	if table == nil {
		// With no table at all, every symbol the document has ever
		// mentioned counts as known; only never-seen names are flagged.
		table = selfTable(c)
	}

	severity := SeverityWarning
	if r.Strict {
		severity = SeverityError
	}

	var out []Issue

	for _, rel := range c.Releases {
		for _, sec := range rel.Sections {
			for _, e := range sec.Entries {
				for _, ref := range e.Refs {
					if table.Resolve(ref.Target) {
						continue
					}

					out = append(out, Issue{
						Line:     e.Line,
						Severity: severity,
						Message:  fmt.Sprintf("unresolved reference :%s:`%s`", ref.Kind, ref.Target),
					})
				}
			}
		}
	}

	return out
}

func selfTable(c *changelog.Changelog) *symbols.Table {
	t := symbols.New()
	for target := range c.Symbols() {
		t.Add(target)
	}

	return t
}

// KnownCategory flags section categories outside the configured vocabulary.
type KnownCategory struct {
	Allowed []string
}

func (KnownCategory) ID() string { return RuleKnownCategory }

func (r KnownCategory) Check(c *changelog.Changelog) []Issue {
	allowed := r.Allowed
	if len(allowed) == 0 {
		allowed = DefaultCategories
	}

	var out []Issue

	for _, rel := range c.Releases {
		for _, sec := range rel.Sections {
			if contains(allowed, sec.Category) {
				continue
			}

			out = append(out, Issue{
				Line:     sec.Line,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("unknown category %q", sec.Category),
			})
		}
	}

	return out
}

// EmptySection flags category labels with no entries under them.
type EmptySection struct{}

func (EmptySection) ID() string { return RuleEmptySection }

func (EmptySection) Check(c *changelog.Changelog) []Issue {
	var out []Issue

	for _, rel := range c.Releases {
		for _, sec := range rel.Sections {
			if len(sec.Entries) > 0 {
				continue
			}

			out = append(out, Issue{
				Line:     sec.Line,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("category %q has no entries", sec.Category),
			})
		}
	}

	return out
}

// DuplicateEntry flags identical bullet text repeated within one release.
type DuplicateEntry struct{}

func (DuplicateEntry) ID() string { return RuleDuplicateEntry }

func (DuplicateEntry) Check(c *changelog.Changelog) []Issue {
	var out []Issue

	for _, rel := range c.Releases {
		seen := map[string]int{}

		for _, sec := range rel.Sections {
			for _, e := range sec.Entries {
				key := strings.ToLower(strings.TrimSpace(e.Text))
				if key == "" {
					continue
				}

				if first, ok := seen[key]; ok {
					out = append(out, Issue{
						Line:     e.Line,
						Severity: SeverityWarning,
						Message:  fmt.Sprintf("duplicate entry, first at line %d", first),
					})

					continue
				}

				seen[key] = e.Line
			}
		}
	}

	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}

	return false
}
