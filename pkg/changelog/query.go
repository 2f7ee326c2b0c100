package changelog

import (
	"slices"
	"strings"

	"github.com/chronolog-dev/chronolog/pkg/relver"
)

// Latest returns the most recent release, or nil for an empty document.
// Releases are kept newest first, but the document order is not trusted
// here; the version identifiers decide.
func (c *Changelog) Latest() *Release {
	var latest *Release
	for _, rel := range c.Releases {
		if latest == nil || relver.Compare(rel.Version, latest.Version) > 0 {
			latest = rel
		}
	}

	return latest
}

// Find returns the release with the given version identifier, or nil.
// Matching is done on normalized versions, so "v1.0" finds "1.0".
func (c *Changelog) Find(version string) *Release {
	for _, rel := range c.Releases {
		if rel.Version == version || relver.Compare(rel.Version, version) == 0 {
			return rel
		}
	}

	return nil
}

// Since returns all releases with versions strictly newer than the given
// one, newest first.
func (c *Changelog) Since(version string) []*Release {
	var out []*Release
	for _, rel := range c.Releases {
		if relver.Compare(rel.Version, version) > 0 {
			out = append(out, rel)
		}
	}

	sortNewestFirst(out)

	return out
}

// Range returns releases with from < version <= to, newest first. An empty
// from or to leaves that bound open.
func (c *Changelog) Range(from, to string) []*Release {
	var out []*Release
	for _, rel := range c.Releases {
		if from != "" && relver.Compare(rel.Version, from) <= 0 {
			continue
		}
		if to != "" && relver.Compare(rel.Version, to) > 0 {
			continue
		}

		out = append(out, rel)
	}

	sortNewestFirst(out)

	return out
}

// FilterSymbol returns releases containing at least one entry that
// references the given symbol. Matching is suffix-aware: "ModeEnsemble"
// matches a ref target "dynamics.ModeEnsemble".
func (c *Changelog) FilterSymbol(symbol string) []*Release {
	var out []*Release
	for _, rel := range c.Releases {
		if releaseMentions(rel, symbol) {
			out = append(out, rel)
		}
	}

	return out
}

// FilterCategory returns a copy of the document reduced to sections with
// the given category.
func (c *Changelog) FilterCategory(category string) []*Release {
	var out []*Release
	for _, rel := range c.Releases {
		sec := rel.Section(category)
		if sec == nil {
			continue
		}

		out = append(out, &Release{
			Project:  rel.Project,
			Version:  rel.Version,
			RawDate:  rel.RawDate,
			Date:     rel.Date,
			Sections: []*Section{sec},
			Line:     rel.Line,
		})
	}

	return out
}

// Symbols returns every referenced symbol mapped to the versions that
// mention it, with versions in document order.
func (c *Changelog) Symbols() map[string][]string {
	out := map[string][]string{}
	for _, rel := range c.Releases {
		for _, sec := range rel.Sections {
			for _, e := range sec.Entries {
				for _, ref := range e.Refs {
					if vs := out[ref.Target]; len(vs) == 0 || vs[len(vs)-1] != rel.Version {
						out[ref.Target] = append(out[ref.Target], rel.Version)
					}
				}
			}
		}
	}

	return out
}

// ReleaseStats is the per-release summary returned by [Changelog.Stats].
type ReleaseStats struct {
	Categories map[string]int `json:"categories"`
	Version    string         `json:"version"`
	Date       string         `json:"date"`
	Entries    int            `json:"entries"`
	Refs       int            `json:"refs"`
	Issues     int            `json:"issues"`
}

// Stats summarizes entry counts per release and category, in document order.
func (c *Changelog) Stats() []ReleaseStats {
	out := make([]ReleaseStats, 0, len(c.Releases))
	for _, rel := range c.Releases {
		st := ReleaseStats{
			Version:    rel.Version,
			Date:       rel.RawDate,
			Categories: map[string]int{},
		}

		for _, sec := range rel.Sections {
			st.Categories[sec.Category] += len(sec.Entries)
			st.Entries += len(sec.Entries)

			for _, e := range sec.Entries {
				st.Refs += len(e.Refs)
				st.Issues += len(e.Issues)
			}
		}

		out = append(out, st)
	}

	return out
}

func releaseMentions(rel *Release, symbol string) bool {
	for _, sec := range rel.Sections {
		for _, e := range sec.Entries {
			for _, ref := range e.Refs {
				if symbolMatches(ref.Target, symbol) {
					return true
				}
			}
		}
	}

	return false
}

func symbolMatches(target, symbol string) bool {
	return target == symbol || strings.HasSuffix(target, "."+symbol)
}

func sortNewestFirst(rels []*Release) {
	slices.SortStableFunc(rels, func(a, b *Release) int {
		return relver.Compare(b.Version, a.Version)
	})
}
