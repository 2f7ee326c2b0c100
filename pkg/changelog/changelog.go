package changelog

import (
	"time"

	"github.com/chronolog-dev/chronolog/pkg/relver"
)

// Default categories used by release-notes documents. Additional categories
// can be allowed through lint configuration.
const (
	CategoryNewFeatures = "New Features"
	CategoryBugFixes    = "Bug Fixes and Improvements"
)

// Changelog is a parsed release-notes document. Releases are ordered as they
// appear in the document, newest first.
type Changelog struct {
	Title    string     `json:"title"                jsonschema:"description=Document title"`
	Source   string     `json:"source,omitempty"     jsonschema:"description=Name of the source file"`
	Intro    []string   `json:"intro,omitempty"      jsonschema:"description=Prose paragraphs before the first release"`
	Releases []*Release `json:"releases"             jsonschema:"description=Release records, newest first"`

	// HasContents records whether the source document carried a
	// table-of-contents directive, so the canonical form can keep it.
	HasContents bool `json:"-"`
}

// Release is one published release record. Records are immutable once
// published; new releases are prepended, never edited.
type Release struct {
	Project  string     `json:"project,omitempty" jsonschema:"description=Optional project prefix from the heading"`
	Version  string     `json:"version"           jsonschema:"description=Version identifier as written"`
	RawDate  string     `json:"date"              jsonschema:"description=Release date as written"`
	Date     time.Time  `json:"-"`
	Preamble []string   `json:"preamble,omitempty"`
	Sections []*Section `json:"sections"`
	Line     int        `json:"-"`
}

// Section is one categorized bullet list within a release.
type Section struct {
	Category string   `json:"category"`
	Entries  []*Entry `json:"entries"`
	Line     int      `json:"-"`
}

// Entry is a single bullet. Text is the joined free text with inline markup
// kept verbatim; Refs, Issues, and Contributors are extracted from it.
type Entry struct {
	Text         string   `json:"text"`
	Refs         []Ref    `json:"refs,omitempty"`
	Issues       []int    `json:"issues,omitempty"`
	Contributors []string `json:"contributors,omitempty"`
	Line         int      `json:"-"`
}

// Ref is a symbol cross-reference extracted from entry text, e.g.
// :class:`.ModeEnsemble`.
type Ref struct {
	Kind   string `json:"kind"   jsonschema:"description=Role name: class, func, meth, attr, mod, or obj"`
	Target string `json:"target" jsonschema:"description=Referenced symbol with any leading . or ~ stripped"`
}

// Heading returns the release heading text as it appears in the document.
func (r *Release) Heading() string {
	h := r.Version + " (" + r.RawDate + ")"
	if r.Project != "" {
		h = r.Project + " " + h
	}

	return h
}

// Ver parses the release's version identifier.
func (r *Release) Ver() (*relver.Version, error) {
	return relver.Parse(r.Version)
}

// Section returns the section with the given category, or nil.
func (r *Release) Section(category string) *Section {
	for _, s := range r.Sections {
		if s.Category == category {
			return s
		}
	}

	return nil
}

// EntryCount returns the total number of entries across all sections.
func (r *Release) EntryCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Entries)
	}

	return n
}
