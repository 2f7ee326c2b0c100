// Package diff compares two release-notes documents: a unified diff of
// their canonical forms plus a release-level summary.
package diff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/chronolog-dev/chronolog/pkg/changelog"
)

// Report is the outcome of comparing document A against document B.
type Report struct {
	Unified string   `json:"unified"`
	OnlyInA []string `json:"onlyInA,omitempty"`
	OnlyInB []string `json:"onlyInB,omitempty"`
	Changed []string `json:"changed,omitempty"`
}

// Equal reports whether the two documents have identical canonical forms.
func (r *Report) Equal() bool {
	return r.Unified == ""
}

// Compare builds a [Report] for two documents.
func Compare(a, b *changelog.Changelog) (*Report, error) {
	aText, err := canonical(a)
	if err != nil {
		return nil, err
	}

	bText, err := canonical(b)
	if err != nil {
		return nil, err
	}

	unified := ""
	if aText != bText {
		unified, err = difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(aText),
			B:        difflib.SplitLines(bText),
			FromFile: sourceName(a, "a"),
			ToFile:   sourceName(b, "b"),
			Context:  3,
		})
		if err != nil {
			return nil, fmt.Errorf("unified diff: %w", err)
		}
	}

	report := &Report{Unified: unified}
	summarize(report, a, b)

	return report, nil
}

// WriteTo writes the report in human-readable form.
func (r *Report) WriteTo(w io.Writer) error {
	if r.Equal() {
		if _, err := fmt.Fprintln(w, "documents are identical"); err != nil {
			return fmt.Errorf("write diff: %w", err)
		}

		return nil
	}

	for _, v := range r.OnlyInA {
		fmt.Fprintf(w, "- release %s only in first document\n", v)
	}

	for _, v := range r.OnlyInB {
		fmt.Fprintf(w, "+ release %s only in second document\n", v)
	}

	for _, v := range r.Changed {
		fmt.Fprintf(w, "~ release %s differs\n", v)
	}

	if _, err := fmt.Fprint(w, "\n", r.Unified); err != nil {
		return fmt.Errorf("write diff: %w", err)
	}

	return nil
}

func canonical(c *changelog.Changelog) (string, error) {
	buf := &bytes.Buffer{}
	if err := changelog.Write(buf, c); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func sourceName(c *changelog.Changelog, fallback string) string {
	if c.Source != "" {
		return c.Source
	}

	return fallback
}

func summarize(report *Report, a, b *changelog.Changelog) {
	bByVersion := map[string]*changelog.Release{}
	for _, rel := range b.Releases {
		bByVersion[rel.Version] = rel
	}

	seen := map[string]bool{}

	for _, rel := range a.Releases {
		seen[rel.Version] = true

		other, ok := bByVersion[rel.Version]
		if !ok {
			report.OnlyInA = append(report.OnlyInA, rel.Version)

			continue
		}

		if !releasesEqual(rel, other) {
			report.Changed = append(report.Changed, rel.Version)
		}
	}

	for _, rel := range b.Releases {
		if !seen[rel.Version] {
			report.OnlyInB = append(report.OnlyInB, rel.Version)
		}
	}
}

func releasesEqual(a, b *changelog.Release) bool {
	aBuf, bBuf := &bytes.Buffer{}, &bytes.Buffer{}

	_ = changelog.Write(aBuf, &changelog.Changelog{Releases: []*changelog.Release{a}})
	_ = changelog.Write(bBuf, &changelog.Changelog{Releases: []*changelog.Release{b}})

	return aBuf.String() == bBuf.String()
}
