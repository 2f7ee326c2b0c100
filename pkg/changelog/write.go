package changelog

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// wrapWidth is the column limit for canonical output.
const wrapWidth = 79

// CanonicalHeading returns the release heading in canonical form, with the
// date normalized when it parsed.
func (r *Release) CanonicalHeading() string {
	date := r.RawDate
	if !r.Date.IsZero() {
		date = r.Date.Format(CanonicalDateFormat)
	}

	h := r.Version + " (" + date + ")"
	if r.Project != "" {
		h = r.Project + " " + h
	}

	return h
}

// Write emits the canonical document form: normalized date spellings,
// underlines sized to their heading, entries wrapped at a fixed width.
// Write is idempotent across a parse round trip.
func Write(w io.Writer, c *Changelog) error {
	bw := bufio.NewWriter(w)

	if c.HasContents {
		fmt.Fprint(bw, ".. contents::\n   :local:\n\n")
	}

	if c.Title != "" {
		fmt.Fprintf(bw, "%s\n%s\n\n", c.Title, strings.Repeat("=", len(c.Title)))
	}

	for _, para := range c.Intro {
		writeParagraph(bw, para, "", "")
		fmt.Fprintln(bw)
	}

	for i, rel := range c.Releases {
		if i > 0 {
			fmt.Fprintln(bw)
		}

		heading := rel.CanonicalHeading()
		fmt.Fprintf(bw, "%s\n%s\n\n", heading, strings.Repeat("-", len(heading)))

		for _, para := range rel.Preamble {
			writeParagraph(bw, para, "", "")
			fmt.Fprintln(bw)
		}

		for _, sec := range rel.Sections {
			if sec.Category != "" {
				fmt.Fprintf(bw, "**%s**:\n\n", sec.Category)
			}

			for _, e := range sec.Entries {
				writeParagraph(bw, e.Text, "* ", "  ")
			}

			fmt.Fprintln(bw)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write changelog: %w", err)
	}

	return nil
}

// writeParagraph greedily wraps text at [wrapWidth], prefixing the first
// line with first and continuation lines with cont.
func writeParagraph(w io.Writer, text, first, cont string) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return
	}

	line := first + words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > wrapWidth {
			fmt.Fprintln(w, line)
			line = cont + word

			continue
		}

		line += " " + word
	}

	fmt.Fprintln(w, line)
}
