package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chronolog-dev/chronolog/pkg/changelog"
)

// Markdown renders the document as GitHub-flavored Markdown.
type Markdown struct{}

func (Markdown) Render(w io.Writer, c *changelog.Changelog) error {
	bw := bufio.NewWriter(w)

	if c.Title != "" {
		fmt.Fprintf(bw, "# %s\n\n", c.Title)
	}

	for _, para := range c.Intro {
		fmt.Fprintf(bw, "%s\n\n", mdInline(para))
	}

	for _, rel := range c.Releases {
		fmt.Fprintf(bw, "## %s\n\n", rel.CanonicalHeading())

		for _, para := range rel.Preamble {
			fmt.Fprintf(bw, "%s\n\n", mdInline(para))
		}

		for _, sec := range rel.Sections {
			if sec.Category != "" {
				fmt.Fprintf(bw, "### %s\n\n", sec.Category)
			}

			for _, e := range sec.Entries {
				fmt.Fprintf(bw, "- %s\n", mdInline(e.Text))
			}

			fmt.Fprintln(bw)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	return nil
}

// mdInline rewrites RST inline markup into Markdown: roles and literals
// become code spans, strong stays strong.
func mdInline(text string) string {
	text = inlineCode(text, func(target string) string {
		return "`" + target + "`"
	})

	return strongMarkupRe.ReplaceAllString(text, "**$1**")
}
