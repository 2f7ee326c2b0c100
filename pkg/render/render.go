// Package render turns parsed release-notes documents into output formats:
// canonical RST, Markdown, HTML, JSON, and YAML.
package render

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/chronolog-dev/chronolog/pkg/changelog"
)

var ErrUnknownFormat = errors.New("unknown format")

// Renderer writes one output format.
type Renderer interface {
	Render(w io.Writer, c *changelog.Changelog) error
}

// Formats returns the supported format names.
func Formats() []string {
	return []string{"rst", "markdown", "html", "json", "yaml"}
}

// Get returns the renderer for a format name.
func Get(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "rst", "":
		return RST{}, nil
	case "markdown", "md":
		return Markdown{}, nil
	case "html":
		return NewHTML(), nil
	case "json":
		return JSON{}, nil
	case "yaml", "yml":
		return YAML{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// RST emits the canonical document form.
type RST struct{}

func (RST) Render(w io.Writer, c *changelog.Changelog) error {
	return changelog.Write(w, c)
}

// Inline RST constructs inside entry text: roles and literals.
var (
	inlineRoleRe   = regexp.MustCompile("(?::[a-zA-Z]+:)?`([^`]+)`(?:__?)?|``([^`]+)``")
	issueMarkupRe  = regexp.MustCompile(":issue:`([0-9]+)`")
	strongMarkupRe = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	roleArgStripRe = regexp.MustCompile(`^[.~]+`)
)

// inlineCode rewrites RST inline markup into a plain code form, calling
// code for each literal or role target.
func inlineCode(text string, code func(string) string) string {
	text = issueMarkupRe.ReplaceAllString(text, "#$1")

	text = inlineRoleRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := inlineRoleRe.FindStringSubmatch(m)

		target := sub[1]
		if target == "" {
			target = sub[2]
		}

		target = roleArgStripRe.ReplaceAllString(strings.TrimSpace(target), "")

		return code(target)
	})

	return text
}
