package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/chronolog-dev/chronolog/pkg/changelog"
)

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 50rem; margin: 2rem auto; padding: 0 1rem; }
h2 { border-bottom: 1px solid #ddd; padding-bottom: .3rem; }
code { background: #f4f4f4; padding: .1rem .25rem; border-radius: 3px; }
{{.Stylesheet}}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- range .Intro}}
<p>{{entry .}}</p>
{{- end}}
{{- if .HasContents}}
<ul class="contents">
{{- range .Releases}}
<li><a href="#{{anchor .CanonicalHeading}}">{{.CanonicalHeading}}</a></li>
{{- end}}
</ul>
{{- end}}
{{- range .Releases}}
<h2 id="{{anchor .CanonicalHeading}}">{{.CanonicalHeading}}</h2>
{{- range .Preamble}}
<p>{{entry .}}</p>
{{- end}}
{{- range .Sections}}
{{- if .Category}}
<h3>{{category .Category}}</h3>
{{- end}}
<ul>
{{- range .Entries}}
<li>{{entry .Text}}</li>
{{- end}}
</ul>
{{- end}}
{{- end}}
</body>
</html>
`

// HTML renders the document as a standalone page with syntax-highlighted
// symbol references.
type HTML struct {
	tmpl  *template.Template
	caser cases.Caser
}

// NewHTML creates the HTML renderer.
func NewHTML() *HTML {
	h := &HTML{
		caser: cases.Title(language.English),
	}

	h.tmpl = template.Must(template.New("changelog").Funcs(template.FuncMap{
		"anchor":   anchorSlug,
		"category": h.category,
		"entry":    h.entry,
	}).Parse(htmlPage))

	return h
}

type htmlData struct {
	*changelog.Changelog
	Stylesheet template.CSS
}

func (h *HTML) Render(w io.Writer, c *changelog.Changelog) error {
	css, err := chromaStylesheet()
	if err != nil {
		return err
	}

	data := htmlData{Changelog: c, Stylesheet: template.CSS(css)} //nolint:gosec // Generated by chroma.

	if err := h.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	return nil
}

func (h *HTML) category(s string) string {
	return h.caser.String(s)
}

var anchorStripRe = regexp.MustCompile(`[^A-Za-z0-9 .-]`)

// anchorSlug derives a stable fragment identifier from a heading.
func anchorSlug(heading string) string {
	return strcase.ToKebab(anchorStripRe.ReplaceAllString(heading, ""))
}

// entry rewrites one text fragment into HTML: plain spans escaped, inline
// literals and role targets highlighted through chroma.
func (h *HTML) entry(text string) template.HTML {
	text = issueMarkupRe.ReplaceAllString(text, "#$1")

	var sb strings.Builder

	last := 0
	for _, idx := range inlineRoleRe.FindAllStringSubmatchIndex(text, -1) {
		sb.WriteString(h.plain(text[last:idx[0]]))

		target := ""
		if idx[2] >= 0 {
			target = text[idx[2]:idx[3]]
		} else if idx[4] >= 0 {
			target = text[idx[4]:idx[5]]
		}

		target = roleArgStripRe.ReplaceAllString(strings.TrimSpace(target), "")
		sb.WriteString(h.highlight(target))
		last = idx[1]
	}

	sb.WriteString(h.plain(text[last:]))

	return template.HTML(sb.String()) //nolint:gosec // Escaped above.
}

func (h *HTML) plain(text string) string {
	out := template.HTMLEscapeString(text)

	return strongMarkupRe.ReplaceAllString(out, "<strong>$1</strong>")
}

// highlight renders one inline code span through chroma, falling back to a
// plain code tag when tokenization fails.
func (h *HTML) highlight(source string) string {
	lexer := lexers.Get("python")
	if lexer == nil {
		lexer = lexers.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "<code>" + template.HTMLEscapeString(source) + "</code>"
	}

	var buf bytes.Buffer

	formatter := chromahtml.New(chromahtml.WithClasses(true), chromahtml.InlineCode(true))
	if err := formatter.Format(&buf, styles.Get("friendly"), iterator); err != nil {
		return "<code>" + template.HTMLEscapeString(source) + "</code>"
	}

	return buf.String()
}

// Stylesheet returns the chroma class definitions for the page style.
// Exposed on the template data through a wrapper type.
func chromaStylesheet() (string, error) {
	var buf bytes.Buffer

	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get("friendly")); err != nil {
		return "", fmt.Errorf("write chroma css: %w", err)
	}

	return buf.String(), nil
}
