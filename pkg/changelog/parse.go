package changelog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseError is a positioned error from [Parse].
type ParseError struct {
	Name string
	Msg  string
	Line int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Name, e.Line, e.Msg)
}

var (
	// A section adornment line, e.g. "------" or "======".
	adornmentRe = regexp.MustCompile(
		"^(={2,}|-{2,}|~{2,}|\\^{2,}|\"{2,}|'{2,}|`{2,}|#{2,}|\\+{2,}|\\.{2,})\\s*$")

	// A release heading, e.g. "ProDy 1.10.9 (June 15, 2018)".
	headingRe = regexp.MustCompile(
		`^(?:(?P<project>[A-Za-z][A-Za-z0-9_.-]*(?:\s+[A-Za-z][A-Za-z0-9_.-]*)*)\s+)?` +
			`(?P<version>v?[0-9][0-9A-Za-z._-]*)\s+` +
			`\((?P<date>[^)]+)\)\s*$`)

	// A category label, e.g. "**New Features**:".
	categoryRe = regexp.MustCompile(`^\*\*(?P<name>[^*]+)\*\*:?\s*$`)

	// A bullet entry opener.
	bulletRe = regexp.MustCompile(`^(?P<indent>\s*)(?P<marker>[*-])\s+(?P<text>\S.*)$`)

	roleRe  = regexp.MustCompile("(?::(?P<kind>[a-zA-Z]+):)?`(?P<target>[^`]+)`")
	issueRe = regexp.MustCompile(`#(?P<num>[0-9]+)\b`)

	contributorRe = regexp.MustCompile(
		`(?:[Tt]hanks to|[Cc]ontributed by|[Rr]eported by)\s+` +
			`(?P<name>[A-Z][A-Za-z'.-]*(?:\s+[A-Z][A-Za-z'.-]*)*)`)
)

// Symbol role names that produce a [Ref].
var refKinds = map[string]bool{
	"class": true,
	"func":  true,
	"meth":  true,
	"attr":  true,
	"mod":   true,
	"obj":   true,
	"data":  true,
	"exc":   true,
}

var dateFormats = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"2006-01-02",
	"2 January 2006",
}

// ParseDate parses a release date as written in a heading. The returned
// format is the layout that matched, so callers can tell canonical dates
// from accepted variants.
func ParseDate(raw string) (time.Time, string, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, layout, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unrecognized date %q", raw)
}

// CanonicalDateFormat is the layout used by the canonical document form.
const CanonicalDateFormat = "January 2, 2006"

type parser struct {
	name    string
	lines   []string
	out     *Changelog
	release *Release
	section *Section
	pos     int
}

// Parse reads a release-notes document. The parser is permissive about
// content (odd dates, unknown categories, unresolved references are lint
// concerns, not parse failures) and strict about structure.
func Parse(r io.Reader, name string) (*Changelog, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), " \t\r"))
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	p := &parser{
		name:  name,
		lines: lines,
		out:   &Changelog{Source: name},
	}

	if err := p.run(); err != nil {
		return nil, err
	}

	return p.out, nil
}

func (p *parser) errorf(line int, format string, args ...any) error {
	return &ParseError{Name: p.name, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) line(i int) string {
	if i < 0 || i >= len(p.lines) {
		return ""
	}

	return p.lines[i]
}

func (p *parser) run() error {
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]

		switch {
		case strings.TrimSpace(line) == "":
			p.pos++

		case strings.HasPrefix(line, ".."):
			p.directive()

		case p.heading():
			// consumed by heading()

		case categoryRe.MatchString(line):
			if p.release == nil {
				return p.errorf(p.pos+1, "category label before any release heading")
			}

			name := categoryRe.FindStringSubmatch(line)[1]
			p.section = &Section{Category: strings.TrimSpace(name), Line: p.pos + 1}
			p.release.Sections = append(p.release.Sections, p.section)
			p.pos++

		case bulletRe.MatchString(line):
			if p.release == nil {
				return p.errorf(p.pos+1, "bullet entry before any release heading")
			}

			p.bullet()

		case adornmentRe.MatchString(line):
			return p.errorf(p.pos+1, "adornment line without heading text")

		default:
			p.prose()
		}
	}

	if p.out.Title == "" && len(p.out.Releases) == 0 {
		return p.errorf(1, "document has no title or release headings")
	}

	return nil
}

// directive consumes an explicit-markup block: the ".." line and any
// following indented lines. Only the contents directive is recorded.
func (p *parser) directive() {
	if strings.HasPrefix(p.lines[p.pos], ".. contents::") {
		p.out.HasContents = true
	}

	p.pos++
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			p.pos++

			continue
		}

		break
	}
}

// heading tries to consume a section heading (text plus adornment line,
// optionally overlined). It reports whether one was consumed.
func (p *parser) heading() bool {
	text := p.lines[p.pos]
	textAt := p.pos

	// Overlined heading: adornment, text, adornment.
	if adornmentRe.MatchString(text) &&
		strings.TrimSpace(p.line(p.pos+1)) != "" &&
		adornmentRe.MatchString(p.line(p.pos+2)) {
		textAt = p.pos + 1
		text = p.line(textAt)
		p.pos += 3

		p.applyHeading(text, textAt+1)

		return true
	}

	if !adornmentRe.MatchString(p.line(p.pos + 1)) {
		return false
	}

	// A bullet line followed by an adornment is still a bullet.
	if bulletRe.MatchString(text) || categoryRe.MatchString(text) {
		return false
	}

	p.pos += 2
	p.applyHeading(text, textAt+1)

	return true
}

func (p *parser) applyHeading(text string, lineno int) {
	text = strings.TrimSpace(text)

	if m := headingRe.FindStringSubmatch(text); m != nil {
		project := strings.TrimSpace(m[headingRe.SubexpIndex("project")])
		version := m[headingRe.SubexpIndex("version")]
		rawDate := strings.TrimSpace(m[headingRe.SubexpIndex("date")])

		rel := &Release{
			Project: project,
			Version: strings.TrimPrefix(version, "v"),
			RawDate: rawDate,
			Line:    lineno,
		}
		if t, _, err := ParseDate(rawDate); err == nil {
			rel.Date = t
		}

		p.out.Releases = append(p.out.Releases, rel)
		p.release = rel
		p.section = nil

		return
	}

	if p.out.Title == "" && p.release == nil {
		p.out.Title = text

		return
	}

	// A heading that is neither the title nor a release record. Keep it as
	// release preamble so nothing is silently dropped.
	if p.release != nil {
		p.release.Preamble = append(p.release.Preamble, text)
	} else {
		p.out.Intro = append(p.out.Intro, text)
	}
}

// bullet consumes one bullet entry with its continuation lines. A
// continuation line is any following line indented past the bullet marker;
// a blank line ends the entry.
func (p *parser) bullet() {
	m := bulletRe.FindStringSubmatch(p.lines[p.pos])
	indent := len(m[bulletRe.SubexpIndex("indent")])
	parts := []string{m[bulletRe.SubexpIndex("text")]}
	lineno := p.pos + 1
	p.pos++

	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if strings.TrimSpace(line) == "" {
			break
		}

		cont := len(line) - len(strings.TrimLeft(line, " \t"))
		if cont <= indent {
			break
		}

		parts = append(parts, strings.TrimSpace(line))
		p.pos++
	}

	if p.section == nil {
		// Entries may appear before any category label.
		p.section = &Section{Line: lineno}
		p.release.Sections = append(p.release.Sections, p.section)
	}

	text := strings.Join(parts, " ")
	entry := &Entry{Text: text, Line: lineno}
	extractInline(entry)
	p.section.Entries = append(p.section.Entries, entry)
}

// prose consumes one flush paragraph and attaches it to the innermost open
// scope: release preamble, or the document intro before any release.
func (p *parser) prose() {
	var parts []string
	for p.pos < len(p.lines) && strings.TrimSpace(p.lines[p.pos]) != "" {
		line := p.lines[p.pos]
		if bulletRe.MatchString(line) || categoryRe.MatchString(line) ||
			adornmentRe.MatchString(p.line(p.pos+1)) || strings.HasPrefix(line, "..") {
			break
		}

		parts = append(parts, strings.TrimSpace(line))
		p.pos++
	}

	if len(parts) == 0 { // next line starts a heading
		return
	}

	paragraph := strings.Join(parts, " ")
	if p.release != nil {
		p.release.Preamble = append(p.release.Preamble, paragraph)
	} else {
		p.out.Intro = append(p.out.Intro, paragraph)
	}
}

// extractInline pulls symbol references, issue numbers, and contributor
// credits out of entry text. The text itself is left verbatim.
func extractInline(e *Entry) {
	for _, m := range roleRe.FindAllStringSubmatch(e.Text, -1) {
		kind := m[roleRe.SubexpIndex("kind")]
		target := m[roleRe.SubexpIndex("target")]

		switch {
		case refKinds[kind]:
			e.Refs = append(e.Refs, Ref{Kind: kind, Target: cleanTarget(target)})

		case kind == "issue":
			if n, err := strconv.Atoi(strings.TrimSpace(target)); err == nil {
				e.Issues = append(e.Issues, n)
			}
		}
	}

	for _, m := range issueRe.FindAllStringSubmatch(e.Text, -1) {
		if n, err := strconv.Atoi(m[issueRe.SubexpIndex("num")]); err == nil {
			e.Issues = append(e.Issues, n)
		}
	}

	for _, m := range contributorRe.FindAllStringSubmatch(e.Text, -1) {
		e.Contributors = append(e.Contributors, m[contributorRe.SubexpIndex("name")])
	}
}

func cleanTarget(target string) string {
	target = strings.TrimSpace(target)
	target = strings.TrimPrefix(target, "~")
	target = strings.TrimPrefix(target, ".")
	target = strings.TrimSuffix(target, "()")

	return target
}
