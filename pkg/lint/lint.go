// Package lint checks release-notes documents against the properties the
// format promises: unique version headings, monotonically non-increasing
// dates, resolvable symbol cross-references, and a handful of hygiene
// rules on top.
package lint

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/chronolog-dev/chronolog/pkg/changelog"
)

// Severity of a lint issue.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}

	return "warning"
}

// Issue is one finding, positioned in the source document.
type Issue struct {
	RuleID   string   `json:"rule"`
	Source   string   `json:"source,omitempty"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
	Severity Severity `json:"-"`
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s:%d: %s: %s [%s]", i.Source, i.Line, i.Severity, i.Message, i.RuleID)
}

// Rule checks one property of a document.
type Rule interface {
	ID() string
	Check(c *changelog.Changelog) []Issue
}

// Linter runs a configured set of rules.
type Linter struct {
	rules []Rule
}

// New creates a linter with the given rules.
func New(rules ...Rule) *Linter {
	return &Linter{rules: rules}
}

// Lint runs every rule and returns the findings ordered by line.
func (l *Linter) Lint(c *changelog.Changelog) []Issue {
	var out []Issue
	for _, rule := range l.rules {
		for _, issue := range rule.Check(c) {
			if issue.Source == "" {
				issue.Source = c.Source
			}

			issue.RuleID = rule.ID()
			out = append(out, issue)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Line < out[j].Line
	})

	return out
}

// Err converts findings into a single error, or nil if no issue reaches
// the error severity.
func Err(issues []Issue) error {
	var merr *multierror.Error
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			merr = multierror.Append(merr, issue)
		}
	}

	return merr.ErrorOrNil()
}
