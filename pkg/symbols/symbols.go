// Package symbols maintains the table of known library symbols that
// changelog cross-references are resolved against.
package symbols

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table is a set of known symbol names. Names are matched on their final
// component, so a table entry "dynamics.ModeEnsemble" resolves references
// to both "dynamics.ModeEnsemble" and "ModeEnsemble". A trailing ".*"
// makes an entry a prefix wildcard.
type Table struct {
	exact    map[string]bool
	short    map[string]bool
	prefixes []string
}

// New creates an empty table.
func New() *Table {
	return &Table{
		exact: map[string]bool{},
		short: map[string]bool{},
	}
}

// Add inserts one symbol name or ".*" wildcard.
func (t *Table) Add(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	if rest, ok := strings.CutSuffix(name, ".*"); ok {
		t.prefixes = append(t.prefixes, rest+".")

		return
	}

	t.exact[name] = true
	if i := strings.LastIndex(name, "."); i >= 0 {
		t.short[name[i+1:]] = true
	}
}

// Resolve reports whether a reference target is a known symbol.
func (t *Table) Resolve(target string) bool {
	if t.exact[target] || t.short[target] {
		return true
	}

	for _, p := range t.prefixes {
		if strings.HasPrefix(target, p) {
			return true
		}
	}

	return false
}

// Len returns the number of exact entries.
func (t *Table) Len() int {
	return len(t.exact)
}

// Names returns the exact entries, sorted.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.exact))
	for name := range t.exact {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}

// Merge adds every entry of other into t.
func (t *Table) Merge(other *Table) {
	for name := range other.exact {
		t.Add(name)
	}

	for _, p := range other.prefixes {
		t.prefixes = append(t.prefixes, p)
	}
}

// symbolFile is the YAML listing format: a flat list of names.
type symbolFile struct {
	Symbols []string `yaml:"symbols"`
}

// Read loads a table from a listing. YAML documents use a top-level
// "symbols" list; anything else is treated as plain text, one name per
// line, with "#" comments.
func Read(r io.Reader, name string) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	t := New()

	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		var sf symbolFile
		if err := yaml.Unmarshal(data, &sf); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}

		for _, s := range sf.Symbols {
			t.Add(s)
		}

		return t, nil
	}

	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		t.Add(line)
	}

	return t, nil
}

// Load reads and merges symbol tables from the given files.
func Load(paths ...string) (*Table, error) {
	t := New()

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open symbol table: %w", err)
		}

		loaded, err := Read(f, path)
		_ = f.Close()

		if err != nil {
			return nil, err
		}

		t.Merge(loaded)
	}

	return t, nil
}
