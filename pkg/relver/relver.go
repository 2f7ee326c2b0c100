// Package relver parses and compares release version identifiers of the form
// N(.N)*[{a|b|rc}N][.postN][.devN], the scheme used by the release-notes
// documents this module works with.
package relver

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var ErrInvalidVersion = errors.New("invalid version")

// Version is a parsed release version identifier.
type Version struct {
	Pre     *PreRelease
	Post    *int
	Dev     *int
	Release []int
}

// PreRelease is a pre-release segment, e.g. "rc2".
type PreRelease struct {
	L string // "a", "b", or "rc"
	N int
}

// Accepts the normalized forms plus common spellings ("alpha", "1.0-rc1",
// "v1.0") that show up in hand-written documents.
var versionRe = regexp.MustCompile(`^v?` +
	`(?P<release>[0-9]+(?:\.[0-9]+)*)` +
	`(?:[._-]?(?P<preL>a|b|c|rc|alpha|beta|pre|preview)[._-]?(?P<preN>[0-9]+)?)?` +
	`(?:[._-]?(?P<postL>post|rev|r)[._-]?(?P<postN>[0-9]+)?)?` +
	`(?:[._-]?(?P<devL>dev)[._-]?(?P<devN>[0-9]+)?)?` +
	`$`)

// Parse parses and normalizes a version identifier string.
func Parse(str string) (*Version, error) {
	m := versionRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(str)))
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, str)
	}

	group := func(name string) string {
		return m[versionRe.SubexpIndex(name)]
	}

	ver := &Version{}

	for _, seg := range strings.Split(group("release"), ".") {
		n, err := strconv.Atoi(seg)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidVersion, str, err)
		}

		ver.Release = append(ver.Release, n)
	}

	if l := group("preL"); l != "" {
		n := 0
		if s := group("preN"); s != "" {
			n, _ = strconv.Atoi(s)
		}

		ver.Pre = &PreRelease{L: normalizePreLabel(l), N: n}
	}

	// A matched post or dev segment with no digits means 0.
	if group("postL") != "" {
		n := 0
		if s := group("postN"); s != "" {
			n, _ = strconv.Atoi(s)
		}

		ver.Post = &n
	}

	if group("devL") != "" {
		n := 0
		if s := group("devN"); s != "" {
			n, _ = strconv.Atoi(s)
		}

		ver.Dev = &n
	}

	return ver, nil
}

// MustParse is like [Parse] but panics on error. For tests and constants.
func MustParse(str string) *Version {
	ver, err := Parse(str)
	if err != nil {
		panic(err)
	}

	return ver
}

func normalizePreLabel(l string) string {
	switch l {
	case "alpha":
		return "a"
	case "beta":
		return "b"
	case "c", "pre", "preview":
		return "rc"
	}

	return l
}

// String renders the normalized form.
func (v *Version) String() string {
	var sb strings.Builder

	for i, seg := range v.Release {
		if i > 0 {
			sb.WriteByte('.')
		}

		fmt.Fprintf(&sb, "%d", seg)
	}

	if v.Pre != nil {
		fmt.Fprintf(&sb, "%s%d", v.Pre.L, v.Pre.N)
	}

	if v.Post != nil {
		fmt.Fprintf(&sb, ".post%d", *v.Post)
	}

	if v.Dev != nil {
		fmt.Fprintf(&sb, ".dev%d", *v.Dev)
	}

	return sb.String()
}

// Cmp returns -1, 0, or 1 if v sorts before, equal to, or after w.
// Ordering within one release number is dev < pre < final < post.
func (v *Version) Cmp(w *Version) int {
	if c := cmpRelease(v.Release, w.Release); c != 0 {
		return c
	}

	if c := cmpPre(v, w); c != 0 {
		return c
	}

	if c := cmpOptional(v.Post, w.Post, 1); c != 0 {
		return c
	}

	return cmpOptional(v.Dev, w.Dev, -1)
}

// Compare orders two raw version strings; unparsable strings sort first.
func Compare(a, b string) int {
	av, aerr := Parse(a)
	bv, berr := Parse(b)

	switch {
	case aerr != nil && berr != nil:
		return strings.Compare(a, b)
	case aerr != nil:
		return -1
	case berr != nil:
		return 1
	}

	return av.Cmp(bv)
}

// Sort sorts versions in ascending order, in place.
func Sort(vers []*Version) {
	slices.SortStableFunc(vers, func(a, b *Version) int {
		return a.Cmp(b)
	})
}

func cmpRelease(a, b []int) int {
	for i := range max(len(a), len(b)) {
		av, bv := 0, 0
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}

		if av != bv {
			return cmpInt(av, bv)
		}
	}

	return 0
}

func cmpPre(v, w *Version) int {
	if vr, wr := preRank(v), preRank(w); vr != wr {
		return cmpInt(vr, wr)
	}

	a, b := v.Pre, w.Pre
	if a == nil || b == nil {
		return 0
	}

	if a.L != b.L {
		return strings.Compare(a.L, b.L) // "a" < "b" < "rc" alphabetically
	}

	return cmpInt(a.N, b.N)
}

// preRank orders the phases at one release number: a bare dev release
// sorts before any pre-release, which sorts before the final.
func preRank(v *Version) int {
	switch {
	case v.Pre == nil && v.Post == nil && v.Dev != nil:
		return 0
	case v.Pre != nil:
		return 1
	default:
		return 2
	}
}

// cmpOptional compares optional numeric segments where presence sorts in
// direction sign: +1 for post (present sorts after), -1 for dev (before).
func cmpOptional(a, b *int, sign int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -sign
	case b == nil:
		return sign
	}

	return cmpInt(*a, *b)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}
