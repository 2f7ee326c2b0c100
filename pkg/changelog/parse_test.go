package changelog_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronolog-dev/chronolog/pkg/changelog"
)

const sampleDoc = `.. contents::
   :local:

Changes
=======

ProDy 1.10.9 (June 15, 2018)
----------------------------

**New Features**:

* Added :class:` + "`" + `.ModeEnsemble` + "`" + ` for handling multiple
  :class:` + "`" + `.ANM` + "`" + ` models from an ensemble.

* New database query wrappers for Pfam and CATH.

**Bug Fixes and Improvements**:

* Fixed a bug in :func:` + "`" + `.calcEnsembleENMs` + "`" + ` affecting
  masked arrays (#918). Thanks to James Krieger for the report.

ProDy 1.10.8 (May 2, 2018)
--------------------------

**Bug Fixes and Improvements**:

* Fixed :issue:` + "`" + `901` + "`" + ` in the PDB fetcher.
`

func TestParseSample(t *testing.T) {
	t.Parallel()

	c, err := changelog.Parse(strings.NewReader(sampleDoc), "changes.rst")
	require.NoError(t, err)

	assert.Equal(t, "Changes", c.Title)
	assert.True(t, c.HasContents)
	require.Len(t, c.Releases, 2)

	rel := c.Releases[0]
	assert.Equal(t, "ProDy", rel.Project)
	assert.Equal(t, "1.10.9", rel.Version)
	assert.Equal(t, "June 15, 2018", rel.RawDate)
	assert.Equal(t, time.Date(2018, time.June, 15, 0, 0, 0, 0, time.UTC), rel.Date)
	require.Len(t, rel.Sections, 2)

	feats := rel.Section(changelog.CategoryNewFeatures)
	require.NotNil(t, feats)
	require.Len(t, feats.Entries, 2)

	first := feats.Entries[0]
	assert.Contains(t, first.Text, "handling multiple")
	require.Len(t, first.Refs, 2)
	assert.Equal(t, changelog.Ref{Kind: "class", Target: "ModeEnsemble"}, first.Refs[0])
	assert.Equal(t, changelog.Ref{Kind: "class", Target: "ANM"}, first.Refs[1])

	fixes := rel.Section(changelog.CategoryBugFixes)
	require.NotNil(t, fixes)
	require.Len(t, fixes.Entries, 1)

	fix := fixes.Entries[0]
	assert.Equal(t, []changelog.Ref{{Kind: "func", Target: "calcEnsembleENMs"}}, fix.Refs)
	assert.Equal(t, []int{918}, fix.Issues)
	assert.Equal(t, []string{"James Krieger"}, fix.Contributors)

	older := c.Releases[1]
	assert.Equal(t, "1.10.8", older.Version)
	require.Len(t, older.Sections, 1)
	assert.Equal(t, []int{901}, older.Sections[0].Entries[0].Issues)
}

func TestParseHeadingVariants(t *testing.T) {
	t.Parallel()

	testcases := map[string]struct {
		doc     string
		version string
		project string
		rawDate string
	}{
		"bare-version": {
			doc:     "Changes\n=======\n\n1.2 (May 1, 2017)\n-----------------\n\n* Something.\n",
			version: "1.2",
			rawDate: "May 1, 2017",
		},
		"v-prefix": {
			doc:     "Changes\n=======\n\nv1.2 (May 1, 2017)\n------------------\n\n* Something.\n",
			version: "1.2",
			rawDate: "May 1, 2017",
		},
		"overlined": {
			doc:     "=======\nChanges\n=======\n\nTool 0.5 (2017-05-01)\n~~~~~~~~~~~~~~~~~~~~~\n\n* Something.\n",
			version: "0.5",
			project: "Tool",
			rawDate: "2017-05-01",
		},
		"abbreviated-month": {
			doc:     "Changes\n=======\n\n1.0rc1 (Jun 3, 2016)\n--------------------\n\n* Something.\n",
			version: "1.0rc1",
			rawDate: "Jun 3, 2016",
		},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, err := changelog.Parse(strings.NewReader(tc.doc), name)
			require.NoError(t, err)
			require.Len(t, c.Releases, 1)

			rel := c.Releases[0]
			assert.Equal(t, tc.version, rel.Version)
			assert.Equal(t, tc.project, rel.Project)
			assert.Equal(t, tc.rawDate, rel.RawDate)
			assert.False(t, rel.Date.IsZero())
		})
	}
}

func TestParseAdornmentCharacters(t *testing.T) {
	t.Parallel()

	for _, ch := range []string{"=", "-", "~", "^", `"`, "'", "`", "#", "+", "."} {
		t.Run(ch, func(t *testing.T) {
			t.Parallel()

			underline := strings.Repeat(ch, len("1.2 (May 1, 2017)"))
			doc := "Changes\n=======\n\n1.2 (May 1, 2017)\n" + underline + "\n\n* Something.\n"

			c, err := changelog.Parse(strings.NewReader(doc), "t")
			require.NoError(t, err)
			require.Len(t, c.Releases, 1)
			assert.Equal(t, "1.2", c.Releases[0].Version)
		})
	}
}

func TestParseMixedAdornmentNotHeading(t *testing.T) {
	t.Parallel()

	// A run mixing punctuation is prose, not an underline.
	doc := "Changes\n=======\n\n1.0 (April 1, 2021)\n-------------------\n\n1.1 (May 1, 2021)\n=-=-=-=-=-=-=-=-=\n\n* Something.\n"

	c, err := changelog.Parse(strings.NewReader(doc), "t")
	require.NoError(t, err)
	require.Len(t, c.Releases, 1)
	assert.Equal(t, "1.0", c.Releases[0].Version)
}

func TestParseEntriesWithoutCategory(t *testing.T) {
	t.Parallel()

	doc := "Changes\n=======\n\n0.1 (March 1, 2010)\n-------------------\n\n* First public release.\n* Second bullet.\n"

	c, err := changelog.Parse(strings.NewReader(doc), "t")
	require.NoError(t, err)
	require.Len(t, c.Releases, 1)
	require.Len(t, c.Releases[0].Sections, 1)
	assert.Empty(t, c.Releases[0].Sections[0].Category)
	assert.Len(t, c.Releases[0].Sections[0].Entries, 2)
}

func TestParsePreambleAndIntro(t *testing.T) {
	t.Parallel()

	doc := `Changes
=======

All notable changes are recorded here.

1.0 (April 1, 2021)
-------------------

This release is a complete rewrite.

**New Features**:

* Everything.
`

	c, err := changelog.Parse(strings.NewReader(doc), "t")
	require.NoError(t, err)
	assert.Equal(t, []string{"All notable changes are recorded here."}, c.Intro)
	require.Len(t, c.Releases, 1)
	assert.Equal(t, []string{"This release is a complete rewrite."}, c.Releases[0].Preamble)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	testcases := map[string]string{
		"bullet-before-release":   "Changes\n=======\n\n* A stray bullet.\n",
		"category-before-release": "Changes\n=======\n\n**New Features**:\n",
		"empty":                   "\n\n\n",
	}

	for name, doc := range testcases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := changelog.Parse(strings.NewReader(doc), name+".rst")
			require.Error(t, err)

			perr := &changelog.ParseError{}
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, name+".rst", perr.Name)
			assert.Positive(t, perr.Line)
		})
	}
}

func TestParseBadDateKept(t *testing.T) {
	t.Parallel()

	doc := "Changes\n=======\n\n1.0 (sometime soon)\n-------------------\n\n* Entry.\n"

	c, err := changelog.Parse(strings.NewReader(doc), "t")
	require.NoError(t, err)
	require.Len(t, c.Releases, 1)
	assert.Equal(t, "sometime soon", c.Releases[0].RawDate)
	assert.True(t, c.Releases[0].Date.IsZero())
}
