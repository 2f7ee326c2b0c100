package render_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronolog-dev/chronolog/pkg/changelog"
	"github.com/chronolog-dev/chronolog/pkg/render"
)

const sampleDoc = `.. contents::
   :local:

Changes
=======

ProDy 1.10.9 (June 15, 2018)
----------------------------

**New Features**:

* Added :class:` + "`" + `.ModeEnsemble` + "`" + ` with **fast** indexing (#918).

**Bug Fixes and Improvements**:

* Fixed :issue:` + "`" + `901` + "`" + ` in the PDB fetcher.
`

func parseSample(t *testing.T) *changelog.Changelog {
	t.Helper()

	c, err := changelog.Parse(strings.NewReader(sampleDoc), "changes.rst")
	require.NoError(t, err)

	return c
}

func TestGet(t *testing.T) {
	t.Parallel()

	for _, format := range render.Formats() {
		r, err := render.Get(format)
		require.NoError(t, err, format)
		assert.NotNil(t, r)
	}

	_, err := render.Get("docx")
	require.ErrorIs(t, err, render.ErrUnknownFormat)
}

func TestRSTRoundTrip(t *testing.T) {
	t.Parallel()

	c := parseSample(t)

	out := &bytes.Buffer{}
	require.NoError(t, render.RST{}.Render(out, c))

	reparsed, err := changelog.Parse(out, "changes.rst")
	require.NoError(t, err)
	assert.Equal(t, c.Title, reparsed.Title)
	require.Len(t, reparsed.Releases, 1)
	assert.Equal(t, "1.10.9", reparsed.Releases[0].Version)
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, render.Markdown{}.Render(out, parseSample(t)))

	got := out.String()
	assert.Contains(t, got, "# Changes")
	assert.Contains(t, got, "## ProDy 1.10.9 (June 15, 2018)")
	assert.Contains(t, got, "### New Features")
	assert.Contains(t, got, "- Added `ModeEnsemble` with **fast** indexing (#918).")
	assert.Contains(t, got, "- Fixed #901 in the PDB fetcher.")
	assert.NotContains(t, got, ":class:")
	assert.NotContains(t, got, ":issue:")
}

func TestMarkdownInlineForms(t *testing.T) {
	t.Parallel()

	doc := "Changes\n=======\n\n1.0 (May 1, 2017)\n-----------------\n\n" +
		"* See `tutorial`_ and ``raw text`` and :func:`.calcANM`.\n"

	c, err := changelog.Parse(strings.NewReader(doc), "t")
	require.NoError(t, err)

	out := &bytes.Buffer{}
	require.NoError(t, render.Markdown{}.Render(out, c))

	got := out.String()
	assert.Contains(t, got, "- See `tutorial` and `raw text` and `calcANM`.")
	assert.NotContains(t, got, ":func:")
	assert.NotContains(t, got, "`_")
}

func TestHTML(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, render.NewHTML().Render(out, parseSample(t)))

	got := out.String()
	assert.Contains(t, got, "<title>Changes</title>")
	assert.Contains(t, got, `id="pro-dy-1-10-9-june-15-2018"`)
	assert.Contains(t, got, "<h3>New Features</h3>")
	assert.Contains(t, got, "ModeEnsemble")
	assert.Contains(t, got, "<strong>fast</strong>")
	assert.Contains(t, got, "chroma", "stylesheet classes present")
	assert.NotContains(t, got, ":class:")
}

func TestHTMLEscapesEntries(t *testing.T) {
	t.Parallel()

	c := &changelog.Changelog{
		Title: "Changes",
		Releases: []*changelog.Release{{
			Version: "1.0",
			RawDate: "May 1, 2017",
			Sections: []*changelog.Section{{
				Entries: []*changelog.Entry{{Text: "Handle <script> & friends."}},
			}},
		}},
	}

	out := &bytes.Buffer{}
	require.NoError(t, render.NewHTML().Render(out, c))

	got := out.String()
	assert.Contains(t, got, "&lt;script&gt;")
	assert.NotContains(t, got, "<script>")
}

func TestJSON(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, render.JSON{}.Render(out, parseSample(t)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "Changes", decoded["title"])

	releases, ok := decoded["releases"].([]any)
	require.True(t, ok)
	require.Len(t, releases, 1)
}

func TestYAML(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, render.YAML{}.Render(out, parseSample(t)))

	got := out.String()
	assert.Contains(t, got, "title: Changes")
	assert.Contains(t, got, "version: 1.10.9")
}

func TestWriteSchema(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, render.WriteSchema(out))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Contains(t, out.String(), "releases")
}
