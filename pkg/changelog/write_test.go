package changelog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronolog-dev/chronolog/pkg/changelog"
)

func TestWriteIdempotent(t *testing.T) {
	t.Parallel()

	c, err := changelog.Parse(strings.NewReader(sampleDoc), "changes.rst")
	require.NoError(t, err)

	first := &bytes.Buffer{}
	require.NoError(t, changelog.Write(first, c))

	reparsed, err := changelog.Parse(bytes.NewReader(first.Bytes()), "changes.rst")
	require.NoError(t, err)

	second := &bytes.Buffer{}
	require.NoError(t, changelog.Write(second, reparsed))

	require.NotEmpty(t, first.String())
	assert.Equal(t, first.String(), second.String())
}

func TestWriteNormalizesDates(t *testing.T) {
	t.Parallel()

	doc := "Changes\n=======\n\n1.0 (Jun 3, 2016)\n-----------------\n\n* Entry.\n"

	c, err := changelog.Parse(strings.NewReader(doc), "t")
	require.NoError(t, err)

	out := &bytes.Buffer{}
	require.NoError(t, changelog.Write(out, c))
	assert.Contains(t, out.String(), "1.0 (June 3, 2016)")
	assert.NotContains(t, out.String(), "Jun 3, 2016")
}

func TestWriteUnderlineWidth(t *testing.T) {
	t.Parallel()

	c, err := changelog.Parse(strings.NewReader(sampleDoc), "t")
	require.NoError(t, err)

	out := &bytes.Buffer{}
	require.NoError(t, changelog.Write(out, c))

	lines := strings.Split(out.String(), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "ProDy ") {
			require.Greater(t, len(lines), i+1)
			assert.Equal(t, strings.Repeat("-", len(line)), lines[i+1])
		}
	}
}

func TestWriteWrapsLongEntries(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 40)
	c := &changelog.Changelog{
		Title: "Changes",
		Releases: []*changelog.Release{{
			Version: "1.0",
			RawDate: "May 1, 2017",
			Sections: []*changelog.Section{{
				Category: changelog.CategoryNewFeatures,
				Entries:  []*changelog.Entry{{Text: strings.TrimSpace(long)}},
			}},
		}},
	}

	out := &bytes.Buffer{}
	require.NoError(t, changelog.Write(out, c))

	for _, line := range strings.Split(out.String(), "\n") {
		assert.LessOrEqual(t, len(line), 79, "line too long: %q", line)
	}
}
