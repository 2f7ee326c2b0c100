package relver_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronolog-dev/chronolog/pkg/relver"
)

func TestParseNormalize(t *testing.T) {
	t.Parallel()

	testcases := map[string]string{
		"1.10.9":      "1.10.9",
		"v2.0":        "2.0",
		" 1.11 ":      "1.11",
		"1.0rc1":      "1.0rc1",
		"1.0-rc.1":    "1.0rc1",
		"1.0alpha2":   "1.0a2",
		"1.0beta":     "1.0b0",
		"1.0preview3": "1.0rc3",
		"1.0.post2":   "1.0.post2",
		"1.0rev2":     "1.0.post2",
		"1.0.dev4":    "1.0.dev4",
		"1.0a1.dev1":  "1.0a1.dev1",
	}

	for in, want := range testcases {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			ver, err := relver.Parse(in)
			require.NoError(t, err)
			assert.Equal(t, want, ver.String())
		})
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "abc", "1.x.2", "1..2", "1.0!", "one.two"} {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			_, err := relver.Parse(in)
			require.ErrorIs(t, err, relver.ErrInvalidVersion)
		})
	}
}

func TestSortOrder(t *testing.T) {
	t.Parallel()

	testcases := map[string][]string{
		"final-releases": {
			"0.9",
			"0.9.1",
			"0.9.2",
			"0.9.10",
			"0.9.11",
			"1.0",
			"1.0.1",
			"1.1",
			"2.0",
			"2.0.1",
		},
		"pre-releases": {
			"4.3a2",
			"4.3b2",
			"4.3rc2",
			"4.3",
		},
		"dev-pre-final-post": {
			"1.0.dev1",
			"1.0a1.dev1",
			"1.0a1",
			"1.0rc1",
			"1.0",
			"1.0.post1",
			"1.1",
		},
	}

	for name, sorted := range testcases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			vers := make([]*relver.Version, len(sorted))
			for i, str := range sorted {
				vers[i] = relver.MustParse(str)
			}

			rand.New(rand.NewSource(42)).Shuffle(len(vers), func(i, j int) {
				vers[i], vers[j] = vers[j], vers[i]
			})
			relver.Sort(vers)

			got := make([]string, len(vers))
			for i, ver := range vers {
				got[i] = ver.String()
			}

			want := make([]string, len(sorted))
			for i, str := range sorted {
				want[i] = relver.MustParse(str).String()
			}

			assert.Equal(t, want, got)
		})
	}
}

func TestCompareRawStrings(t *testing.T) {
	t.Parallel()

	assert.Negative(t, relver.Compare("1.9", "1.10"))
	assert.Positive(t, relver.Compare("2.0", "2.0rc1"))
	assert.Zero(t, relver.Compare("v1.0", "1.0"))

	// A bare dev release precedes every pre-release of the same release.
	assert.Negative(t, relver.Compare("1.0.dev1", "1.0a1"))
	assert.Positive(t, relver.Compare("1.0.post1.dev1", "1.0"))
	assert.Negative(t, relver.Compare("1.0.post1.dev1", "1.0.post1"))

	// Unparsable inputs sort first, then lexically among themselves.
	assert.Negative(t, relver.Compare("garbage", "0.1"))
	assert.Negative(t, relver.Compare("alpha", "beta"))
}

func TestZeroPaddedRelease(t *testing.T) {
	t.Parallel()

	assert.Zero(t, relver.MustParse("1.0").Cmp(relver.MustParse("1.0.0")))
	assert.Negative(t, relver.MustParse("1.0").Cmp(relver.MustParse("1.0.1")))
}
