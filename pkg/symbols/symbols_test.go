package symbols_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronolog-dev/chronolog/pkg/symbols"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tbl := symbols.New()
	tbl.Add("dynamics.ModeEnsemble")
	tbl.Add("calcEnsembleENMs")
	tbl.Add("database.dali.*")

	assert.True(t, tbl.Resolve("dynamics.ModeEnsemble"))
	assert.True(t, tbl.Resolve("ModeEnsemble"), "short name resolves")
	assert.True(t, tbl.Resolve("calcEnsembleENMs"))
	assert.True(t, tbl.Resolve("database.dali.searchDali"), "wildcard prefix")
	assert.False(t, tbl.Resolve("NoSuchThing"))
	assert.False(t, tbl.Resolve("database.pfam.searchPfam"))
}

func TestReadPlainText(t *testing.T) {
	t.Parallel()

	in := "# known symbols\ndynamics.ANM\n\nmeasure.calcRMSD\n"

	tbl, err := symbols.Read(strings.NewReader(in), "symbols.txt")
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
	assert.True(t, tbl.Resolve("ANM"))
	assert.True(t, tbl.Resolve("calcRMSD"))
}

func TestReadYAML(t *testing.T) {
	t.Parallel()

	in := "symbols:\n  - dynamics.ANM\n  - ensemble.PDBEnsemble\n"

	tbl, err := symbols.Read(strings.NewReader(in), "symbols.yaml")
	require.NoError(t, err)
	assert.True(t, tbl.Resolve("PDBEnsemble"))
	assert.Equal(t, []string{"dynamics.ANM", "ensemble.PDBEnsemble"}, tbl.Names())
}

func TestReadYAMLInvalid(t *testing.T) {
	t.Parallel()

	_, err := symbols.Read(strings.NewReader("symbols: {"), "symbols.yaml")
	require.Error(t, err)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	a := symbols.New()
	a.Add("one.A")

	b := symbols.New()
	b.Add("two.B")
	b.Add("three.*")

	a.Merge(b)
	assert.True(t, a.Resolve("A"))
	assert.True(t, a.Resolve("B"))
	assert.True(t, a.Resolve("three.C"))
}
