package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func copyFixture(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(testDataDir, name))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestAddCmd(t *testing.T) {
	t.Parallel()

	path := copyFixture(t, "changes.rst")

	_, _, err := execute(t,
		"add",
		"--release", "1.10.10",
		"--date", "July 1, 2018",
		"--entry", "Added :func:`.calcEnsembleENMs` for batch mode calculations.",
		"--entry", "Added support for zstd compressed trajectories.",
		path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1.10.10 (July 1, 2018)\n----------------------\n")
	assert.Contains(t, string(data), "* Added support for zstd compressed trajectories.")

	stdout, _, err := execute(t, "show", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1.10.10")
}

func TestAddCmd_OlderVersion(t *testing.T) {
	t.Parallel()

	path := copyFixture(t, "changes.rst")

	_, _, err := execute(t,
		"add",
		"--release", "1.10.8",
		"--date", "July 1, 2018",
		"--entry", "Backported a fix.",
		path)
	require.Error(t, err)
}

func TestAddCmd_EarlierDate(t *testing.T) {
	t.Parallel()

	path := copyFixture(t, "changes.rst")

	_, _, err := execute(t,
		"add",
		"--release", "1.10.10",
		"--date", "January 1, 2018",
		"--entry", "A time traveling release.",
		path)
	require.Error(t, err)
}
