package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronolog-dev/chronolog/internal/cli"
)

func TestShowCmd_Latest(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "show", filepath.Join(testDataDir, "changes.rst"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "1.10.9 (June 15, 2018)")
	assert.NotContains(t, stdout, "1.10.8")
}

func TestShowCmd_Release(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t,
		"show", "--release", "1.10.8", filepath.Join(testDataDir, "changes.rst"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "1.10.8 (April 1, 2018)")
	assert.NotContains(t, stdout, "1.10.9")
}

func TestShowCmd_ReleaseNotFound(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t,
		"show", "--release", "9.9.9", filepath.Join(testDataDir, "changes.rst"))
	require.ErrorIs(t, err, cli.ErrReleaseNotFound)
}

func TestShowCmd_Symbol(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t,
		"show", "--symbol", "parsePDB", filepath.Join(testDataDir, "changes.rst"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "1.10.9")
	assert.NotContains(t, stdout, "1.10.8")
}

func TestShowCmd_Category(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t,
		"show", "--category", "Bug Fixes and Improvements",
		filepath.Join(testDataDir, "changes.rst"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "1.10.9")
	assert.Contains(t, stdout, "1.10.8")
	assert.NotContains(t, stdout, "New Features")
}
