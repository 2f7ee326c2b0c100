package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "+")
	assert.Empty(t, stderr)
}
