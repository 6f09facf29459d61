package util

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForEnterSkipsNonTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stdin"))
	require.NoError(t, err)
	defer f.Close()

	var out bytes.Buffer
	WaitForEnter(f, &out)
	WaitForEnter(nil, &out)

	assert.Empty(t, out.String())
}
