package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathResolver(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(second, "v2.txt"), []byte("two"), 0644))

	r, err := NewPathResolver([]string{first, second})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(second, "v2.txt"), r.ResolveExisting("v2.txt"))
	assert.Equal(t, "", r.ResolveExisting("missing.txt"))
	assert.Equal(t, filepath.Join(first, "missing.txt"), r.Resolve("missing.txt"))

	text, err := r.ReadFile("v2.txt")
	require.NoError(t, err)
	assert.Equal(t, "two", text)

	_, err = r.ReadFile("missing.txt")
	assert.ErrorContains(t, err, "missing.txt")

	abs := filepath.Join(second, "v2.txt")
	assert.Equal(t, abs, r.ResolveExisting(abs))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.md")
	require.NoError(t, WriteFile(path, "final text\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "final text\n", string(data))
}
